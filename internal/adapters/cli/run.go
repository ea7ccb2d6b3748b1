package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielp299/ogamecloneapp-sub000/internal/adapters/metrics"
	"github.com/danielp299/ogamecloneapp-sub000/internal/adapters/persistence"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game/queries"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/ai"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/queue"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
	"github.com/danielp299/ogamecloneapp-sub000/internal/infrastructure/config"
	"github.com/danielp299/ogamecloneapp-sub000/internal/infrastructure/database"
	"github.com/danielp299/ogamecloneapp-sub000/internal/infrastructure/pidfile"
	"github.com/danielp299/ogamecloneapp-sub000/internal/infrastructure/scheduler"
)

// NewRunCommand creates the daemon run command
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the simulation daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoadConfig(configPath)

			pf := pidfile.New(cfg.Daemon.PIDFile)
			if err := pf.Acquire(); err != nil {
				return fmt.Errorf("failed to acquire PID file lock: %w", err)
			}
			defer func() {
				_ = pf.Release()
			}()

			return runDaemon(cfg)
		},
	}
}

func runDaemon(cfg *config.Config) error {
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	clock := shared.NewRealClock()
	var rng *rand.Rand
	if cfg.AI.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.AI.Seed))
	}

	a, err := newApp(cfg, clock, rng, persistence.NewGormReportSink(db))
	if err != nil {
		return err
	}

	planetRepo := persistence.NewGormPlanetRepository(db, a.catalog)
	queueRepo := persistence.NewGormQueueRepository(db, a.catalog)
	missionRepo := persistence.NewGormMissionRepository(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	playerID, err := loadOrBootstrap(ctx, a, planetRepo, queueRepo, missionRepo)
	if err != nil {
		return err
	}

	// Print the home planet state so the operator sees the world is up
	snapshot, err := a.mediator.Send(ctx, &queries.GetPlanetSnapshotQuery{PlanetID: playerID.String()})
	if err != nil {
		return fmt.Errorf("failed to read home planet: %w", err)
	}
	if view, ok := snapshot.(*queries.PlanetSnapshot); ok {
		fmt.Printf("World ready: %s at %s, %d planets total, %d missions active\n",
			view.Name, view.Coordinates, a.registry.Count(), a.fleet.ActiveCount())
	}

	var collector *metrics.GameMetricsCollector
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector = metrics.NewGameMetricsCollector()
		if err := collector.Register(); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		a.ai.SetActionObserver(func(category ai.Category) {
			collector.RecordAIAction(string(category))
		})
		metricsServer = metrics.NewServer(cfg.Metrics.Address)
		metricsServer.Start()
		fmt.Printf("Metrics exposed on http://%s/metrics\n", cfg.Metrics.Address)
	}

	flusher := persistence.NewFlusher(a.world, planetRepo, queueRepo, missionRepo, a.bus,
		cfg.Database.FlushRate, cfg.Database.FlushBurst)

	var wg sync.WaitGroup
	start := func(loop *scheduler.Loop) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loop.Run(ctx)
		}()
	}

	for _, kind := range queue.AllKinds() {
		kind := kind
		start(scheduler.NewLoop(string(kind), cfg.Game.QueueTickInterval, clock, func(now time.Time) {
			started := time.Now()
			completed := a.world.TickQueues(kind, now)
			if completed > 0 {
				a.bus.Publish()
			}
			if collector != nil {
				collector.ObserveTick(string(kind), time.Since(started).Seconds())
				collector.RecordCompletions(string(kind), completed)
				collector.SetQueueDepth(string(kind), a.world.QueueDepth(kind))
			}
		}))
	}

	start(scheduler.NewLoop("fleet", cfg.Game.FleetTickInterval, clock, func(now time.Time) {
		started := time.Now()
		before := a.fleet.ActiveCount()
		a.fleet.Tick(now)
		after := a.fleet.ActiveCount()
		if after != before {
			a.bus.Publish()
		}
		if collector != nil {
			collector.ObserveTick("fleet", time.Since(started).Seconds())
			collector.SetActiveMissions(after)
			collector.SetPlanetCount(string(planet.OwnerPlayer), len(a.registry.AllByOwner(planet.OwnerPlayer)))
			collector.SetPlanetCount(string(planet.OwnerAI), len(a.registry.AllByOwner(planet.OwnerAI)))
		}
	}))

	wg.Add(1)
	go func() {
		defer wg.Done()
		flusher.Run(ctx)
	}()

	fmt.Println("Daemon running; press Ctrl+C to stop")
	<-ctx.Done()
	fmt.Println("Shutting down...")

	wg.Wait()

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
		defer cancel()
		_ = metricsServer.Stop(shutdownCtx)
	}

	fmt.Println("Daemon stopped")
	return nil
}

// loadOrBootstrap restores the persisted world, or seeds a fresh one on
// first launch. Returns the player's home planet ID.
func loadOrBootstrap(
	ctx context.Context,
	a *app,
	planetRepo *persistence.GormPlanetRepository,
	queueRepo *persistence.GormQueueRepository,
	missionRepo *persistence.GormMissionRepository,
) (shared.PlanetID, error) {
	now := a.clock.Now()

	planets, activity, err := planetRepo.LoadAll(ctx)
	if err != nil {
		return shared.PlanetID{}, err
	}

	if len(planets) == 0 {
		fmt.Println("Empty database; seeding a fresh world")
		home, err := a.bootstrap()
		if err != nil {
			return shared.PlanetID{}, err
		}
		return home.ID(), nil
	}

	fmt.Printf("Restoring %d planets\n", len(planets))
	var playerID shared.PlanetID
	for _, p := range planets {
		if err := a.world.AttachPlanet(p, now); err != nil {
			return shared.PlanetID{}, err
		}
		for _, kind := range queue.AllKinds() {
			q, err := a.world.Queue(p.ID(), kind)
			if err != nil {
				return shared.PlanetID{}, err
			}
			if err := queueRepo.Load(ctx, p.ID(), q, now); err != nil {
				return shared.PlanetID{}, err
			}
		}
		switch p.Owner() {
		case planet.OwnerPlayer:
			playerID = p.ID()
		case planet.OwnerAI:
			lastActivity := now
			if ts, ok := activity[p.ID()]; ok {
				lastActivity = ts
			}
			a.ai.AddActor(ai.NewActor(p, lastActivity))
		}
	}
	if playerID.IsZero() {
		return shared.PlanetID{}, fmt.Errorf("persisted world has no player planet")
	}

	if err := missionRepo.LoadAll(ctx, a.fleet); err != nil {
		return shared.PlanetID{}, err
	}
	return playerID, nil
}
