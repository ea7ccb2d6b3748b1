package cli

import (
	"fmt"
	"math/rand"

	"github.com/danielp299/ogamecloneapp-sub000/internal/application/common"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/events"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game/commands"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game/queries"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/ai"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/fleet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/universe"
	"github.com/danielp299/ogamecloneapp-sub000/internal/infrastructure/config"
)

// reportStore is what the app needs from a report sink: the engine
// writes through it and the report feed reads back from it
type reportStore interface {
	fleet.ReportSink
	queries.ReportStore
}

// app bundles the fully wired simulation. The daemon and the demo build
// it the same way and differ only in clock, report sink and persistence.
type app struct {
	cfg      *config.Config
	clock    shared.Clock
	catalog  catalog.Catalog
	registry *planet.Registry
	universe universe.Universe
	fleet    *fleet.Engine
	ai       *ai.Engine
	world    *game.World
	bus      *events.ChangeBus
	mediator common.Mediator
	reports  reportStore
}

// newApp wires engines, world and mediator over the given clock and
// report sink
func newApp(cfg *config.Config, clock shared.Clock, rng *rand.Rand, reports reportStore) (*app, error) {
	var cat catalog.Catalog
	var err error
	if cfg.Game.CatalogPath != "" {
		cat, err = catalog.Load(cfg.Game.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog overrides: %w", err)
		}
	} else {
		cat = catalog.Default()
	}

	registry := planet.NewRegistry()
	grid := universe.NewGrid(cfg.Game.Galaxies, cfg.Game.Systems, cfg.Game.Positions, registry)

	fleetEngine := fleet.NewEngine(registry, grid, cat, fleet.Config{
		UniverseSpeed: cfg.Game.UniverseSpeed,
		MinFlightTime: cfg.Game.MinFlightTime,
	})

	aiEngine := ai.NewEngine(cat, grid, aiProbabilities(&cfg.AI), rng)

	world := game.NewWorld(cat, registry, grid, fleetEngine, aiEngine, cfg.Game.RefundFraction)
	fleetEngine.SetColonyFounder(world)
	aiEngine.SetColonyFounder(world)
	fleetEngine.SetReportSink(reports)
	fleetEngine.SetResolutionObserver(aiEngine)

	bus := events.NewChangeBus()

	mediator := common.NewMediator()
	registrations := []error{
		common.RegisterHandler[*commands.EnqueueConstructionCommand](mediator,
			commands.NewEnqueueConstructionHandler(world, aiEngine, bus, clock)),
		common.RegisterHandler[*commands.EnqueueResearchCommand](mediator,
			commands.NewEnqueueResearchHandler(world, aiEngine, bus, clock)),
		common.RegisterHandler[*commands.BuildShipsCommand](mediator,
			commands.NewBuildShipsHandler(world, aiEngine, bus, clock)),
		common.RegisterHandler[*commands.BuildDefenseCommand](mediator,
			commands.NewBuildDefenseHandler(world, aiEngine, bus, clock)),
		common.RegisterHandler[*commands.CancelQueueItemCommand](mediator,
			commands.NewCancelQueueItemHandler(world, bus, clock)),
		common.RegisterHandler[*commands.DispatchFleetCommand](mediator,
			commands.NewDispatchFleetHandler(world, bus, clock)),
		common.RegisterHandler[*commands.RecallMissionCommand](mediator,
			commands.NewRecallMissionHandler(world, bus, clock)),
		common.RegisterHandler[*queries.GetPlanetSnapshotQuery](mediator,
			queries.NewGetPlanetSnapshotHandler(world, clock)),
		common.RegisterHandler[*queries.ListMissionsQuery](mediator,
			queries.NewListMissionsHandler(world)),
		common.RegisterHandler[*queries.ListReportsQuery](mediator,
			queries.NewListReportsHandler(reports)),
	}
	for _, err := range registrations {
		if err != nil {
			return nil, fmt.Errorf("failed to register handler: %w", err)
		}
	}

	return &app{
		cfg:      cfg,
		clock:    clock,
		catalog:  cat,
		registry: registry,
		universe: grid,
		fleet:    fleetEngine,
		ai:       aiEngine,
		world:    world,
		bus:      bus,
		mediator: mediator,
		reports:  reports,
	}, nil
}

// bootstrap seeds a fresh world: the player's home planet plus the
// starting AI population on nearby free slots
func (a *app) bootstrap() (*planet.Planet, error) {
	now := a.clock.Now()
	home := shared.Coordinates{
		Galaxy:   a.cfg.Game.HomeGalaxy,
		System:   a.cfg.Game.HomeSystem,
		Position: a.cfg.Game.HomePosition,
	}

	player, err := a.world.FoundColony(a.cfg.Game.HomeName, planet.OwnerPlayer, home, now)
	if err != nil {
		return nil, fmt.Errorf("failed to found home planet: %w", err)
	}

	slots := a.universe.FreeSlotsNear(home, a.cfg.Game.StartingActors)
	for i, slot := range slots {
		colony, err := a.world.FoundColony(fmt.Sprintf("Dominion %d", i+1), planet.OwnerAI, slot, now)
		if err != nil {
			return nil, fmt.Errorf("failed to found AI colony: %w", err)
		}
		colony.Lock()
		colony.IncrementBuilding(catalog.MetalMine, now)
		colony.IncrementBuilding(catalog.SolarPlant, now)
		colony.Unlock()
		a.ai.AddActor(ai.NewActor(colony, now))
	}

	return player, nil
}

func aiProbabilities(cfg *config.AIConfig) ai.Probabilities {
	return ai.Probabilities{
		BuildingTrigger:    cfg.BuildingTrigger,
		ResearchTrigger:    cfg.ResearchTrigger,
		ShipTrigger:        cfg.ShipTrigger,
		DefenseTrigger:     cfg.DefenseTrigger,
		AttackTrigger:      cfg.AttackTrigger,
		MirrorBias:         cfg.MirrorBias,
		ColonizeChance:     cfg.ColonizeChance,
		MaxActionsPerEvent: cfg.MaxActionsPerEvent,
	}
}
