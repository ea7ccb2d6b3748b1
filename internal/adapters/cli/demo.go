package cli

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game/commands"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game/queries"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/fleet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/queue"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
	"github.com/danielp299/ogamecloneapp-sub000/internal/infrastructure/config"
)

// NewDemoCommand creates an offline scripted session. It runs the whole
// stack in memory on a mock clock, so hours of simulated time pass
// instantly. Useful for a first look at the command surface.
func NewDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a short scripted session in memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

func runDemo() error {
	cfg := &config.Config{}
	config.SetDefaults(cfg)

	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	rng := rand.New(rand.NewSource(42))

	a, err := newApp(cfg, clock, rng, fleet.NewMemoryReportSink())
	if err != nil {
		return err
	}

	home, err := a.bootstrap()
	if err != nil {
		return err
	}
	homeID := home.ID().String()

	ctx := context.Background()
	tickAll := func() {
		now := clock.Now()
		for _, kind := range queue.AllKinds() {
			a.world.TickQueues(kind, now)
		}
		a.fleet.Tick(now)
	}
	printSnapshot := func(label string) error {
		resp, err := a.mediator.Send(ctx, &queries.GetPlanetSnapshotQuery{PlanetID: homeID})
		if err != nil {
			return err
		}
		view := resp.(*queries.PlanetSnapshot)
		fmt.Printf("[%s] %s metal=%.0f crystal=%.0f deuterium=%.0f energy=%d buildings=%v\n",
			label, view.Name, view.Resources.Metal, view.Resources.Crystal,
			view.Resources.Deuterium, view.Energy, view.Buildings)
		return nil
	}

	if err := printSnapshot("start"); err != nil {
		return err
	}

	// Queue a mine, then show a refusal: research needs a lab first
	resp, err := a.mediator.Send(ctx, &commands.EnqueueConstructionCommand{
		PlanetID: homeID, Building: string(catalog.MetalMine),
	})
	if err != nil {
		return err
	}
	fmt.Printf("enqueue Metal Mine: accepted=%v\n", resp.(*commands.EnqueueResponse).Accepted)

	resp, err = a.mediator.Send(ctx, &commands.EnqueueResearchCommand{
		PlanetID: homeID, Technology: string(catalog.EnergyTech),
	})
	if err != nil {
		return err
	}
	research := resp.(*commands.EnqueueResponse)
	fmt.Printf("enqueue Energy Technology: accepted=%v reason=%q\n", research.Accepted, research.Reason)

	// Let two hours of production and construction run
	for i := 0; i < 7200; i++ {
		clock.Advance(time.Second)
		tickAll()
	}
	if err := printSnapshot("after 2h"); err != nil {
		return err
	}

	resp, err = a.mediator.Send(ctx, &commands.BuildShipsCommand{
		PlanetID: homeID, Ship: string(catalog.LightFighter), Quantity: 3,
	})
	if err != nil {
		return err
	}
	build := resp.(*commands.EnqueueResponse)
	fmt.Printf("build 3 Light Fighters: accepted=%v reason=%q\n", build.Accepted, build.Reason)

	missions, err := a.mediator.Send(ctx, &queries.ListMissionsQuery{})
	if err != nil {
		return err
	}
	fmt.Printf("active missions: %d\n", len(missions.(*queries.ListMissionsResponse).Missions))

	return nil
}
