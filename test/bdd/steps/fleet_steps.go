package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/fleet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/universe"
)

type fleetContext struct {
	engine   *fleet.Engine
	home     *planet.Planet
	neighbor *planet.Planet
	registry *planet.Registry
	mission  *fleet.Mission
	err      error
}

func (fc *fleetContext) reset() {
	fc.engine = nil
	fc.home = nil
	fc.neighbor = nil
	fc.registry = nil
	fc.mission = nil
	fc.err = nil
}

func (fc *fleetContext) aHomePlanetWithACargoShip(deuterium int) error {
	cat := catalog.Default()
	fc.registry = planet.NewRegistry()
	grid := universe.NewGrid(9, 99, 15, fc.registry)
	fc.engine = fleet.NewEngine(fc.registry, grid, cat, fleet.Config{
		UniverseSpeed: 1.0,
		MinFlightTime: 10 * time.Second,
	})

	coords, err := shared.NewCoordinates(1, 1, 4)
	if err != nil {
		return err
	}
	fc.home = planet.NewPlanet("Homeworld", planet.OwnerPlayer, coords, cat, bddStart)
	fc.home.Lock()
	fc.home.AddShips(catalog.SmallCargo, 1)
	fc.home.Ledger().Credit(shared.NewResources(0, 0, float64(deuterium)), bddStart)
	fc.home.Unlock()
	return fc.registry.Register(fc.home)
}

func (fc *fleetContext) anOccupiedNeighborPlanet() error {
	coords, err := shared.NewCoordinates(1, 1, 9)
	if err != nil {
		return err
	}
	fc.neighbor = planet.NewPlanet("Neighbor", planet.OwnerAI, coords, catalog.Default(), bddStart)
	return fc.registry.Register(fc.neighbor)
}

func (fc *fleetContext) iDispatchATransportCarrying(metal, crystal int) error {
	fc.mission, fc.err = fc.engine.Dispatch(fc.home.ID(),
		map[catalog.EntityID]int{catalog.SmallCargo: 1},
		shared.NewResources(float64(metal), float64(crystal), 0),
		fc.neighbor.Coordinates(), fleet.MissionTransport, bddStart)
	return nil
}

func (fc *fleetContext) iDispatchATransportWithShips(count int) error {
	fc.mission, fc.err = fc.engine.Dispatch(fc.home.ID(),
		map[catalog.EntityID]int{catalog.SmallCargo: count},
		shared.Resources{}, fc.neighbor.Coordinates(), fleet.MissionTransport, bddStart)
	return nil
}

func (fc *fleetContext) theMissionSchedulesAMirroredReturnLeg() error {
	if fc.err != nil {
		return fmt.Errorf("dispatch failed: %v", fc.err)
	}
	outbound := fc.mission.Arrival().Sub(fc.mission.Departure())
	inbound := fc.mission.ReturnAt().Sub(fc.mission.Arrival())
	if outbound != inbound {
		return fmt.Errorf("expected mirrored legs, outbound %v inbound %v", outbound, inbound)
	}
	return nil
}

func (fc *fleetContext) theFleetArrives() error {
	fc.engine.Tick(fc.mission.Arrival().Add(time.Second))
	return nil
}

func (fc *fleetContext) theFleetCompletesItsReturn() error {
	fc.engine.Tick(fc.mission.ReturnAt().Add(time.Second))
	return nil
}

func (fc *fleetContext) theNeighborHolds(metal, crystal int) error {
	fc.neighbor.Lock()
	balances := fc.neighbor.Ledger().Balances()
	fc.neighbor.Unlock()

	wantMetal, wantCrystal := float64(metal), float64(crystal)
	if balances.Metal != wantMetal || balances.Crystal != wantCrystal {
		return fmt.Errorf("expected %v/%v at the neighbor, got %v/%v",
			wantMetal, wantCrystal, balances.Metal, balances.Crystal)
	}
	return nil
}

func (fc *fleetContext) theCargoShipIsStationedAtHome() error {
	fc.home.Lock()
	count := fc.home.ShipCount(catalog.SmallCargo)
	fc.home.Unlock()
	if count != 1 {
		return fmt.Errorf("expected 1 cargo ship at home, got %d", count)
	}
	return nil
}

func (fc *fleetContext) theDispatchIsRefused() error {
	if fc.err == nil {
		return fmt.Errorf("expected the dispatch to be refused")
	}
	if !shared.IsPrecondition(fc.err) {
		return fmt.Errorf("expected a precondition failure, got %v", fc.err)
	}
	return nil
}

// InitializeFleetScenario registers the fleet mission steps
func InitializeFleetScenario(sc *godog.ScenarioContext) {
	ctx := &fleetContext{}

	sc.Before(func(c context.Context, scenario *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})

	sc.Step(`^a home planet with a small cargo ship and (\d+) deuterium in reserve$`, ctx.aHomePlanetWithACargoShip)
	sc.Step(`^an occupied neighbor planet in the same system$`, ctx.anOccupiedNeighborPlanet)
	sc.Step(`^I dispatch a transport carrying (\d+) metal and (\d+) crystal$`, ctx.iDispatchATransportCarrying)
	sc.Step(`^I dispatch a transport with (\d+) small cargo ships$`, ctx.iDispatchATransportWithShips)
	sc.Step(`^the mission schedules a mirrored return leg$`, ctx.theMissionSchedulesAMirroredReturnLeg)
	sc.Step(`^the fleet arrives$`, ctx.theFleetArrives)
	sc.Step(`^the fleet completes its return$`, ctx.theFleetCompletesItsReturn)
	sc.Step(`^the neighbor holds (\d+) metal and (\d+) crystal$`, ctx.theNeighborHolds)
	sc.Step(`^the cargo ship is stationed at home again$`, ctx.theCargoShipIsStationedAtHome)
	sc.Step(`^the dispatch is refused$`, ctx.theDispatchIsRefused)
}
