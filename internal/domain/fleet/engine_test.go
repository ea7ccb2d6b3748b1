package fleet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/fleet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/universe"
)

var fleetStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fleetFixture struct {
	registry *planet.Registry
	grid     *universe.Grid
	engine   *fleet.Engine
	sink     *fleet.MemoryReportSink
	cat      catalog.Catalog
}

func newFleetFixture(t *testing.T) *fleetFixture {
	t.Helper()
	registry := planet.NewRegistry()
	grid := universe.NewGrid(9, 99, 15, registry)
	cat := catalog.Default()
	engine := fleet.NewEngine(registry, grid, cat, fleet.Config{
		UniverseSpeed: 1.0,
		MinFlightTime: 10 * time.Second,
	})
	sink := fleet.NewMemoryReportSink()
	engine.SetReportSink(sink)
	return &fleetFixture{registry: registry, grid: grid, engine: engine, sink: sink, cat: cat}
}

func (f *fleetFixture) addPlanet(
	t *testing.T,
	name string,
	owner planet.OwnerKind,
	galaxy, system, position int,
	ships map[catalog.EntityID]int,
	extra shared.Resources,
) *planet.Planet {
	t.Helper()
	coords, err := shared.NewCoordinates(galaxy, system, position)
	require.NoError(t, err)

	p := planet.NewPlanet(name, owner, coords, f.cat, fleetStart)
	require.NoError(t, f.registry.Register(p))

	p.Lock()
	for id, count := range ships {
		p.AddShips(id, count)
	}
	p.Ledger().Credit(extra, fleetStart)
	p.Unlock()
	return p
}

func TestDispatch_RefusesEmptyFleet(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1, nil, shared.Resources{})

	// Act
	_, err := f.engine.Dispatch(origin.ID(), nil, shared.Resources{},
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionAttack, fleetStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}

func TestDispatch_RefusesTargetOutsideGrid(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.LightFighter: 5}, shared.Resources{Deuterium: 5000})

	// Act
	_, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.LightFighter: 5}, shared.Resources{},
		shared.Coordinates{Galaxy: 99, System: 1, Position: 1}, fleet.MissionAttack, fleetStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}

func TestDispatch_RefusesFleetToOwnCoordinates(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.LightFighter: 5}, shared.Resources{Deuterium: 5000})

	// Act
	_, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.LightFighter: 5}, shared.Resources{},
		origin.Coordinates(), fleet.MissionAttack, fleetStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}

func TestDispatch_RefusesMoreShipsThanStationed(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.LightFighter: 2}, shared.Resources{Deuterium: 5000})
	f.addPlanet(t, "Target", planet.OwnerAI, 1, 1, 5, nil, shared.Resources{})

	// Act
	_, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.LightFighter: 3}, shared.Resources{},
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionAttack, fleetStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
	origin.Lock()
	count := origin.ShipCount(catalog.LightFighter)
	origin.Unlock()
	assert.Equal(t, 2, count)
}

func TestDispatch_RefusesCargoBeyondCapacity(t *testing.T) {
	// Arrange - one Light Fighter holds 50 cargo
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.LightFighter: 1}, shared.Resources{Deuterium: 5000})
	f.addPlanet(t, "Target", planet.OwnerAI, 1, 1, 5, nil, shared.Resources{})

	// Act
	_, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.LightFighter: 1}, shared.NewResources(60, 0, 0),
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionTransport, fleetStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}

func TestDispatch_FuelShortageLeavesStateUntouched(t *testing.T) {
	// Arrange - ten fighters over 1020 distance burn ~204 deuterium, the
	// planet only has its starting 100
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.LightFighter: 10}, shared.Resources{})
	f.addPlanet(t, "Target", planet.OwnerAI, 1, 1, 5, nil, shared.Resources{})

	// Act
	_, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.LightFighter: 10}, shared.Resources{},
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionAttack, fleetStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
	assert.Equal(t, 0, f.engine.ActiveCount())

	origin.Lock()
	defer origin.Unlock()
	assert.Equal(t, 10, origin.ShipCount(catalog.LightFighter))
	assert.InDelta(t, 100, origin.Ledger().Balances().Deuterium, 0.001)
}

func TestDispatch_ChecksShipsOutAndSchedulesMirroredReturn(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.LightFighter: 10}, shared.Resources{Deuterium: 5000})
	f.addPlanet(t, "Target", planet.OwnerAI, 1, 1, 5, nil, shared.Resources{})

	// Act
	mission, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.LightFighter: 10}, shared.Resources{},
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionAttack, fleetStart)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, fleet.MissionStatusFlight, mission.Status())
	assert.Equal(t, 1, f.engine.ActiveCount())

	flight := mission.Arrival().Sub(mission.Departure())
	assert.Equal(t, flight, mission.ReturnAt().Sub(mission.Arrival()))

	origin.Lock()
	defer origin.Unlock()
	assert.Equal(t, 0, origin.ShipCount(catalog.LightFighter))
	assert.InDelta(t, 5100-mission.Fuel(), origin.Ledger().Balances().Deuterium, 0.001)
}

func TestTransport_DeliversCargoAndReturnsEmpty(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.SmallCargo: 1}, shared.NewResources(1000, 500, 200))
	receiver := f.addPlanet(t, "Receiver", planet.OwnerAI, 1, 1, 5, nil, shared.Resources{})

	mission, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.SmallCargo: 1}, shared.NewResources(1000, 500, 0),
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionTransport, fleetStart)
	require.NoError(t, err)

	// Act - arrival: a Small Cargo covers distance 1020 in ~735s
	f.engine.Tick(mission.Arrival().Add(time.Second))

	// Assert
	assert.Equal(t, fleet.MissionStatusReturn, mission.Status())
	assert.True(t, mission.Cargo().IsZero())

	receiver.Lock()
	balances := receiver.Ledger().Balances()
	receiver.Unlock()
	assert.InDelta(t, 1500, balances.Metal, 0.001)
	assert.InDelta(t, 800, balances.Crystal, 0.001)

	// Act - return: the ship reconciles home with nothing aboard
	f.engine.Tick(mission.ReturnAt().Add(time.Second))

	// Assert
	assert.Equal(t, 0, f.engine.ActiveCount())
	origin.Lock()
	defer origin.Unlock()
	assert.Equal(t, 1, origin.ShipCount(catalog.SmallCargo))
	assert.InDelta(t, 500, origin.Ledger().Balances().Metal, 0.001)
}

func TestTransport_ReturnCreditsExactlyOnce(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.SmallCargo: 1}, shared.NewResources(0, 0, 200))
	f.addPlanet(t, "Receiver", planet.OwnerAI, 1, 1, 5, nil, shared.Resources{})

	mission, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.SmallCargo: 1}, shared.Resources{},
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionTransport, fleetStart)
	require.NoError(t, err)

	// Act - tick well past return several times
	late := mission.ReturnAt().Add(time.Minute)
	f.engine.Tick(late)
	f.engine.Tick(late.Add(time.Minute))
	f.engine.Tick(late.Add(2 * time.Minute))

	// Assert
	origin.Lock()
	count := origin.ShipCount(catalog.SmallCargo)
	origin.Unlock()
	assert.Equal(t, 1, count)
	assert.Equal(t, 0, f.engine.ActiveCount())
}

type recordedResolution struct {
	target      shared.Coordinates
	attackerWon bool
}

type fakeObserver struct {
	resolutions []recordedResolution
}

func (o *fakeObserver) AttackResolved(target shared.Coordinates, attackerWon bool, _ time.Time) {
	o.resolutions = append(o.resolutions, recordedResolution{target: target, attackerWon: attackerWon})
}

func TestAttack_DefeatsDefensesAndLeavesDebris(t *testing.T) {
	// Arrange - 10 fighters against 2 rocket launchers
	f := newFleetFixture(t)
	observer := &fakeObserver{}
	f.engine.SetResolutionObserver(observer)

	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.LightFighter: 10}, shared.Resources{Deuterium: 5000})
	defender := f.addPlanet(t, "Defender", planet.OwnerAI, 1, 1, 5, nil, shared.Resources{})
	defender.Lock()
	defender.AddDefenses(catalog.RocketLauncher, 2)
	defender.Unlock()

	target := shared.Coordinates{Galaxy: 1, System: 1, Position: 5}
	mission, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.LightFighter: 10}, shared.Resources{},
		target, fleet.MissionAttack, fleetStart)
	require.NoError(t, err)

	// Act
	f.engine.Tick(mission.Arrival().Add(time.Second))

	// Assert - the launchers are gone and 30% of their metal cost is debris
	defender.Lock()
	launchers := defender.DefenseCount(catalog.RocketLauncher)
	defender.Unlock()
	assert.Equal(t, 0, launchers)

	debris, ok := f.engine.DebrisAt(target)
	require.True(t, ok)
	assert.InDelta(t, 1200, debris.Metal, 0.001)
	assert.InDelta(t, 0, debris.Crystal, 0.001)

	// Assert - plunder took half the defender's settled balances
	defender.Lock()
	remaining := defender.Ledger().Balances()
	defender.Unlock()
	assert.InDelta(t, 250, remaining.Metal, 0.001)
	assert.InDelta(t, 150, remaining.Crystal, 0.001)
	assert.InDelta(t, 50, remaining.Deuterium, 0.001)

	// Assert - report and observer fan-out
	reports := f.sink.CombatReports()
	require.Len(t, reports, 1)
	assert.Equal(t, fleet.OutcomeAttackerWon, reports[0].Outcome)
	assert.Equal(t, target, reports[0].Coordinates)
	require.Len(t, observer.resolutions, 1)
	assert.True(t, observer.resolutions[0].attackerWon)
	assert.Equal(t, target, observer.resolutions[0].target)
}

func TestAttack_PlunderComesHomeWithTheFleet(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.LightFighter: 10}, shared.Resources{Deuterium: 5000})
	f.addPlanet(t, "Victim", planet.OwnerAI, 1, 1, 5, nil, shared.Resources{})

	mission, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.LightFighter: 10}, shared.Resources{},
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionAttack, fleetStart)
	require.NoError(t, err)

	// Act
	f.engine.Tick(mission.Arrival().Add(time.Second))
	f.engine.Tick(mission.ReturnAt().Add(time.Second))

	// Assert - half of the victim's 500/300/100 rode home
	origin.Lock()
	defer origin.Unlock()
	assert.Equal(t, 10, origin.ShipCount(catalog.LightFighter))
	balances := origin.Ledger().Balances()
	assert.InDelta(t, 750, balances.Metal, 0.001)
	assert.InDelta(t, 450, balances.Crystal, 0.001)
}

func TestEspionage_ProbeHoldsAndReportsSnapshot(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.EspionageProbe: 1}, shared.Resources{Deuterium: 1000})
	target := f.addPlanet(t, "Target", planet.OwnerAI, 1, 1, 5, nil, shared.Resources{})
	target.Lock()
	target.AddDefenses(catalog.RocketLauncher, 3)
	target.Unlock()

	mission, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.EspionageProbe: 1}, shared.Resources{},
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionEspionage, fleetStart)
	require.NoError(t, err)

	// Act
	f.engine.Tick(mission.Arrival().Add(time.Second))

	// Assert - the probe parks over the target
	assert.Equal(t, fleet.MissionStatusHolding, mission.Status())

	reports := f.sink.EspionageReports()
	require.Len(t, reports, 1)
	assert.InDelta(t, 500, reports[0].Resources.Metal, 0.001)
	assert.Equal(t, 3, reports[0].Defenses[catalog.RocketLauncher])

	// Act - recall brings it home after a mirrored leg
	now := mission.Arrival().Add(time.Minute)
	require.NoError(t, f.engine.Recall(mission.ID(), now))
	f.engine.Tick(now.Add(mission.Arrival().Sub(mission.Departure())).Add(time.Second))

	// Assert
	assert.Equal(t, 0, f.engine.ActiveCount())
	origin.Lock()
	count := origin.ShipCount(catalog.EspionageProbe)
	origin.Unlock()
	assert.Equal(t, 1, count)
}

func TestEspionage_EmptySlotSendsTheProbeHome(t *testing.T) {
	// Arrange - a restored in-flight probe whose target slot holds no
	// planet anymore
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1, nil, shared.Resources{})

	mission := fleet.ReconstructMission(
		shared.NewMissionID(), fleet.MissionEspionage, origin.ID(),
		origin.Coordinates(), shared.Coordinates{Galaxy: 1, System: 1, Position: 5},
		map[catalog.EntityID]int{catalog.EspionageProbe: 1}, shared.Resources{}, 1,
		fleetStart, fleetStart.Add(time.Minute), fleetStart.Add(2*time.Minute),
		fleet.MissionStatusFlight)
	f.engine.Restore([]*fleet.Mission{mission}, nil)

	// Act
	f.engine.Tick(mission.Arrival().Add(time.Second))

	// Assert - no report, no holding pattern, the probe flies back
	assert.Equal(t, fleet.MissionStatusReturn, mission.Status())
	assert.Empty(t, f.sink.EspionageReports())

	f.engine.Tick(mission.ReturnAt().Add(time.Second))
	assert.Equal(t, 0, f.engine.ActiveCount())
	origin.Lock()
	count := origin.ShipCount(catalog.EspionageProbe)
	origin.Unlock()
	assert.Equal(t, 1, count)
}

func TestEspionage_RequiresAProbe(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.LightFighter: 1}, shared.Resources{Deuterium: 1000})
	f.addPlanet(t, "Target", planet.OwnerAI, 1, 1, 5, nil, shared.Resources{})

	// Act
	_, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.LightFighter: 1}, shared.Resources{},
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionEspionage, fleetStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}

func TestDeploy_StationsFleetAtReceiver(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.SmallCargo: 2}, shared.NewResources(0, 0, 500))
	receiver := f.addPlanet(t, "Outpost", planet.OwnerPlayer, 1, 1, 5, nil, shared.Resources{})

	mission, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.SmallCargo: 2}, shared.Resources{},
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionDeploy, fleetStart)
	require.NoError(t, err)

	// Act
	f.engine.Tick(mission.Arrival().Add(time.Second))

	// Assert - no return leg
	assert.Equal(t, 0, f.engine.ActiveCount())
	receiver.Lock()
	count := receiver.ShipCount(catalog.SmallCargo)
	receiver.Unlock()
	assert.Equal(t, 2, count)
	origin.Lock()
	originCount := origin.ShipCount(catalog.SmallCargo)
	origin.Unlock()
	assert.Equal(t, 0, originCount)
}

type testFounder struct {
	registry *planet.Registry
	cat      catalog.Catalog
	founded  []*planet.Planet
}

func (f *testFounder) FoundColony(name string, owner planet.OwnerKind, coords shared.Coordinates, now time.Time) (*planet.Planet, error) {
	p := planet.NewPlanet(name, owner, coords, f.cat, now)
	if err := f.registry.Register(p); err != nil {
		return nil, err
	}
	f.founded = append(f.founded, p)
	return p, nil
}

func TestColonize_FoundsColonyAndConsumesColonyShip(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	founder := &testFounder{registry: f.registry, cat: f.cat}
	f.engine.SetColonyFounder(founder)

	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.ColonyShip: 1, catalog.LightFighter: 2},
		shared.NewResources(0, 0, 5000))

	target := shared.Coordinates{Galaxy: 1, System: 1, Position: 6}
	mission, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.ColonyShip: 1, catalog.LightFighter: 2},
		shared.Resources{}, target, fleet.MissionColonize, fleetStart)
	require.NoError(t, err)

	// Act
	f.engine.Tick(mission.Arrival().Add(time.Second))

	// Assert - the slot is claimed, the escort stays, nothing flies back
	require.Len(t, founder.founded, 1)
	colony := founder.founded[0]
	assert.Equal(t, target, colony.Coordinates())
	assert.Equal(t, planet.OwnerPlayer, colony.Owner())
	assert.Equal(t, 0, f.engine.ActiveCount())

	colony.Lock()
	defer colony.Unlock()
	assert.Equal(t, 0, colony.ShipCount(catalog.ColonyShip))
	assert.Equal(t, 2, colony.ShipCount(catalog.LightFighter))
}

func TestColonize_RequiresColonyShipAndFreeSlot(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.LightFighter: 1}, shared.Resources{Deuterium: 5000})
	f.addPlanet(t, "Squatter", planet.OwnerAI, 1, 1, 5, nil, shared.Resources{})

	// Act - no colony ship
	_, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.LightFighter: 1}, shared.Resources{},
		shared.Coordinates{Galaxy: 1, System: 1, Position: 6}, fleet.MissionColonize, fleetStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))

	// Act - occupied slot
	_, err = f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.LightFighter: 1}, shared.Resources{},
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionColonize, fleetStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}

func TestHarvest_ScoopsDebrisUpToCapacity(t *testing.T) {
	// Arrange - a debris field of 30000/10000 against a 20000 cargo recycler
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.Recycler: 1}, shared.NewResources(0, 0, 5000))

	field := shared.Coordinates{Galaxy: 1, System: 1, Position: 5}
	f.engine.Restore(nil, map[shared.Coordinates]shared.Resources{
		field: shared.NewResources(30000, 10000, 0),
	})

	mission, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.Recycler: 1}, shared.Resources{},
		field, fleet.MissionHarvest, fleetStart)
	require.NoError(t, err)

	// Act
	f.engine.Tick(mission.Arrival().Add(time.Second))

	// Assert - half the field fits, the rest stays behind
	scooped := mission.Cargo()
	assert.InDelta(t, 20000, scooped.Total(), 0.001)
	assert.InDelta(t, 15000, scooped.Metal, 0.001)
	assert.InDelta(t, 5000, scooped.Crystal, 0.001)

	rest, ok := f.engine.DebrisAt(field)
	require.True(t, ok)
	assert.InDelta(t, 20000, rest.Total(), 0.001)
}

func TestHarvest_RequiresARecycler(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.SmallCargo: 1}, shared.Resources{Deuterium: 5000})

	// Act
	_, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.SmallCargo: 1}, shared.Resources{},
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionHarvest, fleetStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}

func TestRecall_MirrorsTimeAlreadyFlown(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.SmallCargo: 1}, shared.NewResources(100, 0, 200))
	f.addPlanet(t, "Target", planet.OwnerAI, 1, 1, 5, nil, shared.Resources{})

	mission, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.SmallCargo: 1}, shared.NewResources(100, 0, 0),
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionTransport, fleetStart)
	require.NoError(t, err)

	// Act - turn around 100s into the flight
	turnaround := fleetStart.Add(100 * time.Second)
	require.NoError(t, f.engine.Recall(mission.ID(), turnaround))

	// Assert
	assert.Equal(t, fleet.MissionStatusReturn, mission.Status())
	assert.Equal(t, turnaround.Add(100*time.Second), mission.ReturnAt())

	// Act - the cargo never reached anyone and comes home
	f.engine.Tick(mission.ReturnAt().Add(time.Second))

	// Assert
	origin.Lock()
	defer origin.Unlock()
	assert.Equal(t, 1, origin.ShipCount(catalog.SmallCargo))
	assert.InDelta(t, 600, origin.Ledger().Balances().Metal, 0.001)
}

func TestRecall_UnknownMissionReportsNotFound(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)

	// Act
	err := f.engine.Recall(shared.NewMissionID(), fleetStart)

	// Assert
	require.Error(t, err)
}

func TestRecall_ReturningMissionIsRefused(t *testing.T) {
	// Arrange
	f := newFleetFixture(t)
	origin := f.addPlanet(t, "Origin", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.SmallCargo: 1}, shared.NewResources(0, 0, 200))
	f.addPlanet(t, "Target", planet.OwnerAI, 1, 1, 5, nil, shared.Resources{})

	mission, err := f.engine.Dispatch(origin.ID(),
		map[catalog.EntityID]int{catalog.SmallCargo: 1}, shared.Resources{},
		shared.Coordinates{Galaxy: 1, System: 1, Position: 5}, fleet.MissionTransport, fleetStart)
	require.NoError(t, err)
	require.NoError(t, f.engine.Recall(mission.ID(), fleetStart.Add(time.Minute)))

	// Act
	err = f.engine.Recall(mission.ID(), fleetStart.Add(2*time.Minute))

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}

func TestTick_TwoMissionsOnOneTargetResolveIndependently(t *testing.T) {
	// Arrange - two transports from separate origins converge on one planet
	f := newFleetFixture(t)
	first := f.addPlanet(t, "First", planet.OwnerPlayer, 1, 1, 1,
		map[catalog.EntityID]int{catalog.SmallCargo: 1}, shared.NewResources(0, 0, 500))
	second := f.addPlanet(t, "Second", planet.OwnerPlayer, 1, 1, 3,
		map[catalog.EntityID]int{catalog.SmallCargo: 1}, shared.NewResources(0, 0, 500))
	target := f.addPlanet(t, "Target", planet.OwnerAI, 1, 1, 8, nil, shared.Resources{})

	cargo := shared.NewResources(100, 0, 0)
	m1, err := f.engine.Dispatch(first.ID(),
		map[catalog.EntityID]int{catalog.SmallCargo: 1}, cargo,
		target.Coordinates(), fleet.MissionTransport, fleetStart)
	require.NoError(t, err)
	m2, err := f.engine.Dispatch(second.ID(),
		map[catalog.EntityID]int{catalog.SmallCargo: 1}, cargo,
		target.Coordinates(), fleet.MissionTransport, fleetStart)
	require.NoError(t, err)

	// Act - tick past both returns, then twice more at the same instant
	last := m1.ReturnAt()
	if m2.ReturnAt().After(last) {
		last = m2.ReturnAt()
	}
	done := last.Add(time.Second)
	f.engine.Tick(done)
	f.engine.Tick(done)
	f.engine.Tick(done)

	// Assert - each delivery landed exactly once
	target.Lock()
	metal := target.Ledger().Balances().Metal
	target.Unlock()
	assert.InDelta(t, 700, metal, 0.001)

	assert.Equal(t, 0, f.engine.ActiveCount())
	for _, origin := range []*planet.Planet{first, second} {
		origin.Lock()
		count := origin.ShipCount(catalog.SmallCargo)
		origin.Unlock()
		assert.Equal(t, 1, count)
	}
}
