package fleet

import (
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/universe"
)

// ColonyFounder creates and registers a new planet when a colonization
// mission claims a free slot. The world layer implements it because
// founding wires queues and persistence alongside the aggregate.
type ColonyFounder interface {
	FoundColony(name string, owner planet.OwnerKind, coords shared.Coordinates, now time.Time) (*planet.Planet, error)
}

// ResolutionObserver is notified after an attack resolves; the reactive AI
// engine hangs off this hook
type ResolutionObserver interface {
	AttackResolved(target shared.Coordinates, attackerWon bool, now time.Time)
}

// Config carries the engine's tuning knobs
type Config struct {
	// UniverseSpeed divides flight times; 1.0 is the reference pace
	UniverseSpeed float64

	// MinFlightTime floors every leg so adjacent slots still take time
	MinFlightTime time.Duration
}

// Engine owns the active mission set and drives the dispatch → travel →
// resolution → return lifecycle. Missions evaluate their own deadlines
// against now each tick, so missed ticks catch up instead of drifting.
type Engine struct {
	mu       sync.Mutex
	missions map[shared.MissionID]*Mission
	debris   map[shared.Coordinates]shared.Resources

	registry *planet.Registry
	universe universe.Universe
	catalog  catalog.Catalog

	founder  ColonyFounder
	reports  ReportSink
	observer ResolutionObserver

	cfg Config
}

// NewEngine creates a fleet engine over the given planet registry and
// universe lookup
func NewEngine(registry *planet.Registry, uni universe.Universe, cat catalog.Catalog, cfg Config) *Engine {
	if cfg.UniverseSpeed <= 0 {
		cfg.UniverseSpeed = 1.0
	}
	if cfg.MinFlightTime <= 0 {
		cfg.MinFlightTime = 10 * time.Second
	}
	return &Engine{
		missions: make(map[shared.MissionID]*Mission),
		debris:   make(map[shared.Coordinates]shared.Resources),
		registry: registry,
		universe: uni,
		catalog:  cat,
		cfg:      cfg,
	}
}

// SetColonyFounder wires the colonization callback
func (e *Engine) SetColonyFounder(founder ColonyFounder) {
	e.founder = founder
}

// SetReportSink wires the combat/espionage report destination
func (e *Engine) SetReportSink(sink ReportSink) {
	e.reports = sink
}

// SetResolutionObserver wires the post-attack hook
func (e *Engine) SetResolutionObserver(observer ResolutionObserver) {
	e.observer = observer
}

// Dispatch validates and launches a mission. Every refusal is a
// precondition error whose message is surfaced to the player verbatim; on
// any refusal the origin's inventory and ledger are untouched.
func (e *Engine) Dispatch(
	originID shared.PlanetID,
	ships map[catalog.EntityID]int,
	cargo shared.Resources,
	target shared.Coordinates,
	kind MissionKind,
	now time.Time,
) (*Mission, error) {
	if !kind.IsValid() {
		return nil, shared.NewPreconditionError("Unknown mission type %s", kind)
	}
	if len(ships) == 0 {
		return nil, shared.NewPreconditionError("No ships selected")
	}
	if cargo.Metal < 0 || cargo.Crystal < 0 || cargo.Deuterium < 0 {
		return nil, shared.NewPreconditionError("Cargo amounts must not be negative")
	}
	if !e.universe.Exists(target) {
		return nil, shared.NewPreconditionError("Target %s does not exist", target)
	}

	origin, ok := e.registry.ByID(originID)
	if !ok {
		return nil, shared.NewNotFoundError("planet", originID.String())
	}
	if origin.Coordinates() == target {
		return nil, shared.NewPreconditionError("Fleet is already at %s", target)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	origin.Lock()
	defer origin.Unlock()

	// Ship availability and group characteristics
	slowest := math.MaxFloat64
	capacity := 0.0
	for id, count := range ships {
		if count <= 0 {
			return nil, shared.NewPreconditionError("Ship counts must be positive")
		}
		entry, err := e.catalog.GetEntry(id)
		if err != nil || !entry.IsMovable() {
			return nil, shared.NewPreconditionError("%s cannot fly in a fleet", id)
		}
		if origin.ShipCount(id) < count {
			return nil, shared.NewPreconditionError(
				"Not enough %s: have %d, sending %d", id, origin.ShipCount(id), count)
		}
		if float64(entry.Stats.Speed) < slowest {
			slowest = float64(entry.Stats.Speed)
		}
		capacity += float64(entry.Stats.Cargo * count)
	}

	if err := e.checkKindPreconditions(kind, ships, target); err != nil {
		return nil, err
	}

	if cargo.Total() > capacity {
		return nil, shared.NewPreconditionError(
			"Cargo of %.0f exceeds fleet capacity of %.0f", cargo.Total(), capacity)
	}

	distance := origin.Coordinates().DistanceTo(target)
	flightTime := e.flightTime(distance, slowest)
	fuel := e.fuelFor(ships, distance)

	if !origin.Ledger().HasAtLeast(shared.Resources{Deuterium: fuel}, now) {
		return nil, shared.NewPreconditionError("Not enough Deuterium for fuel")
	}

	freight := cargo
	freight.Deuterium += fuel
	if err := origin.Ledger().Debit(freight, now); err != nil {
		return nil, err
	}

	// Check the ships out of the stationed inventory
	for id, count := range ships {
		if err := origin.RemoveShips(id, count); err != nil {
			// Availability was verified under this same lock; a failure
			// here is a bug, not a gameplay condition
			origin.Ledger().Credit(freight, now)
			return nil, err
		}
	}

	mission := &Mission{
		id:           shared.NewMissionID(),
		kind:         kind,
		origin:       originID,
		originCoords: origin.Coordinates(),
		target:       target,
		ships:        copyShips(ships),
		cargo:        cargo,
		fuel:         fuel,
		departure:    now,
		arrival:      now.Add(flightTime),
		returnAt:     now.Add(2 * flightTime),
		status:       MissionStatusFlight,
	}
	e.missions[mission.id] = mission
	return mission, nil
}

func (e *Engine) checkKindPreconditions(kind MissionKind, ships map[catalog.EntityID]int, target shared.Coordinates) error {
	occupied := e.universe.IsOccupied(target)
	switch kind {
	case MissionAttack, MissionTransport, MissionDeploy:
		if !occupied {
			return shared.NewPreconditionError("There is no planet at %s", target)
		}
	case MissionColonize:
		if occupied {
			return shared.NewPreconditionError("Position %s is already occupied", target)
		}
		if ships[catalog.ColonyShip] < 1 {
			return shared.NewPreconditionError("A colony ship is required to colonize")
		}
	case MissionEspionage:
		if !occupied {
			return shared.NewPreconditionError("There is no planet at %s", target)
		}
		if ships[catalog.EspionageProbe] < 1 {
			return shared.NewPreconditionError("An espionage probe is required to spy")
		}
	case MissionHarvest:
		if ships[catalog.Recycler] < 1 {
			return shared.NewPreconditionError("A recycler is required to harvest debris")
		}
	}
	return nil
}

// flightTime converts distance and the group's slowest speed into a leg
// duration, scaled by the universe speed and floored
func (e *Engine) flightTime(distance, slowestSpeed float64) time.Duration {
	if slowestSpeed <= 0 {
		return e.cfg.MinFlightTime
	}
	seconds := distance * 3600 / (slowestSpeed * e.cfg.UniverseSpeed)
	d := time.Duration(seconds * float64(time.Second))
	if d < e.cfg.MinFlightTime {
		return e.cfg.MinFlightTime
	}
	return d
}

// fuelFor sums per-ship fuel consumption over the trip
func (e *Engine) fuelFor(ships map[catalog.EntityID]int, distance float64) float64 {
	fuel := 0.0
	for id, count := range ships {
		entry, err := e.catalog.GetEntry(id)
		if err != nil {
			continue
		}
		fuel += entry.Stats.FuelRate * (distance / 1000) * float64(count)
	}
	return math.Ceil(fuel)
}

// Tick advances every active mission against now. Arrival resolution runs
// exactly once per mission: the Flight→Return (or Holding) transition is
// the guard, and a mission past Flight is never resolved again. Return
// completion credits the checked-out ships back exactly once and removes
// the mission. One faulty mission never stops the loop.
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, mission := range e.snapshotLocked() {
		switch mission.status {
		case MissionStatusFlight:
			if !now.Before(mission.arrival) {
				e.resolveArrival(mission, now)
			}
		case MissionStatusReturn:
			if !now.Before(mission.returnAt) {
				e.completeReturn(mission, now)
			}
		case MissionStatusHolding:
			// Parked until recalled
		}
	}
}

// resolveArrival applies the mission's arrival effect and transitions it
// out of Flight. Callers hold e.mu.
func (e *Engine) resolveArrival(mission *Mission, now time.Time) {
	// Transition first: this is the exactly-once guard
	mission.status = MissionStatusReturn
	if mission.kind.IsStationary() {
		mission.status = MissionStatusHolding
	}

	switch mission.kind {
	case MissionAttack:
		e.resolveAttack(mission, now)
	case MissionTransport:
		e.resolveTransport(mission, now)
	case MissionDeploy:
		e.resolveDeploy(mission, now)
	case MissionEspionage:
		e.resolveEspionage(mission, now)
	case MissionColonize:
		e.resolveColonize(mission, now)
	case MissionHarvest:
		e.resolveHarvest(mission)
	}
}

func (e *Engine) resolveAttack(mission *Mission, now time.Time) {
	defender, ok := e.universe.Occupant(mission.target)
	if !ok || defender.ID() == mission.origin {
		return
	}

	defender.Lock()
	defender.Ledger().Settle(now)

	result := resolveCombat(mission.ships, defender.Ships(), defender.Defenses(), e.catalog)

	for id, count := range result.defenderShips {
		if err := defender.RemoveShips(id, count); err != nil {
			log.Printf("fleet: combat at %s: %v", mission.target, err)
		}
	}
	for id, count := range result.defenderDefs {
		if err := defender.RemoveDefenses(id, count); err != nil {
			log.Printf("fleet: combat at %s: %v", mission.target, err)
		}
	}
	for id, count := range result.attackerLosses {
		mission.ships[id] -= count
		if mission.ships[id] <= 0 {
			delete(mission.ships, id)
		}
	}

	if !result.debris.IsZero() {
		e.debris[mission.target] = e.debris[mission.target].Add(result.debris)
	}

	var plunder shared.Resources
	if result.outcome == OutcomeAttackerWon && len(mission.ships) > 0 {
		plunder = e.plunder(mission, defender, now)
		mission.cargo = mission.cargo.Add(plunder)
	}
	// Release the defender before fanning out; the AI observer takes actor
	// locks of its own and the defender may be one of them
	defender.Unlock()

	if e.reports != nil {
		e.reports.RecordCombat(&CombatReport{
			ID:             newReportID(),
			MissionID:      mission.id,
			Coordinates:    mission.target,
			Timestamp:      now,
			Outcome:        result.outcome,
			AttackerLosses: result.attackerLosses,
			DefenderLosses: mergeCounts(result.defenderShips, result.defenderDefs),
			Debris:         result.debris,
			Plunder:        plunder,
		})
	}
	if e.observer != nil {
		e.observer.AttackResolved(mission.target, result.outcome == OutcomeAttackerWon, now)
	}
}

// plunder loots up to half the defender's settled balances, bounded by the
// fleet's remaining cargo space. Callers hold the defender's lock.
func (e *Engine) plunder(mission *Mission, defender *planet.Planet, now time.Time) shared.Resources {
	capacity := e.cargoCapacity(mission.ships) - mission.cargo.Total()
	if capacity <= 0 {
		return shared.Resources{}
	}

	loot := defender.Ledger().Balances().Scale(0.5)
	if total := loot.Total(); total > capacity {
		loot = loot.Scale(capacity / total)
	}
	if err := defender.Ledger().Debit(loot, now); err != nil {
		// Balances were read under the same lock; failing here is a bug
		log.Printf("fleet: plunder at %s: %v", mission.target, err)
		return shared.Resources{}
	}
	return loot
}

func (e *Engine) resolveTransport(mission *Mission, now time.Time) {
	receiver, ok := e.universe.Occupant(mission.target)
	if !ok {
		// Planet vanished mid-flight; bring the cargo home
		return
	}
	receiver.Lock()
	receiver.Ledger().Credit(mission.cargo, now)
	receiver.Unlock()
	mission.cargo = shared.Resources{}
}

func (e *Engine) resolveDeploy(mission *Mission, now time.Time) {
	receiver, ok := e.universe.Occupant(mission.target)
	if !ok {
		return
	}
	receiver.Lock()
	for id, count := range mission.ships {
		receiver.AddShips(id, count)
	}
	receiver.Ledger().Credit(mission.cargo, now)
	receiver.Unlock()

	// The fleet is stationed at its new home; nothing flies back
	delete(e.missions, mission.id)
}

func (e *Engine) resolveEspionage(mission *Mission, now time.Time) {
	target, ok := e.universe.Occupant(mission.target)
	if !ok {
		// Nothing to scan; the probe turns around instead of holding
		mission.status = MissionStatusReturn
		return
	}

	target.Lock()
	target.Ledger().Settle(now)
	report := &EspionageReport{
		ID:          newReportID(),
		MissionID:   mission.id,
		Coordinates: mission.target,
		Timestamp:   now,
		Resources:   target.Ledger().Balances(),
		Ships:       target.Ships(),
		Defenses:    target.Defenses(),
	}
	target.Unlock()

	if e.reports != nil {
		e.reports.RecordEspionage(report)
	}
}

func (e *Engine) resolveColonize(mission *Mission, now time.Time) {
	if e.founder == nil || e.universe.IsOccupied(mission.target) {
		// Slot was claimed while the fleet was in flight; fly home
		return
	}

	origin, _ := e.registry.ByID(mission.origin)
	owner := planet.OwnerPlayer
	if origin != nil {
		owner = origin.Owner()
	}

	colony, err := e.founder.FoundColony("Colony", owner, mission.target, now)
	if err != nil {
		log.Printf("fleet: colonization of %s failed: %v", mission.target, err)
		return
	}

	colony.Lock()
	// The colony ship becomes the settlement
	mission.ships[catalog.ColonyShip]--
	if mission.ships[catalog.ColonyShip] <= 0 {
		delete(mission.ships, catalog.ColonyShip)
	}
	for id, count := range mission.ships {
		colony.AddShips(id, count)
	}
	colony.Ledger().Credit(mission.cargo, now)
	colony.Unlock()

	delete(e.missions, mission.id)
}

func (e *Engine) resolveHarvest(mission *Mission) {
	field, ok := e.debris[mission.target]
	if !ok || field.IsZero() {
		return
	}

	capacity := e.cargoCapacity(mission.ships) - mission.cargo.Total()
	if capacity <= 0 {
		return
	}

	scooped := field
	if total := field.Total(); total > capacity {
		scooped = field.Scale(capacity / total)
	}
	mission.cargo = mission.cargo.Add(scooped)

	rest := field.Sub(scooped)
	if rest.Total() < 1 {
		delete(e.debris, mission.target)
	} else {
		e.debris[mission.target] = rest
	}
}

// completeReturn reconciles the checked-out ships and remaining cargo back
// into the origin and removes the mission. Callers hold e.mu.
func (e *Engine) completeReturn(mission *Mission, now time.Time) {
	// Remove first so a repeated deadline check cannot double-credit
	delete(e.missions, mission.id)

	origin, ok := e.registry.ByID(mission.origin)
	if !ok {
		log.Printf("fleet: origin %s of mission %s is gone; fleet lost", mission.origin, mission.id)
		return
	}

	origin.Lock()
	defer origin.Unlock()
	for id, count := range mission.ships {
		origin.AddShips(id, count)
	}
	origin.Ledger().Credit(mission.cargo, now)
}

// Recall turns a mission around before arrival, or calls a holding fleet
// home. The return leg mirrors the time already spent flying out.
func (e *Engine) Recall(id shared.MissionID, now time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	mission, ok := e.missions[id]
	if !ok {
		return shared.NewNotFoundError("mission", id.String())
	}

	switch mission.status {
	case MissionStatusFlight:
		mission.status = MissionStatusReturn
		mission.returnAt = now.Add(now.Sub(mission.departure))
	case MissionStatusHolding:
		mission.status = MissionStatusReturn
		mission.returnAt = now.Add(mission.arrival.Sub(mission.departure))
	default:
		return shared.NewPreconditionError("Mission is already returning")
	}
	return nil
}

// Queries

// Mission returns one active mission by id
func (e *Engine) Mission(id shared.MissionID) (*Mission, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, ok := e.missions[id]
	return m, ok
}

// Missions returns a snapshot of the active mission set
func (e *Engine) Missions() []*Mission {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// ActiveCount returns how many missions are in flight, returning or holding
func (e *Engine) ActiveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.missions)
}

// DebrisAt returns the debris field at the given coordinates, if any
func (e *Engine) DebrisAt(c shared.Coordinates) (shared.Resources, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	field, ok := e.debris[c]
	return field, ok
}

// DebrisFields returns a snapshot of every debris field
func (e *Engine) DebrisFields() map[shared.Coordinates]shared.Resources {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[shared.Coordinates]shared.Resources, len(e.debris))
	for c, field := range e.debris {
		out[c] = field
	}
	return out
}

// Restore injects persisted missions and debris fields (repositories only)
func (e *Engine) Restore(missions []*Mission, debris map[shared.Coordinates]shared.Resources) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, m := range missions {
		e.missions[m.id] = m
	}
	for c, field := range debris {
		e.debris[c] = field
	}
}

// snapshotLocked returns the active missions in departure order so
// catch-up ticks after downtime resolve deterministically
func (e *Engine) snapshotLocked() []*Mission {
	missions := make([]*Mission, 0, len(e.missions))
	for _, m := range e.missions {
		missions = append(missions, m)
	}
	sort.Slice(missions, func(i, j int) bool {
		if missions[i].departure.Equal(missions[j].departure) {
			return missions[i].id.String() < missions[j].id.String()
		}
		return missions[i].departure.Before(missions[j].departure)
	})
	return missions
}

func copyShips(ships map[catalog.EntityID]int) map[catalog.EntityID]int {
	out := make(map[catalog.EntityID]int, len(ships))
	for id, count := range ships {
		out[id] = count
	}
	return out
}

func mergeCounts(a, b map[catalog.EntityID]int) map[catalog.EntityID]int {
	out := make(map[catalog.EntityID]int, len(a)+len(b))
	for id, count := range a {
		out[id] += count
	}
	for id, count := range b {
		out[id] += count
	}
	return out
}

func (e *Engine) cargoCapacity(ships map[catalog.EntityID]int) float64 {
	capacity := 0.0
	for id, count := range ships {
		entry, err := e.catalog.GetEntry(id)
		if err != nil {
			continue
		}
		capacity += float64(entry.Stats.Cargo * count)
	}
	return capacity
}
