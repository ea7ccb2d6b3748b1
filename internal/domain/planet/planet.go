package planet

import (
	"sync"
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/economy"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/requirement"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// OwnerKind distinguishes player worlds from AI-controlled ones
type OwnerKind string

const (
	OwnerPlayer OwnerKind = "PLAYER"
	OwnerAI     OwnerKind = "AI"
)

// IsValid returns true if the owner kind is one of the defined constants
func (o OwnerKind) IsValid() bool {
	return o == OwnerPlayer || o == OwnerAI
}

// Planet is the aggregate root for one world: its ledger, its building and
// technology levels, and its ship and defense inventories.
//
// All mutation of a planet is serialized through its mutex. Engines hold the
// lock across whole decision sequences (settle, check, debit, mutate) so no
// concurrent tick observes a half-updated balance. Cross-planet operations
// acquire both locks in coordinate order (see LockPair).
type Planet struct {
	mu sync.Mutex

	id          shared.PlanetID
	name        string
	owner       OwnerKind
	coordinates shared.Coordinates

	ledger       *economy.Ledger
	buildings    map[catalog.EntityID]int
	technologies map[catalog.EntityID]int
	ships        map[catalog.EntityID]int
	defenses     map[catalog.EntityID]int

	catalog catalog.Catalog
}

// NewPlanet creates a fresh planet with starting resources and no buildings
func NewPlanet(
	name string,
	owner OwnerKind,
	coordinates shared.Coordinates,
	cat catalog.Catalog,
	now time.Time,
) *Planet {
	p := &Planet{
		id:           shared.NewPlanetID(),
		name:         name,
		owner:        owner,
		coordinates:  coordinates,
		buildings:    make(map[catalog.EntityID]int),
		technologies: make(map[catalog.EntityID]int),
		ships:        make(map[catalog.EntityID]int),
		defenses:     make(map[catalog.EntityID]int),
		catalog:      cat,
	}
	p.ledger = economy.NewLedger(
		shared.NewResources(500, 300, 100),
		p.storageCapacities(),
		now,
	)
	p.recompute(now)
	return p
}

// ReconstructPlanet restores a planet from persisted state. Repositories
// only; skips the starting-resource bootstrap.
func ReconstructPlanet(
	id shared.PlanetID,
	name string,
	owner OwnerKind,
	coordinates shared.Coordinates,
	ledger *economy.Ledger,
	buildings map[catalog.EntityID]int,
	technologies map[catalog.EntityID]int,
	ships map[catalog.EntityID]int,
	defenses map[catalog.EntityID]int,
	cat catalog.Catalog,
) *Planet {
	if buildings == nil {
		buildings = make(map[catalog.EntityID]int)
	}
	if technologies == nil {
		technologies = make(map[catalog.EntityID]int)
	}
	if ships == nil {
		ships = make(map[catalog.EntityID]int)
	}
	if defenses == nil {
		defenses = make(map[catalog.EntityID]int)
	}
	return &Planet{
		id:           id,
		name:         name,
		owner:        owner,
		coordinates:  coordinates,
		ledger:       ledger,
		buildings:    buildings,
		technologies: technologies,
		ships:        ships,
		defenses:     defenses,
		catalog:      cat,
	}
}

// Lock acquires the planet's mutual-exclusion scope
func (p *Planet) Lock() {
	p.mu.Lock()
}

// Unlock releases the planet's mutual-exclusion scope
func (p *Planet) Unlock() {
	p.mu.Unlock()
}

// LockPair locks two planets in coordinate order so that concurrent
// cross-planet operations (attack, transport) cannot deadlock. Returns an
// unlock function releasing both.
func LockPair(a, b *Planet) func() {
	if a == b {
		a.Lock()
		return a.Unlock
	}
	first, second := a, b
	if second.coordinates.Less(first.coordinates) {
		first, second = second, first
	}
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}

// Getters (callers hold the lock when freshness matters)

func (p *Planet) ID() shared.PlanetID {
	return p.id
}

func (p *Planet) Name() string {
	return p.name
}

func (p *Planet) Owner() OwnerKind {
	return p.owner
}

func (p *Planet) Coordinates() shared.Coordinates {
	return p.coordinates
}

// Ledger returns the planet's resource ledger. Callers must hold the
// planet's lock while operating on it.
func (p *Planet) Ledger() *economy.Ledger {
	return p.ledger
}

// BuildingLevel returns the level of a building (0 if never built)
func (p *Planet) BuildingLevel(id catalog.EntityID) int {
	return p.buildings[id]
}

// TechnologyLevel returns the level of a technology (0 if never researched)
func (p *Planet) TechnologyLevel(id catalog.EntityID) int {
	return p.technologies[id]
}

// ShipCount returns how many ships of a type are stationed here
func (p *Planet) ShipCount(id catalog.EntityID) int {
	return p.ships[id]
}

// DefenseCount returns how many defenses of a type are built here
func (p *Planet) DefenseCount(id catalog.EntityID) int {
	return p.defenses[id]
}

// Ships returns a copy of the stationed ship counts
func (p *Planet) Ships() map[catalog.EntityID]int {
	return copyCounts(p.ships)
}

// Defenses returns a copy of the defense counts
func (p *Planet) Defenses() map[catalog.EntityID]int {
	return copyCounts(p.defenses)
}

// Buildings returns a copy of the building levels
func (p *Planet) Buildings() map[catalog.EntityID]int {
	return copyCounts(p.buildings)
}

// Technologies returns a copy of the technology levels
func (p *Planet) Technologies() map[catalog.EntityID]int {
	return copyCounts(p.technologies)
}

// Levels returns the snapshot the requirement resolver consumes
func (p *Planet) Levels() requirement.Levels {
	return requirement.Levels{
		Buildings:    copyCounts(p.buildings),
		Technologies: copyCounts(p.technologies),
	}
}

// CountOf returns the owned level or count for an entity of any kind
func (p *Planet) CountOf(kind catalog.Kind, id catalog.EntityID) int {
	switch kind {
	case catalog.KindBuilding:
		return p.buildings[id]
	case catalog.KindTechnology:
		return p.technologies[id]
	case catalog.KindShip:
		return p.ships[id]
	case catalog.KindDefense:
		return p.defenses[id]
	}
	return 0
}

// Mutations (callers hold the lock)

// IncrementBuilding raises a building by one level, settling production at
// the old rate first and then recomputing rates, caps and energy.
func (p *Planet) IncrementBuilding(id catalog.EntityID, now time.Time) {
	p.ledger.Settle(now)
	p.buildings[id]++
	p.recompute(now)
}

// IncrementTechnology raises a technology by one level. Technologies cap at
// MaxTechnologyLevel; attempting to exceed it is an invariant violation
// because enqueue gating should have refused it.
func (p *Planet) IncrementTechnology(id catalog.EntityID) error {
	if p.technologies[id] >= catalog.MaxTechnologyLevel {
		return shared.NewInvariantViolationError(
			"technology %s already at max level %d", id, catalog.MaxTechnologyLevel)
	}
	p.technologies[id]++
	return nil
}

// AddShips credits ships into the stationed inventory
func (p *Planet) AddShips(id catalog.EntityID, count int) {
	if count <= 0 {
		return
	}
	p.ships[id] += count
}

// RemoveShips checks ships out of the stationed inventory. Removing more
// than owned is an invariant violation and leaves the inventory untouched.
func (p *Planet) RemoveShips(id catalog.EntityID, count int) error {
	if count <= 0 {
		return nil
	}
	if p.ships[id] < count {
		return shared.NewInvariantViolationError(
			"ship count for %s would go negative: have %d, removing %d", id, p.ships[id], count)
	}
	p.ships[id] -= count
	if p.ships[id] == 0 {
		delete(p.ships, id)
	}
	return nil
}

// AddDefenses credits defenses
func (p *Planet) AddDefenses(id catalog.EntityID, count int) {
	if count <= 0 {
		return
	}
	p.defenses[id] += count
}

// RemoveDefenses removes destroyed defenses, clamping is not allowed
func (p *Planet) RemoveDefenses(id catalog.EntityID, count int) error {
	if count <= 0 {
		return nil
	}
	if p.defenses[id] < count {
		return shared.NewInvariantViolationError(
			"defense count for %s would go negative: have %d, removing %d", id, p.defenses[id], count)
	}
	p.defenses[id] -= count
	if p.defenses[id] == 0 {
		delete(p.defenses, id)
	}
	return nil
}

// Recompute re-derives rates, caps and energy from the current building
// levels. Repositories call it after reconstruction since those are
// derived state, not persisted truth. Callers hold the lock.
func (p *Planet) Recompute(now time.Time) {
	p.recompute(now)
}

// recompute rebuilds the ledger's rate vector, storage caps and energy
// balance from the current building levels. Invoked on every building change.
func (p *Planet) recompute(now time.Time) {
	var rates shared.Resources
	produced, consumed := 0, 0

	for id, level := range p.buildings {
		entry, err := p.catalog.GetEntry(id)
		if err != nil {
			continue
		}
		rates = rates.Add(entry.ProductionAtLevel(level))
		produced += entry.EnergyProducedAtLevel(level)
		consumed += entry.EnergyConsumedAtLevel(level)
	}

	p.ledger.SetCapacities(p.storageCapacities())
	p.ledger.SetEnergy(produced, consumed)
	p.ledger.SetRates(rates)
}

// storageCapacities derives the three storage caps from the storage
// building levels (level 0 yields the base planetary cap).
func (p *Planet) storageCapacities() shared.Resources {
	capFor := func(id catalog.EntityID) float64 {
		entry, err := p.catalog.GetEntry(id)
		if err != nil {
			return 0
		}
		return entry.StorageCapacityAtLevel(p.buildings[id])
	}
	return shared.NewResources(
		capFor(catalog.MetalStorage),
		capFor(catalog.CrystalStorage),
		capFor(catalog.DeuteriumTank),
	)
}

func copyCounts(m map[catalog.EntityID]int) map[catalog.EntityID]int {
	out := make(map[catalog.EntityID]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
