package ai

import (
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/requirement"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/universe"
)

// Category is an AI action category, mirroring the four queue kinds
type Category string

const (
	CategoryBuilding Category = "BUILDING"
	CategoryResearch Category = "RESEARCH"
	CategoryShip     Category = "SHIP"
	CategoryDefense  Category = "DEFENSE"
)

// Probabilities are the reactive engine's tuning knobs, all in [0, 1]
type Probabilities struct {
	// Per-event trigger chance by triggering category
	BuildingTrigger float64
	ResearchTrigger float64
	ShipTrigger     float64
	DefenseTrigger  float64
	AttackTrigger   float64

	// MirrorBias is the chance of copying the player's exact action when
	// it is in the actor's own whitelist
	MirrorBias float64

	// ColonizeChance is the independent per-building-event roll for
	// founding a new actor
	ColonizeChance float64

	// MaxActionsPerEvent caps how many actions one event may cause
	MaxActionsPerEvent int
}

// DefaultProbabilities returns the reference tuning
func DefaultProbabilities() Probabilities {
	return Probabilities{
		BuildingTrigger:    0.70,
		ResearchTrigger:    0.80,
		ShipTrigger:        0.60,
		DefenseTrigger:     0.60,
		AttackTrigger:      0.60,
		MirrorBias:         0.50,
		ColonizeChance:     0.05,
		MaxActionsPerEvent: 2,
	}
}

// ColonyFounder creates and registers a new AI planet on a free slot
type ColonyFounder interface {
	FoundColony(name string, owner planet.OwnerKind, coords shared.Coordinates, now time.Time) (*planet.Planet, error)
}

// Engine is the reactive decision loop over the AI population. It exposes
// one entry point per player-triggered domain event; handlers run
// synchronously on the calling thread and serialize the whole population
// mutation under a single critical section per event.
type Engine struct {
	mu     sync.Mutex
	actors map[shared.PlanetID]*Actor

	catalog  catalog.Catalog
	universe universe.Universe
	founder  ColonyFounder
	probs    Probabilities
	rng      *rand.Rand

	// onAction, when set, observes every applied action (metrics hook)
	onAction func(Category)
}

// NewEngine creates a reactive AI engine. A nil rng falls back to a
// time-seeded source; tests inject a fixed seed for determinism.
func NewEngine(cat catalog.Catalog, uni universe.Universe, probs Probabilities, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if probs.MaxActionsPerEvent <= 0 {
		probs.MaxActionsPerEvent = 1
	}
	return &Engine{
		actors:   make(map[shared.PlanetID]*Actor),
		catalog:  cat,
		universe: uni,
		probs:    probs,
		rng:      rng,
	}
}

// SetColonyFounder wires the colonization callback
func (e *Engine) SetColonyFounder(founder ColonyFounder) {
	e.founder = founder
}

// SetActionObserver wires a per-action hook (metrics)
func (e *Engine) SetActionObserver(fn func(Category)) {
	e.onAction = fn
}

// AddActor registers an actor with the engine
func (e *Engine) AddActor(actor *Actor) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.actors[actor.home.ID()] = actor
}

// RemoveActor destroys an actor (explicit reset only)
func (e *Engine) RemoveActor(id shared.PlanetID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.actors, id)
}

// Actors returns a snapshot of the population
func (e *Engine) Actors() []*Actor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.actorsLocked()
}

// actorsLocked returns the population sorted by planet id, so a seeded rng
// replays the same decision sequence for the same population regardless of
// registration order. Callers hold e.mu.
func (e *Engine) actorsLocked() []*Actor {
	actors := make([]*Actor, 0, len(e.actors))
	for _, a := range e.actors {
		actors = append(actors, a)
	}
	sort.Slice(actors, func(i, j int) bool {
		return actors[i].home.ID().String() < actors[j].home.ID().String()
	})
	return actors
}

// Event entry points. Each runs the whole population reaction inside one
// critical section so concurrent domain events cannot interleave reads and
// writes of the same actor.

// OnBuildingUpgraded reacts to the player upgrading a building. Also rolls
// the independent colonization chance.
func (e *Engine) OnBuildingUpgraded(id catalog.EntityID, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reactAll(e.probs.BuildingTrigger, CategoryBuilding, id, now)

	if e.rng.Float64() < e.probs.ColonizeChance {
		e.colonize(now)
	}
}

// OnTechnologyResearched reacts to the player completing research
func (e *Engine) OnTechnologyResearched(id catalog.EntityID, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reactAll(e.probs.ResearchTrigger, CategoryResearch, id, now)
}

// OnShipBuilt reacts to the player building ships
func (e *Engine) OnShipBuilt(id catalog.EntityID, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reactAll(e.probs.ShipTrigger, CategoryShip, id, now)
}

// OnDefenseBuilt reacts to the player building defenses
func (e *Engine) OnDefenseBuilt(id catalog.EntityID, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reactAll(e.probs.DefenseTrigger, CategoryDefense, id, now)
}

// AttackResolved reacts to a resolved attack anywhere in the universe;
// actors shore up with no mirror bias. Satisfies the fleet engine's
// resolution observer.
func (e *Engine) AttackResolved(target shared.Coordinates, attackerWon bool, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reactAll(e.probs.AttackTrigger, "", "", now)
}

// reactAll runs the per-actor decision sequence for every actor.
// Callers hold e.mu.
func (e *Engine) reactAll(trigger float64, triggering Category, mirror catalog.EntityID, now time.Time) {
	for _, actor := range e.actorsLocked() {
		actor.home.Lock()
		e.reactActor(actor, trigger, triggering, mirror, now)
		actor.home.Unlock()
	}
}

// reactActor is the per-actor decision sequence: settle, whitelist, trigger
// roll, then one or two actions with an affordability re-check each. An
// actor with nothing unlocked in the triggering category sits the event
// out entirely; it takes no action and spends nothing.
// Callers hold e.mu and the actor's planet lock.
func (e *Engine) reactActor(actor *Actor, trigger float64, triggering Category, mirror catalog.EntityID, now time.Time) {
	home := actor.home
	home.Ledger().Settle(now)

	whitelist := e.whitelist(home)
	if triggering != "" && len(whitelist[triggering]) == 0 {
		return
	}

	if e.rng.Float64() >= trigger {
		return
	}

	budget := 1 + e.rng.Intn(e.probs.MaxActionsPerEvent)
	mirrorEntry := e.mirrorCandidate(mirror, whitelist)

	for budget > 0 {
		categories := nonEmptyCategories(whitelist)
		if len(categories) == 0 {
			return
		}

		var entry *catalog.Entry
		if mirrorEntry != nil && e.rng.Float64() < e.probs.MirrorBias {
			entry = mirrorEntry
			mirrorEntry = nil
		} else {
			category := categories[e.rng.Intn(len(categories))]
			options := whitelist[category]
			entry = options[e.rng.Intn(len(options))]
		}

		if e.applyAction(actor, entry, now) {
			budget--
			actor.lastActivity = now
		} else {
			// Unaffordable: the category drops out of the candidate set
			// for this event without consuming the action budget
			delete(whitelist, categoryOf(entry.Kind))
			if mirrorEntry != nil && categoryOf(mirrorEntry.Kind) == categoryOf(entry.Kind) {
				mirrorEntry = nil
			}
		}
	}
}

// whitelist computes the actor's currently-unlocked entries per category.
// Callers hold the planet lock.
func (e *Engine) whitelist(home *planet.Planet) map[Category][]*catalog.Entry {
	levels := home.Levels()
	wl := make(map[Category][]*catalog.Entry)

	appendIf := func(category Category, entry *catalog.Entry, ok bool) {
		if ok && requirement.IsUnlocked(entry.Requirements, levels) {
			wl[category] = append(wl[category], entry)
		}
	}

	for _, entry := range e.catalog.EntriesByKind(catalog.KindBuilding) {
		appendIf(CategoryBuilding, entry, true)
	}
	for _, entry := range e.catalog.EntriesByKind(catalog.KindTechnology) {
		appendIf(CategoryResearch, entry, home.TechnologyLevel(entry.ID) < catalog.MaxTechnologyLevel)
	}
	for _, entry := range e.catalog.EntriesByKind(catalog.KindShip) {
		appendIf(CategoryShip, entry, true)
	}
	for _, entry := range e.catalog.EntriesByKind(catalog.KindDefense) {
		appendIf(CategoryDefense, entry, !entry.UniquePerPlanet || home.DefenseCount(entry.ID) == 0)
	}

	for category, entries := range wl {
		if len(entries) == 0 {
			delete(wl, category)
		}
	}
	return wl
}

// mirrorCandidate returns the entry matching the player's triggering action
// if the actor has it unlocked
func (e *Engine) mirrorCandidate(mirror catalog.EntityID, whitelist map[Category][]*catalog.Entry) *catalog.Entry {
	if mirror == "" {
		return nil
	}
	for _, entries := range whitelist {
		for _, entry := range entries {
			if entry.ID == mirror {
				return entry
			}
		}
	}
	return nil
}

// applyAction debits the cost from the actor's own ledger and applies the
// effect. AI builds are instantaneous; actors do not run queues.
// Returns false when unaffordable.
func (e *Engine) applyAction(actor *Actor, entry *catalog.Entry, now time.Time) bool {
	home := actor.home
	level := home.CountOf(entry.Kind, entry.ID)
	cost := entry.CostAtLevel(level)

	if err := home.Ledger().Debit(cost, now); err != nil {
		return false
	}

	switch entry.Kind {
	case catalog.KindBuilding:
		home.IncrementBuilding(entry.ID, now)
	case catalog.KindTechnology:
		if err := home.IncrementTechnology(entry.ID); err != nil {
			log.Printf("ai: actor %s: %v", home.ID(), err)
			home.Ledger().Credit(cost, now)
			return false
		}
	case catalog.KindShip:
		home.AddShips(entry.ID, 1)
	case catalog.KindDefense:
		home.AddDefenses(entry.ID, 1)
	}

	if e.onAction != nil {
		e.onAction(categoryOf(entry.Kind))
	}
	return true
}

// colonize founds a new actor on a free slot near a random existing actor.
// Callers hold e.mu.
func (e *Engine) colonize(now time.Time) {
	if e.founder == nil || len(e.actors) == 0 {
		return
	}

	// Pick a random settled actor as the origin of the expansion
	actors := e.actorsLocked()
	origin := actors[e.rng.Intn(len(actors))]

	slots := e.universe.FreeSlotsNear(origin.home.Coordinates(), 1)
	if len(slots) == 0 {
		return
	}

	colony, err := e.founder.FoundColony("Outpost", planet.OwnerAI, slots[0], now)
	if err != nil {
		log.Printf("ai: colonization of %s failed: %v", slots[0], err)
		return
	}

	// Minimal starting infrastructure
	colony.Lock()
	colony.IncrementBuilding(catalog.MetalMine, now)
	colony.IncrementBuilding(catalog.SolarPlant, now)
	colony.Unlock()

	e.actors[colony.ID()] = NewActor(colony, now)
}

func nonEmptyCategories(whitelist map[Category][]*catalog.Entry) []Category {
	categories := make([]Category, 0, len(whitelist))
	for _, c := range []Category{CategoryBuilding, CategoryResearch, CategoryShip, CategoryDefense} {
		if len(whitelist[c]) > 0 {
			categories = append(categories, c)
		}
	}
	return categories
}

func categoryOf(kind catalog.Kind) Category {
	switch kind {
	case catalog.KindBuilding:
		return CategoryBuilding
	case catalog.KindTechnology:
		return CategoryResearch
	case catalog.KindShip:
		return CategoryShip
	case catalog.KindDefense:
		return CategoryDefense
	}
	return ""
}
