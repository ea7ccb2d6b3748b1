package queue

import (
	"log"
	"math"
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/requirement"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// Kind identifies one of the four queue instances each planet owns
type Kind string

const (
	KindConstruction Kind = "CONSTRUCTION"
	KindResearch     Kind = "RESEARCH"
	KindShipyard     Kind = "SHIPYARD"
	KindDefense      Kind = "DEFENSE"
)

// AllKinds returns the four queue kinds in a stable order
func AllKinds() []Kind {
	return []Kind{KindConstruction, KindResearch, KindShipyard, KindDefense}
}

// Accepts returns the catalog kind this queue builds
func (k Kind) Accepts() catalog.Kind {
	switch k {
	case KindConstruction:
		return catalog.KindBuilding
	case KindResearch:
		return catalog.KindTechnology
	case KindShipyard:
		return catalog.KindShip
	case KindDefense:
		return catalog.KindDefense
	}
	return ""
}

// IsValid returns true if the kind is one of the defined constants
func (k Kind) IsValid() bool {
	return k.Accepts() != ""
}

// facilityProfile names the two buildings whose levels shorten this
// queue's build times
type facilityProfile struct {
	primary   catalog.EntityID
	secondary catalog.EntityID
}

func profileFor(kind Kind) facilityProfile {
	switch kind {
	case KindConstruction:
		return facilityProfile{primary: catalog.RoboticsFactory, secondary: catalog.NaniteFactory}
	case KindResearch:
		return facilityProfile{primary: catalog.ResearchLab}
	case KindShipyard, KindDefense:
		return facilityProfile{primary: catalog.Shipyard, secondary: catalog.NaniteFactory}
	}
	return facilityProfile{}
}

// Queue is one strictly-FIFO sequential processor. Each planet owns four
// instances (construction, research, shipyard, defense) that tick
// independently; within one queue only the head item consumes time.
//
// Every operation runs under the owning planet's lock, so a cancellation
// arriving between ticks is always observed before the next decrement.
type Queue struct {
	kind           Kind
	planet         *planet.Planet
	catalog        catalog.Catalog
	refundFraction float64
	profile        facilityProfile

	items    []*Item
	lastTick time.Time
}

// NewQueue creates an empty queue for one planet.
// refundFraction is the share of paid cost returned on cancel, in [0, 1].
func NewQueue(kind Kind, p *planet.Planet, cat catalog.Catalog, refundFraction float64, now time.Time) *Queue {
	if refundFraction < 0 {
		refundFraction = 0
	}
	if refundFraction > 1 {
		refundFraction = 1
	}
	return &Queue{
		kind:           kind,
		planet:         p,
		catalog:        cat,
		refundFraction: refundFraction,
		profile:        profileFor(kind),
		items:          []*Item{},
		lastTick:       now,
	}
}

// Kind returns which of the four queue kinds this is
func (q *Queue) Kind() Kind {
	return q.kind
}

// Planet returns the owning planet
func (q *Queue) Planet() *planet.Planet {
	return q.planet
}

// Enqueue validates, debits and appends one batch of work.
//
// The affordability check and the debit happen atomically under the planet
// lock, so a concurrent tick can never observe the cost half-applied. All
// refusals are precondition errors carrying the player-facing reason.
func (q *Queue) Enqueue(id catalog.EntityID, quantity int, now time.Time) (*Item, error) {
	q.planet.Lock()
	defer q.planet.Unlock()

	if quantity <= 0 {
		return nil, shared.NewPreconditionError("Quantity must be positive")
	}

	entry, err := q.catalog.GetEntry(id)
	if err != nil {
		return nil, shared.NewPreconditionError("Unknown entity %s", id)
	}
	if entry.Kind != q.kind.Accepts() {
		return nil, shared.NewPreconditionError("%s cannot be built in the %s queue", id, q.kind)
	}

	if !requirement.IsUnlocked(entry.Requirements, q.planet.Levels()) {
		return nil, shared.NewRequirementsNotMetError(string(id))
	}

	currentLevel := q.planet.CountOf(entry.Kind, id)

	if entry.Kind == catalog.KindTechnology {
		pending := q.queuedUnits(id)
		if currentLevel+pending+quantity > catalog.MaxTechnologyLevel {
			return nil, shared.NewPreconditionError(
				"%s cannot be researched past level %d", id, catalog.MaxTechnologyLevel)
		}
	}

	// Unique entries (shield domes): truncate the request to the global cap
	// of one existing-plus-queued instance instead of rejecting outright.
	if entry.UniquePerPlanet {
		allowed := 1 - currentLevel - q.queuedUnits(id)
		if allowed <= 0 {
			return nil, shared.NewPreconditionError("%s is already built or queued", id)
		}
		if quantity > allowed {
			quantity = allowed
		}
	}

	perUnitCost := entry.CostAtLevel(currentLevel)
	totalCost := perUnitCost.Scale(float64(quantity))
	if err := q.planet.Ledger().Debit(totalCost, now); err != nil {
		return nil, err
	}

	item := newItem(entry, quantity, q.perUnitDuration(entry), perUnitCost)
	q.items = append(q.items, item)
	if len(q.items) == 1 {
		item.status = ItemStatusInProgress
	}
	return item, nil
}

// perUnitDuration computes one unit's build time from the base duration and
// the planet's facility levels: base / ((1 + primary) × 2^secondary),
// floored to one second.
func (q *Queue) perUnitDuration(entry *catalog.Entry) time.Duration {
	primary := q.planet.BuildingLevel(q.profile.primary)
	secondary := 0
	if q.profile.secondary != "" {
		secondary = q.planet.BuildingLevel(q.profile.secondary)
	}

	divisor := float64(1+primary) * math.Pow(2, float64(secondary))
	d := time.Duration(float64(entry.BaseDuration) / divisor)
	if d < time.Second {
		return time.Second
	}
	return d
}

// Tick advances the head item by the wall-clock time elapsed since the last
// tick, applying as many unit completions as that time covers (missed ticks
// catch up rather than drift). Returns the number of units completed.
//
// A completion that trips an invariant drops the
// faulty item without refund and the loop continues; a queue tick never
// aborts the whole queue.
func (q *Queue) Tick(now time.Time) int {
	q.planet.Lock()
	defer q.planet.Unlock()

	elapsed := now.Sub(q.lastTick)
	if elapsed < 0 {
		elapsed = 0
	}
	q.lastTick = now
	if elapsed == 0 || len(q.items) == 0 {
		return 0
	}

	completions := 0
	for elapsed > 0 && len(q.items) > 0 {
		head := q.items[0]
		if head.status == ItemStatusQueued {
			head.status = ItemStatusInProgress
			head.remaining = head.perUnit
		}

		if head.remaining > elapsed {
			head.remaining -= elapsed
			break
		}

		elapsed -= head.remaining
		head.remaining = 0

		if err := q.applyCompletion(head, now); err != nil {
			log.Printf("queue %s on %s: dropping faulty item %s: %v",
				q.kind, q.planet.ID(), head.ID(), err)
			head.status = ItemStatusCanceled
			q.items = q.items[1:]
			continue
		}
		completions++

		head.quantity--
		if head.quantity > 0 {
			head.remaining = head.perUnit
		} else {
			head.status = ItemStatusCompleted
			q.items = q.items[1:]
		}
	}
	return completions
}

// applyCompletion credits one finished unit to the owning planet
func (q *Queue) applyCompletion(item *Item, now time.Time) error {
	id := item.entry.ID
	switch item.entry.Kind {
	case catalog.KindBuilding:
		// Settles at the old rate, then recomputes rates, caps and the
		// energy balance with the new level
		q.planet.IncrementBuilding(id, now)
		return nil
	case catalog.KindTechnology:
		return q.planet.IncrementTechnology(id)
	case catalog.KindShip:
		q.planet.AddShips(id, 1)
		return nil
	case catalog.KindDefense:
		q.planet.AddDefenses(id, 1)
		return nil
	}
	return shared.NewInvariantViolationError("queue item %s has unknown kind %s", item.ID(), item.entry.Kind)
}

// Cancel removes an item and refunds refundFraction of the cost paid for
// its unfinished units. Canceling an unknown (or already canceled) item
// reports not-found; there is no double refund.
func (q *Queue) Cancel(id ItemID, now time.Time) (shared.Resources, error) {
	q.planet.Lock()
	defer q.planet.Unlock()

	for idx, item := range q.items {
		if item.id != id {
			continue
		}
		refund := item.perUnitCost.Scale(float64(item.quantity) * q.refundFraction)
		q.planet.Ledger().Credit(refund, now)
		item.status = ItemStatusCanceled
		q.items = append(q.items[:idx], q.items[idx+1:]...)
		return refund, nil
	}
	return shared.Resources{}, shared.NewNotFoundError("queue item", id.String())
}

// Items returns a snapshot copy of the queue contents in FIFO order
func (q *Queue) Items() []*Item {
	q.planet.Lock()
	defer q.planet.Unlock()

	items := make([]*Item, len(q.items))
	copy(items, q.items)
	return items
}

// Len returns the number of pending items
func (q *Queue) Len() int {
	q.planet.Lock()
	defer q.planet.Unlock()
	return len(q.items)
}

// LastTick returns when the queue head last advanced
func (q *Queue) LastTick() time.Time {
	q.planet.Lock()
	defer q.planet.Unlock()
	return q.lastTick
}

// Restore injects persisted items into an empty queue (repositories only)
func (q *Queue) Restore(items []*Item, lastTick time.Time) {
	q.planet.Lock()
	defer q.planet.Unlock()

	q.items = items
	q.lastTick = lastTick
}

// queuedUnits counts pending units of one entity across the queue,
// callers hold the planet lock
func (q *Queue) queuedUnits(id catalog.EntityID) int {
	total := 0
	for _, item := range q.items {
		if item.entry.ID == id {
			total += item.quantity
		}
	}
	return total
}
