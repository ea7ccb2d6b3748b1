package queue

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// ItemStatus tracks a queue item's lifecycle
type ItemStatus string

const (
	// ItemStatusQueued means the item is waiting behind the head
	ItemStatusQueued ItemStatus = "QUEUED"

	// ItemStatusInProgress means the item is the head and consuming time
	ItemStatusInProgress ItemStatus = "IN_PROGRESS"

	// ItemStatusCompleted means every unit finished (terminal, item removed)
	ItemStatusCompleted ItemStatus = "COMPLETED"

	// ItemStatusCanceled means the item was canceled (terminal, item removed)
	ItemStatusCanceled ItemStatus = "CANCELED"
)

// ItemID is a value object identifying one queue item
type ItemID struct {
	value string
}

// NewItemID creates a new ItemID with a generated UUID
func NewItemID() ItemID {
	return ItemID{value: uuid.New().String()}
}

// NewItemIDFromString creates an ItemID from an existing UUID string
func NewItemIDFromString(id string) (ItemID, error) {
	if id == "" {
		return ItemID{}, fmt.Errorf("item_id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return ItemID{}, fmt.Errorf("invalid item_id format: %w", err)
	}
	return ItemID{value: id}, nil
}

func (i ItemID) String() string {
	return i.value
}

func (i ItemID) IsZero() bool {
	return i.value == ""
}

// Item is one pending or in-progress batch of work: a catalog entry, how
// many units remain, and the countdown for the unit currently building.
// Cost is debited in full at enqueue time; unfinished units are refunded
// (at the queue's refund fraction) on cancel.
type Item struct {
	id          ItemID
	entry       *catalog.Entry
	quantity    int // units not yet completed, including the one in progress
	unitsTotal  int
	perUnit     time.Duration
	remaining   time.Duration
	perUnitCost shared.Resources
	status      ItemStatus
}

func newItem(entry *catalog.Entry, quantity int, perUnit time.Duration, perUnitCost shared.Resources) *Item {
	return &Item{
		id:          NewItemID(),
		entry:       entry,
		quantity:    quantity,
		unitsTotal:  quantity,
		perUnit:     perUnit,
		remaining:   perUnit,
		perUnitCost: perUnitCost,
		status:      ItemStatusQueued,
	}
}

// ReconstructItem restores a queue item from persistence
func ReconstructItem(
	id ItemID,
	entry *catalog.Entry,
	quantity int,
	unitsTotal int,
	perUnit time.Duration,
	remaining time.Duration,
	perUnitCost shared.Resources,
	status ItemStatus,
) *Item {
	return &Item{
		id:          id,
		entry:       entry,
		quantity:    quantity,
		unitsTotal:  unitsTotal,
		perUnit:     perUnit,
		remaining:   remaining,
		perUnitCost: perUnitCost,
		status:      status,
	}
}

// Getters

func (i *Item) ID() ItemID {
	return i.id
}

func (i *Item) Entry() *catalog.Entry {
	return i.entry
}

// Quantity returns how many units are still pending, including the unit
// currently in progress
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitsTotal returns the batch size at enqueue time
func (i *Item) UnitsTotal() int {
	return i.unitsTotal
}

// PerUnitDuration returns the build time of one unit
func (i *Item) PerUnitDuration() time.Duration {
	return i.perUnit
}

// Remaining returns the time left on the unit currently in progress
func (i *Item) Remaining() time.Duration {
	return i.remaining
}

// PerUnitCost returns the cost debited per unit at enqueue time
func (i *Item) PerUnitCost() shared.Resources {
	return i.perUnitCost
}

func (i *Item) Status() ItemStatus {
	return i.status
}

func (i *Item) String() string {
	return fmt.Sprintf("Item[%s %s x%d, %s/unit, %s left]",
		i.id, i.entry.ID, i.quantity, i.perUnit, i.remaining)
}
