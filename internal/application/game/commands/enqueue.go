package commands

import (
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/application/events"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/ai"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/queue"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// EnqueueResponse is the shared result shape of the four enqueue
// commands. A refused enqueue is not an error: Accepted is false and
// Reason carries the player-facing explanation verbatim.
type EnqueueResponse struct {
	Accepted bool
	Reason   string
	ItemID   string
}

// enqueueDeps bundles what every enqueue handler needs
type enqueueDeps struct {
	world *game.World
	ai    *ai.Engine
	bus   *events.ChangeBus
	clock shared.Clock
}

// enqueue runs the common path: look up the queue, attempt the enqueue,
// notify the AI population on success and pulse the change bus. The
// notify callback carries the per-kind AI event.
func (d *enqueueDeps) enqueue(
	planetID string,
	kind queue.Kind,
	entity string,
	quantity int,
	notify func(catalog.EntityID, time.Time),
) (*EnqueueResponse, error) {
	pid, err := shared.NewPlanetIDFromString(planetID)
	if err != nil {
		return nil, shared.NewValidationError("planetId", "must be a valid planet id")
	}

	q, err := d.world.Queue(pid, kind)
	if err != nil {
		return nil, err
	}

	now := d.clock.Now()
	item, err := q.Enqueue(catalog.EntityID(entity), quantity, now)
	if err != nil {
		if shared.IsPrecondition(err) {
			return &EnqueueResponse{Accepted: false, Reason: err.Error()}, nil
		}
		return nil, err
	}

	if notify != nil {
		notify(catalog.EntityID(entity), now)
	}
	d.bus.Publish()

	return &EnqueueResponse{Accepted: true, ItemID: item.ID().String()}, nil
}
