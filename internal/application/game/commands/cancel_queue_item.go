package commands

import (
	"context"
	"fmt"

	"github.com/danielp299/ogamecloneapp-sub000/internal/application/common"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/events"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/queue"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// CancelQueueItemCommand removes an item from one of a planet's queues
// and refunds the unfinished units
type CancelQueueItemCommand struct {
	PlanetID string
	Queue    string
	ItemID   string
}

// CancelQueueItemResponse reports the refunded amount
type CancelQueueItemResponse struct {
	Refund shared.Resources
}

// CancelQueueItemHandler handles the CancelQueueItem command
type CancelQueueItemHandler struct {
	world *game.World
	bus   *events.ChangeBus
	clock shared.Clock
}

// NewCancelQueueItemHandler creates a new CancelQueueItemHandler
func NewCancelQueueItemHandler(world *game.World, bus *events.ChangeBus, clock shared.Clock) *CancelQueueItemHandler {
	return &CancelQueueItemHandler{world: world, bus: bus, clock: clock}
}

// Handle executes the CancelQueueItem command
func (h *CancelQueueItemHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CancelQueueItemCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	pid, err := shared.NewPlanetIDFromString(cmd.PlanetID)
	if err != nil {
		return nil, shared.NewValidationError("planetId", "must be a valid planet id")
	}

	kind := queue.Kind(cmd.Queue)
	if !kind.IsValid() {
		return nil, shared.NewValidationError("queue", fmt.Sprintf("unknown queue kind %q", cmd.Queue))
	}

	itemID, err := queue.NewItemIDFromString(cmd.ItemID)
	if err != nil {
		return nil, shared.NewValidationError("itemId", "must be a valid item id")
	}

	q, err := h.world.Queue(pid, kind)
	if err != nil {
		return nil, err
	}

	refund, err := q.Cancel(itemID, h.clock.Now())
	if err != nil {
		return nil, err
	}

	h.bus.Publish()
	return &CancelQueueItemResponse{Refund: refund}, nil
}
