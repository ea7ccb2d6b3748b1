package commands

import (
	"context"
	"fmt"

	"github.com/danielp299/ogamecloneapp-sub000/internal/application/common"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/events"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/ai"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/queue"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// EnqueueConstructionCommand queues one or more building upgrades on a
// planet. Each queued unit is one level.
type EnqueueConstructionCommand struct {
	PlanetID string
	Building string
	Quantity int
}

// EnqueueConstructionHandler handles the EnqueueConstruction command
type EnqueueConstructionHandler struct {
	deps enqueueDeps
}

// NewEnqueueConstructionHandler creates a new EnqueueConstructionHandler
func NewEnqueueConstructionHandler(world *game.World, aiEngine *ai.Engine, bus *events.ChangeBus, clock shared.Clock) *EnqueueConstructionHandler {
	return &EnqueueConstructionHandler{deps: enqueueDeps{world: world, ai: aiEngine, bus: bus, clock: clock}}
}

// Handle executes the EnqueueConstruction command. On acceptance the AI
// population reacts to the building event before the response returns.
func (h *EnqueueConstructionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*EnqueueConstructionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	quantity := cmd.Quantity
	if quantity == 0 {
		quantity = 1
	}

	return h.deps.enqueue(cmd.PlanetID, queue.KindConstruction, cmd.Building, quantity, h.deps.ai.OnBuildingUpgraded)
}
