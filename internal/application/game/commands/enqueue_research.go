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

// EnqueueResearchCommand queues technology levels on a planet's
// research queue
type EnqueueResearchCommand struct {
	PlanetID   string
	Technology string
	Quantity   int
}

// EnqueueResearchHandler handles the EnqueueResearch command
type EnqueueResearchHandler struct {
	deps enqueueDeps
}

// NewEnqueueResearchHandler creates a new EnqueueResearchHandler
func NewEnqueueResearchHandler(world *game.World, aiEngine *ai.Engine, bus *events.ChangeBus, clock shared.Clock) *EnqueueResearchHandler {
	return &EnqueueResearchHandler{deps: enqueueDeps{world: world, ai: aiEngine, bus: bus, clock: clock}}
}

// Handle executes the EnqueueResearch command
func (h *EnqueueResearchHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*EnqueueResearchCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	quantity := cmd.Quantity
	if quantity == 0 {
		quantity = 1
	}

	return h.deps.enqueue(cmd.PlanetID, queue.KindResearch, cmd.Technology, quantity, h.deps.ai.OnTechnologyResearched)
}
