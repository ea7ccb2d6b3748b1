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

// BuildDefenseCommand queues a batch of defenses on a planet's defense
// queue. Shield domes are unique per planet; oversized batches are
// truncated to the single missing unit.
type BuildDefenseCommand struct {
	PlanetID string
	Defense  string
	Quantity int
}

// BuildDefenseHandler handles the BuildDefense command
type BuildDefenseHandler struct {
	deps enqueueDeps
}

// NewBuildDefenseHandler creates a new BuildDefenseHandler
func NewBuildDefenseHandler(world *game.World, aiEngine *ai.Engine, bus *events.ChangeBus, clock shared.Clock) *BuildDefenseHandler {
	return &BuildDefenseHandler{deps: enqueueDeps{world: world, ai: aiEngine, bus: bus, clock: clock}}
}

// Handle executes the BuildDefense command
func (h *BuildDefenseHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*BuildDefenseCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	return h.deps.enqueue(cmd.PlanetID, queue.KindDefense, cmd.Defense, cmd.Quantity, h.deps.ai.OnDefenseBuilt)
}
