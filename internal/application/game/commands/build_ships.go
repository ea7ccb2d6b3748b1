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

// BuildShipsCommand queues a batch of ships on a planet's shipyard queue
type BuildShipsCommand struct {
	PlanetID string
	Ship     string
	Quantity int
}

// BuildShipsHandler handles the BuildShips command
type BuildShipsHandler struct {
	deps enqueueDeps
}

// NewBuildShipsHandler creates a new BuildShipsHandler
func NewBuildShipsHandler(world *game.World, aiEngine *ai.Engine, bus *events.ChangeBus, clock shared.Clock) *BuildShipsHandler {
	return &BuildShipsHandler{deps: enqueueDeps{world: world, ai: aiEngine, bus: bus, clock: clock}}
}

// Handle executes the BuildShips command
func (h *BuildShipsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*BuildShipsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	return h.deps.enqueue(cmd.PlanetID, queue.KindShipyard, cmd.Ship, cmd.Quantity, h.deps.ai.OnShipBuilt)
}
