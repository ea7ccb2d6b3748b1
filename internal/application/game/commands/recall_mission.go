package commands

import (
	"context"
	"fmt"

	"github.com/danielp299/ogamecloneapp-sub000/internal/application/common"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/events"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// RecallMissionCommand turns a mission around before it resolves
type RecallMissionCommand struct {
	MissionID string
}

// RecallMissionResponse is empty; success means the fleet is returning
type RecallMissionResponse struct{}

// RecallMissionHandler handles the RecallMission command
type RecallMissionHandler struct {
	world *game.World
	bus   *events.ChangeBus
	clock shared.Clock
}

// NewRecallMissionHandler creates a new RecallMissionHandler
func NewRecallMissionHandler(world *game.World, bus *events.ChangeBus, clock shared.Clock) *RecallMissionHandler {
	return &RecallMissionHandler{world: world, bus: bus, clock: clock}
}

// Handle executes the RecallMission command
func (h *RecallMissionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RecallMissionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	id, err := shared.NewMissionIDFromString(cmd.MissionID)
	if err != nil {
		return nil, shared.NewValidationError("missionId", "must be a valid mission id")
	}

	if err := h.world.Fleet().Recall(id, h.clock.Now()); err != nil {
		return nil, err
	}

	h.bus.Publish()
	return &RecallMissionResponse{}, nil
}
