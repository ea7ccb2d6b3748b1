package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/application/common"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/events"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/fleet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// DispatchFleetCommand launches a mission from a planet
type DispatchFleetCommand struct {
	PlanetID string
	Mission  string
	Ships    map[string]int
	Cargo    shared.Resources
	Galaxy   int
	System   int
	Position int
}

// DispatchFleetResponse reports the launched mission or the refusal
// reason. Refusals are expected outcomes, not errors.
type DispatchFleetResponse struct {
	Accepted  bool
	Reason    string
	MissionID string
	ArrivalAt string
	ReturnAt  string
	Fuel      float64
}

// DispatchFleetHandler handles the DispatchFleet command
type DispatchFleetHandler struct {
	world *game.World
	bus   *events.ChangeBus
	clock shared.Clock
}

// NewDispatchFleetHandler creates a new DispatchFleetHandler
func NewDispatchFleetHandler(world *game.World, bus *events.ChangeBus, clock shared.Clock) *DispatchFleetHandler {
	return &DispatchFleetHandler{world: world, bus: bus, clock: clock}
}

// Handle executes the DispatchFleet command
func (h *DispatchFleetHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*DispatchFleetCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	pid, err := shared.NewPlanetIDFromString(cmd.PlanetID)
	if err != nil {
		return nil, shared.NewValidationError("planetId", "must be a valid planet id")
	}

	ships := make(map[catalog.EntityID]int, len(cmd.Ships))
	for id, count := range cmd.Ships {
		ships[catalog.EntityID(id)] = count
	}

	target := shared.Coordinates{Galaxy: cmd.Galaxy, System: cmd.System, Position: cmd.Position}

	mission, err := h.world.Fleet().Dispatch(pid, ships, cmd.Cargo, target, fleet.MissionKind(cmd.Mission), h.clock.Now())
	if err != nil {
		if shared.IsPrecondition(err) {
			return &DispatchFleetResponse{Accepted: false, Reason: err.Error()}, nil
		}
		return nil, err
	}

	h.bus.Publish()
	return &DispatchFleetResponse{
		Accepted:  true,
		MissionID: mission.ID().String(),
		ArrivalAt: mission.Arrival().Format(time.RFC3339),
		ReturnAt:  mission.ReturnAt().Format(time.RFC3339),
		Fuel:      mission.Fuel(),
	}, nil
}
