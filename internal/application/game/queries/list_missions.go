package queries

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/application/common"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// ListMissionsQuery lists active missions, optionally filtered to one
// origin planet
type ListMissionsQuery struct {
	OriginPlanetID string
}

// MissionView is a read model of one in-flight mission
type MissionView struct {
	MissionID string
	Kind      string
	Origin    string
	Target    shared.Coordinates
	Ships     map[string]int
	Cargo     shared.Resources
	Status    string
	Departure time.Time
	Arrival   time.Time
	ReturnAt  time.Time
}

// ListMissionsResponse carries missions ordered by departure
type ListMissionsResponse struct {
	Missions []MissionView
}

// ListMissionsHandler handles the ListMissions query
type ListMissionsHandler struct {
	world *game.World
}

// NewListMissionsHandler creates a new ListMissionsHandler
func NewListMissionsHandler(world *game.World) *ListMissionsHandler {
	return &ListMissionsHandler{world: world}
}

// Handle executes the ListMissions query
func (h *ListMissionsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListMissionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	var origin shared.PlanetID
	if query.OriginPlanetID != "" {
		pid, err := shared.NewPlanetIDFromString(query.OriginPlanetID)
		if err != nil {
			return nil, shared.NewValidationError("originPlanetId", "must be a valid planet id")
		}
		origin = pid
	}

	views := make([]MissionView, 0)
	for _, m := range h.world.Fleet().Missions() {
		if !origin.IsZero() && m.Origin() != origin {
			continue
		}
		ships := make(map[string]int, len(m.Ships()))
		for id, count := range m.Ships() {
			ships[string(id)] = count
		}
		views = append(views, MissionView{
			MissionID: m.ID().String(),
			Kind:      string(m.Kind()),
			Origin:    m.Origin().String(),
			Target:    m.Target(),
			Ships:     ships,
			Cargo:     m.Cargo(),
			Status:    string(m.Status()),
			Departure: m.Departure(),
			Arrival:   m.Arrival(),
			ReturnAt:  m.ReturnAt(),
		})
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].Departure.Before(views[j].Departure)
	})

	return &ListMissionsResponse{Missions: views}, nil
}
