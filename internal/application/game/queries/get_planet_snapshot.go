package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/application/common"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/queue"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// GetPlanetSnapshotQuery reads one planet's full state as of now.
// Reading settles the ledger first, so balances are always current.
type GetPlanetSnapshotQuery struct {
	PlanetID string
}

// QueueItemView is a read model of one queue item
type QueueItemView struct {
	ItemID    string
	Entity    string
	Quantity  int
	Remaining time.Duration
	Status    string
}

// PlanetSnapshot is the read model the UI renders from
type PlanetSnapshot struct {
	PlanetID         string
	Name             string
	Owner            string
	Coordinates      shared.Coordinates
	Resources        shared.Resources
	Energy           int
	Rates            shared.Resources
	Capacities       shared.Resources
	ProductionFactor float64
	Buildings        map[string]int
	Technologies     map[string]int
	Ships            map[string]int
	Defenses         map[string]int
	Queues           map[string][]QueueItemView
}

// GetPlanetSnapshotHandler handles the GetPlanetSnapshot query
type GetPlanetSnapshotHandler struct {
	world *game.World
	clock shared.Clock
}

// NewGetPlanetSnapshotHandler creates a new GetPlanetSnapshotHandler
func NewGetPlanetSnapshotHandler(world *game.World, clock shared.Clock) *GetPlanetSnapshotHandler {
	return &GetPlanetSnapshotHandler{world: world, clock: clock}
}

// Handle executes the GetPlanetSnapshot query
func (h *GetPlanetSnapshotHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetPlanetSnapshotQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	pid, err := shared.NewPlanetIDFromString(query.PlanetID)
	if err != nil {
		return nil, shared.NewValidationError("planetId", "must be a valid planet id")
	}

	p, ok := h.world.Registry().ByID(pid)
	if !ok {
		return nil, shared.NewNotFoundError("planet", query.PlanetID)
	}

	now := h.clock.Now()

	p.Lock()
	p.Ledger().Settle(now)
	snapshot := &PlanetSnapshot{
		PlanetID:         p.ID().String(),
		Name:             p.Name(),
		Owner:            string(p.Owner()),
		Coordinates:      p.Coordinates(),
		Resources:        p.Ledger().Balances(),
		Energy:           p.Ledger().Energy(),
		Rates:            p.Ledger().Rates(),
		Capacities:       p.Ledger().Capacities(),
		ProductionFactor: p.Ledger().ProductionFactor(),
		Buildings:        stringKeys(p.Buildings()),
		Technologies:     stringKeys(p.Technologies()),
		Ships:            stringKeys(p.Ships()),
		Defenses:         stringKeys(p.Defenses()),
	}
	p.Unlock()

	snapshot.Queues = make(map[string][]QueueItemView, len(queue.AllKinds()))
	for _, kind := range queue.AllKinds() {
		q, err := h.world.Queue(pid, kind)
		if err != nil {
			continue
		}
		views := make([]QueueItemView, 0, q.Len())
		for _, item := range q.Items() {
			views = append(views, QueueItemView{
				ItemID:    item.ID().String(),
				Entity:    string(item.Entry().ID),
				Quantity:  item.Quantity(),
				Remaining: item.Remaining(),
				Status:    string(item.Status()),
			})
		}
		snapshot.Queues[string(kind)] = views
	}

	return snapshot, nil
}

func stringKeys(m map[catalog.EntityID]int) map[string]int {
	out := make(map[string]int, len(m))
	for id, v := range m {
		out[string(id)] = v
	}
	return out
}
