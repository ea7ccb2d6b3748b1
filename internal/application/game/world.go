package game

import (
	"sync"
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/ai"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/fleet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/queue"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/universe"
)

// World ties the simulation together: the planet registry, one queue set
// per planet, the fleet engine and the AI engine. It is the single place
// that knows how to create a fully wired planet, which is why both the
// fleet engine (colony ships) and the AI engine (expansion) delegate
// their FoundColony calls here.
type World struct {
	mu     sync.RWMutex
	queues map[shared.PlanetID]map[queue.Kind]*queue.Queue

	catalog  catalog.Catalog
	registry *planet.Registry
	universe universe.Universe
	fleet    *fleet.Engine
	ai       *ai.Engine

	refundFraction float64
}

// NewWorld creates the orchestrator over already-constructed engines
func NewWorld(
	cat catalog.Catalog,
	registry *planet.Registry,
	uni universe.Universe,
	fleetEngine *fleet.Engine,
	aiEngine *ai.Engine,
	refundFraction float64,
) *World {
	return &World{
		queues:         make(map[shared.PlanetID]map[queue.Kind]*queue.Queue),
		catalog:        cat,
		registry:       registry,
		universe:       uni,
		fleet:          fleetEngine,
		ai:             aiEngine,
		refundFraction: refundFraction,
	}
}

// Registry exposes the planet registry
func (w *World) Registry() *planet.Registry {
	return w.registry
}

// Fleet exposes the fleet engine
func (w *World) Fleet() *fleet.Engine {
	return w.fleet
}

// AI exposes the AI engine
func (w *World) AI() *ai.Engine {
	return w.ai
}

// FoundColony creates a new planet on a free slot, registers it and
// attaches its queues. Satisfies the colony-founder ports of both the
// fleet and the AI engines.
func (w *World) FoundColony(name string, owner planet.OwnerKind, coords shared.Coordinates, now time.Time) (*planet.Planet, error) {
	if !w.universe.Exists(coords) {
		return nil, shared.NewPreconditionError("Slot %s does not exist", coords)
	}

	p := planet.NewPlanet(name, owner, coords, w.catalog, now)
	if err := w.registry.Register(p); err != nil {
		return nil, err
	}
	w.attachQueues(p, now)
	return p, nil
}

// AttachPlanet registers a reconstructed planet and attaches fresh
// queues for it. Repositories restore queue contents afterwards.
func (w *World) AttachPlanet(p *planet.Planet, now time.Time) error {
	if err := w.registry.Register(p); err != nil {
		return err
	}
	w.attachQueues(p, now)
	return nil
}

func (w *World) attachQueues(p *planet.Planet, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	set := make(map[queue.Kind]*queue.Queue, len(queue.AllKinds()))
	for _, kind := range queue.AllKinds() {
		set[kind] = queue.NewQueue(kind, p, w.catalog, w.refundFraction, now)
	}
	w.queues[p.ID()] = set
}

// Queue returns one of a planet's four queues
func (w *World) Queue(id shared.PlanetID, kind queue.Kind) (*queue.Queue, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	set, ok := w.queues[id]
	if !ok {
		return nil, shared.NewNotFoundError("planet", id.String())
	}
	q, ok := set[kind]
	if !ok {
		return nil, shared.NewNotFoundError("queue", string(kind))
	}
	return q, nil
}

// TickQueues advances every queue of the given kind and returns the
// total number of completed units across the world
func (w *World) TickQueues(kind queue.Kind, now time.Time) int {
	w.mu.RLock()
	snapshot := make([]*queue.Queue, 0, len(w.queues))
	for _, set := range w.queues {
		if q, ok := set[kind]; ok {
			snapshot = append(snapshot, q)
		}
	}
	w.mu.RUnlock()

	completed := 0
	for _, q := range snapshot {
		completed += q.Tick(now)
	}
	return completed
}

// QueueDepth sums the pending item count of every queue of a kind
func (w *World) QueueDepth(kind queue.Kind) int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	depth := 0
	for _, set := range w.queues {
		if q, ok := set[kind]; ok {
			depth += q.Len()
		}
	}
	return depth
}
