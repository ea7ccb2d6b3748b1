package planet

import (
	"sync"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// Registry is the thread-safe index of live planets, keyed by id and by
// coordinates. It hands out aggregate pointers; callers lock the planet
// itself before touching its state.
type Registry struct {
	mu       sync.RWMutex
	byID     map[shared.PlanetID]*Planet
	byCoords map[shared.Coordinates]*Planet
}

// NewRegistry creates an empty planet registry
func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[shared.PlanetID]*Planet),
		byCoords: make(map[shared.Coordinates]*Planet),
	}
}

// Register adds a planet. Registering an occupied slot is an invariant
// violation: occupancy must be checked through the universe port first.
func (r *Registry) Register(p *Planet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCoords[p.Coordinates()]; exists {
		return shared.NewInvariantViolationError("slot %s is already occupied", p.Coordinates())
	}
	r.byID[p.ID()] = p
	r.byCoords[p.Coordinates()] = p
	return nil
}

// Remove deletes a planet from the registry (explicit reset only)
func (r *Registry) Remove(id shared.PlanetID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byID, id)
	delete(r.byCoords, p.Coordinates())
}

// ByID looks a planet up by identity
func (r *Registry) ByID(id shared.PlanetID) (*Planet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	return p, ok
}

// ByCoordinates looks a planet up by universe slot
func (r *Registry) ByCoordinates(c shared.Coordinates) (*Planet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byCoords[c]
	return p, ok
}

// IsOccupied reports whether a slot hosts a planet
func (r *Registry) IsOccupied(c shared.Coordinates) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byCoords[c]
	return ok
}

// All returns a snapshot slice of every registered planet
func (r *Registry) All() []*Planet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	planets := make([]*Planet, 0, len(r.byID))
	for _, p := range r.byID {
		planets = append(planets, p)
	}
	return planets
}

// AllByOwner returns a snapshot of planets with the given owner kind
func (r *Registry) AllByOwner(owner OwnerKind) []*Planet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	planets := make([]*Planet, 0)
	for _, p := range r.byID {
		if p.Owner() == owner {
			planets = append(planets, p)
		}
	}
	return planets
}

// Count returns the number of registered planets
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
