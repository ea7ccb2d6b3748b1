package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/economy"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// GormPlanetRepository persists planet aggregates using GORM
type GormPlanetRepository struct {
	db  *gorm.DB
	cat catalog.Catalog
}

// NewGormPlanetRepository creates a new GORM planet repository
func NewGormPlanetRepository(db *gorm.DB, cat catalog.Catalog) *GormPlanetRepository {
	return &GormPlanetRepository{db: db, cat: cat}
}

// Save upserts one planet. The snapshot is taken under the planet's lock
// so the row is internally consistent. lastActivity is nil for
// player-owned planets.
func (r *GormPlanetRepository) Save(ctx context.Context, p *planet.Planet, lastActivity *time.Time) error {
	model, err := r.planetToModel(p, lastActivity)
	if err != nil {
		return fmt.Errorf("failed to convert planet to model: %w", err)
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save planet: %w", result.Error)
	}
	return nil
}

// Delete removes a planet row
func (r *GormPlanetRepository) Delete(ctx context.Context, id shared.PlanetID) error {
	result := r.db.WithContext(ctx).Delete(&PlanetModel{}, "id = ?", id.String())
	if result.Error != nil {
		return fmt.Errorf("failed to delete planet: %w", result.Error)
	}
	return nil
}

// LoadAll reconstructs every persisted planet. The second return value
// maps AI planets to their last activity timestamp.
func (r *GormPlanetRepository) LoadAll(ctx context.Context) ([]*planet.Planet, map[shared.PlanetID]time.Time, error) {
	var models []PlanetModel
	result := r.db.WithContext(ctx).Find(&models)
	if result.Error != nil {
		return nil, nil, fmt.Errorf("failed to load planets: %w", result.Error)
	}

	planets := make([]*planet.Planet, 0, len(models))
	activity := make(map[shared.PlanetID]time.Time)
	for i := range models {
		p, err := r.modelToPlanet(&models[i])
		if err != nil {
			return nil, nil, fmt.Errorf("planet row %s: %w", models[i].ID, err)
		}
		planets = append(planets, p)
		if models[i].LastActivity != nil {
			activity[p.ID()] = *models[i].LastActivity
		}
	}
	return planets, activity, nil
}

func (r *GormPlanetRepository) planetToModel(p *planet.Planet, lastActivity *time.Time) (*PlanetModel, error) {
	p.Lock()
	defer p.Unlock()

	buildings, err := countsToJSON(p.Buildings())
	if err != nil {
		return nil, err
	}
	technologies, err := countsToJSON(p.Technologies())
	if err != nil {
		return nil, err
	}
	ships, err := countsToJSON(p.Ships())
	if err != nil {
		return nil, err
	}
	defenses, err := countsToJSON(p.Defenses())
	if err != nil {
		return nil, err
	}

	ledger := p.Ledger()
	balances := ledger.Balances()
	coords := p.Coordinates()

	return &PlanetModel{
		ID:               p.ID().String(),
		Name:             p.Name(),
		Owner:            string(p.Owner()),
		Galaxy:           coords.Galaxy,
		System:           coords.System,
		Position:         coords.Position,
		Metal:            balances.Metal,
		Crystal:          balances.Crystal,
		Deuterium:        balances.Deuterium,
		Energy:           ledger.Energy(),
		ProductionFactor: ledger.ProductionFactor(),
		LastUpdate:       ledger.LastUpdate(),
		Buildings:        buildings,
		Technologies:     technologies,
		Ships:            ships,
		Defenses:         defenses,
		LastActivity:     lastActivity,
	}, nil
}

func (r *GormPlanetRepository) modelToPlanet(model *PlanetModel) (*planet.Planet, error) {
	id, err := shared.NewPlanetIDFromString(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid planet id: %w", err)
	}

	owner := planet.OwnerKind(model.Owner)
	if !owner.IsValid() {
		return nil, fmt.Errorf("invalid owner %q", model.Owner)
	}

	buildings, err := countsFromJSON(model.Buildings)
	if err != nil {
		return nil, err
	}
	technologies, err := countsFromJSON(model.Technologies)
	if err != nil {
		return nil, err
	}
	ships, err := countsFromJSON(model.Ships)
	if err != nil {
		return nil, err
	}
	defenses, err := countsFromJSON(model.Defenses)
	if err != nil {
		return nil, err
	}

	p := planet.ReconstructPlanet(
		id,
		model.Name,
		owner,
		shared.Coordinates{Galaxy: model.Galaxy, System: model.System, Position: model.Position},
		economy.ReconstructLedger(
			shared.NewResources(model.Metal, model.Crystal, model.Deuterium),
			model.Energy,
			shared.Resources{},
			shared.Resources{},
			model.ProductionFactor,
			model.LastUpdate,
		),
		buildings,
		technologies,
		ships,
		defenses,
		r.cat,
	)

	// Rates, caps and energy are derived state; recompute them from the
	// restored building levels instead of trusting stale columns.
	p.Lock()
	p.Recompute(model.LastUpdate)
	p.Unlock()

	return p, nil
}
