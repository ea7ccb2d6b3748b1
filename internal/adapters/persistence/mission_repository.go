package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/fleet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// GormMissionRepository persists the active mission set and debris
// fields using GORM
type GormMissionRepository struct {
	db *gorm.DB
}

// NewGormMissionRepository creates a new GORM mission repository
func NewGormMissionRepository(db *gorm.DB) *GormMissionRepository {
	return &GormMissionRepository{db: db}
}

// SaveAll replaces the persisted mission set and debris fields with the
// engine's current snapshot. Resolved missions disappear from the
// engine, so replacement is the natural write shape.
func (r *GormMissionRepository) SaveAll(ctx context.Context, engine *fleet.Engine) error {
	missions := engine.Missions()
	debris := engine.DebrisFields()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&MissionModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear missions: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&DebrisModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear debris fields: %w", err)
		}

		for _, m := range missions {
			model, err := missionToModel(m)
			if err != nil {
				return err
			}
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to save mission: %w", err)
			}
		}

		for coords, field := range debris {
			model := &DebrisModel{
				Galaxy:   coords.Galaxy,
				System:   coords.System,
				Position: coords.Position,
				Metal:    field.Metal,
				Crystal:  field.Crystal,
			}
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to save debris field: %w", err)
			}
		}
		return nil
	})
}

// LoadAll restores missions and debris fields into the engine
func (r *GormMissionRepository) LoadAll(ctx context.Context, engine *fleet.Engine) error {
	var missionModels []MissionModel
	if err := r.db.WithContext(ctx).Find(&missionModels).Error; err != nil {
		return fmt.Errorf("failed to load missions: %w", err)
	}

	missions := make([]*fleet.Mission, 0, len(missionModels))
	for i := range missionModels {
		m, err := modelToMission(&missionModels[i])
		if err != nil {
			return fmt.Errorf("mission row %s: %w", missionModels[i].ID, err)
		}
		missions = append(missions, m)
	}

	var debrisModels []DebrisModel
	if err := r.db.WithContext(ctx).Find(&debrisModels).Error; err != nil {
		return fmt.Errorf("failed to load debris fields: %w", err)
	}

	debris := make(map[shared.Coordinates]shared.Resources, len(debrisModels))
	for _, d := range debrisModels {
		coords := shared.Coordinates{Galaxy: d.Galaxy, System: d.System, Position: d.Position}
		debris[coords] = shared.NewResources(d.Metal, d.Crystal, 0)
	}

	engine.Restore(missions, debris)
	return nil
}

func missionToModel(m *fleet.Mission) (*MissionModel, error) {
	ships, err := countsToJSON(m.Ships())
	if err != nil {
		return nil, err
	}

	origin := m.OriginCoordinates()
	target := m.Target()
	cargo := m.Cargo()

	return &MissionModel{
		ID:             m.ID().String(),
		Kind:           string(m.Kind()),
		OriginPlanetID: m.Origin().String(),
		OriginGalaxy:   origin.Galaxy,
		OriginSystem:   origin.System,
		OriginPosition: origin.Position,
		TargetGalaxy:   target.Galaxy,
		TargetSystem:   target.System,
		TargetPosition: target.Position,
		Ships:          ships,
		CargoMetal:     cargo.Metal,
		CargoCrystal:   cargo.Crystal,
		CargoDeuterium: cargo.Deuterium,
		Fuel:           m.Fuel(),
		Departure:      m.Departure(),
		Arrival:        m.Arrival(),
		ReturnAt:       m.ReturnAt(),
		Status:         string(m.Status()),
	}, nil
}

func modelToMission(model *MissionModel) (*fleet.Mission, error) {
	id, err := shared.NewMissionIDFromString(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid mission id: %w", err)
	}

	originID, err := shared.NewPlanetIDFromString(model.OriginPlanetID)
	if err != nil {
		return nil, fmt.Errorf("invalid origin planet id: %w", err)
	}

	kind := fleet.MissionKind(model.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid mission kind %q", model.Kind)
	}

	ships, err := countsFromJSON(model.Ships)
	if err != nil {
		return nil, err
	}

	return fleet.ReconstructMission(
		id,
		kind,
		originID,
		shared.Coordinates{Galaxy: model.OriginGalaxy, System: model.OriginSystem, Position: model.OriginPosition},
		shared.Coordinates{Galaxy: model.TargetGalaxy, System: model.TargetSystem, Position: model.TargetPosition},
		ships,
		shared.NewResources(model.CargoMetal, model.CargoCrystal, model.CargoDeuterium),
		model.Fuel,
		model.Departure,
		model.Arrival,
		model.ReturnAt,
		fleet.MissionStatus(model.Status),
	), nil
}
