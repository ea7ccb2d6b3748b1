package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/queue"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// GormQueueRepository persists queue contents using GORM
type GormQueueRepository struct {
	db  *gorm.DB
	cat catalog.Catalog
}

// NewGormQueueRepository creates a new GORM queue repository
func NewGormQueueRepository(db *gorm.DB, cat catalog.Catalog) *GormQueueRepository {
	return &GormQueueRepository{db: db, cat: cat}
}

// Save replaces the persisted contents of one queue with its current
// snapshot. Delete-then-insert inside a transaction keeps FIFO positions
// dense without tracking item-level dirtiness.
func (r *GormQueueRepository) Save(ctx context.Context, planetID shared.PlanetID, q *queue.Queue) error {
	items := q.Items()
	lastTick := q.LastTick()
	kind := string(q.Kind())
	pid := planetID.String()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&QueueItemModel{}, "planet_id = ? AND queue_kind = ?", pid, kind).Error; err != nil {
			return fmt.Errorf("failed to clear queue items: %w", err)
		}

		for position, item := range items {
			model := &QueueItemModel{
				ID:               item.ID().String(),
				PlanetID:         pid,
				QueueKind:        kind,
				Position:         position,
				EntityID:         string(item.Entry().ID),
				Quantity:         item.Quantity(),
				UnitsTotal:       item.UnitsTotal(),
				PerUnitSeconds:   item.PerUnitDuration().Seconds(),
				RemainingSeconds: item.Remaining().Seconds(),
				CostMetal:        item.PerUnitCost().Metal,
				CostCrystal:      item.PerUnitCost().Crystal,
				CostDeuterium:    item.PerUnitCost().Deuterium,
				Status:           string(item.Status()),
			}
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to save queue item: %w", err)
			}
		}

		state := &QueueStateModel{PlanetID: pid, QueueKind: kind, LastTick: lastTick}
		if err := tx.Save(state).Error; err != nil {
			return fmt.Errorf("failed to save queue state: %w", err)
		}
		return nil
	})
}

// Load restores one queue's contents from the database
func (r *GormQueueRepository) Load(ctx context.Context, planetID shared.PlanetID, q *queue.Queue, fallbackTick time.Time) error {
	pid := planetID.String()
	kind := string(q.Kind())

	var models []QueueItemModel
	result := r.db.WithContext(ctx).
		Where("planet_id = ? AND queue_kind = ?", pid, kind).
		Order("position asc").
		Find(&models)
	if result.Error != nil {
		return fmt.Errorf("failed to load queue items: %w", result.Error)
	}

	items := make([]*queue.Item, 0, len(models))
	for i := range models {
		item, err := r.modelToItem(&models[i])
		if err != nil {
			return fmt.Errorf("queue item %s: %w", models[i].ID, err)
		}
		items = append(items, item)
	}

	lastTick := fallbackTick
	var state QueueStateModel
	result = r.db.WithContext(ctx).
		Where("planet_id = ? AND queue_kind = ?", pid, kind).
		First(&state)
	if result.Error == nil {
		lastTick = state.LastTick
	} else if result.Error != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to load queue state: %w", result.Error)
	}

	q.Restore(items, lastTick)
	return nil
}

func (r *GormQueueRepository) modelToItem(model *QueueItemModel) (*queue.Item, error) {
	id, err := queue.NewItemIDFromString(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid item id: %w", err)
	}

	entry, err := r.cat.GetEntry(catalog.EntityID(model.EntityID))
	if err != nil {
		return nil, fmt.Errorf("unknown entity %q: %w", model.EntityID, err)
	}

	return queue.ReconstructItem(
		id,
		entry,
		model.Quantity,
		model.UnitsTotal,
		time.Duration(model.PerUnitSeconds*float64(time.Second)),
		time.Duration(model.RemainingSeconds*float64(time.Second)),
		shared.NewResources(model.CostMetal, model.CostCrystal, model.CostDeuterium),
		queue.ItemStatus(model.Status),
	), nil
}
