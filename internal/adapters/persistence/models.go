package persistence

import (
	"time"
)

// PlanetModel represents the planets table. Level and inventory maps are
// stored as JSON text so the schema works on both SQLite and PostgreSQL.
type PlanetModel struct {
	ID       string `gorm:"column:id;primaryKey"`
	Name     string `gorm:"column:name;not null"`
	Owner    string `gorm:"column:owner;not null"`
	Galaxy   int    `gorm:"column:galaxy;not null;uniqueIndex:idx_planet_coords"`
	System   int    `gorm:"column:system;not null;uniqueIndex:idx_planet_coords"`
	Position int    `gorm:"column:position;not null;uniqueIndex:idx_planet_coords"`

	Metal            float64   `gorm:"column:metal;not null"`
	Crystal          float64   `gorm:"column:crystal;not null"`
	Deuterium        float64   `gorm:"column:deuterium;not null"`
	Energy           int       `gorm:"column:energy;not null"`
	ProductionFactor float64   `gorm:"column:production_factor;not null;default:1"`
	LastUpdate       time.Time `gorm:"column:last_update;not null"`

	Buildings    string `gorm:"column:buildings;type:text"`
	Technologies string `gorm:"column:technologies;type:text"`
	Ships        string `gorm:"column:ships;type:text"`
	Defenses     string `gorm:"column:defenses;type:text"`

	LastActivity *time.Time `gorm:"column:last_activity"`
}

func (PlanetModel) TableName() string {
	return "planets"
}

// QueueItemModel represents the queue_items table. Position preserves
// FIFO order within one planet's queue of a kind.
type QueueItemModel struct {
	ID        string `gorm:"column:id;primaryKey"`
	PlanetID  string `gorm:"column:planet_id;not null;index:idx_queue_items_planet"`
	QueueKind string `gorm:"column:queue_kind;not null;index:idx_queue_items_planet"`
	Position  int    `gorm:"column:position;not null"`

	EntityID   string `gorm:"column:entity_id;not null"`
	Quantity   int    `gorm:"column:quantity;not null"`
	UnitsTotal int    `gorm:"column:units_total;not null"`

	PerUnitSeconds   float64 `gorm:"column:per_unit_seconds;not null"`
	RemainingSeconds float64 `gorm:"column:remaining_seconds;not null"`

	CostMetal     float64 `gorm:"column:cost_metal;not null"`
	CostCrystal   float64 `gorm:"column:cost_crystal;not null"`
	CostDeuterium float64 `gorm:"column:cost_deuterium;not null"`

	Status string `gorm:"column:status;not null"`
}

func (QueueItemModel) TableName() string {
	return "queue_items"
}

// QueueStateModel carries per-queue bookkeeping that is not item-shaped
type QueueStateModel struct {
	PlanetID  string    `gorm:"column:planet_id;primaryKey"`
	QueueKind string    `gorm:"column:queue_kind;primaryKey"`
	LastTick  time.Time `gorm:"column:last_tick;not null"`
}

func (QueueStateModel) TableName() string {
	return "queue_states"
}

// MissionModel represents the missions table
type MissionModel struct {
	ID             string `gorm:"column:id;primaryKey"`
	Kind           string `gorm:"column:kind;not null"`
	OriginPlanetID string `gorm:"column:origin_planet_id;not null;index"`
	OriginGalaxy   int    `gorm:"column:origin_galaxy;not null"`
	OriginSystem   int    `gorm:"column:origin_system;not null"`
	OriginPosition int    `gorm:"column:origin_position;not null"`
	TargetGalaxy   int    `gorm:"column:target_galaxy;not null"`
	TargetSystem   int    `gorm:"column:target_system;not null"`
	TargetPosition int    `gorm:"column:target_position;not null"`

	Ships string `gorm:"column:ships;type:text;not null"`

	CargoMetal     float64 `gorm:"column:cargo_metal;not null"`
	CargoCrystal   float64 `gorm:"column:cargo_crystal;not null"`
	CargoDeuterium float64 `gorm:"column:cargo_deuterium;not null"`
	Fuel           float64 `gorm:"column:fuel;not null"`

	Departure time.Time `gorm:"column:departure;not null"`
	Arrival   time.Time `gorm:"column:arrival;not null"`
	ReturnAt  time.Time `gorm:"column:return_at;not null"`
	Status    string    `gorm:"column:status;not null"`
}

func (MissionModel) TableName() string {
	return "missions"
}

// DebrisModel represents the debris_fields table
type DebrisModel struct {
	Galaxy   int     `gorm:"column:galaxy;primaryKey"`
	System   int     `gorm:"column:system;primaryKey"`
	Position int     `gorm:"column:position;primaryKey"`
	Metal    float64 `gorm:"column:metal;not null"`
	Crystal  float64 `gorm:"column:crystal;not null"`
}

func (DebrisModel) TableName() string {
	return "debris_fields"
}

// CombatReportModel represents the combat_reports table
type CombatReportModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	MissionID      string    `gorm:"column:mission_id;not null;index"`
	Galaxy         int       `gorm:"column:galaxy;not null"`
	System         int       `gorm:"column:system;not null"`
	Position       int       `gorm:"column:position;not null"`
	Timestamp      time.Time `gorm:"column:timestamp;not null;index"`
	Outcome        string    `gorm:"column:outcome;not null"`
	AttackerLosses string    `gorm:"column:attacker_losses;type:text"`
	DefenderLosses string    `gorm:"column:defender_losses;type:text"`
	DebrisMetal    float64   `gorm:"column:debris_metal;not null"`
	DebrisCrystal  float64   `gorm:"column:debris_crystal;not null"`
	PlunderMetal   float64   `gorm:"column:plunder_metal;not null"`
	PlunderCrystal float64   `gorm:"column:plunder_crystal;not null"`
	PlunderDeut    float64   `gorm:"column:plunder_deuterium;not null"`
}

func (CombatReportModel) TableName() string {
	return "combat_reports"
}

// EspionageReportModel represents the espionage_reports table
type EspionageReportModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	MissionID string    `gorm:"column:mission_id;not null;index"`
	Galaxy    int       `gorm:"column:galaxy;not null"`
	System    int       `gorm:"column:system;not null"`
	Position  int       `gorm:"column:position;not null"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index"`
	Metal     float64   `gorm:"column:metal;not null"`
	Crystal   float64   `gorm:"column:crystal;not null"`
	Deuterium float64   `gorm:"column:deuterium;not null"`
	Ships     string    `gorm:"column:ships;type:text"`
	Defenses  string    `gorm:"column:defenses;type:text"`
}

func (EspionageReportModel) TableName() string {
	return "espionage_reports"
}
