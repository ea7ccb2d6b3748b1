package catalog

import (
	"math"
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// ShipStats holds the combat and travel characteristics of a ship or
// defense entry. Defenses have zero Speed, Cargo and FuelRate.
type ShipStats struct {
	Speed    int     `json:"speed" mapstructure:"speed"`
	Cargo    int     `json:"cargo" mapstructure:"cargo"`
	FuelRate float64 `json:"fuel_rate" mapstructure:"fuel_rate"`
	Attack   float64 `json:"attack" mapstructure:"attack"`
	Shield   float64 `json:"shield" mapstructure:"shield"`
	Hull     float64 `json:"hull" mapstructure:"hull"`
}

// Entry is the immutable reference data for one entity type. Entries are
// shared read-only across every engine; nothing in the core mutates them.
type Entry struct {
	ID           EntityID             `json:"id"`
	Kind         Kind                 `json:"kind"`
	BaseCost     shared.Resources     `json:"base_cost"`
	BaseDuration time.Duration        `json:"base_duration"`
	Growth       float64              `json:"growth"`
	Requirements map[EntityID]int     `json:"requirements,omitempty"`

	// Building-only fields (zero elsewhere)
	BaseProduction      shared.Resources `json:"base_production"`
	BaseEnergyProduced  float64          `json:"base_energy_produced"`
	BaseEnergyConsumed  float64          `json:"base_energy_consumed"`
	BaseStorageCapacity float64          `json:"base_storage_capacity"`
	EnergyGrowth        float64          `json:"energy_growth"`

	// Ship/defense-only fields
	Stats ShipStats `json:"stats"`

	// UniquePerPlanet caps the entry at one existing-plus-queued instance
	// per planet (shield domes)
	UniquePerPlanet bool `json:"unique_per_planet"`
}

// CostAtLevel returns the cost of building the next unit when the owner
// already holds `level` of this entry: base × growth^level. For ships and
// defenses level is always 0 (flat per-unit cost).
func (e *Entry) CostAtLevel(level int) shared.Resources {
	if level <= 0 || e.Growth == 0 {
		return e.BaseCost
	}
	return e.BaseCost.Scale(math.Pow(e.Growth, float64(level)))
}

// ProductionAtLevel returns the hourly resource output of a production
// building at the given level: base × level × growth^level.
func (e *Entry) ProductionAtLevel(level int) shared.Resources {
	if level <= 0 {
		return shared.Resources{}
	}
	return e.BaseProduction.Scale(float64(level) * math.Pow(e.EnergyGrowth, float64(level)))
}

// EnergyProducedAtLevel returns energy output at a level: base × level × growth^level
func (e *Entry) EnergyProducedAtLevel(level int) int {
	if level <= 0 || e.BaseEnergyProduced == 0 {
		return 0
	}
	return int(math.Floor(e.BaseEnergyProduced * float64(level) * math.Pow(e.EnergyGrowth, float64(level))))
}

// EnergyConsumedAtLevel returns energy demand at a level: base × level × growth^level
func (e *Entry) EnergyConsumedAtLevel(level int) int {
	if level <= 0 || e.BaseEnergyConsumed == 0 {
		return 0
	}
	return int(math.Ceil(e.BaseEnergyConsumed * float64(level) * math.Pow(e.EnergyGrowth, float64(level))))
}

// StorageCapacityAtLevel returns the storage cap granted by a storage
// building at the given level: base × growth^level. Level 0 yields the base
// planetary cap.
func (e *Entry) StorageCapacityAtLevel(level int) float64 {
	if e.BaseStorageCapacity == 0 {
		return 0
	}
	if level <= 0 || e.Growth == 0 {
		return e.BaseStorageCapacity
	}
	return e.BaseStorageCapacity * math.Pow(e.Growth, float64(level))
}

// IsMovable reports whether this entry can be part of a fleet
func (e *Entry) IsMovable() bool {
	return e.Kind == KindShip
}
