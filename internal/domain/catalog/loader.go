package catalog

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// entryOverride is the data-file shape for tuning one catalog entry.
// Only balance numbers can be overridden; the entity set itself is closed.
type entryOverride struct {
	ID           string           `mapstructure:"id"`
	Metal        *float64         `mapstructure:"metal"`
	Crystal      *float64         `mapstructure:"crystal"`
	Deuterium    *float64         `mapstructure:"deuterium"`
	Growth       *float64         `mapstructure:"growth"`
	DurationSecs *int             `mapstructure:"duration_seconds"`
	Stats        *ShipStats       `mapstructure:"stats"`
	Requirements map[string]int   `mapstructure:"requirements"`
}

// Load builds a catalog from the built-in defaults plus a YAML balance file.
// An empty path returns the defaults unchanged. Overrides referencing an
// unknown entity ID are an error rather than silently creating new entries.
func Load(path string) (Catalog, error) {
	entries := defaultEntries()
	if path == "" {
		return NewCatalog(entries), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var overrides []entryOverride
	if err := v.UnmarshalKey("entries", &overrides); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog entries: %w", err)
	}

	byID := make(map[EntityID]*Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	for _, o := range overrides {
		entry, ok := byID[EntityID(o.ID)]
		if !ok {
			return nil, fmt.Errorf("catalog override references unknown entity %q", o.ID)
		}
		applyOverride(entry, o)
	}

	return NewCatalog(entries), nil
}

func applyOverride(entry *Entry, o entryOverride) {
	cost := entry.BaseCost
	if o.Metal != nil {
		cost.Metal = *o.Metal
	}
	if o.Crystal != nil {
		cost.Crystal = *o.Crystal
	}
	if o.Deuterium != nil {
		cost.Deuterium = *o.Deuterium
	}
	if cost != entry.BaseCost {
		entry.BaseCost = cost
		entry.BaseDuration = durationForCost(cost)
	}
	if o.Growth != nil {
		entry.Growth = *o.Growth
	}
	if o.DurationSecs != nil {
		entry.BaseDuration = time.Duration(*o.DurationSecs) * time.Second
	}
	if o.Stats != nil {
		entry.Stats = *o.Stats
	}
	if len(o.Requirements) > 0 {
		reqs := make(map[EntityID]int, len(o.Requirements))
		for name, level := range o.Requirements {
			reqs[EntityID(name)] = level
		}
		entry.Requirements = reqs
	}
}
