package requirement

import (
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
)

// Levels is a read-only snapshot of one owner's building and technology
// levels, taken under the owner's lock. The resolver never mutates it.
type Levels struct {
	Buildings    map[catalog.EntityID]int
	Technologies map[catalog.EntityID]int
}

// BuildingLevel returns the level of a building, or 0 if never built
func (l Levels) BuildingLevel(id catalog.EntityID) int {
	return l.Buildings[id]
}

// TechnologyLevel returns the level of a technology, or 0 if never researched
func (l Levels) TechnologyLevel(id catalog.EntityID) int {
	return l.Technologies[id]
}

// IsUnlocked evaluates a requirement set against a level snapshot.
//
// Each prerequisite name is looked up first among buildings, then among
// technologies. The first unmet requirement short-circuits to false. Unknown
// names are treated as unmet (fail closed). An empty requirement set is
// always unlocked.
//
// The function is pure: monotonic level growth can only ever unlock more,
// never lock something previously unlocked.
func IsUnlocked(requirements map[catalog.EntityID]int, levels Levels) bool {
	for name, minLevel := range requirements {
		if level, ok := levels.Buildings[name]; ok {
			if level < minLevel {
				return false
			}
			continue
		}
		if level, ok := levels.Technologies[name]; ok {
			if level < minLevel {
				return false
			}
			continue
		}
		// Unknown prerequisite name: fail closed
		return false
	}
	return true
}
