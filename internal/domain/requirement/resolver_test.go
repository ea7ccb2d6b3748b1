package requirement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/requirement"
)

func TestIsUnlocked_EmptyRequirementsAlwaysUnlocked(t *testing.T) {
	// Arrange
	levels := requirement.Levels{}

	// Act & Assert
	assert.True(t, requirement.IsUnlocked(nil, levels))
	assert.True(t, requirement.IsUnlocked(map[catalog.EntityID]int{}, levels))
}

func TestIsUnlocked_ChecksBuildingLevels(t *testing.T) {
	// Arrange
	requirements := map[catalog.EntityID]int{catalog.Shipyard: 2}
	levels := requirement.Levels{
		Buildings: map[catalog.EntityID]int{catalog.Shipyard: 2},
	}

	// Act & Assert
	assert.True(t, requirement.IsUnlocked(requirements, levels))
}

func TestIsUnlocked_BuildingBelowMinimumIsLocked(t *testing.T) {
	// Arrange
	requirements := map[catalog.EntityID]int{catalog.Shipyard: 2}
	levels := requirement.Levels{
		Buildings: map[catalog.EntityID]int{catalog.Shipyard: 1},
	}

	// Act & Assert
	assert.False(t, requirement.IsUnlocked(requirements, levels))
}

func TestIsUnlocked_MixedBuildingAndTechnologyRequirements(t *testing.T) {
	// Arrange
	requirements := map[catalog.EntityID]int{
		catalog.Shipyard:        1,
		catalog.CombustionDrive: 1,
	}
	levels := requirement.Levels{
		Buildings:    map[catalog.EntityID]int{catalog.Shipyard: 3},
		Technologies: map[catalog.EntityID]int{catalog.CombustionDrive: 1},
	}

	// Act & Assert
	assert.True(t, requirement.IsUnlocked(requirements, levels))
}

func TestIsUnlocked_MissingTechnologyIsLocked(t *testing.T) {
	// Arrange
	requirements := map[catalog.EntityID]int{
		catalog.Shipyard:        1,
		catalog.CombustionDrive: 1,
	}
	levels := requirement.Levels{
		Buildings:    map[catalog.EntityID]int{catalog.Shipyard: 3},
		Technologies: map[catalog.EntityID]int{},
	}

	// Act & Assert
	assert.False(t, requirement.IsUnlocked(requirements, levels))
}

func TestIsUnlocked_UnknownPrerequisiteFailsClosed(t *testing.T) {
	// Arrange
	requirements := map[catalog.EntityID]int{"WORMHOLE_DRIVE": 1}
	levels := requirement.Levels{
		Buildings:    map[catalog.EntityID]int{catalog.Shipyard: 10},
		Technologies: map[catalog.EntityID]int{catalog.EnergyTech: 10},
	}

	// Act & Assert
	assert.False(t, requirement.IsUnlocked(requirements, levels))
}

func TestIsUnlocked_MonotonicGrowthNeverLocks(t *testing.T) {
	// Arrange
	requirements := map[catalog.EntityID]int{catalog.ResearchLab: 1}
	levels := requirement.Levels{
		Buildings: map[catalog.EntityID]int{catalog.ResearchLab: 1},
	}
	assert.True(t, requirement.IsUnlocked(requirements, levels))

	// Act - raise the level well past the minimum
	levels.Buildings[catalog.ResearchLab] = 15

	// Assert
	assert.True(t, requirement.IsUnlocked(requirements, levels))
}

func TestLevels_ZeroForUnknownEntries(t *testing.T) {
	// Arrange
	levels := requirement.Levels{
		Buildings:    map[catalog.EntityID]int{catalog.MetalMine: 4},
		Technologies: map[catalog.EntityID]int{catalog.EnergyTech: 2},
	}

	// Act & Assert
	assert.Equal(t, 4, levels.BuildingLevel(catalog.MetalMine))
	assert.Equal(t, 0, levels.BuildingLevel(catalog.NaniteFactory))
	assert.Equal(t, 2, levels.TechnologyLevel(catalog.EnergyTech))
	assert.Equal(t, 0, levels.TechnologyLevel(catalog.WeaponsTech))
}
