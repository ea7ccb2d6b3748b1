package universe_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/universe"
)

func newGrid(t *testing.T) (*universe.Grid, *planet.Registry) {
	t.Helper()
	registry := planet.NewRegistry()
	return universe.NewGrid(2, 3, 5, registry), registry
}

func occupy(t *testing.T, registry *planet.Registry, galaxy, system, position int) *planet.Planet {
	t.Helper()
	coords, err := shared.NewCoordinates(galaxy, system, position)
	require.NoError(t, err)
	p := planet.NewPlanet("World", planet.OwnerAI, coords, catalog.Default(),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, registry.Register(p))
	return p
}

func TestGrid_ExistsBoundsChecks(t *testing.T) {
	// Arrange
	grid, _ := newGrid(t)

	// Act & Assert
	assert.True(t, grid.Exists(shared.Coordinates{Galaxy: 1, System: 1, Position: 1}))
	assert.True(t, grid.Exists(shared.Coordinates{Galaxy: 2, System: 3, Position: 5}))
	assert.False(t, grid.Exists(shared.Coordinates{Galaxy: 3, System: 1, Position: 1}))
	assert.False(t, grid.Exists(shared.Coordinates{Galaxy: 1, System: 4, Position: 1}))
	assert.False(t, grid.Exists(shared.Coordinates{Galaxy: 1, System: 1, Position: 6}))
	assert.False(t, grid.Exists(shared.Coordinates{Galaxy: 0, System: 1, Position: 1}))
}

func TestGrid_OccupancyComesFromRegistry(t *testing.T) {
	// Arrange
	grid, registry := newGrid(t)
	p := occupy(t, registry, 1, 2, 3)

	// Act & Assert
	assert.True(t, grid.IsOccupied(p.Coordinates()))
	occupant, ok := grid.Occupant(p.Coordinates())
	require.True(t, ok)
	assert.Same(t, p, occupant)

	free := shared.Coordinates{Galaxy: 1, System: 2, Position: 4}
	assert.False(t, grid.IsOccupied(free))
	_, ok = grid.Occupant(free)
	assert.False(t, ok)
}

func TestGrid_FreeSlotsNearPrefersHomeSystem(t *testing.T) {
	// Arrange
	grid, registry := newGrid(t)
	home := occupy(t, registry, 1, 2, 3)

	// Act
	slots := grid.FreeSlotsNear(home.Coordinates(), 4)

	// Assert - the home system fills first, skipping the occupied slot
	require.Len(t, slots, 4)
	for _, slot := range slots {
		assert.Equal(t, 1, slot.Galaxy)
		assert.Equal(t, 2, slot.System)
		assert.NotEqual(t, home.Coordinates(), slot)
	}
}

func TestGrid_FreeSlotsNearWidensToNeighborSystems(t *testing.T) {
	// Arrange
	grid, registry := newGrid(t)
	home := occupy(t, registry, 1, 2, 3)

	// Act - the home system only has 4 free slots
	slots := grid.FreeSlotsNear(home.Coordinates(), 6)

	// Assert
	require.Len(t, slots, 6)
	outside := 0
	for _, slot := range slots {
		if slot.System != 2 {
			outside++
		}
	}
	assert.Equal(t, 2, outside)
}

func TestGrid_FreeSlotsNearHonorsLimitAndZero(t *testing.T) {
	// Arrange
	grid, registry := newGrid(t)
	home := occupy(t, registry, 1, 2, 3)

	// Act & Assert
	assert.Len(t, grid.FreeSlotsNear(home.Coordinates(), 1), 1)
	assert.Nil(t, grid.FreeSlotsNear(home.Coordinates(), 0))
}

func TestGrid_FreeSlotsNearFullUniverseReturnsEmpty(t *testing.T) {
	// Arrange - a 1x1x2 universe with both slots taken
	registry := planet.NewRegistry()
	grid := universe.NewGrid(1, 1, 2, registry)
	home := occupy(t, registry, 1, 1, 1)
	occupy(t, registry, 1, 1, 2)

	// Act
	slots := grid.FreeSlotsNear(home.Coordinates(), 3)

	// Assert
	assert.Empty(t, slots)
}
