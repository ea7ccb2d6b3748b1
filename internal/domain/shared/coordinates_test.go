package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

func TestNewCoordinates_RejectsNonPositiveComponents(t *testing.T) {
	testCases := []struct {
		name                     string
		galaxy, system, position int
	}{
		{"zero galaxy", 0, 1, 1},
		{"zero system", 1, 0, 1},
		{"zero position", 1, 1, 0},
		{"negative galaxy", -1, 1, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, err := shared.NewCoordinates(tc.galaxy, tc.system, tc.position)

			// Assert
			require.Error(t, err)
		})
	}
}

func TestCoordinates_DistanceToSelfIsZero(t *testing.T) {
	// Arrange
	coords, err := shared.NewCoordinates(3, 120, 8)
	require.NoError(t, err)

	// Act & Assert
	assert.Equal(t, 0.0, coords.DistanceTo(coords))
}

func TestCoordinates_DistanceWeighting(t *testing.T) {
	// Arrange
	origin, err := shared.NewCoordinates(1, 1, 1)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		target   shared.Coordinates
		expected float64
	}{
		{"adjacent position", shared.Coordinates{Galaxy: 1, System: 1, Position: 2}, 5 + 1000},
		{"adjacent system", shared.Coordinates{Galaxy: 1, System: 2, Position: 1}, 1000 + 1000},
		{"adjacent galaxy", shared.Coordinates{Galaxy: 2, System: 1, Position: 1}, 20000 + 1000},
		{"combined hops", shared.Coordinates{Galaxy: 2, System: 3, Position: 4}, 20000 + 2000 + 15 + 1000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act & Assert
			assert.Equal(t, tc.expected, origin.DistanceTo(tc.target))
		})
	}
}

func TestCoordinates_DistanceIsSymmetric(t *testing.T) {
	// Arrange
	a := shared.Coordinates{Galaxy: 1, System: 40, Position: 3}
	b := shared.Coordinates{Galaxy: 4, System: 2, Position: 12}

	// Act & Assert
	assert.Equal(t, a.DistanceTo(b), b.DistanceTo(a))
}

func TestCoordinates_LessOrdersGalaxyThenSystemThenPosition(t *testing.T) {
	// Arrange
	low := shared.Coordinates{Galaxy: 1, System: 9, Position: 9}
	high := shared.Coordinates{Galaxy: 2, System: 1, Position: 1}

	// Act & Assert
	assert.True(t, low.Less(high))
	assert.False(t, high.Less(low))

	sameGalaxy := shared.Coordinates{Galaxy: 1, System: 10, Position: 1}
	assert.True(t, low.Less(sameGalaxy))

	samePrefix := shared.Coordinates{Galaxy: 1, System: 9, Position: 10}
	assert.True(t, low.Less(samePrefix))
	assert.False(t, low.Less(low))
}

func TestCoordinates_String(t *testing.T) {
	// Arrange
	coords := shared.Coordinates{Galaxy: 2, System: 34, Position: 7}

	// Act & Assert
	assert.Equal(t, "[2:34:7]", coords.String())
}
