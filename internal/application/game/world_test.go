package game_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/ai"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/fleet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/queue"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/universe"
)

var worldStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestWorld(t *testing.T) *game.World {
	t.Helper()
	cat := catalog.Default()
	registry := planet.NewRegistry()
	grid := universe.NewGrid(9, 99, 15, registry)
	fleetEngine := fleet.NewEngine(registry, grid, cat, fleet.Config{
		UniverseSpeed: 1.0,
		MinFlightTime: 10 * time.Second,
	})
	aiEngine := ai.NewEngine(cat, grid, ai.Probabilities{MaxActionsPerEvent: 1}, rand.New(rand.NewSource(1)))

	world := game.NewWorld(cat, registry, grid, fleetEngine, aiEngine, 1.0)
	fleetEngine.SetColonyFounder(world)
	aiEngine.SetColonyFounder(world)
	return world
}

func TestWorld_FoundColonyAttachesAllFourQueues(t *testing.T) {
	// Arrange
	world := newTestWorld(t)

	// Act
	p, err := world.FoundColony("Homeworld", planet.OwnerPlayer,
		shared.Coordinates{Galaxy: 1, System: 1, Position: 8}, worldStart)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, world.Registry().Count())
	for _, kind := range queue.AllKinds() {
		q, err := world.Queue(p.ID(), kind)
		require.NoError(t, err)
		assert.Equal(t, 0, q.Len())
	}
}

func TestWorld_FoundColonyRefusesSlotOutsideGrid(t *testing.T) {
	// Arrange
	world := newTestWorld(t)

	// Act
	_, err := world.FoundColony("Nowhere", planet.OwnerPlayer,
		shared.Coordinates{Galaxy: 50, System: 1, Position: 1}, worldStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
	assert.Equal(t, 0, world.Registry().Count())
}

func TestWorld_FoundColonyRefusesOccupiedSlot(t *testing.T) {
	// Arrange
	world := newTestWorld(t)
	coords := shared.Coordinates{Galaxy: 1, System: 1, Position: 8}
	_, err := world.FoundColony("First", planet.OwnerPlayer, coords, worldStart)
	require.NoError(t, err)

	// Act
	_, err = world.FoundColony("Second", planet.OwnerAI, coords, worldStart)

	// Assert
	require.Error(t, err)
	assert.Equal(t, 1, world.Registry().Count())
}

func TestWorld_QueueForUnknownPlanetReportsNotFound(t *testing.T) {
	// Arrange
	world := newTestWorld(t)

	// Act
	_, err := world.Queue(shared.NewPlanetID(), queue.KindConstruction)

	// Assert
	require.Error(t, err)
}

func TestWorld_TickQueuesAdvancesEveryPlanet(t *testing.T) {
	// Arrange - two planets, each with a metal mine queued (108s)
	world := newTestWorld(t)
	first, err := world.FoundColony("First", planet.OwnerPlayer,
		shared.Coordinates{Galaxy: 1, System: 1, Position: 1}, worldStart)
	require.NoError(t, err)
	second, err := world.FoundColony("Second", planet.OwnerAI,
		shared.Coordinates{Galaxy: 1, System: 1, Position: 2}, worldStart)
	require.NoError(t, err)

	for _, p := range []*planet.Planet{first, second} {
		q, err := world.Queue(p.ID(), queue.KindConstruction)
		require.NoError(t, err)
		_, err = q.Enqueue(catalog.MetalMine, 1, worldStart)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, world.QueueDepth(queue.KindConstruction))

	// Act
	completed := world.TickQueues(queue.KindConstruction, worldStart.Add(2*time.Minute))

	// Assert
	assert.Equal(t, 2, completed)
	assert.Equal(t, 0, world.QueueDepth(queue.KindConstruction))

	first.Lock()
	level := first.BuildingLevel(catalog.MetalMine)
	first.Unlock()
	assert.Equal(t, 1, level)
}

func TestWorld_TickQueuesOnlyTouchesItsKind(t *testing.T) {
	// Arrange
	world := newTestWorld(t)
	p, err := world.FoundColony("Homeworld", planet.OwnerPlayer,
		shared.Coordinates{Galaxy: 1, System: 1, Position: 8}, worldStart)
	require.NoError(t, err)

	q, err := world.Queue(p.ID(), queue.KindConstruction)
	require.NoError(t, err)
	_, err = q.Enqueue(catalog.MetalMine, 1, worldStart)
	require.NoError(t, err)

	// Act - ticking research must not advance construction
	completed := world.TickQueues(queue.KindResearch, worldStart.Add(2*time.Minute))

	// Assert
	assert.Equal(t, 0, completed)
	assert.Equal(t, 1, world.QueueDepth(queue.KindConstruction))
}
