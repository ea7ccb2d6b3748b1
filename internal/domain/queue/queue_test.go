package queue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/queue"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

var queueStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestPlanet(t *testing.T) *planet.Planet {
	t.Helper()
	coords, err := shared.NewCoordinates(1, 1, 4)
	require.NoError(t, err)
	return planet.NewPlanet("Testworld", planet.OwnerPlayer, coords, catalog.Default(), queueStart)
}

func newQueue(t *testing.T, kind queue.Kind, p *planet.Planet) *queue.Queue {
	t.Helper()
	return queue.NewQueue(kind, p, catalog.Default(), 1.0, queueStart)
}

// grantLevels sets up prerequisite buildings and technologies and tops up
// the planet's resources to its storage caps
func grantLevels(p *planet.Planet, buildings map[catalog.EntityID]int, technologies map[catalog.EntityID]int, now time.Time) {
	p.Lock()
	defer p.Unlock()
	for id, level := range buildings {
		for i := 0; i < level; i++ {
			p.IncrementBuilding(id, now)
		}
	}
	for id, level := range technologies {
		for i := 0; i < level; i++ {
			_ = p.IncrementTechnology(id)
		}
	}
	p.Ledger().Credit(shared.NewResources(1e9, 1e9, 1e9), now)
}

func TestQueue_EnqueueDebitsCostAtCurrentLevel(t *testing.T) {
	// Arrange
	p := newTestPlanet(t)
	q := newQueue(t, queue.KindConstruction, p)

	// Act
	item, err := q.Enqueue(catalog.MetalMine, 1, queueStart)

	// Assert - Metal Mine level 0 costs 60/15, starting balance is 500/300/100
	require.NoError(t, err)
	assert.Equal(t, queue.ItemStatusInProgress, item.Status())
	assert.Equal(t, 1, q.Len())

	p.Lock()
	balances := p.Ledger().Balances()
	p.Unlock()
	assert.InDelta(t, 440, balances.Metal, 0.001)
	assert.InDelta(t, 285, balances.Crystal, 0.001)
	assert.InDelta(t, 100, balances.Deuterium, 0.001)
}

func TestQueue_EnqueueRejectsUnknownEntity(t *testing.T) {
	// Arrange
	p := newTestPlanet(t)
	q := newQueue(t, queue.KindConstruction, p)

	// Act
	_, err := q.Enqueue("DEATH_STAR", 1, queueStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}

func TestQueue_EnqueueRejectsWrongKind(t *testing.T) {
	// Arrange
	p := newTestPlanet(t)
	q := newQueue(t, queue.KindConstruction, p)

	// Act - a ship does not belong in the construction queue
	_, err := q.Enqueue(catalog.LightFighter, 1, queueStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
	assert.Equal(t, 0, q.Len())
}

func TestQueue_EnqueueRejectsNonPositiveQuantity(t *testing.T) {
	// Arrange
	p := newTestPlanet(t)
	q := newQueue(t, queue.KindConstruction, p)

	// Act
	_, err := q.Enqueue(catalog.MetalMine, 0, queueStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}

func TestQueue_EnqueueRefusesLockedEntry(t *testing.T) {
	// Arrange - Energy Technology needs a level 1 Research Lab
	p := newTestPlanet(t)
	q := newQueue(t, queue.KindResearch, p)

	// Act
	_, err := q.Enqueue(catalog.EnergyTech, 1, queueStart)

	// Assert - refusal leaves the balance untouched
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))

	p.Lock()
	balances := p.Ledger().Balances()
	p.Unlock()
	assert.InDelta(t, 500, balances.Metal, 0.001)
	assert.InDelta(t, 300, balances.Crystal, 0.001)
}

func TestQueue_InsufficientResourcesLeavesQueueEmpty(t *testing.T) {
	// Arrange - Robotics Factory needs 200 deuterium, the planet starts with 100
	p := newTestPlanet(t)
	q := newQueue(t, queue.KindConstruction, p)

	// Act
	_, err := q.Enqueue(catalog.RoboticsFactory, 1, queueStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
	assert.Equal(t, 0, q.Len())

	p.Lock()
	balances := p.Ledger().Balances()
	p.Unlock()
	assert.InDelta(t, 100, balances.Deuterium, 0.001)
}

func TestQueue_OnlyHeadConsumesTime(t *testing.T) {
	// Arrange
	p := newTestPlanet(t)
	q := newQueue(t, queue.KindConstruction, p)
	_, err := q.Enqueue(catalog.MetalMine, 1, queueStart)
	require.NoError(t, err)
	second, err := q.Enqueue(catalog.CrystalMine, 1, queueStart)
	require.NoError(t, err)

	// Act - a Metal Mine takes 108s at level 0 facilities
	completed := q.Tick(queueStart.Add(60 * time.Second))

	// Assert
	assert.Equal(t, 0, completed)
	items := q.Items()
	require.Len(t, items, 2)
	assert.Less(t, items[0].Remaining(), items[0].PerUnitDuration())
	assert.Equal(t, queue.ItemStatusQueued, second.Status())
	assert.Equal(t, second.PerUnitDuration(), second.Remaining())
}

func TestQueue_TickCatchesUpMissedCompletions(t *testing.T) {
	// Arrange - Metal Mine (108s) then Crystal Mine (~104s) both fit in 300s
	p := newTestPlanet(t)
	q := newQueue(t, queue.KindConstruction, p)
	_, err := q.Enqueue(catalog.MetalMine, 1, queueStart)
	require.NoError(t, err)
	_, err = q.Enqueue(catalog.CrystalMine, 1, queueStart)
	require.NoError(t, err)

	// Act - one late tick instead of many small ones
	completed := q.Tick(queueStart.Add(300 * time.Second))

	// Assert
	assert.Equal(t, 2, completed)
	assert.Equal(t, 0, q.Len())

	p.Lock()
	defer p.Unlock()
	assert.Equal(t, 1, p.BuildingLevel(catalog.MetalMine))
	assert.Equal(t, 1, p.BuildingLevel(catalog.CrystalMine))
}

func TestQueue_TickBeforeCompletionChangesNothing(t *testing.T) {
	// Arrange
	p := newTestPlanet(t)
	q := newQueue(t, queue.KindConstruction, p)
	_, err := q.Enqueue(catalog.MetalMine, 1, queueStart)
	require.NoError(t, err)

	// Act
	completed := q.Tick(queueStart.Add(time.Second))

	// Assert
	assert.Equal(t, 0, completed)
	p.Lock()
	level := p.BuildingLevel(catalog.MetalMine)
	p.Unlock()
	assert.Equal(t, 0, level)
}

func TestQueue_BatchBuildsShipsUnitByUnit(t *testing.T) {
	// Arrange - Light Fighters need Shipyard 1 and Combustion Drive 1; with
	// Shipyard 1 one fighter takes (3000+1000)/2500 h / 2 = 2880s
	p := newTestPlanet(t)
	grantLevels(p,
		map[catalog.EntityID]int{catalog.Shipyard: 1},
		map[catalog.EntityID]int{catalog.CombustionDrive: 1},
		queueStart,
	)
	q := newQueue(t, queue.KindShipyard, p)

	item, err := q.Enqueue(catalog.LightFighter, 2, queueStart)
	require.NoError(t, err)
	assert.Equal(t, 2, item.UnitsTotal())

	// Act - first unit done, second still building
	completed := q.Tick(queueStart.Add(2881 * time.Second))

	// Assert
	assert.Equal(t, 1, completed)
	p.Lock()
	count := p.ShipCount(catalog.LightFighter)
	p.Unlock()
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, item.Quantity())
	assert.Equal(t, 1, q.Len())

	// Act - second unit finishes, item leaves the queue
	completed = q.Tick(queueStart.Add(5762 * time.Second))

	// Assert
	assert.Equal(t, 1, completed)
	p.Lock()
	count = p.ShipCount(catalog.LightFighter)
	p.Unlock()
	assert.Equal(t, 2, count)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, queue.ItemStatusCompleted, item.Status())
}

func TestQueue_FacilityLevelsShortenBuildTime(t *testing.T) {
	// Arrange - Robotics Factory 3 divides construction time by 4
	p := newTestPlanet(t)
	grantLevels(p, map[catalog.EntityID]int{catalog.RoboticsFactory: 3}, nil, queueStart)
	q := newQueue(t, queue.KindConstruction, p)

	// Act
	item, err := q.Enqueue(catalog.MetalMine, 1, queueStart)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, float64(27*time.Second), float64(item.PerUnitDuration()), float64(time.Millisecond))
}

func TestQueue_TechnologyCannotExceedMaxLevel(t *testing.T) {
	// Arrange
	p := newTestPlanet(t)
	grantLevels(p,
		map[catalog.EntityID]int{catalog.ResearchLab: 1},
		map[catalog.EntityID]int{catalog.EnergyTech: catalog.MaxTechnologyLevel},
		queueStart,
	)
	q := newQueue(t, queue.KindResearch, p)

	// Act
	_, err := q.Enqueue(catalog.EnergyTech, 1, queueStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}

func TestQueue_UniqueDomeTruncatesRequestToOne(t *testing.T) {
	// Arrange
	p := newTestPlanet(t)
	grantLevels(p,
		map[catalog.EntityID]int{catalog.Shipyard: 1},
		map[catalog.EntityID]int{catalog.ShieldingTech: 2},
		queueStart,
	)
	q := newQueue(t, queue.KindDefense, p)

	// Act - asking for three domes quietly yields one
	item, err := q.Enqueue(catalog.SmallShieldDome, 3, queueStart)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, item.UnitsTotal())

	// Act - a second request is refused while the first is queued
	_, err = q.Enqueue(catalog.SmallShieldDome, 1, queueStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
}

func TestQueue_CancelRefundsUnfinishedUnits(t *testing.T) {
	// Arrange - refund fraction 0.5
	p := newTestPlanet(t)
	q := queue.NewQueue(queue.KindConstruction, p, catalog.Default(), 0.5, queueStart)
	item, err := q.Enqueue(catalog.MetalMine, 1, queueStart)
	require.NoError(t, err)

	// Act
	refund, err := q.Cancel(item.ID(), queueStart)

	// Assert - half of 60/15 comes back
	require.NoError(t, err)
	assert.InDelta(t, 30, refund.Metal, 0.001)
	assert.InDelta(t, 7.5, refund.Crystal, 0.001)
	assert.Equal(t, 0, q.Len())

	p.Lock()
	balances := p.Ledger().Balances()
	p.Unlock()
	assert.InDelta(t, 470, balances.Metal, 0.001)
	assert.InDelta(t, 292.5, balances.Crystal, 0.001)
}

func TestQueue_SecondCancelReportsNotFound(t *testing.T) {
	// Arrange
	p := newTestPlanet(t)
	q := newQueue(t, queue.KindConstruction, p)
	item, err := q.Enqueue(catalog.MetalMine, 1, queueStart)
	require.NoError(t, err)
	_, err = q.Cancel(item.ID(), queueStart)
	require.NoError(t, err)

	p.Lock()
	before := p.Ledger().Balances()
	p.Unlock()

	// Act
	_, err = q.Cancel(item.ID(), queueStart)

	// Assert - no double refund
	require.Error(t, err)
	p.Lock()
	after := p.Ledger().Balances()
	p.Unlock()
	assert.Equal(t, before, after)
}

func TestQueue_CancelPromotesNextItem(t *testing.T) {
	// Arrange
	p := newTestPlanet(t)
	q := newQueue(t, queue.KindConstruction, p)
	head, err := q.Enqueue(catalog.MetalMine, 1, queueStart)
	require.NoError(t, err)
	next, err := q.Enqueue(catalog.CrystalMine, 1, queueStart)
	require.NoError(t, err)

	// Act
	_, err = q.Cancel(head.ID(), queueStart)
	require.NoError(t, err)
	q.Tick(queueStart.Add(200 * time.Second))

	// Assert - the crystal mine (~104s) finished in the 200s window
	assert.Equal(t, queue.ItemStatusCompleted, next.Status())
	p.Lock()
	defer p.Unlock()
	assert.Equal(t, 1, p.BuildingLevel(catalog.CrystalMine))
	assert.Equal(t, 0, p.BuildingLevel(catalog.MetalMine))
}

func TestQueue_KindAcceptsMapping(t *testing.T) {
	// Act & Assert
	assert.Equal(t, catalog.KindBuilding, queue.KindConstruction.Accepts())
	assert.Equal(t, catalog.KindTechnology, queue.KindResearch.Accepts())
	assert.Equal(t, catalog.KindShip, queue.KindShipyard.Accepts())
	assert.Equal(t, catalog.KindDefense, queue.KindDefense.Accepts())
	assert.True(t, queue.KindDefense.IsValid())
	assert.False(t, queue.Kind("TRADE").IsValid())
}

func TestQueue_ResearchCompletesOnItsFinalTickExactly(t *testing.T) {
	// Arrange - Energy Technology behind a level 1 lab takes 576s
	p := newTestPlanet(t)
	grantLevels(p, map[catalog.EntityID]int{catalog.ResearchLab: 1}, nil, queueStart)
	q := newQueue(t, queue.KindResearch, p)
	_, err := q.Enqueue(catalog.EnergyTech, 1, queueStart)
	require.NoError(t, err)

	// Act - nine 58s ticks fall short of the finish line
	now := queueStart
	for i := 0; i < 9; i++ {
		now = now.Add(58 * time.Second)
		assert.Equal(t, 0, q.Tick(now))
	}

	// Assert
	p.Lock()
	level := p.TechnologyLevel(catalog.EnergyTech)
	p.Unlock()
	assert.Equal(t, 0, level)

	// Act - the tenth tick crosses it
	now = now.Add(58 * time.Second)
	completed := q.Tick(now)

	// Assert
	assert.Equal(t, 1, completed)
	p.Lock()
	level = p.TechnologyLevel(catalog.EnergyTech)
	p.Unlock()
	assert.Equal(t, 1, level)
	assert.Equal(t, 0, q.Len())
}
