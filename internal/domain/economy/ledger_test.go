package economy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/economy"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestLedger_SettleAccruesLinearly(t *testing.T) {
	// Arrange
	ledger := economy.NewLedger(
		shared.NewResources(100, 100, 100),
		shared.NewResources(100000, 100000, 100000),
		testStart,
	)
	ledger.SetRates(shared.NewResources(3600, 1800, 0))

	// Act
	ledger.Settle(testStart.Add(30 * time.Minute))

	// Assert
	balances := ledger.Balances()
	assert.InDelta(t, 1900, balances.Metal, 0.001)
	assert.InDelta(t, 1000, balances.Crystal, 0.001)
	assert.InDelta(t, 100, balances.Deuterium, 0.001)
}

func TestLedger_SettleIsIdempotentAtSameInstant(t *testing.T) {
	// Arrange
	ledger := economy.NewLedger(
		shared.NewResources(500, 0, 0),
		shared.NewResources(100000, 100000, 100000),
		testStart,
	)
	ledger.SetRates(shared.NewResources(1000, 0, 0))
	now := testStart.Add(time.Hour)

	// Act
	ledger.Settle(now)
	ledger.Settle(now)

	// Assert
	assert.InDelta(t, 1500, ledger.Balances().Metal, 0.001)
}

func TestLedger_SettleIgnoresPastTimestamps(t *testing.T) {
	// Arrange
	ledger := economy.NewLedger(
		shared.NewResources(500, 0, 0),
		shared.NewResources(100000, 100000, 100000),
		testStart,
	)
	ledger.SetRates(shared.NewResources(1000, 0, 0))

	// Act
	ledger.Settle(testStart.Add(-time.Hour))

	// Assert
	assert.InDelta(t, 500, ledger.Balances().Metal, 0.001)
	assert.Equal(t, testStart, ledger.LastUpdate())
}

func TestLedger_AccrualStopsAtCapacity(t *testing.T) {
	// Arrange
	ledger := economy.NewLedger(
		shared.NewResources(900, 0, 0),
		shared.NewResources(1000, 1000, 1000),
		testStart,
	)
	ledger.SetRates(shared.NewResources(200, 0, 0))

	// Act
	ledger.Settle(testStart.Add(time.Hour))

	// Assert
	assert.InDelta(t, 1000, ledger.Balances().Metal, 0.001)
}

func TestLedger_BalanceAboveCapacityIsNotReduced(t *testing.T) {
	// Arrange - plundered cargo can land above the cap
	ledger := economy.ReconstructLedger(
		shared.NewResources(1500, 0, 0),
		0,
		shared.NewResources(100, 0, 0),
		shared.NewResources(1000, 1000, 1000),
		1.0,
		testStart,
	)

	// Act
	ledger.Settle(testStart.Add(time.Hour))

	// Assert
	assert.InDelta(t, 1500, ledger.Balances().Metal, 0.001)
}

func TestLedger_DebitSubtractsAfterSettling(t *testing.T) {
	// Arrange
	ledger := economy.NewLedger(
		shared.NewResources(100, 100, 0),
		shared.NewResources(100000, 100000, 100000),
		testStart,
	)
	ledger.SetRates(shared.NewResources(100, 0, 0))

	// Act
	err := ledger.Debit(shared.NewResources(150, 50, 0), testStart.Add(time.Hour))

	// Assert
	require.NoError(t, err)
	balances := ledger.Balances()
	assert.InDelta(t, 50, balances.Metal, 0.001)
	assert.InDelta(t, 50, balances.Crystal, 0.001)
}

func TestLedger_DebitInsufficientLeavesBalancesUntouched(t *testing.T) {
	// Arrange
	ledger := economy.NewLedger(
		shared.NewResources(100, 100, 100),
		shared.NewResources(100000, 100000, 100000),
		testStart,
	)

	// Act
	err := ledger.Debit(shared.NewResources(200, 0, 0), testStart)

	// Assert
	require.Error(t, err)
	assert.True(t, shared.IsPrecondition(err))
	balances := ledger.Balances()
	assert.InDelta(t, 100, balances.Metal, 0.001)
	assert.InDelta(t, 100, balances.Crystal, 0.001)
	assert.InDelta(t, 100, balances.Deuterium, 0.001)
}

func TestLedger_CreditClampsToCapacity(t *testing.T) {
	// Arrange
	ledger := economy.NewLedger(
		shared.NewResources(900, 0, 0),
		shared.NewResources(1000, 1000, 1000),
		testStart,
	)

	// Act
	ledger.Credit(shared.NewResources(500, 0, 0), testStart)

	// Assert
	assert.InDelta(t, 1000, ledger.Balances().Metal, 0.001)
}

func TestLedger_EnergyDeficitThrottlesProduction(t *testing.T) {
	// Arrange
	ledger := economy.NewLedger(
		shared.NewResources(0, 0, 0),
		shared.NewResources(100000, 100000, 100000),
		testStart,
	)
	ledger.SetRates(shared.NewResources(1000, 0, 0))

	// Act - half the consumed energy is available
	ledger.SetEnergy(50, 100)
	ledger.Settle(testStart.Add(time.Hour))

	// Assert
	assert.Equal(t, -50, ledger.Energy())
	assert.InDelta(t, 0.5, ledger.ProductionFactor(), 0.001)
	assert.InDelta(t, 500, ledger.Balances().Metal, 0.001)
}

func TestLedger_EnergySurplusRestoresFullProduction(t *testing.T) {
	// Arrange
	ledger := economy.NewLedger(
		shared.NewResources(0, 0, 0),
		shared.NewResources(100000, 100000, 100000),
		testStart,
	)
	ledger.SetEnergy(50, 100)

	// Act
	ledger.SetEnergy(200, 100)

	// Assert
	assert.Equal(t, 100, ledger.Energy())
	assert.InDelta(t, 1.0, ledger.ProductionFactor(), 0.001)
}

func TestLedger_HasAtLeastSettlesFirst(t *testing.T) {
	// Arrange
	ledger := economy.NewLedger(
		shared.NewResources(0, 0, 0),
		shared.NewResources(100000, 100000, 100000),
		testStart,
	)
	ledger.SetRates(shared.NewResources(100, 0, 0))

	// Act & Assert
	assert.False(t, ledger.HasAtLeast(shared.NewResources(100, 0, 0), testStart))
	assert.True(t, ledger.HasAtLeast(shared.NewResources(100, 0, 0), testStart.Add(time.Hour)))
}
