package economy

import (
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// Ledger tracks the accruable resource balances of one planet or AI actor.
// Balances change only through linear time accrual (Settle) or explicit
// debits/credits; accrual never pushes a balance past its storage cap.
//
// Ledger is not self-locking. The owning aggregate (Planet, Actor) serializes
// access under its own mutual-exclusion scope.
type Ledger struct {
	metal     float64
	crystal   float64
	deuterium float64

	// energy is a whole balance recomputed on building changes, not accrued
	energy int

	// rates are production rates in units per hour
	rates shared.Resources

	// caps are the storage limits; accrual and credits clamp against them
	caps shared.Resources

	// productionFactor throttles accrual when energy consumption exceeds
	// production; always in (0, 1]
	productionFactor float64

	lastUpdate time.Time
}

// NewLedger creates a ledger with starting balances and no production
func NewLedger(start shared.Resources, caps shared.Resources, now time.Time) *Ledger {
	return &Ledger{
		metal:            start.Metal,
		crystal:          start.Crystal,
		deuterium:        start.Deuterium,
		caps:             caps,
		productionFactor: 1.0,
		lastUpdate:       now,
	}
}

// ReconstructLedger restores a ledger from persisted state, bypassing
// accrual. Used only by repositories.
func ReconstructLedger(
	balances shared.Resources,
	energy int,
	rates shared.Resources,
	caps shared.Resources,
	productionFactor float64,
	lastUpdate time.Time,
) *Ledger {
	if productionFactor <= 0 || productionFactor > 1 {
		productionFactor = 1.0
	}
	return &Ledger{
		metal:            balances.Metal,
		crystal:          balances.Crystal,
		deuterium:        balances.Deuterium,
		energy:           energy,
		rates:            rates,
		caps:             caps,
		productionFactor: productionFactor,
		lastUpdate:       lastUpdate,
	}
}

// Settle integrates elapsed production time into the balances and advances
// lastUpdate. Calling it twice with no elapsed time is a no-op, which makes
// it safe to invoke lazily before every read or mutation.
func (l *Ledger) Settle(now time.Time) {
	elapsed := now.Sub(l.lastUpdate)
	if elapsed <= 0 {
		return
	}

	hours := elapsed.Hours()
	accrued := l.rates.Scale(hours * l.productionFactor)

	l.metal = accrueClamped(l.metal, accrued.Metal, l.caps.Metal)
	l.crystal = accrueClamped(l.crystal, accrued.Crystal, l.caps.Crystal)
	l.deuterium = accrueClamped(l.deuterium, accrued.Deuterium, l.caps.Deuterium)
	l.lastUpdate = now
}

// accrueClamped adds amount without crossing the cap. A balance already
// above cap (e.g. from mission cargo) is left as-is rather than reduced.
func accrueClamped(balance, amount, cap float64) float64 {
	if balance >= cap {
		return balance
	}
	next := balance + amount
	if next > cap {
		return cap
	}
	return next
}

// HasAtLeast settles, then reports whether every balance covers cost
func (l *Ledger) HasAtLeast(cost shared.Resources, now time.Time) bool {
	l.Settle(now)
	return l.Balances().Covers(cost)
}

// Debit settles, then atomically subtracts cost. On insufficiency nothing is
// mutated and an InsufficientResourcesError is returned.
func (l *Ledger) Debit(cost shared.Resources, now time.Time) error {
	l.Settle(now)
	balances := l.Balances()
	if !balances.Covers(cost) {
		return shared.NewInsufficientResourcesError(cost, balances)
	}
	l.metal -= cost.Metal
	l.crystal -= cost.Crystal
	l.deuterium -= cost.Deuterium
	return nil
}

// Credit settles, then adds the amount. Credits clamp to the storage cap
// like accrual does: a refund cannot overfill a depot.
func (l *Ledger) Credit(amount shared.Resources, now time.Time) {
	l.Settle(now)
	l.metal = accrueClamped(l.metal, amount.Metal, l.caps.Metal)
	l.crystal = accrueClamped(l.crystal, amount.Crystal, l.caps.Crystal)
	l.deuterium = accrueClamped(l.deuterium, amount.Deuterium, l.caps.Deuterium)
}

// SetRates replaces the production-rate vector (units per hour). It does not
// retroactively settle; callers settle first when that matters.
func (l *Ledger) SetRates(rates shared.Resources) {
	l.rates = rates
}

// SetCapacities replaces the storage caps
func (l *Ledger) SetCapacities(caps shared.Resources) {
	l.caps = caps
}

// SetEnergy records the whole-balance energy state and derives the
// production throttle. When consumption exceeds production, output scales
// down proportionally; the throttle applies to players and AI actors alike.
func (l *Ledger) SetEnergy(produced, consumed int) {
	l.energy = produced - consumed
	if consumed <= produced || consumed == 0 {
		l.productionFactor = 1.0
		return
	}
	l.productionFactor = float64(produced) / float64(consumed)
}

// Getters

// Balances returns the current balances without settling. Call Settle first
// when freshness matters.
func (l *Ledger) Balances() shared.Resources {
	return shared.NewResources(l.metal, l.crystal, l.deuterium)
}

// Energy returns the energy balance; negative means deficit
func (l *Ledger) Energy() int {
	return l.energy
}

// Rates returns the production-rate vector in units per hour
func (l *Ledger) Rates() shared.Resources {
	return l.rates
}

// Capacities returns the storage caps
func (l *Ledger) Capacities() shared.Resources {
	return l.caps
}

// ProductionFactor returns the current energy throttle in (0, 1]
func (l *Ledger) ProductionFactor() float64 {
	return l.productionFactor
}

// LastUpdate returns the timestamp of the last settle
func (l *Ledger) LastUpdate() time.Time {
	return l.lastUpdate
}
