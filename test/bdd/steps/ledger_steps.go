package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

var bddStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type ledgerContext struct {
	planet *planet.Planet
	now    time.Time
	err    error
}

func (lc *ledgerContext) reset() {
	lc.planet = nil
	lc.now = bddStart
	lc.err = nil
}

func (lc *ledgerContext) aFreshPlanet() error {
	coords, err := shared.NewCoordinates(1, 1, 4)
	if err != nil {
		return err
	}
	lc.planet = planet.NewPlanet("Homeworld", planet.OwnerPlayer, coords, catalog.Default(), bddStart)
	lc.now = bddStart
	return nil
}

func (lc *ledgerContext) thePlanetProducesPerHour(metal, crystal int) error {
	lc.planet.Lock()
	defer lc.planet.Unlock()
	lc.planet.Ledger().SetRates(shared.NewResources(float64(metal), float64(crystal), 0))
	return nil
}

func (lc *ledgerContext) thePlanetConsumesTwiceItsEnergy() error {
	lc.planet.Lock()
	defer lc.planet.Unlock()
	lc.planet.Ledger().SetEnergy(50, 100)
	return nil
}

func (lc *ledgerContext) minutesPass(minutes int) error {
	lc.now = lc.now.Add(time.Duration(minutes) * time.Minute)
	lc.planet.Lock()
	defer lc.planet.Unlock()
	lc.planet.Ledger().Settle(lc.now)
	return nil
}

func (lc *ledgerContext) hoursPass(hours int) error {
	return lc.minutesPass(hours * 60)
}

func (lc *ledgerContext) iTryToSpendMetal(amount int) error {
	lc.planet.Lock()
	defer lc.planet.Unlock()
	lc.err = lc.planet.Ledger().Debit(shared.NewResources(float64(amount), 0, 0), lc.now)
	return nil
}

func (lc *ledgerContext) theSpendIsRefused() error {
	if lc.err == nil {
		return fmt.Errorf("expected the debit to be refused")
	}
	if !shared.IsPrecondition(lc.err) {
		return fmt.Errorf("expected a precondition failure, got %v", lc.err)
	}
	return nil
}

func (lc *ledgerContext) thePlanetHolds(amount int, resource string) error {
	lc.planet.Lock()
	balances := lc.planet.Ledger().Balances()
	lc.planet.Unlock()

	var got float64
	switch resource {
	case "metal":
		got = balances.Metal
	case "crystal":
		got = balances.Crystal
	case "deuterium":
		got = balances.Deuterium
	default:
		return fmt.Errorf("unknown resource %q", resource)
	}

	want := float64(amount)
	if got < want-0.001 || got > want+0.001 {
		return fmt.Errorf("expected %v %s, got %v", want, resource, got)
	}
	return nil
}

// InitializeLedgerScenario registers the resource ledger steps
func InitializeLedgerScenario(sc *godog.ScenarioContext) {
	ctx := &ledgerContext{}

	sc.Before(func(c context.Context, scenario *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})

	sc.Step(`^a fresh planet$`, ctx.aFreshPlanet)
	sc.Step(`^the planet produces (\d+) metal and (\d+) crystal per hour$`, ctx.thePlanetProducesPerHour)
	sc.Step(`^the planet consumes twice the energy it produces$`, ctx.thePlanetConsumesTwiceItsEnergy)
	sc.Step(`^(\d+) minutes pass$`, ctx.minutesPass)
	sc.Step(`^(\d+) hours pass$`, ctx.hoursPass)
	sc.Step(`^I try to spend (\d+) metal$`, ctx.iTryToSpendMetal)
	sc.Step(`^the spend is refused$`, ctx.theSpendIsRefused)
	sc.Step(`^the planet holds (\d+) (metal|crystal|deuterium)$`, ctx.thePlanetHolds)
}
