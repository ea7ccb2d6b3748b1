package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/queue"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

type queueContext struct {
	planet       *planet.Planet
	construction *queue.Queue
	research     *queue.Queue
	now          time.Time
	item         *queue.Item
	err          error
}

func (qc *queueContext) reset() {
	qc.planet = nil
	qc.construction = nil
	qc.research = nil
	qc.now = bddStart
	qc.item = nil
	qc.err = nil
}

func (qc *queueContext) aPlanetReadyToBuild() error {
	coords, err := shared.NewCoordinates(1, 1, 4)
	if err != nil {
		return err
	}
	cat := catalog.Default()
	qc.planet = planet.NewPlanet("Homeworld", planet.OwnerPlayer, coords, cat, bddStart)
	qc.construction = queue.NewQueue(queue.KindConstruction, qc.planet, cat, 1.0, bddStart)
	qc.research = queue.NewQueue(queue.KindResearch, qc.planet, cat, 1.0, bddStart)
	qc.now = bddStart
	return nil
}

func (qc *queueContext) iQueueAnUpgrade(entity string) error {
	qc.item, qc.err = qc.construction.Enqueue(catalog.EntityID(entity), 1, qc.now)
	return nil
}

func (qc *queueContext) iQueueTheTechnology(entity string) error {
	qc.item, qc.err = qc.research.Enqueue(catalog.EntityID(entity), 1, qc.now)
	return nil
}

func (qc *queueContext) resourcesHaveBeenSpent(metal, crystal int) error {
	qc.planet.Lock()
	balances := qc.planet.Ledger().Balances()
	qc.planet.Unlock()

	wantMetal := 500 - float64(metal)
	wantCrystal := 300 - float64(crystal)
	if balances.Metal != wantMetal || balances.Crystal != wantCrystal {
		return fmt.Errorf("expected balances %v/%v, got %v/%v",
			wantMetal, wantCrystal, balances.Metal, balances.Crystal)
	}
	return nil
}

func (qc *queueContext) theConstructionQueueHoldsItems(count int) error {
	if got := qc.construction.Len(); got != count {
		return fmt.Errorf("expected %d queued items, got %d", count, got)
	}
	return nil
}

func (qc *queueContext) secondsPass(seconds int) error {
	qc.now = qc.now.Add(time.Duration(seconds) * time.Second)
	qc.construction.Tick(qc.now)
	qc.research.Tick(qc.now)
	return nil
}

func (qc *queueContext) theBuildingIsAtLevel(entity string, level int) error {
	qc.planet.Lock()
	got := qc.planet.BuildingLevel(catalog.EntityID(entity))
	qc.planet.Unlock()
	if got != level {
		return fmt.Errorf("expected %s at level %d, got %d", entity, level, got)
	}
	return nil
}

func (qc *queueContext) iCancelTheQueuedItem() error {
	if qc.item == nil {
		return fmt.Errorf("no queued item to cancel")
	}
	_, qc.err = qc.construction.Cancel(qc.item.ID(), qc.now)
	return qc.err
}

func (qc *queueContext) thePlanetHoldsItsStartingResourcesAgain() error {
	qc.planet.Lock()
	balances := qc.planet.Ledger().Balances()
	qc.planet.Unlock()
	if balances.Metal != 500 || balances.Crystal != 300 || balances.Deuterium != 100 {
		return fmt.Errorf("expected 500/300/100, got %v/%v/%v",
			balances.Metal, balances.Crystal, balances.Deuterium)
	}
	return nil
}

func (qc *queueContext) theRequestIsRefused() error {
	if qc.err == nil {
		return fmt.Errorf("expected the enqueue to be refused")
	}
	if !shared.IsPrecondition(qc.err) {
		return fmt.Errorf("expected a precondition failure, got %v", qc.err)
	}
	return nil
}

// InitializeQueueScenario registers the build queue steps
func InitializeQueueScenario(sc *godog.ScenarioContext) {
	ctx := &queueContext{}

	sc.Before(func(c context.Context, scenario *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})

	sc.Step(`^a planet ready to build$`, ctx.aPlanetReadyToBuild)
	sc.Step(`^I queue a "([^"]*)" upgrade$`, ctx.iQueueAnUpgrade)
	sc.Step(`^I queue the "([^"]*)" technology$`, ctx.iQueueTheTechnology)
	sc.Step(`^(\d+) metal and (\d+) crystal have been spent$`, ctx.resourcesHaveBeenSpent)
	sc.Step(`^the construction queue holds (\d+) items?$`, ctx.theConstructionQueueHoldsItems)
	sc.Step(`^(\d+) seconds pass$`, ctx.secondsPass)
	sc.Step(`^the "([^"]*)" building is at level (\d+)$`, ctx.theBuildingIsAtLevel)
	sc.Step(`^I cancel the queued item$`, ctx.iCancelTheQueuedItem)
	sc.Step(`^the planet holds its starting resources again$`, ctx.thePlanetHoldsItsStartingResourcesAgain)
	sc.Step(`^the request is refused$`, ctx.theRequestIsRefused)
}
