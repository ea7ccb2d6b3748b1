package persistence

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/danielp299/ogamecloneapp-sub000/internal/application/events"
	"github.com/danielp299/ogamecloneapp-sub000/internal/application/game"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/queue"
	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// Flusher is the write-behind persister. It listens for change pulses
// on the bus and saves the whole world, paced by a rate limiter so a
// burst of mutations produces one bounded stream of writes instead of a
// write per mutation. Change pulses carry no payload; every flush
// re-reads live state.
type Flusher struct {
	world    *game.World
	planets  *GormPlanetRepository
	queues   *GormQueueRepository
	missions *GormMissionRepository
	bus      *events.ChangeBus
	limiter  *rate.Limiter
}

// NewFlusher creates a flusher saving at most flushRate snapshots per
// second with the given burst
func NewFlusher(
	world *game.World,
	planets *GormPlanetRepository,
	queues *GormQueueRepository,
	missions *GormMissionRepository,
	bus *events.ChangeBus,
	flushRate float64,
	burst int,
) *Flusher {
	return &Flusher{
		world:    world,
		planets:  planets,
		queues:   queues,
		missions: missions,
		bus:      bus,
		limiter:  rate.NewLimiter(rate.Limit(flushRate), burst),
	}
}

// Run blocks until ctx is canceled, flushing on every coalesced change
// pulse. A final flush runs on shutdown so the last mutations land.
func (f *Flusher) Run(ctx context.Context) {
	ch := f.bus.Subscribe()
	defer f.bus.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			if err := f.FlushNow(context.Background()); err != nil {
				log.Printf("flusher: final flush failed: %v", err)
			}
			return
		case <-ch:
			if err := f.limiter.Wait(ctx); err != nil {
				continue
			}
			if err := f.FlushNow(ctx); err != nil {
				log.Printf("flusher: flush failed: %v", err)
			}
		}
	}
}

// FlushNow saves every planet, its queues and the mission set. The
// snapshot is not cross-entity atomic; each row is internally
// consistent and the next flush heals any skew.
func (f *Flusher) FlushNow(ctx context.Context) error {
	activity := make(map[shared.PlanetID]time.Time)
	for _, actor := range f.world.AI().Actors() {
		activity[actor.Home().ID()] = actor.LastActivity()
	}

	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for _, p := range f.world.Registry().All() {
		var lastActivity *time.Time
		if p.Owner() == planet.OwnerAI {
			if ts, ok := activity[p.ID()]; ok {
				lastActivity = &ts
			}
		}
		record(f.planets.Save(ctx, p, lastActivity))

		for _, kind := range queue.AllKinds() {
			q, err := f.world.Queue(p.ID(), kind)
			if err != nil {
				continue
			}
			record(f.queues.Save(ctx, p.ID(), q))
		}
	}

	record(f.missions.SaveAll(ctx, f.world.Fleet()))
	return firstErr
}
