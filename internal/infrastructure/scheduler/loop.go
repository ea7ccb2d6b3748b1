package scheduler

import (
	"context"
	"log"
	"runtime/debug"
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/shared"
)

// TickFunc advances one subsystem to the given time
type TickFunc func(now time.Time)

// Loop drives one tick function at a fixed interval off the injected
// clock. With a mock clock sleeps advance instantly, so tests can run
// hours of simulated time synchronously.
type Loop struct {
	name     string
	interval time.Duration
	clock    shared.Clock
	tick     TickFunc
}

// NewLoop creates a named tick loop
func NewLoop(name string, interval time.Duration, clock shared.Clock, tick TickFunc) *Loop {
	return &Loop{name: name, interval: interval, clock: clock, tick: tick}
}

// Run blocks until ctx is canceled. A panicking tick is logged and the
// loop keeps going; one bad tick must not take the daemon down.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		l.clock.Sleep(l.interval)
		l.safeTick(l.clock.Now())
	}
}

// RunOnce executes a single guarded tick at the clock's current time
func (l *Loop) RunOnce() {
	l.safeTick(l.clock.Now())
}

func (l *Loop) safeTick(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("scheduler: %s tick panicked: %v\n%s", l.name, r, debug.Stack())
		}
	}()
	l.tick(now)
}
