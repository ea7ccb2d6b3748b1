package ai

import (
	"time"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/planet"
)

// Actor is one non-player entity: an AI-owned world with its own ledger,
// levels and inventories, plus activity bookkeeping. All of its state lives
// in the underlying planet aggregate and is mutated exclusively by the
// reactive engine, under the planet's lock.
type Actor struct {
	home         *planet.Planet
	lastActivity time.Time
}

// NewActor wraps an AI-owned planet as an actor
func NewActor(home *planet.Planet, now time.Time) *Actor {
	return &Actor{home: home, lastActivity: now}
}

// Home returns the actor's planet aggregate
func (a *Actor) Home() *planet.Planet {
	return a.home
}

// LastActivity returns when the actor last performed an action
func (a *Actor) LastActivity() time.Time {
	return a.lastActivity
}
