package config

import "time"

// GameConfig holds the simulation tuning knobs
type GameConfig struct {
	// UniverseSpeed divides flight times and is the reference pace at 1.0
	UniverseSpeed float64 `mapstructure:"universe_speed" validate:"omitempty,gt=0"`

	// QueueTickInterval is how often the four build queues advance
	QueueTickInterval time.Duration `mapstructure:"queue_tick_interval"`

	// FleetTickInterval is how often mission deadlines are evaluated
	FleetTickInterval time.Duration `mapstructure:"fleet_tick_interval"`

	// RefundFraction of the paid cost returned on queue cancellation
	RefundFraction float64 `mapstructure:"refund_fraction" validate:"min=0,max=1"`

	// MinFlightTime floors every mission leg
	MinFlightTime time.Duration `mapstructure:"min_flight_time"`

	// CatalogPath optionally points at a YAML balance override file
	CatalogPath string `mapstructure:"catalog_path"`

	// Universe grid dimensions
	Galaxies  int `mapstructure:"galaxies" validate:"omitempty,min=1"`
	Systems   int `mapstructure:"systems" validate:"omitempty,min=1"`
	Positions int `mapstructure:"positions" validate:"omitempty,min=1"`

	// HomePlanet is where a fresh world places the player
	HomeGalaxy   int    `mapstructure:"home_galaxy"`
	HomeSystem   int    `mapstructure:"home_system"`
	HomePosition int    `mapstructure:"home_position"`
	HomeName     string `mapstructure:"home_name"`

	// StartingActors is the initial AI population of a fresh world
	StartingActors int `mapstructure:"starting_actors" validate:"min=0"`
}
