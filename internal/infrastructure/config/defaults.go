package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults: a single-node game server runs fine on sqlite
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "ogame.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "ogame"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "ogame"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}
	if cfg.Database.FlushRate == 0 {
		cfg.Database.FlushRate = 2
	}
	if cfg.Database.FlushBurst == 0 {
		cfg.Database.FlushBurst = 10
	}

	// Game defaults
	if cfg.Game.UniverseSpeed == 0 {
		cfg.Game.UniverseSpeed = 1.0
	}
	if cfg.Game.QueueTickInterval == 0 {
		cfg.Game.QueueTickInterval = 1 * time.Second
	}
	if cfg.Game.FleetTickInterval == 0 {
		cfg.Game.FleetTickInterval = 1 * time.Second
	}
	if cfg.Game.RefundFraction == 0 {
		cfg.Game.RefundFraction = 1.0
	}
	if cfg.Game.MinFlightTime == 0 {
		cfg.Game.MinFlightTime = 10 * time.Second
	}
	if cfg.Game.Galaxies == 0 {
		cfg.Game.Galaxies = 9
	}
	if cfg.Game.Systems == 0 {
		cfg.Game.Systems = 499
	}
	if cfg.Game.Positions == 0 {
		cfg.Game.Positions = 15
	}
	if cfg.Game.HomeGalaxy == 0 {
		cfg.Game.HomeGalaxy = 1
	}
	if cfg.Game.HomeSystem == 0 {
		cfg.Game.HomeSystem = 1
	}
	if cfg.Game.HomePosition == 0 {
		cfg.Game.HomePosition = 8
	}
	if cfg.Game.HomeName == "" {
		cfg.Game.HomeName = "Homeworld"
	}
	if cfg.Game.StartingActors == 0 {
		cfg.Game.StartingActors = 3
	}

	// AI defaults mirror the reference tuning
	if cfg.AI.BuildingTrigger == 0 {
		cfg.AI.BuildingTrigger = 0.70
	}
	if cfg.AI.ResearchTrigger == 0 {
		cfg.AI.ResearchTrigger = 0.80
	}
	if cfg.AI.ShipTrigger == 0 {
		cfg.AI.ShipTrigger = 0.60
	}
	if cfg.AI.DefenseTrigger == 0 {
		cfg.AI.DefenseTrigger = 0.60
	}
	if cfg.AI.AttackTrigger == 0 {
		cfg.AI.AttackTrigger = 0.60
	}
	if cfg.AI.MirrorBias == 0 {
		cfg.AI.MirrorBias = 0.50
	}
	if cfg.AI.ColonizeChance == 0 {
		cfg.AI.ColonizeChance = 0.05
	}
	if cfg.AI.MaxActionsPerEvent == 0 {
		cfg.AI.MaxActionsPerEvent = 2
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/ogame-daemon.pid"
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}

	// Metrics defaults
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = "localhost:9090"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
