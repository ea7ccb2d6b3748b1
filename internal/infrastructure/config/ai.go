package config

// AIConfig holds the reactive AI engine tuning. All chances are in [0, 1].
type AIConfig struct {
	BuildingTrigger    float64 `mapstructure:"building_trigger" validate:"min=0,max=1"`
	ResearchTrigger    float64 `mapstructure:"research_trigger" validate:"min=0,max=1"`
	ShipTrigger        float64 `mapstructure:"ship_trigger" validate:"min=0,max=1"`
	DefenseTrigger     float64 `mapstructure:"defense_trigger" validate:"min=0,max=1"`
	AttackTrigger      float64 `mapstructure:"attack_trigger" validate:"min=0,max=1"`
	MirrorBias         float64 `mapstructure:"mirror_bias" validate:"min=0,max=1"`
	ColonizeChance     float64 `mapstructure:"colonize_chance" validate:"min=0,max=1"`
	MaxActionsPerEvent int     `mapstructure:"max_actions_per_event" validate:"omitempty,min=1"`

	// Seed fixes the decision RNG; 0 seeds from the clock
	Seed int64 `mapstructure:"seed"`
}
