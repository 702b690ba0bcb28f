// Package config provides YAML-based configuration loading for the game,
// with embedded defaults and a user-directory search order.
package config

// Config contains all tunables for the falling-pickaxe game.
type Config struct {
	Physics  PhysicsConfig  `yaml:"physics"`
	Tnt      TntConfig      `yaml:"tnt"`
	Pickaxe  PickaxeConfig  `yaml:"pickaxe"`
	FastSlow FastSlowConfig `yaml:"fast_slow"`
	Chat     ChatConfig     `yaml:"chat"`
	Progress ProgressConfig `yaml:"progress"`
}

// PhysicsConfig defines the falling-body parameters shared by the pickaxe
// and TNT entities.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`           // Cells/s^2 downward acceleration
	TerminalVelocity float64 `yaml:"terminal_velocity"` // Max fall speed in cells/s
	BounceDamping    float64 `yaml:"bounce_damping"`    // Velocity retained after a failed break
}

// TntConfig defines TNT spawn timing and blast parameters.
type TntConfig struct {
	SpawnIntervalMinSeconds float64 `yaml:"spawn_interval_min_seconds"`
	SpawnIntervalMaxSeconds float64 `yaml:"spawn_interval_max_seconds"`
	FuseSeconds             float64 `yaml:"fuse_seconds"`
	RadiusBlocks            int     `yaml:"radius_blocks"`
	MegaScale               int     `yaml:"mega_scale"`
}

// PickaxeConfig defines the timers for random pickaxe mutations that run
// while chat is quiet or disabled.
type PickaxeConfig struct {
	ChangeIntervalMinSeconds  float64 `yaml:"change_interval_min_seconds"`
	ChangeIntervalMaxSeconds  float64 `yaml:"change_interval_max_seconds"`
	EnlargeIntervalMinSeconds float64 `yaml:"enlarge_interval_min_seconds"`
	EnlargeIntervalMaxSeconds float64 `yaml:"enlarge_interval_max_seconds"`
	EnlargeDurationSeconds    float64 `yaml:"enlarge_duration_seconds"`
}

// FastSlowConfig defines the speed-change event timing.
type FastSlowConfig struct {
	IntervalMinSeconds float64 `yaml:"interval_min_seconds"`
	IntervalMaxSeconds float64 `yaml:"interval_max_seconds"`
	DurationSeconds    float64 `yaml:"duration_seconds"`
}

// ChatConfig controls the live-chat integration.
type ChatConfig struct {
	Enabled bool   `yaml:"enabled"`
	// Platform selects the chat source: "youtube" (polled REST) or
	// "kick" (websocket stream).
	Platform string `yaml:"platform"`
	// Channel is the Kick channel slug or the YouTube video/livestream ID.
	Channel string `yaml:"channel"`
	// APIKey is required for the YouTube source.
	APIKey                   string  `yaml:"api_key"`
	PollIntervalSeconds      float64 `yaml:"poll_interval_seconds"`
	QueuesPopIntervalSeconds float64 `yaml:"queues_pop_interval_seconds"`
}

// ProgressConfig controls periodic progress snapshots.
type ProgressConfig struct {
	SaveIntervalSeconds float64 `yaml:"save_interval_seconds"`
}
