package config

import (
	_ "embed"
)

//go:embed defaults/pickfall.yaml
var defaultYAML []byte

// Default returns the hardcoded fallback configuration, used if even the
// embedded YAML fails to parse.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:          55.0,
			TerminalVelocity: 30.0,
			BounceDamping:    0.35,
		},
		Tnt: TntConfig{
			SpawnIntervalMinSeconds: 8.0,
			SpawnIntervalMaxSeconds: 20.0,
			FuseSeconds:             4.0,
			RadiusBlocks:            3,
			MegaScale:               2,
		},
		Pickaxe: PickaxeConfig{
			ChangeIntervalMinSeconds:  20.0,
			ChangeIntervalMaxSeconds:  45.0,
			EnlargeIntervalMinSeconds: 30.0,
			EnlargeIntervalMaxSeconds: 60.0,
			EnlargeDurationSeconds:    10.0,
		},
		FastSlow: FastSlowConfig{
			IntervalMinSeconds: 25.0,
			IntervalMaxSeconds: 50.0,
			DurationSeconds:    8.0,
		},
		Chat: ChatConfig{
			Enabled:                  false,
			Platform:                 "kick",
			PollIntervalSeconds:      5.0,
			QueuesPopIntervalSeconds: 3.0,
		},
		Progress: ProgressConfig{
			SaveIntervalSeconds: 60.0,
		},
	}
}
