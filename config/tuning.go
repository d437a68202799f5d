// Package config loads the typed tuning values the core treats as external
// configuration (§6): range bands, knowledge tier thresholds, stat-label
// buckets, and difficulty settings. The core never parses YAML itself —
// callers decode a Tuning value once at startup and pass it in; this keeps
// the pipeline packages free of file I/O the way the teacher's mechanics
// packages stay free of it and leave loading to a thin config layer
// (grounded on rulebooks/dnd5e/monster/action_loader.go's "decode into a
// typed struct, apply defaults" shape).
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RangeBand is one row of the ranged-attack range-band table (§4.1a).
type RangeBand struct {
	// MinDistance and MaxDistance bound the Chebyshev distance this band
	// covers. MaxDistance of 0 means "and beyond" (used only by the last,
	// denied band).
	MinDistance int `yaml:"min_distance"`
	MaxDistance int `yaml:"max_distance"`
	// Multiplier is the damage multiplier for this band. Ignored (and the
	// attack is denied outright) when Denied is true.
	Multiplier float64 `yaml:"multiplier"`
	// Retaliation indicates the defender may strike back before the shot
	// resolves (adjacent-threatened band only).
	Retaliation bool `yaml:"retaliation"`
	// Denied means attacks at this distance never roll to hit.
	Denied bool `yaml:"denied"`
	// Name is a human label for the band (for logging/metrics only).
	Name string `yaml:"name"`
}

// KnowledgeThresholds gates the monster-knowledge tiers (§4.10).
type KnowledgeThresholds struct {
	ObservedSeenCount   int `yaml:"observed_seen_count"`
	BattledEngagedCount int `yaml:"battled_engaged_count"`
	UnderstoodKillCount int `yaml:"understood_kill_count"`
}

// StatBuckets are the fixed numeric thresholds for bucketing a monster's
// stats into coarse labels for the knowledge-gated info view. The knowledge
// package's label helpers use built-in thresholds equal to Default()'s
// values and do not read this struct, so overriding it does not change the
// labels.
type StatBuckets struct {
	DurabilityFragileMax int     `yaml:"durability_fragile_max"`
	DurabilitySturdyMax  int     `yaml:"durability_sturdy_max"`
	DurabilityToughMax   int     `yaml:"durability_tough_max"`
	DamageLightMax       float64 `yaml:"damage_light_max"`
	DamageModerateMax    float64 `yaml:"damage_moderate_max"`
	DamageHeavyMax       float64 `yaml:"damage_heavy_max"`
	SpeedSluggishMax     float64 `yaml:"speed_sluggish_max"`
	SpeedNormalMax       float64 `yaml:"speed_normal_max"`
	SpeedFastMax         float64 `yaml:"speed_fast_max"`
	AccuracyOftenMissMax int     `yaml:"accuracy_often_miss_max"`
	AccuracyUsuallyHitMax int    `yaml:"accuracy_usually_hit_max"`
	EvasionEasyMax       int     `yaml:"evasion_easy_max"`
	EvasionAverageMax    int     `yaml:"evasion_average_max"`
}

// Difficulty holds global difficulty settings. GodMode is read by the
// combat pipeline when it applies damage; PlayerDamageMultiplier and
// MonsterDamageMultiplier are loaded and exposed here, but no package in
// this module applies them to damage.
type Difficulty struct {
	PlayerDamageMultiplier  float64 `yaml:"player_damage_multiplier"`
	MonsterDamageMultiplier float64 `yaml:"monster_damage_multiplier"`
	GodMode                 bool    `yaml:"god_mode"`
}

// Tuning is the full set of externally configurable constants consumed by
// the core's pipeline packages.
type Tuning struct {
	RangeBands          []RangeBand         `yaml:"range_bands"`
	KnowledgeThresholds KnowledgeThresholds `yaml:"knowledge_thresholds"`
	StatBuckets         StatBuckets         `yaml:"stat_buckets"`
	Difficulty          Difficulty          `yaml:"difficulty"`
	MaxPathLength       int                 `yaml:"max_path_length"`
	SecretDoorRevealRadius int              `yaml:"secret_door_reveal_radius"`
	// ThreatDistanceMultiplier and MeleeThreatReachCap size the pathfinding
	// auto-action threat check (§4.7): threat_distance = min(reach,
	// MeleeThreatReachCap) * ThreatDistanceMultiplier, letting ranged
	// attackers keep closing until a foe crosses into melee danger (3 tiles
	// with the defaults) while melee attackers (reach 1) stop once a foe is
	// adjacent (1.5 tiles).
	ThreatDistanceMultiplier float64 `yaml:"threat_distance_multiplier"`
	MeleeThreatReachCap      int     `yaml:"melee_threat_reach_cap"`
}

// Default returns the tuning baked into the shipped rule set — the values
// spec.md's tables name directly, so a caller that never loads an override
// file still gets the documented behavior.
func Default() Tuning {
	return Tuning{
		RangeBands: []RangeBand{
			{MinDistance: 1, MaxDistance: 1, Multiplier: 0.25, Retaliation: true, Name: "adjacent_threatened"},
			{MinDistance: 2, MaxDistance: 2, Multiplier: 0.50, Name: "close"},
			{MinDistance: 3, MaxDistance: 6, Multiplier: 1.00, Name: "optimal"},
			{MinDistance: 7, MaxDistance: 7, Multiplier: 0.50, Name: "far"},
			{MinDistance: 8, MaxDistance: 8, Multiplier: 0.25, Name: "extreme"},
			{MinDistance: 9, MaxDistance: 0, Denied: true, Name: "denied"},
		},
		KnowledgeThresholds: KnowledgeThresholds{
			ObservedSeenCount:   1,
			BattledEngagedCount: 3,
			UnderstoodKillCount: 5,
		},
		StatBuckets: StatBuckets{
			DurabilityFragileMax:  15,
			DurabilitySturdyMax:   40,
			DurabilityToughMax:    80,
			DamageLightMax:        4,
			DamageModerateMax:     9,
			DamageHeavyMax:        16,
			SpeedSluggishMax:      0.8,
			SpeedNormalMax:        1.2,
			SpeedFastMax:          1.6,
			AccuracyOftenMissMax:  1,
			AccuracyUsuallyHitMax: 3,
			EvasionEasyMax:        0,
			EvasionAverageMax:     2,
		},
		Difficulty: Difficulty{
			PlayerDamageMultiplier:  1.0,
			MonsterDamageMultiplier: 1.0,
		},
		MaxPathLength:          64,
		SecretDoorRevealRadius: 3,
		ThreatDistanceMultiplier: 1.5,
		MeleeThreatReachCap:      2,
	}
}

// Load decodes a Tuning value from YAML bytes, starting from Default() so an
// override file only needs to specify the fields it changes.
func Load(data []byte) (Tuning, error) {
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("config: decode tuning: %w", err)
	}
	return t, nil
}

// BandFor returns the range band covering distance d, and whether one was
// found at all (it always is, since the default table's last row covers
// "9 and beyond" via MaxDistance==0).
func (t Tuning) BandFor(d int) (RangeBand, bool) {
	for _, band := range t.RangeBands {
		if d < band.MinDistance {
			continue
		}
		if band.MaxDistance == 0 || d <= band.MaxDistance {
			return band, true
		}
	}
	return RangeBand{}, false
}
