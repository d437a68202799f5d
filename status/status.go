// Package status implements the status-effect manager (§4.3): a per-entity
// collection of named effects with a refresh-not-stack reapplication policy,
// turn-boundary ticking in a fixed order, and an incapacitation predicate
// combat/movement consult before letting an actor act. Grounded on
// mechanics/conditions/manager.go's Manager interface and mutex-guarded map
// of conditions, generalized from that package's condition-type string keys
// to this spec's closed Kind enum.
package status

import (
	"sync"

	"github.com/RafeHatfield/yarl-sub004/entity"
)

// Kind is the closed set of status effects the engine recognizes.
type Kind string

const (
	KindPoison           Kind = "poison"
	KindBurning          Kind = "burning"
	KindSlowed           Kind = "slowed"
	KindParalysis        Kind = "paralysis"
	KindBlinded          Kind = "blinded"
	KindFocused          Kind = "focused"
	KindInvisibility     Kind = "invisibility"
	KindHeroism          Kind = "heroism"
	KindWeakness         Kind = "weakness"
	KindProtection       Kind = "protection"
	KindEngulfed         Kind = "engulfed"
	KindWardAgainstDrain Kind = "ward_against_drain"
	KindRallyBuff        Kind = "rally_buff"
	KindCripplingHex     Kind = "crippling_hex"
	KindDissonantChant   Kind = "dissonant_chant"
	KindRegeneration     Kind = "regeneration"
	KindOathOfEmbers     Kind = "oath_of_embers"
	KindOathOfVenom      Kind = "oath_of_venom"
	KindOathOfChains     Kind = "oath_of_chains"
	// KindPlague is the Plague-of-Restless-Death affliction spread by
	// plague-carrier monsters (original_source/components/fighter.py's
	// _apply_plague_spread); a damage-over-time condition like Poison but
	// tracked under its own kind so knowledge registration and the "already
	// infected" guard can key on it distinctly from ordinary poison.
	KindPlague Kind = "plague_of_restless_death"
)

// incapacitating is the set of effects that deny the afflicted entity its
// turn (§4.3 "composite incapacitated flag").
var incapacitating = map[Kind]bool{
	KindParalysis: true,
}

// Effect is a single active status on an entity: its kind, remaining
// duration in turns (0 or less meaning it never expires), and an optional
// magnitude used by tick-applied effects (poison/burning damage per turn,
// slow percentage, and so on).
type Effect struct {
	Kind      Kind
	Duration  int
	Magnitude int
	// Source identifies what applied the effect (an entity ID or a fixed
	// label like "trap"), used only for messaging and metrics.
	Source string
}

// TickResult reports what happened to one entity during a single
// ProcessTurnStart/ProcessTurnEnd call, so the combat layer can turn it into
// damage application and player-facing messages without status reaching
// into damage itself.
type TickResult struct {
	Kind          Kind
	Expired       bool
	DamageDealt   int
	HealingDealt  int
}

// Manager owns the effects attached to a single entity. One Manager exists
// per entity that can carry status effects; it is stored as that entity's
// KindStatusEffects component.
type Manager struct {
	mu      sync.Mutex
	effects map[Kind]*Effect
}

// Kind implements entity.Component.
func (m *Manager) Kind() entity.Kind { return entity.KindStatusEffects }

// NewManager creates an empty status Manager.
func NewManager() *Manager {
	return &Manager{effects: make(map[Kind]*Effect)}
}

// Add applies eff to the manager. Reapplying an already-active effect
// refreshes its duration and magnitude rather than stacking a second
// instance, except KindOathOfVenom, which extends the remaining duration by
// the new effect's duration — the one named exception in §4.3's
// non-stacking rule.
func (m *Manager) Add(eff Effect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.effects[eff.Kind]; ok && eff.Kind == KindOathOfVenom {
		existing.Duration += eff.Duration
		if eff.Magnitude > existing.Magnitude {
			existing.Magnitude = eff.Magnitude
		}
		return
	}
	cp := eff
	m.effects[eff.Kind] = &cp
}

// Remove clears the named effect, if present.
func (m *Manager) Remove(kind Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.effects, kind)
}

// Has reports whether kind is currently active.
func (m *Manager) Has(kind Kind) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.effects[kind]
	return ok
}

// Get returns a copy of the named effect, if active.
func (m *Manager) Get(kind Kind) (Effect, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.effects[kind]
	if !ok {
		return Effect{}, false
	}
	return *e, true
}

// All returns a snapshot of every currently active effect.
func (m *Manager) All() []Effect {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Effect, 0, len(m.effects))
	for _, e := range m.effects {
		out = append(out, *e)
	}
	return out
}

// IsIncapacitated reports whether any active effect denies this entity its
// turn — currently paralysis only, but callers should use this predicate
// rather than checking KindParalysis directly so future incapacitating
// effects compose automatically.
func (m *Manager) IsIncapacitated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for kind := range m.effects {
		if incapacitating[kind] {
			return true
		}
	}
	return false
}

// ProcessTurnStart applies this entity's start-of-turn hooks — currently
// heal-over-time (Regeneration) only — before the entity acts, per §5's
// start-of-turn(heal)→action→end-of-turn(DoT) ordering guarantee: healing
// must land before the turn's action and well before the same turn's
// damage-over-time tick, so a regenerator can never be healed and then
// poisoned to death in the wrong order within one round.
func (m *Manager) ProcessTurnStart(turnNo int) []TickResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	var results []TickResult
	for kind, eff := range m.effects {
		if kind == KindRegeneration {
			results = append(results, TickResult{Kind: kind, HealingDealt: eff.Magnitude})
		}
	}
	return results
}

// ProcessTurnEnd advances every active effect by one turn in the fixed order
// the engine always applies at end-of-turn: damage-over-time effects first,
// then duration decrement and expiry. Heal-over-time is handled separately
// by ProcessTurnStart, ahead of the turn's action, per §5's ordering
// guarantee — mirroring the teacher's condition manager's deterministic
// end-of-turn event sequencing for the phases that remain here.
func (m *Manager) ProcessTurnEnd() []TickResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	var results []TickResult

	for kind, eff := range m.effects {
		if kind == KindPoison || kind == KindBurning || kind == KindPlague {
			results = append(results, TickResult{Kind: kind, DamageDealt: eff.Magnitude})
		}
	}

	for kind, eff := range m.effects {
		if eff.Duration <= 0 {
			continue
		}
		eff.Duration--
		if eff.Duration == 0 {
			delete(m.effects, kind)
			results = append(results, TickResult{Kind: kind, Expired: true})
		}
	}

	return results
}

// Clear removes every active effect (used on death/respawn).
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.effects = make(map[Kind]*Effect)
}
