// Package damage implements resistance/vulnerability resolution and the
// final HP-mutation step of the pipeline (§4.4 Damage & Resistance).
// Grounded on rulebooks/dnd5e/combat/damage.go's RESOLVE→APPLY→NOTIFY split.
// Resistance is a single percentage per damage type, capped at 100
// (immunity); this package has no vulnerability entries and no stacking of
// multiple resistances.
package damage

import (
	"github.com/RafeHatfield/yarl-sub004/entity"
	"github.com/RafeHatfield/yarl-sub004/rpgerr"
)

// Type is a closed enum of damage types the resistance table keys on.
type Type string

const (
	TypePhysical Type = "physical"
	TypeFire     Type = "fire"
	TypeAcid     Type = "acid"
	TypePoison   Type = "poison"
	TypeCold     Type = "cold"
	TypeNecrotic Type = "necrotic"
)

// ResistanceKind identifies the damage channel a resistance percentage
// applies to; it shares Type's domain (§3's resistances map is keyed by the
// same damage types the pipeline rolls damage instances against).
type ResistanceKind = Type

// Table maps damage types to a defender's resistance percentage in
// [0, 100] (§3: `resistances : ResistanceKind → percent ∈ [0,100]`). A
// missing entry is 0 percent (no resistance). 100 percent is immunity;
// negative percentages (vulnerability) are not representable here — §3
// models vulnerability as the damage-type-modifier multiplier applied
// upstream of this table, not as a resistance entry.
type Table map[ResistanceKind]int

// Percent returns the defender's resistance percentage to t, clamped to
// [0, 100] and defaulting to 0 for a missing entry, per §3's invariant and
// §4.4 step 1's "combining Fighter base and aggregated equipment (cap
// 100)" rule — this package does the capping so every caller gets it for
// free regardless of how the table was assembled upstream.
func (tb Table) Percent(t Type) int {
	if tb == nil {
		return 0
	}
	p := tb[t]
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Kind implements entity.Component so a resistance table can be attached
// directly to a monster or player entity.
func (tb Table) Kind() entity.Kind { return entity.KindFighter }

// Instance is one damage application: a type and a base amount. Any
// critical-hit doubling has already been folded into Amount by the time it
// reaches this package.
type Instance struct {
	Type   Type
	Amount int
}

// ResolveResult is the outcome of resolving an Instance against a Table:
// the final amount to apply, whether the defender was immune (Final is
// always 0 in that case), and whether the reduction was large enough to
// report as "resists" (§4.4 step 1: at least 50% reduction).
type ResolveResult struct {
	Final    int
	Immune   bool
	Resisted bool
}

// Resolve applies the defender's percent resistance to inst, per §4.4 step
// 1 / §3's formula: new amount = floor(amount * (100 − percent) / 100),
// with percent capped to [0,100] by Table.Percent. 100% is immunity
// (Final always 0); a reduction of 50% or more is reported as Resisted so
// combat can choose the "resists" message over a plain damage line,
// matching original_source/tests/test_resistance_system.py (50% → half,
// 75% → quarter, 100% → immune, no case above 100 since percent is
// capped).
func Resolve(inst Instance, table Table) ResolveResult {
	percent := table.Percent(inst.Type)
	if percent >= 100 {
		return ResolveResult{Final: 0, Immune: true}
	}
	if inst.Amount <= 0 {
		return ResolveResult{Final: 0}
	}

	final := inst.Amount * (100 - percent) / 100
	return ResolveResult{Final: final, Resisted: percent >= 50}
}

// HPPool is the minimal interface a defender must satisfy to receive
// damage. Combatants (fighter components) implement it directly.
type HPPool interface {
	CurrentHP() int
	MaxHP() int
	SetHP(hp int)
}

// ApplyOutcome reports what Apply actually did, for messaging and metrics.
type ApplyOutcome struct {
	Resolved ResolveResult
	Died     bool
}

// Apply resolves inst against table, mutates pool's HP, and reports whether
// the defender died. It never lets HP go negative, and when godMode is true
// it clamps the floor at 1 instead of 0 so a protected entity cannot die to
// incidental damage (§6 difficulty knob).
func Apply(pool HPPool, inst Instance, table Table, godMode bool) (ApplyOutcome, error) {
	if pool == nil {
		return ApplyOutcome{}, rpgerr.ContractViolation("damage.Apply", "HPPool")
	}
	resolved := Resolve(inst, table)
	if resolved.Final <= 0 {
		return ApplyOutcome{Resolved: resolved}, nil
	}

	floor := 0
	if godMode {
		floor = 1
	}
	newHP := pool.CurrentHP() - resolved.Final
	if newHP < floor {
		newHP = floor
	}
	pool.SetHP(newHP)

	return ApplyOutcome{Resolved: resolved, Died: newHP <= 0}, nil
}

// SuppressesRegeneration reports whether damage of type t interrupts a
// regenerating creature's healing for the turn it lands — acid and fire
// both do, per the monster bestiary's regenerator trait description.
func SuppressesRegeneration(t Type) bool {
	return t == TypeAcid || t == TypeFire
}
