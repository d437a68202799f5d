// Package combat implements the attack resolution pipeline (§4.1): to-hit
// rolls, critical/fumble handling, range-band damage scaling, retaliation,
// and the ordered table of rider effects a landed hit can trigger.
// Grounded on rulebooks/dnd5e/combat/attack.go's ResolveAttack (the overall
// roll → chain → resolve → damage → rider shape) and damage.go's
// DealDamage three-phase RESOLVE/APPLY/NOTIFY flow, adapted from that
// package's d20-ability-score model to this spec's simpler fixed
// to-hit-bonus model per §4.1's AttackInput fields.
package combat

import (
	"sync"

	"github.com/RafeHatfield/yarl-sub004/damage"
	"github.com/RafeHatfield/yarl-sub004/entity"
	"github.com/RafeHatfield/yarl-sub004/status"
)

// Weapon describes an equipped attack option.
type Weapon struct {
	Name        string
	DamageType  damage.Type
	DamageDice  string // e.g. "1d8+2", parsed via dice.ParseNotation
	IsRanged    bool
	Reach       int
	AmmoMax     int
	CausesKnockback bool
	KnockbackChance float64
	// SpecialAmmoEffect names an ammo-borne rider ("burning", "entangled")
	// gated by SpecialAmmoChance, per §4.1(l)(8). Empty means no special
	// ammo effect is equipped.
	SpecialAmmoEffect string
	SpecialAmmoChance float64
}

// Traits is the set of on-hit abilities an attacker may carry beyond its
// weapon, and the resistances a defender needs to gate them — the "monster
// special_abilities list" and "owner.tags" checks of
// original_source/components/fighter.py's _has_*_ability helpers,
// translated into a small flag struct so riders.go can switch on it instead
// of re-deriving ability membership from free-form tags on every hit.
type Traits struct {
	PlagueCarrier   bool
	Corporeal       bool
	Engulfs         bool
	OathOfEmbers    bool
	OathOfVenom     bool
	// LifeDrainPct is the percent of dealt damage the attacker heals via
	// the life-drain rider; 0 disables the rider for this fighter.
	LifeDrainPct int
	// CorrosionChance is the per-hit probability (0..1) a corrosive attack
	// degrades the defender's armor.
	CorrosionChance float64
}

// Fighter is the combat-relevant component every entity that can fight
// carries: hit points, armor class, to-hit bonus, resistance table, and
// equipped weapon. It implements both entity.Component and damage.HPPool.
type Fighter struct {
	mu sync.Mutex

	ownerID string

	hp    int
	maxHP int

	armorClass  int
	baseArmor   int
	armorHalved bool

	toHitBonus int
	critRange  int // natural roll ≥ this value is a critical hit; default 20

	resistances damage.Table

	weapon   Weapon
	ammo     int
	disarmed bool

	traits Traits

	statusMgr *status.Manager
}

// Kind implements entity.Component.
func (f *Fighter) Kind() entity.Kind { return entity.KindFighter }

// NewFighter creates a Fighter with full HP and the given stats.
func NewFighter(ownerID string, maxHP, armorClass, toHitBonus int, weapon Weapon, resistances damage.Table) *Fighter {
	return &Fighter{
		ownerID:     ownerID,
		hp:          maxHP,
		maxHP:       maxHP,
		armorClass:  armorClass,
		baseArmor:   armorClass,
		toHitBonus:  toHitBonus,
		critRange:   20,
		resistances: resistances,
		weapon:      weapon,
		ammo:        weapon.AmmoMax,
		statusMgr:   status.NewManager(),
	}
}

// CurrentHP implements damage.HPPool.
func (f *Fighter) CurrentHP() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hp
}

// MaxHP implements damage.HPPool.
func (f *Fighter) MaxHP() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxHP
}

// SetHP implements damage.HPPool.
func (f *Fighter) SetHP(hp int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if hp > f.maxHP {
		hp = f.maxHP
	}
	f.hp = hp
}

// IsAlive reports whether the fighter still has hit points.
func (f *Fighter) IsAlive() bool {
	return f.CurrentHP() > 0
}

// ArmorClass returns the fighter's current effective AC, halved while a
// retaliation guard is active.
func (f *Fighter) ArmorClass() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.armorHalved {
		return f.armorClass / 2
	}
	return f.armorClass
}

// armorGuard is the token returned by HalveArmor; calling its Release method
// restores the fighter's armor unconditionally, including on every error
// exit path — callers must `defer guard.Release()` immediately after
// acquiring it (§4.1's scoped-mutation requirement for the retaliation
// effect, which must never leave an attacker's armor permanently halved if a
// later step in the same attack panics or returns early).
type armorGuard struct {
	f *Fighter
}

// Release restores the fighter's armor class to its unhalved value. Safe to
// call more than once.
func (g *armorGuard) Release() {
	g.f.mu.Lock()
	defer g.f.mu.Unlock()
	g.f.armorHalved = false
}

// HalveArmor halves f's effective AC until the returned guard's Release is
// called. Used by ranged retaliation to represent an attacker left open by
// firing a point-blank shot.
func (f *Fighter) HalveArmor() *armorGuard {
	f.mu.Lock()
	f.armorHalved = true
	f.mu.Unlock()
	return &armorGuard{f: f}
}

// ToHitBonus returns the fighter's flat bonus added to its d20 attack roll.
func (f *Fighter) ToHitBonus() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.toHitBonus
}

// CritRange returns the minimum natural d20 roll that counts as a critical
// hit (20 by default; some rider effects or feats could lower it).
func (f *Fighter) CritRange() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.critRange
}

// Weapon returns the fighter's currently equipped weapon.
func (f *Fighter) Weapon() Weapon {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.weapon
}

// Disarm replaces the equipped weapon with bare hands, used by a rider
// effect that knocks a weapon away.
func (f *Fighter) Disarm(unarmed Weapon) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.weapon = unarmed
	f.ammo = 0
	f.disarmed = true
}

// Rearm clears the disarmed flag and equips w, used when a fighter recovers
// or picks up a replacement weapon.
func (f *Fighter) Rearm(w Weapon) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.weapon = w
	f.ammo = w.AmmoMax
	f.disarmed = false
}

// Disarmed reports whether the fighter is currently fighting bare-handed
// because a weapon was knocked away, as opposed to never having equipped one.
func (f *Fighter) Disarmed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disarmed
}

// Ammo returns the remaining ammunition for the equipped ranged weapon.
func (f *Fighter) Ammo() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ammo
}

// ConsumeAmmo decrements ammo by one, floored at 0, and reports whether any
// remained to consume.
func (f *Fighter) ConsumeAmmo() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ammo <= 0 {
		return false
	}
	f.ammo--
	return true
}

// Resistances returns the fighter's damage resistance table.
func (f *Fighter) Resistances() damage.Table {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resistances
}

// StatusManager returns the fighter's status-effect manager.
func (f *Fighter) StatusManager() *status.Manager {
	return f.statusMgr
}

// Traits returns the fighter's on-hit ability flags.
func (f *Fighter) Traits() Traits {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.traits
}

// SetTraits replaces the fighter's on-hit ability flags — used by monster
// factories to mark plague carriers, engulfers, and oath-bound player
// characters without widening NewFighter's constructor signature.
func (f *Fighter) SetTraits(t Traits) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.traits = t
}

// DefaultUnarmedStrike is the fallback weapon used when a fighter has no
// equipped weapon at all, grounded on
// rulebooks/dnd5e/combat/movement.go's defaultUnarmedStrike fallback.
func DefaultUnarmedStrike() Weapon {
	return Weapon{
		Name:       "fists",
		DamageType: damage.TypePhysical,
		DamageDice: "1d2",
		Reach:      1,
	}
}
