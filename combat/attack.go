package combat

import (
	"fmt"

	"github.com/RafeHatfield/yarl-sub004/config"
	"github.com/RafeHatfield/yarl-sub004/damage"
	"github.com/RafeHatfield/yarl-sub004/dice"
	"github.com/RafeHatfield/yarl-sub004/events"
	"github.com/RafeHatfield/yarl-sub004/geometry"
	"github.com/RafeHatfield/yarl-sub004/metrics"
	"github.com/RafeHatfield/yarl-sub004/rpgerr"
	"github.com/RafeHatfield/yarl-sub004/status"
)

// Combatant is the minimal attacker/defender interface the attack pipeline
// operates on. *Fighter satisfies it directly; a caller could satisfy it
// with any type that exposes the same combat surface.
type Combatant interface {
	IsAlive() bool
	ArmorClass() int
	ToHitBonus() int
	CritRange() int
	Weapon() Weapon
	Ammo() int
	ConsumeAmmo() bool
	Disarm(unarmed Weapon)
	Disarmed() bool
	Resistances() damage.Table
	StatusManager() *status.Manager
	HalveArmor() *armorGuard
	CurrentHP() int
	MaxHP() int
	SetHP(hp int)
}

// AttackInput collects everything ResolveAttack needs. AttackerID/DefenderID
// are opaque strings used only for messaging, metrics, and events; the
// pipeline never resolves them against an entity.Registry itself.
type AttackInput struct {
	AttackerID, DefenderID string
	Attacker, Defender     *Fighter
	AttackerPos, DefenderPos geometry.Point

	Tuning  config.Tuning
	Roller  dice.Roller
	Metrics *metrics.Collector
	Bus     *events.Bus[events.AttackEvent]

	// AttackerInvisible marks a surprise attack (§4.1b): the attack always
	// hits and is always a critical (a natural 1 is not a fumble), and
	// invisibility breaks afterward.
	AttackerInvisible bool
	// CommandTheDeadBonus is an extra to-hit bonus from an active buff
	// (e.g. a necromancer's command-the-dead effect); 0 when inactive.
	CommandTheDeadBonus int

	// OnEngaged is called once combat between these two IDs is confirmed
	// (used by the knowledge system to bump "engaged" counters); nil is a
	// valid no-op.
	OnEngaged func(attackerID, defenderID string)

	// AttackerIsPlayer distinguishes the player-attacks-made metric from the
	// monster-attacks-made one; the pipeline itself has no notion of which
	// side the player occupies.
	AttackerIsPlayer bool
}

// statusToHitModifier sums the to-hit deltas of every active status effect
// that modifies an attacker's roll (§4.1d): Rally and Heroism add, Crippling
// Hex, Dissonant Chant (the "Sonic-Bellow" debuff), and Blinded subtract,
// and Focused adds its own magnitude. Each effect's Magnitude field carries
// the modifier's size.
func statusToHitModifier(m *status.Manager) int {
	total := 0
	if e, ok := m.Get(status.KindRallyBuff); ok {
		total += e.Magnitude
	}
	if e, ok := m.Get(status.KindHeroism); ok {
		total += e.Magnitude
	}
	if e, ok := m.Get(status.KindCripplingHex); ok {
		total -= e.Magnitude
	}
	if e, ok := m.Get(status.KindDissonantChant); ok {
		total -= e.Magnitude
	}
	if e, ok := m.Get(status.KindBlinded); ok {
		total -= e.Magnitude
	}
	if e, ok := m.Get(status.KindFocused); ok {
		total += e.Magnitude
	}
	return total
}

// AttackResult reports everything a caller (the UI, the knowledge system,
// metrics) needs after an attack resolves.
type AttackResult struct {
	Denied       bool
	DenyReason   string
	Roll         int
	Hit          bool
	Critical     bool
	Fumble       bool
	DamageDealt  int
	DefenderDied bool
	RangeBand    config.RangeBand
	Messages     []string
}

// ResolveAttack runs the full attack pipeline described by §4.1: the
// ranged range-band pre-check, retaliation, the to-hit roll with all
// applicable modifiers, crit/fumble/hit resolution, damage rolling and
// range-band scaling, damage application, and the ordered rider-effect
// table. It mutates Attacker and Defender in place and returns a summary
// for the caller to turn into UI messages.
func ResolveAttack(in AttackInput) (AttackResult, error) {
	if in.Attacker == nil || in.Defender == nil {
		return AttackResult{}, rpgerr.ContractViolation("combat.ResolveAttack", "Attacker/Defender")
	}
	roller := dice.NewMockableRoller(in.Roller)
	result := AttackResult{}

	weapon := in.Attacker.Weapon()
	var band config.RangeBand
	isRanged := weapon.IsRanged
	if isRanged {
		rb, ok := geometry.ResolveRangeBand(in.Tuning, in.AttackerPos, in.DefenderPos)
		if !ok {
			return AttackResult{}, rpgerr.InvalidInput("no range band configured for this distance")
		}
		band = rb.RangeBand
		if band.Denied {
			in.Metrics.Incr(metrics.RangedAttacksDeniedOutOfRange)
			return AttackResult{Denied: true, DenyReason: "out of range", RangeBand: band}, nil
		}
	}

	if in.Attacker.StatusManager().IsIncapacitated() {
		return AttackResult{Denied: true, DenyReason: "attacker incapacitated"}, nil
	}

	if in.OnEngaged != nil {
		in.OnEngaged(in.AttackerID, in.DefenderID)
	}

	if isRanged && band.Retaliation {
		in.Metrics.Incr(metrics.RangedAdjacentRetaliationsTriggered)
		// The attacker closed to point-blank range to loose this shot and
		// is left open for the defender's reflexive swing: its armor is
		// halved for that nested swing only, released before the main
		// shot's to-hit roll below so the point-blank exposure never
		// bleeds into the ranged attack it provoked.
		retaliateResult, err := func() (swingResult, error) {
			guard := in.Attacker.HalveArmor()
			defer guard.Release()
			return resolveMeleeSwing(in.Defender, in.Attacker, in.Tuning, roller, in.Metrics)
		}()
		if err != nil {
			return AttackResult{}, err
		}
		if retaliateResult.hit {
			result.Messages = append(result.Messages, fmt.Sprintf("%s retaliates for %d damage", in.DefenderID, retaliateResult.damage))
		}
		if !in.Attacker.IsAlive() {
			return result, nil
		}
	}

	bonus := in.Attacker.ToHitBonus() + in.CommandTheDeadBonus + statusToHitModifier(in.Attacker.StatusManager())
	isSurprise := in.AttackerInvisible
	isBlind := in.Attacker.StatusManager().Has(status.KindBlinded)
	if isBlind {
		in.Metrics.Incr(metrics.BlindAttacksAttempted)
	}
	if in.Attacker.Disarmed() {
		in.Metrics.Incr(metrics.DisarmedWeaponAttacksPrevented)
	}

	roll, err := roller.Roll(20)
	if err != nil {
		return AttackResult{}, rpgerr.Wrap(err, "combat.ResolveAttack: to-hit roll")
	}
	result.Roll = roll

	// §4.1e: a surprise attack bypasses miss resolution entirely and is
	// always treated as a critical hit; a natural 1 is only a fumble when
	// the attacker wasn't already guaranteed the hit by surprise.
	fumble := roll == 1 && !isSurprise
	critical := roll >= in.Attacker.CritRange() || isSurprise
	total := roll + bonus
	hit := isSurprise || critical || (!fumble && total >= in.Defender.ArmorClass())

	result.Fumble = fumble
	result.Critical = critical
	result.Hit = hit
	result.RangeBand = band

	if isRanged {
		if in.AttackerIsPlayer {
			in.Metrics.Incr(metrics.RangedAttacksMadeByPlayer)
		} else {
			in.Metrics.Incr(metrics.RangedAttacksMadeByMonster)
		}
	} else {
		in.Metrics.Incr(metrics.MeleeAttacksMade)
	}
	if in.AttackerIsPlayer {
		in.Metrics.Incr(metrics.PlayerAttacksMade)
	} else {
		in.Metrics.Incr(metrics.MonsterAttacksMade)
	}
	if isSurprise {
		in.Metrics.Incr(metrics.InvisAttacks)
		in.Metrics.Incr(metrics.SurpriseAttacks)
	}

	if in.AttackerInvisible {
		if in.Attacker.StatusManager().Has(status.KindInvisibility) {
			in.Metrics.Incr(metrics.InvisBrokenByAttack)
		}
		in.Attacker.StatusManager().Remove(status.KindInvisibility)
	}
	if isRanged {
		in.Attacker.ConsumeAmmo()
	}

	if !hit {
		if isBlind {
			in.Metrics.Incr(metrics.BlindAttacksMissed)
		}
		if fumble {
			in.Metrics.Incr(metrics.MeleeFumbles)
			result.Messages = append(result.Messages, fmt.Sprintf("%s fumbles the attack", in.AttackerID))
		} else {
			result.Messages = append(result.Messages, fmt.Sprintf("%s misses", in.AttackerID))
		}
		return result, nil
	}
	if critical {
		in.Metrics.Incr(metrics.MeleeCriticalHits)
	}

	rolls, base, err := rollWeaponDamage(weapon, roller)
	if err != nil {
		return AttackResult{}, err
	}
	_ = rolls
	if critical {
		base *= 2
	}
	if isRanged {
		scaled := int(float64(base) * band.Multiplier)
		in.Metrics.Add(metrics.RangedDamagePenaltyTotal, int64(base-scaled))
		base = scaled
	}

	outcome, err := damage.Apply(in.Defender, damage.Instance{Type: weapon.DamageType, Amount: base}, in.Defender.Resistances(), in.Tuning.Difficulty.GodMode)
	if err != nil {
		return AttackResult{}, err
	}
	result.DamageDealt = outcome.Resolved.Final
	result.DefenderDied = outcome.Died

	in.Metrics.Add(metrics.DamageDealtTotal, int64(outcome.Resolved.Final))
	if isRanged && in.AttackerIsPlayer {
		in.Metrics.Add(metrics.RangedDamageDealtByPlayer, int64(outcome.Resolved.Final))
	}
	if outcome.Died {
		in.Metrics.Incr(metrics.MonstersKilled)
	}

	switch {
	case outcome.Resolved.Immune:
		result.Messages = append(result.Messages, fmt.Sprintf("%s is immune to %s damage", in.DefenderID, weapon.DamageType))
	case outcome.Resolved.Resisted:
		result.Messages = append(result.Messages, fmt.Sprintf("%s resists, taking %d damage", in.DefenderID, result.DamageDealt))
	default:
		result.Messages = append(result.Messages, fmt.Sprintf("%s hits %s for %d damage", in.AttackerID, in.DefenderID, result.DamageDealt))
	}

	if !outcome.Died {
		riderCtx := &riderContext{
			weapon:     weapon,
			attacker:   in.Attacker,
			defender:   in.Defender,
			attackerID: in.AttackerID,
			defenderID: in.DefenderID,
			isRanged:   isRanged,
			roller:     roller,
			metrics:    in.Metrics,
			lastDamage: result.DamageDealt,
		}
		for _, r := range riderTable {
			if r.Applies(riderCtx) {
				if msg := r.Apply(riderCtx); msg != "" {
					result.Messages = append(result.Messages, msg)
				}
			}
		}
	}

	if in.Bus != nil {
		in.Bus.Publish(events.AttackEvent{
			AttackerID: in.AttackerID, DefenderID: in.DefenderID,
			Hit: hit, Critical: critical, Fumble: fumble,
			DamageDealt: result.DamageDealt, DefenderDied: outcome.Died,
		})
	}

	return result, nil
}

type swingResult struct {
	hit    bool
	damage int
}

// resolveMeleeSwing runs a bare to-hit-and-damage exchange with no rider
// effects and no further retaliation, used for the defender's reflexive
// strike against a point-blank ranged attacker (§4.1's adjacent-threatened
// retaliation rule).
func resolveMeleeSwing(attacker, defender *Fighter, tuning config.Tuning, roller dice.Roller, coll *metrics.Collector) (swingResult, error) {
	roll, err := roller.Roll(20)
	if err != nil {
		return swingResult{}, rpgerr.Wrap(err, "combat.resolveMeleeSwing: to-hit roll")
	}
	if roll == 1 {
		return swingResult{}, nil
	}
	total := roll + attacker.ToHitBonus()
	if roll < 20 && total < defender.ArmorClass() {
		return swingResult{}, nil
	}

	weapon := attacker.Weapon()
	_, base, err := rollWeaponDamage(weapon, roller)
	if err != nil {
		return swingResult{}, err
	}
	if roll >= attacker.CritRange() {
		base *= 2
	}
	outcome, err := damage.Apply(defender, damage.Instance{Type: weapon.DamageType, Amount: base}, defender.Resistances(), tuning.Difficulty.GodMode)
	if err != nil {
		return swingResult{}, err
	}
	return swingResult{hit: true, damage: outcome.Resolved.Final}, nil
}

// rollWeaponDamage rolls w's damage dice, falling back to unarmed damage
// when the weapon has no dice notation set.
func rollWeaponDamage(w Weapon, roller dice.Roller) ([]int, int, error) {
	notationStr := w.DamageDice
	if notationStr == "" {
		notationStr = DefaultUnarmedStrike().DamageDice
	}
	notation, err := dice.ParseNotation(notationStr)
	if err != nil {
		return nil, 0, rpgerr.Wrap(err, "combat.rollWeaponDamage")
	}
	rolls, total, err := notation.Roll(roller)
	if err != nil {
		return nil, 0, rpgerr.Wrap(err, "combat.rollWeaponDamage")
	}
	if total < 0 {
		total = 0
	}
	return rolls, total, nil
}
