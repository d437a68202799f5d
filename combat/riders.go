package combat

import (
	"fmt"

	"github.com/RafeHatfield/yarl-sub004/damage"
	"github.com/RafeHatfield/yarl-sub004/dice"
	"github.com/RafeHatfield/yarl-sub004/metrics"
	"github.com/RafeHatfield/yarl-sub004/status"
)

// riderContext carries the state a rider effect needs to decide whether it
// applies and, if so, to apply itself. Built fresh for each landed hit.
type riderContext struct {
	weapon               Weapon
	attacker, defender   *Fighter
	attackerID, defenderID string
	isRanged             bool
	roller               dice.Roller
	metrics              *metrics.Collector
	// lastDamage is the final damage amount the triggering hit dealt, used
	// by percent-of-damage riders (life-drain).
	lastDamage int
}

// riderEffect is one row of the ordered rider table. §9 calls out this
// shape explicitly in preference to another chain.Chain instance: rider
// effects are a fixed, small, strictly-ordered list where each row's
// Applies predicate is independent of the others having already fired, so
// a chain's dynamic add/remove machinery buys nothing a plain slice
// doesn't already give.
type riderEffect struct {
	Name    string
	Applies func(*riderContext) bool
	// Apply performs the effect and returns a message for the combat log,
	// or "" if nothing worth reporting happened.
	Apply func(*riderContext) string
}

// chancePercent rolls a d100 via c.roller and reports whether the result
// falls within the given percent chance (0..100). Any roller error is
// treated as a non-proc (fail closed rather than let a dice error silently
// turn into a guaranteed proc).
func chancePercent(c *riderContext, percent float64) bool {
	roll, err := c.roller.Roll(100)
	if err != nil {
		return false
	}
	return float64(roll) <= percent
}

// riderTable is evaluated in order after every landed, non-lethal hit,
// following §4.1(l)'s fixed sequence: corrosion, engulf, life-drain,
// plague, poison, burning, slow, special ammo, player oaths, then the two
// knockback rows last. Ordering matters: corrosion must land before any
// knockback moves the defender out of engagement range, status riders
// resolve before either knockback row so a displaced defender has already
// finished taking on whatever condition the hit applied (§9's Oath-of-
// Embers open-question decision), and oath procs are evaluated after the
// mundane rider rows since they are specific to the player's weapon choice
// rather than the monster bestiary's innate abilities.
var riderTable = []riderEffect{
	{
		Name: "corrosion",
		Applies: func(c *riderContext) bool {
			if c.weapon.Name == "acid_flask" {
				return true
			}
			return c.attacker.Traits().CorrosionChance > 0 && chancePercent(c, c.attacker.Traits().CorrosionChance*100)
		},
		Apply: func(c *riderContext) string {
			c.defender.mu.Lock()
			c.defender.armorClass--
			if c.defender.armorClass < 0 {
				c.defender.armorClass = 0
			}
			c.defender.mu.Unlock()
			c.metrics.Incr(metrics.CorrosionProcs)
			return fmt.Sprintf("%s's armor corrodes", c.defenderID)
		},
	},
	{
		Name: "engulf",
		Applies: func(c *riderContext) bool { return c.attacker.Traits().Engulfs },
		Apply: func(c *riderContext) string {
			c.defender.StatusManager().Add(status.Effect{Kind: status.KindEngulfed, Duration: 3, Source: c.attackerID})
			return fmt.Sprintf("%s is engulfed by %s", c.defenderID, c.attackerID)
		},
	},
	{
		Name: "life_drain",
		Applies: func(c *riderContext) bool {
			return c.weapon.Name == "life_drain" || c.attacker.Traits().LifeDrainPct > 0
		},
		Apply: func(c *riderContext) string {
			if c.defender.StatusManager().Has(status.KindWardAgainstDrain) {
				c.metrics.Incr(metrics.LifeDrainBlockedByWard)
				return fmt.Sprintf("%s's ward blocks the life drain", c.defenderID)
			}
			pct := c.attacker.Traits().LifeDrainPct
			if pct <= 0 {
				pct = 100
			}
			heal := c.lastDamage * pct / 100
			if heal < 1 {
				heal = 1
			}
			healed := c.attacker.CurrentHP() + heal
			if healed > c.attacker.MaxHP() {
				healed = c.attacker.MaxHP()
			}
			c.attacker.SetHP(healed)
			return fmt.Sprintf("%s drains life from %s", c.attackerID, c.defenderID)
		},
	},
	{
		Name: "plague_spread",
		Applies: func(c *riderContext) bool {
			return c.attacker.Traits().PlagueCarrier &&
				c.defender.Traits().Corporeal &&
				!c.defender.StatusManager().Has(status.KindPlague) &&
				chancePercent(c, 25)
		},
		Apply: func(c *riderContext) string {
			c.defender.StatusManager().Add(status.Effect{Kind: status.KindPlague, Duration: 5, Magnitude: 1, Source: c.attackerID})
			c.metrics.Incr(metrics.PlagueSpreadProcs)
			return fmt.Sprintf("%s's diseased touch spreads the plague to %s", c.attackerID, c.defenderID)
		},
	},
	{
		Name: "poison_on_hit",
		Applies: func(c *riderContext) bool { return c.weapon.DamageType == damage.TypePoison },
		Apply: func(c *riderContext) string {
			c.defender.StatusManager().Add(status.Effect{Kind: status.KindPoison, Duration: 3, Magnitude: 2, Source: c.attackerID})
			return fmt.Sprintf("%s is poisoned", c.defenderID)
		},
	},
	{
		Name: "burning_on_hit",
		Applies: func(c *riderContext) bool { return c.weapon.DamageType == damage.TypeFire },
		Apply: func(c *riderContext) string {
			c.defender.StatusManager().Add(status.Effect{Kind: status.KindBurning, Duration: 2, Magnitude: 3, Source: c.attackerID})
			return fmt.Sprintf("%s catches fire", c.defenderID)
		},
	},
	{
		Name: "slow_on_hit",
		Applies: func(c *riderContext) bool { return c.weapon.Name == "web_spit" || c.weapon.Name == "slow_attack" },
		Apply: func(c *riderContext) string {
			c.defender.StatusManager().Add(status.Effect{Kind: status.KindSlowed, Duration: 2, Source: c.attackerID})
			return fmt.Sprintf("%s is slowed", c.defenderID)
		},
	},
	{
		Name: "special_ammo",
		Applies: func(c *riderContext) bool {
			return c.isRanged && c.weapon.SpecialAmmoEffect != "" && chancePercent(c, c.weapon.SpecialAmmoChance*100)
		},
		Apply: func(c *riderContext) string {
			switch c.weapon.SpecialAmmoEffect {
			case "burning":
				c.defender.StatusManager().Add(status.Effect{Kind: status.KindBurning, Duration: 2, Magnitude: 2, Source: c.attackerID})
			case "entangled":
				c.defender.StatusManager().Add(status.Effect{Kind: status.KindSlowed, Duration: 2, Source: c.attackerID})
			}
			c.metrics.Incr(metrics.SpecialAmmoProcs)
			return fmt.Sprintf("the %s ammo's %s effect triggers on %s", c.weapon.Name, c.weapon.SpecialAmmoEffect, c.defenderID)
		},
	},
	{
		// Oath-of-Embers: a 33% chance to set the defender ablaze, grounded
		// on the original's oath-proc rates; §9's open question decides
		// oath-versus-knockback ordering by placing both oath rows before
		// the knockback rows in this table, so a swing that both procs an
		// oath and knocks the defender back resolves the oath's status
		// effect first. This row only burns the defender; the attacker is
		// never set alight by its own oath.
		Name: "oath_of_embers",
		Applies: func(c *riderContext) bool { return c.attacker.Traits().OathOfEmbers && chancePercent(c, 33) },
		Apply: func(c *riderContext) string {
			c.defender.StatusManager().Add(status.Effect{Kind: status.KindBurning, Duration: 2, Magnitude: 2, Source: c.attackerID})
			c.metrics.Incr(metrics.OathEmbersProcs)
			return fmt.Sprintf("%s's oath of embers sets %s alight", c.attackerID, c.defenderID)
		},
	},
	{
		Name: "oath_of_venom",
		Applies: func(c *riderContext) bool { return c.attacker.Traits().OathOfVenom && chancePercent(c, 25) },
		Apply: func(c *riderContext) string {
			// The generic refresh-not-stack policy in status.Manager.Add
			// would merely replace an existing Poison's duration; the oath
			// explicitly extends it instead, so the extended duration is
			// computed here before handing it to Add (§3's named exception
			// to the non-stacking rule).
			if existing, ok := c.defender.StatusManager().Get(status.KindPoison); ok {
				c.defender.StatusManager().Add(status.Effect{Kind: status.KindPoison, Duration: existing.Duration + 2, Magnitude: existing.Magnitude, Source: c.attackerID})
			} else {
				c.defender.StatusManager().Add(status.Effect{Kind: status.KindPoison, Duration: 3, Magnitude: 2, Source: c.attackerID})
			}
			c.metrics.Incr(metrics.OathVenomProcs)
			return fmt.Sprintf("%s's oath of venom poisons %s", c.attackerID, c.defenderID)
		},
	},
	{
		Name: "weapon_knockback",
		Applies: func(c *riderContext) bool { return c.weapon.CausesKnockback && !c.isRanged },
		Apply: func(c *riderContext) string {
			return fmt.Sprintf("%s is knocked back", c.defenderID)
		},
	},
	{
		Name: "ranged_knockback",
		Applies: func(c *riderContext) bool {
			if !c.isRanged {
				return false
			}
			// A weapon without its own KnockbackChance uses the 10% ranged proc.
			chance := c.weapon.KnockbackChance
			if chance <= 0 {
				chance = 0.10
			}
			return chancePercent(c, chance*100)
		},
		Apply: func(c *riderContext) string {
			c.metrics.Incr(metrics.RangedKnockbackProcs)
			return fmt.Sprintf("%s is knocked back by the shot", c.defenderID)
		},
	},
}
