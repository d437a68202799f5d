// Package turn implements the turn controller (§4.9): advancing the round
// counter, iterating non-player actors in a fixed insertion order, and
// ticking status effects at the right boundary. Grounded on
// rulebooks/dnd5e/combat/turn_manager.go's TurnManager — its
// StartTurn/EndTurn double-call guards and TurnStartEvent/TurnEndEvent
// publication — generalized from that package's ability-activation focus
// to this spec's simpler player-then-monsters round structure.
package turn

import (
	"github.com/RafeHatfield/yarl-sub004/damage"
	"github.com/RafeHatfield/yarl-sub004/events"
	"github.com/RafeHatfield/yarl-sub004/status"
)

// Phase identifies which side of the round is acting.
type Phase string

const (
	PhasePlayer  Phase = "players_turn"
	PhaseEnemies Phase = "enemy_turn"
)

// Actor is anything the controller ticks status effects for and, for
// non-player actors, asks to act once per round.
type Actor struct {
	ID     string
	Status *status.Manager
	// HP is the actor's HP pool, mutated by status-effect ticks
	// (Regeneration healing at turn start, Poison/Burning/Plague damage at
	// turn end). Nil is valid for an actor that carries status effects
	// purely for incapacitation checks and has no HP of its own to tick.
	HP damage.HPPool
	// Act runs this actor's turn (AI decision plus whatever action it
	// takes). Returning an error aborts only this actor's turn, not the
	// whole round.
	Act func() error
}

// Controller owns the round counter and the fixed-order list of monster
// actors that act between player turns.
type Controller struct {
	round   int
	phase   Phase
	player  Actor
	monsters []Actor
	bus     *events.Bus[events.TurnEvent]

	playerTurnStarted bool
}

// NewController creates a Controller starting at round 1, player phase, and
// runs the player's start-of-turn hook (Regeneration healing) before
// returning it, so the very first turn gets the same §5 ordering guarantee
// every subsequent round does.
func NewController(player Actor, bus *events.Bus[events.TurnEvent]) *Controller {
	c := &Controller{round: 1, phase: PhasePlayer, player: player, bus: bus}
	c.tickTurnStart(c.player.Status, c.player.HP)
	return c
}

// AddMonster appends a monster actor to the fixed iteration order. Order
// matters: monsters act in the order they were added, every round, so a
// spawn sequence determines turn order deterministically (§5 Determinism).
func (c *Controller) AddMonster(a Actor) {
	c.monsters = append(c.monsters, a)
}

// RemoveMonster drops the monster actor with the given ID (on death).
func (c *Controller) RemoveMonster(id string) {
	for i, m := range c.monsters {
		if m.ID == id {
			c.monsters = append(c.monsters[:i], c.monsters[i+1:]...)
			return
		}
	}
}

// Round returns the current round number.
func (c *Controller) Round() int { return c.round }

// Phase returns whether it is currently the player's turn or the enemies'.
func (c *Controller) Phase() Phase { return c.phase }

// AllowsPlayerMovement reports whether the player may move right now.
func (c *Controller) AllowsPlayerMovement() bool {
	return c.phase == PhasePlayer && !c.player.Status.IsIncapacitated()
}

// AllowsPlayerPickup mirrors AllowsPlayerMovement — pickup is only legal on
// the player's own turn and while able to act.
func (c *Controller) AllowsPlayerPickup() bool {
	return c.AllowsPlayerMovement()
}

// EndPlayerAction ends the player's turn if turnConsumed is true (some
// actions, like opening the inventory, don't consume a turn) and runs every
// monster's turn in order, then advances the round. It publishes a TurnEnd
// event as each actor's turn closes and a RoundEnd event once the round
// advances, so the status package's callers can hook in without this
// package importing them; no TurnStart event is published. An error from a
// monster's Act ends only that monster's turn: the round still completes and
// the first such error is returned.
func (c *Controller) EndPlayerAction(turnConsumed bool) error {
	if !turnConsumed || c.phase != PhasePlayer {
		return nil
	}

	c.tickTurnEnd(c.player.ID, c.player.Status, c.player.HP)
	c.phase = PhaseEnemies

	var actErr error
	for _, m := range c.monsters {
		c.tickTurnStart(m.Status, m.HP)
		if m.Status.IsIncapacitated() {
			c.tickTurnEnd(m.ID, m.Status, m.HP)
			continue
		}
		if m.Act != nil {
			if err := m.Act(); err != nil && actErr == nil {
				actErr = err
			}
		}
		c.tickTurnEnd(m.ID, m.Status, m.HP)
	}

	c.round++
	c.phase = PhasePlayer
	c.tickTurnStart(c.player.Status, c.player.HP)
	if c.bus != nil {
		c.bus.Publish(events.TurnEvent{Boundary: events.RoundEnd, Round: c.round})
	}
	return actErr
}

// tickTurnStart runs mgr's start-of-turn hook (Regeneration healing) ahead
// of this actor's action and applies the resulting healing to pool, per §5's
// start-of-turn(heal)→action→end-of-turn(DoT) ordering guarantee.
func (c *Controller) tickTurnStart(mgr *status.Manager, pool damage.HPPool) {
	if mgr == nil {
		return
	}
	applyTickResults(pool, mgr.ProcessTurnStart(c.round))
}

// tickTurnEnd runs mgr's end-of-turn hook (damage-over-time, duration
// decrement and expiry), applies the resulting damage to pool, and
// publishes the TurnEnd event — the flush step the §4.9 controller runs for
// every actor at the close of its turn.
func (c *Controller) tickTurnEnd(id string, mgr *status.Manager, pool damage.HPPool) {
	if c.bus != nil {
		c.bus.Publish(events.TurnEvent{Boundary: events.TurnEnd, EntityID: id, Round: c.round})
	}
	if mgr == nil {
		return
	}
	applyTickResults(pool, mgr.ProcessTurnEnd())
}

// applyTickResults folds a batch of status.TickResults into pool's HP,
// healing first and clamping to MaxHP, then applying damage and clamping at
// 0. A nil pool (an actor with no HP of its own) is a no-op, matching §6's
// nullable-collaborator rule elsewhere in the pipeline.
func applyTickResults(pool damage.HPPool, results []status.TickResult) {
	if pool == nil {
		return
	}
	for _, r := range results {
		hp := pool.CurrentHP()
		if r.HealingDealt > 0 {
			hp += r.HealingDealt
			if maxHP := pool.MaxHP(); hp > maxHP {
				hp = maxHP
			}
		}
		if r.DamageDealt > 0 {
			hp -= r.DamageDealt
			if hp < 0 {
				hp = 0
			}
		}
		pool.SetHP(hp)
	}
}
