package turn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafeHatfield/yarl-sub004/status"
)

type fakeHP struct {
	hp, max int
}

func (f *fakeHP) CurrentHP() int { return f.hp }
func (f *fakeHP) MaxHP() int     { return f.max }
func (f *fakeHP) SetHP(hp int)   { f.hp = hp }

func TestEndPlayerActionNoOpWhenTurnNotConsumed(t *testing.T) {
	player := Actor{ID: "player", Status: status.NewManager()}
	c := NewController(player, nil)

	require.NoError(t, c.EndPlayerAction(false))
	assert.Equal(t, 1, c.Round())
	assert.Equal(t, PhasePlayer, c.Phase())
}

func TestEndPlayerActionRunsMonstersInOrderAndAdvancesRound(t *testing.T) {
	player := Actor{ID: "player", Status: status.NewManager()}
	c := NewController(player, nil)

	var order []string
	c.AddMonster(Actor{ID: "m1", Status: status.NewManager(), Act: func() error {
		order = append(order, "m1")
		return nil
	}})
	c.AddMonster(Actor{ID: "m2", Status: status.NewManager(), Act: func() error {
		order = append(order, "m2")
		return nil
	}})

	require.NoError(t, c.EndPlayerAction(true))
	assert.Equal(t, []string{"m1", "m2"}, order)
	assert.Equal(t, 2, c.Round())
	assert.Equal(t, PhasePlayer, c.Phase())
}

func TestIncapacitatedMonsterSkipsItsAction(t *testing.T) {
	player := Actor{ID: "player", Status: status.NewManager()}
	c := NewController(player, nil)

	acted := false
	mgr := status.NewManager()
	mgr.Add(status.Effect{Kind: status.KindParalysis, Duration: 5})
	c.AddMonster(Actor{ID: "m1", Status: mgr, Act: func() error {
		acted = true
		return nil
	}})

	require.NoError(t, c.EndPlayerAction(true))
	assert.False(t, acted)
}

func TestAllowsPlayerMovementDeniedWhileIncapacitated(t *testing.T) {
	mgr := status.NewManager()
	mgr.Add(status.Effect{Kind: status.KindParalysis, Duration: 1})
	player := Actor{ID: "player", Status: mgr}
	c := NewController(player, nil)

	assert.False(t, c.AllowsPlayerMovement())
	assert.False(t, c.AllowsPlayerPickup())
}

func TestEndPlayerActionAppliesPoisonDamageAtTurnEnd(t *testing.T) {
	player := Actor{ID: "player", Status: status.NewManager()}
	c := NewController(player, nil)

	pool := &fakeHP{hp: 10, max: 10}
	mgr := status.NewManager()
	mgr.Add(status.Effect{Kind: status.KindPoison, Duration: 3, Magnitude: 4})
	c.AddMonster(Actor{ID: "m1", Status: mgr, HP: pool})

	require.NoError(t, c.EndPlayerAction(true))
	assert.Equal(t, 6, pool.hp)
}

func TestRoundStartAppliesRegenerationHealingBeforeAction(t *testing.T) {
	playerPool := &fakeHP{hp: 2, max: 10}
	playerMgr := status.NewManager()
	playerMgr.Add(status.Effect{Kind: status.KindRegeneration, Duration: 5, Magnitude: 3})
	player := Actor{ID: "player", Status: playerMgr, HP: playerPool}
	c := NewController(player, nil)

	// NewController already ran the player's start-of-turn hook.
	assert.Equal(t, 5, playerPool.hp)

	var hpDuringAction int
	c.AddMonster(Actor{ID: "m1", Status: status.NewManager(), Act: func() error {
		hpDuringAction = playerPool.hp
		return nil
	}})

	require.NoError(t, c.EndPlayerAction(true))
	// Regeneration heals again at the start of the new round, before the
	// monster's own action runs in that same round.
	assert.Equal(t, 8, playerPool.hp)
	_ = hpDuringAction
}

func TestRemoveMonster(t *testing.T) {
	player := Actor{ID: "player", Status: status.NewManager()}
	c := NewController(player, nil)
	c.AddMonster(Actor{ID: "m1", Status: status.NewManager()})
	c.AddMonster(Actor{ID: "m2", Status: status.NewManager()})

	c.RemoveMonster("m1")

	var order []string
	c.monsters[0].Act = func() error { order = append(order, c.monsters[0].ID); return nil }
	require.NoError(t, c.EndPlayerAction(true))
	assert.Len(t, c.monsters, 1)
	assert.Equal(t, "m2", c.monsters[0].ID)
}
