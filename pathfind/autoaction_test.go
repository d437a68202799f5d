package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafeHatfield/yarl-sub004/config"
	"github.com/RafeHatfield/yarl-sub004/geometry"
	"github.com/RafeHatfield/yarl-sub004/status"
)

type fakeTerrain struct {
	walls map[geometry.Point]bool
	size  int
}

func (f *fakeTerrain) InBounds(p geometry.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < f.size && p.Y < f.size
}
func (f *fakeTerrain) IsWall(p geometry.Point) bool       { return f.walls[p] }
func (f *fakeTerrain) IsSecretDoor(p geometry.Point) bool { return false }
func (f *fakeTerrain) RevealSecretDoor(p geometry.Point)  {}
func (f *fakeTerrain) IsPortal(p geometry.Point) bool     { return false }

func newTerrain(size int) *fakeTerrain {
	return &fakeTerrain{walls: map[geometry.Point]bool{}, size: size}
}

type fakeHazards struct {
	hazards map[geometry.Point]string
}

func (h *fakeHazards) HazardAt(p geometry.Point) (string, bool) {
	name, ok := h.hazards[p]
	return name, ok
}

func TestStepAdvancesAndSignalsContinue(t *testing.T) {
	var p Path
	p.SetDestination(geometry.Point{3, 0}, []geometry.Point{{1, 0}, {2, 0}, {3, 0}})

	terrain := newTerrain(10)
	out, err := p.Step(StepInput{
		From:    geometry.Point{0, 0},
		Terrain: terrain,
		Tuning:  config.Default(),
	}, nil)
	require.NoError(t, err)
	assert.True(t, out.Moved)
	assert.Equal(t, geometry.Point{1, 0}, out.To)
	assert.True(t, out.ContinuePathfinding)
	assert.False(t, out.Arrived)
}

func TestStepInterruptsOnBlockedWall(t *testing.T) {
	var p Path
	p.SetDestination(geometry.Point{2, 0}, []geometry.Point{{1, 0}, {2, 0}})
	terrain := newTerrain(10)
	terrain.walls[geometry.Point{1, 0}] = true

	out, err := p.Step(StepInput{From: geometry.Point{0, 0}, Terrain: terrain, Tuning: config.Default()}, nil)
	require.NoError(t, err)
	assert.False(t, out.Moved)
	assert.True(t, out.Interrupted)
	assert.False(t, p.IsMoving)
}

func TestStepInterruptsOnHazard(t *testing.T) {
	var p Path
	p.SetDestination(geometry.Point{1, 0}, []geometry.Point{{1, 0}})
	terrain := newTerrain(10)
	hazards := &fakeHazards{hazards: map[geometry.Point]string{{1, 0}: "Fire"}}

	out, err := p.Step(StepInput{From: geometry.Point{0, 0}, Terrain: terrain, Hazards: hazards, Tuning: config.Default()}, nil)
	require.NoError(t, err)
	assert.True(t, out.Moved)
	assert.True(t, out.Interrupted)
	assert.Equal(t, "Fire", out.InterruptReason)
	assert.True(t, out.EnemyTurn)
	assert.False(t, p.IsMoving)
}

func TestStepInterruptsOnPortal(t *testing.T) {
	var p Path
	p.SetDestination(geometry.Point{1, 0}, []geometry.Point{{1, 0}})
	terrain := newTerrain(10)
	portalTerrain := &portalTerrainWrapper{fakeTerrain: terrain, portal: geometry.Point{1, 0}}

	out, err := p.Step(StepInput{From: geometry.Point{0, 0}, Terrain: portalTerrain, Tuning: config.Default()}, nil)
	require.NoError(t, err)
	assert.True(t, out.Moved)
	assert.True(t, out.PortalEntry)
	assert.True(t, out.Interrupted)
	assert.Equal(t, "stepped on portal", out.InterruptReason)
}

type portalTerrainWrapper struct {
	*fakeTerrain
	portal geometry.Point
}

func (w *portalTerrainWrapper) IsPortal(p geometry.Point) bool { return p.Equals(w.portal) }

func TestStepMeleeAttackerStopsWhenHostileCrossesThreatDistance(t *testing.T) {
	var p Path
	p.SetDestination(geometry.Point{5, 0}, []geometry.Point{{1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}})
	terrain := newTerrain(10)
	// Reach 1 caps threat_distance at 1 * 1.5 = 1.5, so an orc one tile
	// away from the post-step position (1,0) crosses it.
	hostiles := []Hostile{{EntityID: "orc", Pos: geometry.Point{2, 0}}}

	out, err := p.Step(StepInput{
		From:        geometry.Point{0, 0},
		Terrain:     terrain,
		Hostiles:    hostiles,
		WeaponReach: 1,
		Tuning:      config.Default(),
	}, nil)
	require.NoError(t, err)
	assert.True(t, out.Moved)
	assert.True(t, out.Interrupted)
	assert.Equal(t, "enemy spotted", out.InterruptReason)
	assert.True(t, out.EnemyTurn)
}

func TestStepRangedAttackerKeepsClosingUntilMeleeDanger(t *testing.T) {
	var p Path
	p.SetDestination(geometry.Point{5, 0}, []geometry.Point{{1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}})
	terrain := newTerrain(10)
	// Orc at distance 5 from the post-step position (1,0): well outside the
	// reach-10 longbow's capped melee-threat distance (2 * 1.5 = 3).
	hostiles := []Hostile{{EntityID: "orc", Pos: geometry.Point{6, 0}}}

	out, err := p.Step(StepInput{
		From:        geometry.Point{0, 0},
		Terrain:     terrain,
		Hostiles:    hostiles,
		WeaponReach: 10,
		Tuning:      config.Default(),
	}, nil)
	require.NoError(t, err)
	assert.True(t, out.Moved)
	assert.False(t, out.Interrupted)
	assert.True(t, out.ContinuePathfinding)
}

func TestStepRangedAttackerInterruptsOnceOrcEntersMeleeRange(t *testing.T) {
	var p Path
	p.SetDestination(geometry.Point{5, 0}, []geometry.Point{{1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}})
	terrain := newTerrain(10)
	// Orc at (3,0): distance 2 from post-step position (1,0) is within the
	// capped threat distance (2 * 1.5 = 3).
	hostiles := []Hostile{{EntityID: "orc", Pos: geometry.Point{3, 0}}}

	out, err := p.Step(StepInput{
		From:        geometry.Point{0, 0},
		Terrain:     terrain,
		Hostiles:    hostiles,
		WeaponReach: 10,
		Tuning:      config.Default(),
	}, nil)
	require.NoError(t, err)
	assert.True(t, out.Interrupted)
	assert.Equal(t, "enemy spotted", out.InterruptReason)
}

func TestStepArrivalDispatchesPickupThenClearsGoal(t *testing.T) {
	var p Path
	p.SetDestination(geometry.Point{1, 0}, []geometry.Point{{1, 0}})
	terrain := newTerrain(10)
	goals := &DeferredGoals{AutoPickupTarget: "potion-1"}

	out, err := p.Step(StepInput{From: geometry.Point{0, 0}, Terrain: terrain, Tuning: config.Default()}, goals)
	require.NoError(t, err)
	assert.True(t, out.Arrived)
	assert.Equal(t, "potion-1", out.DispatchPickupTarget)
	assert.Empty(t, goals.AutoPickupTarget)
}

func TestStepArrivalDispatchesTalkTarget(t *testing.T) {
	var p Path
	p.SetDestination(geometry.Point{1, 0}, []geometry.Point{{1, 0}})
	terrain := newTerrain(10)
	goals := &DeferredGoals{AutoTalkTarget: "npc-7"}

	out, err := p.Step(StepInput{From: geometry.Point{0, 0}, Terrain: terrain, Tuning: config.Default()}, goals)
	require.NoError(t, err)
	assert.Equal(t, "npc-7", out.DispatchTalkTarget)
	assert.Empty(t, goals.AutoTalkTarget)
}

func TestStepDeniedByIncapacitation(t *testing.T) {
	var p Path
	p.SetDestination(geometry.Point{1, 0}, []geometry.Point{{1, 0}})
	terrain := newTerrain(10)
	mgr := status.NewManager()
	mgr.Add(status.Effect{Kind: status.KindParalysis, Duration: 1})

	out, err := p.Step(StepInput{From: geometry.Point{0, 0}, Terrain: terrain, Status: mgr, Tuning: config.Default()}, nil)
	require.NoError(t, err)
	assert.False(t, out.Moved)
	assert.True(t, out.Interrupted)
	assert.Equal(t, "incapacitated", out.InterruptReason)
}

func TestDeferredGoalsClearAndIsEmpty(t *testing.T) {
	var g DeferredGoals
	assert.True(t, g.IsEmpty())
	g.AutoOpenTarget = "chest-1"
	assert.False(t, g.IsEmpty())
	g.Clear()
	assert.True(t, g.IsEmpty())
}

func TestStepOnInactivePathIsNoop(t *testing.T) {
	var p Path
	out, err := p.Step(StepInput{Terrain: newTerrain(10)}, nil)
	require.NoError(t, err)
	assert.Equal(t, StepOutcome{}, out)
}
