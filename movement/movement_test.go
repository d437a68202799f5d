package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafeHatfield/yarl-sub004/geometry"
	"github.com/RafeHatfield/yarl-sub004/status"
)

type fakeMap struct {
	walls   map[geometry.Point]bool
	secrets map[geometry.Point]bool
	portals map[geometry.Point]bool
	size    int
}

func (m *fakeMap) InBounds(p geometry.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.size && p.Y < m.size
}
func (m *fakeMap) IsWall(p geometry.Point) bool       { return m.walls[p] }
func (m *fakeMap) IsSecretDoor(p geometry.Point) bool { return m.secrets[p] }
func (m *fakeMap) RevealSecretDoor(p geometry.Point)  { delete(m.secrets, p) }
func (m *fakeMap) IsPortal(p geometry.Point) bool     { return m.portals[p] }

func newMap(size int) *fakeMap {
	return &fakeMap{walls: map[geometry.Point]bool{}, secrets: map[geometry.Point]bool{}, portals: map[geometry.Point]bool{}, size: size}
}

type fakeBlockers struct {
	blocked map[geometry.Point]string
}

func (b *fakeBlockers) BlockingEntityAt(p geometry.Point) (string, bool) {
	id, ok := b.blocked[p]
	return id, ok
}

func TestExecuteMovesIntoOpenTile(t *testing.T) {
	m := newMap(10)
	result, err := Execute(MoveInput{EntityID: "p", From: geometry.Point{0, 0}, To: geometry.Point{1, 0}, Terrain: m})
	require.NoError(t, err)
	assert.True(t, result.Moved)
	assert.True(t, result.NeedsFOVRecompute)
}

func TestExecuteDeniesOutOfBounds(t *testing.T) {
	m := newMap(5)
	result, err := Execute(MoveInput{From: geometry.Point{0, 0}, To: geometry.Point{-1, 0}, Terrain: m})
	require.NoError(t, err)
	assert.False(t, result.Moved)
}

func TestExecuteDeniesWall(t *testing.T) {
	m := newMap(5)
	m.walls[geometry.Point{1, 0}] = true
	result, err := Execute(MoveInput{From: geometry.Point{0, 0}, To: geometry.Point{1, 0}, Terrain: m})
	require.NoError(t, err)
	assert.False(t, result.Moved)
	assert.Equal(t, "blocked by wall", result.DenyReason)
}

func TestExecuteDeniesBlockingEntity(t *testing.T) {
	m := newMap(5)
	blockers := &fakeBlockers{blocked: map[geometry.Point]string{{X: 1, Y: 0}: "goblin"}}
	result, err := Execute(MoveInput{From: geometry.Point{0, 0}, To: geometry.Point{1, 0}, Terrain: m, Blockers: blockers})
	require.NoError(t, err)
	assert.False(t, result.Moved)
	assert.Equal(t, "goblin", result.BlockingEntityID)
}

func TestExecuteDeniesWhileIncapacitated(t *testing.T) {
	m := newMap(5)
	mgr := status.NewManager()
	mgr.Add(status.Effect{Kind: status.KindParalysis, Duration: 1})
	result, err := Execute(MoveInput{From: geometry.Point{0, 0}, To: geometry.Point{1, 0}, Terrain: m, Status: mgr})
	require.NoError(t, err)
	assert.False(t, result.Moved)
	assert.Equal(t, "incapacitated", result.DenyReason)
}

func TestExecuteRevealsSecretDoor(t *testing.T) {
	m := newMap(5)
	m.secrets[geometry.Point{1, 0}] = true
	result, err := Execute(MoveInput{From: geometry.Point{0, 0}, To: geometry.Point{1, 0}, Terrain: m})
	require.NoError(t, err)
	assert.True(t, result.Moved)
	assert.True(t, result.RevealedSecretDoor)
	assert.False(t, m.secrets[geometry.Point{1, 0}])
}

func TestExecuteEntersPortal(t *testing.T) {
	m := newMap(5)
	m.portals[geometry.Point{1, 0}] = true
	result, err := Execute(MoveInput{From: geometry.Point{0, 0}, To: geometry.Point{1, 0}, Terrain: m})
	require.NoError(t, err)
	assert.True(t, result.EnteredPortal)
}

func TestExecuteRejectsNilMap(t *testing.T) {
	_, err := Execute(MoveInput{})
	assert.Error(t, err)
}
