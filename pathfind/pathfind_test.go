package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafeHatfield/yarl-sub004/geometry"
)

type gridTerrain struct {
	walls   map[geometry.Point]bool
	blocked map[geometry.Point]bool
	size    int
}

func (g *gridTerrain) IsWalkable(p geometry.Point) bool {
	if p.X < 0 || p.Y < 0 || p.X >= g.size || p.Y >= g.size {
		return false
	}
	return !g.walls[p]
}

func (g *gridTerrain) IsBlocked(p geometry.Point) bool {
	return g.blocked[p]
}

func newGrid(size int) *gridTerrain {
	return &gridTerrain{walls: map[geometry.Point]bool{}, blocked: map[geometry.Point]bool{}, size: size}
}

func TestFindPathStraightLine(t *testing.T) {
	grid := newGrid(10)
	path, ok := FindPath(grid, geometry.Point{0, 0}, geometry.Point{3, 0}, 64)
	require.True(t, ok)
	assert.Equal(t, geometry.Point{3, 0}, path[len(path)-1])
	assert.NotContains(t, path, geometry.Point{0, 0})
}

func TestFindPathSameCellReturnsEmptyPath(t *testing.T) {
	grid := newGrid(10)
	path, ok := FindPath(grid, geometry.Point{2, 2}, geometry.Point{2, 2}, 64)
	require.True(t, ok)
	assert.Empty(t, path)
}

func TestFindPathGoesAroundWalls(t *testing.T) {
	grid := newGrid(5)
	for y := 0; y < 4; y++ {
		grid.walls[geometry.Point{2, y}] = true
	}
	path, ok := FindPath(grid, geometry.Point{0, 0}, geometry.Point{4, 0}, 64)
	require.True(t, ok)
	assert.Equal(t, geometry.Point{4, 0}, path[len(path)-1])
	for _, p := range path {
		assert.False(t, grid.walls[p])
	}
}

func TestFindPathUnreachableGoal(t *testing.T) {
	grid := newGrid(5)
	for y := 0; y < 5; y++ {
		grid.walls[geometry.Point{2, y}] = true
	}
	_, ok := FindPath(grid, geometry.Point{0, 0}, geometry.Point{4, 0}, 64)
	assert.False(t, ok)
}

func TestFindPathAllowsBlockedDestination(t *testing.T) {
	grid := newGrid(5)
	grid.blocked[geometry.Point{3, 0}] = true
	path, ok := FindPath(grid, geometry.Point{0, 0}, geometry.Point{3, 0}, 64)
	require.True(t, ok)
	assert.Equal(t, geometry.Point{3, 0}, path[len(path)-1])
}

func TestPathCursorAdvancesAndStops(t *testing.T) {
	var p Path
	cells := []geometry.Point{{1, 0}, {2, 0}, {3, 0}}
	p.SetDestination(geometry.Point{3, 0}, cells)

	for _, want := range cells {
		got, ok := p.GetNextMove()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := p.GetNextMove()
	assert.False(t, ok)
	assert.False(t, p.IsMoving)
}

func TestPathCursorInterruptKeepsAutoGoal(t *testing.T) {
	var p Path
	goal := geometry.Point{9, 9}
	p.SetDestination(geometry.Point{1, 0}, []geometry.Point{{1, 0}})
	p.AutoGoal = &goal

	p.Interrupt()
	assert.False(t, p.IsMoving)
	assert.True(t, p.MovementInterrupted)
	assert.NotNil(t, p.AutoGoal)
}

func TestPathCursorCancelClearsAutoGoal(t *testing.T) {
	var p Path
	goal := geometry.Point{9, 9}
	p.SetDestination(geometry.Point{1, 0}, []geometry.Point{{1, 0}})
	p.AutoGoal = &goal

	p.Cancel()
	assert.Nil(t, p.AutoGoal)
	assert.False(t, p.IsMoving)
}
