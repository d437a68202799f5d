package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafeHatfield/yarl-sub004/config"
)

func TestChebyshevDistance(t *testing.T) {
	assert.Equal(t, 3, ChebyshevDistance(Point{0, 0}, Point{3, 1}))
	assert.Equal(t, 0, ChebyshevDistance(Point{2, 2}, Point{2, 2}))
	assert.Equal(t, 1, ChebyshevDistance(Point{0, 0}, Point{1, 1}))
}

func TestIsAdjacent(t *testing.T) {
	assert.True(t, IsAdjacent(Point{5, 5}, Point{6, 6}))
	assert.False(t, IsAdjacent(Point{5, 5}, Point{5, 5}))
	assert.False(t, IsAdjacent(Point{5, 5}, Point{7, 5}))
}

func TestNeighbors8ReturnsEightFixedOrderPoints(t *testing.T) {
	n := Neighbors8(Point{0, 0})
	require.Len(t, n, 8)
	assert.Equal(t, Point{0, -1}, n[0])
	assert.Equal(t, Point{-1, -1}, n[7])
}

func TestResolveRangeBandFollowsDoctrineTable(t *testing.T) {
	tuning := config.Default()

	cases := []struct {
		distance   int
		wantMult   float64
		wantDenied bool
		wantRetal  bool
	}{
		{1, 0.25, false, true},
		{2, 0.50, false, false},
		{4, 1.00, false, false},
		{7, 0.50, false, false},
		{8, 0.25, false, false},
		{9, 0, true, false},
		{20, 0, true, false},
	}

	for _, c := range cases {
		result, ok := ResolveRangeBand(tuning, Point{0, 0}, Point{c.distance, 0})
		require.True(t, ok)
		assert.Equal(t, c.wantDenied, result.Denied, "distance %d", c.distance)
		assert.Equal(t, c.wantRetal, result.Retaliation, "distance %d", c.distance)
		if !c.wantDenied {
			assert.Equal(t, c.wantMult, result.Multiplier, "distance %d", c.distance)
		}
	}
}
