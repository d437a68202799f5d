// Package geometry provides the grid distance and range-band math the
// combat and movement packages share (§4.2 Range & Geometry). Distances are
// Chebyshev (diagonal moves cost the same as orthogonal ones), matching a
// single-tile-per-step grid rather than the teacher's hex-grid cube
// coordinates (tools/spatial/position.go's CubeCoordinate.Distance is the
// grounding for the shape of a Point type with a Distance method; the
// metric itself is adapted to a square grid per this spec's grid model).
package geometry

import "github.com/RafeHatfield/yarl-sub004/config"

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Equals reports whether p and o name the same cell.
func (p Point) Equals(o Point) bool {
	return p.X == o.X && p.Y == o.Y
}

// ChebyshevDistance returns the grid (king-move) distance between a and b —
// max(|dx|, |dy|) — so diagonal adjacency counts as distance 1.
func ChebyshevDistance(a, b Point) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// IsAdjacent reports whether a and b are within one tile of each other
// (including diagonals), excluding the identical cell.
func IsAdjacent(a, b Point) bool {
	d := ChebyshevDistance(a, b)
	return d == 1
}

// Neighbors8 returns the eight grid cells surrounding p, in a fixed
// clockwise-from-north reading order so callers that break ties on order
// (interaction-target selection, §4.8) get deterministic results.
func Neighbors8(p Point) []Point {
	deltas := []Point{
		{0, -1}, {1, -1}, {1, 0}, {1, 1},
		{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
	}
	out := make([]Point, len(deltas))
	for i, d := range deltas {
		out[i] = p.Add(d)
	}
	return out
}

// RangeBandResult is the outcome of resolving a ranged-attack distance
// against the configured range-band table.
type RangeBandResult struct {
	config.RangeBand
	Distance int
}

// ResolveRangeBand looks up the range band covering the Chebyshev distance
// between attacker and target using the supplied tuning table (§4.1a). The
// second return value is false only if the table has no matching row, which
// cannot happen with config.Default()'s table since its last row covers
// every distance from 9 upward.
func ResolveRangeBand(tuning config.Tuning, attacker, target Point) (RangeBandResult, bool) {
	d := ChebyshevDistance(attacker, target)
	band, ok := tuning.BandFor(d)
	if !ok {
		return RangeBandResult{}, false
	}
	return RangeBandResult{RangeBand: band, Distance: d}, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
