// Package pathfind implements grid A* pathfinding and the per-entity Path
// state a pursuing or fleeing monster steps through one tile at a time
// (§4.7). Grounded directly on tools/spatial/pathfinder.go's SimplePathFinder
// (linear-scan open set, gScore/cameFrom maps, reconstructPath building the
// path in reverse then reversing once), adapted from that file's hex cube
// coordinates to this spec's square grid with 8-directional movement and an
// entity-blocker exception at the destination cell.
package pathfind

import (
	"github.com/RafeHatfield/yarl-sub004/geometry"
)

// Walkable reports whether a grid cell can be entered, and Blocked reports
// whether an entity currently occupies it (the destination cell is allowed
// to be Blocked — the path still plans through it, since the caller is
// usually pathing toward that very entity).
type Walkable interface {
	IsWalkable(p geometry.Point) bool
	IsBlocked(p geometry.Point) bool
}

// FindPath runs A* from start to goal over terrain, returning the sequence
// of cells to move through (excluding start, including goal) and whether a
// path was found at all. maxLength caps the search to avoid unbounded work
// on an unreachable goal in a large map.
func FindPath(terrain Walkable, start, goal geometry.Point, maxLength int) ([]geometry.Point, bool) {
	if start.Equals(goal) {
		return nil, true
	}

	open := map[geometry.Point]bool{start: true}
	cameFrom := make(map[geometry.Point]geometry.Point)
	gScore := map[geometry.Point]int{start: 0}
	fScore := map[geometry.Point]int{start: geometry.ChebyshevDistance(start, goal)}

	for len(open) > 0 {
		current, ok := lowestFScore(open, fScore)
		if !ok {
			break
		}
		if current.Equals(goal) {
			return reconstructPath(cameFrom, current), true
		}
		delete(open, current)

		for _, next := range geometry.Neighbors8(current) {
			if !next.Equals(goal) {
				if !terrain.IsWalkable(next) || terrain.IsBlocked(next) {
					continue
				}
			} else if !terrain.IsWalkable(next) {
				continue
			}

			tentative := gScore[current] + 1
			if tentative > maxLength {
				continue
			}
			if existing, seen := gScore[next]; seen && tentative >= existing {
				continue
			}
			cameFrom[next] = current
			gScore[next] = tentative
			fScore[next] = tentative + geometry.ChebyshevDistance(next, goal)
			open[next] = true
		}
	}

	return nil, false
}

func lowestFScore(open map[geometry.Point]bool, fScore map[geometry.Point]int) (geometry.Point, bool) {
	best := geometry.Point{}
	bestScore := 0
	found := false
	for p := range open {
		score, ok := fScore[p]
		if !ok {
			score = 1 << 30
		}
		if !found || score < bestScore {
			best = p
			bestScore = score
			found = true
		}
	}
	return best, found
}

func reconstructPath(cameFrom map[geometry.Point]geometry.Point, current geometry.Point) []geometry.Point {
	var reversed []geometry.Point
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		reversed = append(reversed, current)
		current = prev
	}
	path := make([]geometry.Point, len(reversed))
	for i, p := range reversed {
		path[len(reversed)-1-i] = p
	}
	return path
}

// Path tracks one entity's progress along a previously computed route, so
// a monster's AI can call GetNextMove once per turn rather than recomputing
// the whole path each time.
type Path struct {
	Destination        geometry.Point
	cells               []geometry.Point
	index               int
	IsMoving            bool
	MovementInterrupted bool
	// AutoGoal records a deferred player-issued travel target (e.g.
	// "travel to the stairs") so interrupting the path (an enemy comes into
	// view) can be distinguished from the player cancelling it outright.
	AutoGoal *geometry.Point
}

// SetDestination installs a freshly computed path toward destination.
func (p *Path) SetDestination(destination geometry.Point, cells []geometry.Point) {
	p.Destination = destination
	p.cells = cells
	p.index = 0
	p.IsMoving = true
	p.MovementInterrupted = false
}

// GetNextMove returns the next cell to step into and advances the index.
// The second return value is false once the path is exhausted.
func (p *Path) GetNextMove() (geometry.Point, bool) {
	if !p.IsMoving || p.index >= len(p.cells) {
		return geometry.Point{}, false
	}
	next := p.cells[p.index]
	p.index++
	if p.index >= len(p.cells) {
		p.IsMoving = false
	}
	return next, true
}

// Interrupt marks the current path as interrupted without discarding the
// auto-travel goal, so a resumed auto-explore can replan from here.
func (p *Path) Interrupt() {
	p.IsMoving = false
	p.MovementInterrupted = true
}

// Cancel clears the path entirely, including any deferred auto-travel goal.
func (p *Path) Cancel() {
	p.Destination = geometry.Point{}
	p.cells = nil
	p.index = 0
	p.IsMoving = false
	p.MovementInterrupted = false
	p.AutoGoal = nil
}
