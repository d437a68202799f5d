// Package interact implements the interaction dispatcher (§4.8): a
// priority-ordered strategy table for "what happens when the player
// targets this tile/entity" plus the adjacent-walkable-tile selection
// algorithm used to path the player next to something before acting on it.
// Grounded on original_source/systems/interaction_system.py's
// strategy-priority table and tie-break rule, expressed in the teacher's
// idiom as a table of (predicate, handler) pairs matching combat's rider
// table rather than a chain, since priorities here are static weights, not
// an ordered pipeline of modifiers.
package interact

import (
	"sort"

	"github.com/RafeHatfield/yarl-sub004/entity"
	"github.com/RafeHatfield/yarl-sub004/geometry"
)

// Priority is a strategy's dispatch weight; lower values are tried first.
// Fractional values exist because the original priority table interleaves
// enemy/chest/item/stairs/NPC handling rather than using consecutive
// integers, and this package keeps those exact weights rather than
// renumbering them.
type Priority float64

const (
	PriorityEnemy    Priority = 0
	PriorityChest    Priority = 0.5
	PrioritySignpost Priority = 0.5
	PriorityMural    Priority = 0.5
	PriorityItem     Priority = 1
	PriorityStairs   Priority = 1.5
	PriorityNPC      Priority = 2
)

// DeferredGoal names which Pathfinding-component auto-* target a strategy
// installs when its target isn't adjacent yet (§4.8's "Deferred action"
// column). DeferredNone means the strategy has no pathfinding hand-off at
// all — the Enemy strategy's deferred column is "—" in §4.8's table, since
// auto-walking into melee range to attack was explicitly disabled in the
// original (original_source/mouse_movement.py's commented-out
// auto-attack-during-pathfinding block).
type DeferredGoal string

const (
	DeferredNone   DeferredGoal = ""
	DeferredPickup DeferredGoal = "pickup"
	DeferredOpen   DeferredGoal = "open"
	DeferredTalk   DeferredGoal = "talk"
	DeferredStairs DeferredGoal = "stairs"
)

// Strategy is one interaction handler: Matches decides whether it applies
// to the targeted entity, Execute performs the immediate (adjacent)
// interaction and returns a message, and Deferred names the auto-* goal to
// install on the Pathfinding component when the target isn't adjacent yet.
type Strategy struct {
	Name     string
	Priority Priority
	Matches  func(target *entity.Entity) bool
	Execute  func(actor, target *entity.Entity) (string, error)
	Deferred DeferredGoal
}

// Dispatcher holds the registered strategies, sorted by Priority ascending
// once via Sort so Resolve never has to re-sort per call.
type Dispatcher struct {
	strategies []Strategy
	sorted     bool
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Register adds s to the dispatcher. Call Sort (or Resolve, which sorts
// lazily) after registering all strategies.
func (d *Dispatcher) Register(s Strategy) {
	d.strategies = append(d.strategies, s)
	d.sorted = false
}

// Sort orders the registered strategies by ascending Priority, stable on
// registration order for equal priorities.
func (d *Dispatcher) Sort() {
	sort.SliceStable(d.strategies, func(i, j int) bool {
		return d.strategies[i].Priority < d.strategies[j].Priority
	})
	d.sorted = true
}

// Outcome reports what the dispatcher decided for one Resolve call: either
// the matched strategy's immediate Execute ran (Executed), or the target
// wasn't adjacent and a pathfinding hand-off is needed (Deferred), or
// nothing matched at all (neither flag set).
type Outcome struct {
	StrategyName string
	Message      string
	Executed     bool
	Deferred     bool
	DeferredGoal DeferredGoal
	TargetID     string
}

// Resolve finds the first matching strategy for target, in priority
// order, and either runs its immediate action (actor already adjacent
// enough, per IsAdjacentEnough) or reports the deferred goal the caller
// should hand to the pathfinder (§4.8: immediate if adjacent, otherwise
// pathfind and set the matching auto-* target). A strategy whose Deferred
// is DeferredNone always executes immediately regardless of distance — the
// Enemy strategy is the one case in §4.8's table with no deferred column,
// so a distant click on an enemy simply runs Execute (e.g. opening ranged
// target selection) rather than auto-walking toward it.
func (d *Dispatcher) Resolve(actor, target *entity.Entity) (Outcome, error) {
	if !d.sorted {
		d.Sort()
	}
	for _, s := range d.strategies {
		if !s.Matches(target) {
			continue
		}
		adjacent := actor == nil || s.Deferred == DeferredNone || IsAdjacentEnough(actor.Position(), target.Position())
		if adjacent {
			msg, execErr := s.Execute(actor, target)
			return Outcome{StrategyName: s.Name, Message: msg, Executed: true}, execErr
		}
		return Outcome{StrategyName: s.Name, Deferred: true, DeferredGoal: s.Deferred, TargetID: target.GetID()}, nil
	}
	return Outcome{}, nil
}

// AdjacentWalkableTile finds the best tile adjacent to target that the
// actor should path to before interacting with it, per the fixed
// reading-order tie-break documented in the original interaction system
// (a past regression there always picked the north-west neighbor on ties;
// this breaks ties on the same fixed clockwise-from-north order
// geometry.Neighbors8 returns, and additionally prefers the candidate
// closest to actor's current position by Manhattan distance).
func AdjacentWalkableTile(actor *entity.Entity, target geometry.Point, walkable func(geometry.Point) bool) (geometry.Point, bool) {
	actorPos := actor.Position()
	best := geometry.Point{}
	bestDist := -1
	found := false

	for _, candidate := range geometry.Neighbors8(target) {
		if !walkable(candidate) {
			continue
		}
		d := manhattan(actorPos, candidate)
		if !found || d < bestDist {
			best = candidate
			bestDist = d
			found = true
		}
	}
	return best, found
}

func manhattan(a, b geometry.Point) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// IsAdjacentEnough reports whether actor is close enough to target to
// interact directly without moving first — within 1.5 Euclidean units,
// which in practice means any of the 8 surrounding tiles or the tile
// itself.
func IsAdjacentEnough(actorPos, targetPos geometry.Point) bool {
	dx := float64(actorPos.X - targetPos.X)
	dy := float64(actorPos.Y - targetPos.Y)
	distSq := dx*dx + dy*dy
	return distSq <= 1.5*1.5
}
