// Package pathfind also implements the pathfinding-driven auto-action loop
// (§4.7): the per-tick orchestration that drives one step of a player's
// click-to-move path through movement, hazard, and threat checks, and that
// dispatches the deferred pickup/open/talk goal (clearing any stairs goal)
// once the path completes. Grounded directly on
// original_source/mouse_movement.py's process_pathfinding_movement,
// _check_for_close_enemies, and the auto_pickup_target/auto_talk_target
// arrival handling it documents — translated from that function's single
// long procedure into a Step method plus a small ordered table of deferred
// dispatchers, matching the table-of-(predicate,handler) shape the other
// pipeline packages (combat's riderTable, interact's Dispatcher) already use
// for this spec's other ordered-rule lists.
package pathfind

import (
	"github.com/RafeHatfield/yarl-sub004/config"
	"github.com/RafeHatfield/yarl-sub004/geometry"
	"github.com/RafeHatfield/yarl-sub004/movement"
	"github.com/RafeHatfield/yarl-sub004/status"
)

// Hazards exposes the optional ground-hazard lookup §6 attributes to
// GameMap.hazard_manager. A nil Hazards is treated as "no hazards on this
// map" rather than an error, per §6's "must be nullable" collaborator rule.
type Hazards interface {
	HazardAt(p geometry.Point) (name string, present bool)
}

// Hostile describes one FOV-visible hostile entity considered by the
// threat check (§4.7 step 7). Callers are expected to have already
// filtered to entities with a Fighter, alive, hostile to the mover, and
// currently in FOV — Step only does the distance comparison.
type Hostile struct {
	EntityID string
	Pos      geometry.Point
}

// DeferredGoals are the auto-* targets the Pathfinding component carries
// (§3 Path state): entity IDs to act on once the path completes, cleared
// in order as each fires (§4.7 step 9: pickup, then open, then talk).
// AutoStairsTarget has no on-arrival action of its own here — taking the
// stairs is signaled by the interaction dispatcher's immediate path
// (§4.8), so arriving merely clears it for the caller to re-check.
type DeferredGoals struct {
	AutoPickupTarget string
	AutoOpenTarget   string
	AutoTalkTarget   string
	AutoStairsTarget string
}

// Clear drops every deferred goal, e.g. on path cancellation (§3 invariant:
// all auto-* refs are cleared when the path is cancelled).
func (d *DeferredGoals) Clear() {
	*d = DeferredGoals{}
}

// IsEmpty reports whether no deferred goal is set.
func (d DeferredGoals) IsEmpty() bool {
	return d == DeferredGoals{}
}

// StepInput bundles the collaborators one call to Step needs. Hazards and
// Hostiles may be nil/empty — both degrade to "no interruption from this
// source" per §6's nullable-collaborator rule.
type StepInput struct {
	EntityID string
	From     geometry.Point
	Status   *status.Manager
	Terrain  movement.Map
	Blockers movement.Blockers
	Hazards  Hazards
	// Hostiles is the set of FOV-visible hostile entities, precomputed by
	// the caller (Step has no FOV or faction knowledge of its own).
	Hostiles []Hostile
	// WeaponReach is the mover's equipped weapon reach (1 for unarmed/
	// melee, up to 8-10 for ranged weapons); defaults to 1 if zero.
	WeaponReach int
	Tuning      config.Tuning
}

// StepOutcome reports what happened during one Step call, mirroring the
// result-list keys §3/§4.7 name: messages, whether the path was
// interrupted (and why), whether the turn should pass to monsters, and —
// on arrival — which deferred goal(s) to dispatch.
type StepOutcome struct {
	Messages            []string
	Moved                bool
	To                   geometry.Point
	FOVRecompute         bool
	PortalEntry          bool
	RevealedSecretDoor   bool
	Interrupted          bool
	InterruptReason      string
	EnemyTurn            bool
	ContinuePathfinding  bool
	Arrived              bool
	DispatchPickupTarget string
	DispatchOpenTarget   string
	DispatchTalkTarget   string
}

// Step advances p by exactly one cell (or finalizes the path if already at
// its last cell), in the fixed order §4.7 and §5 specify: movement, then
// hazard check, then threat check, then either "still moving" or
// deferred-goal dispatch. It returns a zero StepOutcome if the path is not
// currently active — callers should check IsMoving/IsPathActive first if
// they want to distinguish "nothing to do" from "did nothing this tick".
func (p *Path) Step(in StepInput, goals *DeferredGoals) (StepOutcome, error) {
	if !p.IsMoving {
		return StepOutcome{}, nil
	}

	next, ok := p.GetNextMove()
	if !ok {
		out := StepOutcome{Arrived: true, Messages: []string{"Arrived at destination."}}
		dispatchArrival(goals, &out)
		return out, nil
	}

	moveResult, err := movement.Execute(movement.MoveInput{
		EntityID: in.EntityID,
		From:     in.From,
		To:       next,
		Status:   in.Status,
		Terrain:  in.Terrain,
		Blockers: in.Blockers,
	})
	if err != nil {
		return StepOutcome{}, err
	}

	if !moveResult.Moved {
		p.Interrupt()
		reason := moveResult.DenyReason
		return StepOutcome{
			Interrupted:     true,
			InterruptReason: reason,
			Messages:        []string{"Path blocked - movement stopped."},
		}, nil
	}

	out := StepOutcome{
		Moved:              true,
		To:                 next,
		FOVRecompute:       moveResult.NeedsFOVRecompute,
		PortalEntry:        moveResult.EnteredPortal,
		RevealedSecretDoor: moveResult.RevealedSecretDoor,
	}

	if moveResult.EnteredPortal {
		p.Interrupt()
		out.Interrupted = true
		out.InterruptReason = "stepped on portal"
		out.Messages = append(out.Messages, "You step onto the portal.")
		return out, nil
	}

	if in.Hazards != nil {
		if name, present := in.Hazards.HazardAt(next); present {
			p.Interrupt()
			out.Interrupted = true
			out.InterruptReason = name
			out.EnemyTurn = true
			out.Messages = append(out.Messages, "Movement stopped - "+name+" ahead!")
			return out, nil
		}
	}

	reach := in.WeaponReach
	if reach <= 0 {
		reach = 1
	}
	if closeEnemySpotted(next, in.Hostiles, reach, in.Tuning) {
		p.Interrupt()
		out.Interrupted = true
		out.InterruptReason = "enemy spotted"
		out.EnemyTurn = true
		out.Messages = append(out.Messages, "Movement stopped - enemy spotted!")
		return out, nil
	}

	if p.IsMoving {
		out.ContinuePathfinding = true
		return out, nil
	}

	out.Arrived = true
	out.Messages = append(out.Messages, "Arrived at destination.")
	dispatchArrival(goals, &out)
	return out, nil
}

// closeEnemySpotted implements §4.7 step 7's threat check: a melee
// attacker (reach 1) interrupts once a hostile is adjacent (within 1.5
// tiles with the defaults), while a ranged attacker keeps closing until a
// hostile crosses into the capped melee-danger distance. threat_distance = min(reach,
// MeleeThreatReachCap) * ThreatDistanceMultiplier, matching
// original_source/mouse_movement.py's _check_for_close_enemies.
func closeEnemySpotted(from geometry.Point, hostiles []Hostile, reach int, tuning config.Tuning) bool {
	reachCap := tuning.MeleeThreatReachCap
	if reachCap <= 0 {
		reachCap = 2
	}
	mult := tuning.ThreatDistanceMultiplier
	if mult <= 0 {
		mult = 1.5
	}
	effectiveReach := reach
	if effectiveReach > reachCap {
		effectiveReach = reachCap
	}
	threatDistance := float64(effectiveReach) * mult

	for _, h := range hostiles {
		if float64(geometry.ChebyshevDistance(from, h.Pos)) <= threatDistance {
			return true
		}
	}
	return false
}

// dispatchArrival consumes the deferred goals in §4.7 step 9's fixed
// order — pickup, then open, then talk — populating out's Dispatch*
// fields for the caller's pickup/chest/dialogue services, and clears each
// goal immediately after naming it regardless of what the caller's
// service ultimately does with it (mirroring the original's
// "pathfinding.auto_pickup_target = None" unconditional clear).
func dispatchArrival(goals *DeferredGoals, out *StepOutcome) {
	if goals == nil {
		return
	}
	if goals.AutoPickupTarget != "" {
		out.DispatchPickupTarget = goals.AutoPickupTarget
		goals.AutoPickupTarget = ""
	}
	if goals.AutoOpenTarget != "" {
		out.DispatchOpenTarget = goals.AutoOpenTarget
		goals.AutoOpenTarget = ""
	}
	if goals.AutoTalkTarget != "" {
		out.DispatchTalkTarget = goals.AutoTalkTarget
		goals.AutoTalkTarget = ""
	}
	goals.AutoStairsTarget = ""
}
