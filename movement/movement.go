// Package movement implements single-step entity movement (§4.6): bounds
// and wall checks, blocking-entity checks, incapacitation denial, and the
// side effects a successful move can trigger (FOV recompute, portal entry,
// secret-door reveal). Grounded on rulebooks/dnd5e/combat/movement.go's
// MoveEntity — the per-step check-then-move shape — generalized from that
// package's opportunity-attack trigger to this spec's simpler set of
// move-blocking conditions.
package movement

import (
	"github.com/RafeHatfield/yarl-sub004/geometry"
	"github.com/RafeHatfield/yarl-sub004/rpgerr"
	"github.com/RafeHatfield/yarl-sub004/status"
)

// Map is the minimal terrain query surface movement needs.
type Map interface {
	InBounds(p geometry.Point) bool
	IsWall(p geometry.Point) bool
	IsSecretDoor(p geometry.Point) bool
	RevealSecretDoor(p geometry.Point)
	IsPortal(p geometry.Point) bool
}

// Blockers resolves whether an entity other than the mover occupies a cell.
type Blockers interface {
	BlockingEntityAt(p geometry.Point) (id string, blocked bool)
}

// MoveInput describes a single requested step from From to To (always
// adjacent — callers that want multi-tile movement call this once per
// step, per the pathfinding package's get_next_move contract).
type MoveInput struct {
	EntityID string
	From, To geometry.Point
	Status   *status.Manager
	Terrain  Map
	Blockers Blockers
}

// Result reports what happened to the move attempt.
type Result struct {
	Moved             bool
	DenyReason        string
	// BlockingEntityID names the entity occupying the target cell when
	// DenyReason is "blocked by entity", so the caller (the action layer)
	// can translate the denial into an attack per §4.4 step 4 rather than
	// just showing a generic warning.
	BlockingEntityID  string
	NeedsFOVRecompute bool
	EnteredPortal     bool
	RevealedSecretDoor bool
}

// Execute attempts the single-step move described by in, checking
// incapacitation, map bounds, walls, and blocking entities in that order,
// and reports the side effects a successful move triggers.
func Execute(in MoveInput) (Result, error) {
	if in.Terrain == nil {
		return Result{}, rpgerr.ContractViolation("movement.Execute", "Map")
	}
	if in.Status != nil && in.Status.IsIncapacitated() {
		return Result{DenyReason: "incapacitated"}, nil
	}
	if !in.Terrain.InBounds(in.To) {
		return Result{DenyReason: "out of bounds"}, nil
	}
	if in.Terrain.IsWall(in.To) {
		return Result{DenyReason: "blocked by wall"}, nil
	}
	if in.Blockers != nil {
		if id, blocked := in.Blockers.BlockingEntityAt(in.To); blocked {
			return Result{DenyReason: "blocked by entity", BlockingEntityID: id}, nil
		}
	}

	result := Result{Moved: true, NeedsFOVRecompute: true}

	if in.Terrain.IsSecretDoor(in.To) {
		in.Terrain.RevealSecretDoor(in.To)
		result.RevealedSecretDoor = true
	}
	if in.Terrain.IsPortal(in.To) {
		result.EnteredPortal = true
	}

	return result, nil
}
