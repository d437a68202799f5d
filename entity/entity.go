// Package entity provides the core game-object model: a minimal Entity
// identity (core/entity.go's GetID/GetType shape) plus a closed-enum
// component registry attached to it. Components are looked up by kind
// rather than by Go type assertion so the set of attachable behaviors stays
// a fixed, auditable list (§4.1 Entity & Component Registry).
package entity

import (
	"sync"

	"github.com/google/uuid"

	"github.com/RafeHatfield/yarl-sub004/geometry"
	"github.com/RafeHatfield/yarl-sub004/rpgerr"
)

// Kind is a closed enumeration of the component kinds an Entity may carry.
// Kept as a fixed list (rather than open interface registration) because
// the combat/interaction/knowledge pipelines all switch on specific kinds
// and a typo'd string key would silently no-op instead of failing loudly.
type Kind string

const (
	KindFighter             Kind = "fighter"
	KindEquipment           Kind = "equipment"
	KindInventory           Kind = "inventory"
	KindAI                  Kind = "ai"
	KindStatusEffects       Kind = "status_effects"
	KindPathfinding         Kind = "pathfinding"
	KindChest               Kind = "chest"
	KindSignpost            Kind = "signpost"
	KindMural               Kind = "mural"
	KindStairs              Kind = "stairs"
	KindLockedDoor          Kind = "locked_door"
	KindRing                Kind = "ring"
	KindPortal              Kind = "portal"
	KindPortalPlacer        Kind = "portal_placer"
	KindBoss                Kind = "boss"
	KindStatistics          Kind = "statistics"
	KindFaction             Kind = "faction"
	KindSpeedBonusTracker   Kind = "speed_bonus_tracker"
	KindMonsterKnowledgeKey Kind = "monster_knowledge_key"
	KindAutoExplore         Kind = "auto_explore"
)

// Component is implemented by every attachable behavior. Kind reports which
// closed-enum slot the component occupies in its owner's registry.
type Component interface {
	Kind() Kind
}

// RenderOrder controls draw priority when multiple entities share a tile —
// higher values draw on top.
type RenderOrder int

const (
	RenderOrderCorpse RenderOrder = iota
	RenderOrderItem
	RenderOrderActor
	RenderOrderPlayer
)

// Entity is a single game object: a position, fixed display attributes, and
// a registry of attached components. Entities never hold direct pointers to
// other entities for back-references — components that need to refer to
// their owner store the owner's ID and resolve it through a Registry,
// avoiding the reference cycles a direct pointer would create (§9 redesign
// note on dynamic component dispatch replacing hard cross-references).
type Entity struct {
	mu sync.RWMutex

	id   string
	typ  string
	name string

	pos geometry.Point

	glyph       rune
	colorName   string
	renderOrder RenderOrder
	blocksMove  bool

	tags       map[string]struct{}
	components map[Kind]Component
}

// New creates an Entity with a generated ID.
func New(typ, name string, pos geometry.Point, glyph rune, colorName string, blocksMove bool, order RenderOrder) *Entity {
	return &Entity{
		id:          uuid.NewString(),
		typ:         typ,
		name:        name,
		pos:         pos,
		glyph:       glyph,
		colorName:   colorName,
		blocksMove:  blocksMove,
		renderOrder: order,
		tags:        make(map[string]struct{}),
		components:  make(map[Kind]Component),
	}
}

// GetID returns the entity's unique identifier.
func (e *Entity) GetID() string { return e.id }

// GetType returns the entity's coarse type label (e.g. "monster", "item").
func (e *Entity) GetType() string { return e.typ }

// Name returns the entity's display name.
func (e *Entity) Name() string { return e.name }

// Position returns the entity's current grid position.
func (e *Entity) Position() geometry.Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pos
}

// SetPosition updates the entity's grid position.
func (e *Entity) SetPosition(p geometry.Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pos = p
}

// Glyph returns the entity's display glyph and color name.
func (e *Entity) Glyph() (rune, string) { return e.glyph, e.colorName }

// BlocksMovement reports whether this entity occupies its tile exclusively.
func (e *Entity) BlocksMovement() bool { return e.blocksMove }

// RenderOrder returns the entity's draw priority.
func (e *Entity) RenderOrder() RenderOrder { return e.renderOrder }

// AddTag attaches a free-form tag (e.g. "plague_carrier", "swarm_ai") used
// by rule lookups that key off narrative properties rather than components.
func (e *Entity) AddTag(tag string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tags[tag] = struct{}{}
}

// HasTag reports whether tag was attached via AddTag.
func (e *Entity) HasTag(tag string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.tags[tag]
	return ok
}

// SetComponent attaches or replaces the component occupying its Kind slot.
func (e *Entity) SetComponent(c Component) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.components[c.Kind()] = c
}

// RemoveComponent detaches the component at kind, if any.
func (e *Entity) RemoveComponent(kind Kind) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.components, kind)
}

// Component returns the component at kind and whether it is present.
func (e *Entity) Component(kind Kind) (Component, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c, ok := e.components[kind]
	return c, ok
}

// HasComponent reports whether a component is attached at kind.
func (e *Entity) HasComponent(kind Kind) bool {
	_, ok := e.Component(kind)
	return ok
}

// corpseGlyph and corpseColor are the fixed in-place appearance a combatant
// takes on death (§4.5 combat/corpse transformation).
const corpseGlyph = '%'
const corpseColor = "dark_red"

// TransformToCorpse performs the in-place death mutation §4.5 describes:
// glyph swaps to '%', color to a dark red, the entity stops blocking
// movement, its Fighter and AI components are stripped, and its render
// order drops to Corpse. The entity stays in the registry — lootable,
// raisable — it is never removed from the entity set. Idempotent: once
// already in corpse render order, a second call does nothing, matching
// kill_monster's repeat-call behavior in
// original_source/game_actions.py's _handle_entity_death.
func (e *Entity) TransformToCorpse() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.renderOrder == RenderOrderCorpse {
		return
	}
	e.glyph = corpseGlyph
	e.colorName = corpseColor
	e.blocksMove = false
	e.renderOrder = RenderOrderCorpse
	delete(e.components, KindFighter)
	delete(e.components, KindAI)
}

// IsCorpse reports whether TransformToCorpse has already run on this entity.
func (e *Entity) IsCorpse() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.renderOrder == RenderOrderCorpse
}

// RequireComponent returns the component at kind, or a ContractViolation
// error if absent — for call sites where the caller's contract guarantees
// the component exists and its absence indicates a caller bug (§7).
func (e *Entity) RequireComponent(op string, kind Kind) (Component, error) {
	c, ok := e.Component(kind)
	if !ok {
		return nil, rpgerr.ContractViolation(op, string(kind))
	}
	return c, nil
}

// Registry resolves entity IDs to their live *Entity, giving components a
// way to reach their owner (or other entities) without holding a pointer
// that would otherwise create a reference cycle with the owner's component
// map.
type Registry struct {
	mu       sync.RWMutex
	entities map[string]*Entity
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]*Entity)}
}

// Add registers e under its ID.
func (r *Registry) Add(e *Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entities[e.GetID()] = e
}

// Remove unregisters the entity with the given ID.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entities, id)
}

// Get resolves id to its *Entity, if still registered.
func (r *Registry) Get(id string) (*Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entities[id]
	return e, ok
}

// All returns a snapshot slice of every registered entity. Order is
// unspecified; callers that need insertion order (§4.9 turn iteration)
// should track it separately.
func (r *Registry) All() []*Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entity, 0, len(r.entities))
	for _, e := range r.entities {
		out = append(out, e)
	}
	return out
}
