package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafeHatfield/yarl-sub004/geometry"
)

type fakeComponent struct{ kind Kind }

func (f fakeComponent) Kind() Kind { return f.kind }

func TestNewAssignsUniqueIDs(t *testing.T) {
	a := New("monster", "Goblin", geometry.Point{}, 'g', "green", true, RenderOrderActor)
	b := New("monster", "Orc", geometry.Point{}, 'o', "green", true, RenderOrderActor)
	assert.NotEqual(t, a.GetID(), b.GetID())
}

func TestComponentRoundTrip(t *testing.T) {
	e := New("monster", "Goblin", geometry.Point{}, 'g', "green", true, RenderOrderActor)
	assert.False(t, e.HasComponent(KindFighter))

	e.SetComponent(fakeComponent{kind: KindFighter})
	assert.True(t, e.HasComponent(KindFighter))

	e.RemoveComponent(KindFighter)
	assert.False(t, e.HasComponent(KindFighter))
}

func TestRequireComponentFailsWhenMissing(t *testing.T) {
	e := New("monster", "Goblin", geometry.Point{}, 'g', "green", true, RenderOrderActor)
	_, err := e.RequireComponent("test.Op", KindFighter)
	assert.Error(t, err)
}

func TestTags(t *testing.T) {
	e := New("monster", "Rat", geometry.Point{}, 'r', "brown", true, RenderOrderActor)
	assert.False(t, e.HasTag("plague_carrier"))
	e.AddTag("plague_carrier")
	assert.True(t, e.HasTag("plague_carrier"))
}

func TestSetPositionAndBack(t *testing.T) {
	e := New("player", "Hero", geometry.Point{1, 1}, '@', "white", true, RenderOrderPlayer)
	e.SetPosition(geometry.Point{5, 5})
	assert.Equal(t, geometry.Point{5, 5}, e.Position())
}

func TestRegistryAddGetRemove(t *testing.T) {
	r := NewRegistry()
	e := New("monster", "Goblin", geometry.Point{}, 'g', "green", true, RenderOrderActor)
	r.Add(e)

	got, ok := r.Get(e.GetID())
	require.True(t, ok)
	assert.Same(t, e, got)

	r.Remove(e.GetID())
	_, ok = r.Get(e.GetID())
	assert.False(t, ok)
}

func TestRegistryAllReturnsSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Add(New("monster", "A", geometry.Point{}, 'a', "red", true, RenderOrderActor))
	r.Add(New("monster", "B", geometry.Point{}, 'b', "red", true, RenderOrderActor))
	assert.Len(t, r.All(), 2)
}

func TestTransformToCorpseMutatesInPlace(t *testing.T) {
	e := New("monster", "Goblin", geometry.Point{3, 4}, 'g', "green", true, RenderOrderActor)
	e.SetComponent(fakeComponent{kind: KindFighter})
	e.SetComponent(fakeComponent{kind: KindAI})
	e.SetComponent(fakeComponent{kind: KindStatusEffects})

	e.TransformToCorpse()

	glyph, color := e.Glyph()
	assert.Equal(t, '%', glyph)
	assert.Equal(t, "dark_red", color)
	assert.False(t, e.BlocksMovement())
	assert.Equal(t, RenderOrderCorpse, e.RenderOrder())
	assert.False(t, e.HasComponent(KindFighter))
	assert.False(t, e.HasComponent(KindAI))
	assert.True(t, e.HasComponent(KindStatusEffects))
	assert.Equal(t, geometry.Point{3, 4}, e.Position())
}

func TestTransformToCorpseIsIdempotent(t *testing.T) {
	e := New("monster", "Goblin", geometry.Point{}, 'g', "green", true, RenderOrderActor)
	e.SetComponent(fakeComponent{kind: KindFighter})
	e.TransformToCorpse()

	e.AddTag("already_a_corpse_marker")
	e.TransformToCorpse()

	assert.True(t, e.IsCorpse())
	assert.True(t, e.HasTag("already_a_corpse_marker"))
}
