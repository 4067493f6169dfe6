package ecs_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelgame/enginecore/ecs"
)

type position struct {
	X, Y float32
}

type velocity struct {
	DX, DY float32
}

func Test_CreateEntity_AssignsIncreasingGenerations(t *testing.T) {
	t.Parallel()

	u := ecs.NewUniverse()

	a := u.CreateEntity()
	b := u.CreateEntity()

	require.Less(t, a.Generation, b.Generation)
	require.True(t, u.Validate(a))
	require.True(t, u.Validate(b))
}

func Test_DeleteEntity_InvalidatesHandle(t *testing.T) {
	t.Parallel()

	u := ecs.NewUniverse()
	a := u.CreateEntity()

	u.DeleteEntity(a)

	require.False(t, u.Validate(a))
}

func Test_DeleteEntity_RecyclesIndexWithNewGeneration(t *testing.T) {
	t.Parallel()

	u := ecs.NewUniverse()
	a := u.CreateEntity()

	u.DeleteEntity(a)

	b := u.CreateEntity()

	require.Equal(t, a.Index, b.Index)
	require.NotEqual(t, a.Generation, b.Generation)
	require.False(t, u.Validate(a))
	require.True(t, u.Validate(b))
}

func Test_SetComponent_GetComponent_RoundTrip(t *testing.T) {
	t.Parallel()

	u := ecs.NewUniverse()
	a := u.CreateEntity()

	ecs.SetComponent(u, a, position{X: 1, Y: 2})

	got, ok := ecs.GetComponent[position](u, a)
	require.True(t, ok)
	assert.Empty(t, cmp.Diff(position{X: 1, Y: 2}, got), "component value mismatch")
}

func Test_GetComponent_AbsentReturnsFalse(t *testing.T) {
	t.Parallel()

	u := ecs.NewUniverse()
	a := u.CreateEntity()

	_, ok := ecs.GetComponent[position](u, a)
	require.False(t, ok)
}

func Test_GetComponent_PanicsOnInvalidEntity(t *testing.T) {
	t.Parallel()

	u := ecs.NewUniverse()
	a := u.CreateEntity()
	u.DeleteEntity(a)

	require.Panics(t, func() {
		ecs.GetComponent[position](u, a)
	})
}

func Test_RemoveComponent_ClearsAndReturnsValue(t *testing.T) {
	t.Parallel()

	u := ecs.NewUniverse()
	a := u.CreateEntity()
	ecs.SetComponent(u, a, position{X: 3, Y: 4})

	removed := ecs.RemoveComponent[position](u, a)
	assert.Empty(t, cmp.Diff(position{X: 3, Y: 4}, removed), "removed component mismatch")

	_, ok := ecs.GetComponent[position](u, a)
	require.False(t, ok)
}

func Test_RemoveComponent_PanicsWhenNotSet(t *testing.T) {
	t.Parallel()

	u := ecs.NewUniverse()
	a := u.CreateEntity()

	require.Panics(t, func() {
		ecs.RemoveComponent[position](u, a)
	})
}

func Test_GetComponentMut_MutatesInPlace(t *testing.T) {
	t.Parallel()

	u := ecs.NewUniverse()
	a := u.CreateEntity()
	ecs.SetComponent(u, a, position{X: 1, Y: 1})

	ok := ecs.GetComponentMut(u, a, func(p *position) {
		p.X += 10
	})
	require.True(t, ok)

	got, _ := ecs.GetComponent[position](u, a)
	assert.Empty(t, cmp.Diff(position{X: 11, Y: 1}, got), "mutated component mismatch")
}

func Test_Iter_ReturnsOnlyEntitiesWithComponent(t *testing.T) {
	t.Parallel()

	u := ecs.NewUniverse()
	a := u.CreateEntity()
	b := u.CreateEntity()
	_ = u.CreateEntity() // no component

	ecs.SetComponent(u, a, velocity{DX: 1})
	ecs.SetComponent(u, b, velocity{DX: 2})

	entries := ecs.Iter[velocity](u)
	require.Len(t, entries, 2)
}

func Test_DeleteEntity_ClearsComponentsAtThatIndex(t *testing.T) {
	t.Parallel()

	u := ecs.NewUniverse()
	a := u.CreateEntity()
	ecs.SetComponent(u, a, position{X: 9, Y: 9})

	u.DeleteEntity(a)

	b := u.CreateEntity() // recycles a.Index with a new generation
	require.Equal(t, a.Index, b.Index)

	_, ok := ecs.GetComponent[position](u, b)
	require.False(t, ok, "recycled slot must not inherit the deleted entity's components")
}

func Test_IterEntities_SkipsDeleted(t *testing.T) {
	t.Parallel()

	u := ecs.NewUniverse()
	a := u.CreateEntity()
	b := u.CreateEntity()
	u.DeleteEntity(a)

	entities := u.IterEntities()
	require.Len(t, entities, 1)
	require.Equal(t, b, entities[0])
}

func Test_CreateEntity_GrowsFreeIndicesInBatches(t *testing.T) {
	t.Parallel()

	u := ecs.NewUniverse()

	seen := make(map[uint32]bool)

	for i := 0; i < 120; i++ {
		e := u.CreateEntity()
		require.False(t, seen[e.Index], "index %d reused while still live", e.Index)
		seen[e.Index] = true
	}

	require.Len(t, seen, 120)
}
