package snapshot_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelgame/enginecore/ecs"
	"github.com/kestrelgame/enginecore/respool"
	"github.com/kestrelgame/enginecore/snapshot"
)

func Test_Collect_SceneWithoutCamerasYieldsNoTargets(t *testing.T) {
	t.Parallel()

	universe := ecs.NewUniverse()
	skyboxes := respool.NewPool[snapshot.SkyboxResource](4)

	entity := universe.CreateEntity()
	skybox := skyboxes.Allocate(snapshot.SkyboxResource{})
	ecs.SetComponent(universe, entity, snapshot.SceneComponent{Skybox: skybox})

	snap := snapshot.Collect(universe)

	require.Nil(t, snap.ScreenTarget)
	require.Empty(t, snap.Targets)
}

func Test_Collect_SkipsDisabledCameras(t *testing.T) {
	t.Parallel()

	universe := ecs.NewUniverse()
	cameras := respool.NewPool[snapshot.CameraResource](4)

	scene := universe.CreateEntity()
	ecs.SetComponent(universe, scene, snapshot.SceneComponent{})
	ecs.SetComponent(universe, scene, snapshot.CameraComponent{
		CameraHandle: cameras.Allocate(snapshot.CameraResource{}),
		Enabled:      false,
	})

	snap := snapshot.Collect(universe)

	require.Empty(t, snap.Targets)
	require.Nil(t, snap.ScreenTarget)
}

func Test_Collect_AssociatesEnabledCameraWithItsScene(t *testing.T) {
	t.Parallel()

	universe := ecs.NewUniverse()
	cameras := respool.NewPool[snapshot.CameraResource](4)

	entity := universe.CreateEntity()
	ecs.SetComponent(universe, entity, snapshot.SceneComponent{})
	ecs.SetComponent(universe, entity, snapshot.CameraComponent{
		CameraHandle:   cameras.Allocate(snapshot.CameraResource{}),
		Enabled:        true,
		RenderToScreen: true,
	})

	snap := snapshot.Collect(universe)

	require.Len(t, snap.Targets, 1)
	require.NotNil(t, snap.ScreenTarget)
	require.Equal(t, entity, snap.ScreenTarget.Scene.Entity)
}

func Test_Collect_PanicsOnMultipleScreenTargets(t *testing.T) {
	t.Parallel()

	universe := ecs.NewUniverse()
	cameras := respool.NewPool[snapshot.CameraResource](4)

	for i := 0; i < 2; i++ {
		entity := universe.CreateEntity()
		ecs.SetComponent(universe, entity, snapshot.SceneComponent{})
		ecs.SetComponent(universe, entity, snapshot.CameraComponent{
			CameraHandle:   cameras.Allocate(snapshot.CameraResource{}),
			Enabled:        true,
			RenderToScreen: true,
		})
	}

	require.PanicsWithValue(t, "snapshot: multiple screen target cameras are enabled", func() {
		snapshot.Collect(universe)
	})
}

func Test_Collect_AssociatesRenderEntityWithItsScene(t *testing.T) {
	t.Parallel()

	universe := ecs.NewUniverse()

	scene := universe.CreateEntity()
	ecs.SetComponent(universe, scene, snapshot.SceneComponent{})
	ecs.SetComponent(universe, scene, snapshot.RenderComponent{})

	otherRender := universe.CreateEntity()
	ecs.SetComponent(universe, otherRender, snapshot.SceneComponent{})
	ecs.SetComponent(universe, otherRender, snapshot.RenderComponent{})

	cameras := respool.NewPool[snapshot.CameraResource](4)
	ecs.SetComponent(universe, scene, snapshot.CameraComponent{
		CameraHandle: cameras.Allocate(snapshot.CameraResource{}),
		Enabled:      true,
	})

	snap := snapshot.Collect(universe)

	require.Len(t, snap.Targets, 1)
	require.Equal(t, []ecs.Entity{scene}, snap.Targets[0].Scene.RenderEntities)
}

func Test_Collect_PanicsWhenRenderEntityHasNoScene(t *testing.T) {
	t.Parallel()

	universe := ecs.NewUniverse()

	entity := universe.CreateEntity()
	ecs.SetComponent(universe, entity, snapshot.RenderComponent{})

	require.Panics(t, func() {
		snapshot.Collect(universe)
	})
}

func Test_Collect_CapturesCameraTransformAndProjection(t *testing.T) {
	t.Parallel()

	universe := ecs.NewUniverse()
	cameras := respool.NewPool[snapshot.CameraResource](4)

	entity := universe.CreateEntity()
	ecs.SetComponent(universe, entity, snapshot.SceneComponent{})

	transform := snapshot.Transform{
		Position: snapshot.Vec3{X: 1, Y: 2, Z: 3},
		Rotation: snapshot.Quat{X: 0, Y: 0, Z: 0, W: 1},
	}
	projection := snapshot.Projection{
		FOVRadians:    1.5708,
		NearPlane:     0.00001,
		FarPlane:      10000.0,
		TextureWidth:  1024,
		TextureHeight: 768,
	}

	ecs.SetComponent(universe, entity, snapshot.CameraComponent{
		CameraHandle: cameras.Allocate(snapshot.CameraResource{}),
		Enabled:      true,
		Transform:    transform,
		Projection:   projection,
	})

	snap := snapshot.Collect(universe)

	require.Len(t, snap.Targets, 1)
	require.Equal(t, transform, snap.Targets[0].Transform)
	require.Equal(t, projection, snap.Targets[0].Projection)
}

func Test_Collect_PanicsWhenCameraHasNoScene(t *testing.T) {
	t.Parallel()

	universe := ecs.NewUniverse()
	cameras := respool.NewPool[snapshot.CameraResource](4)

	entity := universe.CreateEntity()
	ecs.SetComponent(universe, entity, snapshot.CameraComponent{
		CameraHandle: cameras.Allocate(snapshot.CameraResource{}),
		Enabled:      true,
	})

	require.Panics(t, func() {
		snapshot.Collect(universe)
	})
}
