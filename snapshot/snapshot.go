// Package snapshot collects a self-contained, renderer-facing view of
// the universe at the end of each frame's post-process stage, grounded
// on the original's FrameState::from_ecs and scene_builder.
package snapshot

import (
	"fmt"

	"github.com/kestrelgame/enginecore/ecs"
	"github.com/kestrelgame/enginecore/respool"
)

// SkyboxResource and CameraResource are opaque GPU-side resources. Their
// actual contents belong to the render backend; the engine core only
// ever holds reference-counted handles to them via [respool.Pool].
type SkyboxResource struct{}

type CameraResource struct{}

// Vec3 is a plain position or axis, carried as three float32 components.
// The engine core never does vector math on these; it only ferries them
// from components to the renderer.
type Vec3 struct {
	X, Y, Z float32
}

// Quat is a rotation, carried as an XYZW quaternion.
type Quat struct {
	X, Y, Z, W float32
}

// Transform is a camera's placement in world space: position plus
// rotation. Grounded on the original's CameraInfo.position/.rotation.
type Transform struct {
	Position Vec3
	Rotation Quat
}

// Projection is a camera's perspective parameters. Grounded on the
// original's CameraInfo fov/near_plane/far_plane/texture_width/
// texture_height.
type Projection struct {
	FOVRadians    float32
	NearPlane     float32
	FarPlane      float32
	TextureWidth  uint32
	TextureHeight uint32
}

// SceneComponent marks an entity as owning a scene: a skybox plus
// whatever else a scene eventually grows to carry.
type SceneComponent struct {
	Skybox respool.Handle[SkyboxResource]
}

// RenderComponent marks an entity as carrying renderable content that
// belongs to the scene it shares an entity with. The engine core holds
// no opinion on what the content is; collecting a snapshot only needs
// to know the entity exists so it can be associated with its scene.
type RenderComponent struct{}

// CameraComponent marks an entity as a camera into the scene it shares
// an entity with. Disabled cameras are skipped entirely when collecting
// a snapshot.
type CameraComponent struct {
	CameraHandle   respool.Handle[CameraResource]
	Enabled        bool
	RenderToScreen bool
	Transform      Transform
	Projection     Projection
}

// SceneRecord is the collected, renderer-facing view of one scene
// entity.
type SceneRecord struct {
	Entity         ecs.Entity
	Skybox         respool.Handle[SkyboxResource]
	RenderEntities []ecs.Entity
}

// CameraTarget pairs a camera's resource handle and captured
// transform/projection with the scene it renders.
type CameraTarget struct {
	CameraHandle respool.Handle[CameraResource]
	Transform    Transform
	Projection   Projection
	Scene        *SceneRecord
}

// Snapshot is the complete, owning, thread-safe-to-send view of a single
// frame's render-relevant state.
type Snapshot struct {
	// ScreenTarget is the camera rendering directly to the screen, if
	// any enabled camera requested it.
	ScreenTarget *CameraTarget
	Targets      []CameraTarget
}

// Collect builds a [Snapshot] from universe's current state. Panics if
// more than one enabled camera requests [CameraComponent.RenderToScreen],
// or if an enabled camera's or [RenderComponent]'s entity has no
// [SceneComponent] — all are programmer errors, not recoverable data
// errors.
func Collect(universe *ecs.Universe) Snapshot {
	scenes := make(map[ecs.Entity]*SceneRecord)

	for _, entry := range ecs.Iter[SceneComponent](universe) {
		scenes[entry.Entity] = &SceneRecord{
			Entity: entry.Entity,
			Skybox: entry.Component.Skybox,
		}
	}

	// For every entity carrying a RenderComponent, associate it with
	// the scene it shares an entity with.
	for _, entry := range ecs.Iter[RenderComponent](universe) {
		scene, ok := scenes[entry.Entity]
		if !ok {
			panic(fmt.Sprintf("snapshot: invalid scene reference for render entity %s", entry.Entity))
		}

		scene.RenderEntities = append(scene.RenderEntities, entry.Entity)
	}

	var snap Snapshot

	for _, entry := range ecs.Iter[CameraComponent](universe) {
		camera := entry.Component
		if !camera.Enabled {
			continue
		}

		scene, ok := scenes[entry.Entity]
		if !ok {
			panic(fmt.Sprintf("snapshot: invalid scene reference for camera on entity %s", entry.Entity))
		}

		target := CameraTarget{
			CameraHandle: camera.CameraHandle,
			Transform:    camera.Transform,
			Projection:   camera.Projection,
			Scene:        scene,
		}

		if camera.RenderToScreen {
			if snap.ScreenTarget != nil {
				panic("snapshot: multiple screen target cameras are enabled")
			}

			t := target
			snap.ScreenTarget = &t
		}

		snap.Targets = append(snap.Targets, target)
	}

	return snap
}
