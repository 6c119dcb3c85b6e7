package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// RaycastResult holds information about a raycast or sweep hit.
// Defined here to avoid circular imports with physics package.
type RaycastResult struct {
	GameObject *GameObject
	Point      rl.Vector3 // impact point on the surface
	Normal     rl.Vector3 // flat surface normal at Point, unit length
	// ContactNormal points from Point toward the centre of a swept sphere. It
	// differs from Normal on edges and corners; rays leave it equal to Normal.
	ContactNormal rl.Vector3
	Distance   float32    // distance travelled along the cast direction
	FaceIndex  int        // triangle index for mesh hits, -1 otherwise
}

// WorldAccess provides components with access to world-level operations
// without creating circular import dependencies.
type WorldAccess interface {
	GetCollidableObjects() []*GameObject
	Raycast(origin, direction rl.Vector3, maxDistance float32, ignore *GameObject) (RaycastResult, bool)
	SphereCast(origin, direction rl.Vector3, radius, maxDistance float32, ignore *GameObject) (RaycastResult, bool)
}
