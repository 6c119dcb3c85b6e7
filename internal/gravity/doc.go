// Package gravity implements a character controller whose "down" follows the
// surface beneath it.
//
// Each tick the controller probes along its current gravity direction. When the
// sensed surface normal deviates from the current "up" by more than a configured
// angle, gravity is reassigned to point into that surface and the view
// orientation is rotated by the same shortest-arc delta so the camera horizon
// stays consistent through the transition.
//
// The package depends only on small interfaces for the outside world: a spatial
// query service for the probe, a view sink for the camera and a movement sink for
// the body. All state is owned by a single Controller and mutated on the
// simulation thread; nothing here blocks or spawns goroutines.
package gravity
