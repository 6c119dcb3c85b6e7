// Package physics answers spatial queries against scene colliders and
// steps capsule bodies through them.
package physics

import (
	"fallingup/internal/components"
	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MaxPushIterations bounds how often a body is pushed out per substep.
const MaxPushIterations = 4

// ContactPair identifies a body touching a static object.
type ContactPair struct {
	Body, Other uint64
}

// Stats counts physics activity since the world was created.
type Stats struct {
	Steps         int
	Contacts      int
	ContactBegins int
	SphereCasts   int
	Raycasts      int
}

// World holds the bodies and static colliders of a scene. It implements
// engine.WorldAccess.
type World struct {
	Bodies  []*engine.GameObject // objects with a CapsuleBody
	Statics []*engine.GameObject // objects with a collider and no body

	activeContacts  map[ContactPair]bool // contacts from last step
	currentContacts map[ContactPair]bool // contacts this step

	stats  Stats
	logger zerolog.Logger
}

func NewWorld() *World {
	return &World{
		Bodies:          make([]*engine.GameObject, 0),
		Statics:         make([]*engine.GameObject, 0),
		activeContacts:  make(map[ContactPair]bool),
		currentContacts: make(map[ContactPair]bool),
		logger:          log.With().Str("category", "physics").Logger(),
	}
}

// AddObject registers g and its children by the components they carry.
func (w *World) AddObject(g *engine.GameObject) {
	switch {
	case engine.GetComponent[*components.CapsuleBody](g) != nil:
		w.Bodies = append(w.Bodies, g)
	case hasCollider(g):
		w.Statics = append(w.Statics, g)
	}
	for _, child := range g.Children {
		w.AddObject(child)
	}
}

func hasCollider(g *engine.GameObject) bool {
	_, ok := engine.FindComponent[components.Collider](g)
	return ok
}

// GetCollidableObjects returns the static objects queries run against.
func (w *World) GetCollidableObjects() []*engine.GameObject {
	return w.Statics
}

func (w *World) Stats() Stats {
	return w.stats
}

// Step integrates every awake body, resolves its contacts and lets it sleep.
func (w *World) Step(deltaTime float32) {
	w.stats.Steps++
	w.currentContacts = make(map[ContactPair]bool)

	for _, obj := range w.Bodies {
		body := engine.GetComponent[*components.CapsuleBody](obj)
		if body == nil || body.IsSleeping || !obj.Active {
			continue
		}
		w.stepBody(obj, body, deltaTime)
		body.TrySleep(deltaTime)
	}

	w.dispatchContacts()
}

func (w *World) stepBody(obj *engine.GameObject, body *components.CapsuleBody, deltaTime float32) {
	travel := rl.Vector3Scale(body.Velocity(), deltaTime)

	// Substep so a body never moves more than half its radius at once.
	steps := 1
	if body.Radius > 0 {
		steps = int(rl.Vector3Length(travel)/(body.Radius*0.5)) + 1
	}
	move := rl.Vector3Scale(travel, 1/float32(steps))

	for i := 0; i < steps; i++ {
		obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, move)

		contacts := w.pushOut(obj, body)
		for _, c := range contacts {
			w.recordContact(obj, c.Other)
			body.Resolve(c, deltaTime/float32(steps))
		}
		move = rl.Vector3Scale(body.Velocity(), deltaTime/float32(steps))
	}
}

// pushOut moves the body out of every static it penetrates and returns the
// deepest contact per object.
func (w *World) pushOut(obj *engine.GameObject, body *components.CapsuleBody) []components.Contact {
	deepest := make(map[*engine.GameObject]components.Contact)
	var order []*engine.GameObject

	for iter := 0; iter < MaxPushIterations; iter++ {
		c, ok := w.deepestPenetration(body)
		if !ok {
			break
		}
		obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, rl.Vector3Scale(c.Normal, c.Depth))

		prev, seen := deepest[c.Other]
		if !seen {
			order = append(order, c.Other)
		}
		if !seen || c.Depth > prev.Depth {
			deepest[c.Other] = c
		}
	}

	contacts := make([]components.Contact, 0, len(order))
	for _, other := range order {
		contacts = append(contacts, deepest[other])
	}
	return contacts
}

func (w *World) deepestPenetration(body *components.CapsuleBody) (components.Contact, bool) {
	var best components.Contact
	found := false
	bounds := body.Bounds()

	for _, static := range w.Statics {
		if !static.Active {
			continue
		}
		for _, center := range body.Spheres() {
			c, ok := spherePenetration(static, center, body.Radius, bounds)
			if ok && (!found || c.Depth > best.Depth) {
				best = c
				found = true
			}
		}
	}
	return best, found
}

func (w *World) recordContact(body, other *engine.GameObject) {
	w.stats.Contacts++
	pair := ContactPair{Body: body.UID, Other: other.UID}
	w.currentContacts[pair] = true
}

// dispatchContacts logs contacts that began or ended this step.
func (w *World) dispatchContacts() {
	for pair := range w.currentContacts {
		if !w.activeContacts[pair] {
			w.stats.ContactBegins++
			w.logger.Debug().Uint64("body", pair.Body).Uint64("other", pair.Other).Msg("contact begin")
		}
	}
	for pair := range w.activeContacts {
		if !w.currentContacts[pair] {
			w.logger.Debug().Uint64("body", pair.Body).Uint64("other", pair.Other).Msg("contact end")
		}
	}
	w.activeContacts = w.currentContacts
}
