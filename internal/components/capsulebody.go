package components

import (
	"fallingup/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	engine.RegisterComponent("CapsuleBody", func(props map[string]any) (engine.Component, error) {
		radius, err := engine.FloatProp(props, "radius", 25)
		if err != nil {
			return nil, err
		}
		halfHeight, err := engine.FloatProp(props, "halfHeight", 25)
		if err != nil {
			return nil, err
		}
		b := NewCapsuleBody(radius, halfHeight)
		if b.Friction, err = engine.FloatProp(props, "friction", b.Friction); err != nil {
			return nil, err
		}
		if b.CanSleep, err = engine.BoolProp(props, "canSleep", b.CanSleep); err != nil {
			return nil, err
		}
		return b, nil
	})
}

// Sleep thresholds
const (
	DefaultSleepSpeed = 0.3 // units/sec - below this, the body might sleep
	DefaultSleepTime  = 0.3 // seconds of low speed before sleeping
)

// Contact is one collision reported by the physics step.
type Contact struct {
	Other  *engine.GameObject
	Normal rl.Vector3 // points from the other object toward the body
	Depth  float32
}

// CapsuleBody is a dynamic capsule whose axis follows Up. It never rotates;
// orientation is carried by the view instead.
type CapsuleBody struct {
	engine.BaseComponent
	Radius     float32
	HalfHeight float32
	Up         rl.Vector3
	Friction   float32 // fraction of sliding speed removed per second of contact

	// Sleep state - sleeping bodies skip integration and ignore AddVelocity
	CanSleep   bool
	SleepSpeed float32
	SleepTime  float32
	IsSleeping bool

	OnSleep engine.Event
	OnWake  engine.Event
	OnHit   engine.EventWithArg[Contact]

	velocity   rl.Vector3
	sleepTimer float32
}

func NewCapsuleBody(radius, halfHeight float32) *CapsuleBody {
	return &CapsuleBody{
		Radius:     radius,
		HalfHeight: halfHeight,
		Up:         rl.Vector3{Z: 1},
		Friction:   2,
		CanSleep:   true,
		SleepSpeed: DefaultSleepSpeed,
		SleepTime:  DefaultSleepTime,
	}
}

func (b *CapsuleBody) Velocity() rl.Vector3 {
	return b.velocity
}

// SetVelocity replaces the velocity. A speed above the sleep threshold wakes
// the body.
func (b *CapsuleBody) SetVelocity(v rl.Vector3) {
	if rl.Vector3Length(v) > b.SleepSpeed {
		b.Wake()
	}
	if b.IsSleeping {
		return
	}
	b.velocity = v
}

// AddVelocity accumulates onto the velocity of an awake body.
func (b *CapsuleBody) AddVelocity(v rl.Vector3) {
	if b.IsSleeping {
		return
	}
	b.velocity = rl.Vector3Add(b.velocity, v)
}

// Wake forces the body out of sleep state
func (b *CapsuleBody) Wake() {
	b.sleepTimer = 0
	if !b.IsSleeping {
		return
	}
	b.IsSleeping = false
	b.OnWake.Invoke()
}

// TrySleep puts the body to sleep once it has been slow for SleepTime.
func (b *CapsuleBody) TrySleep(deltaTime float32) {
	if !b.CanSleep || b.IsSleeping {
		return
	}

	if rl.Vector3Length(b.velocity) >= b.SleepSpeed {
		b.sleepTimer = 0
		return
	}

	b.sleepTimer += deltaTime
	b.velocity = rl.Vector3Scale(b.velocity, 0.9)
	if b.sleepTimer >= b.SleepTime {
		b.IsSleeping = true
		b.velocity = rl.Vector3{}
		b.OnSleep.Invoke()
	}
}

// Spheres returns the centres of the spheres that make up the capsule: one
// when the capsule is no taller than a sphere, otherwise one at each end.
func (b *CapsuleBody) Spheres() []rl.Vector3 {
	center := b.GetGameObject().WorldPosition()
	reach := b.HalfHeight - b.Radius
	if reach <= 0 {
		return []rl.Vector3{center}
	}
	up := rl.Vector3Scale(rl.Vector3Normalize(b.Up), reach)
	return []rl.Vector3{rl.Vector3Subtract(center, up), rl.Vector3Add(center, up)}
}

// Resolve removes the part of the velocity heading into a contact and
// applies sliding friction.
func (b *CapsuleBody) Resolve(c Contact, deltaTime float32) {
	into := rl.Vector3DotProduct(b.velocity, c.Normal)
	if into < 0 {
		b.velocity = rl.Vector3Subtract(b.velocity, rl.Vector3Scale(c.Normal, into))
	}
	if b.Friction > 0 {
		normal := rl.Vector3Scale(c.Normal, rl.Vector3DotProduct(b.velocity, c.Normal))
		tangent := rl.Vector3Subtract(b.velocity, normal)
		keep := 1 - b.Friction*deltaTime
		if keep < 0 {
			keep = 0
		}
		b.velocity = rl.Vector3Add(normal, rl.Vector3Scale(tangent, keep))
	}
	b.OnHit.Invoke(c)
}

func (b *CapsuleBody) Bounds() AABB {
	r := b.Radius
	box := emptyAABB()
	for _, c := range b.Spheres() {
		box = box.Extend(c)
	}
	return box.Expand(r)
}
