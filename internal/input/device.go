package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Device reads keyboard, mouse and the first gamepad through raylib.
//
// Move x is forward (W/S, left stick up/down) and y is lateral toward the
// left (A/D, left stick). Look x turns left, look y raises the view.
type Device struct {
	MouseSensitivity float32 // look units per pixel of mouse travel
	StickDeadzone    float32
	Gamepad          int32

	move, look rl.Vector2
	hadGamepad bool
}

func NewDevice(mouseSensitivity float32) *Device {
	return &Device{
		MouseSensitivity: mouseSensitivity,
		StickDeadzone:    0.15,
	}
}

func (d *Device) Poll() {
	var move rl.Vector2
	if rl.IsKeyDown(rl.KeyW) {
		move.X++
	}
	if rl.IsKeyDown(rl.KeyS) {
		move.X--
	}
	if rl.IsKeyDown(rl.KeyA) {
		move.Y++
	}
	if rl.IsKeyDown(rl.KeyD) {
		move.Y--
	}

	mouse := rl.GetMouseDelta()
	look := rl.Vector2{
		X: -mouse.X * d.MouseSensitivity,
		Y: -mouse.Y * d.MouseSensitivity,
	}

	hasGamepad := rl.IsGamepadAvailable(d.Gamepad)
	if hasGamepad != d.hadGamepad {
		logger.Info().Int32("gamepad", d.Gamepad).Bool("connected", hasGamepad).Msg("gamepad state changed")
		d.hadGamepad = hasGamepad
	}
	if hasGamepad {
		move.X -= d.axis(rl.GamepadAxisLeftY)
		move.Y -= d.axis(rl.GamepadAxisLeftX)
		look.X -= d.axis(rl.GamepadAxisRightX)
		look.Y -= d.axis(rl.GamepadAxisRightY)
	}

	d.move = Clamp(move)
	d.look = Clamp(look)
}

func (d *Device) axis(axis int32) float32 {
	v := rl.GetGamepadAxisMovement(d.Gamepad, axis)
	if v > -d.StickDeadzone && v < d.StickDeadzone {
		return 0
	}
	return v
}

func (d *Device) Move() rl.Vector2 { return d.move }
func (d *Device) Look() rl.Vector2 { return d.look }
