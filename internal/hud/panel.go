package hud

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

var (
	colorBgDark   = rl.NewColor(18, 18, 24, 230)
	colorBgItem   = rl.NewColor(32, 32, 42, 255)
	colorAccent   = rl.NewColor(108, 99, 255, 255)
	colorTextMain = rl.NewColor(235, 235, 245, 255)
	colorTextDim  = rl.NewColor(150, 150, 170, 255)
)

// Snapshot is the controller state shown in the panel.
type Snapshot struct {
	Scene      string
	Gravity    rl.Vector3
	Threshold  float32
	Awake      bool
	Flips      int
	NearMisses int
	Surface    string
	Dot        float32
	Drawn      int
	Culled     int
}

// Panel is the debug overlay. Its toggles are read back by the game.
type Panel struct {
	Visible     bool
	ShowProbe   bool
	ShowGravity bool
	Culling     bool

	styled bool
}

func NewPanel() *Panel {
	return &Panel{Visible: true, ShowProbe: true, ShowGravity: true, Culling: true}
}

func (p *Panel) initStyle() {
	p.styled = true
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgItem))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextMain))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextMain))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// Draw renders the panel in the top-left corner. Call inside BeginDrawing.
func (p *Panel) Draw(s Snapshot) {
	if !p.Visible {
		return
	}
	if !p.styled {
		p.initStyle()
	}

	const (
		x     = float32(10)
		width = float32(300)
		lineH = float32(20)
	)
	y := float32(10)
	gui.Panel(rl.Rectangle{X: x, Y: y, Width: width, Height: 250}, s.Scene)
	y += 30

	label := func(text string) {
		gui.Label(rl.Rectangle{X: x + 10, Y: y, Width: width - 20, Height: lineH}, text)
		y += lineH
	}

	label(fmt.Sprintf("Gravity   (%.2f, %.2f, %.2f)", s.Gravity.X, s.Gravity.Y, s.Gravity.Z))
	label(fmt.Sprintf("Threshold %.1f deg", s.Threshold))
	label(fmt.Sprintf("Awake     %t", s.Awake))
	label(fmt.Sprintf("Flips     %d (near misses %d)", s.Flips, s.NearMisses))
	if s.Surface != "" {
		label(fmt.Sprintf("Surface   %s  dot %.3f", s.Surface, s.Dot))
	} else {
		label("Surface   -")
	}
	label(fmt.Sprintf("Drawn     %d (culled %d)", s.Drawn, s.Culled))
	y += 6

	box := func(text string, v bool) bool {
		v = gui.CheckBox(rl.Rectangle{X: x + 10, Y: y, Width: 16, Height: 16}, text, v)
		y += 24
		return v
	}
	p.ShowProbe = box("Draw probe", p.ShowProbe)
	p.ShowGravity = box("Draw gravity", p.ShowGravity)
	p.Culling = box("Frustum culling", p.Culling)
}

// DrawFeed renders the feed bottom-left, fading entries as they age.
func DrawFeed(f *Feed, screenHeight int32) {
	entries := f.Entries()
	y := screenHeight - 24
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		alpha := 1 - f.Age(e)
		rl.DrawText(e.Message, 12, y, 18, rl.Fade(levelColor(e.Level), alpha))
		y -= 22
	}
}

func levelColor(level zerolog.Level) rl.Color {
	switch {
	case level >= zerolog.ErrorLevel:
		return rl.Red
	case level == zerolog.WarnLevel:
		return rl.Orange
	case level == zerolog.InfoLevel:
		return colorTextMain
	default:
		return colorTextDim
	}
}
