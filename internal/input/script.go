package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frame holds one input state repeated for Ticks ticks.
type Frame struct {
	Move  rl.Vector2
	Look  rl.Vector2
	Ticks int
}

// Script replays frames deterministically, one Poll per tick. After the last
// frame it either loops or reports zero input.
type Script struct {
	Frames []Frame
	Loop   bool

	frame   int
	elapsed int
	current Frame
}

func NewScript(frames []Frame, loop bool) *Script {
	return &Script{Frames: frames, Loop: loop, frame: -1}
}

func (s *Script) Poll() {
	if len(s.Frames) == 0 {
		s.current = Frame{}
		return
	}
	if s.frame >= 0 && s.frame < len(s.Frames) && s.elapsed < s.Frames[s.frame].Ticks {
		s.elapsed++
		return
	}

	next := s.frame + 1
	if next >= len(s.Frames) {
		if !s.Loop {
			s.frame = len(s.Frames)
			s.current = Frame{}
			return
		}
		next = 0
	}
	s.frame = next
	s.elapsed = 1
	s.current = s.Frames[next]
	logger.Debug().Int("frame", next).Int("ticks", s.current.Ticks).Msg("script frame")
}

// Done reports whether a non-looping script has run out of frames.
func (s *Script) Done() bool {
	return !s.Loop && s.frame >= len(s.Frames)
}

func (s *Script) Move() rl.Vector2 { return Clamp(s.current.Move) }
func (s *Script) Look() rl.Vector2 { return Clamp(s.current.Look) }
