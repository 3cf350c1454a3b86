package component

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// AnimationClip is a frame sequence. Repeat -1 loops forever; otherwise the
// clip plays Repeat+1 times and holds its last frame.
type AnimationClip struct {
	Frames []*ebiten.Image
	FPS    float64
	Repeat int
}

func (c AnimationClip) Loops() bool {
	return c.Repeat < 0
}

type Animation struct {
	Clips      map[string]AnimationClip
	Current    string
	Frame      int
	FrameTimer int
	Played     int
	Playing    bool
}

// Play switches clips. Requesting the current clip keeps its progress.
func (a *Animation) Play(name string) {
	if a == nil || a.Current == name && a.Playing {
		return
	}
	if _, ok := a.Clips[name]; !ok {
		return
	}
	a.Current = name
	a.Frame = 0
	a.FrameTimer = 0
	a.Played = 0
	a.Playing = true
}

var AnimationComponent = NewComponent[Animation]()
