package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/player"
)

func TestResolveMovement(t *testing.T) {
	tests := []struct {
		name                  string
		left, right, up, down bool
		preferVertical        bool
		wantX, wantY          float64
		wantVertical          bool
	}{
		{name: "idle"},
		{name: "left", left: true, wantX: -1},
		{name: "right", right: true, wantX: 1},
		{name: "up", up: true, wantY: -1, wantVertical: true},
		{name: "down", down: true, wantY: 1, wantVertical: true},
		{name: "opposites cancel", left: true, right: true},
		{name: "both axes prefer horizontal", right: true, down: true, wantX: 1},
		{name: "both axes prefer vertical", right: true, down: true, preferVertical: true, wantY: 1, wantVertical: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, v := ResolveMovement(tc.left, tc.right, tc.up, tc.down, tc.preferVertical)
			assert.Equal(t, tc.wantX, x)
			assert.Equal(t, tc.wantY, y)
			assert.Equal(t, tc.wantVertical, v)
		})
	}
}

func TestFacingFor(t *testing.T) {
	assert.Equal(t, player.FacingUp, FacingFor(0, -1, player.FacingDown))
	assert.Equal(t, player.FacingDown, FacingFor(0, 1, player.FacingUp))
	assert.Equal(t, player.FacingLeft, FacingFor(-1, 0, player.FacingDown))
	assert.Equal(t, player.FacingRight, FacingFor(1, 0, player.FacingDown))
	assert.Equal(t, player.FacingLeft, FacingFor(0, 0, player.FacingLeft))
}

func TestPlayerControllerWithoutBody(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	pl := &component.Player{Speed: 120, Facing: player.FacingDown}
	input := &component.Input{MoveX: 1}
	tr := &component.Transform{X: 100, Y: 100}
	anim := &component.Animation{Clips: map[string]component.AnimationClip{
		"walk-right": {Frames: make([]*ebiten.Image, 8), FPS: 8, Repeat: -1},
		"idle-right": {Frames: make([]*ebiten.Image, 1), FPS: 1, Repeat: -1},
	}}
	require.NoError(t, ecs.Add(w, e, component.PlayerComponent.Kind(), pl))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), input))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), tr))
	require.NoError(t, ecs.Add(w, e, component.AnimationComponent.Kind(), anim))

	sys := NewPlayerControllerSystem()
	sys.Update(w)
	assert.InDelta(t, 102, tr.X, 1e-9)
	assert.True(t, pl.Moving)
	assert.Equal(t, player.FacingRight, pl.Facing)
	assert.Equal(t, "walk-right", anim.Current)

	pl.Frozen = true
	sys.Update(w)
	assert.InDelta(t, 102, tr.X, 1e-9, "frozen players do not move")
	assert.False(t, pl.Moving)
	assert.Equal(t, "idle-right", anim.Current)
}

func TestStepAnimation(t *testing.T) {
	frames := make([]*ebiten.Image, 3)

	once := &component.Animation{Clips: map[string]component.AnimationClip{
		"once": {Frames: frames, FPS: common.TPS, Repeat: 0},
	}}
	once.Play("once")
	for i := 0; i < 3; i++ {
		StepAnimation(once)
	}
	assert.Equal(t, 2, once.Frame)
	assert.False(t, once.Playing)

	loop := &component.Animation{Clips: map[string]component.AnimationClip{
		"loop": {Frames: frames, FPS: common.TPS, Repeat: -1},
	}}
	loop.Play("loop")
	for i := 0; i < 3; i++ {
		StepAnimation(loop)
	}
	assert.Equal(t, 0, loop.Frame)
	assert.True(t, loop.Playing)

	slow := &component.Animation{Clips: map[string]component.AnimationClip{
		"slow": {Frames: frames, FPS: 3, Repeat: -1},
	}}
	slow.Play("slow")
	for i := 0; i < 19; i++ {
		StepAnimation(slow)
	}
	assert.Equal(t, 0, slow.Frame)
	StepAnimation(slow)
	assert.Equal(t, 1, slow.Frame)
}

func TestCameraOffset(t *testing.T) {
	tests := []struct {
		name   string
		target common.Vec
		want   common.Vec
	}{
		{name: "view equals bounds", target: common.Vec{X: 900, Y: 700}, want: common.Vec{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CameraOffset(tc.target, 1024, 768, 1024, 768))
		})
	}

	assert.Equal(t, common.Vec{X: 476, Y: 0}, CameraOffset(common.Vec{X: 900, Y: 100}, 848, 768, 2048, 768))
	assert.Equal(t, common.Vec{X: 1200, Y: 0}, CameraOffset(common.Vec{X: 2000, Y: 100}, 848, 768, 2048, 768))
}

func TestInteractionSystemTalkRequest(t *testing.T) {
	w := ecs.NewWorld()
	p := ecs.CreateEntity(w)
	input := &component.Input{}
	require.NoError(t, ecs.Add(w, p, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, p, component.PlayerComponent.Kind(), &component.Player{}))
	require.NoError(t, ecs.Add(w, p, component.InputComponent.Kind(), input))
	require.NoError(t, ecs.Add(w, p, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 100}))

	addNPC := func(id string, x float64, interactable bool) ecs.Entity {
		e := ecs.CreateEntity(w)
		require.NoError(t, ecs.Add(w, e, component.NPCComponent.Kind(), &component.NPC{ID: id, Interactable: interactable}))
		require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: 100}))
		return e
	}
	addNPC("statue", 110, false)
	near := addNPC("vincent", 140, true)
	addNPC("mira", 150, true)

	sys := NewInteractionSystem(0)
	sys.Update(w)
	focus, ok := ecs.Get(w, p, component.InteractionFocusComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, uint64(near), focus.Target)
	assert.Zero(t, w.Events().Len())

	input.Interact = true
	sys.Update(w)
	events := w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, ecs.EventTalkRequested, events[0].Kind)
	assert.Equal(t, "vincent", events[0].Data)

	pt, _ := ecs.Get(w, p, component.TransformComponent.Kind())
	pt.X = 500
	sys.Update(w)
	assert.False(t, ecs.Has(w, p, component.InteractionFocusComponent.Kind()))
	assert.Zero(t, w.Events().Len())
}

func TestTTLSystemDestroysExpired(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	tr := &component.Transform{Y: 100}
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), tr))
	require.NoError(t, ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: 3, Rise: 1}))

	sys := NewTTLSystem()
	sys.Update(w)
	sys.Update(w)
	assert.True(t, ecs.IsAlive(w, e))
	assert.InDelta(t, 98, tr.Y, 1e-9)
	sys.Update(w)
	assert.False(t, ecs.IsAlive(w, e))
}

func TestFlashSystemRestoresSprite(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	sprite := &component.Sprite{}
	require.NoError(t, ecs.Add(w, e, component.SpriteComponent.Kind(), sprite))
	require.NoError(t, ecs.Add(w, e, component.FlashComponent.Kind(), &component.Flash{Frames: 4, Interval: 2}))

	sys := NewFlashSystem()
	sys.Update(w)
	assert.False(t, sprite.Hidden)
	sys.Update(w)
	assert.True(t, sprite.Hidden)
	sys.Update(w)
	sys.Update(w)
	assert.False(t, sprite.Hidden)
	assert.False(t, ecs.Has(w, e, component.FlashComponent.Kind()))
}
