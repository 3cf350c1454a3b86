package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

const stickDeadzone = 0.2

// InputSystem samples the keyboard and first gamepad once per tick.
type InputSystem struct {
	vertical bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	interact := inpututil.IsKeyJustPressed(ebiten.KeyE)

	horizontalPressed := inpututil.IsKeyJustPressed(ebiten.KeyA) || inpututil.IsKeyJustPressed(ebiten.KeyD) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight)
	verticalPressed := inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyS) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(x) > stickDeadzone || math.Abs(y) > stickDeadzone {
			left, right = x < -stickDeadzone, x > stickDeadzone
			up, down = y < -stickDeadzone, y > stickDeadzone
			verticalPressed = math.Abs(y) > math.Abs(x)
			horizontalPressed = !verticalPressed
		}
		interact = interact || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	switch {
	case verticalPressed:
		i.vertical = true
	case horizontalPressed:
		i.vertical = false
	}
	moveX, moveY, vertical := ResolveMovement(left, right, up, down, i.vertical)

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.MoveY = moveY
		input.Vertical = vertical
		input.Interact = interact
	})
}

// ResolveMovement reduces held directions to a single axis. When both axes
// are held, preferVertical picks which one moves.
func ResolveMovement(left, right, up, down, preferVertical bool) (moveX, moveY float64, vertical bool) {
	if left {
		moveX--
	}
	if right {
		moveX++
	}
	if up {
		moveY--
	}
	if down {
		moveY++
	}
	switch {
	case moveX != 0 && moveY != 0:
		if preferVertical {
			return 0, moveY, true
		}
		return moveX, 0, false
	case moveY != 0:
		return 0, moveY, true
	default:
		return moveX, 0, false
	}
}
