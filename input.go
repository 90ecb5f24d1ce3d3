package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
)

const mouseSensitivity = 0.0035

// Input holds current input state for movement, look, and the grapple.
type Input struct {
	// MoveX is -1 for left, +1 for right; MoveY is forward/back.
	MoveX float64
	MoveY float64
	// LookX/LookY are this frame's look deltas in radians.
	LookX float64
	LookY float64
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
	// CrouchHeld is true while the crouch key is held.
	CrouchHeld bool
	// GrappleHeld is true while the grapple button is held.
	GrappleHeld bool
	// SwitchPressed is true on the frame the world-shift key is pressed.
	SwitchPressed bool
	// PausePressed is true on the frame Escape is pressed.
	PausePressed bool

	prevMouseX int
	prevMouseY int
	haveMouse  bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard and mouse.
func (i *Input) Update() {
	var moveX, moveY float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		moveY += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		moveY -= 1
	}
	i.MoveX = moveX
	i.MoveY = moveY

	mx, my := ebiten.CursorPosition()
	if i.haveMouse {
		i.LookX = float64(mx-i.prevMouseX) * mouseSensitivity
		i.LookY = float64(my-i.prevMouseY) * mouseSensitivity
	} else {
		i.LookX, i.LookY = 0, 0
		i.haveMouse = true
	}
	i.prevMouseX, i.prevMouseY = mx, my

	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	i.CrouchHeld = ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyC)
	i.GrappleHeld = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		ebiten.IsKeyPressed(ebiten.KeyE)
	i.SwitchPressed = inpututil.IsKeyJustPressed(ebiten.KeyQ)
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// InputSystem mirrors polled input into the player's InputState and
// turns the world-shift key into a switch request.
type InputSystem struct {
	Input  *Input
	Entity ecs.Entity
}

func NewInputSystem(input *Input, entity ecs.Entity) *InputSystem {
	return &InputSystem{Input: input, Entity: entity}
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil || s.Input == nil || !ecs.IsAlive(w, s.Entity) {
		return
	}
	st, ok := ecs.Get(w, s.Entity, component.InputStateComponent)
	if !ok {
		st = &component.InputState{}
		_ = ecs.Add(w, s.Entity, component.InputStateComponent, st)
	}
	st.MoveX = s.Input.MoveX
	st.MoveY = s.Input.MoveY
	st.LookX = s.Input.LookX
	st.LookY = s.Input.LookY
	st.JumpPressed = s.Input.JumpPressed
	st.CrouchHeld = s.Input.CrouchHeld
	st.GrappleHeld = s.Input.GrappleHeld
	st.SwitchPressed = s.Input.SwitchPressed

	if s.Input.SwitchPressed {
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.ModeSwitchRequestComponent, &component.ModeSwitchRequest{})
	}
}
