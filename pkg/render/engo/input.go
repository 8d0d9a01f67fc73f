// pkg/render/engo/input.go
package engo

import (
	"context"
	"fmt"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/input"
	"github.com/opd-ai/go-slingshot/pkg/logging"
)

const quitButton = "quit"

var engoKeys = map[string]engo.Key{
	"a": engo.KeyA, "b": engo.KeyB, "c": engo.KeyC, "d": engo.KeyD,
	"e": engo.KeyE, "f": engo.KeyF, "g": engo.KeyG, "h": engo.KeyH,
	"i": engo.KeyI, "j": engo.KeyJ, "k": engo.KeyK, "l": engo.KeyL,
	"m": engo.KeyM, "n": engo.KeyN, "o": engo.KeyO, "p": engo.KeyP,
	"q": engo.KeyQ, "r": engo.KeyR, "s": engo.KeyS, "t": engo.KeyT,
	"u": engo.KeyU, "v": engo.KeyV, "w": engo.KeyW, "x": engo.KeyX,
	"y": engo.KeyY, "z": engo.KeyZ,
	"0": engo.KeyZero, "1": engo.KeyOne, "2": engo.KeyTwo, "3": engo.KeyThree,
	"4": engo.KeyFour, "5": engo.KeyFive, "6": engo.KeySix, "7": engo.KeySeven,
	"8": engo.KeyEight, "9": engo.KeyNine,
	"space": engo.KeySpace,
	"enter": engo.KeyEnter,
	"tab":   engo.KeyTab,
}

// KeyFor maps a key binding name to an engo key
func KeyFor(name string) (engo.Key, bool) {
	k, ok := engoKeys[input.NormalizeKey(name)]
	return k, ok
}

// InputSystem feeds engo mouse and keyboard state to the controller
type InputSystem struct {
	controller *input.Controller
	camera     *Camera
	logger     *logging.Logger

	keys     []string
	leftDown bool
}

// NewInputSystem creates a new input system
func NewInputSystem(controller *input.Controller, camera *Camera, logger *logging.Logger) *InputSystem {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &InputSystem{
		controller: controller,
		camera:     camera,
		logger:     logger.With("component", "engo_input"),
	}
}

// BindingNames returns the normalized names of the configured keys
func BindingNames(keys config.KeyBindings) []string {
	names := []string{keys.Standard, keys.Split, keys.Boost, keys.Ability}
	for i, n := range names {
		names[i] = input.NormalizeKey(n)
	}
	return names
}

// SetupInputBindings registers the configured keys and Escape with engo.
// Every binding must name a key engo knows.
func (is *InputSystem) SetupInputBindings(keys config.KeyBindings) error {
	names := BindingNames(keys)
	for _, name := range names {
		k, ok := KeyFor(name)
		if !ok {
			return fmt.Errorf("%w: no engo key for %q", config.ErrInvalidConfig, name)
		}
		engo.Input.RegisterButton(name, k)
	}
	engo.Input.RegisterButton(quitButton, engo.KeyEscape)
	is.keys = names
	return nil
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update forwards this frame's input to the controller
func (is *InputSystem) Update(dt float32) {
	if engo.Input.Button(quitButton).JustPressed() {
		engo.Exit()
		return
	}

	mouse := engo.Input.Mouse
	events := is.translateMouse(mouse.Action, mouse.Button, engo.Point{X: mouse.X, Y: mouse.Y})
	for _, name := range is.keys {
		if engo.Input.Button(name).JustPressed() {
			events = append(events, input.KeyDown{Key: name})
		}
	}

	for _, ev := range events {
		if err := is.controller.Handle(ev); err != nil {
			is.logger.Warn(context.Background(), "input rejected", "error", err.Error())
		}
	}
}

// translateMouse turns engo's per-frame mouse action into controller events
func (is *InputSystem) translateMouse(action engo.Action, button engo.MouseButton, at engo.Point) []input.Event {
	p := is.camera.ScreenToWorld(at)

	switch action {
	case engo.Press:
		switch button {
		case engo.MouseButtonLeft:
			is.leftDown = true
			return []input.Event{input.PointerDown{X: p.X, Y: p.Y, Button: input.ButtonLeft}}
		case engo.MouseButtonRight:
			return []input.Event{input.PointerDown{X: p.X, Y: p.Y, Button: input.ButtonRight}}
		}
	case engo.Release:
		switch button {
		case engo.MouseButtonLeft:
			if !is.leftDown {
				return nil
			}
			is.leftDown = false
			return []input.Event{input.PointerUp{X: p.X, Y: p.Y, Button: input.ButtonLeft}}
		case engo.MouseButtonRight:
			return []input.Event{input.PointerUp{X: p.X, Y: p.Y, Button: input.ButtonRight}}
		}
	case engo.Move:
		if is.leftDown {
			return []input.Event{input.PointerDrag{X: p.X, Y: p.Y}}
		}
	}
	return nil
}
