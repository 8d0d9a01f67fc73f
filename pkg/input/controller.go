// Package input maps raw pointer and key events from any frontend onto
// game session operations.
package input

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/engine"
	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/geometry"
	"github.com/opd-ai/go-slingshot/pkg/logging"
)

// Button identifies a pointer button
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Event is any input the controller understands
type Event interface {
	isEvent()
}

// PointerDown is a button press at playfield coordinates
type PointerDown struct {
	X, Y   float64
	Button Button
}

// PointerDrag is pointer motion with the launch button held
type PointerDrag struct {
	X, Y float64
}

// PointerUp is a button release at playfield coordinates
type PointerUp struct {
	X, Y   float64
	Button Button
}

// KeyDown is a key press, named the way KeyBindings names keys
type KeyDown struct {
	Key string
}

// Tick is a frame with its delta time in seconds
type Tick struct {
	DT float64
}

func (PointerDown) isEvent() {}
func (PointerDrag) isEvent() {}
func (PointerUp) isEvent()   {}
func (KeyDown) isEvent()     {}
func (Tick) isEvent()        {}

// Action is what a key is bound to
type Action int

const (
	ActionNone Action = iota
	ActionSelectStandard
	ActionSelectSplit
	ActionSelectBoost
	ActionAbility
)

// Session is the subset of the game session the controller drives
type Session interface {
	OnLaunchGestureStart(p geometry.Point2D) bool
	OnLaunchGestureDrag(p geometry.Point2D)
	OnLaunchGestureRelease(p geometry.Point2D) (*entity.Projectile, error)
	OnAbilityTrigger() bool
	OnVariantSelect(v entity.Variant) error
	Tick(dt float64)
}

// Controller translates events into session calls
type Controller struct {
	session  Session
	bindings map[string]Action
	logger   *logging.Logger
}

// NewController builds a controller with the given key bindings
func NewController(session Session, keys config.KeyBindings, logger *logging.Logger) (*Controller, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	c := &Controller{
		session:  session,
		bindings: make(map[string]Action),
		logger:   logger.With("component", "input"),
	}
	for key, action := range map[string]Action{
		keys.Standard: ActionSelectStandard,
		keys.Split:    ActionSelectSplit,
		keys.Boost:    ActionSelectBoost,
	} {
		c.bindings[NormalizeKey(key)] = action
	}
	ability := NormalizeKey(keys.Ability)
	if _, dup := c.bindings[ability]; dup || len(c.bindings) != 3 {
		return nil, fmt.Errorf("%w: key bindings must be distinct", config.ErrInvalidConfig)
	}
	c.bindings[ability] = ActionAbility
	return c, nil
}

// NormalizeKey lowercases a key name and maps a literal space to "space"
func NormalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	return strings.ToLower(strings.TrimSpace(key))
}

// ActionFor returns the action bound to a key
func (c *Controller) ActionFor(key string) Action {
	return c.bindings[NormalizeKey(key)]
}

// Handle applies one event to the session. Only launch failures other
// than a release without a gesture are reported.
func (c *Controller) Handle(ev Event) error {
	switch e := ev.(type) {
	case PointerDown:
		switch e.Button {
		case ButtonLeft:
			c.session.OnLaunchGestureStart(geometry.Point2D{X: e.X, Y: e.Y})
		case ButtonRight:
			c.session.OnAbilityTrigger()
		}
	case PointerDrag:
		c.session.OnLaunchGestureDrag(geometry.Point2D{X: e.X, Y: e.Y})
	case PointerUp:
		if e.Button != ButtonLeft {
			return nil
		}
		_, err := c.session.OnLaunchGestureRelease(geometry.Point2D{X: e.X, Y: e.Y})
		if err != nil && !errors.Is(err, engine.ErrNotAiming) {
			c.logger.Warn(context.Background(), "launch failed", "error", err.Error())
			return err
		}
	case KeyDown:
		return c.handleKey(e.Key)
	case Tick:
		c.session.Tick(e.DT)
	}
	return nil
}

func (c *Controller) handleKey(key string) error {
	switch c.ActionFor(key) {
	case ActionSelectStandard:
		return c.session.OnVariantSelect(entity.VariantStandard)
	case ActionSelectSplit:
		return c.session.OnVariantSelect(entity.VariantSplit)
	case ActionSelectBoost:
		return c.session.OnVariantSelect(entity.VariantBoost)
	case ActionAbility:
		c.session.OnAbilityTrigger()
	}
	return nil
}
