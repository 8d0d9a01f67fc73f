package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownVariant is returned for a projectile variant nobody configured
	ErrUnknownVariant = errors.New("unknown projectile variant")
	// ErrUnknownAbility is returned for an ability tag that cannot be dispatched
	ErrUnknownAbility = errors.New("unknown ability")
)

// Variant names a selectable projectile type
type Variant string

const (
	VariantStandard Variant = "standard"
	VariantSplit    Variant = "split"
	VariantBoost    Variant = "boost"
)

// Variants lists the built-in variants in selection order
var Variants = []Variant{VariantStandard, VariantSplit, VariantBoost}

// ParseVariant maps a variant name to a Variant
func ParseVariant(name string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Variants {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// Ability is the one-shot action a projectile may trigger in flight
type Ability string

const (
	AbilityNone  Ability = "none"
	AbilityBoost Ability = "boost"
	AbilitySplit Ability = "split"
)

func (a Ability) valid() bool {
	switch a {
	case AbilityNone, AbilityBoost, AbilitySplit:
		return true
	}
	return false
}

// VariantConfig holds the tunables of one projectile variant
type VariantConfig struct {
	Variant            Variant `yaml:"-"`
	Ability            Ability `yaml:"ability"`
	Mass               float64 `yaml:"mass"`
	Radius             float64 `yaml:"radius"`
	Elasticity         float64 `yaml:"elasticity"`
	Friction           float64 `yaml:"friction"`
	MaxImpulse         float64 `yaml:"max_impulse"`
	PowerMultiplier    float64 `yaml:"power_multiplier"`
	AbilityMultiplier  float64 `yaml:"ability_multiplier"`
	SplitSpreadDegrees float64 `yaml:"split_spread_degrees"`
}

// DefaultVariantConfig returns the stock parameters for a variant
func DefaultVariantConfig(v Variant) VariantConfig {
	cfg := VariantConfig{
		Variant:            v,
		Ability:            AbilityNone,
		Mass:               5,
		Radius:             12,
		Elasticity:         0.8,
		Friction:           1,
		MaxImpulse:         100,
		PowerMultiplier:    50,
		AbilityMultiplier:  2,
		SplitSpreadDegrees: 30,
	}
	switch v {
	case VariantBoost:
		cfg.Ability = AbilityBoost
	case VariantSplit:
		cfg.Ability = AbilitySplit
	}
	return cfg
}

// Validate reports the first parameter that cannot produce a projectile
func (c VariantConfig) Validate() error {
	if !c.Ability.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAbility, c.Ability)
	}
	if c.MaxImpulse < 0 {
		return fmt.Errorf("variant %s: max impulse must not be negative, got %v", c.Variant, c.MaxImpulse)
	}
	if c.PowerMultiplier < 0 {
		return fmt.Errorf("variant %s: power multiplier must not be negative, got %v", c.Variant, c.PowerMultiplier)
	}
	if c.Ability == AbilitySplit && (c.SplitSpreadDegrees < 0 || c.SplitSpreadDegrees > 180) {
		return fmt.Errorf("variant %s: split spread must be within [0, 180] degrees, got %v", c.Variant, c.SplitSpreadDegrees)
	}
	return c.bodySpec().Validate()
}

// fragment returns the parameters of a split fragment: same body, no ability
func (c VariantConfig) fragment() VariantConfig {
	f := c
	f.Variant = VariantStandard
	f.Ability = AbilityNone
	return f
}
