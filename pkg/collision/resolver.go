// Package collision decides, from post-solve impulse magnitudes, which
// entities a contact destroys.
package collision

import (
	"fmt"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

// Outcome classifies a contact impulse
type Outcome int

const (
	// Resting contacts are below the low threshold
	Resting Outcome = iota
	// DeadZone contacts are noticeable but harmless
	DeadZone
	// Kill contacts destroy every owned participant
	Kill
)

func (o Outcome) String() string {
	switch o {
	case Resting:
		return "resting"
	case DeadZone:
		return "dead_zone"
	case Kill:
		return "kill"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ReasonImpact is the destruction reason reported for Kill contacts
const ReasonImpact = "impact"

// Tracker maps physics handles to live entities and removes them
type Tracker interface {
	Owner(h physics.Handle) (entity.Entity, bool)
	Destroy(e entity.Entity, reason string)
}

// Resolver holds the impulse thresholds
type Resolver struct {
	LowImpulse  float64
	KillImpulse float64
}

// NewResolver validates and returns a resolver
func NewResolver(low, kill float64) (*Resolver, error) {
	if low < 0 || kill < low {
		return nil, fmt.Errorf("invalid impulse thresholds: low %v, kill %v", low, kill)
	}
	return &Resolver{LowImpulse: low, KillImpulse: kill}, nil
}

// Classify maps an impulse magnitude to an Outcome. The kill threshold is
// inclusive.
func (r *Resolver) Classify(impulse float64) Outcome {
	switch {
	case impulse >= r.KillImpulse:
		return Kill
	case impulse >= r.LowImpulse:
		return DeadZone
	default:
		return Resting
	}
}

// Resolve destroys every tracked owner of a Kill contact and returns how
// many entities it destroyed. The floor has no owner and is skipped.
func (r *Resolver) Resolve(c physics.Contact, tracker Tracker) int {
	if r.Classify(c.Impulse) != Kill {
		return 0
	}

	destroyed := 0
	for _, h := range [2]physics.Handle{c.A, c.B} {
		if h == physics.FloorHandle {
			continue
		}
		e, ok := tracker.Owner(h)
		if !ok {
			continue
		}
		tracker.Destroy(e, ReasonImpact)
		destroyed++
		if c.A == c.B {
			break
		}
	}
	return destroyed
}
