package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/physics"
)

type fakeEntity struct {
	entity.BaseEntity
	h    physics.Handle
	kind entity.Kind
}

func (f *fakeEntity) Handle() physics.Handle { return f.h }
func (f *fakeEntity) Kind() entity.Kind      { return f.kind }
func (f *fakeEntity) RenderState() entity.RenderState {
	return entity.RenderState{ID: f.ID, Kind: f.kind}
}

type fakeTracker struct {
	owners    map[physics.Handle]entity.Entity
	destroyed []entity.Entity
	reasons   []string
}

func newFakeTracker(entities ...*fakeEntity) *fakeTracker {
	ft := &fakeTracker{owners: map[physics.Handle]entity.Entity{}}
	for _, e := range entities {
		ft.owners[e.h] = e
	}
	return ft
}

func (ft *fakeTracker) Owner(h physics.Handle) (entity.Entity, bool) {
	e, ok := ft.owners[h]
	return e, ok
}

func (ft *fakeTracker) Destroy(e entity.Entity, reason string) {
	delete(ft.owners, e.Handle())
	ft.destroyed = append(ft.destroyed, e)
	ft.reasons = append(ft.reasons, reason)
}

func TestNewResolver(t *testing.T) {
	r, err := NewResolver(100, 1200)
	require.NoError(t, err)
	assert.Equal(t, 100.0, r.LowImpulse)
	assert.Equal(t, 1200.0, r.KillImpulse)

	_, err = NewResolver(500, 100)
	assert.Error(t, err)
	_, err = NewResolver(-1, 100)
	assert.Error(t, err)
}

func TestResolver_Classify(t *testing.T) {
	r := &Resolver{LowImpulse: 100, KillImpulse: 1200}
	tests := []struct {
		name    string
		impulse float64
		want    Outcome
	}{
		{"zero", 0, Resting},
		{"below low", 50, Resting},
		{"at low", 100, DeadZone},
		{"just below kill", 1199, DeadZone},
		{"at kill", 1200, Kill},
		{"far above kill", 1e6, Kill},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Classify(tt.impulse))
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name          string
		contact       physics.Contact
		wantDestroyed int
	}{
		{"kill destroys both owners", physics.Contact{A: 1, B: 2, Impulse: 1200}, 2},
		{"just below kill is harmless", physics.Contact{A: 1, B: 2, Impulse: 1199}, 0},
		{"low impulse is a no-op", physics.Contact{A: 1, B: 2, Impulse: 50}, 0},
		{"floor is skipped", physics.Contact{A: physics.FloorHandle, B: 2, Impulse: 5000}, 1},
		{"untracked handle is skipped", physics.Contact{A: 1, B: 99, Impulse: 5000}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Resolver{LowImpulse: 100, KillImpulse: 1200}
			a := &fakeEntity{h: 1, kind: entity.KindProjectile}
			b := &fakeEntity{h: 2, kind: entity.KindTarget}
			tracker := newFakeTracker(a, b)

			got := r.Resolve(tt.contact, tracker)
			assert.Equal(t, tt.wantDestroyed, got)
			assert.Len(t, tracker.destroyed, tt.wantDestroyed)
			for _, reason := range tracker.reasons {
				assert.Equal(t, ReasonImpact, reason)
			}
		})
	}
}

func TestResolver_ContactsResolvedIndependently(t *testing.T) {
	r := &Resolver{LowImpulse: 100, KillImpulse: 1200}
	a := &fakeEntity{h: 1, kind: entity.KindProjectile}
	b := &fakeEntity{h: 2, kind: entity.KindStructure}
	c := &fakeEntity{h: 3, kind: entity.KindTarget}
	tracker := newFakeTracker(a, b, c)

	// a second contact naming an already destroyed entity destroys only the survivor
	contacts := []physics.Contact{
		{A: 1, B: 2, Impulse: 2000},
		{A: 2, B: 3, Impulse: 2000},
	}
	total := 0
	for _, contact := range contacts {
		total += r.Resolve(contact, tracker)
	}

	assert.Equal(t, 3, total)
	assert.Empty(t, tracker.owners)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "resting", Resting.String())
	assert.Equal(t, "dead_zone", DeadZone.String())
	assert.Equal(t, "kill", Kill.String())
	assert.Equal(t, "outcome(9)", Outcome(9).String())
}
