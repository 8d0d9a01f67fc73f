package entity

// Renderer handles rendering game entities
type Renderer interface {
	RenderProjectile(state RenderState)
	RenderTarget(state RenderState)
	RenderStructure(state RenderState)
	Clear()
	Present()
}

// Draw dispatches a render state to the renderer method for its kind.
// Unknown kinds are skipped.
func Draw(r Renderer, state RenderState) {
	switch state.Kind {
	case KindProjectile:
		r.RenderProjectile(state)
	case KindTarget:
		r.RenderTarget(state)
	case KindStructure:
		r.RenderStructure(state)
	}
}

// DrawFrame clears the renderer, draws every state and presents the frame
func DrawFrame(r Renderer, states []RenderState) {
	r.Clear()
	for _, s := range states {
		Draw(r, s)
	}
	r.Present()
}

func (p *Projectile) Render(r Renderer) {
	r.RenderProjectile(p.RenderState())
}

func (t *Target) Render(r Renderer) {
	r.RenderTarget(t.RenderState())
}

func (s *StructurePiece) Render(r Renderer) {
	r.RenderStructure(s.RenderState())
}
