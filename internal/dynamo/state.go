package dynamo

// InitialPhi is the uniform coherence value of a freshly reset state.
const InitialPhi = 0.5

// FieldState holds every mutable array of a simulation plus its tick counter.
type FieldState struct {
	Psi, V, Phi, K Field
	TimeStep       int
}

// NewFieldState returns the reset state for g: psi, v and K zero, Phi at
// InitialPhi, counter at zero.
func NewFieldState(g *Grid) *FieldState {
	return &FieldState{
		Psi: g.NewField(),
		V:   g.NewField(),
		Phi: Full(g.Nx, g.Ny, InitialPhi),
		K:   g.NewField(),
	}
}

func (s *FieldState) Clone() *FieldState {
	return &FieldState{
		Psi:      s.Psi.Clone(),
		V:        s.V.Clone(),
		Phi:      s.Phi.Clone(),
		K:        s.K.Clone(),
		TimeStep: s.TimeStep,
	}
}

func (s *FieldState) IsValid() bool {
	return s.Psi.IsValid() && s.V.IsValid() && s.Phi.IsValid() && s.K.IsValid()
}

func (s *FieldState) Equal(o *FieldState) bool {
	return s.TimeStep == o.TimeStep &&
		s.Psi.Equal(o.Psi) && s.V.Equal(o.V) && s.Phi.Equal(o.Phi) && s.K.Equal(o.K)
}
