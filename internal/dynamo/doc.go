// Package dynamo provides the core data model for the mesh field simulator.
//
// The package defines the fundamental types shared by the integrators,
// generators and frame drivers:
//
//   - [Grid]: fixed 2D sample lattice with derived spacing
//   - [Field]: row-major scalar array shaped like a [Grid]
//   - [FieldState]: the psi, v, Phi and K fields plus the tick counter
//   - [EntityMode] and [ViewMode]: what drives the fields and what is shown
//
// # Example
//
//	g := dynamo.NewGrid(100, 100, 2*math.Pi, 2*math.Pi)
//	fs := dynamo.NewFieldState(g)
//	fs.Psi.Set(g.Ny/2, g.Nx/2, 1.0)
//
// # Thread Safety
//
// None of the types in this package are safe for concurrent mutation. A
// FieldState has exactly one writer: the session that owns it.
package dynamo
