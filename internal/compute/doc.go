// Package compute provides backends for the stencil work of the wave
// integrator.
//
// The CPU backend splits the grid into row bands and fills them on
// separate goroutines:
//
//	w := physics.NewWave()
//	w.Laplacian = compute.GetBackend().Laplacian
//
// Small grids run serially since the goroutine overhead outweighs the
// stencil.
package compute
