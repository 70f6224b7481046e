// Package physics provides the field-update engine for the mesh simulator.
//
// Two kinds of update rule live here:
//
//   - [Wave]: an explicit integrator for a wave equation whose local speed is
//     modulated by the Phi field, on a toroidal domain ([Laplacian])
//   - [Generator]: scripted entity motions that overwrite psi, Phi and K
//     from the tick index alone ([Particle], [HiggsDecay], [PhotonTrail],
//     [EntangledPair])
//
// # Determinism
//
// Every rule is a deterministic function of the grid, the tick index and (for
// the wave) the previous state. Running the same constants from the same seed
// reproduces the same trajectory.
//
//	g := dynamo.NewGrid(100, 100, 2*math.Pi, 2*math.Pi)
//	fs := dynamo.NewFieldState(g)
//	fs.Psi.Set(g.Ny/2, g.Nx/2, 1)
//	w := physics.NewWave()
//	for i := 0; i < 100; i++ {
//	    w.Step(g, fs)
//	}
package physics
