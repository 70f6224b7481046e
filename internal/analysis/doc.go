// Package analysis provides diagnostics for simulated fields.
//
//   - [Spectrum]: power spectrum of a field row via FFT
//   - [LocalMaxima]: peaks of a field on the periodic lattice
//   - [Trace]: (psi, v) trajectory of one sample, usable as a session observer
//   - [PhasePortraitToASCII]: terminal plot of a sample trace
//
// # Probing a wave
//
//	p := analysis.NewTrace(g.Ny/2, g.Nx/2+5)
//	session.AddObserver(p)
//	session.Run(400)
//	fmt.Print(analysis.PhasePortraitToASCII(p.Points, 60, 20))
package analysis
