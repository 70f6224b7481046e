// Package viz is the terminal front end of the mesh simulator.
//
// [Model] is a Bubble Tea program that steps a [sim.Session] once per frame
// and draws the selected field either as a projected wireframe surface on a
// braille [Canvas] or as a shaded heatmap.
//
// # Key Bindings
//
//	1-5   - Select entity mode
//	V/Tab - Cycle view (tension, curvature, coherence)
//	Space - Pause/Resume simulation
//	R     - Reset the current entity
//	X/Y/Z - Rotate camera, +/- zoom
//	M     - Toggle surface and heatmap
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// G starts capturing canvas frames; pressing it again writes them to
// [GIFPath].
package viz
