// Package viz is the terminal host for the link field.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: field canvas, counter button and frame metrics side by side
//   - [Canvas]: Braille-based surface with per-dot intensity so the trail
//     overlay fades old strokes
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Enter - Submit (increments the counter)
//	Space - Pause/Resume animation
//	C     - Clear trails
//	T     - Cycle color themes
//	?     - Show help in the side panel
//	Q     - Quit
//
// Mouse motion over the canvas attracts nearby points; clicking the submit
// button in the side panel increments the counter.
package viz
