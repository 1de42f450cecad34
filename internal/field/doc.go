// Package field implements the connected-points background animation.
//
// A [Field] owns exactly [PointCount] points on a resizable surface. Each call
// to [Field.Frame] advances every point, draws it, pulls it weakly toward the
// pointer and links it to nearby higher-indexed points:
//
//   - [Surface]: the 2D drawing target (terminal canvas, raylib texture, ebiten
//     image, SVG recorder)
//   - [Scheduler]: the host's frame-presentation primitive
//   - [Animator]: runs a frame, then asks the scheduler for the next one
//
// # Link cap
//
// Only pairs (i, j) with j > i are examined, once per frame. A point's link
// counter is reset during its own update, so links drawn to it earlier in the
// frame by lower indices count against its cap. Lower indices saturate first.
package field
