// Package viewport implements the pan and zoom state of the family tree viewer.
//
// A [Controller] owns a uniform zoom scale and a pan offset. Input handlers
// translate pointer and touch events into updates of that state, and
// [Controller.Transform] exposes the result as one translate-then-scale
// operation applied around the container center.
//
// # Gestures
//
//   - Discrete zoom: [Controller.ZoomIn] and [Controller.ZoomOut] step the
//     scale by [ZoomStep], clamped to [MinScale, MaxScale].
//   - Pointer drag: a primary-button press anchors the drag, moves update
//     the offset, release or leave ends it.
//   - Touch pan: the same arithmetic on a single touch point.
//   - Pinch: with two touches, each move multiplies the scale by the ratio of
//     the current to the previous finger distance. A pinch never pans.
//
// Out-of-range zoom requests are clamped, never rejected. Nothing here can
// fail.
//
// A Controller belongs to a single event loop and is not safe for concurrent
// use.
package viewport
