package viewport

// Button identifies a pointer button. Only ButtonPrimary starts a drag.
type Button int

// Pointer buttons, numbered like DOM MouseEvent.button.
const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// PointerDown anchors a drag at p. Presses of any other button than the
// primary one are ignored.
func (c *Controller) PointerDown(b Button, p Point) {
	if b != ButtonPrimary {
		return
	}
	c.startDrag(p)
}

// PointerMove pans to follow p while a drag is active.
func (c *Controller) PointerMove(p Point) {
	if !c.dragging {
		return
	}
	c.offset = p.Sub(c.dragStart)
}

// PointerUp ends the drag.
func (c *Controller) PointerUp() {
	c.dragging = false
}

// PointerLeave ends the drag when the pointer leaves the tracking surface.
func (c *Controller) PointerLeave() {
	c.dragging = false
}

// TouchStart handles a touch-start event; touches are all points currently
// on the surface. One touch anchors a pan. Two touches end any pan and record
// the initial pinch distance.
func (c *Controller) TouchStart(touches []Point) {
	switch len(touches) {
	case 1:
		c.startDrag(touches[0])
	case 2:
		c.dragging = false
		c.pinchDist = touches[0].Dist(touches[1])
	}
}

// TouchMove handles a touch-move event. A single touch pans while a drag is
// active; two touches pinch. Any other count is ignored.
func (c *Controller) TouchMove(touches []Point) {
	switch len(touches) {
	case 1:
		if c.dragging {
			c.offset = touches[0].Sub(c.dragStart)
		}
	case 2:
		c.pinch(touches[0].Dist(touches[1]))
	}
}

// TouchEnd handles a touch-end event; remaining are the touches still on the
// surface. Any lifted finger ends the pan, and the pinch baseline is dropped
// once fewer than two touches remain.
func (c *Controller) TouchEnd(remaining []Point) {
	c.dragging = false
	if len(remaining) < 2 {
		c.pinchDist = 0
	}
}

// pinch applies one pinch frame. The first frame after the baseline was
// cleared (or recorded as zero) only stores the distance.
func (c *Controller) pinch(dist float64) {
	if c.pinchDist > 0 {
		c.scale = clamp(c.scale * dist / c.pinchDist)
	}
	c.pinchDist = dist
}

func (c *Controller) startDrag(p Point) {
	c.dragging = true
	c.dragStart = p.Sub(c.offset)
}
