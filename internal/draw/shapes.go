package draw

// ShipShape returns the outline of the player's craft in the box (x, y, w, h):
// a chevron whose tail is notched upwards in the middle.
func (c *Canvas) ShipShape(x, y, w, h float64) []Point {
	notch := min(15, h/4)
	pts := c.BorrowPoints(4)
	pts[0] = Point{X: x + w/2, Y: y}
	pts[1] = Point{X: x, Y: y + h}
	pts[2] = Point{X: x + w/2, Y: y + h - notch}
	pts[3] = Point{X: x + w, Y: y + h}
	return pts
}

// AdversaryShape returns a downward pointing triangle filling the box (x, y, w, h).
func (c *Canvas) AdversaryShape(x, y, w, h float64) []Point {
	pts := c.BorrowPoints(3)
	pts[0] = Point{X: x, Y: y}
	pts[1] = Point{X: x + w, Y: y}
	pts[2] = Point{X: x + w/2, Y: y + h}
	return pts
}
