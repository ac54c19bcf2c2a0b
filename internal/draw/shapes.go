package draw

import "math"

// DrawShape draws a polygon given in unit coordinates, scaled by (sx, sy),
// rotated by rot radians and moved to at. All values are logical.
func (c *Canvas) DrawShape(shape []Point, at Point, sx, sy, rot float64, filled bool) {
	if len(shape) < 3 {
		return
	}
	sin, cos := math.Sincos(rot)
	pts := c.BorrowPoints(len(shape))
	for i, p := range shape {
		x, y := p.X*sx, p.Y*sy
		pts[i] = Point{
			X: at.X + x*cos - y*sin,
			Y: at.Y + x*sin + y*cos,
		}
	}
	c.DrawPolygon(pts, filled)
}

// DrawCircle draws a circle of radius r (logical x units) around center.
// Vertical radius is scaled by aspect to compensate for non-square cells.
func (c *Canvas) DrawCircle(center Point, r, aspect float64, filled bool) {
	if r <= 0 {
		return
	}
	segments := max(8, min(32, int(r*4)))
	pts := c.BorrowPoints(segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Point{
			X: center.X + math.Cos(a)*r,
			Y: center.Y + math.Sin(a)*r*aspect,
		}
	}
	if filled {
		c.fillPolygon(pts)
	}
	for i := range pts {
		c.DrawLine(pts[i], pts[(i+1)%len(pts)])
	}
}

// FillRect fills the axis-aligned rectangle with top-left (x, y) and the
// given logical size.
func (c *Canvas) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	x0 := max(int(math.Round(x*c.scaleX)), 0)
	y0 := max(int(math.Round(y*c.scaleY)), 0)
	x1 := min(int(math.Round((x+w)*c.scaleX)), c.termWidth)
	y1 := min(int(math.Round((y+h)*c.scaleY)), c.subPixelHeight)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py)
		}
	}
}
