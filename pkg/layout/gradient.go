package layout

import "math"

// GradientLine computes the start and end points of a linear gradient
// axis across r. angleDeg follows the document convention: 0 runs left to
// right, 90 top to bottom (degrees clockwise, y-down). The axis passes
// through the rect center and is long enough that the first and last
// stops land exactly on the rect's extreme corners along the axis.
func GradientLine(r Rect, angleDeg float64) (x0, y0, x1, y1 float64) {
	rad := angleDeg * math.Pi / 180
	dx, dy := math.Cos(rad), math.Sin(rad)

	cx, cy := r.Center()
	half := (math.Abs(r.W*dx) + math.Abs(r.H*dy)) / 2

	return cx - dx*half, cy - dy*half, cx + dx*half, cy + dy*half
}

// GradientCircle computes the center and radius of a radial gradient in
// r. centerX and centerY are fractions of the rect; an unset center
// (both zero) means the middle. The radius reaches the farthest corner
// so the last stop covers the whole rect.
func GradientCircle(r Rect, centerX, centerY float64) (cx, cy, radius float64) {
	if centerX == 0 && centerY == 0 {
		centerX, centerY = 0.5, 0.5
	}
	cx = r.X + centerX*r.W
	cy = r.Y + centerY*r.H

	for _, corner := range [4][2]float64{
		{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X, r.Y + r.H}, {r.X + r.W, r.Y + r.H},
	} {
		d := math.Hypot(corner[0]-cx, corner[1]-cy)
		if d > radius {
			radius = d
		}
	}
	return cx, cy, radius
}

// StopPositions spreads n gradient stops evenly over [0,1].
func StopPositions(n int) []float64 {
	if n == 1 {
		return []float64{0}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	return out
}
