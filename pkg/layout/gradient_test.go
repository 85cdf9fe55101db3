package layout

import "testing"

func TestGradientLineAxes(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 200}

	// 0 degrees runs left to right through the center.
	x0, y0, x1, y1 := GradientLine(r, 0)
	if !almostEqual(x0, 0) || !almostEqual(x1, 100) {
		t.Errorf("0deg x span = %g..%g, want 0..100", x0, x1)
	}
	if !almostEqual(y0, 100) || !almostEqual(y1, 100) {
		t.Errorf("0deg y = %g..%g, want centered at 100", y0, y1)
	}

	// 90 degrees runs top to bottom.
	x0, y0, x1, y1 = GradientLine(r, 90)
	if !almostEqual(y0, 0) || !almostEqual(y1, 200) {
		t.Errorf("90deg y span = %g..%g, want 0..200", y0, y1)
	}
	if !almostEqual(x0, 50) || !almostEqual(x1, 50) {
		t.Errorf("90deg x = %g..%g, want centered at 50", x0, x1)
	}

	// 180 degrees reverses the horizontal axis.
	x0, _, x1, _ = GradientLine(r, 180)
	if !almostEqual(x0, 100) || !almostEqual(x1, 0) {
		t.Errorf("180deg x span = %g..%g, want 100..0", x0, x1)
	}
}

func TestGradientCircle(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 100}

	// Unset center means the middle of the rect.
	cx, cy, radius := GradientCircle(r, 0, 0)
	if !almostEqual(cx, 50) || !almostEqual(cy, 50) {
		t.Errorf("default center = (%g,%g), want (50,50)", cx, cy)
	}
	// Radius reaches the corner: 50*sqrt(2).
	if radius < 70.7 || radius > 70.8 {
		t.Errorf("radius = %g, want ~70.71", radius)
	}

	// An offset center reaches the far corner.
	cx, cy, radius = GradientCircle(r, 0.25, 0.25)
	if !almostEqual(cx, 25) || !almostEqual(cy, 25) {
		t.Errorf("center = (%g,%g), want (25,25)", cx, cy)
	}
	if radius < 106 || radius > 106.1 {
		t.Errorf("radius = %g, want ~106.07 (distance to far corner)", radius)
	}
}

func TestStopPositions(t *testing.T) {
	got := StopPositions(3)
	want := []float64{0, 0.5, 1}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("StopPositions(3) = %v, want %v", got, want)
		}
	}
	if p := StopPositions(2); !almostEqual(p[0], 0) || !almostEqual(p[1], 1) {
		t.Errorf("StopPositions(2) = %v", p)
	}
}
