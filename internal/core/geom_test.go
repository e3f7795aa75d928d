package core

import (
	"math"
	"testing"
)

func TestDirDelta(t *testing.T) {
	tests := []struct {
		dir    Dir
		dx, dy int
	}{
		{DirNone, 0, 0},
		{DirRight, 1, 0},
		{DirUp, 0, -1},
		{DirLeft, -1, 0},
		{DirDown, 0, 1},
		{Dir(42), 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			dx, dy := tc.dir.Delta()
			if dx != tc.dx || dy != tc.dy {
				t.Errorf("Delta() = (%d, %d), expected (%d, %d)", dx, dy, tc.dx, tc.dy)
			}
		})
	}
}

func TestDirOpposite(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("Opposite twice of %v should be identity", d)
		}
		a, b := d.Delta()
		c, e := d.Opposite().Delta()
		if a != -c || b != -e {
			t.Errorf("Opposite(%v) delta mismatch", d)
		}
	}
	if DirNone.Opposite() != DirNone {
		t.Error("Opposite(None) should be None")
	}
}

func TestCoordStep(t *testing.T) {
	c := C(3, 4)

	if got := c.Step(DirRight); got != C(4, 4) {
		t.Errorf("Step(Right) = %v", got)
	}
	if got := c.Step(DirUp); got != C(3, 3) {
		t.Errorf("Step(Up) = %v", got)
	}
	if got := c.Step(DirNone); got != c {
		t.Errorf("Step(None) = %v", got)
	}
	if got := c.Step(DirDown).Sub(c); got != C(0, 1) {
		t.Errorf("Sub = %v", got)
	}
}

func TestVecNormalize(t *testing.T) {
	v := Vec{X: 3, Y: 4}.Normalize(false)
	if math.Abs(v.Length()-1) > 1e-9 {
		t.Errorf("Normalize length = %f, expected 1", v.Length())
	}

	if z := (Vec{}).Normalize(false); z != (Vec{}) {
		t.Errorf("Normalize(zero) = %v, expected zero", z)
	}
	if u := (Vec{}).Normalize(true); u != (Vec{X: 1}) {
		t.Errorf("Normalize(zero, force) = %v, expected {1 0}", u)
	}
}

func TestApproachValue(t *testing.T) {
	tests := []struct {
		cur, target, step, expected float64
	}{
		{0, 4, 1, 1},
		{3.5, 4, 1, 4},
		{4, 0, 1.5, 2.5},
		{0.5, 0, 1, 0},
		{2, 2, 1, 2},
	}

	for _, tc := range tests {
		if got := ApproachValue(tc.cur, tc.target, tc.step); got != tc.expected {
			t.Errorf("ApproachValue(%f, %f, %f) = %f, expected %f", tc.cur, tc.target, tc.step, got, tc.expected)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		c        Coord
		expected bool
	}{
		{"inside", C(15, 15), true},
		{"top-left corner", C(10, 10), true},
		{"bottom-right edge (exclusive)", C(30, 25), false},
		{"outside left", C(5, 15), false},
		{"outside bottom", C(15, 30), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.c); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.c, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if ClampF(1.5, 0, 1) != 1 {
		t.Error("ClampF(1.5, 0, 1) should be 1")
	}
}
