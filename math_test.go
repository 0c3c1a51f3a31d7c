package orrery

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}
	for _, tc := range cases {
		if got := clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tc := range cases {
		if got := normalizeAngle(tc.in); !scalar.EqualWithinAbs(got, tc.want, 1e-12) {
			t.Errorf("normalizeAngle(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}
