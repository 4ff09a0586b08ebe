package analytics

import (
	"math"
	"testing"
)

func TestNormalizePercent(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"fraction form", 0.8, 80},
		{"fraction zero", 0, 0},
		{"percent form", 45.5, 45.5},
		{"boundary 1.0 reads as 100%", 1.0, 100},
		{"negative clamps to 0", -0.5, 0},
		{"over 100 clamps", 250, 100},
		{"exactly 100", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePercent(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizePercent(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizePercentFractionEquivalence(t *testing.T) {
	// For r in (1, 100], r/100 must normalize to the same value as r.
	// r <= 1 is excluded: the heuristic cannot distinguish 1% from 100%.
	for r := 1.5; r <= 100; r += 0.5 {
		a := NormalizePercent(r)
		b := NormalizePercent(r / 100)
		if math.Abs(a-b) > 1e-9 {
			t.Fatalf("NormalizePercent(%v) = %v but NormalizePercent(%v) = %v", r, a, r/100, b)
		}
	}
}

func TestNormalizePercentRange(t *testing.T) {
	for _, r := range []float64{-1000, -1, -0.3, 0, 0.007, 0.5, 1, 1.01, 50, 99.99, 100, 101, 1e9} {
		got := NormalizePercent(r)
		if got < 0 || got > 100 {
			t.Errorf("NormalizePercent(%v) = %v, outside [0,100]", r, got)
		}
	}
}

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name     string
		num      float64
		den      float64
		expected float64
	}{
		{"normal division", 100, 10, 10},
		{"zero denominator", 50, 0, 0},
		{"negative denominator", 50, -3, 0},
		{"sub-unit denominator raised to 1", 50, 0.4, 50},
		{"denominator exactly 1", 50, 1, 50},
		{"zero numerator", 0, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeDivide(tt.num, tt.den)
			if got != tt.expected {
				t.Errorf("SafeDivide(%v, %v) = %v, want %v", tt.num, tt.den, got, tt.expected)
			}
		})
	}
}

func TestRounding(t *testing.T) {
	if got := Round2(10.016); got != 10.02 {
		t.Errorf("Round2(10.016) = %v, want 10.02", got)
	}
	if got := Round2(-40.001); got != -40.0 {
		t.Errorf("Round2(-40.001) = %v, want -40.0", got)
	}
	if got := Round0(9.5); got != 10 {
		t.Errorf("Round0(9.5) = %v, want 10", got)
	}
	if got := Round0(9.4); got != 9 {
		t.Errorf("Round0(9.4) = %v, want 9", got)
	}
}
