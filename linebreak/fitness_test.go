package linebreak

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		r    float64
		want Fitness
	}{
		{-1, Tight},
		{-0.51, Tight},
		{-0.5, Normal},
		{0, Normal},
		{0.5, Normal},
		{0.51, Loose},
		{1, Loose},
		{1.01, VeryLoose},
		{math.Inf(1), VeryLoose},
	}
	for _, tt := range tests {
		if got := Classify(tt.r); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestBadness(t *testing.T) {
	tests := []struct {
		r    float64
		want float64
	}{
		{0, 0},
		{1, 100},
		{-1, 100},
		{0.5, 12.5},
		{2, 800},
		{math.Inf(1), infBad},
		{math.Inf(-1), infBad},
	}
	for _, tt := range tests {
		if got := Badness(tt.r); got != tt.want {
			t.Errorf("Badness(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestFitnessString(t *testing.T) {
	tests := []struct {
		f    Fitness
		want string
	}{
		{Tight, "Tight"},
		{Normal, "Normal"},
		{Loose, "Loose"},
		{VeryLoose, "VeryLoose"},
		{Fitness(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("Fitness(%d).String() = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{KindBox: "Box", KindGlue: "Glue", KindPenalty: "Penalty", Kind(7): "Unknown"} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
