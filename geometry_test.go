package iris

import (
	"math"
	"testing"
)

func TestHoleRadius(t *testing.T) {
	tests := []struct {
		name    string
		w, h, p float64
		want    float64
	}{
		{"closed", 1920, 1080, 0, 0},
		{"open 1080p", 1920, 1080, 1, 1431.89},
		{"half 1080p", 1920, 1080, 0.5, 715.94},
		{"square", 100, 100, 1, math.Sqrt(20000) * 0.65},
		{"empty viewport", 0, 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HoleRadius(tt.w, tt.h, tt.p)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("HoleRadius(%v, %v, %v) = %v, want ~%v", tt.w, tt.h, tt.p, got, tt.want)
			}
		})
	}
}

func TestMaxHoleRadiusCoversCorners(t *testing.T) {
	w, h := 1280.0, 720.0
	halfDiag := math.Sqrt(w*w+h*h) / 2
	if r := MaxHoleRadius(w, h); r <= halfDiag {
		t.Errorf("MaxHoleRadius = %v, want > half diagonal %v", r, halfDiag)
	}
}

func TestHoleRadiusFollowsResize(t *testing.T) {
	small := HoleRadius(640, 480, 0.5)
	large := HoleRadius(1280, 960, 0.5)
	if math.Abs(large-2*small) > 1e-9 {
		t.Errorf("radius after doubling viewport = %v, want %v", large, 2*small)
	}
}
