package services

import (
	"testing"
	"time"
)

func TestWindowDefaults(t *testing.T) {
	start, end := window(nil, nil, 30)
	if !end.After(start) {
		t.Fatal("window must be forward")
	}
	if d := end.Sub(start); d < 29*24*time.Hour || d > 31*24*time.Hour {
		t.Errorf("default window = %v, want ~30 days", d)
	}
}

func TestWindowExplicitBounds(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	start, end := window(&from, &to, 7)
	if !start.Equal(from) || !end.Equal(to) {
		t.Errorf("window(%v, %v) = %v, %v", from, to, start, end)
	}
}

func TestWindowFromOnly(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	start, end := window(&from, nil, 7)
	if !start.Equal(from) {
		t.Errorf("start = %v, want %v", start, from)
	}
	if time.Until(end) > time.Minute || time.Until(end) < -time.Minute {
		t.Errorf("end should default to now, got %v", end)
	}
}

func TestWindowToOnly(t *testing.T) {
	to := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	start, end := window(nil, &to, 7)
	if !end.Equal(to) {
		t.Errorf("end = %v, want %v", end, to)
	}
	if want := to.AddDate(0, 0, -7); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
}

func TestComplianceRate(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		violations int
		want       float64
	}{
		{"empty window is vacuously compliant", 0, 0, 100},
		{"no violations", 40, 0, 100},
		{"half violated", 40, 20, 50},
		{"all violated", 40, 40, 0},
		{"quarter violated", 8, 2, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := complianceRate(tt.total, tt.violations); got != tt.want {
				t.Errorf("complianceRate(%d, %d) = %v, want %v", tt.total, tt.violations, got, tt.want)
			}
		})
	}
}

// An inverted range stays inverted; queries over it match nothing, which the
// API treats as an empty result rather than an error.
func TestWindowInvertedRange(t *testing.T) {
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	start, end := window(&from, &to, 7)
	if !start.Equal(from) || !end.Equal(to) {
		t.Errorf("window should not reorder bounds: %v, %v", start, end)
	}
}
