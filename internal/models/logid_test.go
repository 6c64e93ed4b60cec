package models

import (
	"testing"
	"time"
)

func TestFormatLogID(t *testing.T) {
	day := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		seq  int
		want string
	}{
		{1, "LOG202501150001"},
		{7, "LOG202501150007"},
		{42, "LOG202501150042"},
		{9999, "LOG202501159999"},
	}
	for _, tt := range tests {
		if got := FormatLogID(day, tt.seq); got != tt.want {
			t.Errorf("FormatLogID(%d) = %q, want %q", tt.seq, got, tt.want)
		}
	}

	// Non-UTC timestamps must land in the UTC calendar day.
	est := time.FixedZone("EST", -5*3600)
	late := time.Date(2025, 1, 15, 22, 0, 0, 0, est) // 2025-01-16 03:00 UTC
	if got := FormatLogID(late, 1); got != "LOG202501160001" {
		t.Errorf("FormatLogID(non-UTC) = %q, want LOG202501160001", got)
	}
}
