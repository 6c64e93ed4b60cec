package repositories

import (
	"testing"

	"github.com/pathlab-audit/backend/internal/models"
)

func TestBucketFormat(t *testing.T) {
	tests := []struct {
		granularity string
		want        string
	}{
		{models.GranularityHourly, `YYYY-MM-DD HH24:00`},
		{models.GranularityDaily, `YYYY-MM-DD`},
		{models.GranularityWeekly, `IYYY-"W"IW`},
		{"", `YYYY-MM-DD`},
		{"monthly", `YYYY-MM-DD`}, // unknown granularities fall back to daily
	}

	for _, tt := range tests {
		if got := bucketFormat(tt.granularity); got != tt.want {
			t.Errorf("bucketFormat(%q) = %q, want %q", tt.granularity, got, tt.want)
		}
	}
}
