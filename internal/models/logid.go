package models

import (
	"fmt"
	"time"
)

// MaxDailySequence is the highest per-tenant-per-day sequence number the
// fixed-width log id format can express.
const MaxDailySequence = 9999

// FormatLogID builds the human-readable log id, e.g. LOG202501150007.
// The day is taken in UTC. Callers must check seq against MaxDailySequence.
func FormatLogID(day time.Time, seq int) string {
	return fmt.Sprintf("LOG%s%04d", day.UTC().Format("20060102"), seq)
}
