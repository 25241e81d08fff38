package services

import (
	"fmt"
	"time"
)

// QuarterPeriod renders the sales period a moment belongs to, e.g. "Q4-2025".
// Attribution uses processing time, so facts delivered late near a quarter
// boundary land in the quarter they are processed in.
func QuarterPeriod(t time.Time) string {
	utc := t.UTC()
	quarter := (int(utc.Month())-1)/3 + 1
	return fmt.Sprintf("Q%d-%d", quarter, utc.Year())
}
