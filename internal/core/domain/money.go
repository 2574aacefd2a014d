package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoundAmount rounds a monetary value to 2 decimal places using half-up
// rounding. All amounts surfaced in reports go through this single point so
// the rounding policy cannot drift between components.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// DateOnly truncates a timestamp to calendar-date precision, discarding the
// time of day. Payment dates and due-date comparisons operate on whole days.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
