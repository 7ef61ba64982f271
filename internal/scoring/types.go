// Package scoring turns experience date ranges into period counts and points.
package scoring

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Default scoring constants.
const (
	DefaultPeriodLengthDays = 180
)

var (
	DefaultPointsPerPeriod = decimal.RequireFromString("4.5")
	DefaultDegreeBonus     = decimal.NewFromInt(10)
)

// Config holds the scoring constants.
type Config struct {
	PeriodLengthDays int             `json:"period_length_days"`
	PointsPerPeriod  decimal.Decimal `json:"points_per_period"`
	DegreeBonus      decimal.Decimal `json:"degree_bonus"`
}

// DefaultConfig returns 180-day periods worth 4.5 points with a 10 point degree bonus.
func DefaultConfig() Config {
	return Config{
		PeriodLengthDays: DefaultPeriodLengthDays,
		PointsPerPeriod:  DefaultPointsPerPeriod,
		DegreeBonus:      DefaultDegreeBonus,
	}
}

// Validate reports whether c can be used for scoring.
func (c Config) Validate() error {
	if c.PeriodLengthDays <= 0 {
		return fmt.Errorf("period_length_days must be greater than 0, got %d", c.PeriodLengthDays)
	}
	if c.PointsPerPeriod.IsNegative() {
		return fmt.Errorf("points_per_period must be >= 0, got %s", c.PointsPerPeriod)
	}
	if c.DegreeBonus.IsNegative() {
		return fmt.Errorf("degree_bonus must be >= 0, got %s", c.DegreeBonus)
	}
	return nil
}

// EntryResult is the score of a single entry.
type EntryResult struct {
	ID        int             `json:"id"`
	Days      int             `json:"days"`
	Periods   int             `json:"periods"`
	Remainder int             `json:"remainder"`
	Points    decimal.Decimal `json:"points"`
	Valid     bool            `json:"valid"`
	ErrorKind ErrorKind       `json:"error_kind,omitempty"`
}

// Counts reports whether the result contributes to totals.
func (r EntryResult) Counts() bool {
	return r.Valid && r.Days > 0
}

// Totals aggregates the valid results of a list.
type Totals struct {
	TotalPeriods      int             `json:"total_periods"`
	PointsFromPeriods decimal.Decimal `json:"points_from_periods"`
	BonusPoints       decimal.Decimal `json:"bonus_points"`
	TotalPoints       decimal.Decimal `json:"total_points"`
}
