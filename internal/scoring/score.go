package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/dshills/expscore/internal/entries"
)

// ScoreEntry computes the days, periods, and points of one entry.
// An entry with either date empty scores zero without an error, even if the
// other field is malformed. cfg must satisfy Config.Validate.
func ScoreEntry(e entries.Entry, cfg Config) EntryResult {
	res := EntryResult{ID: e.ID, Points: decimal.Zero}

	if e.Start == "" || e.End == "" {
		res.Valid = true
		return res
	}

	start, errStart := ParseDate(e.Start)
	end, errEnd := ParseDate(e.End)
	if errStart != nil || errEnd != nil {
		res.ErrorKind = ErrorInvalidFormat
		return res
	}

	if !start.Before(end) {
		res.ErrorKind = ErrorEndBeforeStart
		return res
	}

	days := DaysBetween(start, end)
	periods := days / cfg.PeriodLengthDays

	res.Days = days
	res.Periods = periods
	res.Remainder = days % cfg.PeriodLengthDays
	res.Points = cfg.PointsPerPeriod.Mul(decimal.NewFromInt(int64(periods)))
	res.Valid = true
	return res
}

// ScoreAll scores every entry, preserving order.
func ScoreAll(items []entries.Entry, cfg Config) []EntryResult {
	results := make([]EntryResult, 0, len(items))
	for _, e := range items {
		results = append(results, ScoreEntry(e, cfg))
	}
	return results
}
