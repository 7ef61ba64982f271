package scoring

import "github.com/shopspring/decimal"

// ValidResults returns the results that contribute to totals: valid and
// covering at least one day.
func ValidResults(results []EntryResult) []EntryResult {
	var out []EntryResult
	for _, r := range results {
		if r.Counts() {
			out = append(out, r)
		}
	}
	return out
}

// Aggregate sums periods and points over the valid results and adds the
// degree bonus when hasDegree is set.
func Aggregate(results []EntryResult, hasDegree bool, cfg Config) Totals {
	t := Totals{
		PointsFromPeriods: decimal.Zero,
		BonusPoints:       decimal.Zero,
	}
	for _, r := range ValidResults(results) {
		t.TotalPeriods += r.Periods
		t.PointsFromPeriods = t.PointsFromPeriods.Add(r.Points)
	}
	if hasDegree {
		t.BonusPoints = cfg.DegreeBonus
	}
	t.TotalPoints = t.PointsFromPeriods.Add(t.BonusPoints)
	return t
}
