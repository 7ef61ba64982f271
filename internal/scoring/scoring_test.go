package scoring

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/expscore/internal/entries"
)

// --- Enum validation tests ---

func TestErrorKindValid(t *testing.T) {
	for _, k := range []ErrorKind{ErrorNone, ErrorInvalidFormat, ErrorEndBeforeStart} {
		assert.True(t, k.Valid(), "expected %q to be valid", k)
	}
	assert.False(t, ErrorKind("BROKEN").Valid())
}

func TestErrorKindMessageID(t *testing.T) {
	assert.Empty(t, ErrorNone.MessageID())
	assert.NotEmpty(t, ErrorInvalidFormat.MessageID())
	assert.NotEmpty(t, ErrorEndBeforeStart.MessageID())
}

// --- ParseDate tests ---

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Date
		wantErr error
	}{
		{"masked", "01/07/2024", Date{2024, time.July, 1}, nil},
		{"unmasked digits", "01072024", Date{2024, time.July, 1}, nil},
		{"other separators", "15-03-1999", Date{1999, time.March, 15}, nil},
		{"leap day 2024", "29/02/2024", Date{2024, time.February, 29}, nil},
		{"leap day 2000", "29/02/2000", Date{2000, time.February, 29}, nil},
		{"min year", "01/01/1900", Date{1900, time.January, 1}, nil},
		{"max year", "31/12/2100", Date{2100, time.December, 31}, nil},
		{"empty", "", Date{}, ErrAbsent},
		{"month 13", "31132025", Date{}, ErrInvalidFormat},
		{"april 31", "31/04/2024", Date{}, ErrInvalidFormat},
		{"feb 29 non-leap", "29/02/2023", Date{}, ErrInvalidFormat},
		{"feb 29 1900", "29/02/1900", Date{}, ErrInvalidFormat},
		{"day zero", "00/01/2024", Date{}, ErrInvalidFormat},
		{"month zero", "01/00/2024", Date{}, ErrInvalidFormat},
		{"year too low", "01/01/1899", Date{}, ErrInvalidFormat},
		{"year too high", "01/01/2101", Date{}, ErrInvalidFormat},
		{"partial", "01/07", Date{}, ErrInvalidFormat},
		{"short year", "01/07/24", Date{}, ErrInvalidFormat},
		{"letters", "abc", Date{}, ErrInvalidFormat},
		{"whitespace", "   ", Date{}, ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "05/03/2024", Date{2024, time.March, 5}.String())
}

func TestDaysBetweenIgnoresDST(t *testing.T) {
	// Spans the northern and southern hemisphere DST switches.
	a := Date{2024, time.March, 1}
	b := Date{2024, time.November, 1}
	assert.Equal(t, 245, DaysBetween(a, b))
}

// --- ScoreEntry tests ---

func entry(start, end string) entries.Entry {
	return entries.Entry{ID: 1, Start: start, End: end}
}

func TestScoreEntryExample(t *testing.T) {
	r := ScoreEntry(entry("01/01/2024", "01/07/2024"), DefaultConfig())
	require.True(t, r.Valid)
	require.Equal(t, ErrorNone, r.ErrorKind)
	assert.Equal(t, 182, r.Days)
	assert.Equal(t, 1, r.Periods)
	assert.Equal(t, 2, r.Remainder)
	assert.True(t, r.Points.Equal(decimal.RequireFromString("4.5")), "points = %s", r.Points)
}

func TestScoreEntry(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		valid     bool
		kind      ErrorKind
		days      int
		periods   int
		remainder int
	}{
		{"both empty", "", "", true, ErrorNone, 0, 0, 0},
		{"start empty", "", "01/01/2024", true, ErrorNone, 0, 0, 0},
		{"end empty", "01/01/2024", "", true, ErrorNone, 0, 0, 0},
		{"malformed with other empty", "99/99/9999", "", true, ErrorNone, 0, 0, 0},
		{"equal dates", "01/01/2024", "01/01/2024", false, ErrorEndBeforeStart, 0, 0, 0},
		{"end before start", "02/01/2024", "01/01/2024", false, ErrorEndBeforeStart, 0, 0, 0},
		{"invalid start", "31/04/2024", "01/01/2025", false, ErrorInvalidFormat, 0, 0, 0},
		{"invalid end", "01/01/2024", "29/02/2023", false, ErrorInvalidFormat, 0, 0, 0},
		{"partial end", "01/01/2024", "01/0", false, ErrorInvalidFormat, 0, 0, 0},
		{"one day", "01/01/2024", "02/01/2024", true, ErrorNone, 1, 0, 1},
		{"exactly one period", "01/01/2023", "30/06/2023", true, ErrorNone, 180, 1, 0},
		{"two years", "01/01/2020", "01/01/2022", true, ErrorNone, 731, 4, 11},
		{"unmasked", "01012024", "01072024", true, ErrorNone, 182, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ScoreEntry(entry(tt.start, tt.end), DefaultConfig())
			require.Equal(t, tt.valid, r.Valid)
			require.Equal(t, tt.kind, r.ErrorKind)
			assert.Equal(t, tt.days, r.Days)
			assert.Equal(t, tt.periods, r.Periods)
			assert.Equal(t, tt.remainder, r.Remainder)
		})
	}
}

func TestScoreEntryCustomConfig(t *testing.T) {
	cfg := Config{
		PeriodLengthDays: 30,
		PointsPerPeriod:  decimal.NewFromInt(2),
		DegreeBonus:      decimal.Zero,
	}
	r := ScoreEntry(entry("01/01/2024", "01/03/2024"), cfg)
	require.Equal(t, 60, r.Days)
	require.Equal(t, 2, r.Periods)
	require.Equal(t, 0, r.Remainder)
	assert.True(t, r.Points.Equal(decimal.NewFromInt(4)), "points = %s", r.Points)
}

func TestScoreEntryInvariants(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewPCG(1, 2))
	base := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2100, time.December, 31, 0, 0, 0, 0, time.UTC)
	span := int(last.Sub(base).Hours() / 24)

	for i := 0; i < 500; i++ {
		a := base.AddDate(0, 0, rng.IntN(span))
		b := base.AddDate(0, 0, rng.IntN(span))
		if !a.Before(b) {
			a, b = b, a
		}
		if a.Equal(b) {
			continue
		}
		r := ScoreEntry(entry(a.Format("02/01/2006"), b.Format("02/01/2006")), cfg)
		require.True(t, r.Valid, "%s..%s: unexpected invalid result %+v", a, b, r)
		assert.Equal(t, r.Periods*180+r.Remainder, r.Days)
		assert.GreaterOrEqual(t, r.Remainder, 0)
		assert.Less(t, r.Remainder, 180)
		want := decimal.RequireFromString("4.5").Mul(decimal.NewFromInt(int64(r.Periods)))
		assert.True(t, r.Points.Equal(want), "points %s != %s", r.Points, want)
		assert.Equal(t, int(b.Sub(a).Hours()/24), r.Days)
	}
}

func TestScoreAllPreservesOrder(t *testing.T) {
	items := []entries.Entry{
		{ID: 3, Start: "01/01/2024", End: "01/07/2024"},
		{ID: 1},
		{ID: 2, Start: "01/01/2024", End: "01/01/2023"},
	}
	results := ScoreAll(items, DefaultConfig())
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, items[i].ID, r.ID, "position %d", i)
	}
}

// --- Aggregate tests ---

func TestAggregateExample(t *testing.T) {
	results := []EntryResult{
		{ID: 1, Days: 200, Periods: 1, Remainder: 20, Points: decimal.RequireFromString("4.5"), Valid: true},
		{ID: 2, Days: 400, Periods: 2, Remainder: 40, Points: decimal.RequireFromString("9.0"), Valid: true},
	}
	got := Aggregate(results, true, DefaultConfig())
	assert.Equal(t, 3, got.TotalPeriods)
	assert.True(t, got.PointsFromPeriods.Equal(decimal.RequireFromString("13.5")), "PointsFromPeriods = %s", got.PointsFromPeriods)
	assert.True(t, got.BonusPoints.Equal(decimal.NewFromInt(10)), "BonusPoints = %s", got.BonusPoints)
	assert.True(t, got.TotalPoints.Equal(decimal.RequireFromString("23.5")), "TotalPoints = %s", got.TotalPoints)
}

func TestAggregateExcludesInvalidAndEmpty(t *testing.T) {
	results := []EntryResult{
		{ID: 1, Days: 200, Periods: 1, Points: decimal.RequireFromString("4.5"), Valid: true},
		{ID: 2, Days: 400, Periods: 2, Points: decimal.RequireFromString("9"), Valid: false, ErrorKind: ErrorInvalidFormat},
		{ID: 3, Days: 0, Periods: 0, Points: decimal.Zero, Valid: true},
	}
	got := Aggregate(results, false, DefaultConfig())
	assert.Equal(t, 1, got.TotalPeriods)
	assert.True(t, got.PointsFromPeriods.Equal(decimal.RequireFromString("4.5")), "PointsFromPeriods = %s", got.PointsFromPeriods)
	assert.True(t, got.BonusPoints.IsZero())
	assert.True(t, got.TotalPoints.Equal(got.PointsFromPeriods))
	assert.Len(t, ValidResults(results), 1)
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil, true, DefaultConfig())
	assert.Zero(t, got.TotalPeriods)
	assert.True(t, got.PointsFromPeriods.IsZero())
	assert.True(t, got.TotalPoints.Equal(decimal.NewFromInt(10)), "TotalPoints = %s", got.TotalPoints)
}

// --- Config tests ---

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	bad := []Config{
		{PeriodLengthDays: 0, PointsPerPeriod: decimal.Zero, DegreeBonus: decimal.Zero},
		{PeriodLengthDays: 180, PointsPerPeriod: decimal.NewFromInt(-1), DegreeBonus: decimal.Zero},
		{PeriodLengthDays: 180, PointsPerPeriod: decimal.Zero, DegreeBonus: decimal.NewFromInt(-1)},
	}
	for i, c := range bad {
		assert.Error(t, c.Validate(), "case %d", i)
	}
}
