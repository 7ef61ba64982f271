// Package schema checks reports and profiles for structural validity.
package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/dshills/expscore/internal/profile"
	"github.com/dshills/expscore/internal/report"
	"github.com/dshills/expscore/internal/scoring"
)

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateProfile checks a profile's fields against their constraints.
func ValidateProfile(p *profile.Profile) []ValidationError {
	var errs []ValidationError
	if err := validate.Struct(p); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []ValidationError{{"profile", err.Error()}}
		}
		for _, fe := range fieldErrs {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			errs = append(errs, ValidationError{fe.Field(), fmt.Sprintf("must satisfy %s, got %v", rule, fe.Value())})
		}
	}

	// validator tags do not apply to decimal fields.
	if p.PointsPerPeriod.IsNegative() {
		errs = append(errs, ValidationError{"points_per_period", fmt.Sprintf("must be >= 0, got %s", p.PointsPerPeriod)})
	}
	if p.DegreeBonus.IsNegative() {
		errs = append(errs, ValidationError{"degree_bonus", fmt.Sprintf("must be >= 0, got %s", p.DegreeBonus)})
	}
	return errs
}

// ValidateReport re-derives every invariant of a report: per-entry
// arithmetic, error bookkeeping, and totals.
func ValidateReport(r *report.Report) []ValidationError {
	var errs []ValidationError

	if err := r.Config.Validate(); err != nil {
		errs = append(errs, ValidationError{"config", err.Error()})
		return errs
	}
	cfg := r.Config

	ids := make(map[int]bool)
	var errorRows int
	var periods int
	points := decimal.Zero
	for i, row := range r.Rows {
		prefix := fmt.Sprintf("rows[%d]", i)
		res := row.Result

		if row.Position != i+1 {
			errs = append(errs, ValidationError{prefix + ".position", fmt.Sprintf("expected %d, got %d", i+1, row.Position)})
		}
		if ids[row.Entry.ID] {
			errs = append(errs, ValidationError{prefix + ".entry.id", fmt.Sprintf("duplicate ID: %d", row.Entry.ID)})
		}
		ids[row.Entry.ID] = true
		if res.ID != row.Entry.ID {
			errs = append(errs, ValidationError{prefix + ".result.id", fmt.Sprintf("expected %d, got %d", row.Entry.ID, res.ID)})
		}
		if !res.ErrorKind.Valid() {
			errs = append(errs, ValidationError{prefix + ".result.error_kind", fmt.Sprintf("invalid: %q", res.ErrorKind)})
		}
		if res.Valid == (res.ErrorKind != scoring.ErrorNone) {
			errs = append(errs, ValidationError{prefix + ".result.valid", "must be false exactly when error_kind is set"})
		}
		if res.ErrorKind != scoring.ErrorNone {
			errorRows++
		}

		if res.Days < 0 || res.Periods < 0 {
			errs = append(errs, ValidationError{prefix + ".result", "days and periods must be >= 0"})
		}
		if res.Remainder < 0 || res.Remainder >= cfg.PeriodLengthDays {
			errs = append(errs, ValidationError{prefix + ".result.remainder", fmt.Sprintf("must be in [0, %d), got %d", cfg.PeriodLengthDays, res.Remainder)})
		}
		if res.Days != res.Periods*cfg.PeriodLengthDays+res.Remainder {
			errs = append(errs, ValidationError{prefix + ".result.days", fmt.Sprintf("%d != %d*%d+%d", res.Days, res.Periods, cfg.PeriodLengthDays, res.Remainder)})
		}
		want := cfg.PointsPerPeriod.Mul(decimal.NewFromInt(int64(res.Periods)))
		if !res.Points.Equal(want) {
			errs = append(errs, ValidationError{prefix + ".result.points", fmt.Sprintf("expected %s, got %s", want, res.Points)})
		}

		if res.Counts() {
			periods += res.Periods
			points = points.Add(res.Points)
		}
	}

	if len(r.Errors) != errorRows {
		errs = append(errs, ValidationError{"errors", fmt.Sprintf("expected %d entries, got %d", errorRows, len(r.Errors))})
	}
	for i, e := range r.Errors {
		if e.Position < 1 || e.Position > len(r.Rows) || r.Rows[e.Position-1].Entry.ID != e.ID {
			errs = append(errs, ValidationError{fmt.Sprintf("errors[%d].position", i), fmt.Sprintf("does not point at entry %d", e.ID)})
		}
	}

	t := r.Totals
	if t.TotalPeriods != periods {
		errs = append(errs, ValidationError{"totals.total_periods", fmt.Sprintf("expected %d, got %d", periods, t.TotalPeriods)})
	}
	if !t.PointsFromPeriods.Equal(points) {
		errs = append(errs, ValidationError{"totals.points_from_periods", fmt.Sprintf("expected %s, got %s", points, t.PointsFromPeriods)})
	}
	bonus := decimal.Zero
	if r.HasDegree {
		bonus = cfg.DegreeBonus
	}
	if !t.BonusPoints.Equal(bonus) {
		errs = append(errs, ValidationError{"totals.bonus_points", fmt.Sprintf("expected %s, got %s", bonus, t.BonusPoints)})
	}
	if !t.TotalPoints.Equal(t.PointsFromPeriods.Add(t.BonusPoints)) {
		errs = append(errs, ValidationError{"totals.total_points", "must equal points_from_periods + bonus_points"})
	}

	return errs
}
