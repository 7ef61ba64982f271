// Package render produces text and Markdown output from a report.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dshills/expscore/internal/locale"
	"github.com/dshills/expscore/internal/report"
	"github.com/dshills/expscore/internal/scoring"
)

const placeholder = "-"

// Text renders a report as a plain-text table followed by errors and totals.
func Text(r *report.Report, tr *locale.Translator) string {
	var b strings.Builder

	title := tr.T("report_title", nil)
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(title))) + "\n")
	b.WriteString(badges(r, tr) + "\n\n")

	if len(r.Rows) == 0 {
		b.WriteString(tr.T("no_entries", nil) + "\n\n")
	} else {
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(headers(tr), "\t"))
		for _, row := range r.Rows {
			fmt.Fprintln(tw, strings.Join(cells(row, tr), "\t"))
		}
		_ = tw.Flush()
		b.WriteString("\n")
	}

	if len(r.Errors) > 0 {
		b.WriteString(tr.T("errors_heading", nil) + "\n")
		for _, line := range errorLines(r, tr) {
			fmt.Fprintf(&b, "  - %s\n", line)
		}
		b.WriteString("\n")
	}

	b.WriteString(degreeLine(r, tr) + "\n")

	if len(r.Rows) == 0 {
		return b.String()
	}

	heading := tr.T("results_heading", nil)
	fmt.Fprintf(&b, "\n%s\n%s\n", heading, strings.Repeat("-", len([]rune(heading))))
	for _, kv := range totals(r, tr) {
		fmt.Fprintf(&b, "%s: %s\n", kv[0], kv[1])
	}

	if lines := detailLines(r, tr); len(lines) > 0 {
		fmt.Fprintf(&b, "\n%s\n", tr.T("detail_heading", nil))
		for _, line := range lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	return b.String()
}

// Markdown renders a report as a Markdown document.
func Markdown(r *report.Report, tr *locale.Translator) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", tr.T("report_title", nil))
	fmt.Fprintf(&b, "%s\n\n", tr.T("report_intro", map[string]any{"Days": r.Config.PeriodLengthDays}))
	fmt.Fprintf(&b, "%s\n\n", badges(r, tr))

	if len(r.Rows) == 0 {
		fmt.Fprintf(&b, "%s\n\n", tr.T("no_entries", nil))
	} else {
		h := headers(tr)
		fmt.Fprintf(&b, "| %s |\n", strings.Join(h, " | "))
		fmt.Fprintf(&b, "|%s\n", strings.Repeat("---|", len(h)))
		for _, row := range r.Rows {
			fmt.Fprintf(&b, "| %s |\n", strings.Join(cells(row, tr), " | "))
		}
		b.WriteString("\n")
	}

	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", tr.T("errors_heading", nil))
		for _, line := range errorLines(r, tr) {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s\n\n", degreeLine(r, tr))

	if len(r.Rows) == 0 {
		return b.String()
	}

	fmt.Fprintf(&b, "## %s\n\n", tr.T("results_heading", nil))
	for _, kv := range totals(r, tr) {
		fmt.Fprintf(&b, "- **%s:** %s\n", kv[0], kv[1])
	}
	b.WriteString("\n")

	if lines := detailLines(r, tr); len(lines) > 0 {
		fmt.Fprintf(&b, "### %s\n\n", tr.T("detail_heading", nil))
		for _, line := range lines {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func badges(r *report.Report, tr *locale.Translator) string {
	return tr.T("badge_period", map[string]any{"Days": r.Config.PeriodLengthDays}) +
		" | " +
		tr.T("badge_multiplier", map[string]any{"Points": tr.Number(r.Config.PointsPerPeriod)})
}

func headers(tr *locale.Translator) []string {
	return []string{
		tr.T("col_index", nil),
		tr.T("col_start", nil),
		tr.T("col_end", nil),
		tr.T("col_days", nil),
		tr.T("col_periods", nil),
		tr.T("col_points", nil),
	}
}

// cells shows days, periods, and points only for rows that cover at least one day.
func cells(row report.Row, tr *locale.Translator) []string {
	out := []string{
		strconv.Itoa(row.Position),
		orPlaceholder(row.Entry.Start),
		orPlaceholder(row.Entry.End),
		placeholder, placeholder, placeholder,
	}
	if row.Result.Days > 0 {
		out[3] = strconv.Itoa(row.Result.Days)
		out[4] = strconv.Itoa(row.Result.Periods)
		out[5] = tr.Number(row.Result.Points)
	}
	return out
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func errorLines(r *report.Report, tr *locale.Translator) []string {
	lines := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		lines = append(lines, tr.T("error_line", map[string]any{
			"Position": e.Position,
			"Message":  ErrorMessage(e.Kind, tr),
		}))
	}
	return lines
}

// ErrorMessage returns the user-facing text for an error kind.
func ErrorMessage(kind scoring.ErrorKind, tr *locale.Translator) string {
	id := kind.MessageID()
	if id == "" {
		return ""
	}
	return tr.T(id, nil)
}

func degreeLine(r *report.Report, tr *locale.Translator) string {
	answer := tr.T("answer_no", nil)
	if r.HasDegree {
		answer = tr.T("answer_yes", nil)
	}
	return tr.T("degree_line", map[string]any{
		"Bonus":  tr.Amount(r.Config.DegreeBonus),
		"Answer": answer,
	})
}

func totals(r *report.Report, tr *locale.Translator) [][2]string {
	t := r.Totals
	return [][2]string{
		{tr.T("total_periods", nil), strconv.Itoa(t.TotalPeriods)},
		{tr.T("points_from_periods", nil), tr.Number(t.PointsFromPeriods) + " (" + tr.T("points_from_periods_hint", nil) + ")"},
		{tr.T("bonus_points", nil), tr.Amount(t.BonusPoints)},
		{tr.T("total_points", nil), tr.Number(t.TotalPoints)},
	}
}

func detailLines(r *report.Report, tr *locale.Translator) []string {
	var lines []string
	for _, row := range r.Counted() {
		res := row.Result
		lines = append(lines, tr.T("detail_line", map[string]any{
			"Position":   row.Position,
			"Days":       res.Days,
			"Periods":    res.Periods,
			"PeriodDays": r.Config.PeriodLengthDays,
			"Remainder":  res.Remainder,
			"Points":     tr.Number(res.Points),
		}))
	}
	return lines
}
