// Package report assembles per-entry results, errors, and totals for output.
package report

import (
	"github.com/dshills/expscore/internal/entries"
	"github.com/dshills/expscore/internal/scoring"
)

// Report is the top-level output object.
type Report struct {
	Tool      string         `json:"tool"`
	Version   string         `json:"version"`
	Input     Input          `json:"input"`
	Config    scoring.Config `json:"config"`
	HasDegree bool           `json:"has_degree"`
	Rows      []Row          `json:"rows"`
	Errors    []EntryError   `json:"errors,omitempty"`
	Totals    scoring.Totals `json:"totals"`
}

// Input describes where the entries and constants came from.
type Input struct {
	Worksheet     string `json:"worksheet,omitempty"`
	WorksheetHash string `json:"worksheet_hash,omitempty"`
	Profile       string `json:"profile"`
}

// Row pairs an entry with its result. Position is 1-based list order.
type Row struct {
	Position int                 `json:"position"`
	Entry    entries.Entry       `json:"entry"`
	Result   scoring.EntryResult `json:"result"`
}

// EntryError records a scoring error by list position.
type EntryError struct {
	Position int               `json:"position"`
	ID       int               `json:"id"`
	Kind     scoring.ErrorKind `json:"kind"`
}

// Build scores every entry of items and aggregates the totals.
func Build(items []entries.Entry, hasDegree bool, cfg scoring.Config) Report {
	results := scoring.ScoreAll(items, cfg)

	r := Report{
		Config:    cfg,
		HasDegree: hasDegree,
		Rows:      make([]Row, 0, len(items)),
		Totals:    scoring.Aggregate(results, hasDegree, cfg),
	}
	for i, res := range results {
		r.Rows = append(r.Rows, Row{Position: i + 1, Entry: items[i], Result: res})
		if res.ErrorKind != scoring.ErrorNone {
			r.Errors = append(r.Errors, EntryError{Position: i + 1, ID: res.ID, Kind: res.ErrorKind})
		}
	}
	return r
}

// Counted returns the rows that contribute to totals, in list order.
func (r *Report) Counted() []Row {
	var out []Row
	for _, row := range r.Rows {
		if row.Result.Counts() {
			out = append(out, row)
		}
	}
	return out
}
