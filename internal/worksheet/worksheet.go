// Package worksheet handles reading and hashing experience worksheet files.
package worksheet

import (
	"crypto/sha256"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/expscore/internal/entries"
)

// Worksheet holds a loaded worksheet file with its content and metadata.
type Worksheet struct {
	FilePath    string       `yaml:"-"`
	Hash        string       `yaml:"-"`
	HasDegree   bool         `yaml:"has_degree"`
	Experiences []Experience `yaml:"experiences"`
}

// Experience is one date range as written in the file.
type Experience struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Load reads a YAML or JSON worksheet and computes its SHA-256 hash.
func Load(path string) (*Worksheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("worksheet.Load: %w", err)
	}
	w, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("worksheet.Load: %s: %w", path, err)
	}
	w.FilePath = path
	return w, nil
}

// Parse decodes worksheet content.
func Parse(data []byte) (*Worksheet, error) {
	var w Worksheet
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	h := sha256.Sum256(data)
	w.Hash = fmt.Sprintf("sha256:%x", h)
	return &w, nil
}

// List builds an entry list in file order. Ids run from 1 and every date is
// masked the same way interactive edits are.
func (w *Worksheet) List() *entries.List {
	l := entries.NewList()
	for _, exp := range w.Experiences {
		e := l.Add()
		// The id was just added, so updates cannot fail.
		_ = l.Update(e.ID, entries.FieldStart, exp.Start)
		_ = l.Update(e.ID, entries.FieldEnd, exp.End)
	}
	return l
}
