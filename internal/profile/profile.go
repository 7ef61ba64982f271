// Package profile handles loading built-in and user-supplied scoring profiles.
package profile

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/dshills/expscore/internal/scoring"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Profile names a set of scoring constants. Point values are decoded from
// their YAML text, so .inf and .nan are rejected at load time.
type Profile struct {
	Name             string          `yaml:"name" validate:"required"`
	Version          int             `yaml:"version" validate:"gte=1"`
	Description      string          `yaml:"description"`
	PeriodLengthDays int             `yaml:"period_length_days" validate:"gt=0"`
	PointsPerPeriod  decimal.Decimal `yaml:"points_per_period"`
	DegreeBonus      decimal.Decimal `yaml:"degree_bonus"`
}

// Config converts the profile into scoring constants.
func (p *Profile) Config() scoring.Config {
	return scoring.Config{
		PeriodLengthDays: p.PeriodLengthDays,
		PointsPerPeriod:  p.PointsPerPeriod,
		DegreeBonus:      p.DegreeBonus,
	}
}

// LoadBuiltin loads a built-in profile by name.
func LoadBuiltin(name string) (*Profile, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: unknown profile %q: %w", name, err)
	}
	p, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: parse %q: %w", name, err)
	}
	return p, nil
}

// LoadFile loads a profile from a YAML file on disk.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile.LoadFile: %w", err)
	}
	p, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile.LoadFile: parse %q: %w", path, err)
	}
	return p, nil
}

// Resolve treats ref as a file path when it ends in .yaml or .yml and as a
// built-in profile name otherwise.
func Resolve(ref string) (*Profile, error) {
	if strings.HasSuffix(ref, ".yaml") || strings.HasSuffix(ref, ".yml") {
		return LoadFile(ref)
	}
	return LoadBuiltin(ref)
}

func parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	p.Description = strings.TrimSpace(p.Description)
	return &p, nil
}

// List returns the names of all available built-in profiles.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}
