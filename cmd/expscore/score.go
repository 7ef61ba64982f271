package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/expscore/internal/config"
	"github.com/dshills/expscore/internal/locale"
	"github.com/dshills/expscore/internal/profile"
	"github.com/dshills/expscore/internal/render"
	"github.com/dshills/expscore/internal/report"
	"github.com/dshills/expscore/internal/schema"
	"github.com/dshills/expscore/internal/worksheet"
)

type scoreFlags struct {
	format      string
	out         string
	profileRef  string
	locale      string
	degree      bool
	hasDegree   bool
	failOnError bool
	verbose     bool
}

func newScoreCmd(cfg *config.Config) *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score <worksheet-file>",
		Short: "Score a worksheet of experiences and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			f.hasDegree = flags.Changed("degree")
			if !flags.Changed("format") {
				f.format = cfg.Format
			}
			if !flags.Changed("profile") {
				f.profileRef = cfg.Profile
			}
			if !flags.Changed("locale") {
				f.locale = cfg.Locale
			}
			logger := newLogger(cfg, cmd.ErrOrStderr(), f.verbose)
			return runScore(args[0], f, cmd.OutOrStdout(), logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", config.DefaultFormat, "Output format: text, md, or json")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.profileRef, "profile", config.DefaultProfile, "Built-in profile name or path to a profile YAML file")
	flags.StringVar(&f.locale, "locale", config.DefaultLocale, "Report language (en, pt-BR)")
	flags.BoolVar(&f.degree, "degree", false, "Override the worksheet's has_degree value")
	flags.BoolVar(&f.failOnError, "fail-on-error", false, "Exit non-zero if any entry has an error")
	flags.BoolVar(&f.verbose, "verbose", false, "Log processing steps to stderr")

	return cmd
}

func runScore(path string, f *scoreFlags, stdout io.Writer, logger *slog.Logger) error {
	log := logger.With("component", "score")

	// 1. Load worksheet
	log.Debug("loading worksheet", "path", path)
	ws, err := worksheet.Load(path)
	if err != nil {
		return exitError(3, "failed to load worksheet: %v", err)
	}
	log.Debug("worksheet loaded", "experiences", len(ws.Experiences), "hash", ws.Hash)

	// 2. Load profile
	prof, err := loadProfile(f.profileRef)
	if err != nil {
		return err
	}
	log.Debug("profile loaded", "profile", prof.Name, "period_length_days", prof.PeriodLengthDays)

	// 3. Translator
	tr, err := locale.New(f.locale)
	if err != nil {
		return exitError(3, "failed to load locale: %v", err)
	}
	tr = tr.WithLogger(logger)

	// 4. Score
	hasDegree := ws.HasDegree
	if f.hasDegree {
		hasDegree = f.degree
	}
	rep := report.Build(ws.List().Entries(), hasDegree, prof.Config())
	rep.Tool = "expscore"
	rep.Version = version
	rep.Input = report.Input{
		Worksheet:     filepath.Base(path),
		WorksheetHash: ws.Hash,
		Profile:       prof.Name,
	}
	log.Debug("scored",
		"entries", len(rep.Rows),
		"errors", len(rep.Errors),
		"total_points", rep.Totals.TotalPoints.String(),
	)

	// 5. Self-check
	if errs := schema.ValidateReport(&rep); len(errs) > 0 {
		for _, e := range errs {
			log.Error("report invariant violated", "path", e.Path, "message", e.Message)
		}
		return exitError(5, "report failed validation (%d errors)", len(errs))
	}

	// 6. Output
	output, err := formatReport(&rep, f.format, tr)
	if err != nil {
		return err
	}
	if err := writeOutput(output, f.out, stdout); err != nil {
		return err
	}
	if f.out != "" {
		log.Debug("report written", "path", f.out)
	}

	// 7. Exit code based on --fail-on-error
	if f.failOnError && len(rep.Errors) > 0 {
		return exitError(2, "%d experience(s) have errors", len(rep.Errors))
	}
	return nil
}

func loadProfile(ref string) (*profile.Profile, error) {
	prof, err := profile.Resolve(ref)
	if err != nil {
		return nil, exitError(3, "failed to load profile: %v", err)
	}
	if errs := schema.ValidateProfile(prof); len(errs) > 0 {
		return nil, exitError(3, "invalid profile %q: %v", ref, errs[0])
	}
	return prof, nil
}

func formatReport(rep *report.Report, format string, tr *locale.Translator) (string, error) {
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal output: %w", err)
		}
		return string(data) + "\n", nil
	case config.FormatMarkdown:
		return render.Markdown(rep, tr), nil
	case config.FormatText:
		return render.Text(rep, tr), nil
	default:
		return "", exitError(3, "unknown format: %s", format)
	}
}

func writeOutput(output, path string, stdout io.Writer) error {
	if path == "" {
		_, err := io.WriteString(stdout, output)
		return err
	}
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
