package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/expscore/internal/config"
	"github.com/dshills/expscore/internal/entries"
	"github.com/dshills/expscore/internal/locale"
	"github.com/dshills/expscore/internal/render"
	"github.com/dshills/expscore/internal/report"
	"github.com/dshills/expscore/internal/scoring"
)

const sessionHelp = `commands:
  add                   add an empty experience
  rm <id>               remove an experience
  start <id> <date>     set the start date (DD/MM/YYYY or digits)
  end <id> <date>       set the end date
  degree on|off         toggle the degree bonus
  show                  print the report
  help                  show this help
  quit                  leave the session
`

type sessionFlags struct {
	profileRef string
	locale     string
	verbose    bool
}

func newSessionCmd(cfg *config.Config) *cobra.Command {
	f := &sessionFlags{}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Edit experiences interactively and recompute the score after every change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("profile") {
				f.profileRef = cfg.Profile
			}
			if !cmd.Flags().Changed("locale") {
				f.locale = cfg.Locale
			}
			prof, err := loadProfile(f.profileRef)
			if err != nil {
				return err
			}
			logger := newLogger(cfg, cmd.ErrOrStderr(), f.verbose)
			tr, err := locale.New(f.locale)
			if err != nil {
				return exitError(3, "failed to load locale: %v", err)
			}
			tr = tr.WithLogger(logger)
			s := newSession(prof.Config(), tr, cmd.OutOrStdout(), logger)
			return s.run(cmd.InOrStdin())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.profileRef, "profile", config.DefaultProfile, "Built-in profile name or path to a profile YAML file")
	flags.StringVar(&f.locale, "locale", config.DefaultLocale, "Report language (en, pt-BR)")
	flags.BoolVar(&f.verbose, "verbose", false, "Log every mutation to stderr")

	return cmd
}

// session holds the editable state of one interactive run.
type session struct {
	list      *entries.List
	hasDegree bool
	cfg       scoring.Config
	tr        *locale.Translator
	out       io.Writer
	log       *slog.Logger
}

func newSession(cfg scoring.Config, tr *locale.Translator, out io.Writer, logger *slog.Logger) *session {
	return &session{
		list: entries.NewList(),
		cfg:  cfg,
		tr:   tr,
		out:  out,
		log:  logger.With("component", "session"),
	}
}

func (s *session) run(in io.Reader) error {
	fmt.Fprint(s.out, sessionHelp)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		quit, err := s.exec(sc.Text())
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
}

// exec applies one command line. Every successful mutation prints a freshly
// computed report.
func (s *session) exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch cmd := strings.ToLower(fields[0]); cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprint(s.out, sessionHelp)
		return false, nil
	case "show", "ls":
		s.show()
		return false, nil
	case "add":
		e := s.list.Add()
		s.log.Debug("entry added", "id", e.ID)
	case "rm", "remove":
		id, err := argID(fields)
		if err != nil {
			return false, err
		}
		if err := s.list.Remove(id); err != nil {
			return false, err
		}
		s.log.Debug("entry removed", "id", id)
	case "start", "end":
		id, err := argID(fields)
		if err != nil {
			return false, err
		}
		field := entries.FieldStart
		if cmd == "end" {
			field = entries.FieldEnd
		}
		value := strings.Join(fields[2:], " ")
		if err := s.list.Update(id, field, value); err != nil {
			return false, err
		}
		s.log.Debug("entry updated", "id", id, "field", field.String(), "value", value)
	case "degree":
		if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
			return false, errors.New("usage: degree on|off")
		}
		s.hasDegree = fields[1] == "on"
		s.log.Debug("degree toggled", "has_degree", s.hasDegree)
	default:
		return false, fmt.Errorf("unknown command %q (try help)", fields[0])
	}

	s.show()
	return false, nil
}

func (s *session) show() {
	rep := s.report()
	fmt.Fprint(s.out, render.Text(&rep, s.tr))
}

func (s *session) report() report.Report {
	return report.Build(s.list.Entries(), s.hasDegree, s.cfg)
}

func argID(fields []string) (int, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("usage: %s <id>", fields[0])
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", fields[1])
	}
	return id, nil
}
