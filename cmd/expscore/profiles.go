package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/expscore/internal/profile"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List built-in scoring profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProfiles(cmd.OutOrStdout())
		},
	}
}

func listProfiles(w io.Writer) error {
	names, err := profile.List()
	if err != nil {
		return fmt.Errorf("listing profiles: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPERIOD\tPOINTS/PERIOD\tDEGREE BONUS\tDESCRIPTION")
	for _, name := range names {
		p, err := profile.LoadBuiltin(name)
		if err != nil {
			return err
		}
		cfg := p.Config()
		fmt.Fprintf(tw, "%s\t%d days\t%s\t%s\t%s\n",
			p.Name, cfg.PeriodLengthDays, cfg.PointsPerPeriod, cfg.DegreeBonus, p.Description)
	}
	return tw.Flush()
}
