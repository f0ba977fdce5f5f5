package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yigit/crackgrid/internal/pkg/validation"
)

func newYearsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "List years that have interview documents or placements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			years, err := opts.client().Years(cmd.Context())
			if err != nil {
				return err
			}
			for _, y := range years {
				fmt.Fprintln(cmd.OutOrStdout(), y)
			}
			return nil
		},
	}
}

func newCompaniesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "companies <year>",
		Short: "List companies that visited in a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}

			companies, err := opts.client().Companies(cmd.Context(), year)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range companies {
				fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
			}
			return w.Flush()
		},
	}
}

func parseYear(arg string) (int, error) {
	year, err := strconv.Atoi(arg)
	if err != nil || !validation.ValidYear(year) {
		return 0, fmt.Errorf("invalid year %q", arg)
	}
	return year, nil
}
