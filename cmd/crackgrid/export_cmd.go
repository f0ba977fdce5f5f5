package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yigit/crackgrid/internal/app/models"
)

type exportOptions struct {
	Company   string
	OutputDir string
}

func newExportCmd(root *rootOptions) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export <year> [--company <name>]",
		Short: "Download the placed-student roster of a year or of one company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			cl := root.client()

			var companyID int64
			if name := strings.TrimSpace(opts.Company); name != "" {
				options, err := cl.Companies(cmd.Context(), year)
				if err != nil {
					return err
				}
				company, ok := models.FindCompany(options, name)
				if !ok {
					return fmt.Errorf("no company named %q in %d", name, year)
				}
				companyID = company.ID
			}

			var buf bytes.Buffer
			fileName, err := cl.DownloadRoster(cmd.Context(), year, companyID, &buf)
			if err != nil {
				return err
			}

			dir := opts.OutputDir
			if dir == "" {
				dir = root.cfg.Export.OutputDir
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create export directory: %w", err)
			}
			path := filepath.Join(dir, filepath.Base(fileName))
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Company, "company", "", "company name; the whole year is exported when empty")
	cmd.Flags().StringVarP(&opts.OutputDir, "out", "o", "", "output directory (defaults to export.output_dir)")

	return cmd
}
