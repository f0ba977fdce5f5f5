package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yigit/crackgrid/internal/bootstrap"
	"github.com/yigit/crackgrid/internal/client"
	"github.com/yigit/crackgrid/internal/config"
	"github.com/yigit/crackgrid/internal/pkg/helpers"
	"github.com/yigit/crackgrid/internal/pkg/logger"
)

type rootOptions struct {
	ConfigPath string
	BaseURL    string

	cfg *config.Config
}

// client builds an API client from the loaded configuration
func (o *rootOptions) client() *client.Client {
	timeout := helpers.ParseDuration(o.cfg.Client.RequestTimeout, defaultRequestTimeout)
	return client.New(o.cfg.Client.BaseURL, timeout)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "crackgrid",
		Short:         "Browse placement drives by year and company",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(opts.ConfigPath)
			if err != nil {
				return err
			}
			if strings.TrimSpace(opts.BaseURL) != "" {
				cfg.Client.BaseURL = opts.BaseURL
			}
			opts.cfg = cfg

			logger.Configure(logger.Config{
				Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
				Pretty: true,
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", config.GetEnv("CONFIG_PATH", bootstrap.DefaultConfigPath), "path to the config file")
	cmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", "", "API base URL (overrides client.base_url)")

	cmd.AddCommand(newBrowseCmd(opts))
	cmd.AddCommand(newYearsCmd(opts))
	cmd.AddCommand(newCompaniesCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
