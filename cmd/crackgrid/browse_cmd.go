package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/yigit/crackgrid/internal/filter"
	"github.com/yigit/crackgrid/internal/pkg/helpers"
	"github.com/yigit/crackgrid/internal/pkg/logger"
	"github.com/yigit/crackgrid/internal/tui"
)

const (
	defaultRequestTimeout   = 15 * time.Second
	defaultAnalyticsTimeout = 5 * time.Second
)

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive year and company browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Log lines would tear the rendered screen.
			logger.Configure(logger.Config{Level: logger.DisabledLevel})

			changes := tui.NewNotifier()
			ctrl := filter.NewController(opts.client(), filter.Options{
				OnChange:         changes.Notify,
				AnalyticsTimeout: helpers.ParseDuration(opts.cfg.Client.AnalyticsTimeout, defaultAnalyticsTimeout),
			})
			defer ctrl.Close()

			return tui.Run(ctrl, changes, tui.SaveRoster(opts.cfg.Export.OutputDir))
		},
	}
}
