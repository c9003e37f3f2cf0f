package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thanhnp/tron-block-api/internal/config"
	"github.com/thanhnp/tron-block-api/internal/logger"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "tron-block-api",
		Short: "Serve the latest TRON block over REST",
		Long: `tron-block-api proxies the getnowblock endpoint of a TRON full node and
serves the head block as a summary (/latest-block) and a detailed view
(/latest-details).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
	cmd.Flags().StringVarP(&logLevel, "log-level", "l", "", fmt.Sprintf("override log level (%s)", logger.ValidLevels))

	cmd.AddCommand(newVersionCmd())
	return cmd
}
