package cmd

import (
	"catalog-service/config"
	"github.com/spf13/cobra"
)

func Root(config *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "catalog-service",
		Short: "video catalog and watch progress backend",
	}
	rootCmd.AddCommand(server(config))
	rootCmd.AddCommand(migrate(config))
	rootCmd.AddCommand(compactProgress(config))
	return rootCmd
}
