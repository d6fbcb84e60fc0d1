package cmd

import (
	"catalog-service/config"
	server2 "catalog-service/server"
	"catalog-service/service"
	"fmt"
	"github.com/spf13/cobra"
	"time"
)

func compactProgress(config *config.Config) *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "compact-progress",
		Short: "drop superseded progress events older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive, got %s", olderThan)
			}
			ctx := server2.Logger(config)
			repo, err := server2.NewRepository(config)
			if err != nil {
				return err
			}
			removed, err := service.NewTrackingService(repo).Compact(ctx, time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			cmd.Printf("removed %d progress events\n", removed)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", config.Retention.MaxAge, "only compact events created before now minus this duration")
	return cmd
}
