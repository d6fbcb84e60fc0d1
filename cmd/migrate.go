package cmd

import (
	"catalog-service/config"
	server2 "catalog-service/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func migrate(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := server2.Logger(config)
			repo, err := server2.NewRepository(config)
			if err != nil {
				return err
			}
			if err := repo.Migrate(ctx); err != nil {
				return err
			}
			zerolog.Ctx(ctx).Info().Msg("migration completed")
			return nil
		},
	}
}
