package cli

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(a)

			if err := a.Migrate(); err != nil {
				return err
			}
			a.Log.Info("schema migrated")
			printf(cmd.OutOrStdout(), "Schema is up to date.\n")
			return nil
		},
	}
}
