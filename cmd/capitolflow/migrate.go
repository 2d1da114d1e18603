package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hallcrest/capitolflow/internal/cli"
	"github.com/hallcrest/capitolflow/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// openStorage migrates as a side effect; this command exists to
			// do it explicitly and report the resulting version.
			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Schema at version %d", storage.ExpectedSchemaVersion)))
			return nil
		},
	}
}
