package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hallcrest/capitolflow/internal/cli"
	"github.com/hallcrest/capitolflow/internal/csvio"
	"github.com/hallcrest/capitolflow/internal/engine"
	"github.com/hallcrest/capitolflow/internal/model"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file.csv]",
		Short: "Check a CSV file or the stored portfolio for problems",
		Long: `Run structural checks over a client batch. With a file argument the CSV
is parsed and checked without touching the database; without one the
stored portfolio is checked.

Issues (missing names, unrecognizable contract periods) block import;
warnings (zero revenue) do not.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	eng := engine.New()

	var clients []*model.Client
	if len(args) == 1 {
		rows, err := csvio.ParseFile(args[0])
		if err != nil {
			return err
		}
		// Validation needs client shapes, not merge results; an empty
		// existing set turns every row into a standalone client.
		clients = batchOf(eng.ProcessRows(rows, nil))
	} else {
		store, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		clients, err = store.ListClients(ctx, currentUser())
		if err != nil {
			return err
		}
	}

	result := eng.Validate(clients)

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Validated %d clients", result.ClientCount)))
	for _, issue := range result.Issues {
		fmt.Println(cli.FormatError(issue))
	}
	for _, warning := range result.Warnings {
		fmt.Println(cli.FormatWarning(warning))
	}

	if result.IsValid {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("No blocking issues (%d valid clients)", len(result.ValidClients))))
		return nil
	}
	return fmt.Errorf("validation found %d issues", len(result.Issues))
}
