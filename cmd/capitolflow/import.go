package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hallcrest/capitolflow/internal/cli"
	"github.com/hallcrest/capitolflow/internal/csvio"
	"github.com/hallcrest/capitolflow/internal/engine"
	"github.com/hallcrest/capitolflow/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import clients from a portfolio CSV",
		Long: `Import client relationships from a CSV export.

The CSV must carry a CLIENT column; a "Contract Period" column and bare
4-digit year columns (revenue) are recognized. Re-importing is safe:
revenue, contract status and names refresh from the CSV, while enhancement
fields you have edited by hand are preserved.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("dry-run", false, "Show what would be imported without saving")
	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID := currentUser()

	slog.Info(cli.FormatTitle("Importing client portfolio"))

	rows, err := csvio.ParseFile(args[0])
	if err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("Parsed %d CSV rows", len(rows)))

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Name != "" {
			names = append(names, row.Name)
		}
	}

	eng := engine.New()

	if viper.GetBool("import.dry_run") {
		slog.Info(cli.FormatWarning("Dry run mode - not saving to database"))
		result := eng.ProcessRows(rows, nil)
		eng.Score(batchOf(result))
		displayImportSummary(result)
		return nil
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.Default(-1, "reconciling")

	existing, err := store.FetchExistingByNames(ctx, userID, names)
	if err != nil {
		return fmt.Errorf("failed to fetch existing clients: %w", err)
	}

	result := eng.ProcessRows(rows, existing)
	batch := batchOf(result)
	eng.Score(batch)

	if err := store.ApplyBatch(ctx, userID, result.Inserts, result.Updates); err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}
	_ = bar.Finish()

	displayImportSummary(result)
	slog.Info(cli.FormatSuccess(fmt.Sprintf("Imported %d clients (%d new, %d updated)",
		len(batch), len(result.Inserts), len(result.Updates))))
	return nil
}

// batchOf flattens a reconcile result into one scoring batch.
func batchOf(result *engine.ReconcileResult) []*model.Client {
	batch := make([]*model.Client, 0, len(result.Inserts)+len(result.Updates))
	batch = append(batch, result.Inserts...)
	return append(batch, result.Updates...)
}

func displayImportSummary(result *engine.ReconcileResult) {
	slog.Info("Import summary",
		"inserts", len(result.Inserts),
		"updates", len(result.Updates),
		"dropped_rows", result.DroppedRows)
}
