package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hallcrest/capitolflow/internal/cli"
	"github.com/hallcrest/capitolflow/internal/engine"
)

func optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Plan which clients to service under an hours budget",
		Long: `Select the portfolio subset to actively service given a monthly hours
budget. Clients are taken greedily in descending strategic-value order;
a client that would overflow the budget is skipped, not a stopping point.`,
		RunE: runOptimize,
	}

	cmd.Flags().Float64("capacity", engine.DefaultMaxCapacity, "total available hours per month")
	_ = viper.BindPFlag("optimize.capacity", cmd.Flags().Lookup("capacity"))

	return cmd
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	clients, err := store.ListClients(ctx, currentUser())
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		cmd.Println("No clients yet. Run `capitolflow import` first.")
		return nil
	}

	eng := engine.New()
	eng.Score(clients)

	capacity := viper.GetFloat64("optimize.capacity")
	result := eng.Optimize(clients, capacity)

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Capacity plan (%.0f hours)", capacity)))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATUS\tVALUE\tHOURS/MO\tAVG REVENUE")
	for _, c := range result.Clients {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.0f\t$%.2f\n",
			c.Name, c.Status, c.StrategicValue, c.TimeCommitment, c.AverageRevenue)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Selected %d clients, %.0f/%.0f hours (%.1f%% utilization)\n",
		len(result.Clients), result.TotalHours, capacity, result.UtilizationRate)
	fmt.Printf("Total average revenue $%.2f, mean strategic value %.2f\n",
		result.TotalRevenue, result.AverageStrategicValue)
	if result.ExcludedClientCount > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d eligible clients excluded by the budget", result.ExcludedClientCount)))
	}
	return nil
}
