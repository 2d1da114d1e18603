package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hallcrest/capitolflow/internal/advice"
	"github.com/hallcrest/capitolflow/internal/cli"
	"github.com/hallcrest/capitolflow/internal/engine"
)

func adviseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Generate portfolio commentary from the advice service",
		Long: `Summarize the scored portfolio and its capacity plan, send the summary
to the configured text-generation service, and print its commentary.

Configure the provider under the "advice" config section (provider,
api_key, model, base_url) or CAPITOLFLOW_ADVICE_* environment variables.`,
		RunE: runAdvise,
	}

	cmd.Flags().Float64("capacity", engine.DefaultMaxCapacity, "hours budget used for the capacity plan in the summary")
	_ = viper.BindPFlag("advice.capacity", cmd.Flags().Lookup("capacity"))

	return cmd
}

func runAdvise(cmd *cobra.Command, _ []string) error {
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
	result := eng.Optimize(clients, viper.GetFloat64("advice.capacity"))
	summary := eng.Summarize(clients, result)

	advisor, err := advice.New(advice.Config{
		Provider: viper.GetString("advice.provider"),
		APIKey:   viper.GetString("advice.api_key"),
		Model:    viper.GetString("advice.model"),
		BaseURL:  viper.GetString("advice.base_url"),
	})
	if err != nil {
		return err
	}

	text, err := advisor.Advise(ctx, summary)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle("Portfolio advice"))
	fmt.Println(text)
	return nil
}
