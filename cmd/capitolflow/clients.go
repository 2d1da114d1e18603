package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hallcrest/capitolflow/internal/cli"
	"github.com/hallcrest/capitolflow/internal/engine"
	"github.com/hallcrest/capitolflow/internal/model"
)

func clientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Inspect and edit the client portfolio",
	}
	cmd.AddCommand(clientsListCmd())
	cmd.AddCommand(clientsSetCmd())
	cmd.AddCommand(clientsDeleteCmd())
	return cmd
}

func clientsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients with their derived scores",
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			engine.New().Score(clients)

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Portfolio (%d clients)", len(clients))))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSTATUS\tAVG REVENUE\tVALUE\tHOURS/MO\tRISK")
			for _, c := range clients {
				fmt.Fprintf(w, "%s\t%s\t$%.2f\t%.2f\t%.0f\t%s\n",
					c.Name, c.Status, c.AverageRevenue, c.StrategicValue, c.TimeCommitment, c.ConflictRisk)
			}
			return w.Flush()
		},
	}
}

func clientsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Edit a client's enhancement fields",
		Long: `Edit the manually curated fields of a client. Only the flags you pass
change; everything else is left alone. Fields changed away from their
defaults survive future CSV imports.`,
		Args: cobra.ExactArgs(1),
		RunE: runClientsSet,
	}

	cmd.Flags().Int("strength", 0, "relationship strength (1-10)")
	cmd.Flags().String("risk", "", "conflict risk (Low, Medium, High)")
	cmd.Flags().Float64("hours", 0, "time commitment (hours/month)")
	cmd.Flags().Float64("renewal", -1, "renewal probability (0.0-1.0)")
	cmd.Flags().Int("fit", 0, "strategic fit (1-10)")
	cmd.Flags().String("notes", "", "free-text notes")
	cmd.Flags().StringSlice("practice", nil, "practice area labels")
	cmd.Flags().String("lobbyist", "", "primary lobbyist")
	cmd.Flags().String("originator", "", "client originator")
	cmd.Flags().StringSlice("team", nil, "lobbyist team members")
	cmd.Flags().String("frequency", "", "interaction frequency")
	cmd.Flags().String("intensity", "", "relationship intensity")

	return cmd
}

func runClientsSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	client, err := store.GetClientByName(ctx, currentUser(), args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("strength") {
		client.RelationshipStrength, _ = flags.GetInt("strength")
	}
	if flags.Changed("risk") {
		raw, _ := flags.GetString("risk")
		switch {
		case strings.EqualFold(raw, string(model.RiskLow)):
			client.ConflictRisk = model.RiskLow
		case strings.EqualFold(raw, string(model.RiskMedium)):
			client.ConflictRisk = model.RiskMedium
		case strings.EqualFold(raw, string(model.RiskHigh)):
			client.ConflictRisk = model.RiskHigh
		default:
			return fmt.Errorf("invalid conflict risk %q (want Low, Medium or High)", raw)
		}
	}
	if flags.Changed("hours") {
		client.TimeCommitment, _ = flags.GetFloat64("hours")
	}
	if flags.Changed("renewal") {
		client.RenewalProbability, _ = flags.GetFloat64("renewal")
	}
	if flags.Changed("fit") {
		client.StrategicFit, _ = flags.GetInt("fit")
	}
	if flags.Changed("notes") {
		client.Notes, _ = flags.GetString("notes")
	}
	if flags.Changed("practice") {
		client.PracticeArea, _ = flags.GetStringSlice("practice")
	}
	if flags.Changed("lobbyist") {
		client.PrimaryLobbyist, _ = flags.GetString("lobbyist")
	}
	if flags.Changed("originator") {
		client.ClientOriginator, _ = flags.GetString("originator")
	}
	if flags.Changed("team") {
		client.LobbyistTeam, _ = flags.GetStringSlice("team")
	}
	if flags.Changed("frequency") {
		client.InteractionFrequency, _ = flags.GetString("frequency")
	}
	if flags.Changed("intensity") {
		client.RelationshipIntensity, _ = flags.GetString("intensity")
	}

	if err := store.UpdateEnhancements(ctx, client); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated %s", client.Name)))
	return nil
}

func clientsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a client and its revenue history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			client, err := store.GetClientByName(ctx, currentUser(), args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteClient(ctx, currentUser(), client.ID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %s", client.Name)))
			return nil
		},
	}
	return cmd
}
