package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/perryhq/roofline/internal/cli"
	"github.com/perryhq/roofline/internal/model"
)

func clientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage the client directory",
	}

	cmd.AddCommand(listClientsCmd())
	cmd.AddCommand(addClientCmd())

	return cmd
}

func listClientsCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients, optionally filtered by search text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			clients, err := store.ListClients(ctx, search)
			if err != nil {
				return fmt.Errorf("failed to list clients: %w", err)
			}

			if len(clients) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No clients found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Phone"),
				cli.BoldStyle.Render("Address"))
			for i := range clients {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					clients[i].ID, clients[i].Name, clients[i].Phone, clients[i].Address)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive search over name, email, and address")
	return cmd
}

func addClientCmd() *cobra.Command {
	var (
		spouse  string
		email   string
		phone   string
		address string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			client := &model.Client{
				ID:         uuid.NewString(),
				Name:       args[0],
				SpouseName: spouse,
				Email:      email,
				Phone:      phone,
				Address:    address,
				CreatedAt:  time.Now().UTC(),
			}

			if err := store.SaveClient(ctx, client); err != nil {
				return fmt.Errorf("failed to save client: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added client %s (%s)", client.Name, client.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&spouse, "spouse", "", "Spouse name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (required)")
	cmd.Flags().StringVar(&address, "address", "", "Street address")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}
