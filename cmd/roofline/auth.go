package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/perryhq/roofline/internal/cli"
	"github.com/perryhq/roofline/internal/model"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in and out of roofline",
	}

	cmd.AddCommand(loginCmd())
	cmd.AddCommand(logoutCmd())
	cmd.AddCommand(whoamiCmd())

	return cmd
}

func loginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in with email and password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sess, err := sessionManager(store).Login(ctx, args[0], password)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as %s (%s)", sess.Name, sess.Role)))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := sessionManager(store).Logout(); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sess, err := currentIdentity(store)
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s> (%s)\n", sess.Name, sess.Email, sess.Role)
			return nil
		},
	}
}

func teamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage team members",
	}

	cmd.AddCommand(listTeamCmd())
	cmd.AddCommand(addTeamMemberCmd())

	return cmd
}

func listTeamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List team members",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			users, err := store.ListUsers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Email"),
				cli.BoldStyle.Render("Role"))
			for i := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\n", users[i].Name, users[i].Email, users[i].Role)
			}
			return nil
		},
	}
}

func addTeamMemberCmd() *cobra.Command {
	var (
		email    string
		role     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a team member (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			identity, err := currentIdentity(store)
			if err != nil {
				return err
			}
			if err := model.RequireAdmin(identity); err != nil {
				return err
			}

			user := &model.User{
				ID:       uuid.NewString(),
				Name:     args[0],
				Email:    email,
				Role:     model.Role(role),
				Password: password,
			}
			if err := store.CreateUser(ctx, user); err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s as %s", user.Name, user.Role)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&role, "role", "manager", "Role (admin, manager)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
