package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renukapawar30/Project-Planner-Tool/internal/app"
	"github.com/renukapawar30/Project-Planner-Tool/internal/directory"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserListCmd())
	cmd.AddCommand(newUserShowCmd())
	cmd.AddCommand(newUserUpdateCmd())
	cmd.AddCommand(newUserTeamsCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var in directory.CreateUserInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				id, err := a.Directory.CreateUser(cmd.Context(), in)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created user %q (%s)\n", in.Name, id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "User name (unique, max 64 characters)")
	cmd.Flags().StringVar(&in.DisplayName, "display-name", "", "Display name (max 64 characters)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newUserListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				users, err := a.Directory.ListUsers(cmd.Context())
				if err != nil {
					return err
				}
				if len(users) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No users.")
					return nil
				}
				for _, u := range users {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s %q (created=%s)\n", u.Name, u.DisplayName, u.CreationTime)
				}
				return nil
			})
		},
	}
	return cmd
}

func newUserShowCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				u, err := a.Directory.DescribeUser(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd, u)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "User ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newUserUpdateCmd() *cobra.Command {
	var id, name, displayName, description string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a user's display name or description",
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := directory.UserPatch{
				Name:        optional(cmd, "name", name),
				DisplayName: optional(cmd, "display-name", displayName),
				Description: optional(cmd, "description", description),
			}
			return withApp(cmd, func(a *app.App) error {
				if err := a.Directory.UpdateUser(cmd.Context(), id, patch); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated user %s\n", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "User ID")
	cmd.Flags().StringVar(&name, "name", "", "User name (must match the current name)")
	cmd.Flags().StringVar(&displayName, "display-name", "", "New display name (max 128 characters)")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newUserTeamsCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List the teams a user administers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				teams, err := a.Directory.GetUserTeams(cmd.Context(), id)
				if err != nil {
					return err
				}
				if len(teams) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No teams.")
					return nil
				}
				for _, t := range teams {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s (created=%s)\n", t.Name, t.CreationTime)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "User ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
