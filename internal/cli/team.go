package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renukapawar30/Project-Planner-Tool/internal/app"
	"github.com/renukapawar30/Project-Planner-Tool/internal/directory"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage teams",
	}
	cmd.AddCommand(newTeamCreateCmd())
	cmd.AddCommand(newTeamListCmd())
	cmd.AddCommand(newTeamShowCmd())
	cmd.AddCommand(newTeamUpdateCmd())
	cmd.AddCommand(newTeamMembersCmd("add-users", "Add users to a team", true))
	cmd.AddCommand(newTeamMembersCmd("remove-users", "Remove users from a team", false))
	cmd.AddCommand(newTeamUsersCmd())
	return cmd
}

func newTeamCreateCmd() *cobra.Command {
	var in directory.CreateTeamInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a team administered by an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				id, err := a.Directory.CreateTeam(cmd.Context(), in)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created team %q (%s)\n", in.Name, id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Team name (unique, max 64 characters)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Team description (max 128 characters)")
	cmd.Flags().StringVar(&in.Admin, "admin", "", "Admin user ID")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("admin")
	return cmd
}

func newTeamListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				teams, err := a.Directory.ListTeams(cmd.Context())
				if err != nil {
					return err
				}
				if len(teams) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No teams.")
					return nil
				}
				for _, t := range teams {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s (admin=%s created=%s)\n", t.Name, t.Admin, t.CreationTime)
				}
				return nil
			})
		},
	}
	return cmd
}

func newTeamShowCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				t, err := a.Directory.DescribeTeam(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd, t)
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Team ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newTeamUpdateCmd() *cobra.Command {
	var id, name, description, admin string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a team's description or admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := directory.TeamPatch{
				Name:        optional(cmd, "name", name),
				Description: optional(cmd, "description", description),
				Admin:       optional(cmd, "admin", admin),
			}
			return withApp(cmd, func(a *app.App) error {
				if err := a.Directory.UpdateTeam(cmd.Context(), id, patch); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated team %s\n", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Team ID")
	cmd.Flags().StringVar(&name, "name", "", "Team name (must match the current name)")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&admin, "admin", "", "New admin user ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newTeamMembersCmd(use, short string, add bool) *cobra.Command {
	var (
		id    string
		users []string
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				op, verb := a.Directory.RemoveUsersFromTeam, "Removed"
				if add {
					op, verb = a.Directory.AddUsersToTeam, "Added"
				}
				if err := op(cmd.Context(), id, users); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d user(s) for team %s\n", verb, len(users), id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Team ID")
	cmd.Flags().StringSliceVar(&users, "user", nil, "User ID (repeatable or comma separated)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newTeamUsersCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List the members of a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				members, err := a.Directory.ListTeamUsers(cmd.Context(), id)
				if err != nil {
					return err
				}
				if len(members) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No members.")
					return nil
				}
				for _, m := range members {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s %q (%s)\n", m.Name, m.DisplayName, m.ID)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Team ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
