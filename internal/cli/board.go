package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/renukapawar30/Project-Planner-Tool/internal/app"
	"github.com/renukapawar30/Project-Planner-Tool/internal/board"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage project boards",
	}
	cmd.AddCommand(newBoardCreateCmd())
	cmd.AddCommand(newBoardCloseCmd())
	cmd.AddCommand(newBoardListCmd())
	cmd.AddCommand(newBoardExportCmd())
	cmd.AddCommand(newBoardShowCmd())
	return cmd
}

func newBoardCreateCmd() *cobra.Command {
	var in board.CreateBoardInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board for a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				id, err := a.Boards.CreateBoard(cmd.Context(), in)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created board %q (%s)\n", in.Name, id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Board name (unique, max 64 characters)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Board description (max 128 characters)")
	cmd.Flags().StringVar(&in.TeamID, "team", "", "Team ID")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

func newBoardCloseCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close a board once all its tasks are COMPLETE",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				if err := a.Boards.CloseBoard(cmd.Context(), id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Closed board %s\n", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Board ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newBoardListCmd() *cobra.Command {
	var team string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List boards with tasks assigned to a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				boards, err := a.Boards.ListBoards(cmd.Context(), team)
				if err != nil {
					return err
				}
				if len(boards) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No boards.")
					return nil
				}
				for _, b := range boards {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "- %s (%s)\n", b.Name, b.ID)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&team, "team", "", "Team ID")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

func newBoardExportCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a board and its tasks to a text file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				name, err := a.Boards.ExportBoard(cmd.Context(), id)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(a.Boards.ExportDir(), name))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Board ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newBoardShowCmd() *cobra.Command {
	var (
		id     string
		output string
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a board with its tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "yaml" {
				return errors.New("--output must be json or yaml")
			}
			return withApp(cmd, func(a *app.App) error {
				b, err := a.Boards.DescribeBoard(cmd.Context(), id)
				if err != nil {
					return err
				}
				if output == "json" {
					return printJSON(cmd, b)
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(b); err != nil {
					return err
				}
				return enc.Close()
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Board ID")
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format: json or yaml")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
