package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renukapawar30/Project-Planner-Tool/internal/app"
	"github.com/renukapawar30/Project-Planner-Tool/internal/board"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks on boards",
	}
	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskStatusCmd())
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var in board.AddTaskInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to an open board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				id, err := a.Tasks.AddTask(cmd.Context(), in)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added task %q (%s)\n", in.Title, id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.BoardID, "board", "", "Board ID")
	cmd.Flags().StringVar(&in.Title, "title", "", "Task title (unique in the board, max 64 characters)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Task description (max 128 characters)")
	cmd.Flags().StringVar(&in.UserID, "team", "", "Team ID the task is assigned to")
	cmd.Flags().StringVar(&in.CreationTime, "created", "", "Creation time as YYYY-MM-DD HH:MM:SS (default: now)")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

func newTaskStatusCmd() *cobra.Command {
	var id, status string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Set a task status (OPEN, IN_PROGRESS or COMPLETE)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				if err := a.Tasks.UpdateTaskStatus(cmd.Context(), id, status); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", id, status)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Task ID")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}
