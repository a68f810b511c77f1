package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/renukapawar30/Project-Planner-Tool/internal/config"
)

func NewRootCmd(version string) *cobra.Command {
	var (
		homeOverride string
		configPath   string
	)

	cmd := &cobra.Command{
		Use:           "planner",
		Short:         "Planner: project boards, tasks, teams and users",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			home, err := config.ResolveHome(homeOverride)
			if err != nil {
				return err
			}
			cfg, err := config.Load(home, configPath)
			if err != nil {
				return err
			}
			ctx := config.WithHome(cmd.Context(), home)
			cmd.SetContext(config.WithConfig(ctx, cfg))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&homeOverride, "home", "", "Override planner home directory (default: ~/.planner, env: PLANNER_HOME)")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <home>/config.toml)")

	cmd.AddCommand(newBoardCmd())
	cmd.AddCommand(newTaskCmd())
	cmd.AddCommand(newTeamCmd())
	cmd.AddCommand(newUserCmd())
	cmd.AddCommand(newCallCmd())
	cmd.AddCommand(newDoctorCmd())

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.SetVersionTemplate("{{.Version}}\n")
	if version != "" {
		cmd.Version = version
	} else {
		cmd.Version = "dev"
	}

	return cmd
}
