package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/renukapawar30/Project-Planner-Tool/internal/app"
	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Verify configuration, storage and the export directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				var problems []string
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "home:    %s\n", a.Config.Home)
				_, _ = fmt.Fprintf(out, "driver:  %s\n", a.Config.Storage.Driver)

				for _, c := range []string{models.CollectionUsers, models.CollectionTeams, models.CollectionBoards} {
					ok, err := a.Store.Exists(cmd.Context(), c)
					if err != nil {
						problems = append(problems, fmt.Sprintf("storage: %s: %v", c, err))
						continue
					}
					if _, err := a.Store.Load(cmd.Context(), c); err != nil {
						problems = append(problems, fmt.Sprintf("storage: %s: %v", c, err))
						continue
					}
					state := "absent"
					if ok {
						state = "present"
					}
					_, _ = fmt.Fprintf(out, "%-8s %s\n", c+":", state)
				}

				if err := os.MkdirAll(a.Config.Export.Dir, 0o755); err != nil {
					problems = append(problems, fmt.Sprintf("export dir %s: %v", a.Config.Export.Dir, err))
				}

				if len(problems) > 0 {
					for _, p := range problems {
						_, _ = fmt.Fprintln(cmd.ErrOrStderr(), p)
					}
					return errors.New("doctor checks failed")
				}
				_, _ = fmt.Fprintln(out, "ok")
				return nil
			})
		},
	}
	return cmd
}
