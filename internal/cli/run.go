package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renukapawar30/Project-Planner-Tool/internal/app"
	"github.com/renukapawar30/Project-Planner-Tool/internal/apperr"
	"github.com/renukapawar30/Project-Planner-Tool/internal/config"
	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

// ErrReported is returned after a business failure has already been printed
// as an {"error": ...} payload. Callers exit non-zero without printing again.
var ErrReported = errors.New("error reported")

// withApp opens the planner for the command's configuration, runs fn and
// closes it again.
func withApp(cmd *cobra.Command, fn func(a *app.App) error) (err error) {
	cfg, ok := config.FromContext(cmd.Context())
	if !ok {
		cfg = config.Default(config.MustHomeFrom(cmd.Context()))
	}
	a, err := app.Open(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(cmd.Context()); err == nil {
			err = cerr
		}
	}()
	return report(cmd, fn(a))
}

// report prints business errors as payloads on stderr.
func report(cmd *cobra.Command, err error) error {
	e, ok := apperr.As(err)
	if !ok {
		return err
	}
	b, merr := json.Marshal(models.ErrorResponse{Error: e.Message})
	if merr != nil {
		return merr
	}
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), string(b))
	return ErrReported
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

// optional returns a pointer to v when flag was set on the command line.
func optional(cmd *cobra.Command, flag, v string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &v
}
