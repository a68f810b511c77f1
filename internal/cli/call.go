package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/renukapawar30/Project-Planner-Tool/internal/app"
	"github.com/renukapawar30/Project-Planner-Tool/pkg/models"
)

func newCallCmd() *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "call <operation>",
		Short: "Invoke an operation with a JSON request (from --data or stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := []byte(data)
			if !cmd.Flags().Changed("data") {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				req = b
			}
			return withApp(cmd, func(a *app.App) error {
				op, ok := a.API.Operations()[args[0]]
				if !ok {
					return fmt.Errorf("unknown operation %q (known: %s)", args[0], strings.Join(a.API.OperationNames(), ", "))
				}
				resp, err := op(cmd.Context(), req)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(resp))
				var failure models.ErrorResponse
				if json.Unmarshal(resp, &failure) == nil && failure.Error != "" {
					return ErrReported
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	return cmd
}
