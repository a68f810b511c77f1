package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/renukapawar30/Project-Planner-Tool/internal/cli"
)

func Run(ctx context.Context, args []string) int {
	root := cli.NewRootCmd(Version)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		// Business failures were already printed as an error payload.
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		return 1
	}
	return 0
}
