package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"lattesdocs/internal/model"
)

var statusCommand = &cli.Command{
	Name:      "status",
	Usage:     "Advance the internal workflow status of a request",
	ArgsUsage: "<public-id> <NEW|IN_PROGRESS|DONE>",
	Action: func(cCtx *cli.Context) error {
		if cCtx.NArg() != 2 {
			return cli.Exit("usage: status <public-id> <NEW|IN_PROGRESS|DONE>", 2)
		}
		code, err := publicIDArg(cCtx.Args().Get(0))
		if err != nil {
			return err
		}
		next := model.Status(strings.ToUpper(cCtx.Args().Get(1)))
		if !next.Valid() {
			return cli.Exit(fmt.Sprintf("unknown status %q", cCtx.Args().Get(1)), 2)
		}

		rt, err := bootstrap(cCtx.Context)
		if err != nil {
			return err
		}
		defer rt.Close()

		req, err := rt.service.AdvanceStatus(cCtx.Context, code, next)
		if err != nil {
			return err
		}
		fmt.Fprintf(cCtx.App.Writer, "%s %s\n", req.PublicID, req.Status)
		return nil
	},
}
