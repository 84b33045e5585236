package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var deleteCommand = &cli.Command{
	Name:      "delete",
	Usage:     "Delete a request, its documents and their stored files",
	ArgsUsage: "<public-id>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "force",
			Usage: "Confirm the deletion",
		},
	},
	Action: func(cCtx *cli.Context) error {
		if cCtx.NArg() != 1 {
			return cli.Exit("usage: delete --force <public-id>", 2)
		}
		if !cCtx.Bool("force") {
			return cli.Exit("refusing to delete without --force", 2)
		}

		code, err := publicIDArg(cCtx.Args().First())
		if err != nil {
			return err
		}

		rt, err := bootstrap(cCtx.Context)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.service.Delete(cCtx.Context, code); err != nil {
			return err
		}
		fmt.Fprintf(cCtx.App.Writer, "deleted %s\n", code)
		return nil
	},
}
