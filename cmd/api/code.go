package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"lattesdocs/internal/config"
	"lattesdocs/internal/publicid"
)

var codeCommand = &cli.Command{
	Name:  "code",
	Usage: "Print freshly generated public ids (not checked for uniqueness)",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "Number of codes to generate",
			Value:   1,
		},
	},
	Action: func(cCtx *cli.Context) error {
		gen := publicid.NewGenerator(config.Load().PublicIDPrefix)
		for range cCtx.Int("count") {
			code, err := gen.Generate()
			if err != nil {
				return err
			}
			fmt.Fprintln(cCtx.App.Writer, code)
		}
		return nil
	},
}
