package main

import (
	"github.com/urfave/cli/v2"

	"lattesdocs/internal/config"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Create the schema when it does not exist yet",
	Action: func(cCtx *cli.Context) error {
		cfg := config.Load()
		db, err := openDatabase(cCtx.Context, cfg, newLogger(cfg))
		if err != nil {
			return err
		}
		return db.Close()
	},
}
