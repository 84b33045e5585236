package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// @title Lattes Documents API
// @version 1.0
// @description Collects the supporting documents of a Lattes curriculum request and delivers them by email.
// @BasePath /
func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:           "lattesdocs",
		Usage:          "Lattes document collection service",
		DefaultCommand: serveCommand.Name,
		Commands: []*cli.Command{
			serveCommand,
			migrateCommand,
			codeCommand,
			statusCommand,
			deleteCommand,
		},
	}
}
