package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/birkland/modelsrepo/internal/config"
	"github.com/birkland/modelsrepo/internal/logger"
	"github.com/birkland/modelsrepo/resolv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var mainOpts = struct {
	repo    string
	config  string
	verbose bool
	noColor bool
}{}

func main() {
	app := cli.NewApp()
	app.Name = "dmr"
	app.Usage = "DTDL models repository utilities"
	app.EnableBashCompletion = true
	app.Commands = []cli.Command{
		ls,
		path,
		resolve,
	}
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "repo, r",
			Usage:       "Models repository (uri or directory)",
			EnvVar:      config.EnvRepository,
			Destination: &mainOpts.repo,
		},
		cli.StringFlag{
			Name:        "config, c",
			Usage:       "YAML configuration file",
			EnvVar:      "DMR_CONFIG",
			Destination: &mainOpts.config,
		},
		cli.BoolFlag{
			Name:        "verbose, v",
			Usage:       "Log every model fetch",
			Destination: &mainOpts.verbose,
		},
		cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored log output",
			Destination: &mainOpts.noColor,
		},
	}
	app.Before = func(c *cli.Context) error {
		logger.Init(logger.Options{
			Verbose:      mainOpts.verbose,
			DisableColor: mainOpts.noColor,
		})
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		logrus.Fatal(err)
	}
}

// settings loads configuration, letting an explicit --repo win over the file
func settings() (*config.Config, error) {
	cfg, err := config.Load(mainOpts.config)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load configuration")
	}

	if mainOpts.repo != "" {
		cfg.Repository = mainOpts.repo
	}

	return cfg, nil
}

func newClient(cfg *config.Config) (*resolv.Client, error) {
	opts, err := cfg.ClientOptions()
	if err != nil {
		return nil, err
	}

	client, err := resolv.NewClient(cfg.Repository, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "could not initialize resolver")
	}
	return client, nil
}

// interruptible returns a context cancelled on SIGINT
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
