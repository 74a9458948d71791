package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var resolveOpts = struct {
	deps   string
	output string
}{}

var resolve cli.Command = cli.Command{
	Name:  "resolve",
	Usage: "Resolve models and their dependencies",
	Description: `Given one or more DTMIs, fetch their models from the repository
	and print a JSON object mapping each resolved DTMI to its model.

	Requested models come first, in the order given, followed by their
	dependencies in the order they were discovered.  For example, the
	following resolves a model and everything it references from a
	local repository:

	  dmr -r ./models resolve "dtmi:com:example:TemperatureController;1"

	Dependency resolution may be disabled, or satisfied from pre-computed
	expanded models where the repository provides them:

	  dmr resolve --deps tryFromExpanded "dtmi:com:example:Thermostat;1"`,
	ArgsUsage: "dtmi...",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:        "deps, d",
			Usage:       "Dependency resolution {disabled, enabled, tryFromExpanded}",
			Destination: &resolveOpts.deps,
		},
		cli.StringFlag{
			Name:        "output, o",
			Usage:       "Write the result to a file instead of stdout",
			Destination: &resolveOpts.output,
		},
	},

	Action: func(c *cli.Context) error {
		return resolveAction(os.Stdout, c.Args())
	},
}

func resolveAction(w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no DTMIs given")
	}

	cfg, err := settings()
	if err != nil {
		return err
	}

	if resolveOpts.deps != "" {
		cfg.Resolution = resolveOpts.deps
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := interruptible()
	defer cancel()

	models, err := client.Resolve(ctx, args)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(models, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "could not serialize resolved models")
	}
	out = append(out, '\n')

	if resolveOpts.output != "" {
		return errors.Wrapf(ioutil.WriteFile(resolveOpts.output, out, 0644),
			"could not write %s", resolveOpts.output)
	}

	_, err = w.Write(out)
	return err
}
