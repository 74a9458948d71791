package main

import (
	"fmt"
	"io"
	"os"

	"github.com/birkland/modelsrepo/dtmi"
	"github.com/urfave/cli"
)

var pathOpts = struct {
	expanded bool
}{}

var path cli.Command = cli.Command{
	Name:      "path",
	Usage:     "Print the repository path of models",
	ArgsUsage: "dtmi...",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:        "expanded, e",
			Usage:       "Print the path of the expanded model",
			Destination: &pathOpts.expanded,
		},
	},

	Action: func(c *cli.Context) error {
		return pathAction(os.Stdout, c.Args())
	},
}

func pathAction(w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no DTMIs given")
	}

	for _, arg := range args {
		id, err := dtmi.Parse(arg)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, id.Path(pathOpts.expanded)); err != nil {
			return err
		}
	}
	return nil
}
