package main

import (
	"fmt"
	"io"
	"os"

	"github.com/birkland/modelsrepo/drivers/fs"
	"github.com/birkland/modelsrepo/resolv"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var lsOpts = struct {
	physical bool
	expanded bool
}{}

var ls cli.Command = cli.Command{
	Name:  "ls",
	Usage: "List models in a local repository",
	Description: `List the DTMIs of models stored in a local models repository.

	Identifiers are derived from file paths, so they are printed in lower
	case.  Files not following the repository layout are ignored.  Without
	a repository given by -r, DMR_REPOSITORY or the configuration file,
	the current directory is listed.`,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:        "expanded, e",
			Usage:       "List expanded models instead of regular ones",
			Destination: &lsOpts.expanded,
		},
		cli.BoolFlag{
			Name:        "physical, p",
			Usage:       "Show file paths alongside identifiers",
			Destination: &lsOpts.physical,
		},
	},

	Action: func(c *cli.Context) error {
		return lsAction(os.Stdout)
	},
}

func lsAction(w io.Writer) error {
	cfg, err := settings()
	if err != nil {
		return err
	}

	repository := cfg.Repository
	if repository == "" {
		if repository, err = os.Getwd(); err != nil {
			return errors.Wrapf(err, "could not get pwd")
		}
	}

	loc, err := resolv.ParseLocation(repository)
	if err != nil {
		return err
	}
	if loc.IsRemote() {
		return fmt.Errorf("cannot list remote repository %s", loc)
	}

	d, err := fs.NewDriver(fs.Config{Root: loc.Path})
	if err != nil {
		return errors.Wrapf(err, "could not initialize file driver")
	}

	return d.Walk(func(m fs.Model) error {
		if m.Expanded != lsOpts.expanded {
			return nil
		}

		if lsOpts.physical {
			_, err := fmt.Fprintf(w, "%s    %s\n", m.ID, m.Addr)
			return err
		}
		_, err := fmt.Fprintln(w, m.ID)
		return err
	})
}
