// Package fs provides a Fetcher for models repositories stored as a local
// directory tree.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Driver represents the filesystem driver for a models repository
type Driver struct {
	root string
}

// Config encapsulates a filesystem driver config.
type Config struct {
	Root string // repository root directory
}

// NewDriver initializes a new filesystem driver with the given
// repository root directory.  Relative roots are made absolute.
func NewDriver(cfg Config) (*Driver, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("no repository root given")
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, errors.Wrapf(err, "could not calculate absolute path of %s", cfg.Root)
	}

	dir, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open repository root")
	}

	if !dir.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	return &Driver{root: root}, nil
}

// Root returns the absolute path of the repository root
func (d *Driver) Root() string {
	return d.root
}
