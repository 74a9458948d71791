package fs

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/birkland/modelsrepo"
	"github.com/pkg/errors"
)

// Fetch reads the model file at the given repository relative path.
//
// A missing file is reported as modelsrepo.ErrNotFound.  Anything else
// (e.g. "permission denied", or a directory in place of a file) is a
// *modelsrepo.TransportError.
func (d *Driver) Fetch(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrapf(err, "not reading %s", path)
	}

	loc := d.locate(path)

	content, err := ioutil.ReadFile(loc)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(modelsrepo.ErrNotFound, "no model file at %s", loc)
		}
		return "", &modelsrepo.TransportError{Path: loc, Cause: err}
	}

	return string(content), nil
}

func (d *Driver) locate(path string) string {
	return filepath.Join(d.root, filepath.FromSlash(path))
}
