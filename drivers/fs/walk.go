package fs

import (
	"os"
	"path/filepath"

	"github.com/birkland/modelsrepo/fspath"
	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
)

// Model describes a model file found in a repository
type Model struct {
	ID       string // lowercased identifier, as implied by the path
	Path     string // repository relative, solidus delimited path
	Addr     string // absolute filesystem path
	Expanded bool   // true for expanded (dependency bundle) files
}

// Walk visits every model file underneath the repository root, in lexical order.
// Files that do not follow the repository path convention are skipped.  Any error
// returned by f terminates the walk.
func (d *Driver) Walk(f func(Model) error) error {
	return fsWalk(d.root, func(ospath string, e *godirwalk.Dirent) error {
		if e.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(d.root, ospath)
		if err != nil {
			return errors.Wrapf(err, "could not relativize %s", ospath)
		}
		rel = filepath.ToSlash(rel)

		id, expanded, err := fspath.Identifier(rel)
		if err != nil {
			return nil
		}

		return f(Model{
			ID:       id,
			Path:     rel,
			Addr:     ospath,
			Expanded: expanded,
		})
	})
}

// Callback to be invoked each time a fs entry is encountered.
// Any error will terminate a walk entirely.
type fsCallback func(ospath string, e *godirwalk.Dirent) error

func fsWalk(dir string, f fsCallback) error {

	if _, err := os.Stat(dir); err != nil {
		return errors.Wrapf(err, "error walking directory %s", dir)
	}

	err := godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(ospath string, dirent *godirwalk.Dirent) error {
			if err := f(ospath, dirent); err != nil {
				return errors.Wrap(err, "terminating walk due to error")
			}
			return nil
		},
		ErrorCallback: func(ospath string, err error) godirwalk.ErrorAction {
			return godirwalk.Halt
		},
		FollowSymbolicLinks: true,
	})
	if err != nil {
		return errors.Wrapf(err, "error performing walk")
	}
	return nil
}
