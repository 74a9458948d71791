package resolv

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// DefaultRepository is the public models repository
const DefaultRepository = "https://devicemodels.azure.com"

var reProtocol = regexp.MustCompile("(?i)^https?://")

// Location is the address of a models repository: either a local directory,
// or the base URI of a remote repository.
type Location struct {
	Path string // absolute local root directory, empty for remote repositories
	URL  string // remote base URI, empty for local repositories
}

// ParseLocation interprets a repository location given as an http(s) URI, a
// file URI, or a (possibly relative) directory path.  An empty location means
// DefaultRepository.
func ParseLocation(repository string) (Location, error) {
	repository = strings.TrimSpace(repository)
	if repository == "" {
		repository = DefaultRepository
	}

	if reProtocol.MatchString(repository) {
		u, err := url.Parse(repository)
		if err != nil {
			return Location{}, errors.Wrapf(err, "could not parse repository URI %s", repository)
		}
		if u.Host == "" {
			return Location{}, fmt.Errorf("repository URI %s has no host", repository)
		}
		return Location{URL: strings.TrimSuffix(u.String(), "/")}, nil
	}

	if strings.HasPrefix(strings.ToLower(repository), "file://") {
		u, err := url.Parse(repository)
		if err != nil {
			return Location{}, errors.Wrapf(err, "could not parse repository URI %s", repository)
		}
		repository = filepath.FromSlash(u.Path)
	}

	path, err := filepath.Abs(repository)
	if err != nil {
		return Location{}, errors.Wrapf(err, "could not calculate absolute path of %s", repository)
	}

	return Location{Path: path}, nil
}

// IsRemote reports whether the location is a remote URI
func (l Location) IsRemote() bool {
	return l.URL != ""
}

func (l Location) String() string {
	if l.IsRemote() {
		return l.URL
	}
	return l.Path
}
