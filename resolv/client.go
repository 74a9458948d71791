package resolv

import (
	"context"
	"net/http"
	"time"

	"github.com/birkland/modelsrepo"
	"github.com/birkland/modelsrepo/drivers/cache"
	"github.com/birkland/modelsrepo/drivers/fs"
	"github.com/birkland/modelsrepo/drivers/remote"
	"github.com/birkland/modelsrepo/dtmi"
	engine "github.com/birkland/modelsrepo/internal/resolv"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Options configures a Client.  The zero value is usable, and resolves
// dependencies (modelsrepo.Enabled) without caching.
type Options struct {
	Resolution modelsrepo.DependencyResolution // default dependency resolution mode
	Logger     logrus.FieldLogger              // defaults to the logrus standard logger
	HTTPClient *http.Client                    // used for remote repositories, optional
	Timeout    time.Duration                   // per request timeout for remote repositories without an HTTPClient
	CacheSize  int                             // number of model files to keep in memory, 0 disables caching
}

// Client resolves model identifiers against a single repository
type Client struct {
	location   Location
	resolution modelsrepo.DependencyResolution
	engine     *engine.Engine
	log        logrus.FieldLogger
	session    string
}

// NewClient creates a client for the repository at the given location (see ParseLocation)
func NewClient(repository string, opts Options) (*Client, error) {
	loc, err := ParseLocation(repository)
	if err != nil {
		return nil, err
	}

	var f modelsrepo.Fetcher
	kind := "local"

	if loc.IsRemote() {
		kind = "remote"
		f, err = remote.NewDriver(remote.Config{
			BaseURL: loc.URL,
			Client:  opts.HTTPClient,
			Timeout: opts.Timeout,
		})
	} else {
		f, err = fs.NewDriver(fs.Config{Root: loc.Path})
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not initialize %s driver for %s", kind, loc)
	}

	return newClient(loc, f, kind, opts)
}

// NewClientWithFetcher creates a client reading content from an arbitrary Fetcher
func NewClientWithFetcher(f modelsrepo.Fetcher, opts Options) (*Client, error) {
	if f == nil {
		return nil, errors.New("no fetcher given")
	}
	return newClient(Location{}, f, "custom", opts)
}

func newClient(loc Location, f modelsrepo.Fetcher, kind string, opts Options) (*Client, error) {
	if opts.CacheSize > 0 {
		cached, err := cache.New(f, opts.CacheSize)
		if err != nil {
			return nil, errors.Wrapf(err, "could not initialize content cache")
		}
		f = cached
	}

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	session := uuid.New().String()
	log = log.WithField("session", session)
	log.Debugf("Client session %s initialized with %s content fetcher.", session, kind)

	return &Client{
		location:   loc,
		resolution: opts.Resolution,
		engine:     engine.NewEngine(f, log),
		log:        log,
		session:    session,
	}, nil
}

// Location returns the repository location.  It is the zero Location for
// clients created with NewClientWithFetcher.
func (c *Client) Location() Location {
	return c.location
}

// Resolution returns the client's default dependency resolution mode
func (c *Client) Resolution() modelsrepo.DependencyResolution {
	return c.resolution
}

// Resolve resolves the given identifiers using the client's default dependency
// resolution mode.
func (c *Client) Resolve(ctx context.Context, ids []string) (*modelsrepo.Models, error) {
	return c.ResolveWith(ctx, c.resolution, ids)
}

// ResolveWith resolves the given identifiers using the given dependency resolution mode.
//
// The result maps every resolved identifier to its raw content, requested identifiers
// first.  Every identifier is validated before anything is fetched; a malformed one
// fails with a *dtmi.FormatError.  Resolution failures are reported as
// *modelsrepo.ResolutionError, *modelsrepo.IncorrectCasingError or
// *modelsrepo.TransportError (see errors.Cause), or modelsrepo.ErrCancelled.  No
// partial results are ever returned.
func (c *Client) ResolveWith(ctx context.Context, mode modelsrepo.DependencyResolution, ids []string) (*modelsrepo.Models, error) {
	parsed := make([]dtmi.Dtmi, 0, len(ids))
	for _, id := range ids {
		d, err := dtmi.Parse(id)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, d)
	}

	return c.engine.Resolve(ctx, parsed, mode)
}

// ParserResolver returns a callback resolving one identifier at a time, for use by
// a model parser that discovers references on its own.  Each invocation drives a
// dependency enabled resolution, so the whole dependency graph of the identifier is
// verified, but only the requested identifier's content is returned.
//
// Invocations share no state, so a parser calling back once per reference fetches
// shared dependencies again on every call, quadratic in the depth of the graph.
// Configure Options.CacheSize to serve repeated fetches from memory.
func (c *Client) ParserResolver() modelsrepo.ModelResolver {
	return func(ctx context.Context, id string) (string, error) {
		d, err := dtmi.Parse(id)
		if err != nil {
			return "", err
		}

		models, err := c.engine.Resolve(ctx, []dtmi.Dtmi{d}, modelsrepo.Enabled)
		if err != nil {
			return "", err
		}

		content, _ := models.Get(d)
		return content, nil
	}
}

// Session returns the identifier of this client session, as it appears in logs
func (c *Client) Session() string {
	return c.session
}
