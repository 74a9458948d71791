// Package remote provides a Fetcher for models repositories served over HTTP(S).
//
// Model files are retrieved with plain GET requests against a base URI.  A 404
// response means the model does not exist; any other unsuccessful status, as well
// as any network failure, is reported as a transport error.  Nothing is retried.
package remote

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/birkland/modelsrepo"
	"github.com/pkg/errors"
)

// Config encapsulates a remote driver config
type Config struct {
	BaseURL string            // repository base URI, http or https
	Client  *http.Client      // optional, http.DefaultClient semantics when nil
	Timeout time.Duration     // optional per-request timeout, when Client is nil
	Headers map[string]string // optional headers added to every request
}

// Driver represents the HTTP driver for a models repository
type Driver struct {
	base    string
	client  *http.Client
	headers map[string]string
}

// NewDriver initializes a new HTTP driver against the given base URI
func NewDriver(cfg Config) (*Driver, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse repository URI %s", cfg.BaseURL)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("repository URI %s is not http(s)", cfg.BaseURL)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("repository URI %s has no host", cfg.BaseURL)
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Driver{
		base:    strings.TrimSuffix(u.String(), "/"),
		client:  client,
		headers: cfg.Headers,
	}, nil
}

// BaseURL returns the repository base URI, without trailing solidus
func (d *Driver) BaseURL() string {
	return d.base
}

// URL returns the absolute URI of a repository relative path
func (d *Driver) URL(path string) string {
	return d.base + "/" + strings.TrimPrefix(path, "/")
}

// Fetch retrieves the model file at the given repository relative path.
func (d *Driver) Fetch(ctx context.Context, path string) (string, error) {
	loc := d.URL(path)

	req, err := http.NewRequest(http.MethodGet, loc, nil)
	if err != nil {
		return "", &modelsrepo.TransportError{Path: loc, Cause: err}
	}
	for k, v := range d.headers {
		req.Header.Set(k, v)
	}

	resp, err := d.client.Do(req.WithContext(ctx))
	if err != nil {
		return "", &modelsrepo.TransportError{Path: loc, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(ioutil.Discard, resp.Body)
		return "", errors.Wrapf(modelsrepo.ErrNotFound, "no model file at %s", loc)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(ioutil.Discard, resp.Body)
		return "", &modelsrepo.TransportError{
			Path:       loc,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("http: non-successful response (status=%s)", resp.Status),
		}
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", &modelsrepo.TransportError{Path: loc, StatusCode: resp.StatusCode, Cause: err}
	}

	return string(body), nil
}
