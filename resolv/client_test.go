package resolv_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/birkland/modelsrepo"
	"github.com/birkland/modelsrepo/drivers/fs"
	"github.com/birkland/modelsrepo/dtmi"
	"github.com/birkland/modelsrepo/resolv"
	"github.com/go-test/deep"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const (
	controller = "dtmi:com:example:TemperatureController;1"
	thermostat = "dtmi:com:example:Thermostat;1"
	devinfo    = "dtmi:azure:DeviceManagement:DeviceInformation;1"
	casing     = "dtmi:com:example:IncorrectCasing;1"
	dangling   = "dtmi:com:example:DanglingReference;1"
)

const testroot = "testdata/repo"

// countingFetcher records fetches made against a local test repository
type countingFetcher struct {
	mu      sync.Mutex
	driver  *fs.Driver
	fetched []string
}

func (f *countingFetcher) Fetch(ctx context.Context, path string) (string, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, path)
	f.mu.Unlock()
	return f.driver.Fetch(ctx, path)
}

func newCountingFetcher(t *testing.T) *countingFetcher {
	d, err := fs.NewDriver(fs.Config{Root: testroot})
	if err != nil {
		t.Fatalf("Error setting up driver: %+v", err)
	}
	return &countingFetcher{driver: d}
}

func ids(m *modelsrepo.Models) []string {
	var out []string
	for _, id := range m.IDs() {
		out = append(out, id.String())
	}
	return out
}

func quietOptions(mode modelsrepo.DependencyResolution) resolv.Options {
	log, _ := test.NewNullLogger()
	return resolv.Options{Resolution: mode, Logger: log}
}

// Exercises the same repository through the local and the remote driver
func clients(t *testing.T, mode modelsrepo.DependencyResolution) map[string]*resolv.Client {
	srv := httptest.NewServer(http.FileServer(http.Dir(testroot)))
	t.Cleanup(srv.Close)

	out := make(map[string]*resolv.Client)
	for name, location := range map[string]string{"local": testroot, "remote": srv.URL} {
		c, err := resolv.NewClient(location, quietOptions(mode))
		if err != nil {
			t.Fatalf("could not create %s client: %+v", name, err)
		}
		out[name] = c
	}
	return out
}

func TestNewClient(t *testing.T) {
	cases := []struct {
		name      string
		location  string
		expectErr bool
	}{
		{"local", testroot, false},
		{"remote", "https://devicemodels.azure.com", false},
		{"localNoExist", "DOES_NOT_EXIST", true},
		{"badURI", "https://", true},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			_, err := resolv.NewClient(c.location, quietOptions(modelsrepo.Enabled))
			if (err != nil) != c.expectErr {
				t.Errorf("expected error: %t, got error: %v", c.expectErr, err)
			}
		})
	}

	if _, err := resolv.NewClientWithFetcher(nil, resolv.Options{}); err == nil {
		t.Errorf("a client requires a fetcher")
	}
}

func TestClientConfig(t *testing.T) {
	c, err := resolv.NewClient(testroot, quietOptions(modelsrepo.TryFromExpanded))
	if err != nil {
		t.Fatal(err)
	}

	if c.Resolution() != modelsrepo.TryFromExpanded {
		t.Errorf("wrong default resolution %s", c.Resolution())
	}

	if c.Location().IsRemote() || c.Location().Path == "" {
		t.Errorf("Expected a local location, got %s", c.Location())
	}

	if c.Session() == "" {
		t.Errorf("Expected a session id")
	}
}

func TestClientResolve(t *testing.T) {
	cases := []struct {
		mode     modelsrepo.DependencyResolution
		expected []string
	}{
		{modelsrepo.Disabled, []string{controller}},
		{modelsrepo.Enabled, []string{controller, thermostat, devinfo}},
		{modelsrepo.TryFromExpanded, []string{controller, thermostat, devinfo}},
	}

	for _, c := range cases {
		c := c
		for name, client := range clients(t, c.mode) {
			client := client
			t.Run(name+"/"+c.mode.String(), func(t *testing.T) {
				results, err := client.Resolve(context.Background(), []string{controller})
				if err != nil {
					t.Fatalf("resolution failed: %+v", err)
				}

				if diffs := deep.Equal(ids(results), c.expected); diffs != nil {
					t.Errorf("wrong results: %s", diffs)
				}
			})
		}
	}
}

func TestClientFailures(t *testing.T) {
	for name, client := range clients(t, modelsrepo.Enabled) {
		client := client
		t.Run(name, func(t *testing.T) {
			_, err := client.Resolve(context.Background(), []string{casing})
			if _, ok := errors.Cause(err).(*modelsrepo.IncorrectCasingError); !ok {
				t.Errorf("Expected an IncorrectCasingError, got %T: %v", errors.Cause(err), err)
			}

			results, err := client.Resolve(context.Background(), []string{thermostat, dangling})
			rerr, ok := errors.Cause(err).(*modelsrepo.ResolutionError)
			if !ok {
				t.Fatalf("Expected a ResolutionError, got %T: %v", errors.Cause(err), err)
			}
			if rerr.Dtmi != "dtmi:com:example:Missing;1" || results != nil {
				t.Errorf("Expected failure of the missing dependency without results, got %s", rerr.Dtmi)
			}
		})
	}
}

func TestClientInvalidFormatBeforeFetch(t *testing.T) {
	f := newCountingFetcher(t)
	c, err := resolv.NewClientWithFetcher(f, quietOptions(modelsrepo.Enabled))
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Resolve(context.Background(), []string{thermostat, "dtmi:com:example:Thermostat"})
	ferr, ok := errors.Cause(err).(*dtmi.FormatError)
	if !ok {
		t.Fatalf("Expected a FormatError, got %T: %v", errors.Cause(err), err)
	}

	if ferr.Input != "dtmi:com:example:Thermostat" {
		t.Errorf("wrong input in format error: %s", ferr.Input)
	}

	if len(f.fetched) != 0 {
		t.Errorf("nothing should be fetched when an identifier is malformed, fetched %s", f.fetched)
	}
}

func TestClientResolveWithOverridesDefault(t *testing.T) {
	f := newCountingFetcher(t)
	c, err := resolv.NewClientWithFetcher(f, quietOptions(modelsrepo.Enabled))
	if err != nil {
		t.Fatal(err)
	}

	results, err := c.ResolveWith(context.Background(), modelsrepo.Disabled, []string{controller})
	if err != nil {
		t.Fatalf("resolution failed: %+v", err)
	}

	if diffs := deep.Equal(ids(results), []string{controller}); diffs != nil {
		t.Errorf("wrong results: %s", diffs)
	}
}

func TestClientCache(t *testing.T) {
	f := newCountingFetcher(t)
	opts := quietOptions(modelsrepo.Enabled)
	opts.CacheSize = 16

	c, err := resolv.NewClientWithFetcher(f, opts)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, err := c.Resolve(context.Background(), []string{controller}); err != nil {
			t.Fatalf("resolution failed: %+v", err)
		}
	}

	if len(f.fetched) != 3 {
		t.Errorf("Expected each model to be fetched once across resolutions, got %s", f.fetched)
	}
}

func TestParserResolver(t *testing.T) {
	f := newCountingFetcher(t)
	c, err := resolv.NewClientWithFetcher(f, quietOptions(modelsrepo.Disabled))
	if err != nil {
		t.Fatal(err)
	}

	resolve := c.ParserResolver()

	content, err := resolve(context.Background(), controller)
	if err != nil {
		t.Fatalf("resolution failed: %+v", err)
	}

	expected, _ := f.driver.Fetch(context.Background(), dtmi.MustParse(controller).Path(false))
	if content != expected {
		t.Errorf("Expected the content of %s, got %s", controller, content)
	}

	// dependency enabled, regardless of the client default
	if len(f.fetched) != 3 {
		t.Errorf("Expected the dependency graph to be resolved, fetched %s", f.fetched)
	}

	if _, err := resolve(context.Background(), dangling); err == nil {
		t.Errorf("Expected dangling references to fail")
	}

	if _, err := resolve(context.Background(), "nope"); err == nil {
		t.Errorf("Expected malformed identifiers to fail")
	}
}

func TestParserResolverCached(t *testing.T) {
	f := newCountingFetcher(t)
	opts := quietOptions(modelsrepo.Enabled)
	opts.CacheSize = 16

	c, err := resolv.NewClientWithFetcher(f, opts)
	if err != nil {
		t.Fatal(err)
	}

	resolve := c.ParserResolver()
	for _, id := range []string{controller, thermostat, devinfo, controller} {
		if _, err := resolve(context.Background(), id); err != nil {
			t.Fatalf("resolution of %s failed: %+v", id, err)
		}
	}

	if len(f.fetched) != 3 {
		t.Errorf("Expected each model to be fetched once, fetched %s", f.fetched)
	}
}

func TestClientLogsSession(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	c, err := resolv.NewClient(testroot, resolv.Options{Logger: log})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.Resolve(context.Background(), []string{thermostat}); err != nil {
		t.Fatalf("resolution failed: %+v", err)
	}

	for _, e := range hook.AllEntries() {
		if e.Data["session"] != c.Session() {
			t.Errorf("log entry %q is missing the session", e.Message)
		}
	}

	if len(hook.AllEntries()) == 0 {
		t.Errorf("Expected debug logs")
	}
}
