package fs_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/birkland/modelsrepo/drivers/fs"
	"github.com/go-test/deep"
)

func TestWalk(t *testing.T) {
	d := driver(t)

	var visited []fs.Model
	err := d.Walk(func(m fs.Model) error {
		visited = append(visited, m)
		return nil
	})
	if err != nil {
		t.Fatalf("walk failed: %+v", err)
	}

	var got []string
	for _, m := range visited {
		got = append(got, fmt.Sprintf("%s %s %t", m.ID, m.Path, m.Expanded))

		if m.Addr != filepath.Join(d.Root(), filepath.FromSlash(m.Path)) {
			t.Errorf("Wrong address %s for %s", m.Addr, m.Path)
		}
	}

	expected := []string{
		"dtmi:com:example:nested:sensor;2 dtmi/com/example/nested/sensor-2.json false",
		"dtmi:com:example:temperaturecontroller;1 dtmi/com/example/temperaturecontroller-1.expanded.json true",
		"dtmi:com:example:temperaturecontroller;1 dtmi/com/example/temperaturecontroller-1.json false",
		"dtmi:com:example:thermostat;1 dtmi/com/example/thermostat-1.json false",
	}

	if diffs := deep.Equal(got, expected); diffs != nil {
		t.Errorf("Did not walk the expected models: %s", diffs)
	}
}

func TestWalkStopsOnError(t *testing.T) {
	d := driver(t)

	var count int
	err := d.Walk(func(m fs.Model) error {
		count++
		return fmt.Errorf("stop at %s", m.Path)
	})

	if err == nil {
		t.Fatalf("Expected the walk to fail")
	}

	if count != 1 {
		t.Errorf("Expected the walk to stop after one model, visited %d", count)
	}
}
