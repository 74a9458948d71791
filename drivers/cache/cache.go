// Package cache provides a read-through cache in front of any modelsrepo.Fetcher.
//
// Repository content for a given identifier version is immutable, so successfully
// fetched content is kept in a bounded LRU and served from memory afterwards.
// Concurrent fetches of the same path share a single request to the origin.
// Missing content and failures are never cached.
package cache

import (
	"context"
	"fmt"

	"github.com/birkland/modelsrepo"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Fetcher is a caching modelsrepo.Fetcher
type Fetcher struct {
	origin   modelsrepo.Fetcher
	contents *lru.Cache[string, string]
	inflight singleflight.Group
}

// New wraps origin with a cache holding at most size entries
func New(origin modelsrepo.Fetcher, size int) (*Fetcher, error) {
	if origin == nil {
		return nil, fmt.Errorf("no origin fetcher given")
	}

	contents, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}

	return &Fetcher{
		origin:   origin,
		contents: contents,
	}, nil
}

// Fetch returns cached content for path, or retrieves it from the origin.
//
// A shared origin fetch is not bound to the cancellation of any one caller.  A
// caller whose ctx is done stops waiting and gets ctx.Err(), while other callers
// waiting on the same path still receive the result.
func (f *Fetcher) Fetch(ctx context.Context, path string) (string, error) {
	if content, ok := f.contents.Get(path); ok {
		return content, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	shared := context.WithoutCancel(ctx)
	ch := f.inflight.DoChan(path, func() (interface{}, error) {
		content, err := f.origin.Fetch(shared, path)
		if err != nil {
			return "", err
		}
		f.contents.Add(path, content)
		return content, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Len is the number of cached entries
func (f *Fetcher) Len() int {
	return f.contents.Len()
}

// Purge drops every cached entry
func (f *Fetcher) Purge() {
	f.contents.Purge()
}
