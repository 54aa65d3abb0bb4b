// Package sites holds the adapters for the supported manga hosts. Every
// adapter exposes the same capability set: list chapters for a title, list
// pages for a chapter, and resolve a page to its image URL. The download
// pipeline only ever sees this interface.
package sites

import (
	"context"
	"fmt"
	"sort"

	"github.com/getmanga/getmanga/internal/fetch"
)

// Chapter is one numbered unit of a title. Name is filesystem-safe and
// becomes the archive file name.
type Chapter struct {
	Number string
	Name   string
	URL    string
}

// Page is one image within a chapter, ordered by its position in the listing.
type Page struct {
	Number string
	URL    string
}

type Site interface {
	Name() string

	// Title is the canonical form of the raw title the site was built with.
	Title() string

	// Chapters lists all chapters in ascending order.
	Chapters(ctx context.Context) ([]Chapter, error)

	Pages(ctx context.Context, ch Chapter) ([]Page, error)

	ImageURL(ctx context.Context, p Page) (string, error)
}

type Factory func(title string, f *fetch.Fetcher) Site

var registry = map[string]Factory{}

// Register adds a site factory to the lookup table. Called from adapter init
// functions; the table never changes after process start.
func Register(name string, factory Factory) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("sites: duplicate registration for %q", name))
	}
	registry[name] = factory
}

// New builds the adapter registered under name for the given raw title.
func New(name, title string, f *fetch.Fetcher) (Site, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown site %q (known: %v)", name, Names())
	}
	return factory(title, f), nil
}

// Names returns the registered site names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
