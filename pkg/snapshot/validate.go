package snapshot

import (
	"errors"
	"fmt"

	"github.com/aretw0/sitepush/pkg/domain"
)

// Validate checks identities and references inside s. Every problem found is
// reported, not just the first.
func Validate(s *domain.Snapshot) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if s.Site.Name == "" {
		fail("site: name is required")
	}

	seen := make(map[string]bool)
	for i, sn := range s.Snippets {
		switch {
		case sn.Slug == "":
			fail("snippet #%d: slug is required", i)
		case seen[sn.Slug]:
			fail("snippet %q: duplicate slug", sn.Slug)
		}
		seen[sn.Slug] = true
	}

	types := make(map[string]bool)
	for i, ct := range s.ContentTypes {
		switch {
		case ct.Slug == "":
			fail("content type #%d: slug is required", i)
		case types[ct.Slug]:
			fail("content type %q: duplicate slug", ct.Slug)
		}
		types[ct.Slug] = true
	}

	assets := make(map[string]bool)
	for _, a := range s.ContentAssets {
		assets[a.Path] = true
	}

	for i, e := range s.ContentEntries {
		if !types[e.ContentType] {
			fail("content entry #%d (%s): unknown content type %q", i, e.Slug, e.ContentType)
		}
		for _, a := range e.Assets {
			if !assets[a] {
				fail("content entry #%d (%s): unknown content asset %q", i, e.Slug, a)
			}
		}
	}

	pages := make(map[string]bool)
	for i, p := range s.Pages {
		switch {
		case p.FullPath == "":
			fail("page #%d: fullpath is required", i)
		case pages[p.FullPath]:
			fail("page %q: duplicate fullpath", p.FullPath)
		}
		pages[p.FullPath] = true
		if p.ContentType != "" && !types[p.ContentType] {
			fail("page %q: unknown content type %q", p.FullPath, p.ContentType)
		}
	}

	for i, t := range s.Translations {
		if t.Key == "" {
			fail("translation #%d: key is required", i)
		}
	}

	return errors.Join(errs...)
}
