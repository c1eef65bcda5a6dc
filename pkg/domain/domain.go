package domain

import (
	"fmt"
	"strings"
)

// Domain identifies one content domain pushed by the pipeline.
type Domain string

const (
	DomainSite           Domain = "site"
	DomainSnippets       Domain = "snippets"
	DomainContentTypes   Domain = "content_types"
	DomainContentEntries Domain = "content_entries"
	DomainTranslations   Domain = "translations"
	DomainPages          Domain = "pages"
	DomainThemeAssets    Domain = "theme_assets"

	// DomainContentAssets is the shared sub-writer domain. It is never part of
	// a plan; writers reach it through the runner.
	DomainContentAssets Domain = "content_assets"
)

// baseOrder is the dependency-respecting order every plan is filtered from.
// Pages and entries reference content types, so those come first.
var baseOrder = [...]Domain{
	DomainSite,
	DomainSnippets,
	DomainContentTypes,
	DomainContentEntries,
	DomainTranslations,
	DomainPages,
	DomainThemeAssets,
}

// BaseOrder returns a copy of the fixed domain order.
func BaseOrder() []Domain {
	out := make([]Domain, len(baseOrder))
	copy(out, baseOrder[:])
	return out
}

// Position returns the index of d in the base order, or -1.
func (d Domain) Position() int {
	for i, b := range baseOrder {
		if b == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is one of the plannable domains.
func (d Domain) Valid() bool {
	return d.Position() >= 0
}

func (d Domain) String() string {
	return string(d)
}

// ParseDomain converts a user supplied name ("content-entries", "Pages") into a Domain.
func ParseDomain(name string) (Domain, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	d := Domain(normalized)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, name)
	}
	return d, nil
}
