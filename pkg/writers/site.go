package writers

import (
	"context"

	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/ports"
)

// SiteWriter updates the current site's settings and locales.
type SiteWriter struct {
	base
}

// NewSiteWriter builds the site writer.
func NewSiteWriter() ports.Writer {
	return &SiteWriter{base: base{domain: domain.DomainSite}}
}

func (w *SiteWriter) Write(ctx context.Context) error {
	site := w.snapshot.Site
	payload := map[string]any{
		"name":             site.Name,
		"locales":          site.Locales,
		"seo_title":        site.SEOTitle,
		"meta_keywords":    site.MetaKeywords,
		"meta_description": site.MetaDescription,
	}
	if site.Subdomain != "" {
		payload["subdomain"] = site.Subdomain
	}
	if len(site.Domains) > 0 {
		payload["domains"] = site.Domains
	}
	for k, v := range site.Attributes {
		if _, ok := payload[k]; !ok {
			payload[k] = v
		}
	}

	if err := w.client.Put(ctx, "/current_site.json", map[string]any{"site": payload}, nil); err != nil {
		return err
	}
	w.updated++
	w.done()
	return nil
}
