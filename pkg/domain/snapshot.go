package domain

// Snapshot is the fully loaded, read-only representation of the source site.
// It is built upstream of the pipeline; writers must not mutate it.
type Snapshot struct {
	Site           Site           `json:"site" yaml:"site"`
	Snippets       []Snippet      `json:"snippets,omitempty" yaml:"snippets,omitempty"`
	ContentTypes   []ContentType  `json:"content_types,omitempty" yaml:"content_types,omitempty"`
	ContentEntries []ContentEntry `json:"content_entries,omitempty" yaml:"content_entries,omitempty"`
	Translations   []Translation  `json:"translations,omitempty" yaml:"translations,omitempty"`
	Pages          []Page         `json:"pages,omitempty" yaml:"pages,omitempty"`
	ThemeAssets    []ThemeAsset   `json:"theme_assets,omitempty" yaml:"theme_assets,omitempty"`
	ContentAssets  []ContentAsset `json:"content_assets,omitempty" yaml:"content_assets,omitempty"`
}

type Site struct {
	Name            string         `json:"name" yaml:"name"`
	Subdomain       string         `json:"subdomain,omitempty" yaml:"subdomain,omitempty"`
	Domains         []string       `json:"domains,omitempty" yaml:"domains,omitempty"`
	Locales         []string       `json:"locales,omitempty" yaml:"locales,omitempty"`
	SEOTitle        string         `json:"seo_title,omitempty" yaml:"seo_title,omitempty"`
	MetaKeywords    string         `json:"meta_keywords,omitempty" yaml:"meta_keywords,omitempty"`
	MetaDescription string         `json:"meta_description,omitempty" yaml:"meta_description,omitempty"`
	Attributes      map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

type Snippet struct {
	Slug     string            `json:"slug" yaml:"slug"`
	Name     string            `json:"name" yaml:"name"`
	Template map[string]string `json:"template" yaml:"template"` // locale -> source
}

type ContentField struct {
	Name      string `json:"name" yaml:"name"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty"`
	Type      string `json:"type" yaml:"type"`
	Required  bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Localized bool   `json:"localized,omitempty" yaml:"localized,omitempty"`
	ClassSlug string `json:"class_slug,omitempty" yaml:"class_slug,omitempty"`
}

type ContentType struct {
	Slug        string         `json:"slug" yaml:"slug"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	LabelField  string         `json:"label_field_name,omitempty" yaml:"label_field_name,omitempty"`
	Fields      []ContentField `json:"fields" yaml:"fields"`
}

type ContentEntry struct {
	ContentType string         `json:"content_type" yaml:"content_type"`
	Slug        string         `json:"_slug" yaml:"_slug"`
	Attributes  map[string]any `json:"attributes" yaml:"attributes"`
	// Assets lists snapshot-relative paths of content assets the entry references.
	Assets []string `json:"assets,omitempty" yaml:"assets,omitempty"`
}

type Translation struct {
	Key    string            `json:"key" yaml:"key"`
	Values map[string]string `json:"values" yaml:"values"` // locale -> text
}

type Page struct {
	FullPath     string            `json:"fullpath" yaml:"fullpath"`
	Title        map[string]string `json:"title" yaml:"title"`
	Template     map[string]string `json:"template,omitempty" yaml:"template,omitempty"`
	ContentType  string            `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Published    bool              `json:"published" yaml:"published"`
	Position     int               `json:"position,omitempty" yaml:"position,omitempty"`
	Handle       string            `json:"handle,omitempty" yaml:"handle,omitempty"`
	ListedInMenu bool              `json:"listed,omitempty" yaml:"listed,omitempty"`
}

type ThemeAsset struct {
	Folder string `json:"folder" yaml:"folder"`
	Path   string `json:"path" yaml:"path"`
	Data   []byte `json:"data,omitempty" yaml:"data,omitempty"`
}

type ContentAsset struct {
	Path     string `json:"path" yaml:"path"`
	Filename string `json:"filename" yaml:"filename"`
	Data     []byte `json:"data,omitempty" yaml:"data,omitempty"`
}

// Count returns the number of items the snapshot holds for d.
func (s *Snapshot) Count(d Domain) int {
	switch d {
	case DomainSite:
		return 1
	case DomainSnippets:
		return len(s.Snippets)
	case DomainContentTypes:
		return len(s.ContentTypes)
	case DomainContentEntries:
		return len(s.ContentEntries)
	case DomainTranslations:
		return len(s.Translations)
	case DomainPages:
		return len(s.Pages)
	case DomainThemeAssets:
		return len(s.ThemeAssets)
	case DomainContentAssets:
		return len(s.ContentAssets)
	}
	return 0
}

// ContentType looks up a content type by slug.
func (s *Snapshot) ContentType(slug string) (ContentType, bool) {
	for _, ct := range s.ContentTypes {
		if ct.Slug == slug {
			return ct, true
		}
	}
	return ContentType{}, false
}

// ContentAsset looks up a content asset by path.
func (s *Snapshot) ContentAsset(path string) (ContentAsset, bool) {
	for _, a := range s.ContentAssets {
		if a.Path == path {
			return a, true
		}
	}
	return ContentAsset{}, false
}
