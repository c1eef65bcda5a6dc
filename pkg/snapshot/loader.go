package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aretw0/sitepush/pkg/domain"
	"gopkg.in/yaml.v3"
)

// document is the on-disk layout of a snapshot.
type document struct {
	Site           domain.Site           `yaml:"site" json:"site"`
	Snippets       []domain.Snippet      `yaml:"snippets" json:"snippets"`
	ContentTypes   []domain.ContentType  `yaml:"content_types" json:"content_types"`
	ContentEntries []domain.ContentEntry `yaml:"content_entries" json:"content_entries"`
	Translations   []domain.Translation  `yaml:"translations" json:"translations"`
	Pages          []domain.Page         `yaml:"pages" json:"pages"`
	ThemeAssets    []themeAssetRef       `yaml:"theme_assets" json:"theme_assets"`
	ContentAssets  []contentAssetRef     `yaml:"content_assets" json:"content_assets"`
}

type themeAssetRef struct {
	Folder string `yaml:"folder" json:"folder"`
	Path   string `yaml:"path" json:"path"`
	Source string `yaml:"source" json:"source"`
}

type contentAssetRef struct {
	Path     string `yaml:"path" json:"path"`
	Filename string `yaml:"filename" json:"filename"`
	Source   string `yaml:"source" json:"source"`
}

// LoadFile reads the snapshot at path. Files ending in .json are parsed as
// JSON, anything else as YAML. Asset sources are resolved relative to the
// snapshot's directory.
func LoadFile(path string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var doc document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
		}
	}

	return build(doc, filepath.Dir(path))
}

// Parse decodes a YAML (or JSON) snapshot from data, resolving asset
// sources against root.
func Parse(data []byte, root string) (*domain.Snapshot, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return build(doc, root)
}

func build(doc document, root string) (*domain.Snapshot, error) {
	s := &domain.Snapshot{
		Site:           doc.Site,
		Snippets:       doc.Snippets,
		ContentTypes:   doc.ContentTypes,
		ContentEntries: doc.ContentEntries,
		Translations:   doc.Translations,
		Pages:          doc.Pages,
	}

	var errs []error
	for _, ref := range doc.ThemeAssets {
		if ref.Path == "" {
			errs = append(errs, errors.New("theme asset without path"))
			continue
		}
		src := ref.Source
		if src == "" {
			src = ref.Path
		}
		data, err := readSource(root, src)
		if err != nil {
			errs = append(errs, fmt.Errorf("theme asset %q: %w", ref.Path, err))
			continue
		}
		s.ThemeAssets = append(s.ThemeAssets, domain.ThemeAsset{Folder: ref.Folder, Path: ref.Path, Data: data})
	}

	for _, ref := range doc.ContentAssets {
		if ref.Path == "" {
			errs = append(errs, errors.New("content asset without path"))
			continue
		}
		src := ref.Source
		if src == "" {
			src = ref.Path
		}
		filename := ref.Filename
		if filename == "" {
			filename = path.Base(ref.Path)
		}
		data, err := readSource(root, src)
		if err != nil {
			errs = append(errs, fmt.Errorf("content asset %q: %w", ref.Path, err))
			continue
		}
		s.ContentAssets = append(s.ContentAssets, domain.ContentAsset{Path: ref.Path, Filename: filename, Data: data})
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

func readSource(root, src string) ([]byte, error) {
	if !filepath.IsAbs(src) {
		src = filepath.Join(root, filepath.FromSlash(src))
	}
	return os.ReadFile(src)
}
