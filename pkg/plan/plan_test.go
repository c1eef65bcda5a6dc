package plan_test

import (
	"testing"

	"github.com/aretw0/sitepush/pkg/config"
	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/aretw0/sitepush/pkg/plan"
	"github.com/stretchr/testify/assert"
)

func TestBuild_Examples(t *testing.T) {
	t.Run("no data, no translations", func(t *testing.T) {
		p := plan.Build(config.Options{Data: false, Translations: config.Bool(false), Only: nil})
		assert.Equal(t, []domain.Domain{
			domain.DomainSite,
			domain.DomainSnippets,
			domain.DomainContentTypes,
			domain.DomainPages,
			domain.DomainThemeAssets,
		}, p.Domains())
	})

	t.Run("only overrides translations toggle", func(t *testing.T) {
		p := plan.Build(config.Options{Data: true, Translations: config.Bool(false), Only: []string{"translations"}})
		assert.Equal(t, domain.BaseOrder(), p.Domains())
	})
}

func TestBuild_ZeroOptions(t *testing.T) {
	p := plan.Build(config.Options{URI: "https://example.com/locomotive/api"})
	assert.Equal(t, "site -> snippets -> content_types -> translations -> pages -> theme_assets", p.String())
	assert.True(t, p.Equal(plan.Build(config.Default())))
}

func TestBuild_OnlyNamesAreNormalized(t *testing.T) {
	p := plan.Build(config.Options{Translations: config.Bool(false), Only: []string{"Content-Entries", " translations "}})
	assert.Equal(t, domain.BaseOrder(), p.Domains())
}

func TestBuild_Defaults(t *testing.T) {
	p := plan.Build(config.Default())
	assert.False(t, p.Contains(domain.DomainContentEntries))
	assert.True(t, p.Contains(domain.DomainTranslations))
	assert.Equal(t, 6, p.Len())
}

func TestBuild_ContentEntriesRule(t *testing.T) {
	cases := []struct {
		name string
		opts config.Options
		want bool
	}{
		{"data unset", config.Options{}, false},
		{"data false, only absent", config.Options{Data: false}, false},
		{"data false, only empty", config.Options{Data: false, Only: []string{}}, false},
		{"data false, only other", config.Options{Data: false, Only: []string{"pages"}}, false},
		{"data false, only content_entries", config.Options{Data: false, Only: []string{"content_entries"}}, true},
		{"data true", config.Options{Data: true}, true},
		{"data true, only other", config.Options{Data: true, Only: []string{"pages"}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, plan.Build(tc.opts).Contains(domain.DomainContentEntries))
		})
	}
}

func TestBuild_TranslationsRule(t *testing.T) {
	cases := []struct {
		name string
		opts config.Options
		want bool
	}{
		{"translations unset", config.Options{}, true},
		{"translations false, only absent", config.Options{Translations: config.Bool(false)}, false},
		{"translations false, only empty", config.Options{Translations: config.Bool(false), Only: []string{}}, false},
		{"translations false, only other", config.Options{Translations: config.Bool(false), Only: []string{"content_entries"}}, false},
		{"translations false, only translations", config.Options{Translations: config.Bool(false), Only: []string{"Translations"}}, true},
		{"translations true", config.Options{Translations: config.Bool(true)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, plan.Build(tc.opts).Contains(domain.DomainTranslations))
		})
	}
}

func TestBuild_NeverReorders(t *testing.T) {
	for _, data := range []bool{false, true} {
		for _, translations := range []bool{false, true} {
			for _, only := range [][]string{nil, {}, {"translations"}, {"content_entries"}, {"translations", "content_entries"}} {
				p := plan.Build(config.Options{Data: data, Translations: config.Bool(translations), Only: only})
				last := -1
				for _, d := range p.Domains() {
					pos := d.Position()
					assert.Greater(t, pos, last, "plan %s is not a subsequence of the base order", p)
					last = pos
				}
			}
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	opts := config.Options{Data: true, Translations: config.Bool(false), Only: []string{"translations"}}
	first := plan.Build(opts)
	for i := 0; i < 10; i++ {
		assert.True(t, first.Equal(plan.Build(opts)))
	}
}

func TestPlan_DomainsReturnsCopy(t *testing.T) {
	p := plan.Build(config.Default())
	d := p.Domains()
	d[0] = domain.DomainPages
	assert.Equal(t, domain.DomainSite, p.At(0))
	assert.Equal(t, "site -> snippets -> content_types -> translations -> pages -> theme_assets", p.String())
}
