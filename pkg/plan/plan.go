// Package plan computes which domain writers a run executes, and in which order.
package plan

import (
	"slices"
	"strings"

	"github.com/aretw0/sitepush/pkg/config"
	"github.com/aretw0/sitepush/pkg/domain"
)

// Plan is an immutable, ordered list of domains. It is always a subsequence
// of domain.BaseOrder.
type Plan struct {
	domains []domain.Domain
}

// predicate decides whether an optional domain stays in the plan.
type predicate func(config.Options) bool

// inclusion holds the rules for optional domains. Domains absent from this
// table are always kept.
var inclusion = map[domain.Domain]predicate{
	domain.DomainContentEntries: func(o config.Options) bool {
		return o.Data || o.Includes(string(domain.DomainContentEntries))
	},
	domain.DomainTranslations: func(o config.Options) bool {
		return o.TranslationsEnabled() || o.Includes(string(domain.DomainTranslations))
	},
}

// Build filters the base order with the inclusion rules. It performs no I/O
// and returns the same plan for the same options.
func Build(opts config.Options) Plan {
	base := domain.BaseOrder()
	kept := make([]domain.Domain, 0, len(base))
	for _, d := range base {
		if keep, ok := inclusion[d]; ok && !keep(opts) {
			continue
		}
		kept = append(kept, d)
	}
	return Plan{domains: kept}
}

// Domains returns a copy of the planned domains.
func (p Plan) Domains() []domain.Domain {
	return slices.Clone(p.domains)
}

// Len returns the number of planned domains.
func (p Plan) Len() int {
	return len(p.domains)
}

// At returns the i-th planned domain.
func (p Plan) At(i int) domain.Domain {
	return p.domains[i]
}

// Contains reports whether d is planned.
func (p Plan) Contains(d domain.Domain) bool {
	return slices.Contains(p.domains, d)
}

// Equal reports whether both plans list the same domains in the same order.
func (p Plan) Equal(other Plan) bool {
	return slices.Equal(p.domains, other.domains)
}

func (p Plan) String() string {
	names := make([]string, len(p.domains))
	for i, d := range p.domains {
		names[i] = string(d)
	}
	return strings.Join(names, " -> ")
}
