package mechanic

import (
	"sort"
	"strings"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
)

var (
	// ErrDuplicateDomain indicates a descriptor registered twice.
	ErrDuplicateDomain = apperrors.New(apperrors.CodeRegistryDuplicateDomain, "domain descriptor already registered")
	// ErrUnknownDomain indicates a lookup for an unregistered domain.
	ErrUnknownDomain = apperrors.New(apperrors.CodeRegistryUnknownDomain, "domain descriptor is not registered")
	// ErrInvalidVariant indicates an empty or duplicate variant name.
	ErrInvalidVariant = apperrors.New(apperrors.CodeRegistryInvalidVariant, "descriptor variant names must be unique and non-empty")
)

// Descriptor enumerates a domain's input and event variants. Static analysis
// tooling consumes descriptors to build the publisher/subscriber graph
// without reflecting over domain types.
type Descriptor struct {
	// Domain is the unique domain tag (e.g. "combat").
	Domain string
	// Inputs lists the input variant names the domain accepts.
	Inputs []string
	// Events lists the event kind tags the domain emits.
	Events []string
}

// Registry collects domain descriptors.
type Registry struct {
	descriptors map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]Descriptor)}
}

// Register adds a descriptor. Domain tags are unique; variant names within a
// descriptor must be unique and non-empty.
func (r *Registry) Register(d Descriptor) error {
	d.Domain = strings.TrimSpace(d.Domain)
	if d.Domain == "" {
		return ErrInvalidVariant
	}
	if _, exists := r.descriptors[d.Domain]; exists {
		return ErrDuplicateDomain
	}
	if !uniqueNonEmpty(d.Inputs) || !uniqueNonEmpty(d.Events) {
		return ErrInvalidVariant
	}
	r.descriptors[d.Domain] = d
	return nil
}

// Describe returns the descriptor for a domain tag.
func (r *Registry) Describe(domain string) (Descriptor, error) {
	d, ok := r.descriptors[domain]
	if !ok {
		return Descriptor{}, ErrUnknownDomain
	}
	return d, nil
}

// Domains returns registered domain tags in lexicographic order.
func (r *Registry) Domains() []string {
	domains := make([]string, 0, len(r.descriptors))
	for domain := range r.descriptors {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	return domains
}

func uniqueNonEmpty(names []string) bool {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return false
		}
		if _, dup := seen[name]; dup {
			return false
		}
		seen[name] = struct{}{}
	}
	return true
}
