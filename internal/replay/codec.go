package replay

import (
	"sort"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
)

// Codec translates one domain's events to and from record payloads. The
// domain packages each provide one.
type Codec interface {
	Domain() string
	Encode(event any) (kind string, payload []byte, err error)
	Decode(kind string, payload []byte) (any, error)
}

// CodecRegistry resolves codecs by domain tag.
type CodecRegistry struct {
	codecs map[string]Codec
}

// NewCodecRegistry creates an empty codec registry.
func NewCodecRegistry() *CodecRegistry {
	return &CodecRegistry{codecs: make(map[string]Codec)}
}

// Register adds a codec. Registering a domain twice is an error.
func (r *CodecRegistry) Register(c Codec) error {
	if _, dup := r.codecs[c.Domain()]; dup {
		return apperrors.WithMetadata(apperrors.CodeRegistryDuplicateDomain, "codec already registered",
			map[string]string{"domain": c.Domain()})
	}
	r.codecs[c.Domain()] = c
	return nil
}

// Lookup resolves the codec for a domain.
func (r *CodecRegistry) Lookup(domain string) (Codec, error) {
	c, ok := r.codecs[domain]
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeRegistryUnknownDomain, "no codec for domain",
			map[string]string{"domain": domain})
	}
	return c, nil
}

// Domains lists the registered domains in lexicographic order.
func (r *CodecRegistry) Domains() []string {
	out := make([]string, 0, len(r.codecs))
	for d := range r.codecs {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
