package scheme

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/hct"
)

// Constructor builds a scheme from a source colour.
type Constructor func(source hct.HCT, isDark bool) (*Scheme, error)

// Registry maps scheme identifiers to constructors. A Registry is not safe
// for concurrent registration; build it up front and then share it.
type Registry struct {
	ctors map[string]Constructor
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// DefaultRegistry returns a registry holding every built-in variant under
// its String name.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, v := range BuiltinVariants() {
		r.mustRegister(v.String(), VariantConstructor(v))
	}
	return r
}

// Clone returns an independent copy, so that registering on it leaves r
// unchanged.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	maps.Copy(c.ctors, r.ctors)
	c.order = slices.Clone(r.order)
	return c
}

// VariantConstructor adapts a built-in variant to a Constructor.
func VariantConstructor(v Variant) Constructor {
	return func(source hct.HCT, isDark bool) (*Scheme, error) {
		return New(source, v, isDark)
	}
}

// CustomConstructor adapts custom options to a Constructor. The options are
// validated when the constructor is called.
func CustomConstructor(opts CustomOptions) Constructor {
	return func(source hct.HCT, isDark bool) (*Scheme, error) {
		return NewCustom(source, opts, isDark)
	}
}

// Register adds a constructor. Names are case-insensitive and must be
// unique.
func (r *Registry) Register(name string, ctor Constructor) error {
	key := normalizeName(name)
	if key == "" {
		return fmt.Errorf("%w: empty scheme name", ErrInvalidOptions)
	}
	if ctor == nil {
		return fmt.Errorf("%w: nil constructor for %q", ErrInvalidOptions, name)
	}
	if _, exists := r.ctors[key]; exists {
		return fmt.Errorf("%w: scheme %q already registered", ErrInvalidOptions, name)
	}
	r.ctors[key] = ctor
	r.order = append(r.order, key)
	return nil
}

func (r *Registry) mustRegister(name string, ctor Constructor) {
	if err := r.Register(name, ctor); err != nil {
		panic(err)
	}
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Lookup returns the constructor for a name. Built-in variants may also be
// named in any form ParseVariant accepts.
func (r *Registry) Lookup(name string) (Constructor, bool) {
	key, ok := r.key(name)
	if !ok {
		return nil, false
	}
	return r.ctors[key], true
}

func (r *Registry) key(name string) (string, bool) {
	key := normalizeName(name)
	if _, ok := r.ctors[key]; ok {
		return key, true
	}
	if v, err := ParseVariant(name); err == nil {
		if _, ok := r.ctors[v.String()]; ok {
			return v.String(), true
		}
	}
	return "", false
}

// New builds the named scheme. The scheme's Name and Descriptor report the
// registered name.
func (r *Registry) New(name string, source hct.HCT, isDark bool) (*Scheme, error) {
	key, ok := r.key(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	s, err := r.ctors[key](source, isDark)
	if err != nil {
		return nil, fmt.Errorf("building %q scheme: %w", name, err)
	}
	s.name = key
	return s, nil
}

// Build reconstructs a scheme from its descriptor.
func (r *Registry) Build(d Descriptor) (*Scheme, error) {
	return r.New(d.Variant, hct.FromRGBA(d.OriginOrDefault()), d.IsDark)
}

func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}

// Descriptor is the serialisable identity of a scheme. Role colours are
// always derived again from it rather than stored.
type Descriptor struct {
	// Origin is the source colour; nil means DefaultSource.
	Origin  *cie.RGBA `json:"origin"`
	IsDark  bool      `json:"is_dark"`
	Variant string    `json:"variant"`
}

// OriginOrDefault returns the origin colour, substituting DefaultSource.
func (d Descriptor) OriginOrDefault() cie.RGBA {
	if d.Origin == nil {
		return DefaultSource
	}
	return *d.Origin
}
