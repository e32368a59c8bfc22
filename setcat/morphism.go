package setcat

import (
	"fmt"
	"iter"
	"time"

	"go.uber.org/multierr"
)

// maxReportedViolations caps how many containment violations one validation collects.
const maxReportedViolations = 8

// Morphism is a total function between two carriers whose image lies in its
// codomain.
type Morphism[A, B comparable] struct {
	u        *Universe
	dom      Carrier[A]
	cod      Carrier[B]
	fn       func(A) B
	identity bool
}

func newMorphism[A, B comparable](u *Universe, dom Carrier[A], cod Carrier[B], fn func(A) B) *Morphism[A, B] {
	return &Morphism[A, B]{u: u, dom: dom, cod: cod, fn: fn}
}

// MakeMorphism builds a morphism and validates that the image of every domain
// element lies in cod. Lazy domains are validated on their first
// Config.ValidationSample elements.
func MakeMorphism[A, B comparable](u *Universe, dom Carrier[A], cod Carrier[B], fn func(A) B) (*Morphism[A, B], error) {
	if dom == nil || cod == nil || fn == nil {
		return nil, fmt.Errorf("%w: morphism needs a domain, a codomain and a function", ErrShapeMismatch)
	}
	m := newMorphism(u, dom, cod, fn)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Morphism[A, B]) Domain() Carrier[A] { return m.dom }

func (m *Morphism[A, B]) Codomain() Carrier[B] { return m.cod }

func (m *Morphism[A, B]) Apply(a A) B { return m.fn(a) }

// Validate checks the sampled image of the domain against the codomain.
func (m *Morphism[A, B]) Validate() error {
	if m == nil || m.u == nil || m.dom == nil || m.cod == nil || m.fn == nil {
		return fmt.Errorf("%w: incomplete morphism", ErrShapeMismatch)
	}
	return checkImage(m.u, sample(m.u, m.dom), m.cod, m.fn)
}

// checkImage collects up to maxReportedViolations elements of dom whose
// image under fn escapes cod.
func checkImage[A, B comparable](u *Universe, dom iter.Seq[A], cod Carrier[B], fn func(A) B) error {
	var errs error
	violations := 0
	for a := range dom {
		b := fn(a)
		if Has(u, cod, b) {
			continue
		}
		errs = multierr.Append(errs, fmt.Errorf("%w: %v maps to %v outside %s", ErrContainment, a, b, cod.Tag()))
		violations++
		if violations == maxReportedViolations {
			break
		}
	}
	return errs
}

// Identity returns the identity morphism of c. Repeated calls return the same morphism.
func Identity[T comparable](u *Universe, c Carrier[T]) *Morphism[T, T] {
	if cached, ok := u.identities[c]; ok {
		return cached.(*Morphism[T, T])
	}
	start := time.Now()
	id := newMorphism(u, c, c, func(v T) T { return v })
	id.identity = true
	u.identities[c] = id
	u.constructed(kindIdentity, c.Kind(), c.Tag(), c.Cardinality(), start)
	return id
}

// Compose returns g ∘ f. f's codomain must be g's domain.
// Composing with an identity returns the other morphism unchanged.
func Compose[A, B, C comparable](g *Morphism[B, C], f *Morphism[A, B]) (*Morphism[A, C], error) {
	if g == nil || f == nil {
		return nil, fmt.Errorf("%w: compose needs two morphisms", ErrShapeMismatch)
	}
	if f.cod != g.dom {
		return nil, fmt.Errorf("%w: codomain %s is not domain %s", ErrShapeMismatch, f.cod.Tag(), g.dom.Tag())
	}
	if g.identity {
		// C == B here, so f already has the composite's type.
		if same, ok := any(f).(*Morphism[A, C]); ok {
			return same, nil
		}
	}
	if f.identity {
		if same, ok := any(g).(*Morphism[A, C]); ok {
			return same, nil
		}
	}
	return newMorphism(f.u, f.dom, g.cod, func(a A) C { return g.fn(f.fn(a)) }), nil
}

// validator is implemented by *Morphism only.
type validator interface {
	Validate() error
	morphism()
}

func (m *Morphism[A, B]) morphism() {}

// IsMorphism reports whether candidate is a complete morphism whose sampled
// image lies in its codomain.
func IsMorphism(candidate any) bool {
	v, ok := candidate.(validator)
	if !ok {
		return false
	}
	return v.Validate() == nil
}

// Equal reports whether f and g share domain and codomain and agree on every
// sampled domain element under the codomain's equality.
func Equal[A, B comparable](f, g *Morphism[A, B]) bool {
	if f == nil || g == nil {
		return f == g
	}
	if f.dom != g.dom || f.cod != g.cod {
		return false
	}
	for a := range sample(f.u, f.dom) {
		if !Equals(f.u, f.cod, f.fn(a), g.fn(a)) {
			return false
		}
	}
	return true
}
