package setcat

import (
	"fmt"
	"iter"
	"time"

	"github.com/on-the-ground/categor_ive_go/internal/helper"
)

// CarrierKind tells a materialized carrier from a lazy one.
type CarrierKind int

const (
	Materialized CarrierKind = iota
	Lazy
)

func (k CarrierKind) String() string {
	switch k {
	case Materialized:
		return "materialized"
	case Lazy:
		return "lazy"
	default:
		return fmt.Sprintf("CarrierKind(%d)", int(k))
	}
}

// Carrier is a set of elements of type T.
//
// Carriers are compared by identity throughout the engine, so implementations
// must be pointer types. Iterate returns a restartable sequence: each call
// replays the carrier from its first element.
type Carrier[T comparable] interface {
	Iterate() iter.Seq[T]
	Has(v T) bool
	Equals(a, b T) bool
	Cardinality() Cardinality
	Tag() string
	Kind() CarrierKind
}

// Semantics is the capability bundle attached to a carrier.
// Iterate and Has are required; a nil Equals means ==; the zero Cardinality
// means unknown.
type Semantics[T comparable] struct {
	Iterate     func() iter.Seq[T]
	Has         func(v T) bool
	Equals      func(a, b T) bool
	Cardinality Cardinality
	Tag         string
}

func (s *Semantics[T]) equals(a, b T) bool {
	if s.Equals != nil {
		return s.Equals(a, b)
	}
	return a == b
}

func (s *Semantics[T]) validate() error {
	if s == nil || s.Iterate == nil || s.Has == nil {
		return fmt.Errorf("%w: semantics needs Iterate and Has", ErrShapeMismatch)
	}
	return nil
}

// Attach records sem as the semantics of carrier. Attaching the same bundle
// twice is a no-op; attaching a different one fails with ErrRegistryConflict.
func Attach[T comparable](u *Universe, carrier Carrier[T], sem *Semantics[T]) error {
	if err := sem.validate(); err != nil {
		return err
	}
	if existing, ok := u.semantics[carrier]; ok {
		if existing == any(sem) {
			return nil
		}
		return fmt.Errorf("%w: carrier %s already has semantics", ErrRegistryConflict, carrier.Tag())
	}
	u.semantics[carrier] = sem
	return nil
}

// Lookup returns the semantics attached to carrier.
func Lookup[T comparable](u *Universe, carrier Carrier[T]) (*Semantics[T], bool) {
	return helper.GetTypedValueOf2[*Semantics[T]](func() (any, bool) {
		v, ok := u.semantics[carrier]
		return v, ok
	})
}

// Has tests membership through the attached semantics, falling back to the
// carrier's own test. A carrier built over the attached bundle answers
// itself, so its memo stays in use.
func Has[T comparable](u *Universe, carrier Carrier[T], v T) bool {
	sem, ok := Lookup(u, carrier)
	if !ok {
		return carrier.Has(v)
	}
	if b, isBundled := carrier.(bundled[T]); isBundled && b.semantics() == sem {
		return carrier.Has(v)
	}
	return sem.Has(v)
}

// Equals compares two elements through the attached semantics, falling back
// to the carrier's own equality.
func Equals[T comparable](u *Universe, carrier Carrier[T], a, b T) bool {
	if sem, ok := Lookup(u, carrier); ok {
		return sem.equals(a, b)
	}
	return carrier.Equals(a, b)
}

// Set is a materialized carrier: a finite, insertion-ordered collection.
type Set[T comparable] struct {
	elems []T
	index map[T]int
	eq    func(a, b T) bool
	tag   string
}

var _ Carrier[int] = (*Set[int])(nil)

func newSet[T comparable](elems []T, eq func(a, b T) bool, tag string) *Set[T] {
	s := &Set[T]{index: make(map[T]int, len(elems)), eq: eq}
	for _, e := range elems {
		if s.Has(e) {
			continue
		}
		s.index[e] = len(s.elems)
		s.elems = append(s.elems, e)
	}
	if tag == "" {
		tag = fmt.Sprintf("set%d", len(s.elems))
	}
	s.tag = tag
	return s
}

// MakeCarrier builds a materialized carrier from elems, dropping duplicates.
func MakeCarrier[T comparable](u *Universe, elems ...T) *Set[T] {
	start := time.Now()
	s := newSet(elems, nil, "")
	u.constructed(kindCarrier, Materialized, s.tag, s.Cardinality(), start)
	return s
}

// MakeTaggedCarrier is MakeCarrier with a diagnostic tag.
func MakeTaggedCarrier[T comparable](u *Universe, tag string, elems ...T) *Set[T] {
	start := time.Now()
	s := newSet(elems, nil, tag)
	u.constructed(kindCarrier, Materialized, s.tag, s.Cardinality(), start)
	return s
}

// MakeCarrierFrom builds a carrier from a semantics bundle. Bundles declaring
// a finite cardinality within Config.MaxMaterialized are enumerated into a
// Set with sem attached; anything else becomes a LazyCarrier over sem.
func MakeCarrierFrom[T comparable](u *Universe, sem *Semantics[T]) (Carrier[T], error) {
	if err := sem.validate(); err != nil {
		return nil, err
	}
	if !sem.Cardinality.fits(u.cfg.MaxMaterialized) {
		l, err := MakeLazyCarrier(u, sem)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	start := time.Now()
	n, _ := sem.Cardinality.Count()
	elems := make([]T, 0, n)
	for v := range sem.Iterate() {
		if uint64(len(elems)) >= n {
			break
		}
		elems = append(elems, v)
	}
	s := newSet(elems, sem.Equals, sem.Tag)
	if err := Attach[T](u, s, sem); err != nil {
		return nil, err
	}
	u.constructed(kindCarrier, Materialized, s.tag, s.Cardinality(), start)
	return s, nil
}

func (s *Set[T]) Iterate() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range s.elems {
			if !yield(e) {
				return
			}
		}
	}
}

func (s *Set[T]) Has(v T) bool {
	_, ok := s.indexOf(v)
	return ok
}

func (s *Set[T]) Equals(a, b T) bool {
	if s.eq != nil {
		return s.eq(a, b)
	}
	return a == b
}

func (s *Set[T]) Cardinality() Cardinality { return Finite(uint64(len(s.elems))) }

func (s *Set[T]) Tag() string { return s.tag }

func (s *Set[T]) Kind() CarrierKind { return Materialized }

// Len returns the number of elements.
func (s *Set[T]) Len() int { return len(s.elems) }

// Elements returns a copy of the elements in insertion order.
func (s *Set[T]) Elements() []T {
	return append([]T(nil), s.elems...)
}

// indexOf returns the position of v, honouring a custom equality.
func (s *Set[T]) indexOf(v T) (int, bool) {
	if i, ok := s.index[v]; ok {
		return i, true
	}
	if s.eq == nil {
		return 0, false
	}
	for i, e := range s.elems {
		if s.eq(e, v) {
			return i, true
		}
	}
	return 0, false
}

// Take returns at most n elements of carrier in iteration order.
func Take[T comparable](carrier Carrier[T], n int) []T {
	out := make([]T, 0, n)
	if n <= 0 {
		return out
	}
	for v := range carrier.Iterate() {
		out = append(out, v)
		if len(out) == n {
			break
		}
	}
	return out
}

// nativeSemantics exposes a carrier's own behaviour as a bundle, so that
// registry lookups on engine-built carriers go through the carrier itself.
func nativeSemantics[T comparable](c Carrier[T]) *Semantics[T] {
	return &Semantics[T]{
		Iterate:     c.Iterate,
		Has:         c.Has,
		Equals:      c.Equals,
		Cardinality: c.Cardinality(),
		Tag:         c.Tag(),
	}
}

// bundled is implemented by carriers built over a semantics bundle.
type bundled[T comparable] interface {
	semantics() *Semantics[T]
}

// register attaches the bundle a fresh carrier was built over, or its native
// bundle. Fresh carriers have no bundle yet, so this cannot conflict.
func register[T comparable](u *Universe, c Carrier[T]) {
	if b, ok := c.(bundled[T]); ok {
		u.semantics[c] = b.semantics()
		return
	}
	u.semantics[c] = nativeSemantics(c)
}

// sample iterates a materialized carrier completely and the first
// Config.ValidationSample elements of a lazy one.
func sample[T comparable](u *Universe, c Carrier[T]) iter.Seq[T] {
	if c.Kind() == Materialized {
		return c.Iterate()
	}
	limit := u.cfg.ValidationSample
	return func(yield func(T) bool) {
		i := 0
		for v := range c.Iterate() {
			if i >= limit {
				return
			}
			i++
			if !yield(v) {
				return
			}
		}
	}
}
