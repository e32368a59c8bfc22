package setcat

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/on-the-ground/categor_ive_go/internal/helper"
	"github.com/on-the-ground/categor_ive_go/pure"
)

// Function is an element of an exponential carrier: a total function from
// the base to the codomain.
//
// On the finite path a Function is its output table over the base's
// iteration order and is canonical: one output sequence, one *Function.
// On the unbounded path it wraps a registered Go function with a memo table.
type Function[A, B comparable] struct {
	exp     *ExponentialData[A, B]
	outputs []B
	apply   func(A) B
	id      int
}

// Apply evaluates f at a. Arguments outside the base panic with ErrContainment.
func (f *Function[A, B]) Apply(a A) B {
	if !f.exp.finite {
		return f.apply(a)
	}
	i, ok := f.exp.position(a)
	if !ok {
		panic(fmt.Errorf("%w: %v is not in %s", ErrContainment, a, f.exp.Base.Tag()))
	}
	return f.outputs[i]
}

// Outputs returns the output table on the finite path.
func (f *Function[A, B]) Outputs() ([]B, bool) {
	if !f.exp.finite {
		return nil, false
	}
	return slices.Clone(f.outputs), true
}

// Exponential returns the exponential f belongs to.
func (f *Function[A, B]) Exponential() *ExponentialData[A, B] { return f.exp }

func (f *Function[A, B]) String() string {
	if !f.exp.finite {
		return fmt.Sprintf("%s#%d", f.exp.Object.Tag(), f.id)
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, a := range f.exp.baseElems {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v↦%v", a, f.outputs[i])
	}
	sb.WriteByte('}')
	return sb.String()
}

// ExponentialData is the exponential Codomain^Base: the carrier of functions
// Object, the evaluation product Object × Base and the evaluation morphism.
type ExponentialData[A, B comparable] struct {
	Object      Carrier[*Function[A, B]]
	Base        Carrier[A]
	Codomain    Carrier[B]
	EvalProduct *ProductData[*Function[A, B], A]
	Eval        *Morphism[*Pair[*Function[A, B], A], B]

	u       *Universe
	finite  bool
	curries map[any]any

	// finite path
	baseElems []A
	baseIndex map[A]int
	codElems  []B
	codIndex  map[B]int
	trie      *pure.Trie[*Function[A, B]]

	// unbounded path
	known     map[*Function[A, B]]struct{}
	knownList []*Function[A, B]
}

// Exponential returns codomain^base, cached per ordered pair of carriers.
//
// When both carriers are finite within Config.MaxMaterialized and
// |codomain|^|base| does not overflow, functions are canonical output tables
// interned in a trie keyed by the output sequence. Up to
// Config.MaxExponential functions are enumerated eagerly by branching over
// the base; larger exponentials enumerate lazily in the same order.
//
// Otherwise the carrier holds exactly the functions passed to Register.
func Exponential[A, B comparable](u *Universe, base Carrier[A], codomain Carrier[B]) *ExponentialData[A, B] {
	if cached, ok := helper.GetTypedValueOf2[*ExponentialData[A, B]](func() (any, bool) {
		return lookup2(u.exponentials, base, codomain)
	}); ok {
		u.cacheHit(kindExponential, cached.Object.Tag())
		return cached
	}

	start := time.Now()
	e := &ExponentialData[A, B]{
		Base:     base,
		Codomain: codomain,
		u:        u,
		curries:  map[any]any{},
	}
	tag := fmt.Sprintf("(%s^%s)", codomain.Tag(), base.Tag())
	limit := u.cfg.MaxMaterialized
	card := Unknown()
	if base.Cardinality().fits(limit) && codomain.Cardinality().fits(limit) {
		card = powCardinality(codomain.Cardinality(), base.Cardinality())
	}

	if card.IsFinite() {
		e.finite = true
		e.baseElems = slices.Collect(base.Iterate())
		e.codElems = slices.Collect(codomain.Iterate())
		e.baseIndex = indexElements(e.baseElems)
		e.codIndex = indexElements(e.codElems)
		e.trie = pure.NewTrie[*Function[A, B]](0)
		card = powCardinality(Finite(uint64(len(e.codElems))), Finite(uint64(len(e.baseElems))))
	}

	switch {
	case card.fits(u.cfg.MaxExponential):
		n, _ := card.Count()
		elems := make([]*Function[A, B], 0, n)
		e.enumerate(make([]B, 0, len(e.baseElems)), func(f *Function[A, B]) {
			elems = append(elems, f)
		})
		set := newSet(elems, nil, tag)
		register[*Function[A, B]](u, set)
		e.Object = set
	case card.IsFinite():
		e.Object = newLazy(&Semantics[*Function[A, B]]{
			Iterate:     e.enumerateLazily,
			Has:         e.owns,
			Cardinality: card,
			Tag:         tag,
		})
		register(u, e.Object)
	default:
		e.known = map[*Function[A, B]]struct{}{}
		e.Object = newLazy(&Semantics[*Function[A, B]]{
			Iterate: e.iterateKnown,
			Has:     e.owns,
			Tag:     tag,
		})
		register(u, e.Object)
	}

	e.EvalProduct = Product(u, e.Object, base)
	e.Eval = newMorphism(u, e.EvalProduct.Object, codomain, func(p *Pair[*Function[A, B], A]) B {
		return p.first.Apply(p.second)
	})

	store2(u.exponentials, base, codomain, e)
	u.constructed(kindExponential, e.Object.Kind(), tag, card, start)
	return e
}

// Finite reports whether functions are canonical output tables.
func (e *ExponentialData[A, B]) Finite() bool { return e.finite }

// BaseElements returns the base in the order output tables are indexed by.
func (e *ExponentialData[A, B]) BaseElements() []A { return slices.Clone(e.baseElems) }

// Lookup returns the canonical function with the given output table in
// O(|base|). It fails on the unbounded path, on tables of the wrong length
// and on outputs outside the codomain.
func (e *ExponentialData[A, B]) Lookup(outputs []B) (*Function[A, B], bool) {
	if !e.finite || len(outputs) != len(e.baseElems) {
		return nil, false
	}
	normalized := make([]B, len(outputs))
	for i, b := range outputs {
		rep, ok := e.representative(b)
		if !ok {
			return nil, false
		}
		normalized[i] = rep
	}
	return e.canonical(normalized), true
}

// Register turns fn into an element of the exponential.
//
// On the finite path fn is tabulated over the base and the canonical function
// with that table is returned. On the unbounded path fn is checked on a sample
// of the base, wrapped with a memo table and bounds checks, and added to the
// carrier; every call yields a new element.
func (e *ExponentialData[A, B]) Register(fn func(A) B) (*Function[A, B], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: register needs a function", ErrShapeMismatch)
	}
	if e.finite {
		if err := checkImage(e.u, slices.Values(e.baseElems), e.Codomain, fn); err != nil {
			return nil, err
		}
		outputs := make([]B, len(e.baseElems))
		for i, a := range e.baseElems {
			rep, ok := e.representative(fn(a))
			if !ok {
				return nil, fmt.Errorf("%w: %v maps outside the enumerated %s", ErrContainment, a, e.Codomain.Tag())
			}
			outputs[i] = rep
		}
		return e.canonical(outputs), nil
	}

	if err := checkImage(e.u, sample(e.u, e.Base), e.Codomain, fn); err != nil {
		return nil, err
	}
	u, base, cod := e.u, e.Base, e.Codomain
	memo := pure.TableizeI1O1(func(a A) B {
		b := fn(a)
		if !Has(u, cod, b) {
			panic(fmt.Errorf("%w: %v maps to %v outside %s", ErrContainment, a, b, cod.Tag()))
		}
		return b
	}, u.cfg.MemoTableSize)
	f := &Function[A, B]{exp: e, id: len(e.knownList)}
	f.apply = func(a A) B {
		if !Has(u, base, a) {
			panic(fmt.Errorf("%w: %v is not in %s", ErrContainment, a, base.Tag()))
		}
		return memo(a)
	}
	e.known[f] = struct{}{}
	e.knownList = append(e.knownList, f)
	return f, nil
}

func (e *ExponentialData[A, B]) canonical(outputs []B) *Function[A, B] {
	keys := make([]pure.ComparableOrString, len(outputs))
	for i, b := range outputs {
		keys[i] = b
	}
	f, _ := e.trie.LoadOrStore(keys, func() *Function[A, B] {
		return &Function[A, B]{exp: e, outputs: slices.Clone(outputs), id: e.trie.Len()}
	})
	return f
}

// enumerate branches over the base, one codomain choice per position.
func (e *ExponentialData[A, B]) enumerate(prefix []B, emit func(*Function[A, B])) {
	if len(prefix) == len(e.baseElems) {
		emit(e.canonical(prefix))
		return
	}
	for _, b := range e.codElems {
		e.enumerate(append(prefix, b), emit)
	}
}

// enumerateLazily counts through output tables in mixed radix, last base
// position fastest, which is the order enumerate emits.
func (e *ExponentialData[A, B]) enumerateLazily() iter.Seq[*Function[A, B]] {
	return func(yield func(*Function[A, B]) bool) {
		n, m := len(e.baseElems), len(e.codElems)
		if m == 0 && n > 0 {
			return
		}
		digits := make([]int, n)
		outputs := make([]B, n)
		for {
			for i, d := range digits {
				outputs[i] = e.codElems[d]
			}
			if !yield(e.canonical(outputs)) {
				return
			}
			i := n - 1
			for ; i >= 0; i-- {
				digits[i]++
				if digits[i] < m {
					break
				}
				digits[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

func (e *ExponentialData[A, B]) iterateKnown() iter.Seq[*Function[A, B]] {
	return func(yield func(*Function[A, B]) bool) {
		for i := 0; i < len(e.knownList); i++ {
			if !yield(e.knownList[i]) {
				return
			}
		}
	}
}

func (e *ExponentialData[A, B]) owns(f *Function[A, B]) bool {
	if f == nil || f.exp != e {
		return false
	}
	if e.finite {
		return true
	}
	_, ok := e.known[f]
	return ok
}

func (e *ExponentialData[A, B]) position(a A) (int, bool) {
	if i, ok := e.baseIndex[a]; ok {
		return i, true
	}
	for i, x := range e.baseElems {
		if Equals(e.u, e.Base, x, a) {
			return i, true
		}
	}
	return 0, false
}

// representative maps b to the enumerated codomain element equal to it.
func (e *ExponentialData[A, B]) representative(b B) (B, bool) {
	if i, ok := e.codIndex[b]; ok {
		return e.codElems[i], true
	}
	for _, c := range e.codElems {
		if Equals(e.u, e.Codomain, c, b) {
			return c, true
		}
	}
	var zero B
	return zero, false
}

func indexElements[T comparable](elems []T) map[T]int {
	idx := make(map[T]int, len(elems))
	for i, v := range elems {
		if _, ok := idx[v]; !ok {
			idx[v] = i
		}
	}
	return idx
}

// Curry turns m: domain × Base → Codomain into domain → Object,
// x ↦ (a ↦ m(x, a)). A nil product means Product(domain, Base). The curried
// function of each domain element is built once; on materialized domains all
// of them are built up front. Currying the same m again returns the same
// morphism.
func Curry[X, A, B comparable](e *ExponentialData[A, B], domain Carrier[X], product *ProductData[X, A], m *Morphism[*Pair[X, A], B]) (*Morphism[X, *Function[A, B]], error) {
	if m == nil {
		return nil, fmt.Errorf("%w: curry needs a morphism", ErrShapeMismatch)
	}
	if product == nil {
		product = Product(e.u, domain, e.Base)
	}
	if product.Left != domain {
		return nil, fmt.Errorf("%w: product's first factor is %s, not the domain %s", ErrShapeMismatch, product.Left.Tag(), domain.Tag())
	}
	if product.Right != e.Base {
		return nil, fmt.Errorf("%w: product's second factor is %s, not the base %s", ErrShapeMismatch, product.Right.Tag(), e.Base.Tag())
	}
	if m.dom != product.Object {
		return nil, fmt.Errorf("%w: morphism starts at %s, not %s", ErrShapeMismatch, m.dom.Tag(), product.Object.Tag())
	}
	if m.cod != e.Codomain {
		return nil, fmt.Errorf("%w: morphism targets %s, not %s", ErrShapeMismatch, m.cod.Tag(), e.Codomain.Tag())
	}
	if cached, ok := e.curries[m]; ok {
		return cached.(*Morphism[X, *Function[A, B]]), nil
	}

	curried := map[X]*Function[A, B]{}
	at := func(x X) (*Function[A, B], error) {
		if f, ok := curried[x]; ok {
			return f, nil
		}
		f, err := e.Register(func(a A) B { return m.fn(product.intern(x, a)) })
		if err != nil {
			return nil, err
		}
		curried[x] = f
		return f, nil
	}
	if domain.Kind() == Materialized {
		for x := range domain.Iterate() {
			if _, err := at(x); err != nil {
				return nil, err
			}
		}
	}

	c := newMorphism(e.u, domain, e.Object, func(x X) *Function[A, B] {
		f, err := at(x)
		if err != nil {
			panic(err)
		}
		return f
	})
	e.curries[m] = c
	return c, nil
}

// Uncurry turns h: domain → Object into domain × Base → Codomain,
// (x, a) ↦ h(x)(a). A nil product means Product(h.Domain(), Base).
func Uncurry[X, A, B comparable](e *ExponentialData[A, B], product *ProductData[X, A], h *Morphism[X, *Function[A, B]]) (*Morphism[*Pair[X, A], B], error) {
	if h == nil {
		return nil, fmt.Errorf("%w: uncurry needs a morphism", ErrShapeMismatch)
	}
	if h.cod != e.Object {
		return nil, fmt.Errorf("%w: morphism targets %s, not %s", ErrShapeMismatch, h.cod.Tag(), e.Object.Tag())
	}
	if product == nil {
		product = Product(e.u, h.dom, e.Base)
	}
	if product.Left != h.dom {
		return nil, fmt.Errorf("%w: product's first factor is %s, not the domain %s", ErrShapeMismatch, product.Left.Tag(), h.dom.Tag())
	}
	if product.Right != e.Base {
		return nil, fmt.Errorf("%w: product's second factor is %s, not the base %s", ErrShapeMismatch, product.Right.Tag(), e.Base.Tag())
	}
	return newMorphism(e.u, product.Object, e.Codomain, func(p *Pair[X, A]) B {
		return h.fn(p.first).Apply(p.second)
	}), nil
}
