package setcat

import (
	"fmt"
	"iter"
	"time"

	"github.com/on-the-ground/categor_ive_go/internal/helper"
)

// Pair is a canonical element of a product carrier. A ProductData hands out
// exactly one *Pair per component pair, so pairs compare by identity.
type Pair[A, B comparable] struct {
	first  A
	second B
}

func (p *Pair[A, B]) First() A { return p.first }

func (p *Pair[A, B]) Second() B { return p.second }

func (p *Pair[A, B]) String() string { return fmt.Sprintf("(%v, %v)", p.first, p.second) }

// ProductData is the product of Left and Right: the pair carrier Object and
// its projections.
type ProductData[A, B comparable] struct {
	Object Carrier[*Pair[A, B]]
	Left   Carrier[A]
	Right  Carrier[B]
	Pi1    *Morphism[*Pair[A, B], A]
	Pi2    *Morphism[*Pair[A, B], B]

	u     *Universe
	pairs map[A]map[B]*Pair[A, B]
}

// Product returns the product of left and right, cached per ordered pair of
// carriers.
//
// The pair carrier is materialized when |left|·|right| is finite and within
// Config.MaxMaterialized. Otherwise it is lazy and dovetails the factors, so
// every pair is eventually reached even when both factors are infinite.
func Product[A, B comparable](u *Universe, left Carrier[A], right Carrier[B]) *ProductData[A, B] {
	if cached, ok := helper.GetTypedValueOf2[*ProductData[A, B]](func() (any, bool) {
		return lookup2(u.products, left, right)
	}); ok {
		u.cacheHit(kindProduct, cached.Object.Tag())
		return cached
	}

	start := time.Now()
	p := &ProductData[A, B]{
		Left:  left,
		Right: right,
		u:     u,
		pairs: map[A]map[B]*Pair[A, B]{},
	}
	card := mulCardinality(left.Cardinality(), right.Cardinality())
	tag := fmt.Sprintf("(%s×%s)", left.Tag(), right.Tag())

	if card.fits(u.cfg.MaxMaterialized) {
		n, _ := card.Count()
		elems := make([]*Pair[A, B], 0, n)
		for a := range left.Iterate() {
			for b := range right.Iterate() {
				elems = append(elems, p.intern(a, b))
			}
		}
		set := newSet(elems, nil, tag)
		register[*Pair[A, B]](u, set)
		p.Object = set
	} else {
		p.Object = newLazy(&Semantics[*Pair[A, B]]{
			Iterate: func() iter.Seq[*Pair[A, B]] {
				return func(yield func(*Pair[A, B]) bool) {
					for a, b := range dovetail(left.Iterate(), right.Iterate()) {
						if !yield(p.intern(a, b)) {
							return
						}
					}
				}
			},
			Has:         p.owns,
			Cardinality: card,
			Tag:         tag,
		})
		register(u, p.Object)
	}

	p.Pi1 = newMorphism(u, p.Object, left, (*Pair[A, B]).First)
	p.Pi2 = newMorphism(u, p.Object, right, (*Pair[A, B]).Second)

	store2(u.products, left, right, p)
	u.constructed(kindProduct, p.Object.Kind(), tag, card, start)
	return p
}

// Pair returns the canonical pair (a, b). Components outside their factor
// fail with ErrContainment.
func (p *ProductData[A, B]) Pair(a A, b B) (*Pair[A, B], error) {
	if !Has(p.u, p.Left, a) {
		return nil, fmt.Errorf("%w: %v is not in %s", ErrContainment, a, p.Left.Tag())
	}
	if !Has(p.u, p.Right, b) {
		return nil, fmt.Errorf("%w: %v is not in %s", ErrContainment, b, p.Right.Tag())
	}
	return p.intern(a, b), nil
}

// MustPair is the panic-on-failure variant of Pair.
func (p *ProductData[A, B]) MustPair(a A, b B) *Pair[A, B] {
	pair, err := p.Pair(a, b)
	if err != nil {
		panic(err)
	}
	return pair
}

func (p *ProductData[A, B]) intern(a A, b B) *Pair[A, B] {
	row, ok := p.pairs[a]
	if !ok {
		row = map[B]*Pair[A, B]{}
		p.pairs[a] = row
	}
	pair, ok := row[b]
	if !ok {
		pair = &Pair[A, B]{first: a, second: b}
		row[b] = pair
	}
	return pair
}

// owns reports whether x was handed out by this product and both of its
// components still belong to their factors.
func (p *ProductData[A, B]) owns(x *Pair[A, B]) bool {
	if x == nil || p.pairs[x.first][x.second] != x {
		return false
	}
	return Has(p.u, p.Left, x.first) && Has(p.u, p.Right, x.second)
}

// Tuple builds the mediating morphism x ↦ (f(x), g(x)) into the product.
// Both legs must have domain as their domain, and f and g must target Left
// and Right respectively.
func Tuple[X, A, B comparable](p *ProductData[A, B], domain Carrier[X], f *Morphism[X, A], g *Morphism[X, B]) (*Morphism[X, *Pair[A, B]], error) {
	if f == nil || g == nil {
		return nil, fmt.Errorf("%w: tuple needs two legs", ErrShapeMismatch)
	}
	if f.dom != domain || g.dom != domain {
		return nil, fmt.Errorf("%w: tuple legs must share the domain %s", ErrShapeMismatch, domain.Tag())
	}
	if f.cod != p.Left {
		return nil, fmt.Errorf("%w: first leg targets %s, not %s", ErrShapeMismatch, f.cod.Tag(), p.Left.Tag())
	}
	if g.cod != p.Right {
		return nil, fmt.Errorf("%w: second leg targets %s, not %s", ErrShapeMismatch, g.cod.Tag(), p.Right.Tag())
	}
	return newMorphism(p.u, domain, p.Object, func(x X) *Pair[A, B] {
		return p.intern(f.fn(x), g.fn(x))
	}), nil
}

// dovetail walks the anti-diagonals of as × bs: (0,0), (0,1), (1,0), (0,2)...
// Each call pulls the sequences afresh.
func dovetail[A, B any](as iter.Seq[A], bs iter.Seq[B]) iter.Seq2[A, B] {
	return func(yield func(A, B) bool) {
		nextA, stopA := iter.Pull(as)
		defer stopA()
		nextB, stopB := iter.Pull(bs)
		defer stopB()

		var xs []A
		var ys []B
		doneA, doneB := false, false
		for d := 0; ; d++ {
			if !doneA {
				if a, ok := nextA(); ok {
					xs = append(xs, a)
				} else {
					doneA = true
				}
			}
			if !doneB {
				if b, ok := nextB(); ok {
					ys = append(ys, b)
				} else {
					doneB = true
				}
			}
			if (doneA && len(xs) == 0) || (doneB && len(ys) == 0) {
				return
			}
			if doneA && doneB && d > len(xs)+len(ys)-2 {
				return
			}
			for i := 0; i <= d; i++ {
				j := d - i
				if i >= len(xs) || j >= len(ys) {
					continue
				}
				if !yield(xs[i], ys[j]) {
					return
				}
			}
		}
	}
}
