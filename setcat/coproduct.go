package setcat

import (
	"fmt"
	"iter"
	"time"

	"github.com/on-the-ground/categor_ive_go/internal/helper"
)

// Side tells which summand a tagged value came from.
type Side int

const (
	LeftSide Side = iota
	RightSide
)

func (s Side) String() string {
	if s == LeftSide {
		return "left"
	}
	return "right"
}

// Tagged is a canonical element of a coproduct carrier.
type Tagged[A, B comparable] struct {
	side  Side
	left  A
	right B
}

func (t *Tagged[A, B]) Side() Side { return t.side }

// Left returns the wrapped value when t came from the left summand.
func (t *Tagged[A, B]) Left() (A, bool) { return t.left, t.side == LeftSide }

// Right returns the wrapped value when t came from the right summand.
func (t *Tagged[A, B]) Right() (B, bool) { return t.right, t.side == RightSide }

func (t *Tagged[A, B]) String() string {
	if t.side == LeftSide {
		return fmt.Sprintf("inl(%v)", t.left)
	}
	return fmt.Sprintf("inr(%v)", t.right)
}

// CoproductData is the coproduct of Left and Right: the tagged-union carrier
// Object and its injections.
type CoproductData[A, B comparable] struct {
	Object Carrier[*Tagged[A, B]]
	Left   Carrier[A]
	Right  Carrier[B]
	Inl    *Morphism[A, *Tagged[A, B]]
	Inr    *Morphism[B, *Tagged[A, B]]

	u      *Universe
	lefts  map[A]*Tagged[A, B]
	rights map[B]*Tagged[A, B]
}

// Coproduct returns the coproduct of left and right, cached per ordered pair
// of carriers. The carrier is materialized when |left|+|right| is finite and
// within Config.MaxMaterialized; a lazy carrier interleaves the summands.
func Coproduct[A, B comparable](u *Universe, left Carrier[A], right Carrier[B]) *CoproductData[A, B] {
	if cached, ok := helper.GetTypedValueOf2[*CoproductData[A, B]](func() (any, bool) {
		return lookup2(u.coproducts, left, right)
	}); ok {
		u.cacheHit(kindCoproduct, cached.Object.Tag())
		return cached
	}

	start := time.Now()
	c := &CoproductData[A, B]{
		Left:   left,
		Right:  right,
		u:      u,
		lefts:  map[A]*Tagged[A, B]{},
		rights: map[B]*Tagged[A, B]{},
	}
	card := addCardinality(left.Cardinality(), right.Cardinality())
	tag := fmt.Sprintf("(%s+%s)", left.Tag(), right.Tag())

	if card.fits(u.cfg.MaxMaterialized) {
		n, _ := card.Count()
		elems := make([]*Tagged[A, B], 0, n)
		for a := range left.Iterate() {
			elems = append(elems, c.internLeft(a))
		}
		for b := range right.Iterate() {
			elems = append(elems, c.internRight(b))
		}
		set := newSet(elems, nil, tag)
		register[*Tagged[A, B]](u, set)
		c.Object = set
	} else {
		c.Object = newLazy(&Semantics[*Tagged[A, B]]{
			Iterate:     c.interleave,
			Has:         c.owns,
			Cardinality: card,
			Tag:         tag,
		})
		register(u, c.Object)
	}

	c.Inl = newMorphism(u, left, c.Object, c.internLeft)
	c.Inr = newMorphism(u, right, c.Object, c.internRight)

	store2(u.coproducts, left, right, c)
	u.constructed(kindCoproduct, c.Object.Kind(), tag, card, start)
	return c
}

// InjectLeft returns the canonical inl(a).
func (c *CoproductData[A, B]) InjectLeft(a A) (*Tagged[A, B], error) {
	if !Has(c.u, c.Left, a) {
		return nil, fmt.Errorf("%w: %v is not in %s", ErrContainment, a, c.Left.Tag())
	}
	return c.internLeft(a), nil
}

// InjectRight returns the canonical inr(b).
func (c *CoproductData[A, B]) InjectRight(b B) (*Tagged[A, B], error) {
	if !Has(c.u, c.Right, b) {
		return nil, fmt.Errorf("%w: %v is not in %s", ErrContainment, b, c.Right.Tag())
	}
	return c.internRight(b), nil
}

func (c *CoproductData[A, B]) internLeft(a A) *Tagged[A, B] {
	t, ok := c.lefts[a]
	if !ok {
		t = &Tagged[A, B]{side: LeftSide, left: a}
		c.lefts[a] = t
	}
	return t
}

func (c *CoproductData[A, B]) internRight(b B) *Tagged[A, B] {
	t, ok := c.rights[b]
	if !ok {
		t = &Tagged[A, B]{side: RightSide, right: b}
		c.rights[b] = t
	}
	return t
}

func (c *CoproductData[A, B]) owns(t *Tagged[A, B]) bool {
	if t == nil {
		return false
	}
	if t.side == LeftSide {
		return c.lefts[t.left] == t && Has(c.u, c.Left, t.left)
	}
	return c.rights[t.right] == t && Has(c.u, c.Right, t.right)
}

// interleave alternates between the summands until both are exhausted.
func (c *CoproductData[A, B]) interleave() iter.Seq[*Tagged[A, B]] {
	return func(yield func(*Tagged[A, B]) bool) {
		nextA, stopA := iter.Pull(c.Left.Iterate())
		defer stopA()
		nextB, stopB := iter.Pull(c.Right.Iterate())
		defer stopB()

		doneA, doneB := false, false
		for !doneA || !doneB {
			if !doneA {
				if a, ok := nextA(); ok {
					if !yield(c.internLeft(a)) {
						return
					}
				} else {
					doneA = true
				}
			}
			if !doneB {
				if b, ok := nextB(); ok {
					if !yield(c.internRight(b)) {
						return
					}
				} else {
					doneB = true
				}
			}
		}
	}
}

// Copair builds the mediating morphism out of the coproduct:
// inl(a) ↦ f(a), inr(b) ↦ g(b). f and g must share codomain and start at
// Left and Right respectively.
func Copair[A, B, Y comparable](c *CoproductData[A, B], codomain Carrier[Y], f *Morphism[A, Y], g *Morphism[B, Y]) (*Morphism[*Tagged[A, B], Y], error) {
	if f == nil || g == nil {
		return nil, fmt.Errorf("%w: copair needs two legs", ErrShapeMismatch)
	}
	if f.cod != codomain || g.cod != codomain {
		return nil, fmt.Errorf("%w: copair legs must share the codomain %s", ErrShapeMismatch, codomain.Tag())
	}
	if f.dom != c.Left {
		return nil, fmt.Errorf("%w: first leg starts at %s, not %s", ErrShapeMismatch, f.dom.Tag(), c.Left.Tag())
	}
	if g.dom != c.Right {
		return nil, fmt.Errorf("%w: second leg starts at %s, not %s", ErrShapeMismatch, g.dom.Tag(), c.Right.Tag())
	}
	return newMorphism(c.u, c.Object, codomain, func(t *Tagged[A, B]) Y {
		if t.side == LeftSide {
			return f.fn(t.left)
		}
		return g.fn(t.right)
	}), nil
}
