package setcat

import (
	"fmt"
	"iter"
	"time"

	"github.com/on-the-ground/categor_ive_go/internal/helper"
	"go.uber.org/multierr"
)

// Truth returns the subobject classifier {false, true} of u.
func Truth(u *Universe) *Set[bool] {
	if u.truth == nil {
		start := time.Now()
		u.truth = newSet([]bool{false, true}, nil, "2")
		register[bool](u, u.truth)
		u.constructed(kindCarrier, Materialized, u.truth.tag, u.truth.Cardinality(), start)
	}
	return u.truth
}

// PowerObjectData is the exponential Truth^Anchor read as the carrier of
// subsets of Anchor.
type PowerObjectData[T comparable] struct {
	Anchor             Carrier[T]
	Exponential        *ExponentialData[T, bool]
	Power              Carrier[*Function[T, bool]]
	Membership         *ProductData[*Function[T, bool], T]
	MembershipMorphism *Morphism[*Pair[*Function[T, bool], T], bool]

	u     *Universe
	names map[*Morphism[T, bool]]*Function[T, bool]
	chars map[*Function[T, bool]]*Morphism[T, bool]
}

// PowerObject returns the power object of anchor, cached per anchor.
func PowerObject[T comparable](u *Universe, anchor Carrier[T]) *PowerObjectData[T] {
	if cached, ok := u.powers[anchor]; ok {
		po := cached.(*PowerObjectData[T])
		u.cacheHit(kindPowerObject, po.Power.Tag())
		return po
	}
	start := time.Now()
	exp := Exponential[T, bool](u, anchor, Truth(u))
	po := &PowerObjectData[T]{
		Anchor:             anchor,
		Exponential:        exp,
		Power:              exp.Object,
		Membership:         exp.EvalProduct,
		MembershipMorphism: exp.Eval,
		u:                  u,
		names:              map[*Morphism[T, bool]]*Function[T, bool]{},
		chars:              map[*Function[T, bool]]*Morphism[T, bool]{},
	}
	u.powers[anchor] = po
	u.constructed(kindPowerObject, po.Power.Kind(), po.Power.Tag(), po.Power.Cardinality(), start)
	return po
}

// LookupPowerObject returns the power object of anchor if PowerObject has
// already built it.
func LookupPowerObject[T comparable](u *Universe, anchor Carrier[T]) (*PowerObjectData[T], error) {
	po, err := helper.GetTypedValueOf[*PowerObjectData[T]](func() (any, error) {
		v, ok := u.powers[anchor]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnregisteredAnchor, anchor.Tag())
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// Name returns the element of Power that represents the characteristic chi.
func (po *PowerObjectData[T]) Name(chi *Morphism[T, bool]) (*Function[T, bool], error) {
	if chi == nil {
		return nil, fmt.Errorf("%w: name needs a characteristic", ErrShapeMismatch)
	}
	if f, ok := po.names[chi]; ok {
		return f, nil
	}
	if chi.dom != po.Anchor || chi.cod != Carrier[bool](Truth(po.u)) {
		return nil, fmt.Errorf("%w: %s → %s is not a characteristic of %s",
			ErrShapeMismatch, chi.dom.Tag(), chi.cod.Tag(), po.Anchor.Tag())
	}
	f, err := po.Exponential.Register(chi.fn)
	if err != nil {
		return nil, err
	}
	po.names[chi] = f
	return f, nil
}

// Characteristic turns an element of Power back into a morphism Anchor → Truth.
// The same element always yields the same morphism.
func (po *PowerObjectData[T]) Characteristic(f *Function[T, bool]) (*Morphism[T, bool], error) {
	if !Has(po.u, po.Power, f) {
		return nil, fmt.Errorf("%w: %v is not in %s", ErrContainment, f, po.Power.Tag())
	}
	if chi, ok := po.chars[f]; ok {
		return chi, nil
	}
	chi := newMorphism[T, bool](po.u, po.Anchor, Truth(po.u), f.Apply)
	po.names[chi] = f
	po.chars[f] = chi
	return chi, nil
}

// CharacteristicOfSubset derives the characteristic Ambient → Truth of the
// subset embedded by inclusion. The inclusion must send every element to
// itself inside its codomain; it is checked on every call. The result is the
// power object's characteristic for the subset's element, so subset carriers
// with the same elements share one characteristic on a finite ambient. It is
// cached per (ambient, subset) pair.
func CharacteristicOfSubset[T comparable](u *Universe, inclusion *Morphism[T, T]) (*Morphism[T, bool], error) {
	if inclusion == nil {
		return nil, fmt.Errorf("%w: characteristic needs an inclusion", ErrShapeMismatch)
	}
	if err := checkInclusion(u, inclusion); err != nil {
		return nil, err
	}
	ambient, subset := inclusion.cod, inclusion.dom
	if cached, ok := helper.GetTypedValueOf2[*Morphism[T, bool]](func() (any, bool) {
		return lookup2(u.characteristics, ambient, subset)
	}); ok {
		u.cacheHit(kindCharacteristic, subset.Tag())
		return cached, nil
	}

	start := time.Now()
	po := PowerObject(u, ambient)
	f, err := po.Exponential.Register(func(x T) bool { return Has(u, subset, x) })
	if err != nil {
		return nil, err
	}
	chi, err := po.Characteristic(f)
	if err != nil {
		return nil, err
	}
	store2(u.characteristics, ambient, subset, chi)
	u.constructed(kindCharacteristic, subset.Kind(), subset.Tag(), subset.Cardinality(), start)
	return chi, nil
}

func checkInclusion[T comparable](u *Universe, inclusion *Morphism[T, T]) error {
	if err := checkImage(u, sample(u, inclusion.dom), inclusion.cod, inclusion.fn); err != nil {
		return err
	}
	var errs error
	violations := 0
	for x := range sample(u, inclusion.dom) {
		if y := inclusion.fn(x); !Equals(u, inclusion.cod, x, y) {
			errs = multierr.Append(errs, fmt.Errorf("%w: inclusion moves %v to %v", ErrShapeMismatch, x, y))
			if violations++; violations == maxReportedViolations {
				break
			}
		}
	}
	return errs
}

// SubsetFromCharacteristic filters the domain of chi by chi and returns the
// inclusion of the result, cached per chi. The subset is materialized when
// the ambient carrier is, lazy otherwise. Feeding the inclusion back to
// CharacteristicOfSubset returns chi.
func SubsetFromCharacteristic[T comparable](u *Universe, chi *Morphism[T, bool]) (*Morphism[T, T], error) {
	if chi == nil {
		return nil, fmt.Errorf("%w: subset needs a characteristic", ErrShapeMismatch)
	}
	if chi.cod != Carrier[bool](Truth(u)) {
		return nil, fmt.Errorf("%w: %s is not the truth carrier", ErrShapeMismatch, chi.cod.Tag())
	}
	if cached, ok := u.subsets[chi]; ok {
		inclusion := cached.(*Morphism[T, T])
		u.cacheHit(kindSubset, inclusion.dom.Tag())
		return inclusion, nil
	}

	start := time.Now()
	ambient := chi.dom
	tag := fmt.Sprintf("{x∈%s | χ}", ambient.Tag())
	var subset Carrier[T]
	if ambient.Kind() == Materialized {
		var elems []T
		for x := range ambient.Iterate() {
			if chi.fn(x) {
				elems = append(elems, x)
			}
		}
		subset = newSet(elems, func(a, b T) bool { return Equals(u, ambient, a, b) }, tag)
	} else {
		subset = newLazy(&Semantics[T]{
			Iterate: func() iter.Seq[T] {
				return func(yield func(T) bool) {
					for x := range ambient.Iterate() {
						if chi.fn(x) && !yield(x) {
							return
						}
					}
				}
			},
			Has: func(x T) bool {
				return Has(u, ambient, x) && chi.fn(x)
			},
			Equals: func(a, b T) bool { return Equals(u, ambient, a, b) },
			Tag:    tag,
		})
	}
	register(u, subset)

	inclusion := newMorphism(u, subset, ambient, func(x T) T { return x })
	if err := checkInclusion(u, inclusion); err != nil {
		return nil, err
	}
	store2(u.characteristics, ambient, subset, chi)
	u.subsets[chi] = inclusion
	u.constructed(kindSubset, subset.Kind(), tag, subset.Cardinality(), start)
	return inclusion, nil
}
