package setcat

import (
	"fmt"
	"time"
)

// Unit is the single element of the terminal object.
type Unit struct{}

func (Unit) String() string { return "()" }

// Void is the element type of the initial object. The initial carrier has no
// elements, so no Void value ever reaches a morphism.
type Void struct{ _ struct{} }

// TerminalObject returns the one-element carrier {()} of u.
func TerminalObject(u *Universe) *Set[Unit] {
	if u.terminal == nil {
		start := time.Now()
		u.terminal = newSet([]Unit{{}}, nil, "1")
		register[Unit](u, u.terminal)
		u.constructed(kindTerminal, Materialized, u.terminal.tag, u.terminal.Cardinality(), start)
	}
	return u.terminal
}

// ToTerminal returns the unique morphism c → 1.
func ToTerminal[T comparable](u *Universe, c Carrier[T]) *Morphism[T, Unit] {
	if cached, ok := u.terminals[c]; ok {
		return cached.(*Morphism[T, Unit])
	}
	m := newMorphism[T, Unit](u, c, TerminalObject(u), func(T) Unit { return Unit{} })
	u.terminals[c] = m
	return m
}

// InitialObject returns the empty carrier of u.
func InitialObject(u *Universe) *Set[Void] {
	if u.initial == nil {
		start := time.Now()
		u.initial = newSet[Void](nil, nil, "0")
		register[Void](u, u.initial)
		u.constructed(kindInitial, Materialized, u.initial.tag, u.initial.Cardinality(), start)
	}
	return u.initial
}

// FromInitial returns the unique morphism 0 → c.
func FromInitial[T comparable](u *Universe, c Carrier[T]) *Morphism[Void, T] {
	if cached, ok := u.initials[c]; ok {
		return cached.(*Morphism[Void, T])
	}
	m := newMorphism[Void, T](u, InitialObject(u), c, func(v Void) T {
		panic(fmt.Errorf("%w: the initial object has no elements", ErrContainment))
	})
	u.initials[c] = m
	return m
}
