package setcat

import (
	"fmt"
	"iter"
	"time"
)

// LazyCarrier defers enumeration and membership to a semantics bundle and
// memoizes every element it has yielded or confirmed.
//
// Iterate restarts the underlying sequence on every call; there is no shared
// cursor. Has consults the memo before the semantics predicate and memoizes
// positive answers only. The carrier is read-only.
type LazyCarrier[T comparable] struct {
	sem          *Semantics[T]
	confirmed    []T
	confirmedIdx map[T]struct{}
}

var _ Carrier[int] = (*LazyCarrier[int])(nil)

// MakeLazyCarrier wraps sem in a LazyCarrier and attaches sem to it.
func MakeLazyCarrier[T comparable](u *Universe, sem *Semantics[T]) (*LazyCarrier[T], error) {
	if err := sem.validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	l := newLazy(sem)
	register[T](u, l)
	u.constructed(kindLazyCarrier, Lazy, l.Tag(), l.Cardinality(), start)
	return l, nil
}

func newLazy[T comparable](sem *Semantics[T]) *LazyCarrier[T] {
	return &LazyCarrier[T]{
		sem:          sem,
		confirmedIdx: map[T]struct{}{},
	}
}

func (l *LazyCarrier[T]) Iterate() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range l.sem.Iterate() {
			l.confirm(v)
			if !yield(v) {
				return
			}
		}
	}
}

func (l *LazyCarrier[T]) Has(v T) bool {
	if _, ok := l.confirmedIdx[v]; ok {
		return true
	}
	if l.sem.Equals != nil {
		for _, c := range l.confirmed {
			if l.sem.Equals(c, v) {
				return true
			}
		}
	}
	if !l.sem.Has(v) {
		return false
	}
	l.confirm(v)
	return true
}

func (l *LazyCarrier[T]) Equals(a, b T) bool { return l.sem.equals(a, b) }

// Cardinality is the declared cardinality of the semantics, unknown when
// none was declared.
func (l *LazyCarrier[T]) Cardinality() Cardinality { return l.sem.Cardinality }

func (l *LazyCarrier[T]) Tag() string {
	if l.sem.Tag == "" {
		return "lazy"
	}
	return l.sem.Tag
}

func (l *LazyCarrier[T]) Kind() CarrierKind { return Lazy }

// Confirmed returns a snapshot of the memoized elements in confirmation order.
func (l *LazyCarrier[T]) Confirmed() []T {
	return append([]T(nil), l.confirmed...)
}

func (l *LazyCarrier[T]) Add(T) error {
	return fmt.Errorf("%w: add on %s", ErrReadOnly, l.Tag())
}

func (l *LazyCarrier[T]) Delete(T) error {
	return fmt.Errorf("%w: delete on %s", ErrReadOnly, l.Tag())
}

func (l *LazyCarrier[T]) Clear() error {
	return fmt.Errorf("%w: clear on %s", ErrReadOnly, l.Tag())
}

func (l *LazyCarrier[T]) semantics() *Semantics[T] { return l.sem }

func (l *LazyCarrier[T]) confirm(v T) {
	if _, ok := l.confirmedIdx[v]; ok {
		return
	}
	l.confirmedIdx[v] = struct{}{}
	l.confirmed = append(l.confirmed, v)
}
