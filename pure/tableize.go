// Package pure holds the memoization primitives of the engine: a trie keyed by
// value sequences and Tableize, which turns a pure function into a lazily
// filled table.
//
// Tableize assumes referential transparency. Do not use it on functions that
// depend on time, I/O or mutable state.
package pure

import (
	"fmt"
	"reflect"
)

type ComparableOrStringer any
type ComparableOrString any

// TableizeI1O1 memoizes a one-argument pure function. maxTableSize bounds each
// generation of the underlying trie; 0 keeps every result.
func TableizeI1O1[I1 ComparableOrStringer, O1 any](
	pureFn func(I1) O1,
	maxTableSize int,
) func(I1) O1 {
	tableized := tableize(
		func(args ...ComparableOrStringer) O1 {
			return pureFn(args[0].(I1))
		},
		maxTableSize,
	)
	return func(i1 I1) O1 {
		return tableized(i1)
	}
}

// tableKey keeps comparable values as they are, so that two distinct values
// never share a slot. Non-comparable values fall back to their String form.
func tableKey(i ComparableOrStringer) ComparableOrString {
	if i == nil || reflect.TypeOf(i).Comparable() {
		return i
	}
	if stringer, ok := i.(fmt.Stringer); ok {
		return stringer.String()
	}
	panic(fmt.Sprintf("tableize: %T is neither comparable nor a fmt.Stringer", i))
}

func tableize[O any](
	pureFn func(...ComparableOrStringer) O,
	maxTableSize int,
) func(...ComparableOrStringer) O {
	memo := NewTrie[O](maxTableSize)
	return func(args ...ComparableOrStringer) O {
		keys := make([]ComparableOrString, len(args))
		for i, arg := range args {
			keys[i] = tableKey(arg)
		}
		v, ok := memo.Load(keys)
		if !ok {
			v = pureFn(args...)
			memo.Store(keys, v)
		}
		return v
	}
}
