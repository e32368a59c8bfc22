package setcat_test

import (
	"iter"
	"testing"

	"github.com/on-the-ground/categor_ive_go/setcat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func naturals() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

func naturalSemantics(tag string) *setcat.Semantics[int] {
	return &setcat.Semantics[int]{
		Iterate: naturals,
		Has:     func(v int) bool { return v >= 0 },
		Tag:     tag,
	}
}

func TestAttach(t *testing.T) {
	u := setcat.NewUniverse()
	c := setcat.MakeCarrier(u, 1, 2, 3)

	sem := &setcat.Semantics[int]{
		Iterate: c.Iterate,
		Has:     func(v int) bool { return v > 0 },
	}
	require.NoError(t, setcat.Attach[int](u, c, sem))
	require.NoError(t, setcat.Attach[int](u, c, sem), "re-attaching the same bundle is a no-op")

	other := &setcat.Semantics[int]{Iterate: c.Iterate, Has: c.Has}
	err := setcat.Attach[int](u, c, other)
	assert.ErrorIs(t, err, setcat.ErrRegistryConflict)

	got, ok := setcat.Lookup[int](u, c)
	require.True(t, ok)
	assert.Same(t, sem, got)

	// registry membership goes through the attached predicate
	assert.True(t, setcat.Has[int](u, c, 42))
	assert.False(t, c.Has(42))
}

func TestAttach_RequiresIterateAndHas(t *testing.T) {
	u := setcat.NewUniverse()
	c := setcat.MakeCarrier(u, 1)
	err := setcat.Attach[int](u, c, &setcat.Semantics[int]{Iterate: c.Iterate})
	assert.ErrorIs(t, err, setcat.ErrShapeMismatch)

	_, err = setcat.MakeLazyCarrier(u, &setcat.Semantics[int]{Has: c.Has})
	assert.ErrorIs(t, err, setcat.ErrShapeMismatch)
}

func TestLookup_EngineCarriersAreRegistered(t *testing.T) {
	u := setcat.NewUniverse()
	a := setcat.MakeCarrier(u, 0, 1)
	p := setcat.Product(u, a, a)

	sem, ok := setcat.Lookup(u, p.Object)
	require.True(t, ok)
	n, finite := sem.Cardinality.Count()
	assert.True(t, finite)
	assert.EqualValues(t, 4, n)
}

func TestEquals_CustomEquality(t *testing.T) {
	u := setcat.NewUniverse()
	mod3 := func(a, b int) bool { return a%3 == b%3 }
	c, err := setcat.MakeCarrierFrom(u, &setcat.Semantics[int]{
		Iterate: func() iter.Seq[int] {
			return func(yield func(int) bool) {
				for _, v := range []int{0, 1, 2, 3, 4} {
					if !yield(v) {
						return
					}
				}
			}
		},
		Has:         func(v int) bool { return v >= 0 },
		Equals:      mod3,
		Cardinality: setcat.Finite(5),
		Tag:         "Z3",
	})
	require.NoError(t, err)
	assert.Equal(t, setcat.Materialized, c.Kind())
	assert.Equal(t, []int{0, 1, 2}, setcat.Take(c, 10), "duplicates under the custom equality are dropped")
	assert.True(t, setcat.Equals(u, c, 1, 7))
	assert.True(t, c.Has(5))
}

func TestMakeCarrierFrom_LazyBeyondLimit(t *testing.T) {
	u := setcat.NewUniverse(setcat.WithConfig(setcat.Config{MaxMaterialized: 4}))

	c, err := setcat.MakeCarrierFrom(u, &setcat.Semantics[int]{
		Iterate:     naturals,
		Has:         func(v int) bool { return v >= 0 && v < 10 },
		Cardinality: setcat.Finite(10),
	})
	require.NoError(t, err)
	assert.Equal(t, setcat.Lazy, c.Kind())
	assert.Equal(t, "10", c.Cardinality().String())

	c, err = setcat.MakeCarrierFrom(u, naturalSemantics("N"))
	require.NoError(t, err)
	assert.Equal(t, setcat.Lazy, c.Kind())
	assert.False(t, c.Cardinality().IsFinite())
}

func TestMakeCarrierFrom_EmptyFinite(t *testing.T) {
	u := setcat.NewUniverse()
	c, err := setcat.MakeCarrierFrom(u, &setcat.Semantics[int]{
		Iterate:     naturals,
		Has:         func(int) bool { return false },
		Cardinality: setcat.Finite(0),
	})
	require.NoError(t, err)
	assert.Equal(t, setcat.Materialized, c.Kind())
	assert.Empty(t, setcat.Take(c, 3))
}

func TestAttach_LazyCarrierKeepsCallerBundle(t *testing.T) {
	u := setcat.NewUniverse(setcat.WithConfig(setcat.Config{MaxMaterialized: 4}))
	sem := naturalSemantics("N")
	n, err := setcat.MakeLazyCarrier(u, sem)
	require.NoError(t, err)

	got, ok := setcat.Lookup[int](u, n)
	require.True(t, ok)
	assert.Same(t, sem, got)
	require.NoError(t, setcat.Attach[int](u, n, sem), "re-attaching the same bundle is a no-op")
	err = setcat.Attach[int](u, n, naturalSemantics("N"))
	assert.ErrorIs(t, err, setcat.ErrRegistryConflict)

	fromSem := naturalSemantics("M")
	c, err := setcat.MakeCarrierFrom(u, fromSem)
	require.NoError(t, err)
	require.Equal(t, setcat.Lazy, c.Kind())
	got, ok = setcat.Lookup(u, c)
	require.True(t, ok)
	assert.Same(t, fromSem, got)
	require.NoError(t, setcat.Attach(u, c, fromSem))
}
