package setcat_test

import (
	"testing"

	"github.com/on-the-ground/categor_ive_go/setcat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyCarrier_IterateRestarts(t *testing.T) {
	u := setcat.NewUniverse()
	n, err := setcat.MakeLazyCarrier(u, naturalSemantics("N"))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, setcat.Take[int](n, 3))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, setcat.Take[int](n, 5), "each Iterate replays from the start")
	assert.Equal(t, []int{0, 1, 2, 3, 4}, n.Confirmed())
	assert.Equal(t, "N", n.Tag())
	assert.Equal(t, setcat.Lazy, n.Kind())
}

func TestLazyCarrier_HasMemoizesPositivesOnly(t *testing.T) {
	u := setcat.NewUniverse()
	calls := 0
	n, err := setcat.MakeLazyCarrier(u, &setcat.Semantics[int]{
		Iterate: naturals,
		Has: func(v int) bool {
			calls++
			return v >= 0
		},
	})
	require.NoError(t, err)

	assert.True(t, n.Has(10))
	assert.True(t, n.Has(10))
	assert.Equal(t, 1, calls)

	assert.False(t, n.Has(-1))
	assert.False(t, n.Has(-1))
	assert.Equal(t, 3, calls)

	assert.Equal(t, []int{10}, n.Confirmed())
	assert.Equal(t, "lazy", n.Tag())
}

func TestLazyCarrier_ReadOnly(t *testing.T) {
	u := setcat.NewUniverse()
	n, err := setcat.MakeLazyCarrier(u, naturalSemantics("N"))
	require.NoError(t, err)

	assert.ErrorIs(t, n.Add(1), setcat.ErrReadOnly)
	assert.ErrorIs(t, n.Delete(1), setcat.ErrReadOnly)
	assert.ErrorIs(t, n.Clear(), setcat.ErrReadOnly)
}

func TestLazyCarrier_RegistryUsesMemo(t *testing.T) {
	u := setcat.NewUniverse()
	n, err := setcat.MakeLazyCarrier(u, naturalSemantics("N"))
	require.NoError(t, err)

	assert.True(t, setcat.Has[int](u, n, 3))
	assert.Equal(t, []int{3}, n.Confirmed())
}
