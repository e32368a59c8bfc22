package setcat_test

import (
	"testing"

	"github.com/on-the-ground/categor_ive_go/setcat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestMakeMorphism_Containment(t *testing.T) {
	u := setcat.NewUniverse()
	a := setcat.MakeCarrier(u, 1, 2, 3)
	b := setcat.MakeCarrier(u, 2, 4)

	double, err := setcat.MakeMorphism(u, a, b, func(v int) int { return v * 2 })
	assert.Nil(t, double)
	require.ErrorIs(t, err, setcat.ErrContainment)
	assert.Len(t, multierr.Errors(err), 1, "only 3 ↦ 6 escapes")

	shift, err := setcat.MakeMorphism(u, a, b, func(v int) int { return v + 10 })
	assert.Nil(t, shift)
	assert.Len(t, multierr.Errors(err), 3)

	half, err := setcat.MakeMorphism(u, b, a, func(v int) int { return v / 2 })
	require.NoError(t, err)
	assert.Equal(t, 2, half.Apply(4))
	assert.Same(t, b, half.Domain())
	assert.Same(t, a, half.Codomain())
}

func TestMakeMorphism_CapsReportedViolations(t *testing.T) {
	u := setcat.NewUniverse()
	n, err := setcat.MakeLazyCarrier(u, naturalSemantics("N"))
	require.NoError(t, err)
	empty := setcat.MakeCarrier[int](u)

	_, err = setcat.MakeMorphism[int, int](u, n, empty, func(v int) int { return v })
	require.ErrorIs(t, err, setcat.ErrContainment)
	assert.Len(t, multierr.Errors(err), 8)
}

func TestMakeMorphism_LazyDomainIsSampled(t *testing.T) {
	u := setcat.NewUniverse(setcat.WithConfig(setcat.Config{ValidationSample: 100}))
	n, err := setcat.MakeLazyCarrier(u, naturalSemantics("N"))
	require.NoError(t, err)

	below, err := setcat.MakeLazyCarrier(u, &setcat.Semantics[int]{
		Iterate: naturals,
		Has:     func(v int) bool { return v >= 0 && v < 100 },
	})
	require.NoError(t, err)

	// the first 100 naturals all stay below 100
	m, err := setcat.MakeMorphism[int, int](u, n, below, func(v int) int { return v })
	require.NoError(t, err)
	assert.True(t, setcat.IsMorphism(m))
}

func TestMakeMorphism_Shape(t *testing.T) {
	u := setcat.NewUniverse()
	a := setcat.MakeCarrier(u, 1)
	_, err := setcat.MakeMorphism[int, int](u, a, a, nil)
	assert.ErrorIs(t, err, setcat.ErrShapeMismatch)
	_, err = setcat.MakeMorphism[int, int](u, nil, a, func(v int) int { return v })
	assert.ErrorIs(t, err, setcat.ErrShapeMismatch)
}

func TestIdentity(t *testing.T) {
	u := setcat.NewUniverse()
	a := setcat.MakeCarrier(u, "x", "y")

	id := setcat.Identity[string](u, a)
	assert.Same(t, id, setcat.Identity[string](u, a))
	assert.True(t, setcat.IsMorphism(id))

	idid, err := setcat.Compose(id, id)
	require.NoError(t, err)
	assert.True(t, setcat.Equal(idid, id))
	assert.Same(t, id, idid)
}

func TestCompose(t *testing.T) {
	u := setcat.NewUniverse()
	a := setcat.MakeCarrier(u, 0, 1, 2)
	b := setcat.MakeCarrier(u, 0, 2, 4)
	c := setcat.MakeCarrier(u, "0", "2", "4", "6")
	d := setcat.MakeCarrier(u, 1, 2)

	f, err := setcat.MakeMorphism(u, a, b, func(v int) int { return v * 2 })
	require.NoError(t, err)
	g, err := setcat.MakeMorphism(u, b, c, func(v int) string { return string(rune('0' + v)) })
	require.NoError(t, err)
	h, err := setcat.MakeMorphism(u, c, d, func(s string) int { return len(s) })
	require.NoError(t, err)

	gf, err := setcat.Compose(g, f)
	require.NoError(t, err)
	assert.Equal(t, "4", gf.Apply(2))
	assert.True(t, setcat.IsMorphism(gf))

	// associativity
	left, err := setcat.Compose(h, gf)
	require.NoError(t, err)
	hg, err := setcat.Compose(h, g)
	require.NoError(t, err)
	right, err := setcat.Compose(hg, f)
	require.NoError(t, err)
	assert.True(t, setcat.Equal(left, right))

	// unit laws
	withIDLeft, err := setcat.Compose(setcat.Identity[string](u, c), g)
	require.NoError(t, err)
	assert.True(t, setcat.Equal(withIDLeft, g))
	withIDRight, err := setcat.Compose(g, setcat.Identity[int](u, b))
	require.NoError(t, err)
	assert.True(t, setcat.Equal(withIDRight, g))

	_, err = setcat.Compose(f, f)
	assert.ErrorIs(t, err, setcat.ErrShapeMismatch)
}

func TestEqual(t *testing.T) {
	u := setcat.NewUniverse()
	a := setcat.MakeCarrier(u, -1, 0, 1)
	b := setcat.MakeCarrier(u, 0, 1)
	other := setcat.MakeCarrier(u, 0, 1)

	abs, err := setcat.MakeMorphism(u, a, b, func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	})
	require.NoError(t, err)
	sq, err := setcat.MakeMorphism(u, a, b, func(v int) int { return v * v })
	require.NoError(t, err)
	assert.True(t, setcat.Equal(abs, sq))

	zero, err := setcat.MakeMorphism(u, a, b, func(int) int { return 0 })
	require.NoError(t, err)
	assert.False(t, setcat.Equal(abs, zero))

	sqOther, err := setcat.MakeMorphism(u, a, other, func(v int) int { return v * v })
	require.NoError(t, err)
	assert.False(t, setcat.Equal(sq, sqOther), "different codomains by identity")
}

func TestIsMorphism(t *testing.T) {
	assert.False(t, setcat.IsMorphism(nil))
	assert.False(t, setcat.IsMorphism(42))
	assert.False(t, setcat.IsMorphism((*setcat.Morphism[int, int])(nil)))
	assert.False(t, setcat.IsMorphism(&setcat.Morphism[int, int]{}))
	assert.False(t, setcat.IsMorphism(selfValidating{}), "a Validate method alone is not enough")
}

type selfValidating struct{}

func (selfValidating) Validate() error { return nil }
