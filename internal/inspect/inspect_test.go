package inspect_test

import (
	"bytes"
	"iter"
	"testing"

	"github.com/on-the-ground/categor_ive_go/internal/inspect"
	"github.com/on-the-ground/categor_ive_go/setcat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest_OrderIndependent(t *testing.T) {
	u := setcat.NewUniverse()
	a := setcat.MakeCarrier(u, "x", "y", "z")
	b := setcat.MakeCarrier(u, "z", "x", "y")
	c := setcat.MakeCarrier(u, "x", "y")

	assert.Equal(t, inspect.Digest[string](a, 0), inspect.Digest[string](b, 0))
	assert.NotEqual(t, inspect.Digest[string](a, 0), inspect.Digest[string](c, 0))
}

func TestNewReport(t *testing.T) {
	u := setcat.NewUniverse()
	a := setcat.MakeTaggedCarrier(u, "A", 0, 1)
	p := setcat.Product(u, a, a)

	r := inspect.NewReport(p.Object, 0)
	assert.Equal(t, "(A×A)", r.Tag)
	assert.Equal(t, "materialized", r.Kind)
	assert.Equal(t, "4", r.Cardinality)
	assert.Equal(t, []string{"(0, 0)", "(0, 1)", "(1, 0)", "(1, 1)"}, r.Elements)
	assert.False(t, r.Truncated)
	assert.Equal(t, inspect.Digest(p.Object, 0), r.Digest)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	assert.Contains(t, buf.String(), "cardinality: 4\n")
	assert.Contains(t, buf.String(), "  (1, 0)\n")
}

func TestNewReport_TruncatesInfiniteCarriers(t *testing.T) {
	u := setcat.NewUniverse()
	n, err := setcat.MakeLazyCarrier(u, &setcat.Semantics[int]{
		Iterate: func() iter.Seq[int] {
			return func(yield func(int) bool) {
				for i := 0; yield(i); i++ {
				}
			}
		},
		Has: func(v int) bool { return v >= 0 },
		Tag: "N",
	})
	require.NoError(t, err)

	r := inspect.NewReport[int](n, 3)
	assert.Equal(t, []string{"0", "1", "2"}, r.Elements)
	assert.True(t, r.Truncated)
	assert.Equal(t, inspect.Digest[int](n, 3), r.Digest, "the digest covers the printed elements only")
	assert.Equal(t, "unknown", r.Cardinality)

	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf))
	assert.Contains(t, buf.String(), "  ...\n")
}
