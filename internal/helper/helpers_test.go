package helper_test

import (
	"errors"
	"testing"

	"github.com/on-the-ground/categor_ive_go/internal/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTypedValueOf(t *testing.T) {
	v, err := helper.GetTypedValueOf[int](func() (any, error) { return 3, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = helper.GetTypedValueOf[int](func() (any, error) { return "3", nil })
	assert.ErrorIs(t, err, helper.ErrUnexpectedType)

	boom := errors.New("boom")
	_, err = helper.GetTypedValueOf[int](func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestGetTypedValueOf2(t *testing.T) {
	m := map[string]any{"n": 1, "s": "x"}
	lookup := func(k string) func() (any, bool) {
		return func() (any, bool) {
			v, ok := m[k]
			return v, ok
		}
	}

	n, ok := helper.GetTypedValueOf2[int](lookup("n"))
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = helper.GetTypedValueOf2[int](lookup("s"))
	assert.False(t, ok)

	_, ok = helper.GetTypedValueOf2[int](lookup("missing"))
	assert.False(t, ok)
}
