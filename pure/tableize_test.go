package pure_test

import (
	"fmt"
	"testing"

	"github.com/on-the-ground/categor_ive_go/pure"

	"github.com/stretchr/testify/assert"
)

func TestTableizeI1O1(t *testing.T) {
	count := 0
	fn := pure.TableizeI1O1(func(i int) int {
		count++
		return i * 2
	}, 2)

	assert.Equal(t, 4, fn(2))
	assert.Equal(t, 4, fn(2)) // cached
	assert.Equal(t, 1, count)
}

func TestTableizeI1O1_Unbounded(t *testing.T) {
	count := 0
	fn := pure.TableizeI1O1(func(i int) int {
		count++
		return i + 1
	}, 0)

	for i := 0; i < 100; i++ {
		fn(i)
	}
	for i := 0; i < 100; i++ {
		assert.Equal(t, i+1, fn(i))
	}
	assert.Equal(t, 100, count)
}

type label struct{ name string }

func (l label) String() string { return "same" }

func TestTableizeKeepsComparableStringersApart(t *testing.T) {
	fn := pure.TableizeI1O1(func(l label) string {
		return l.name
	}, 0)

	assert.Equal(t, "a", fn(label{name: "a"}))
	assert.Equal(t, "b", fn(label{name: "b"}))
}

type NonComparable struct {
	Field []int // slices are not comparable
}

func (n NonComparable) String() string {
	return fmt.Sprintf("NonComparable%v", n.Field)
}

func TestTableizeWithStringerFallback(t *testing.T) {
	count := 0
	fn := pure.TableizeI1O1(func(n NonComparable) int {
		count++
		return len(n.Field)
	}, 2)

	val := fn(NonComparable{Field: []int{1, 2, 3}})
	val2 := fn(NonComparable{Field: []int{1, 2, 3}})

	assert.Equal(t, 3, val)
	assert.Equal(t, 3, val2)
	assert.Equal(t, 1, count)
}

type TotallyInvalid struct {
	Field []int
}

func TestTableizeWithPanicIfNoComparableOrStringer(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic due to missing Stringer and non-comparable type")
		}
	}()
	fn := pure.TableizeI1O1(func(t TotallyInvalid) int {
		return len(t.Field)
	}, 2)

	_ = fn(TotallyInvalid{Field: []int{1}})
}
