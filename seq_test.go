package gentools

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValues(t *testing.T) {
	r := require.New(t)

	var got []int
	for v := range Values(FromSlice[int, struct{}, struct{}]([]int{1, 2, 3})) {
		got = append(got, v)
	}
	r.Equal([]int{1, 2, 3}, got)
}

func TestValuesEarlyBreakCloses(t *testing.T) {
	r := require.New(t)

	closed := false
	g := New(func(yield func(int) struct{}) struct{} {
		defer func() {
			if p := recover(); p != nil {
				closed = true
				panic(p)
			}
		}()
		for i := 0; ; i++ {
			yield(i)
		}
	})

	for v := range Values(g) {
		if v == 2 {
			break
		}
	}
	r.True(closed)
	r.True(g.Done())
}

func TestCollect(t *testing.T) {
	r := require.New(t)

	g := New(func(yield func(int) struct{}) string {
		yield(1)
		yield(2)
		return "end"
	})

	vals, ret := Collect(g)
	r.Equal([]int{1, 2}, vals)
	r.Equal("end", ret)
}

func TestFromSeq(t *testing.T) {
	r := require.New(t)

	seq := func(yield func(string) bool) {
		yield("a")
		yield("b")
	}

	vals, _ := Collect(FromSeq[string, struct{}, struct{}](seq))
	r.Equal([]string{"a", "b"}, vals)
}

func TestFromSliceCompose(t *testing.T) {
	r := require.New(t)

	g := YieldMapped(FromSlice[int, struct{}, struct{}]([]int{1, 2, 3}), func(v int) int {
		return v * v
	})
	vals, _ := Collect(g)
	r.Equal([]int{1, 4, 9}, vals)
}
