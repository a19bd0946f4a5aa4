package observe_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/webriots/gentools"
	"github.com/webriots/gentools/observe"
)

func counting(limit int) gentools.Generator[int, int, int] {
	return gentools.New(func(yield func(int) int) int {
		total := 0
		for i := 0; i < limit; i++ {
			total += yield(i)
		}
		return total
	})
}

func TestTap(t *testing.T) {
	r := require.New(t)

	var seen []int
	g := observe.Tap(counting(3), func(v int) {
		seen = append(seen, v)
	})

	out, ok := g.Next()
	r.True(ok)
	r.Equal(0, out)

	out, ok = g.Send(10)
	r.True(ok)
	r.Equal(1, out)

	out, ok = g.Send(10)
	r.True(ok)
	r.Equal(2, out)

	_, ok = g.Send(10)
	r.False(ok)

	ret, returned := g.Result()
	r.True(returned)
	r.Equal(30, ret)
	r.Equal([]int{0, 1, 2}, seen, "tapping must not change the values")
}

func TestTapNilInspector(t *testing.T) {
	r := require.New(t)

	vals, _ := gentools.Collect(observe.Tap(gentools.FromSlice[int, int, int]([]int{1, 2}), nil))
	r.Equal([]int{1, 2}, vals)
}

func TestInstrument(t *testing.T) {
	r := require.New(t)

	meter := noop.NewMeterProvider().Meter("gentools/observe")
	counters, err := observe.NewCounters(meter)
	r.NoError(err)

	ctx := context.Background()
	g := observe.Instrument(ctx, counting(2), counters)

	out, ok := g.Next()
	r.True(ok)
	r.Equal(0, out)

	out, ok = g.Send(5)
	r.True(ok)
	r.Equal(1, out)

	_, ok = g.Send(5)
	r.False(ok)
	r.True(g.Done())

	ret, returned := g.Result()
	r.True(returned)
	r.Equal(10, ret)
}

func TestInstrumentClose(t *testing.T) {
	r := require.New(t)

	meter := noop.NewMeterProvider().Meter("gentools/observe")
	counters, err := observe.NewCounters(meter)
	r.NoError(err)

	g := observe.Instrument(context.Background(), counting(10), counters)
	_, ok := g.Next()
	r.True(ok)

	g.Close()
	r.True(g.Done())
	_, returned := g.Result()
	r.False(returned)
}
