package pipeline_test

import (
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-lazypipe/pkg/pipeline"
	"github.com/askiada/go-lazypipe/pkg/pipeline/model"
)

func double(x int) int { return x * 2 }

func TestChainingIsLazy(t *testing.T) {
	t.Parallel()

	src, pulled := countingSource(t, 5)
	pipe := pipeline.New(src).
		Map(pipeline.MapOf(double)).
		Filter(pipeline.FilterOf(func(x int) bool { return x > 2 })).
		Flatten().
		Zip([]int{1, 2}).
		Product([]string{"a"}).
		GroupBy(pipeline.MapOf(func(x int) int { return x }), pipeline.MapOf(func(x int) int { return x }))

	assert.Zero(t, *pulled)
	assert.Len(t, pipe.Plan(), 6)
}

func TestChainingReturnsSamePipeline(t *testing.T) {
	t.Parallel()

	pipe := pipeline.New(pipeline.FromValues(1))
	assert.Same(t, pipe, pipe.Map(pipeline.MapOf(double)))
	assert.Same(t, pipe, pipe.Filter(pipeline.FilterOf(func(int) bool { return true })))
	assert.Same(t, pipe, pipe.Flatten())
	assert.Same(t, pipe, pipe.Zip())
	assert.Same(t, pipe, pipe.Product())
	assert.Same(t, pipe, pipe.GroupBy(pipeline.MapOf(double), pipeline.MapOf(double)))
}

func TestPlan(t *testing.T) {
	t.Parallel()

	pipe := pipeline.New(pipeline.FromValues(1, 2)).
		Map(pipeline.MapOf(double)).
		Filter(pipeline.FilterOf(func(int) bool { return true }))

	assert.Equal(t, []model.StepInfo{
		{Kind: model.MapStepKind, Name: "1. map", Position: 1},
		{Kind: model.FilterStepKind, Name: "2. filter", Position: 2},
	}, pipe.Plan())
}

func TestMapFilterOrder(t *testing.T) {
	t.Parallel()

	got, err := pipeline.New(pipeline.FromSlice([]int{1, 2, 3, 4})).
		Map(pipeline.MapOf(double)).
		Filter(pipeline.FilterOf(func(x int) bool { return x > 2 })).
		ToList()
	require.NoError(t, err)
	assert.Equal(t, []any{4, 6, 8}, got)
}

func TestPlanReset(t *testing.T) {
	t.Parallel()

	pipe := pipeline.New(pipeline.FromSlice([]int{1, 2, 3}))
	got, err := pipe.Map(pipeline.MapOf(double)).ToList()
	require.NoError(t, err)
	assert.Equal(t, []any{2, 4, 6}, got)
	assert.Empty(t, pipe.Plan())

	got, err = pipe.Filter(pipeline.FilterOf(func(x int) bool { return x != 2 })).ToList()
	require.NoError(t, err)
	assert.Equal(t, []any{1, 3}, got)
	assert.Empty(t, pipe.Plan())
}

func TestPlanResetAfterFailure(t *testing.T) {
	t.Parallel()

	pipe := pipeline.New(pipeline.FromSlice([]int{1, 2, 3}))
	_, err := pipe.Map(pipeline.TryMapOf(func(x int) (int, error) {
		return 0, assert.AnError
	})).Sum()
	require.Error(t, err)
	assert.Empty(t, pipe.Plan())

	total, err := pipe.Sum()
	require.NoError(t, err)
	assert.Equal(t, 6, total)
}

func TestTerminalOnEmptyPlan(t *testing.T) {
	t.Parallel()

	src, pulled := countingSource(t, 4)
	got, err := pipeline.New(src).Count()
	require.NoError(t, err)
	assert.Equal(t, 4, got)
	assert.Equal(t, 4, *pulled)
}

func TestCount(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		pipe *pipeline.Pipeline
		want int
	}{
		"sized source": {
			pipe: pipeline.New(pipeline.FromSlice([]string{"a", "b", "c"})),
			want: 3,
		},
		"single pass source": {
			pipe: pipeline.New(pipeline.FromChan(intChan(t, 7))),
			want: 7,
		},
		"after filter": {
			pipe: pipeline.New(pipeline.FromSlice([]int{1, 2, 3, 4, 5})).
				Filter(pipeline.FilterOf(func(x int) bool { return x%2 == 1 })),
			want: 3,
		},
		"after groupby": {
			pipe: pipeline.New(pipeline.FromSlice([]string{"a", "bb", "c", "dd", "eee"})).
				GroupBy(pipeline.MapOf(func(s string) int { return len(s) }), pipeline.MapOf(strings.ToUpper)),
			want: 3,
		},
		"empty": {
			pipe: pipeline.New(pipeline.FromSlice([]int{})),
			want: 0,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := tc.pipe.Count()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCountReusesSizedSource(t *testing.T) {
	t.Parallel()

	calls := 0
	pipe := pipeline.New(pipeline.FromSlice([]int{1, 2, 3})).
		Map(func(x any) (any, error) {
			calls++

			return x, nil
		})
	got, err := pipe.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.Equal(t, 3, calls)

	got, err = pipe.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.Equal(t, 3, calls)
}

func TestSinglePassSourceReuse(t *testing.T) {
	t.Parallel()

	pipe := pipeline.New(pipeline.FromChan(intChan(t, 3)))
	got, err := pipe.ToList()
	require.NoError(t, err)
	assert.Equal(t, []any{0, 1, 2}, got)

	got, err = pipe.ToList()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGroupBy(t *testing.T) {
	t.Parallel()

	src := pipeline.FromValues(pipeline.Pair("a", 1), pipeline.Pair("b", 2), pipeline.Pair("a", 3))
	first := pipeline.MapOf(pipeline.Tuple.Key)
	second := pipeline.MapOf(pipeline.Tuple.Value)

	got, err := pipeline.New(src).GroupBy(first, second).ToList()
	require.NoError(t, err)
	assert.Equal(t, []any{
		pipeline.Tuple{"a", []any{1, 3}},
		pipeline.Tuple{"b", []any{2}},
	}, got)
}

func TestGroupByFirstSeenOrder(t *testing.T) {
	t.Parallel()

	got, err := pipeline.New(pipeline.FromSlice([]int{5, 3, 8, 1, 4, 9})).
		GroupBy(pipeline.MapOf(func(x int) bool { return x > 4 }), pipeline.MapOf(func(x int) int { return x })).
		ToDict()
	require.NoError(t, err)
	assert.Equal(t, map[any]any{
		true:  []any{5, 8, 9},
		false: []any{3, 1, 4},
	}, got)

	list, err := pipeline.New(pipeline.FromSlice([]int{5, 3, 8})).
		GroupBy(pipeline.MapOf(func(x int) bool { return x > 4 }), pipeline.MapOf(func(x int) int { return x })).
		Map(pipeline.MapOf(pipeline.Tuple.Key)).
		ToList()
	require.NoError(t, err)
	assert.Equal(t, []any{true, false}, list)
}

func TestGroupByNotComparableKey(t *testing.T) {
	t.Parallel()

	_, err := pipeline.New(pipeline.FromSlice([]int{1, 2})).
		GroupBy(pipeline.MapOf(func(x int) []int { return []int{x} }), pipeline.MapOf(double)).
		ToList()
	assert.ErrorIs(t, err, pipeline.ErrTypeMismatch)
}

func TestReduce(t *testing.T) {
	t.Parallel()

	add := pipeline.ReduceOf(func(a, b int) int { return a + b })

	got, err := pipeline.New(pipeline.FromSlice([]int{1, 2, 3})).Reduce(add)
	require.NoError(t, err)
	assert.Equal(t, 6, got)

	_, err = pipeline.New(pipeline.FromSlice([]int{})).Reduce(add)
	assert.ErrorIs(t, err, pipeline.ErrEmptySequence)

	got, err = pipeline.New(pipeline.FromSlice([]int{})).Fold(10, add)
	require.NoError(t, err)
	assert.Equal(t, 10, got)

	got, err = pipeline.New(pipeline.FromSlice([]int{1, 2, 3})).Fold(10, add)
	require.NoError(t, err)
	assert.Equal(t, 16, got)

	_, err = pipeline.New(pipeline.FromSlice([]int{})).Fold(nil, add)
	assert.ErrorIs(t, err, pipeline.ErrEmptySequence)
}

func TestReduceOrder(t *testing.T) {
	t.Parallel()

	got, err := pipeline.New(pipeline.FromSlice([]string{"a", "b", "c"})).
		Fold(">", pipeline.ReduceOf(func(acc, x string) string { return acc + x }))
	require.NoError(t, err)
	assert.Equal(t, ">abc", got)
}

func TestSum(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		src  pipeline.Source
		want any
	}{
		"ints":          {src: pipeline.FromSlice([]int{1, 2, 3}), want: 6},
		"floats":        {src: pipeline.FromSlice([]float64{0.5, 0.25}), want: 0.75},
		"mixed":         {src: pipeline.FromValues(1, 0.5), want: 1.5},
		"empty":         {src: pipeline.FromSlice([]int{}), want: 0},
		"single uint8s": {src: pipeline.FromSlice([]uint8{1, 2}), want: uint8(3)},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := pipeline.New(tc.src).Sum()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSumTypeMismatch(t *testing.T) {
	t.Parallel()

	_, err := pipeline.New(pipeline.FromValues(1, "2")).Sum()
	assert.ErrorIs(t, err, pipeline.ErrTypeMismatch)

	_, err = pipeline.New(pipeline.FromValues("1")).Sum()
	assert.ErrorIs(t, err, pipeline.ErrTypeMismatch)
}

func TestZipShortest(t *testing.T) {
	t.Parallel()

	got, err := pipeline.New(pipeline.FromSlice([]int{1, 2, 3, 4})).Zip([]int{1, 2}).ToList()
	require.NoError(t, err)
	assert.Equal(t, []any{pipeline.Tuple{1, 1}, pipeline.Tuple{2, 2}}, got)
}

func TestZipMany(t *testing.T) {
	t.Parallel()

	got, err := pipeline.New(pipeline.FromSlice([]int{1, 2, 3})).
		Zip("xyz", pipeline.FromChan(intChan(t, 10))).
		ToList()
	require.NoError(t, err)
	assert.Equal(t, []any{
		pipeline.Tuple{1, "x", 0},
		pipeline.Tuple{2, "y", 1},
		pipeline.Tuple{3, "z", 2},
	}, got)
}

func TestZipInfiniteSource(t *testing.T) {
	t.Parallel()

	var naturals iter.Seq[int] = func(yield func(int) bool) {
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}
	got, err := pipeline.New(pipeline.FromSeq(naturals)).Zip([]string{"a", "b"}).ToDict()
	require.NoError(t, err)
	assert.Equal(t, map[any]any{0: "a", 1: "b"}, got)
}

func TestZipNotSequence(t *testing.T) {
	t.Parallel()

	pipe := pipeline.New(pipeline.FromSlice([]int{1})).Zip(5)
	_, err := pipe.ToList()
	assert.ErrorIs(t, err, pipeline.ErrTypeMismatch)
	assert.Empty(t, pipe.Plan())
}

func TestProduct(t *testing.T) {
	t.Parallel()

	got, err := pipeline.New(pipeline.FromSlice([]int{1, 2})).Product([]string{"a", "b"}, []bool{true}).ToList()
	require.NoError(t, err)
	assert.Equal(t, []any{
		pipeline.Tuple{1, "a", true},
		pipeline.Tuple{1, "b", true},
		pipeline.Tuple{2, "a", true},
		pipeline.Tuple{2, "b", true},
	}, got)

	count, err := pipeline.New(pipeline.FromSlice([]int{1, 2, 3})).Product([]int{}).Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	got, err := pipeline.New(pipeline.FromValues([]int{1, 2}, []int{}, pipeline.Tuple{3}, "ab")).Flatten().ToList()
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3, "a", "b"}, got)

	nested, err := pipeline.New(pipeline.FromValues([][]int{{1}, {2}})).Flatten().ToList()
	require.NoError(t, err)
	assert.Equal(t, []any{[]int{1}, []int{2}}, nested)
}

func TestFlattenNotNested(t *testing.T) {
	t.Parallel()

	_, err := pipeline.New(pipeline.FromSlice([]int{1, 2})).Flatten().ToList()
	assert.ErrorIs(t, err, pipeline.ErrTypeMismatch)
}

func TestToSet(t *testing.T) {
	t.Parallel()

	got, err := pipeline.New(pipeline.FromSlice([]int{1, 2, 2, 3, 1})).ToSet()
	require.NoError(t, err)
	assert.Equal(t, map[any]struct{}{1: {}, 2: {}, 3: {}}, got)

	_, err = pipeline.New(pipeline.FromValues([]int{1})).ToSet()
	assert.ErrorIs(t, err, pipeline.ErrTypeMismatch)
}

func TestToDict(t *testing.T) {
	t.Parallel()

	got, err := pipeline.New(pipeline.FromValues(pipeline.Pair("a", 1), []any{"b", 2}, [2]any{"a", 3})).ToDict()
	require.NoError(t, err)
	assert.Equal(t, map[any]any{"a": 3, "b": 2}, got)

	_, err = pipeline.New(pipeline.FromSlice([]int{1, 2})).ToDict()
	assert.ErrorIs(t, err, pipeline.ErrConstruction)

	_, err = pipeline.New(pipeline.FromValues(pipeline.Tuple{1, 2, 3})).ToDict()
	assert.ErrorIs(t, err, pipeline.ErrConstruction)

	_, err = pipeline.New(pipeline.FromValues(pipeline.Pair([]int{1}, 2))).ToDict()
	assert.ErrorIs(t, err, pipeline.ErrTypeMismatch)
}

func TestToUnknownContainer(t *testing.T) {
	t.Parallel()

	src, pulled := countingSource(t, 3)
	pipe := pipeline.New(src).Map(pipeline.MapOf(double))

	_, err := pipe.To("tuple")
	assert.ErrorIs(t, err, pipeline.ErrInvalidArgument)
	assert.Zero(t, *pulled)
	assert.Len(t, pipe.Plan(), 1)

	got, err := pipe.To(pipeline.List)
	require.NoError(t, err)
	assert.Equal(t, []any{0, 2, 4}, got)
}

func TestUserErrorIsReturnedAsIs(t *testing.T) {
	t.Parallel()

	calls := 0
	pipe := pipeline.New(pipeline.FromSlice([]int{1, 2, 3, 4})).
		Map(pipeline.TryMapOf(func(x int) (int, error) {
			if x == 2 {
				return 0, assert.AnError
			}

			return x, nil
		})).
		Map(func(x any) (any, error) {
			calls++

			return x, nil
		})

	_, err := pipe.ToList()
	assert.Equal(t, assert.AnError, err)
	assert.Equal(t, 1, calls)
}

func TestUserErrorFromEveryFunction(t *testing.T) {
	t.Parallel()

	failMap := func(any) (any, error) { return nil, assert.AnError }
	okMap := func(x any) (any, error) { return x, nil }

	tcs := map[string]func(p *pipeline.Pipeline) error{
		"map": func(p *pipeline.Pipeline) error {
			_, err := p.Map(failMap).ToList()

			return err
		},
		"filter": func(p *pipeline.Pipeline) error {
			_, err := p.Filter(func(any) (bool, error) { return false, assert.AnError }).Count()

			return err
		},
		"groupby key": func(p *pipeline.Pipeline) error {
			_, err := p.GroupBy(failMap, okMap).ToList()

			return err
		},
		"groupby value": func(p *pipeline.Pipeline) error {
			_, err := p.GroupBy(okMap, failMap).ToList()

			return err
		},
		"reduce": func(p *pipeline.Pipeline) error {
			_, err := p.Reduce(func(any, any) (any, error) { return nil, assert.AnError })

			return err
		},
	}

	for name, run := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := run(pipeline.New(pipeline.FromSlice([]int{1, 2, 3})))
			assert.Equal(t, assert.AnError, err)
		})
	}
}

func TestNilFunctions(t *testing.T) {
	t.Parallel()

	_, err := pipeline.New(pipeline.FromValues(1)).Map(nil).ToList()
	assert.ErrorIs(t, err, pipeline.ErrInvalidArgument)

	_, err = pipeline.New(pipeline.FromValues(1)).Filter(nil).ToList()
	assert.ErrorIs(t, err, pipeline.ErrInvalidArgument)

	_, err = pipeline.New(pipeline.FromValues(1)).GroupBy(nil, nil).ToList()
	assert.ErrorIs(t, err, pipeline.ErrInvalidArgument)

	_, err = pipeline.New(pipeline.FromValues(1)).Reduce(nil)
	assert.ErrorIs(t, err, pipeline.ErrInvalidArgument)
}

func TestNilPipeline(t *testing.T) {
	t.Parallel()

	var pipe *pipeline.Pipeline
	assert.Nil(t, pipe.Map(pipeline.MapOf(double)))
	assert.Nil(t, pipe.Plan())

	_, err := pipe.Count()
	assert.ErrorIs(t, err, pipeline.ErrPipelineMustBeSet)
}

func TestMissingSource(t *testing.T) {
	t.Parallel()

	pipe := pipeline.New(pipeline.Source{}).Map(pipeline.MapOf(double))
	_, err := pipe.ToList()
	assert.ErrorIs(t, err, pipeline.ErrInputMustBeSet)
	assert.Empty(t, pipe.Plan())
}

func TestCollect(t *testing.T) {
	t.Parallel()

	got, err := pipeline.Collect[string](pipeline.New(pipeline.FromSlice([]int{1, 2})).
		Map(pipeline.MapOf(func(x int) string { return strings.Repeat("x", x) })))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "xx"}, got)

	_, err = pipeline.Collect[string](pipeline.New(pipeline.FromValues("a", 1)))
	assert.ErrorIs(t, err, pipeline.ErrTypeMismatch)
}

func TestTypedAdapterMismatch(t *testing.T) {
	t.Parallel()

	_, err := pipeline.New(pipeline.FromValues("a")).Map(pipeline.MapOf(double)).ToList()
	assert.ErrorIs(t, err, pipeline.ErrTypeMismatch)
}

func TestHeterogeneousPlan(t *testing.T) {
	t.Parallel()

	// words -> (word, index) pairs -> grouped by first letter -> group sizes
	words := []string{"apple", "avocado", "banana", "blueberry", "cherry"}
	got, err := pipeline.New(pipeline.FromSlice(words)).
		Zip([]int{0, 1, 2, 3, 4}).
		GroupBy(
			pipeline.MapOf(func(pair pipeline.Tuple) string { return pair.Key().(string)[:1] }),
			pipeline.MapOf(pipeline.Tuple.Value),
		).
		Map(pipeline.MapOf(func(group pipeline.Tuple) pipeline.Tuple {
			return pipeline.Pair(group.Key(), len(group.Value().([]any)))
		})).
		ToDict()
	require.NoError(t, err)
	assert.Equal(t, map[any]any{"a": 2, "b": 2, "c": 1}, got)
}
