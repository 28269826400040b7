// Package pipeline provides a lazy pipeline builder over sequences of elements.
//
// A Pipeline wraps a Source and queues steps (Map, Filter, Flatten, Zip, Product, GroupBy)
// without running anything. Each chaining call appends a step to the plan and returns the
// same Pipeline, so calls can be chained. Nothing touches the source until a terminal
// operation (Reduce, Fold, Sum, Count, ToList, ToSet, ToDict or To) is called. The terminal
// operation then replays the plan from the source, left to right, in a single pass, and
// returns a concrete value.
//
// Elements are dynamically typed. The element type can change from one step to the next:
// a sequence of numbers becomes a sequence of Tuples after Zip, then a sequence of
// key/values pairs after GroupBy. MapOf, FilterOf, ReduceOf and Collect bring static
// types back at the edges.
//
// Errors stop the replay on the spot. An error returned by a caller supplied function is
// returned as is by the terminal operation. Shape errors (summing strings, building a dict
// from non pairs, flattening numbers) wrap ErrTypeMismatch or ErrConstruction.
//
//	total, err := pipeline.New(pipeline.FromSlice([]int{1, 2, 3, 4})).
//		Map(pipeline.MapOf(func(x int) int { return x * 2 })).
//		Filter(pipeline.FilterOf(func(x int) bool { return x > 2 })).
//		Sum()
//
// Options from the measure, drawer and logging packages observe every replay.
package pipeline
