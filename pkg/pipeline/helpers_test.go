package pipeline_test

import (
	"iter"
	"testing"

	"github.com/askiada/go-lazypipe/pkg/pipeline"
)

// countingSource yields 0..total-1 and counts the elements pulled from it.
func countingSource(t *testing.T, total int) (pipeline.Source, *int) {
	t.Helper()
	pulled := 0
	var seq iter.Seq[int] = func(yield func(int) bool) {
		for i := 0; i < total; i++ {
			pulled++
			if !yield(i) {
				return
			}
		}
	}

	return pipeline.FromSeq(seq), &pulled
}

func intChan(t *testing.T, total int) <-chan int {
	t.Helper()
	inputChan := make(chan int, total)
	for i := 0; i < total; i++ {
		inputChan <- i
	}
	close(inputChan)

	return inputChan
}
