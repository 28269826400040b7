// Package model provides the data structures shared by the pipeline package and its options.
// It defines the step descriptions of a plan and the hooks an option receives while a plan
// is replayed.
package model
