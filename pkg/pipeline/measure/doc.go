// Package measure records per step timings while a pipeline plan is replayed.
package measure
