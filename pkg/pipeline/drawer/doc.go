// Package drawer renders the last replayed plan of a pipeline as a Graphviz DOT graph.
package drawer
