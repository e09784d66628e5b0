// Package orchestrator wires the loader → reader → translator → schema
// document pipeline, providing dependency injection friendly helpers for
// consumers that prefer a single entry point.
package orchestrator
