// Package cache provides content-addressed memoization for agent runs.
//
// A Cache derives a stable key from the requesting agent's identity and
// the run input, and stores the raw output under that key in a pluggable
// Store. Four backends are provided: an in-process map, a YAML document
// file, a line-oriented JSONL file, and an embedded relational table.
// All backends share the same observable semantics: unknown keys are
// absent rather than errors, Set is an unconditional upsert, and Clear
// empties the store and removes any backing file.
package cache
