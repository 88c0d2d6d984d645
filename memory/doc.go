// Package memory provides chainable conversation-history nodes.
//
// Each node owns a transcript snapshot and implements Load and Persist.
// Nodes compose into a linear chain built once at construction: a node
// created over a "next" node copies its current transcript as initial
// state, and every Persist forwards the (possibly transformed)
// transcript down the chain. A compacting node fronting a durable file
// sink, for example, keeps a convenient in-memory view while the
// persisted history is pruned.
package memory
