// Package mpath finds paths on 2D grids with A*.
//
// A Pathfinder is built once over a grid source and then answers GetPath
// queries for agents of any square footprint:
//
//   - GetPath: run a search to completion and get a pooled PathResult.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// Scratch state, the open set and an optional PathCache are reused across
// searches, so a steady stream of queries allocates little beyond the
// returned results. Close each PathResult when done with it.
package mpath
