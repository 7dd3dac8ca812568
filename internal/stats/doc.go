// Package stats computes display-oriented aggregates from in-memory
// collections. Every function is pure: it never touches storage and takes
// the current time as an argument.
package stats
