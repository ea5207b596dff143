// Package layout turns a declarative venue configuration into a concrete
// seat layout: per-row seat counts, aisle placement, and pixel coordinates.
//
// The package has three entry points:
//
//   - PackRow computes, for a single row width, how many seats fit, how they
//     group into contiguous blocks, and how aisle widths absorb the leftover
//     space. It is a pure function of its numeric inputs.
//
//   - Build iterates the venue's sections and rows, invokes PackRow, stacks
//     rows and sections vertically, and assigns every seat a stable
//     identifier of the form "S{section}-R{row}-{col}" (all 1-based).
//
//   - Reconcile merges a freshly built layout with the previous seat
//     collection so that per-seat mutable state (occupancy, guest linkage,
//     selection) survives a rebuild triggered by a configuration change.
//
// Rows too narrow for a single seat contribute zero seats; this is a
// documented fallback, not an error. Callers can detect sparse output by
// comparing seat counts against the configured rows × sections product.
package layout
