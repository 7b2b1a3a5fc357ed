// Package pivot turns a flat Shopify variant export into a pivoted inventory
// summary: one row per base SKU, one column per size, plus a Total column.
//
// The package is a pure in-memory transformation with no I/O and no shared
// state. It runs in two stages:
//
//  1. Parse splits each composite variant SKU into a base key and a size
//     token, coercing the inventory quantity to a non-negative integer.
//  2. Aggregator accumulates parsed variants into an insertion-ordered
//     base-key -> size -> quantity map, merges duplicate sizes expressed
//     under the US sizing convention into their EU equivalents, and emits
//     a dense Table with deterministic column ordering.
//
// Each invocation owns its Aggregator, so concurrent callers (one upload per
// request, for example) need no locking.
package pivot
