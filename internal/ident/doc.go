// Package ident assigns identifiers to records. Two strategies implement the
// Assigner policy: Sequential numbers records by position and recomputes on
// every call, Stable hands out short random tokens once and never changes them.
// Stable is the default because downstream consumers reference records by id
// across runs.
package ident
