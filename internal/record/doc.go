// Package record defines the unit tracked by the record store: a named entry
// within a scope, its identifier, and the matcher and modifier function types
// used to resolve and transform records.
package record
