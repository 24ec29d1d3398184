// Package cli defines the Cobra command tree for the recordx CLI. Each file
// in this package registers one top-level command (list, find, add, etc.)
// with the root command. Commands open a session over one scope, delegate
// to the record store for the actual work, and only handle flag parsing,
// I/O formatting and persistence.
package cli
