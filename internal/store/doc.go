// Package store keeps the ordered record list of every scope and implements
// the operations a host calls on it: Load seeds a scope from a snapshot or a
// directory listing, Find resolves external references against it, Append
// and Remove mutate it, Save persists it and Reset discards everything.
//
// Ids come from a pluggable ident.Assigner and are re-run after every
// mutation. Each scope has its own mutex; matchers and modifiers run outside
// it on a copy of the list, so they may call back into the store.
//
// Modifiers run as one batch per call: every record is transformed
// concurrently, results keep input order, and a single failure fails the
// whole call. No partial list is returned and nothing is appended or written.
package store
