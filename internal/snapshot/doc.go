// Package snapshot reads and writes the files a scope's records are persisted
// to. Snapshots are JSON arrays of record objects (or the equivalent YAML when
// the file extension says so), validated against an embedded JSON schema on
// read and written atomically with two-space indentation.
package snapshot
