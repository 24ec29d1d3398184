package store

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/agentx-labs/recordx/internal/platform"
	"github.com/agentx-labs/recordx/internal/record"
	"github.com/agentx-labs/recordx/internal/snapshot"
)

// ErrInvalidOptions is returned for option combinations that make no sense.
var ErrInvalidOptions = errors.New("invalid options")

// LoadOptions controls Load.
type LoadOptions struct {
	SnapshotPath string // persisted snapshot, preferred when present
	SourcePath   string // directory listed when no snapshot exists
	DirsOnly     bool
	FilesOnly    bool
	Modify       record.Modifier
}

// Load seeds scope from the snapshot at SnapshotPath or, failing that, from
// the immediate children of SourcePath sorted by name. Missing paths yield
// no records. The loaded records are appended to whatever the scope already
// holds, and the scope's full list is returned.
func (s *Store) Load(ctx context.Context, scope string, opts LoadOptions) ([]*record.Record, error) {
	if opts.DirsOnly && opts.FilesOnly {
		return nil, fmt.Errorf("%w: dirs-only and files-only are mutually exclusive", ErrInvalidOptions)
	}

	initial, source, err := readInitial(opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", scope, err)
	}

	l := s.list(scope, true)
	l.mu.Lock()
	s.assigner.Assign(l.recs, initial, l.retired)
	l.mu.Unlock()

	initial, err = transform(ctx, scope, initial, opts.Modify)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", scope, err)
	}

	s.Append(scope, initial, AppendOptions{})
	s.log.Debug("records loaded", "scope", scope, "source", source, "count", len(initial))
	return s.Records(scope), nil
}

func readInitial(opts LoadOptions) ([]*record.Record, string, error) {
	ok, err := snapshot.Exists(opts.SnapshotPath)
	if err != nil {
		return nil, "", fmt.Errorf("checking snapshot: %w", err)
	}
	if ok {
		recs, err := snapshot.Read(opts.SnapshotPath)
		return recs, opts.SnapshotPath, err
	}

	if opts.SourcePath == "" {
		return nil, "", nil
	}
	ok, err = platform.Exists(opts.SourcePath)
	if err != nil {
		return nil, "", fmt.Errorf("checking source: %w", err)
	}
	if !ok {
		return nil, "", nil
	}

	dirs, files, err := platform.ListDir(opts.SourcePath)
	if err != nil {
		return nil, "", err
	}

	var names []string
	switch {
	case opts.DirsOnly:
		names = dirs
	case opts.FilesOnly:
		names = files
	default:
		names = append(dirs, files...)
	}
	slices.Sort(names)

	recs := make([]*record.Record, len(names))
	for i, name := range names {
		recs[i] = record.Named(name)
	}
	return recs, opts.SourcePath, nil
}
