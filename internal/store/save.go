package store

import (
	"context"
	"fmt"

	"github.com/agentx-labs/recordx/internal/record"
	"github.com/agentx-labs/recordx/internal/snapshot"
)

// SaveOptions controls Save.
type SaveOptions struct {
	Modify record.Modifier
}

// Save writes scope's records to path. The modifier runs over the list
// first. Persisted copies never carry the NewRecord flag, and carry ids only
// when the assigner's ids are persistent. The store is left untouched.
func (s *Store) Save(ctx context.Context, scope, path string, opts SaveOptions) error {
	_, view, _ := s.view(scope)
	recs, err := transform(ctx, scope, view, opts.Modify)
	if err != nil {
		return fmt.Errorf("saving %s: %w", scope, err)
	}

	keepIDs := s.assigner.Persistent()
	out := make([]*record.Record, len(recs))
	for i, rec := range recs {
		c := rec.Clone()
		c.NewRecord = false
		if !keepIDs {
			c.ID = ""
		}
		out[i] = c
	}

	if err := snapshot.Write(path, out); err != nil {
		return fmt.Errorf("saving %s: %w", scope, err)
	}
	s.log.Debug("records saved", "scope", scope, "path", path, "count", len(out))
	return nil
}
