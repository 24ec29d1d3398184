package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/agentx-labs/recordx/internal/record"
)

// FindOptions controls Find.
type FindOptions struct {
	// ForceNew synthesizes a new record for every arg without matching.
	ForceNew bool
	// Matcher resolves an arg to stored records. Without one every arg is
	// unmatched.
	Matcher record.Matcher
	// Modify transforms the combined result before it is returned.
	Modify record.Modifier
	// Unique keeps one record per name, the first one encountered.
	Unique bool
	// AppendNew appends the synthesized records to the scope.
	AppendNew bool
}

// Find resolves args against scope. Each arg contributes every stored record
// the matcher accepts, in store order; an arg with no match contributes a new
// record {Arg: arg, NewRecord: true}. Matched records come first, new records
// after them in arg order. With no args the whole scope is returned.
func (s *Store) Find(ctx context.Context, scope string, args []string, opts FindOptions) ([]*record.Record, error) {
	resident, view, retired := s.view(scope)

	// Matchers and modifiers only see the private copies in view. Unmodified
	// matches are returned as the stored records so they can be removed.
	var found, foundView, fresh []*record.Record
	if len(args) == 0 {
		found, foundView = resident, view
	}
	for _, arg := range args {
		matches, err := matchAll(arg, view, opts)
		if err != nil {
			return nil, fmt.Errorf("finding %q in %s: %w", arg, scope, err)
		}
		if len(matches) == 0 {
			fresh = append(fresh, &record.Record{Arg: arg, NewRecord: true})
			continue
		}
		for _, i := range matches {
			found = append(found, resident[i])
			foundView = append(foundView, view[i])
		}
	}

	s.assigner.Assign(view, fresh, retired)

	in := slices.Concat(found, fresh)
	if opts.Modify != nil {
		in = slices.Concat(foundView, fresh)
	}
	out, err := transform(ctx, scope, in, opts.Modify)
	if err != nil {
		return nil, fmt.Errorf("finding in %s: %w", scope, err)
	}

	if opts.AppendNew {
		s.Append(scope, out, AppendOptions{OnlyNew: true})
	}
	if opts.Unique {
		out = unique(out)
	}

	s.log.Debug("find complete",
		"scope", scope,
		"args", len(args),
		"matched", len(found),
		"new", len(fresh),
		"returned", len(out),
	)
	return out, nil
}

// matchAll returns the indexes of the records in view that arg matches.
func matchAll(arg string, view []*record.Record, opts FindOptions) ([]int, error) {
	if opts.ForceNew || opts.Matcher == nil {
		return nil, nil
	}

	var matches []int
	for i, rec := range view {
		ok, err := opts.Matcher(arg, rec)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, i)
		}
	}
	return matches, nil
}

// unique keeps the first record for each key and preserves order. Records
// without a name are keyed by their arg.
func unique(recs []*record.Record) []*record.Record {
	seen := make(map[string]struct{}, len(recs))
	out := make([]*record.Record, 0, len(recs))
	for _, rec := range recs {
		key := rec.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}
