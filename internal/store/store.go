package store

import (
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/agentx-labs/recordx/internal/ident"
	"github.com/agentx-labs/recordx/internal/record"
)

// Store maps scopes to ordered record lists.
type Store struct {
	assigner ident.Assigner
	log      *slog.Logger

	mu     sync.Mutex
	scopes map[string]*scopeList
}

type scopeList struct {
	mu      sync.Mutex
	recs    []*record.Record
	retired map[record.ID]struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithAssigner sets the id strategy. The default is ident.Stable.
func WithAssigner(a ident.Assigner) Option {
	return func(s *Store) {
		s.assigner = a
	}
}

// WithLogger sets the logger for debug output. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		scopes: make(map[string]*scopeList),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.assigner == nil {
		s.assigner = ident.NewStable(ident.NewTokenGenerator())
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Assigner returns the store's id strategy.
func (s *Store) Assigner() ident.Assigner { return s.assigner }

func (s *Store) list(scope string, create bool) *scopeList {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.scopes[scope]
	if !ok && create {
		l = &scopeList{}
		s.scopes[scope] = l
	}
	return l
}

// Records returns a copy of scope's list. The records themselves are shared
// with the store, so they can be handed back to Remove. Append and Remove
// rewrite their ids under the sequential strategy; Clone them before reading
// concurrently with either.
func (s *Store) Records(scope string) []*record.Record {
	l := s.list(scope, false)
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.recs)
}

// view returns scope's records together with private copies of them and of
// the retired ids, all taken under the scope lock.
func (s *Store) view(scope string) (recs, copies []*record.Record, retired map[record.ID]struct{}) {
	l := s.list(scope, false)
	if l == nil {
		return nil, nil, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	copies = make([]*record.Record, len(l.recs))
	for i, r := range l.recs {
		copies[i] = r.Clone()
	}
	return slices.Clone(l.recs), copies, maps.Clone(l.retired)
}

// Scopes returns the names of all resident scopes, sorted.
func (s *Store) Scopes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.scopes))
	for name := range s.scopes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AppendOptions controls Append.
type AppendOptions struct {
	// OnlyNew keeps only records flagged NewRecord.
	OnlyNew bool
}

// Append adds recs to the end of scope's list, creating it if needed, then
// re-runs the assigner over the whole list. Under the sequential strategy
// that renumbers every record in the scope.
func (s *Store) Append(scope string, recs []*record.Record, opts AppendOptions) {
	if opts.OnlyNew {
		recs = slices.DeleteFunc(slices.Clone(recs), func(r *record.Record) bool {
			return !r.NewRecord
		})
	}

	l := s.list(scope, true)
	l.mu.Lock()
	defer l.mu.Unlock()

	l.recs = append(l.recs, recs...)
	s.assigner.Assign(nil, l.recs, l.retired)
}

// Remove drops exactly the given records from scope. Records are compared by
// identity, so an equal-valued copy is not removed. Records not present are
// ignored. Under a persistent strategy the removed ids are retired: the scope
// never assigns them to another record until Reset.
func (s *Store) Remove(scope string, recs ...*record.Record) {
	l := s.list(scope, false)
	if l == nil || len(recs) == 0 {
		return
	}

	drop := make(map[*record.Record]struct{}, len(recs))
	for _, r := range recs {
		drop[r] = struct{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	retire := s.assigner.Persistent()
	l.recs = slices.DeleteFunc(l.recs, func(r *record.Record) bool {
		if _, ok := drop[r]; !ok {
			return false
		}
		if retire && r.ID != "" {
			if l.retired == nil {
				l.retired = make(map[record.ID]struct{})
			}
			l.retired[r.ID] = struct{}{}
		}
		return true
	})
	s.assigner.Assign(nil, l.recs, l.retired)
}

// Reset discards every scope, retired ids included.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scopes = make(map[string]*scopeList)
}
