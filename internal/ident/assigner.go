package ident

import (
	"errors"
	"fmt"
	"maps"
	"strconv"

	"github.com/agentx-labs/recordx/internal/record"
)

// Strategy names accepted by New.
const (
	StrategyStable     = "stable"
	StrategySequential = "sequential"
)

// ErrUnknownStrategy is returned by New for an unrecognised strategy name.
var ErrUnknownStrategy = errors.New("unknown id strategy")

// Assigner gives records ids that are unique within their scope.
type Assigner interface {
	// Assign sets ids on incoming records that will follow resident in the
	// scope's list. Ids end up unique across resident and incoming together.
	// Retired holds ids of records removed from the scope; they are never
	// handed out again. Resident records are never modified.
	Assign(resident, incoming []*record.Record, retired map[record.ID]struct{})

	// Persistent reports whether assigned ids should be written to snapshots.
	Persistent() bool
}

// Options selects and configures an Assigner.
type Options struct {
	Strategy    string // "stable" (default) or "sequential"
	Base        int    // first sequential id
	TokenLength int    // stable token length; 0 uses DefaultTokenLength
}

// New builds the Assigner described by opts.
func New(opts Options) (Assigner, error) {
	switch opts.Strategy {
	case "", StrategyStable:
		return NewStable(NewTokenGenerator(WithLength(opts.TokenLength))), nil
	case StrategySequential:
		return Sequential{Base: opts.Base}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, opts.Strategy)
	}
}

// Sequential assigns positional ids: Base plus the record's index in the
// scope's list. Ids shift whenever list order or length changes.
type Sequential struct {
	Base int
}

// Assign numbers incoming records after the resident ones. Positional ids
// are reused by design, so retired is ignored.
func (s Sequential) Assign(resident, incoming []*record.Record, _ map[record.ID]struct{}) {
	offset := s.Base + len(resident)
	for i, rec := range incoming {
		rec.ID = record.ID(strconv.Itoa(offset + i))
	}
}

// Persistent is false: positional ids are re-derived on every load.
func (Sequential) Persistent() bool { return false }

// Stable assigns a token only to records that lack one. Existing ids are kept
// verbatim; a record whose id already appears earlier in the scope is treated
// as lacking one, so the first holder keeps it. New tokens avoid every id in
// the scope and every retired id.
type Stable struct {
	tokens TokenGenerator
}

// NewStable returns a Stable assigner drawing tokens from gen.
func NewStable(gen TokenGenerator) *Stable {
	return &Stable{tokens: gen}
}

// Tokens returns the generator backing s.
func (s *Stable) Tokens() TokenGenerator { return s.tokens }

// Assign gives tokens to incoming records without a usable id.
func (s *Stable) Assign(resident, incoming []*record.Record, retired map[record.ID]struct{}) {
	held := make(map[record.ID]struct{}, len(resident)+len(incoming))
	for _, rec := range resident {
		if rec.ID != "" {
			held[rec.ID] = struct{}{}
		}
	}

	var pending []*record.Record
	for _, rec := range incoming {
		if rec.ID == "" {
			pending = append(pending, rec)
			continue
		}
		if _, dup := held[rec.ID]; dup {
			pending = append(pending, rec)
			continue
		}
		held[rec.ID] = struct{}{}
	}
	if len(pending) == 0 {
		return
	}

	taken := maps.Clone(held)
	maps.Copy(taken, retired)
	for _, rec := range pending {
		rec.ID = s.tokens.Next(rec.Key(), taken)
		taken[rec.ID] = struct{}{}
	}
}

// Persistent is true: tokens survive save/load cycles.
func (*Stable) Persistent() bool { return true }
