package record

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"strconv"
)

// ErrNilRecord is returned when a modifier produces no record.
var ErrNilRecord = errors.New("modifier returned a nil record")

// ID identifies a record within its scope. Sequential ids are decimal strings,
// stable ids are short tokens.
type ID string

// UnmarshalJSON accepts both string and integer ids so snapshots written with
// numeric positional ids still decode.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Record is a named entity tracked for a scope.
type Record struct {
	ID        ID                `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string            `json:"name,omitempty" yaml:"name,omitempty"`
	Arg       string            `json:"arg,omitempty" yaml:"arg,omitempty"`
	NewRecord bool              `json:"newRecord,omitempty" yaml:"newRecord,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Named returns a bare record carrying only a name.
func Named(name string) *Record {
	return &Record{Name: name}
}

// Clone returns a copy of r that shares no mutable state with it.
func (r *Record) Clone() *Record {
	c := *r
	c.Attrs = maps.Clone(r.Attrs)
	return &c
}

// Key returns the identity used for deduplication: the name, or the arg for
// records that have not been named yet.
func (r *Record) Key() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Arg
}

// Matcher reports whether an external reference resolves to rec. It must be
// free of side effects; it may be called many times per find.
type Matcher func(arg string, rec *Record) (bool, error)

// Modifier transforms a record within scope. Implementations must not mutate
// rec in place; return a modified copy (see Clone) instead.
type Modifier func(ctx context.Context, scope string, rec *Record) (*Record, error)
