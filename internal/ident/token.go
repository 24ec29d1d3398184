package ident

import (
	"encoding/base32"
	"io"
	"strings"
	"sync"

	"github.com/agentx-labs/recordx/internal/record"
	"github.com/google/uuid"
)

const (
	// DefaultTokenLength is the token length used when none is configured.
	DefaultTokenLength = 8

	minTokenLength = 4
	maxTokenLength = 26 // base32 of 16 bytes, unpadded
)

var tokenEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// TokenGenerator produces short tokens that are not already in use.
type TokenGenerator interface {
	// Next returns a token absent from taken. Asking again with the same
	// key returns the earliest token issued for that key that is still
	// absent from taken, so a reference that was only previewed keeps its
	// token. Otherwise the token is new: never issued before, for any key.
	Next(key string, taken map[record.ID]struct{}) record.ID

	// Reset forgets every token issued so far.
	Reset()
}

// TokenOption configures a generator built by NewTokenGenerator.
type TokenOption func(*Tokens)

// WithLength sets the token length, clamped to [4, 26]. Zero keeps the default.
func WithLength(n int) TokenOption {
	return func(g *Tokens) {
		if n == 0 {
			return
		}
		g.length = min(max(n, minTokenLength), maxTokenLength)
	}
}

// WithRand sets the randomness source tokens are drawn from.
func WithRand(r io.Reader) TokenOption {
	return func(g *Tokens) {
		g.rand = r
	}
}

// Tokens derives tokens from random (version 4) UUIDs, base32 encoded in
// lower case and truncated. Every issued token is remembered until Reset,
// along with the key it was issued for.
type Tokens struct {
	mu     sync.Mutex
	length int
	rand   io.Reader
	issued map[record.ID]struct{}
	byKey  map[string][]record.ID
}

// NewTokenGenerator returns a generator configured by opts.
func NewTokenGenerator(opts ...TokenOption) *Tokens {
	g := &Tokens{length: DefaultTokenLength}
	for _, opt := range opts {
		opt(g)
	}
	g.Reset()
	return g
}

// Next returns a token not present in taken.
func (g *Tokens) Next(key string, taken map[record.ID]struct{}) record.ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	if key != "" {
		for _, tok := range g.byKey[key] {
			if _, used := taken[tok]; !used {
				return tok
			}
		}
	}

	for {
		tok := g.encode(g.random())
		if _, used := taken[tok]; used {
			continue
		}
		if _, used := g.issued[tok]; used {
			continue
		}
		g.issued[tok] = struct{}{}
		if key != "" {
			g.byKey[key] = append(g.byKey[key], tok)
		}
		return tok
	}
}

// Reset clears the issued-token memory.
func (g *Tokens) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued = make(map[record.ID]struct{})
	g.byKey = make(map[string][]record.ID)
}

func (g *Tokens) encode(u uuid.UUID) record.ID {
	return record.ID(strings.ToLower(tokenEncoding.EncodeToString(u[:]))[:g.length])
}

func (g *Tokens) random() uuid.UUID {
	if g.rand != nil {
		return uuid.Must(uuid.NewRandomFromReader(g.rand))
	}
	return uuid.New()
}
