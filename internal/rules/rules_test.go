package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/agentx-labs/recordx/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameEquals(t *testing.T) {
	ok, err := NameEquals("file1.ts", record.Named("file1.ts"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = NameEquals("file1.ts", record.Named("file2.ts"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatch(t *testing.T) {
	rec := &record.Record{ID: "4", Name: "file1.ts", Attrs: map[string]string{"kind": "ts"}}

	tests := []struct {
		expression string
		arg        string
		want       bool
	}{
		{`arg == name`, "file1.ts", true},
		{`arg == name`, "file2.ts", false},
		{`name startsWith arg`, "file", true},
		{`trimSuffix(name, ".ts") == arg`, "file1", true},
		{`attrs.kind == "ts" && id == "4"`, "", true},
		{`new`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			m, err := Match(tt.expression)
			require.NoError(t, err)
			got, err := m(tt.arg, rec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchCompileErrors(t *testing.T) {
	_, err := Match("")
	assert.ErrorIs(t, err, ErrEmptyExpression)

	_, err = Match(`name + "x"`)
	assert.Error(t, err, "non-boolean expression must be rejected")

	_, err = Match(`unknownVar == 1`)
	assert.Error(t, err)

	_, err = Match(`scope == arg`)
	assert.Error(t, err, "matchers are not given the scope")
}

func TestRename(t *testing.T) {
	mod, err := Rename(`trimSuffix(key, ".ts")`)
	require.NoError(t, err)

	orig := &record.Record{ID: "5", Arg: "newFile.ts", NewRecord: true}
	got, err := mod(context.Background(), "/work", orig)
	require.NoError(t, err)

	assert.Equal(t, "newFile", got.Name)
	assert.Equal(t, "newFile.ts", got.Arg)
	assert.True(t, got.NewRecord)
	assert.Empty(t, orig.Name, "input record must not be mutated")
}

func TestRenameEmptyResult(t *testing.T) {
	mod, err := Rename(`""`)
	require.NoError(t, err)
	_, err = mod(context.Background(), "", record.Named("a"))
	assert.Error(t, err)
}

func TestAnnotate(t *testing.T) {
	mod, err := Annotate("scope", `scope + ":" + key`)
	require.NoError(t, err)

	got, err := mod(context.Background(), "/work", record.Named("dir1"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"scope": "/work:dir1"}, got.Attrs)

	_, err = Annotate("", `key`)
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	assert.Nil(t, Chain())
	assert.Nil(t, Chain(nil, nil))

	rename, err := Rename(`upper(key)`)
	require.NoError(t, err)
	annotate, err := Annotate("orig", `arg`)
	require.NoError(t, err)

	mod := Chain(rename, nil, annotate)
	got, err := mod(context.Background(), "", &record.Record{Arg: "x"})
	require.NoError(t, err)
	assert.Equal(t, "X", got.Name)
	assert.Equal(t, "x", got.Attrs["orig"])
}

func TestChainStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	failing := func(context.Context, string, *record.Record) (*record.Record, error) {
		return nil, boom
	}
	counting := func(_ context.Context, _ string, r *record.Record) (*record.Record, error) {
		calls++
		return r, nil
	}

	_, err := Chain(failing, counting)(context.Background(), "", record.Named("a"))
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, calls)
}
