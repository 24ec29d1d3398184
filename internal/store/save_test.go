package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/recordx/internal/record"
	"github.com/agentx-labs/recordx/internal/snapshot"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSequentialStripsIDs(t *testing.T) {
	s := sequentialStore()
	f := newFixture(t)
	ctx := context.Background()
	_, err := s.Load(ctx, f.cwd, f.load())
	require.NoError(t, err)
	_, err = s.Find(ctx, f.cwd, []string{"newFile.ts"}, FindOptions{AppendNew: true})
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, f.cwd, f.jsonPath, SaveOptions{}))

	data, err := os.ReadFile(f.jsonPath)
	require.NoError(t, err)
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "save_sequential", data)
}

func TestSaveLeavesStoreUntouched(t *testing.T) {
	s := sequentialStore()
	scope := t.TempDir()
	_, err := s.Find(context.Background(), scope, []string{"a"}, FindOptions{AppendNew: true})
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), scope, filepath.Join(scope, "out.json"), SaveOptions{}))

	recs := s.Records(scope)
	require.Len(t, recs, 1)
	assert.Equal(t, record.ID("0"), recs[0].ID)
	assert.True(t, recs[0].NewRecord)
}

func TestSaveStableRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := stableStore()
	loaded, err := first.Load(ctx, f.cwd, f.load())
	require.NoError(t, err)
	_, err = first.Find(ctx, f.cwd, []string{"newFile.ts"}, FindOptions{
		AppendNew: true,
		Modify:    stripExt,
	})
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, f.cwd, f.jsonPath, SaveOptions{}))

	saved, err := snapshot.Read(f.jsonPath)
	require.NoError(t, err)
	for _, r := range saved {
		assert.False(t, r.NewRecord, "newRecord is never persisted")
	}

	// A fresh process: the directory changed, but the snapshot wins.
	require.NoError(t, os.Mkdir(filepath.Join(f.pkgsPath, "dir0"), 0755))
	second := stableStore()
	reloaded, err := second.Load(ctx, f.cwd, f.load())
	require.NoError(t, err)

	want := first.Records(f.cwd)
	require.Len(t, reloaded, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, reloaded[i].ID)
		assert.Equal(t, want[i].Name, reloaded[i].Name)
	}
	assert.Equal(t, loaded[0].ID, reloaded[0].ID)
}

func TestSaveSequentialRoundTripNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := sequentialStore()
	_, err := first.Load(ctx, f.cwd, f.load())
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, f.cwd, f.jsonPath, SaveOptions{}))

	reloaded, err := sequentialStore().Load(ctx, f.cwd, f.load())
	require.NoError(t, err)
	assert.Equal(t, keys(first.Records(f.cwd)), keys(reloaded))
}

func TestSaveWithModifier(t *testing.T) {
	s := sequentialStore()
	f := newFixture(t)
	ctx := context.Background()
	_, err := s.Load(ctx, f.cwd, LoadOptions{SourcePath: f.pkgsPath, FilesOnly: true})
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, f.cwd, f.jsonPath, SaveOptions{Modify: stripExt}))

	saved, err := snapshot.Read(f.jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []record.Record{{Name: "file1"}, {Name: "file2"}}, values(saved))
	assert.Equal(t, []string{"file1.ts", "file2.ts"}, keys(s.Records(f.cwd)))
}

func TestSaveModifierFailureWritesNothing(t *testing.T) {
	s := sequentialStore()
	f := newFixture(t)
	ctx := context.Background()
	_, err := s.Load(ctx, f.cwd, f.load())
	require.NoError(t, err)
	boom := errors.New("nope")

	err = s.Save(ctx, f.cwd, f.jsonPath, SaveOptions{
		Modify: func(context.Context, string, *record.Record) (*record.Record, error) { return nil, boom },
	})
	assert.ErrorIs(t, err, boom)
	_, statErr := os.Stat(f.jsonPath)
	assert.True(t, os.IsNotExist(statErr), "no snapshot is written on failure")
}

func TestSaveEmptyScope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, stableStore().Save(context.Background(), "/nothing", path, SaveOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestSaveYAML(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	path := filepath.Join(f.cwd, "packages.yaml")

	s := stableStore()
	_, err := s.Load(ctx, f.cwd, f.load())
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, f.cwd, path, SaveOptions{}))

	reloaded, err := stableStore().Load(ctx, f.cwd, LoadOptions{SnapshotPath: path})
	require.NoError(t, err)
	assert.Equal(t, values(s.Records(f.cwd)), values(reloaded))
}
