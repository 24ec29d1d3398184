package store

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/recordx/internal/ident"
	"github.com/agentx-labs/recordx/internal/record"
)

// fixture mirrors a scaffold working directory: a packages/ directory with
// two subdirectories and two files, and no snapshot yet.
type fixture struct {
	cwd      string
	jsonPath string
	pkgsPath string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	cwd := t.TempDir()
	f := fixture{
		cwd:      cwd,
		jsonPath: filepath.Join(cwd, "packages.json"),
		pkgsPath: filepath.Join(cwd, "packages"),
	}
	for _, d := range []string{"dir2", "dir1"} {
		if err := os.MkdirAll(filepath.Join(f.pkgsPath, d), 0755); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range []string{"file2.ts", "file1.ts"} {
		if err := os.WriteFile(filepath.Join(f.pkgsPath, name), []byte("export {}\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func (f fixture) load() LoadOptions {
	return LoadOptions{SnapshotPath: f.jsonPath, SourcePath: f.pkgsPath}
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func sequentialStore() *Store {
	return New(WithAssigner(ident.Sequential{}), WithLogger(quiet))
}

func stableStore() *Store {
	return New(WithLogger(quiet))
}

// values dereferences records so they compare by value.
func values(recs []*record.Record) []record.Record {
	out := make([]record.Record, len(recs))
	for i, r := range recs {
		out[i] = *r
	}
	return out
}

func keys(recs []*record.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Key()
	}
	return out
}

func assertUniqueIDs(t *testing.T, recs []*record.Record) {
	t.Helper()
	seen := make(map[record.ID]string, len(recs))
	for _, r := range recs {
		if r.ID == "" {
			t.Errorf("record %q has no id", r.Key())
			continue
		}
		if prev, dup := seen[r.ID]; dup {
			t.Errorf("id %q shared by %q and %q", r.ID, prev, r.Key())
		}
		seen[r.ID] = r.Key()
	}
}
