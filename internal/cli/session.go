package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/agentx-labs/recordx/internal/config"
	"github.com/agentx-labs/recordx/internal/ident"
	"github.com/agentx-labs/recordx/internal/record"
	"github.com/agentx-labs/recordx/internal/store"
	"github.com/spf13/cobra"
)

// session binds a store to the scope selected by the persistent flags.
type session struct {
	store    *store.Store
	scope    string
	snapshot string
	source   string
	log      *slog.Logger
}

func openSession(cmd *cobra.Command) (*session, error) {
	settings := config.Current()
	if flagStrategy != "" {
		settings.Strategy = flagStrategy
	}
	if flagVerbose {
		settings.LogLevel = "debug"
	}

	level, err := settings.Level()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	assigner, err := ident.New(settings.IDOptions())
	if err != nil {
		return nil, err
	}

	scope, err := filepath.Abs(flagScope)
	if err != nil {
		return nil, fmt.Errorf("resolving scope %s: %w", flagScope, err)
	}

	snap := flagSnapshot
	if snap == "" {
		snap = filepath.Join(scope, settings.SnapshotFile)
	}
	src := flagSource
	if src == "" {
		src = scope
	}

	return &session{
		store:    store.New(store.WithAssigner(assigner), store.WithLogger(logger)),
		scope:    scope,
		snapshot: snap,
		source:   src,
		log:      logger,
	}, nil
}

// load seeds the session's scope. dirsOnly and filesOnly only apply when
// the scope has no snapshot yet.
func (s *session) load(ctx context.Context, dirsOnly, filesOnly bool) ([]*record.Record, error) {
	return s.store.Load(ctx, s.scope, store.LoadOptions{
		SnapshotPath: s.snapshot,
		SourcePath:   s.source,
		DirsOnly:     dirsOnly,
		FilesOnly:    filesOnly,
	})
}

func (s *session) save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.scope, s.snapshot, store.SaveOptions{}); err != nil {
		return err
	}
	s.log.Info("snapshot written", "path", s.snapshot, "records", len(s.store.Records(s.scope)))
	return nil
}
