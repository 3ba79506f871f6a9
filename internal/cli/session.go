package cli

import (
	"context"
	"fmt"

	"cmdhandler/internal/config"
	"cmdhandler/internal/logger"
	"cmdhandler/internal/store"
	"cmdhandler/internal/workspace"

	"github.com/joho/godotenv"
)

// session is the state every command starts from: a resolved data dir,
// its config and an open, seeded store.
type session struct {
	layout workspace.Layout
	cfg    *config.Config
	store  *store.Store
}

func openSession(app *App) (*session, error) {
	dir, err := workspace.ResolveDir(app.Dir)
	if err != nil {
		return nil, err
	}
	layout := workspace.Layout{Dir: dir}
	if err := layout.Ensure(); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	// .env never overrides the real environment.
	if err := godotenv.Load(layout.EnvPath()); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", layout.EnvPath(), err)
	}

	cfg, err := config.Load(layout.ConfigPath())
	if err != nil {
		return nil, err
	}
	layout.Transfer = cfg.TransferFile

	logger.SetDebug(app.Debug)
	if err := logger.Init(layout.DebugLogPath()); err != nil {
		return nil, err
	}
	log := logger.ComponentLogger("session")

	ctx := context.Background()
	st, err := store.Open(ctx, layout.DBPath())
	if err != nil {
		log.Error("open store", "path", layout.DBPath(), "err", err)
		return nil, err
	}
	seeded, err := st.SeedIfEmpty(ctx, store.DefaultCommands())
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	if seeded {
		log.Info("seeded empty library", "commands", len(store.DefaultCommands()))
	}
	log.Debug("session opened", "dir", dir)

	return &session{layout: layout, cfg: cfg, store: st}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}
