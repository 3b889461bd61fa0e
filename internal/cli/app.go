package cli

import (
	"fmt"

	"github.com/olive-branch-content-api/internal/api"
	"github.com/olive-branch-content-api/internal/cache"
	"github.com/olive-branch-content-api/internal/config"
	"github.com/olive-branch-content-api/internal/content"
	"github.com/olive-branch-content-api/internal/database"
	"github.com/olive-branch-content-api/internal/repository"
	"github.com/olive-branch-content-api/internal/service"
	"github.com/rs/zerolog"
)

// app is the wired process: one store handle (when configured), the
// content tree loader and the services built on them
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	db       *database.DB
	services *service.Services
}

// newApp wires the services for cfg. The store is opened when it is the
// configured content source or when withStore is set.
func newApp(cfg *config.Config, log zerolog.Logger, withStore bool) (*app, error) {
	a := &app{cfg: cfg, log: log}

	files := content.NewDirLoader(cfg.Content.Dir, log)
	var loader service.ContentLoader = files
	if cfg.Content.CacheTTL > 0 {
		loader = cache.NewCachedLoader(files, cfg.Content.CacheTTL, log)
	}

	if cfg.Content.Source != config.SourceStore && !withStore {
		a.services = &service.Services{Content: service.NewStaticContentService(loader, log)}
		log.Info().Str("dir", cfg.Content.Dir).Msg("Serving content from files")
		return a, nil
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = db

	repos := repository.New(db, log)
	// sync always reads the tree as it is now, never a cached copy
	a.services = &service.Services{Sync: service.NewSyncService(db, repos, files, log)}
	if cfg.Content.Source == config.SourceStore {
		a.services.Content = service.NewStoreContentService(repos)
	} else {
		a.services.Content = service.NewStaticContentService(loader, log)
	}
	return a, nil
}

// health returns the store health check, or nil without a store
func (a *app) health() api.HealthChecker {
	if a.db == nil {
		return nil
	}
	return a.db
}

func (a *app) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
