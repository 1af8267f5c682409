package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bassista/go_recipes/internal/cache"
	"github.com/bassista/go_recipes/internal/config"
	"github.com/bassista/go_recipes/internal/logger"
	"github.com/bassista/go_recipes/internal/repository"
	"github.com/bassista/go_recipes/internal/scheduler"
)

// App is the application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
type App struct {
	Config *config.Config
	Repo   repository.Repository
	Index  cache.WatchableIndex
	Drafts cache.DraftStore

	BaseCtx context.Context
	Cancel  context.CancelFunc
}

func New(cfg *config.Config, repo repository.Repository, index cache.WatchableIndex, drafts cache.DraftStore) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if repo == nil {
		return nil, errors.New("repo is nil")
	}
	if index == nil {
		return nil, errors.New("name index is nil")
	}
	if drafts == nil {
		return nil, errors.New("draft store is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:  cfg,
		Repo:    repo,
		Index:   index,
		Drafts:  drafts,
		BaseCtx: ctx,
		Cancel:  cancel,
	}, nil
}

func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
}

// StartWatchers seeds an empty store (when enabled), fills the name index and
// keeps it in sync with the recipes directory through the fsnotify watcher
// and the polling resync.
func (a *App) StartWatchers() error {
	if a.Config.Data.SeedOnStart {
		// seeding failures are not fatal: the store simply starts empty
		if _, err := a.Repo.SeedFromTemplates(a.BaseCtx); err != nil {
			logger.WithComponent("app").Warnf("seeding recipes failed: %v", err)
		}
	}

	names, err := a.Repo.List(a.BaseCtx)
	if err != nil {
		logger.WithComponent("app").Warnf("initial recipe listing failed: %v", err)
	}
	a.Index.Replace(names)
	logger.WithComponent("app").Infof("%d recipes indexed", len(names))

	if a.Config.Data.ResyncInterval > 0 {
		scheduler.NewPollingResync(a.Repo, a.Index, a.Config.Data.ResyncInterval).Start(a.BaseCtx)
	}

	if !a.Config.Data.Watch {
		return nil
	}
	if err := a.Repo.StartWatcher(a.BaseCtx, a.Index.Replace); err != nil {
		return fmt.Errorf("cannot start recipes watcher: %w", err)
	}
	return nil
}
