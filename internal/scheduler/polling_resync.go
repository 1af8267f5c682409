package scheduler

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/bassista/go_recipes/internal/cache"
	"github.com/bassista/go_recipes/internal/logger"
)

// Lister is the part of the repository the resync needs.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

// PollingResync re-lists the recipes directory on a fixed interval and
// replaces the name index when the set of names changed. It backs up the
// fsnotify watcher on filesystems that deliver no change events.
type PollingResync struct {
	store Lister
	index cache.WatchableIndex
	poll  time.Duration
}

func NewPollingResync(store Lister, index cache.WatchableIndex, poll time.Duration) *PollingResync {
	return &PollingResync{
		store: store,
		index: index,
		poll:  poll,
	}
}

func (s *PollingResync) Start(ctx context.Context) {
	logger.WithComponent("resync").Debugf("starting recipe resync with interval: %v", s.poll)
	ticker := time.NewTicker(s.poll)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.WithComponent("resync").Info("resync stopped")
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}()
}

// tick reports whether the index was replaced.
func (s *PollingResync) tick(ctx context.Context) bool {
	names, err := s.store.List(ctx)
	if err != nil {
		logger.WithComponent("resync").Errorf("list error: %v", err)
		return false
	}
	names = slices.Clone(names)
	sort.Strings(names)
	if slices.Equal(names, s.index.Names()) {
		return false
	}
	logger.WithComponent("resync").Infof("recipe directory changed, %d recipes indexed", len(names))
	s.index.Replace(names)
	return true
}
