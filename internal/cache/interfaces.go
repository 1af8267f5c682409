package cache

import (
	"context"

	"github.com/bassista/go_recipes/internal/recipe"
	"github.com/bassista/go_recipes/internal/repository"
)

// NameIndex is the cache API needed by recipe handlers.
type NameIndex interface {
	Names() []string
	Contains(name string) bool
	Add(name string) bool
	Remove(name string) bool
}

// WatchableIndex is refreshed by the repository watcher.
type WatchableIndex interface {
	NameIndex
	Replace(names []string)
}

// Backend is what the draft store needs from persistence.
type Backend interface {
	repository.Loader
	repository.Saver
}

// DraftStore is the cache API needed by draft handlers.
type DraftStore interface {
	Open(ctx context.Context, name string) (recipe.Recipe, error)
	Snapshot(name string) (recipe.Recipe, error)
	IsDirty(name string) bool
	AddSection(name, title string) (recipe.Section, error)
	RemoveSection(name, sectionID string) error
	AddIngredient(name, sectionID, ingredient, amount string) error
	RemoveIngredient(name, sectionID string, index int) error
	SetTips(name, sectionID, tips string) error
	Commit(ctx context.Context, name string) error
	Discard(name string) error
}
