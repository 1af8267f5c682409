package repository

import (
	"context"
	"io"

	"github.com/bassista/go_recipes/internal/recipe"
)

// Saver persists the sections of one recipe.
// Small interface used by the draft store to commit working copies.
type Saver interface {
	Save(ctx context.Context, name string, sections []recipe.Section) error
}

// Loader reads and decodes one recipe.
type Loader interface {
	Load(ctx context.Context, name string) (recipe.Recipe, error)
}

// Repository abstracts persistence of recipe files.
// FileRepository implements this interface.
type Repository interface {
	Saver
	Loader
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) (string, error)
	Create(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
	Export(ctx context.Context, name string) error
	Import(ctx context.Context, src Source) (string, error)
	SeedFromTemplates(ctx context.Context) (int, error)
	StartWatcher(ctx context.Context, onChange func(names []string)) error
}

// Source is an external document picked for import.
type Source interface {
	Open() (io.ReadCloser, error)
	// DisplayName reports the document's file name, if it has one.
	DisplayName() (string, bool)
}

// Destination receives exported recipe files.
type Destination interface {
	Write(filename string, data []byte) error
}

// Templates is the read-only bundled recipe set used for first-run seeding.
type Templates interface {
	List() ([]string, error)
	Open(filename string) (io.ReadCloser, error)
}
