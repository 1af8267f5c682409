package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bassista/go_recipes/internal/logger"
	"github.com/bassista/go_recipes/internal/recipe"
	"github.com/containerd/errdefs"
)

const component = "recipe-repo"

// FileRepository keeps one <name>.txt file per recipe in a flat directory.
type FileRepository struct {
	root      string
	export    Destination
	templates Templates
	now       func() time.Time
	mu        sync.Mutex
}

// Option configures a FileRepository.
type Option func(*FileRepository)

// WithExportDestination sets where Export copies recipe files.
func WithExportDestination(d Destination) Option {
	return func(r *FileRepository) { r.export = d }
}

// WithTemplates sets the bundled templates used by SeedFromTemplates.
func WithTemplates(t Templates) Option {
	return func(r *FileRepository) { r.templates = t }
}

// WithClock overrides the clock used to name imports without a display name.
func WithClock(now func() time.Time) Option {
	return func(r *FileRepository) { r.now = now }
}

// NewFileRepository creates a repository rooted at dir.
// It returns the repository interface to avoid leaking implementation details.
func NewFileRepository(dir string, opts ...Option) (Repository, error) {
	if dir == "" {
		return nil, errors.New("recipes directory is required")
	}
	r := &FileRepository{root: filepath.Clean(dir), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Root returns the directory holding the recipe files.
func (r *FileRepository) Root() string {
	return r.root
}

func (r *FileRepository) path(name string) string {
	return filepath.Join(r.root, KeyFor(name))
}

// List returns the names of all persisted recipes in directory order.
// A missing root is an empty store, not an error.
func (r *FileRepository) List(_ context.Context) ([]string, error) {
	names := []string{}
	entries, err := os.ReadDir(r.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return names, nil
		}
		logger.WithComponent(component).Errorf("list recipes: %v", err)
		return names, fmt.Errorf("list recipes: %w: %w", errdefs.ErrUnavailable, err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if name, ok := NameFor(e.Name()); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Read returns the raw text of a recipe.
func (r *FileRepository) Read(_ context.Context, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		return "", r.classify("read", name, err)
	}
	return string(data), nil
}

// Load reads a recipe and decodes its sections.
func (r *FileRepository) Load(ctx context.Context, name string) (recipe.Recipe, error) {
	text, err := r.Read(ctx, name)
	if err != nil {
		return recipe.Recipe{}, err
	}
	return recipe.Recipe{Name: name, Sections: recipe.Decode(text)}, nil
}

// Create makes an empty recipe file. An existing file is left untouched
// and reported as ErrAlreadyExists.
func (r *FileRepository) Create(_ context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.prepareRoot(); err != nil {
		return err
	}
	f, err := os.OpenFile(r.path(name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return r.classify("create", name, err)
	}
	if err := f.Close(); err != nil {
		return r.classify("create", name, err)
	}
	logger.WithRecipe(component, name).Debug("recipe created")
	return nil
}

// Delete removes a recipe file for good.
func (r *FileRepository) Delete(_ context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path(name)); err != nil {
		return r.classify("delete", name, err)
	}
	logger.WithRecipe(component, name).Debug("recipe deleted")
	return nil
}

// Save encodes sections and replaces the whole recipe file.
func (r *FileRepository) Save(ctx context.Context, name string, sections []recipe.Section) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.prepareRoot(); err != nil {
		return err
	}
	if err := writeFileAtomic(r.root, KeyFor(name), []byte(recipe.Encode(sections))); err != nil {
		return r.classify("save", name, err)
	}
	logger.WithRecipe(component, name).Debugf("recipe saved with %d sections", len(sections))
	return nil
}

// Export copies the persisted text of a recipe to the export destination,
// overwriting a previous export. Nothing is written if the recipe is missing.
func (r *FileRepository) Export(_ context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if r.export == nil {
		return fmt.Errorf("export %q: %w: no export destination configured", name, errdefs.ErrFailedPrecondition)
	}
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		return r.classify("export", name, err)
	}
	if err := r.export.Write(KeyFor(name), data); err != nil {
		logger.WithRecipe(component, name).Errorf("export: %v", err)
		return fmt.Errorf("export %q: %w: %w", name, errdefs.ErrUnavailable, err)
	}
	logger.WithRecipe(component, name).Info("recipe exported")
	return nil
}

// Import copies an external document into the store verbatim and returns the
// resulting recipe name. The name comes from the document's display name
// without FileExt, or imported_recipe_<unix millis> when there is none.
func (r *FileRepository) Import(_ context.Context, src Source) (string, error) {
	if src == nil {
		return "", fmt.Errorf("import: %w: no source", errdefs.ErrInvalidArgument)
	}
	rc, err := src.Open()
	if err != nil {
		logger.WithComponent(component).Warnf("import: open source: %v", err)
		return "", fmt.Errorf("import: %w: %w", errdefs.ErrFailedPrecondition, err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		logger.WithComponent(component).Warnf("import: read source: %v", err)
		return "", fmt.Errorf("import: %w: %w", errdefs.ErrFailedPrecondition, err)
	}

	name := r.importName(src)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.prepareRoot(); err != nil {
		return "", err
	}
	if err := writeFileAtomic(r.root, KeyFor(name), data); err != nil {
		return "", r.classify("import", name, err)
	}
	logger.WithRecipe(component, name).Info("recipe imported")
	return name, nil
}

func (r *FileRepository) importName(src Source) string {
	if display, ok := src.DisplayName(); ok {
		name := strings.TrimSuffix(filepath.Base(display), FileExt)
		if ValidateName(name) == nil {
			return name
		}
		logger.WithComponent(component).Warnf("import: unusable display name %q, generating one", display)
	}
	return fmt.Sprintf("imported_recipe_%d", r.now().UnixMilli())
}

// SeedFromTemplates copies every bundled template into an empty store and
// returns how many files were copied. A store holding any file is left alone.
func (r *FileRepository) SeedFromTemplates(ctx context.Context) (int, error) {
	if r.templates == nil {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.prepareRoot(); err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(r.root)
	if err != nil {
		logger.WithComponent(component).Errorf("seed: %v", err)
		return 0, fmt.Errorf("seed: %w: %w", errdefs.ErrUnavailable, err)
	}
	if len(entries) > 0 {
		logger.WithComponent(component).Debug("seed: store not empty, skipping")
		return 0, nil
	}

	files, err := r.templates.List()
	if err != nil {
		logger.WithComponent(component).Errorf("seed: list templates: %v", err)
		return 0, fmt.Errorf("seed: %w: %w", errdefs.ErrUnavailable, err)
	}
	copied := 0
	for _, file := range files {
		if _, ok := NameFor(file); !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return copied, err
		}
		if err := r.copyTemplate(file); err != nil {
			logger.WithComponent(component).Errorf("seed: copy %s: %v", file, err)
			return copied, fmt.Errorf("seed %s: %w: %w", file, errdefs.ErrUnavailable, err)
		}
		copied++
	}
	logger.WithComponent(component).Infof("seeded %d recipes from templates", copied)
	return copied, nil
}

func (r *FileRepository) copyTemplate(file string) error {
	in, err := r.templates.Open(file)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(filepath.Join(r.root, filepath.Base(file)))
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (r *FileRepository) prepareRoot() error {
	if err := os.MkdirAll(r.root, 0o755); err != nil {
		logger.WithComponent(component).Errorf("prepare recipes dir %s: %v", r.root, err)
		return fmt.Errorf("prepare recipes dir: %w: %w", errdefs.ErrUnavailable, err)
	}
	return nil
}

// classify logs a filesystem failure once and tags it with an errdefs class.
func (r *FileRepository) classify(op, name string, err error) error {
	log := logger.WithRecipe(component, name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warnf("%s: recipe not found", op)
		return fmt.Errorf("%s recipe %q: %w", op, name, errdefs.ErrNotFound)
	case errors.Is(err, fs.ErrExist):
		log.Warnf("%s: recipe already exists", op)
		return fmt.Errorf("%s recipe %q: %w", op, name, errdefs.ErrAlreadyExists)
	default:
		log.Errorf("%s: %v", op, err)
		return fmt.Errorf("%s recipe %q: %w: %w", op, name, errdefs.ErrUnavailable, err)
	}
}

// writeFileAtomic writes data to dir/filename through a temp file and rename.
func writeFileAtomic(dir, filename string, data []byte) error {
	tmpFile, err := os.CreateTemp(dir, "."+filename+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filepath.Join(dir, filename)); err != nil {
		return fmt.Errorf("replace recipe file: %w", err)
	}

	return nil
}
