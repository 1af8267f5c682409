package controller

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bassista/go_recipes/internal/cache"
	"github.com/bassista/go_recipes/internal/recipe"
	"github.com/bassista/go_recipes/internal/repository"
	"github.com/containerd/errdefs"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockRepository implements repository.Repository over a map of recipe texts.
type mockRepository struct {
	files     map[string]string
	exported  []string
	templates map[string]string
	saveErr   error
	listErr   error
}

func newMockRepository(files map[string]string) *mockRepository {
	if files == nil {
		files = map[string]string{}
	}
	return &mockRepository{files: files}
}

func (m *mockRepository) List(ctx context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	names := make([]string, 0, len(m.files))
	for n := range m.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (m *mockRepository) Read(ctx context.Context, name string) (string, error) {
	if err := repository.ValidateName(name); err != nil {
		return "", err
	}
	text, ok := m.files[name]
	if !ok {
		return "", fmt.Errorf("read %q: %w", name, errdefs.ErrNotFound)
	}
	return text, nil
}

func (m *mockRepository) Load(ctx context.Context, name string) (recipe.Recipe, error) {
	text, err := m.Read(ctx, name)
	if err != nil {
		return recipe.Recipe{}, err
	}
	return recipe.Recipe{Name: name, Sections: recipe.Decode(text)}, nil
}

func (m *mockRepository) Create(ctx context.Context, name string) error {
	if err := repository.ValidateName(name); err != nil {
		return err
	}
	if _, ok := m.files[name]; ok {
		return fmt.Errorf("create %q: %w", name, errdefs.ErrAlreadyExists)
	}
	m.files[name] = ""
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, name string) error {
	if _, ok := m.files[name]; !ok {
		return fmt.Errorf("delete %q: %w", name, errdefs.ErrNotFound)
	}
	delete(m.files, name)
	return nil
}

func (m *mockRepository) Save(ctx context.Context, name string, sections []recipe.Section) error {
	if err := repository.ValidateName(name); err != nil {
		return err
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	m.files[name] = recipe.Encode(sections)
	return nil
}

func (m *mockRepository) Export(ctx context.Context, name string) error {
	if _, ok := m.files[name]; !ok {
		return fmt.Errorf("export %q: %w", name, errdefs.ErrNotFound)
	}
	m.exported = append(m.exported, name)
	return nil
}

func (m *mockRepository) Import(ctx context.Context, src repository.Source) (string, error) {
	rc, err := src.Open()
	if err != nil {
		return "", fmt.Errorf("import: %w: %w", errdefs.ErrFailedPrecondition, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	name, _ := src.DisplayName()
	name = strings.TrimSuffix(name, repository.FileExt)
	m.files[name] = string(data)
	return name, nil
}

func (m *mockRepository) SeedFromTemplates(ctx context.Context) (int, error) {
	if len(m.files) > 0 {
		return 0, nil
	}
	for n, text := range m.templates {
		m.files[n] = text
	}
	return len(m.templates), nil
}

func (m *mockRepository) StartWatcher(ctx context.Context, onChange func([]string)) error {
	return nil
}

// newFixture wires a mock repository to real index and draft implementations.
func newFixture(files map[string]string) (*mockRepository, *cache.Index, *cache.Drafts) {
	repo := newMockRepository(files)
	names, _ := repo.List(context.Background())
	return repo, cache.NewIndex(names), cache.NewDrafts(repo, cache.DefaultConfirmWindow)
}
