package repository

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"testing/fstest"
	"time"

	"github.com/bassista/go_recipes/internal/recipe"
	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDestination remembers every export write.
type recordingDestination struct {
	writes map[string][]byte
	err    error
}

func (d *recordingDestination) Write(filename string, data []byte) error {
	if d.err != nil {
		return d.err
	}
	if d.writes == nil {
		d.writes = map[string][]byte{}
	}
	d.writes[filename] = data
	return nil
}

type failingSource struct{}

func (failingSource) Open() (io.ReadCloser, error) { return nil, errors.New("permission denied") }
func (failingSource) DisplayName() (string, bool) { return "secret.txt", true }

func newTestRepo(t *testing.T, opts ...Option) (*FileRepository, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "recipes")
	repo, err := NewFileRepository(dir, opts...)
	require.NoError(t, err)
	return repo.(*FileRepository), dir
}

func sampleSections() []recipe.Section {
	return []recipe.Section{
		{
			Title:       "Dough",
			Ingredients: []recipe.Ingredient{{Name: "flour", Amount: "500g"}, {Name: "water", Amount: "250ml"}},
			Tips:        "rest for 30 minutes",
		},
		{
			Title:       "Filling",
			Ingredients: []recipe.Ingredient{{Name: "potatoes", Amount: "1kg"}, {Name: "salt"}},
		},
	}
}

func TestNewFileRepository_EmptyPath(t *testing.T) {
	_, err := NewFileRepository("")
	assert.Error(t, err)
}

func TestFileRepository_List_MissingRoot(t *testing.T) {
	repo, _ := newTestRepo(t)
	names, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestFileRepository_List_OnlyRecipeFiles(t *testing.T) {
	repo, dir := newTestRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.txt"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pierogi.txt"), []byte(": A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".bigos.txt.tmp-123"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".txt"), []byte("x"), 0o644))

	names, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"pierogi"}, names)
}

func TestFileRepository_CreateReadList(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Create(ctx, "bigos"))
	require.NoError(t, repo.Create(ctx, "zurek"))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"bigos", "zurek"}, names)

	text, err := repo.Read(ctx, "bigos")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestFileRepository_Create_ExistingLeftUntouched(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Save(ctx, "bigos", sampleSections()))
	err := repo.Create(ctx, "bigos")
	require.Error(t, err)
	assert.True(t, errdefs.IsAlreadyExists(err))

	loaded, err := repo.Load(ctx, "bigos")
	require.NoError(t, err)
	assert.True(t, recipe.Equal(sampleSections(), loaded.Sections))
}

func TestFileRepository_InvalidNames(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	for _, name := range []string{"", "   ", "..", "a/b", `a\b`, "soup.txt"} {
		err := repo.Create(ctx, name)
		assert.True(t, errdefs.IsInvalidArgument(err), "create %q: %v", name, err)
		_, err = repo.Read(ctx, name)
		assert.True(t, errdefs.IsInvalidArgument(err), "read %q: %v", name, err)
	}
}

func TestFileRepository_Read_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	_, err := repo.Read(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errdefs.IsNotFound(err))

	_, err = repo.Load(context.Background(), "missing")
	assert.True(t, errdefs.IsNotFound(err))
}

func TestFileRepository_DeleteThenList(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	require.NoError(t, repo.Create(ctx, "bigos"))
	require.NoError(t, repo.Create(ctx, "zurek"))

	require.NoError(t, repo.Delete(ctx, "bigos"))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, names, "bigos")
	assert.Contains(t, names, "zurek")

	err = repo.Delete(ctx, "bigos")
	require.Error(t, err)
	assert.True(t, errdefs.IsNotFound(err))
}

func TestFileRepository_SaveOverwritesAndRoundTrips(t *testing.T) {
	ctx := context.Background()
	repo, dir := newTestRepo(t)

	require.NoError(t, repo.Save(ctx, "pierogi", []recipe.Section{{Title: "Old"}}))
	require.NoError(t, repo.Save(ctx, "pierogi", sampleSections()))

	text, err := repo.Read(ctx, "pierogi")
	require.NoError(t, err)
	assert.NotContains(t, text, "Old")
	assert.True(t, recipe.Equal(sampleSections(), recipe.Decode(text)))

	raw, err := os.ReadFile(filepath.Join(dir, "pierogi.txt"))
	require.NoError(t, err)
	assert.Equal(t, recipe.Encode(sampleSections()), string(raw))

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileRepository_Save_CanceledContext(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, repo.Save(ctx, "x", sampleSections()), context.Canceled)
}

func TestFileRepository_Export(t *testing.T) {
	ctx := context.Background()
	dest := &recordingDestination{}
	repo, _ := newTestRepo(t, WithExportDestination(dest))

	require.NoError(t, repo.Save(ctx, "bigos", sampleSections()))
	require.NoError(t, repo.Export(ctx, "bigos"))
	assert.Equal(t, recipe.Encode(sampleSections()), string(dest.writes["bigos.txt"]))
}

func TestFileRepository_Export_MissingSourceWritesNothing(t *testing.T) {
	dest := &recordingDestination{}
	repo, _ := newTestRepo(t, WithExportDestination(dest))

	err := repo.Export(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errdefs.IsNotFound(err))
	assert.Empty(t, dest.writes)
}

func TestFileRepository_Export_Errors(t *testing.T) {
	ctx := context.Background()

	repo, _ := newTestRepo(t)
	require.NoError(t, repo.Create(ctx, "bigos"))
	assert.True(t, errdefs.IsFailedPrecondition(repo.Export(ctx, "bigos")))

	failing := &recordingDestination{err: errors.New("disk full")}
	repo2, _ := newTestRepo(t, WithExportDestination(failing))
	require.NoError(t, repo2.Create(ctx, "bigos"))
	assert.True(t, errdefs.IsUnavailable(repo2.Export(ctx, "bigos")))
}

func TestFileRepository_Export_ToDirectoryOverwrites(t *testing.T) {
	ctx := context.Background()
	downloads := filepath.Join(t.TempDir(), "Downloads")
	repo, _ := newTestRepo(t, WithExportDestination(DirDestination{Dir: downloads}))

	require.NoError(t, os.MkdirAll(downloads, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(downloads, "bigos.txt"), []byte("stale"), 0o644))

	require.NoError(t, repo.Save(ctx, "bigos", sampleSections()))
	require.NoError(t, repo.Export(ctx, "bigos"))

	got, err := os.ReadFile(filepath.Join(downloads, "bigos.txt"))
	require.NoError(t, err)
	assert.Equal(t, recipe.Encode(sampleSections()), string(got))
}

func TestFileRepository_Import_WithDisplayName(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	content := ": Soup\n- beet | 3\nhand written note\n"
	name, err := repo.Import(ctx, ReaderSource{Name: "barszcz.txt", Data: []byte(content)})
	require.NoError(t, err)
	assert.Equal(t, "barszcz", name)

	text, err := repo.Read(ctx, "barszcz")
	require.NoError(t, err)
	assert.Equal(t, content, text, "imported text is stored verbatim")
}

func TestFileRepository_Import_FromFile(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	src := filepath.Join(t.TempDir(), "Grandma Pancakes.txt")
	require.NoError(t, os.WriteFile(src, []byte(": Batter\n"), 0o644))

	name, err := repo.Import(ctx, FileSource{Path: src})
	require.NoError(t, err)
	assert.Equal(t, "Grandma Pancakes", name)
}

func TestFileRepository_Import_WithoutDisplayName(t *testing.T) {
	ctx := context.Background()
	at := time.UnixMilli(1700000000123)
	repo, _ := newTestRepo(t, WithClock(func() time.Time { return at }))

	name, err := repo.Import(ctx, ReaderSource{Data: []byte(": A\n")})
	require.NoError(t, err)
	assert.Equal(t, "imported_recipe_1700000000123", name)

	name, err = repo.Import(ctx, ReaderSource{Name: "..", Data: []byte(": A\n")})
	require.NoError(t, err)
	assert.Equal(t, "imported_recipe_1700000000123", name)
}

func TestFileRepository_Import_OverwritesExisting(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)
	require.NoError(t, repo.Save(ctx, "bigos", sampleSections()))

	_, err := repo.Import(ctx, ReaderSource{Name: "bigos.txt", Data: []byte(": New\n")})
	require.NoError(t, err)

	text, err := repo.Read(ctx, "bigos")
	require.NoError(t, err)
	assert.Equal(t, ": New\n", text)
}

func TestFileRepository_Import_UnreadableSource(t *testing.T) {
	repo, dir := newTestRepo(t)

	name, err := repo.Import(context.Background(), failingSource{})
	require.Error(t, err)
	assert.Empty(t, name)
	assert.True(t, errdefs.IsFailedPrecondition(err))

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written")

	_, err = repo.Import(context.Background(), nil)
	assert.True(t, errdefs.IsInvalidArgument(err))
}

func testTemplates() FSTemplates {
	return FSTemplates{FS: fstest.MapFS{
		"pancakes.txt":    {Data: []byte(": Batter\n- flour | 200g\n")},
		"pierogi.txt":     {Data: []byte(": Dough\n- flour | 500g\n")},
		"README.md":       {Data: []byte("not a recipe")},
		"extra/other.txt": {Data: []byte(": Nested\n")},
	}}
}

func TestFileRepository_SeedFromTemplates(t *testing.T) {
	ctx := context.Background()
	repo, dir := newTestRepo(t, WithTemplates(testTemplates()))

	n, err := repo.SeedFromTemplates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	names, err := repo.List(ctx)
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"pancakes", "pierogi"}, names)

	got, err := os.ReadFile(filepath.Join(dir, "pancakes.txt"))
	require.NoError(t, err)
	assert.Equal(t, ": Batter\n- flour | 200g\n", string(got), "templates are copied byte for byte")

	// second run is a no-op
	require.NoError(t, repo.Delete(ctx, "pierogi"))
	n, err = repo.SeedFromTemplates(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	names, _ = repo.List(ctx)
	assert.Equal(t, []string{"pancakes"}, names)
}

func TestFileRepository_SeedFromTemplates_NonEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t, WithTemplates(testTemplates()))
	require.NoError(t, repo.Create(ctx, "mine"))

	n, err := repo.SeedFromTemplates(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	names, _ := repo.List(ctx)
	assert.Equal(t, []string{"mine"}, names)
}

func TestFileRepository_SeedFromTemplates_NoTemplates(t *testing.T) {
	repo, _ := newTestRepo(t)
	n, err := repo.SeedFromTemplates(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
