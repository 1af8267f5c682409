package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bassista/go_recipes/internal/logger"
	"github.com/bassista/go_recipes/internal/recipe"
)

var (
	// ErrDraftNotFound is returned for a recipe that has no open working copy.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrConfirmationRequired is returned by the first of two removal requests.
	ErrConfirmationRequired = errors.New("removal pending confirmation")
)

// DefaultConfirmWindow is how long a pending removal waits for its confirmation.
const DefaultConfirmWindow = 3 * time.Second

type draft struct {
	recipe recipe.Recipe
	dirty  bool // true if changed since open or last commit
	// pending maps a removal target to the instant its confirmation expires.
	pending map[string]time.Time
}

// Drafts keeps in-memory working copies of recipes being edited.
// Edits never touch disk until Commit.
type Drafts struct {
	mu      sync.Mutex
	backend Backend
	window  time.Duration
	now     func() time.Time
	drafts  map[string]*draft
}

// NewDrafts creates a draft store. A non-positive window uses DefaultConfirmWindow.
func NewDrafts(backend Backend, window time.Duration) *Drafts {
	if window <= 0 {
		window = DefaultConfirmWindow
	}
	return &Drafts{
		backend: backend,
		window:  window,
		now:     time.Now,
		drafts:  map[string]*draft{},
	}
}

// Open loads a recipe into a working copy. Opening an already open recipe
// returns the current working copy, unsaved edits included.
func (s *Drafts) Open(ctx context.Context, name string) (recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.drafts[name]; ok {
		return d.recipe.Clone(), nil
	}
	r, err := s.backend.Load(ctx, name)
	if err != nil {
		return recipe.Recipe{}, err
	}
	s.drafts[name] = &draft{recipe: r.Clone(), pending: map[string]time.Time{}}
	logger.WithRecipe("drafts", name).Debugf("draft opened with %d sections", len(r.Sections))
	return r.Clone(), nil
}

// Snapshot returns a deep copy of the working copy.
func (s *Drafts) Snapshot(name string) (recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.get(name)
	if err != nil {
		return recipe.Recipe{}, err
	}
	return d.recipe.Clone(), nil
}

// IsDirty reports whether the working copy has uncommitted edits.
func (s *Drafts) IsDirty(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[name]
	return ok && d.dirty
}

func (s *Drafts) AddSection(name, title string) (recipe.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.get(name)
	if err != nil {
		return recipe.Section{}, err
	}
	sec, err := d.recipe.AddSection(title)
	if err != nil {
		return recipe.Section{}, err
	}
	d.touch()
	return sec, nil
}

// RemoveSection removes a section on the second request made within the
// confirmation window. The first request returns ErrConfirmationRequired.
func (s *Drafts) RemoveSection(name, sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.get(name)
	if err != nil {
		return err
	}
	if !hasSection(d.recipe, sectionID) {
		return fmt.Errorf("%w: %s", recipe.ErrSectionNotFound, sectionID)
	}
	if !s.confirm(d, "section:"+sectionID) {
		return ErrConfirmationRequired
	}
	if err := d.recipe.RemoveSection(sectionID); err != nil {
		return err
	}
	d.touch()
	return nil
}

func (s *Drafts) AddIngredient(name, sectionID, ingredient, amount string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.get(name)
	if err != nil {
		return err
	}
	if err := d.recipe.AddIngredient(sectionID, ingredient, amount); err != nil {
		return err
	}
	d.touch()
	return nil
}

// RemoveIngredient removes an ingredient with the same two-step
// confirmation as RemoveSection.
func (s *Drafts) RemoveIngredient(name, sectionID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.get(name)
	if err != nil {
		return err
	}
	if err := checkIngredient(d.recipe, sectionID, index); err != nil {
		return err
	}
	if !s.confirm(d, fmt.Sprintf("ingredient:%s:%d", sectionID, index)) {
		return ErrConfirmationRequired
	}
	if err := d.recipe.RemoveIngredient(sectionID, index); err != nil {
		return err
	}
	d.touch()
	return nil
}

func (s *Drafts) SetTips(name, sectionID, tips string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.get(name)
	if err != nil {
		return err
	}
	if err := d.recipe.SetTips(sectionID, tips); err != nil {
		return err
	}
	d.touch()
	return nil
}

// Commit saves the working copy through the backend and clears the dirty flag.
// The draft stays open.
func (s *Drafts) Commit(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.get(name)
	if err != nil {
		return err
	}
	if err := s.backend.Save(ctx, name, d.recipe.Sections); err != nil {
		return err
	}
	d.dirty = false
	logger.WithRecipe("drafts", name).Info("draft committed")
	return nil
}

// Discard drops the working copy without saving.
func (s *Drafts) Discard(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.get(name)
	if err != nil {
		return err
	}
	if d.dirty {
		logger.WithRecipe("drafts", name).Info("discarding unsaved changes")
	}
	delete(s.drafts, name)
	return nil
}

func (s *Drafts) get(name string) (*draft, error) {
	d, ok := s.drafts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, name)
	}
	return d, nil
}

// confirm reports whether key already had an unexpired pending mark.
// Otherwise it (re)arms the mark for one window.
func (s *Drafts) confirm(d *draft, key string) bool {
	now := s.now()
	for k, exp := range d.pending {
		if !now.Before(exp) {
			delete(d.pending, k)
		}
	}
	if _, ok := d.pending[key]; ok {
		delete(d.pending, key)
		return true
	}
	d.pending[key] = now.Add(s.window)
	return false
}

// touch marks an edit. Indexes may have shifted, so pending removals are dropped.
func (d *draft) touch() {
	d.dirty = true
	clear(d.pending)
}

func hasSection(r recipe.Recipe, id string) bool {
	for _, sec := range r.Sections {
		if sec.ID == id {
			return true
		}
	}
	return false
}

func checkIngredient(r recipe.Recipe, sectionID string, index int) error {
	for _, sec := range r.Sections {
		if sec.ID != sectionID {
			continue
		}
		if index < 0 || index >= len(sec.Ingredients) {
			return fmt.Errorf("%w: index %d", recipe.ErrIngredientNotFound, index)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", recipe.ErrSectionNotFound, sectionID)
}
