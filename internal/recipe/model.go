package recipe

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	// ErrSectionNotFound is returned when a section id is unknown to the recipe.
	ErrSectionNotFound = errors.New("section not found")
	// ErrIngredientNotFound is returned for an out of range ingredient index.
	ErrIngredientNotFound = errors.New("ingredient not found")
	// ErrEmptyTitle is returned when adding a section without a title.
	ErrEmptyTitle = errors.New("section title is required")
	// ErrEmptyIngredient is returned when adding an ingredient without a name.
	ErrEmptyIngredient = errors.New("ingredient name is required")
)

// Ingredient is a single "- name | amount" line. An empty Amount means none was given.
type Ingredient struct {
	Name   string `json:"name" yaml:"name"`
	Amount string `json:"amount,omitempty" yaml:"amount,omitempty"`
}

// Section groups ingredients and tips under a title.
//
// ID is not part of the text format: it identifies one section instance
// while a recipe is being edited and is regenerated on every Decode.
type Section struct {
	ID          string       `json:"id,omitempty" yaml:"-"`
	Title       string       `json:"title" yaml:"title" validate:"required"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients,omitempty"`
	Tips        string       `json:"tips,omitempty" yaml:"tips,omitempty"`
}

// Recipe is a named, ordered list of sections.
type Recipe struct {
	Name     string    `json:"name" yaml:"name"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// NewSection returns an empty section with a fresh id.
func NewSection(title string) Section {
	return Section{ID: uuid.NewString(), Title: title, Ingredients: []Ingredient{}}
}

var validate = validator.New()

// Validate checks that every section carries a title.
func Validate(sections []Section) error {
	for i := range sections {
		if err := validate.Struct(&sections[i]); err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
	}
	return nil
}

// EnsureIDs assigns ids to sections that have none, e.g. sections sent by a client.
func EnsureIDs(sections []Section) {
	for i := range sections {
		if sections[i].ID == "" {
			sections[i].ID = uuid.NewString()
		}
		if sections[i].Ingredients == nil {
			sections[i].Ingredients = []Ingredient{}
		}
	}
}

// Equal compares two section lists by content, ignoring ids.
func Equal(a, b []Section) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Title != b[i].Title || a[i].Tips != b[i].Tips {
			return false
		}
		if len(a[i].Ingredients) != len(b[i].Ingredients) {
			return false
		}
		for j := range a[i].Ingredients {
			if a[i].Ingredients[j] != b[i].Ingredients[j] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy so callers never share ingredient slices.
func (r Recipe) Clone() Recipe {
	out := Recipe{Name: r.Name, Sections: make([]Section, len(r.Sections))}
	for i, s := range r.Sections {
		s.Ingredients = append([]Ingredient{}, s.Ingredients...)
		out.Sections[i] = s
	}
	return out
}

func (r *Recipe) section(id string) (*Section, error) {
	for i := range r.Sections {
		if r.Sections[i].ID == id {
			return &r.Sections[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, id)
}

// AddSection appends a new empty section and returns it.
func (r *Recipe) AddSection(title string) (Section, error) {
	if title == "" {
		return Section{}, ErrEmptyTitle
	}
	s := NewSection(title)
	r.Sections = append(r.Sections, s)
	return s, nil
}

// RemoveSection drops the section with the given id.
func (r *Recipe) RemoveSection(id string) error {
	for i := range r.Sections {
		if r.Sections[i].ID == id {
			r.Sections = append(r.Sections[:i], r.Sections[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSectionNotFound, id)
}

// AddIngredient appends an ingredient to a section.
func (r *Recipe) AddIngredient(sectionID, name, amount string) error {
	if name == "" {
		return ErrEmptyIngredient
	}
	s, err := r.section(sectionID)
	if err != nil {
		return err
	}
	s.Ingredients = append(s.Ingredients, Ingredient{Name: name, Amount: amount})
	return nil
}

// RemoveIngredient drops the ingredient at index from a section.
func (r *Recipe) RemoveIngredient(sectionID string, index int) error {
	s, err := r.section(sectionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(s.Ingredients) {
		return fmt.Errorf("%w: index %d", ErrIngredientNotFound, index)
	}
	s.Ingredients = append(s.Ingredients[:index], s.Ingredients[index+1:]...)
	return nil
}

// SetTips replaces the tips of a section. An empty string clears them.
func (r *Recipe) SetTips(sectionID, tips string) error {
	s, err := r.section(sectionID)
	if err != nil {
		return err
	}
	s.Tips = tips
	return nil
}
