package recipe

import (
	"strings"

	"github.com/google/uuid"
)

// Line markers of the recipe text format.
const (
	SectionMarker    = ":"
	IngredientMarker = "-"
	TipsMarker       = ">"
	FieldSeparator   = "|"
)

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// decoder is the accumulator threaded through the line fold.
type decoder struct {
	sections []Section
	current  *Section
	hasTips  bool
}

// Decode parses recipe text into sections. It never fails: lines that are
// unrecognised, or that appear before the first section, are dropped.
func Decode(text string) []Section {
	d := decoder{sections: []Section{}}
	for _, line := range strings.Split(lineBreaks.Replace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		d = d.step(line)
	}
	return d.finish()
}

func (d decoder) step(line string) decoder {
	switch {
	case strings.HasPrefix(line, SectionMarker):
		d = d.flush()
		d.current = &Section{
			ID:          uuid.NewString(),
			Title:       strings.TrimSpace(strings.TrimPrefix(line, SectionMarker)),
			Ingredients: []Ingredient{},
		}
	case strings.HasPrefix(line, IngredientMarker):
		if d.current == nil {
			return d
		}
		if ing, ok := parseIngredient(strings.TrimPrefix(line, IngredientMarker)); ok {
			d.current.Ingredients = append(d.current.Ingredients, ing)
		}
	case strings.HasPrefix(line, TipsMarker):
		if d.current == nil {
			return d
		}
		tip := strings.TrimSpace(strings.TrimPrefix(line, TipsMarker))
		if d.hasTips {
			d.current.Tips += "\n" + tip
		} else {
			d.current.Tips = tip
			d.hasTips = true
		}
	}
	return d
}

func (d decoder) flush() decoder {
	if d.current != nil {
		d.sections = append(d.sections, *d.current)
	}
	d.current = nil
	d.hasTips = false
	return d
}

func (d decoder) finish() []Section {
	return d.flush().sections
}

// parseIngredient splits "name | amount". Fields past the second are ignored.
func parseIngredient(body string) (Ingredient, bool) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Ingredient{}, false
	}
	parts := strings.Split(body, FieldSeparator)
	ing := Ingredient{Name: strings.TrimSpace(parts[0])}
	if len(parts) > 1 {
		ing.Amount = strings.TrimSpace(parts[1])
	}
	return ing, true
}

// Encode renders sections in the recipe text format. Every section is
// followed by a blank line; empty tips produce no "> " line.
func Encode(sections []Section) string {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(SectionMarker + " " + s.Title + "\n")
		for _, ing := range s.Ingredients {
			b.WriteString(IngredientMarker + " " + ing.Name + " " + FieldSeparator + " " + ing.Amount + "\n")
		}
		if s.Tips != "" {
			b.WriteString(TipsMarker + " " + s.Tips + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
