package ui

import (
	"fmt"
	"strings"

	"github.com/bassista/go_recipes/internal/recipe"
)

// RenderRecipe formats a recipe for reading in a terminal.
func RenderRecipe(r recipe.Recipe) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(r.Name))
	b.WriteString("\n")

	if len(r.Sections) == 0 {
		b.WriteString(RenderMuted("(empty recipe)"))
		b.WriteString("\n")
		return b.String()
	}

	for _, s := range r.Sections {
		b.WriteString("\n")
		b.WriteString(SectionStyle.Render(s.Title))
		b.WriteString("\n")
		for _, ing := range s.Ingredients {
			line := "  " + IconBullet + " " + ing.Name
			if ing.Amount != "" {
				line += "  " + AmountStyle.Render(ing.Amount)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		if s.Tips != "" {
			b.WriteString(TipsStyle.Render(IconTip + " " + s.Tips))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderList formats recipe names one per line, with a count footer.
func RenderList(names []string) string {
	if len(names) == 0 {
		return RenderMuted("No recipes yet. Create one with 'recipes new <name>' or run 'recipes seed'.") + "\n"
	}
	var b strings.Builder
	for _, n := range names {
		b.WriteString(IconBullet + " " + n + "\n")
	}
	b.WriteString(RenderMuted(fmt.Sprintf("%d recipe(s)", len(names))))
	b.WriteString("\n")
	return b.String()
}
