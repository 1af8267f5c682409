package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Empty(t *testing.T) {
	sections := Decode("")
	assert.NotNil(t, sections)
	assert.Empty(t, sections)
}

func TestEncode_Empty(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
	assert.Equal(t, "", Encode([]Section{}))
}

func TestDecode_FullRecipe(t *testing.T) {
	text := `: Dough
- flour | 500g
- water | 250ml
> knead for ten minutes

: Filling
- cheese | 200g
- salt
`
	sections := Decode(text)
	require.Len(t, sections, 2)

	assert.Equal(t, "Dough", sections[0].Title)
	assert.Equal(t, []Ingredient{{Name: "flour", Amount: "500g"}, {Name: "water", Amount: "250ml"}}, sections[0].Ingredients)
	assert.Equal(t, "knead for ten minutes", sections[0].Tips)

	assert.Equal(t, "Filling", sections[1].Title)
	assert.Equal(t, []Ingredient{{Name: "cheese", Amount: "200g"}, {Name: "salt"}}, sections[1].Ingredients)
	assert.Empty(t, sections[1].Tips)
}

func TestDecode_TipsAccumulate(t *testing.T) {
	sections := Decode(": A\n> line1\n> line2\n")
	require.Len(t, sections, 1)
	assert.Equal(t, "A", sections[0].Title)
	assert.Empty(t, sections[0].Ingredients)
	assert.Equal(t, "line1\nline2", sections[0].Tips)
}

func TestDecode_EmptyFirstTipLineIsKept(t *testing.T) {
	sections := Decode(": A\n>\n> second\n")
	require.Len(t, sections, 1)
	assert.Equal(t, "\nsecond", sections[0].Tips)
}

func TestDecode_TipsDoNotLeakIntoNextSection(t *testing.T) {
	sections := Decode(": A\n> one\n: B\n> two\n")
	require.Len(t, sections, 2)
	assert.Equal(t, "one", sections[0].Tips)
	assert.Equal(t, "two", sections[1].Tips)
}

func TestDecode_IngredientFieldSplit(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Ingredient
	}{
		{"name and amount", "- flour | 200g", Ingredient{Name: "flour", Amount: "200g"}},
		{"name only", "- salt", Ingredient{Name: "salt"}},
		{"trailing separator", "- salt | ", Ingredient{Name: "salt"}},
		{"no spaces", "-sugar|1 tbsp", Ingredient{Name: "sugar", Amount: "1 tbsp"}},
		{"extra fields ignored", "- egg | 2 | large", Ingredient{Name: "egg", Amount: "2"}},
		{"empty name kept", "- | 3 cups", Ingredient{Name: "", Amount: "3 cups"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := Decode(": S\n" + tt.line + "\n")
			require.Len(t, sections, 1)
			require.Len(t, sections[0].Ingredients, 1)
			assert.Equal(t, tt.want, sections[0].Ingredients[0])
		})
	}
}

func TestDecode_EmptyIngredientLineDropped(t *testing.T) {
	sections := Decode(": S\n-\n-   \n- milk\n")
	require.Len(t, sections, 1)
	assert.Equal(t, []Ingredient{{Name: "milk"}}, sections[0].Ingredients)
}

func TestDecode_LinesBeforeFirstSectionDropped(t *testing.T) {
	text := "- orphan | 1\n> orphan tip\nrandom words\n: Real\n- kept | 2\n"
	sections := Decode(text)
	require.Len(t, sections, 1)
	assert.Equal(t, "Real", sections[0].Title)
	assert.Equal(t, []Ingredient{{Name: "kept", Amount: "2"}}, sections[0].Ingredients)
	assert.Empty(t, sections[0].Tips)
}

func TestDecode_Permissive(t *testing.T) {
	inputs := []string{
		"just some text",
		"|||\n:::\n---\n>>>",
		"\r\n\r\n",
		": \n- \n> ",
		"\x00\x01binary",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Decode(in) }, "input %q", in)
	}
}

func TestDecode_WhitespaceAndLineEndings(t *testing.T) {
	text := "   :  Sauce  \r\n\t-  tomato  |  3  \r\n   >  simmer  \r"
	sections := Decode(text)
	require.Len(t, sections, 1)
	assert.Equal(t, "Sauce", sections[0].Title)
	assert.Equal(t, []Ingredient{{Name: "tomato", Amount: "3"}}, sections[0].Ingredients)
	assert.Equal(t, "simmer", sections[0].Tips)
}

func TestDecode_TipsBetweenIngredientsKeepOrder(t *testing.T) {
	sections := Decode(": S\n- a\n> tip\n- b\n")
	require.Len(t, sections, 1)
	assert.Equal(t, []Ingredient{{Name: "a"}, {Name: "b"}}, sections[0].Ingredients)
	assert.Equal(t, "tip", sections[0].Tips)
}

func TestDecode_AssignsDistinctIDs(t *testing.T) {
	sections := Decode(": A\n: A\n")
	require.Len(t, sections, 2)
	assert.NotEmpty(t, sections[0].ID)
	assert.NotEqual(t, sections[0].ID, sections[1].ID)
}

func TestEncode_Format(t *testing.T) {
	sections := []Section{
		{
			Title:       "Dough",
			Ingredients: []Ingredient{{Name: "flour", Amount: "500g"}, {Name: "salt"}},
			Tips:        "rest one hour",
		},
		{Title: "Topping", Ingredients: []Ingredient{}},
	}
	want := ": Dough\n- flour | 500g\n- salt | \n> rest one hour\n\n: Topping\n\n"
	assert.Equal(t, want, Encode(sections))
}

func TestEncode_MultilineTipsWrittenLiterally(t *testing.T) {
	out := Encode([]Section{{Title: "A", Tips: "line1\nline2"}})
	assert.Equal(t, ": A\n> line1\nline2\n\n", out)

	// the bare continuation line is not a tip line and is dropped on decode
	back := Decode(out)
	require.Len(t, back, 1)
	assert.Equal(t, "line1", back[0].Tips)
}

func TestRoundTrip(t *testing.T) {
	original := []Section{
		{
			Title: "Dough",
			Ingredients: []Ingredient{
				{Name: "flour", Amount: "500g"},
				{Name: "water", Amount: "250 ml"},
				{Name: "flour", Amount: "50g"},
				{Name: "salt"},
			},
			Tips: "knead until smooth",
		},
		{Title: "Filling", Ingredients: []Ingredient{{Name: "potatoes", Amount: "1 kg"}}},
		{Title: "Serving", Ingredients: []Ingredient{}, Tips: "with sour cream"},
	}

	decoded := Decode(Encode(original))
	assert.True(t, Equal(original, decoded), "round trip changed content:\n%#v\n%#v", original, decoded)

	// encoding is stable after the first pass
	assert.Equal(t, Encode(original), Encode(decoded))
}
