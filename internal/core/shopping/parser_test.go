package shopping

import (
	"strings"
	"testing"

	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  common.Ingredient
	}{
		{
			name:  "fraction with unit",
			input: "1/2 cup flour",
			want:  common.Ingredient{Name: "flour", Quantity: 0.5, Unit: "cup"},
		},
		{
			name:  "no quantity",
			input: "salt",
			want:  common.Ingredient{Name: "salt", Quantity: 1, Unit: ""},
		},
		{
			name:  "two tokens keeps second token as name",
			input: "2 eggs",
			want:  common.Ingredient{Name: "eggs", Quantity: 2, Unit: ""},
		},
		{
			name:  "adjective treated positionally as unit",
			input: "2 large eggs",
			want:  common.Ingredient{Name: "eggs", Quantity: 2, Unit: "large"},
		},
		{
			name:  "decimal quantity and multi word name",
			input: "0.5 tsp vanilla extract",
			want:  common.Ingredient{Name: "vanilla extract", Quantity: 0.5, Unit: "tsp"},
		},
		{
			name:  "extra whitespace collapses",
			input: "  3   cups   whole  milk  ",
			want:  common.Ingredient{Name: "whole milk", Quantity: 3, Unit: "cups"},
		},
		{
			name:  "textual quantity is not numeric",
			input: "a pinch salt",
			want:  common.Ingredient{Name: "a pinch salt", Quantity: 1, Unit: ""},
		},
		{
			name:  "to taste",
			input: "pepper to taste",
			want:  common.Ingredient{Name: "pepper to taste", Quantity: 1, Unit: ""},
		},
		{
			name:  "zero denominator falls back",
			input: "1/0 cup sugar",
			want:  common.Ingredient{Name: "1/0 cup sugar", Quantity: 1, Unit: ""},
		},
		{
			name:  "malformed fraction falls back",
			input: "1/2/3 cup sugar",
			want:  common.Ingredient{Name: "1/2/3 cup sugar", Quantity: 1, Unit: ""},
		},
		{
			name:  "bare separators fall back",
			input: "./ cup sugar",
			want:  common.Ingredient{Name: "./ cup sugar", Quantity: 1, Unit: ""},
		},
		{
			name:  "zero quantity falls back",
			input: "0 cups flour",
			want:  common.Ingredient{Name: "0 cups flour", Quantity: 1, Unit: ""},
		},
		{
			name:  "numeric second token is not a unit",
			input: "2 3 eggs",
			want:  common.Ingredient{Name: "3 eggs", Quantity: 2, Unit: ""},
		},
		{
			name:  "quantity prefix with trailing letters",
			input: "2x cans tomatoes",
			want:  common.Ingredient{Name: "tomatoes", Quantity: 2, Unit: "cans"},
		},
		{
			name:  "quantity only yields empty name",
			input: "2",
			want:  common.Ingredient{Name: "", Quantity: 2, Unit: ""},
		},
		{
			name:  "overflow falls back",
			input: "1" + strings.Repeat("0", 400) + " g rice",
			want:  common.Ingredient{Name: "1" + strings.Repeat("0", 400) + " g rice", Quantity: 1, Unit: ""},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ParseLine(tc.input)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseLine_NumUnitName(t *testing.T) {
	t.Parallel()

	quantities := map[string]float64{"1": 1, "2.5": 2.5, "1/4": 0.25, "12": 12}
	units := []string{"cup", "tbsp", "g", "large"}
	names := []string{"flour", "brown sugar", "olive oil extra virgin"}

	for raw, q := range quantities {
		for _, unit := range units {
			for _, name := range names {
				line := raw + " " + unit + " " + name
				got := ParseLine(line)
				assert.Equal(t, common.Ingredient{Name: name, Quantity: q, Unit: unit}, got, line)
			}
		}
	}
}

func TestParseLine_TwoTokenLinesKeepName(t *testing.T) {
	t.Parallel()

	lines := []string{"2 eggs", "1/2 lemon", "3 onions", "1.5 avocado", "4 2", "1 ½"}
	for _, line := range lines {
		got := ParseLine(line)
		assert.NotEmpty(t, got.Name, line)
		assert.Empty(t, got.Unit, line)
		assert.Greater(t, got.Quantity, 0.0, line)
	}
}

func TestParseLine_QuantityInvariant(t *testing.T) {
	t.Parallel()

	lines := []string{"salt", "0 eggs", "0/1 cup milk", "1/0 cup milk", "-1 cup milk", "... cups", "1e5 g salt"}
	for _, line := range lines {
		got := ParseLine(line)
		assert.Greater(t, got.Quantity, 0.0, line)
	}
}

func TestParseLines(t *testing.T) {
	t.Parallel()

	text := "1/2 cup flour\n\n   \r\n2 eggs\r\nsalt\n3\n"
	got := ParseLines(text)

	require.Len(t, got, 3)
	assert.Equal(t, common.Ingredient{Name: "flour", Quantity: 0.5, Unit: "cup"}, got[0])
	assert.Equal(t, common.Ingredient{Name: "eggs", Quantity: 2}, got[1])
	assert.Equal(t, common.Ingredient{Name: "salt", Quantity: 1}, got[2])
}

func TestParseList_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ParseList(nil))
	assert.Empty(t, ParseList([]string{"", "  "}))
}
