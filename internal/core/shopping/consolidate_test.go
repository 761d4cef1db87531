package shopping

import (
	"testing"

	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestConsolidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing []string
		incoming []string
		want     []string
	}{
		{
			name:     "case-insensitive dedup keeps first casing",
			existing: []string{},
			incoming: []string{"Flour", "flour", "EGGS"},
			want:     []string{"EGGS", "Flour"},
		},
		{
			name:     "existing entries take priority",
			existing: []string{"milk"},
			incoming: []string{"Milk", "butter"},
			want:     []string{"butter", "milk"},
		},
		{
			name:     "blank items are dropped",
			existing: []string{" ", ""},
			incoming: []string{"  Salt ", "\t"},
			want:     []string{"Salt"},
		},
		{
			name:     "items are trimmed before dedup",
			existing: []string{"2 eggs "},
			incoming: []string{" 2 EGGS", "1 cup milk"},
			want:     []string{"1 cup milk", "2 eggs"},
		},
		{
			name:     "accented letters sort with their base letter",
			existing: nil,
			incoming: []string{"zucchini", "Éclair", "apple"},
			want:     []string{"apple", "Éclair", "zucchini"},
		},
		{
			name:     "nil inputs",
			existing: nil,
			incoming: nil,
			want:     []string{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Consolidate(tc.existing, tc.incoming)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConsolidate_Idempotent(t *testing.T) {
	t.Parallel()

	a := []string{"2 eggs", "1 cup Milk", "salt"}
	b := []string{"1 CUP milk", "0.5 cup flour", "Salt", "pepper"}

	once := Consolidate(a, b)
	assert.Equal(t, once, Consolidate(once, nil))
	assert.Equal(t, once, Consolidate(nil, once))
}

func TestConsolidate_Deterministic(t *testing.T) {
	t.Parallel()

	a := []string{"basil", "Basil", "tomato", "Mozzarella", "olive oil"}
	b := []string{"TOMATO", "garlic", "bread"}

	first := Consolidate(a, b)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Consolidate(a, b))
	}
}

func TestConsolidate_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	existing := []string{"milk", "Butter"}
	incoming := []string{"apple"}

	Consolidate(existing, incoming)

	assert.Equal(t, []string{"milk", "Butter"}, existing)
	assert.Equal(t, []string{"apple"}, incoming)
}

func TestFlatItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ing  common.Ingredient
		want string
	}{
		{name: "with unit", ing: common.Ingredient{Name: "flour", Quantity: 0.5, Unit: "cup"}, want: "0.5 cup flour"},
		{name: "without unit", ing: common.Ingredient{Name: "eggs", Quantity: 2}, want: "2 eggs"},
		{name: "repeating fraction", ing: common.Ingredient{Name: "sugar", Quantity: 1.0 / 3, Unit: "cup"}, want: "0.3333333333333333 cup sugar"},
		{name: "whitespace unit collapses", ing: common.Ingredient{Name: "salt", Quantity: 1, Unit: "  "}, want: "1 salt"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, FlatItem(tc.ing))
		})
	}
}

func TestFlatListFromRecipes(t *testing.T) {
	t.Parallel()

	recipes := []common.Recipe{
		{ID: "r1", Name: "Pancakes", Servings: 2, Ingredients: []common.Ingredient{
			{Name: "flour", Quantity: 1, Unit: "cup"},
			{Name: "eggs", Quantity: 2},
		}},
		{ID: "r2", Name: "Omelette", Servings: 1, Ingredients: []common.Ingredient{
			{Name: "eggs", Quantity: 3},
		}},
		{ID: "r3", Name: "Toast", Servings: 1, Ingredients: []common.Ingredient{
			{Name: "bread", Quantity: 2, Unit: "slices"},
		}},
	}

	got := FlatListFromRecipes(recipes, []string{"r3", "r1", "missing"})
	assert.Equal(t, []string{"1 cup flour", "2 eggs", "2 slices bread"}, got)

	assert.Empty(t, FlatListFromRecipes(recipes, nil))
}
