package store

import (
	"context"
	"testing"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewRedisStore(config.StoreConfig{Addr: mr.Addr(), KeyPrefix: "test"})
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	var missing []string
	assert.ErrorIs(t, s.Load(ctx, KeyShoppingList, &missing), ErrNotFound)

	recipes := []common.Recipe{{
		ID:          "recipe-1",
		Name:        "Pancakes",
		Servings:    2,
		Ingredients: []common.Ingredient{{Name: "flour", Quantity: 0.5, Unit: "cup"}},
	}}
	require.NoError(t, s.Save(ctx, KeyRecipes, recipes))
	require.NoError(t, s.Save(ctx, KeyShoppingList, []string{"0.5 cup flour"}))

	var loaded []common.Recipe
	require.NoError(t, s.Load(ctx, KeyRecipes, &loaded))
	assert.Equal(t, recipes, loaded)

	// writers replace the whole value
	require.NoError(t, s.Save(ctx, KeyShoppingList, []string{"2 eggs"}))
	var list []string
	require.NoError(t, s.Load(ctx, KeyShoppingList, &list))
	assert.Equal(t, []string{"2 eggs"}, list)

	require.NoError(t, s.Delete(ctx, KeyShoppingList))
	assert.ErrorIs(t, s.Load(ctx, KeyShoppingList, &list), ErrNotFound)

	// keys are independent
	require.NoError(t, s.Load(ctx, KeyRecipes, &loaded))
	assert.NoError(t, s.Ping(ctx))
}

func TestRedisStore(t *testing.T) {
	s, mr := newRedisStore(t)
	exerciseStore(t, s)

	assert.True(t, mr.Exists("test:recipes"))
	assert.False(t, mr.Exists("test:shoppingList"))
}

func TestRedisStore_SurvivesReconnect(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, KeyCategorizedList, common.CategorizedList{
		Categories: []common.CategoryGroup{{Category: "Dairy", Items: []string{"milk"}}},
	}))

	reopened := NewRedisStore(config.StoreConfig{Addr: mr.Addr(), KeyPrefix: "test"})
	defer reopened.Close()

	var got common.CategorizedList
	require.NoError(t, reopened.Load(ctx, KeyCategorizedList, &got))
	assert.Equal(t, "Dairy", got.Categories[0].Category)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	s, mr := newRedisStore(t)
	require.NoError(t, mr.Set("test:recipes", "{not json"))

	var recipes []common.Recipe
	err := s.Load(context.Background(), KeyRecipes, &recipes)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	items := []string{"milk"}
	require.NoError(t, s.Save(ctx, KeyShoppingList, items))
	items[0] = "changed"

	var got []string
	require.NoError(t, s.Load(ctx, KeyShoppingList, &got))
	assert.Equal(t, []string{"milk"}, got)
}

func TestNew(t *testing.T) {
	common.InitTestLogger()
	ctx := context.Background()

	s, err := New(ctx, config.StoreConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	mr := miniredis.RunT(t)
	s, err = New(ctx, config.StoreConfig{Driver: "redis", Addr: mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	_ = s.Close()

	_, err = New(ctx, config.StoreConfig{Driver: "bolt"})
	assert.Error(t, err)
}
