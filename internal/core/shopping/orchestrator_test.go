package shopping

import (
	"context"
	"errors"
	"testing"

	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategorizer struct {
	calls  int
	result common.CategorizedList
	err    error
	panic  interface{}
	got    []string
}

func (f *fakeCategorizer) CategorizeIngredients(_ context.Context, items []string) (common.CategorizedList, error) {
	f.calls++
	f.got = items
	if f.panic != nil {
		panic(f.panic)
	}
	return f.result, f.err
}

func TestCategorize_EmptyListSkipsCollaborator(t *testing.T) {
	common.InitTestLogger()
	fake := &fakeCategorizer{}

	out := Categorize(context.Background(), fake, nil)

	assert.Equal(t, 0, fake.calls)
	assert.Equal(t, StatusDone, out.Status)
	assert.NotNil(t, out.List.Categories)
	assert.Empty(t, out.List.Categories)
	assert.NoError(t, out.Err)
}

func TestCategorize_SuccessReturnsCollaboratorResult(t *testing.T) {
	common.InitTestLogger()
	result := common.CategorizedList{Categories: []common.CategoryGroup{
		{Category: "Dairy", Items: []string{"milk", "eggs"}},
		{Category: "Produce", Items: []string{"kale"}},
	}}
	fake := &fakeCategorizer{result: result}

	out := Categorize(context.Background(), fake, []string{"milk", "eggs"})

	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, []string{"milk", "eggs"}, fake.got)
	assert.Equal(t, StatusDone, out.Status)
	// the collaborator's groups are trusted as-is, even items not in the input
	assert.Equal(t, result, out.List)
	assert.Empty(t, out.Notice)
}

func TestCategorize_FailureFallsBackPreservingOrder(t *testing.T) {
	common.InitTestLogger()
	cause := common.NewCollaboratorError("categorize", "The AI service is unavailable.", errors.New("boom"))
	fake := &fakeCategorizer{err: cause}

	out := Categorize(context.Background(), fake, []string{"milk", "eggs"})

	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, StatusFallback, out.Status)
	assert.Equal(t, common.CategorizedList{Categories: []common.CategoryGroup{
		{Category: "Uncategorized", Items: []string{"milk", "eggs"}},
	}}, out.List)
	assert.ErrorIs(t, out.Err, cause)
	assert.Contains(t, out.Notice, "The AI service is unavailable.")
}

func TestCategorize_PanicFallsBack(t *testing.T) {
	common.InitTestLogger()
	fake := &fakeCategorizer{panic: "nil map write"}

	var out Outcome
	require.NotPanics(t, func() {
		out = Categorize(context.Background(), fake, []string{"milk", "eggs"})
	})

	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, StatusFallback, out.Status)
	assert.Equal(t, FallbackList([]string{"milk", "eggs"}), out.List)
	assert.True(t, common.IsCollaboratorError(out.Err))
	assert.Equal(t, "AI Categorization Failed: "+MsgCategorizationUnavailable, out.Notice)
}

func TestCategorize_NilCategorizer(t *testing.T) {
	common.InitTestLogger()

	out := Categorize(context.Background(), nil, []string{"b", "a"})

	require.Equal(t, StatusFallback, out.Status)
	assert.ErrorIs(t, out.Err, ErrNoCategorizer)
	assert.Equal(t, []string{"b", "a"}, out.List.Categories[0].Items)
}

func TestFallbackList_CopiesInput(t *testing.T) {
	t.Parallel()

	flat := []string{"milk"}
	list := FallbackList(flat)
	flat[0] = "changed"

	assert.Equal(t, "milk", list.Categories[0].Items[0])
}
