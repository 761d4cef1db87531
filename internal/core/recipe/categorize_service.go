package recipe

import (
	"context"
	"errors"
	"fmt"

	"meal-planner/internal/pkg/common"
)

const categorizePrompt = `You are an expert grocery list organizer. Take the following list of ingredients and categorize them into common grocery store aisles.

Ingredients:
%s
Group the ingredients into logical categories such as "Produce", "Dairy & Cheese" or "Pantry". Do not create a category for a single item if it can fit into a broader existing category. Keep every ingredient exactly as written.

Return only JSON in this format:
{"categories": [{"category": "Produce", "items": ["2 onions"]}]}`

// CategorizeIngredients 將扁平購物清單依走道分類，空清單不呼叫 AI
func (s *Service) CategorizeIngredients(ctx context.Context, items []string) (common.CategorizedList, error) {
	if len(items) == 0 {
		return common.CategorizedList{Categories: []common.CategoryGroup{}}, nil
	}

	var result common.CategorizedList
	if err := s.generateJSON(ctx, FlowCategorization, fmt.Sprintf(categorizePrompt, common.FormatLines(items)), &result); err != nil {
		return common.CategorizedList{}, common.NewCollaboratorError(FlowCategorization, MsgCategorizationFailed, err)
	}

	if len(result.Categories) == 0 {
		return common.CategorizedList{}, common.NewCollaboratorError(FlowCategorization, MsgCategorizationFailed,
			errors.New("response contained no categories"))
	}

	for i := range result.Categories {
		if result.Categories[i].Items == nil {
			result.Categories[i].Items = []string{}
		}
	}
	return result, nil
}
