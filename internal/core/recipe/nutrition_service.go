package recipe

import (
	"context"
	"fmt"

	"meal-planner/internal/pkg/common"
)

const nutritionPrompt = `You are an expert nutritionist. Analyze the following list of ingredients for a recipe that makes %d servings.

Provide a detailed nutritional breakdown for the entire recipe and for a single serving.
Include major nutrients like Calories, Protein, Fat (Saturated, Trans), Carbohydrates, Fiber and Sugar.
Also include major vitamins and minerals (Vitamin A, C, D, E, K, B-vitamins, Calcium, Iron, Magnesium, Potassium, Sodium, Zinc).

Ingredients:
%s
Calculate the total nutrition for all ingredients combined, then divide by the number of servings to get the per-serving nutrition. Provide percentages of daily needs where applicable, based on a 2000-calorie diet; omit the field otherwise.

Return only JSON in this format:
{"totalNutrition": [{"name": "Calories", "amount": 1200, "unit": "kcal", "percentOfDailyNeeds": 60}], "nutritionPerServing": [{"name": "Calories", "amount": 300, "unit": "kcal", "percentOfDailyNeeds": 15}]}`

// GetNutritionalInfo 分析食譜營養，食材為空時回傳空結果
func (s *Service) GetNutritionalInfo(ctx context.Context, ingredients []common.Ingredient, servings int) (*common.NutritionInfo, error) {
	empty := &common.NutritionInfo{
		TotalNutrition:      []common.NutritionItem{},
		NutritionPerServing: []common.NutritionItem{},
	}
	if len(ingredients) == 0 {
		return empty, nil
	}
	if servings < 1 {
		return nil, common.NewValidationError(MsgInvalidNutritionInput)
	}

	var result common.NutritionInfo
	prompt := fmt.Sprintf(nutritionPrompt, servings, common.FormatIngredients(ingredients))
	if err := s.generateJSON(ctx, FlowNutrition, prompt, &result); err != nil {
		return nil, common.NewCollaboratorError(FlowNutrition, MsgNutritionFailed, err)
	}

	if len(result.TotalNutrition) == 0 && len(result.NutritionPerServing) == 0 {
		return nil, common.NewCollaboratorError(FlowNutrition, MsgNutritionFailed, fmt.Errorf("response contained no nutrients"))
	}
	if result.TotalNutrition == nil {
		result.TotalNutrition = empty.TotalNutrition
	}
	if result.NutritionPerServing == nil {
		result.NutritionPerServing = empty.NutritionPerServing
	}
	return &result, nil
}
