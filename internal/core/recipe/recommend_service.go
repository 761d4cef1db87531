package recipe

import (
	"context"
	"fmt"
	"strings"

	"meal-planner/internal/pkg/common"
)

const recommendPrompt = `You are a creative chef who excels at making delicious meals from limited ingredients.

Based on the ingredients provided, suggest 3 to 5 recipes. For each recipe, provide a name, a short description, a list of ingredients and the cooking instructions.

Available ingredients:
%s%s
Prioritize recipes that heavily use the provided ingredients. You can include a few common pantry staples (like oil, salt, pepper, flour) even if they were not provided.
Write each ingredient as a single line with the quantity first, like "2 cups rice".

Return only JSON in this format:
{"recommendations": [{"name": "Dish", "description": "Short description", "ingredients": ["2 cups rice"], "instructions": ["Step one"]}]}`

// RecommendDishes 依現有食材推薦最多五道菜，食材為空時回傳空列表
func (s *Service) RecommendDishes(ctx context.Context, ingredients []string, prompt string) ([]common.Recommendation, error) {
	available := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			available = append(available, ing)
		}
	}
	if len(available) == 0 {
		return []common.Recommendation{}, nil
	}

	request := ""
	if prompt = strings.TrimSpace(prompt); prompt != "" {
		request = "\nUser's request: " + prompt + "\n"
	}

	var resp recommendationResponse
	if err := s.generateJSON(ctx, FlowRecommendation, fmt.Sprintf(recommendPrompt, common.FormatLines(available), request), &resp); err != nil {
		return nil, common.NewCollaboratorError(FlowRecommendation, MsgRecommendationFailed, err)
	}

	recs := make([]common.Recommendation, 0, len(resp.Recommendations))
	for _, rec := range resp.Recommendations {
		rec.Name = strings.TrimSpace(rec.Name)
		if rec.Name == "" {
			continue
		}
		if rec.Ingredients == nil {
			rec.Ingredients = []string{}
		}
		if rec.Instructions == nil {
			rec.Instructions = []string{}
		}
		recs = append(recs, rec)
		if len(recs) == MaxRecommendations {
			break
		}
	}

	if len(recs) == 0 {
		return nil, common.NewCollaboratorError(FlowRecommendation, MsgNoRecommendations, nil)
	}
	return recs, nil
}
