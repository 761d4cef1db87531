package recipe

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"

	"meal-planner/internal/core/shopping"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

const extractPrompt = `You are a recipe parsing expert. Extract the ingredients from the recipe at the following URL: %s

Requirements:
1. Return one ingredient per entry, written as a single line like "2 cups flour" or "1/2 tsp salt"
2. Put the quantity first and the unit second when the recipe gives them
3. Include the number of servings if the recipe states it, otherwise use null
4. Only return ingredients that appear in the recipe
5. Return only JSON, using double quotes for every key and string

Return JSON in this format:
{"servings": 4, "ingredients": ["2 cups flour", "3 eggs"]}`

// ValidateURL 檢查網址是否為絕對的 http(s) 網址
func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", common.NewValidationError(MsgURLRequired)
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", common.NewValidationError(MsgInvalidURL)
	}
	return u.String(), nil
}

// ExtractFromURL 從食譜網址擷取食材與份量
func (s *Service) ExtractFromURL(ctx context.Context, rawURL string) (*ExtractionResult, error) {
	target, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	var resp extractionResponse
	if err := s.generateJSON(ctx, FlowExtraction, fmt.Sprintf(extractPrompt, target), &resp); err != nil {
		return nil, common.NewCollaboratorError(FlowExtraction, MsgExtractionFailed, err)
	}

	ingredients := shopping.ParseList(resp.Ingredients)
	if len(ingredients) == 0 {
		return nil, common.NewCollaboratorError(FlowExtraction, MsgNoIngredientsFound, nil)
	}

	result := &ExtractionResult{Ingredients: ingredients}
	if resp.Servings != nil && *resp.Servings >= 1 && *resp.Servings <= MaxServings {
		servings := int(math.Round(*resp.Servings))
		result.Servings = &servings
	}

	common.LogInfo("Extracted ingredients from URL",
		zap.String("url", target),
		zap.Int("ingredients", len(ingredients)),
	)
	return result, nil
}
