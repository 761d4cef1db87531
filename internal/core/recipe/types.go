package recipe

import (
	"meal-planner/internal/pkg/common"
)

// 協作服務名稱
const (
	FlowExtraction     = "extraction"
	FlowCategorization = "categorization"
	FlowNutrition      = "nutrition"
	FlowRecommendation = "recommendation"
)

// 顯示給使用者的錯誤訊息
const (
	MsgNoIngredientsFound    = "Could not find any ingredients at that URL."
	MsgExtractionFailed      = "Failed to extract ingredients. The URL might be invalid or the page structure unsupported."
	MsgInvalidURL            = "Please enter a valid URL."
	MsgURLRequired           = "URL is required."
	MsgCategorizationFailed  = "Could not categorize the shopping list."
	MsgNutritionFailed       = "Failed to get nutritional information for this recipe."
	MsgNoRecommendations     = "Could not find any recipes for those ingredients."
	MsgRecommendationFailed  = "Failed to get recipe recommendations."
	MsgInvalidNutritionInput = "Servings must be at least 1."
)

// MaxServings 擷取結果可接受的份量上限，超過時視為未標示
const MaxServings = 100

// MaxRecommendations 推薦菜色數量上限
const MaxRecommendations = 5

// ExtractionResult 從網址擷取的食譜資料
type ExtractionResult struct {
	// Servings 網頁未標示份量時為 nil
	Servings    *int                `json:"servings,omitempty"`
	Ingredients []common.Ingredient `json:"ingredients"`
}

// extractionResponse AI 擷取回應
type extractionResponse struct {
	Servings    *float64 `json:"servings"`
	Ingredients []string `json:"ingredients"`
}

// recommendationResponse AI 推薦回應
type recommendationResponse struct {
	Recommendations []common.Recommendation `json:"recommendations"`
}
