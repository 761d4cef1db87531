package common

import (
	"fmt"
	"strings"
)

// Ingredient 結構化的食材（數量、單位、名稱）
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Recipe 食譜
// ID 於建立時指派且不可變更；Servings 至少為 1
type Recipe struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Servings    int          `json:"servings"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Clone 複製食譜，避免呼叫端修改共享的食材切片
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	return out
}

// CategoryGroup 購物清單分類（例如走道）
type CategoryGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// CategorizedList 分類後的購物清單
type CategorizedList struct {
	Categories []CategoryGroup `json:"categories"`
}

// Clone 深拷貝分類清單
func (l CategorizedList) Clone() CategorizedList {
	out := CategorizedList{Categories: make([]CategoryGroup, len(l.Categories))}
	for i, g := range l.Categories {
		out.Categories[i] = CategoryGroup{
			Category: g.Category,
			Items:    append([]string(nil), g.Items...),
		}
	}
	return out
}

// NutritionItem 單一營養素
type NutritionItem struct {
	Name                string   `json:"name"`
	Amount              float64  `json:"amount"`
	Unit                string   `json:"unit"`
	PercentOfDailyNeeds *float64 `json:"percentOfDailyNeeds,omitempty"`
}

// NutritionInfo 整份食譜與每份的營養分析
type NutritionInfo struct {
	TotalNutrition      []NutritionItem `json:"totalNutrition"`
	NutritionPerServing []NutritionItem `json:"nutritionPerServing"`
}

// Recommendation AI 推薦的菜色
type Recommendation struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// FormatIngredients 格式化食材列表（用於 prompt）
func FormatIngredients(ingredients []Ingredient) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		sb.WriteString(fmt.Sprintf("- %v %s %s\n", ing.Quantity, ing.Unit, ing.Name))
	}
	return sb.String()
}

// FormatLines 格式化字串列表（用於 prompt）
func FormatLines(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString("- ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
