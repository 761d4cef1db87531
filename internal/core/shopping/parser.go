package shopping

import (
	"strings"

	"meal-planner/internal/pkg/common"
)

// ParseLine 將單行食材文字解析為結構化食材
//
// 空白行應由呼叫端事先過濾；回傳名稱為空時呼叫端必須捨棄。
func ParseLine(line string) common.Ingredient {
	t := tokenize(strings.TrimSpace(line))
	return common.Ingredient{
		Name:     strings.TrimSpace(t.name),
		Quantity: t.quantity,
		Unit:     t.unit,
	}
}

// ParseLines 解析多行食材文字，每行一個食材
func ParseLines(text string) []common.Ingredient {
	return ParseList(strings.Split(text, "\n"))
}

// ParseList 解析食材字串列表，略過空白行與解析後名稱為空的結果
func ParseList(lines []string) []common.Ingredient {
	ingredients := make([]common.Ingredient, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		ing := ParseLine(line)
		if ing.Name == "" {
			continue
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients
}
