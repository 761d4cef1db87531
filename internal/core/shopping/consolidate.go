package shopping

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"meal-planner/internal/pkg/common"
)

// SortLanguage 購物清單排序使用的語系
var SortLanguage = language.English

// MergeKey 合併用的鍵：轉小寫並去除前後空白
func MergeKey(item string) string {
	return strings.ToLower(strings.TrimSpace(item))
}

// Consolidate 合併既有清單與新項目，不分大小寫去重後依語系排序
//
// 既有項目優先，同鍵的第一筆保留原始大小寫；空白項目一律捨棄。
// 輸入相同時輸出必定相同。
func Consolidate(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	result := make([]string, 0, len(existing)+len(incoming))

	add := func(item string) {
		key := MergeKey(item)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		result = append(result, strings.TrimSpace(item))
	}

	for _, item := range existing {
		add(item)
	}
	for _, item := range incoming {
		add(item)
	}

	SortItems(result)
	return result
}

// SortItems 依 SortLanguage 的排序規則遞增排序；排序規則視為相等時以位元組順序決定
func SortItems(items []string) {
	// collate.Collator 不可並行使用，每次排序建立新的實例
	c := collate.New(SortLanguage)
	slices.SortFunc(items, func(a, b string) int {
		if r := c.CompareString(a, b); r != 0 {
			return r
		}
		return strings.Compare(a, b)
	})
}

// FlatItem 將食材轉為購物清單字串 "<數量> <單位> <名稱>"，沒有單位時不留多餘空白
func FlatItem(ing common.Ingredient) string {
	parts := make([]string, 0, 3)
	parts = append(parts, strconv.FormatFloat(ing.Quantity, 'f', -1, 64))
	if unit := strings.TrimSpace(ing.Unit); unit != "" {
		parts = append(parts, unit)
	}
	if name := strings.TrimSpace(ing.Name); name != "" {
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}

// FlatListFromRecipes 依食譜順序取出被選取食譜的所有食材字串
func FlatListFromRecipes(recipes []common.Recipe, selectedIDs []string) []string {
	selected := make(map[string]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = struct{}{}
	}

	var items []string
	for _, r := range recipes {
		if _, ok := selected[r.ID]; !ok {
			continue
		}
		for _, ing := range r.Ingredients {
			items = append(items, FlatItem(ing))
		}
	}
	return items
}
