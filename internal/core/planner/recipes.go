package planner

import (
	"context"
	"strings"
	"unicode/utf8"

	"meal-planner/internal/core/recipe"
	"meal-planner/internal/core/shopping"
	"meal-planner/internal/infrastructure/store"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// 驗證錯誤訊息
const (
	MsgNameTooShort       = "Recipe name must be at least 2 characters."
	MsgInvalidServings    = "Servings must be at least 1."
	MsgIngredientsMissing = "Please list at least one ingredient."
	MsgImportRequired     = "URL and recipe name are required."
	MsgRecommendationName = "Recommendation must have a name."
)

const (
	minNameLength        = 2
	minIngredientsLength = 3
)

// RecipeInput 手動新增或編輯食譜的輸入，Ingredients 為每行一個食材的文字
type RecipeInput struct {
	Name        string
	Servings    int
	Ingredients string
}

// Validate 驗證輸入並解析食材
func (in RecipeInput) Validate() (string, []common.Ingredient, error) {
	name := strings.TrimSpace(in.Name)
	if utf8.RuneCountInString(name) < minNameLength {
		return "", nil, common.NewValidationError(MsgNameTooShort)
	}
	if in.Servings < 1 {
		return "", nil, common.NewValidationError(MsgInvalidServings)
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Ingredients)) < minIngredientsLength {
		return "", nil, common.NewValidationError(MsgIngredientsMissing)
	}

	ingredients := shopping.ParseLines(in.Ingredients)
	if len(ingredients) == 0 {
		return "", nil, common.NewValidationError(MsgIngredientsMissing)
	}
	return name, ingredients, nil
}

// Recipes 回傳所有食譜的副本
func (p *Planner) Recipes() []common.Recipe {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]common.Recipe, len(p.recipes))
	for i, r := range p.recipes {
		out[i] = r.Clone()
	}
	return out
}

// Recipe 依 ID 取得食譜副本
func (p *Planner) Recipe(id string) (common.Recipe, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	idx := p.indexLocked(id)
	if idx < 0 {
		return common.Recipe{}, common.ErrRecipeNotFound
	}
	return p.recipes[idx].Clone(), nil
}

// AddRecipe 手動新增食譜
func (p *Planner) AddRecipe(ctx context.Context, in RecipeInput) (common.Recipe, error) {
	name, ingredients, err := in.Validate()
	if err != nil {
		return common.Recipe{}, err
	}
	return p.appendRecipe(ctx, name, in.Servings, ingredients)
}

// UpdateRecipe 編輯食譜，ID 不變
func (p *Planner) UpdateRecipe(ctx context.Context, id string, in RecipeInput) (common.Recipe, error) {
	name, ingredients, err := in.Validate()
	if err != nil {
		return common.Recipe{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	idx := p.indexLocked(id)
	if idx < 0 {
		return common.Recipe{}, common.ErrRecipeNotFound
	}

	updated := common.Recipe{ID: id, Name: name, Servings: in.Servings, Ingredients: ingredients}
	next := p.copyRecipesLocked()
	next[idx] = updated
	if err := p.save(ctx, store.KeyRecipes, next); err != nil {
		return common.Recipe{}, err
	}
	p.recipes = next

	common.LogInfo("Recipe updated", zap.String("recipe_id", id))
	return updated.Clone(), nil
}

// DeleteRecipe 刪除食譜並取消選取
func (p *Planner) DeleteRecipe(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := p.indexLocked(id)
	if idx < 0 {
		return common.ErrRecipeNotFound
	}

	next := make([]common.Recipe, 0, len(p.recipes)-1)
	next = append(next, p.recipes[:idx]...)
	next = append(next, p.recipes[idx+1:]...)
	if err := p.save(ctx, store.KeyRecipes, next); err != nil {
		return err
	}
	p.recipes = next
	delete(p.selected, id)

	common.LogInfo("Recipe deleted", zap.String("recipe_id", id))
	return nil
}

// ImportRecipe 從網址擷取食材建立食譜，網頁未標示份量時使用預設份量
func (p *Planner) ImportRecipe(ctx context.Context, rawURL, name string) (common.Recipe, error) {
	name = strings.TrimSpace(name)
	if strings.TrimSpace(rawURL) == "" || name == "" {
		return common.Recipe{}, common.NewValidationError(MsgImportRequired)
	}
	if _, err := recipe.ValidateURL(rawURL); err != nil {
		return common.Recipe{}, err
	}

	result, err := p.ai.ExtractFromURL(ctx, rawURL)
	if err != nil {
		return common.Recipe{}, err
	}

	servings := p.cfg.DefaultImportServings
	if result.Servings != nil && *result.Servings >= 1 {
		servings = *result.Servings
	}
	return p.appendRecipe(ctx, name, servings, result.Ingredients)
}

// Discover 依現有食材取得推薦菜色
func (p *Planner) Discover(ctx context.Context, ingredients []string, prompt string) ([]common.Recommendation, error) {
	return p.ai.RecommendDishes(ctx, ingredients, prompt)
}

// AddRecommendation 將推薦菜色加入食譜；名稱含 "for one" 時為一人份，否則兩人份
func (p *Planner) AddRecommendation(ctx context.Context, rec common.Recommendation) (common.Recipe, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return common.Recipe{}, common.NewValidationError(MsgRecommendationName)
	}

	servings := 2
	if strings.Contains(strings.ToLower(name), "for one") {
		servings = 1
	}
	return p.appendRecipe(ctx, name, servings, shopping.ParseList(rec.Ingredients))
}

// Nutrition 分析已儲存食譜的營養
func (p *Planner) Nutrition(ctx context.Context, id string) (*common.NutritionInfo, error) {
	r, err := p.Recipe(id)
	if err != nil {
		return nil, err
	}
	return p.ai.GetNutritionalInfo(ctx, r.Ingredients, r.Servings)
}

// SetSelected 選取或取消選取食譜
func (p *Planner) SetSelected(id string, selected bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.indexLocked(id) < 0 {
		return common.ErrRecipeNotFound
	}
	if selected {
		p.selected[id] = struct{}{}
	} else {
		delete(p.selected, id)
	}
	return nil
}

// Selected 依食譜順序回傳已選取的食譜 ID
func (p *Planner) Selected() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.selectedLocked()
}

func (p *Planner) selectedLocked() []string {
	ids := make([]string, 0, len(p.selected))
	for _, r := range p.recipes {
		if _, ok := p.selected[r.ID]; ok {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func (p *Planner) appendRecipe(ctx context.Context, name string, servings int, ingredients []common.Ingredient) (common.Recipe, error) {
	if ingredients == nil {
		ingredients = []common.Ingredient{}
	}
	r := common.Recipe{
		ID:          common.GenerateRecipeID(),
		Name:        name,
		Servings:    servings,
		Ingredients: ingredients,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	next := append(p.copyRecipesLocked(), r)
	if err := p.save(ctx, store.KeyRecipes, next); err != nil {
		return common.Recipe{}, err
	}
	p.recipes = next

	common.LogInfo("Recipe added",
		zap.String("recipe_id", r.ID),
		zap.String("name", r.Name),
		zap.Int("ingredients", len(r.Ingredients)),
	)
	return r.Clone(), nil
}

func (p *Planner) indexLocked(id string) int {
	for i, r := range p.recipes {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (p *Planner) copyRecipesLocked() []common.Recipe {
	out := make([]common.Recipe, len(p.recipes), len(p.recipes)+1)
	copy(out, p.recipes)
	return out
}
