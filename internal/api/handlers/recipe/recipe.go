package recipe

import (
	"net/http"

	"meal-planner/internal/api/handlers"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/core/shopping"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// RecipeRequest 新增或編輯食譜，ingredients 為每行一個食材的文字
type RecipeRequest struct {
	Name        string `json:"name"`
	Servings    int    `json:"servings"`
	Ingredients string `json:"ingredients"`
}

func (r RecipeRequest) input() planner.RecipeInput {
	return planner.RecipeInput{Name: r.Name, Servings: r.Servings, Ingredients: r.Ingredients}
}

// RecipesResponse 食譜列表
type RecipesResponse struct {
	Recipes  []common.Recipe `json:"recipes"`
	Selected []string        `json:"selected"`
}

// SelectionRequest 選取或取消選取食譜
type SelectionRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}

// ImportRequest 從網址匯入食譜
type ImportRequest struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// DiscoverRequest 依食材推薦菜色
type DiscoverRequest struct {
	Ingredients []string `json:"ingredients"`
	Prompt      string   `json:"prompt,omitempty"`
}

// DiscoverResponse 推薦結果
type DiscoverResponse struct {
	Recommendations []common.Recommendation `json:"recommendations"`
}

// AddRecommendationRequest 將推薦菜色加入食譜
type AddRecommendationRequest struct {
	Recommendation common.Recommendation `json:"recommendation"`
}

// ParseRequest 預覽食材解析
type ParseRequest struct {
	Text string `json:"text"`
}

// ParseResponse 食材解析結果
type ParseResponse struct {
	Ingredients []common.Ingredient `json:"ingredients"`
}

// Handler 食譜處理程序
type Handler struct {
	planner *planner.Planner
}

// NewHandler 創建新的食譜處理程序
func NewHandler(p *planner.Planner) *Handler {
	return &Handler{planner: p}
}

// Register 註冊食譜相關路由
func (h *Handler) Register(api *gin.RouterGroup) {
	recipes := api.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.POST("", h.Create)
		recipes.POST("/import", h.Import)
		recipes.POST("/discover", h.Discover)
		recipes.POST("/discover/add", h.AddRecommendation)
		recipes.GET("/:id", h.Get)
		recipes.PUT("/:id", h.Update)
		recipes.DELETE("/:id", h.Delete)
		recipes.PUT("/:id/selection", h.Select)
		recipes.GET("/:id/nutrition", h.Nutrition)
	}

	api.POST("/ingredients/parse", h.Parse)
}

// List 列出所有食譜
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, RecipesResponse{
		Recipes:  h.planner.Recipes(),
		Selected: h.planner.Selected(),
	})
}

// Get 取得單一食譜
func (h *Handler) Get(c *gin.Context) {
	r, err := h.planner.Recipe(c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Create 手動新增食譜
func (h *Handler) Create(c *gin.Context) {
	var req RecipeRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	r, err := h.planner.AddRecipe(c.Request.Context(), req.input())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// Update 編輯食譜
func (h *Handler) Update(c *gin.Context) {
	var req RecipeRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	r, err := h.planner.UpdateRecipe(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Delete 刪除食譜
func (h *Handler) Delete(c *gin.Context) {
	if err := h.planner.DeleteRecipe(c.Request.Context(), c.Param("id")); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Select 選取或取消選取食譜
func (h *Handler) Select(c *gin.Context) {
	var req SelectionRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	if err := h.planner.SetSelected(c.Param("id"), *req.Selected); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": h.planner.Selected()})
}

// Import 從網址擷取食材並建立食譜
func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	r, err := h.planner.ImportRecipe(c.Request.Context(), req.URL, req.Name)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// Discover 依現有食材推薦菜色
func (h *Handler) Discover(c *gin.Context) {
	var req DiscoverRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	recs, err := h.planner.Discover(c.Request.Context(), req.Ingredients, req.Prompt)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DiscoverResponse{Recommendations: recs})
}

// AddRecommendation 將推薦菜色加入食譜
func (h *Handler) AddRecommendation(c *gin.Context) {
	var req AddRecommendationRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	r, err := h.planner.AddRecommendation(c.Request.Context(), req.Recommendation)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// Nutrition 分析食譜營養
func (h *Handler) Nutrition(c *gin.Context) {
	info, err := h.planner.Nutrition(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Parse 解析食材文字，不會儲存
func (h *Handler) Parse(c *gin.Context) {
	var req ParseRequest
	if !handlers.BindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, ParseResponse{Ingredients: shopping.ParseLines(req.Text)})
}
