package shopping

import (
	"net/http"

	"meal-planner/internal/api/handlers"
	"meal-planner/internal/core/planner"
	coreshopping "meal-planner/internal/core/shopping"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// GeneratePath 產生購物清單的路由；空請求體代表使用目前選取，結果取決於伺服器狀態
const GeneratePath = "/shopping-list/generate"

// GenerateRequest 產生購物清單；recipe_ids 為空時使用目前選取的食譜
type GenerateRequest struct {
	RecipeIDs []string `json:"recipe_ids"`
}

// CategorizeRequest 分類任意清單
type CategorizeRequest struct {
	Items []string `json:"items"`
}

// CategorizeResponse 分類結果，失敗時 status 為 fallback 並附上提示
type CategorizeResponse struct {
	Categorized common.CategorizedList `json:"categorized"`
	Status      coreshopping.Status    `json:"status"`
	Notice      string                 `json:"notice,omitempty"`
}

// Handler 購物清單處理程序
type Handler struct {
	planner *planner.Planner
}

// NewHandler 創建購物清單處理程序
func NewHandler(p *planner.Planner) *Handler {
	return &Handler{planner: p}
}

// Register 註冊購物清單路由
func (h *Handler) Register(api *gin.RouterGroup) {
	api.GET("/shopping-list", h.Get)
	api.DELETE("/shopping-list", h.Clear)
	api.POST(GeneratePath, h.Generate)
	api.POST("/shopping-list/categorize", h.Categorize)
}

// Get 取得購物清單與分類狀態
func (h *Handler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.planner.ShoppingList())
}

// Generate 將食譜食材合併進購物清單，分類於背景進行
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if c.Request.ContentLength != 0 && !handlers.BindJSON(c, &req) {
		return
	}

	result, err := h.planner.GenerateShoppingList(c.Request.Context(), req.RecipeIDs)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, result)
}

// Clear 清空購物清單
func (h *Handler) Clear(c *gin.Context) {
	if err := h.planner.ClearShoppingList(c.Request.Context()); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Categorize 同步分類請求中的清單，不影響已儲存的購物清單
func (h *Handler) Categorize(c *gin.Context) {
	var req CategorizeRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	outcome := h.planner.Categorize(c.Request.Context(), req.Items)
	c.JSON(http.StatusOK, CategorizeResponse{
		Categorized: outcome.List,
		Status:      outcome.Status,
		Notice:      outcome.Notice,
	})
}
