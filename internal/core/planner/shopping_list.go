package planner

import (
	"context"

	"meal-planner/internal/core/shopping"
	"meal-planner/internal/infrastructure/store"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// MsgNoRecipesSelected 產生購物清單時沒有選取食譜
const MsgNoRecipesSelected = "Select at least one recipe to generate a shopping list."

// MsgSnapshotNotSaved 分類結果無法寫入儲存
const MsgSnapshotNotSaved = "The categorized list could not be saved and will be rebuilt after a restart."

// Snapshot 購物清單的一致快照
type Snapshot struct {
	Items       []string                `json:"items"`
	Categorized *common.CategorizedList `json:"categorized"`
	Status      shopping.Status         `json:"status"`
	Notice      string                  `json:"notice,omitempty"`
	Version     uint64                  `json:"version"`
}

// GenerateResult 產生購物清單的結果
type GenerateResult struct {
	Items      []string `json:"items"`
	Considered int      `json:"considered"`
	Version    uint64   `json:"version"`
}

// ShoppingList 回傳購物清單快照
func (p *Planner) ShoppingList() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := Snapshot{
		Items:   append([]string{}, p.shoppingList...),
		Status:  p.status,
		Notice:  p.notice,
		Version: p.seq,
	}
	if p.categorized != nil {
		c := p.categorized.Clone()
		snap.Categorized = &c
	}
	return snap
}

// GenerateShoppingList 將選取食譜的食材合併進購物清單並排程分類
// ids 為空時使用目前的選取；完成後清除選取
func (p *Planner) GenerateShoppingList(ctx context.Context, ids []string) (GenerateResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(ids) == 0 {
		ids = p.selectedLocked()
	}
	if len(ids) == 0 {
		return GenerateResult{}, common.NewValidationError(MsgNoRecipesSelected)
	}
	for _, id := range ids {
		if p.indexLocked(id) < 0 {
			return GenerateResult{}, common.ErrRecipeNotFound
		}
	}

	incoming := shopping.FlatListFromRecipes(p.recipes, ids)
	next := shopping.Consolidate(p.shoppingList, incoming)
	if err := p.save(ctx, store.KeyShoppingList, next); err != nil {
		return GenerateResult{}, err
	}
	p.shoppingList = next
	p.selected = make(map[string]struct{})

	common.LogInfo("Shopping list updated",
		zap.Int("recipes", len(ids)),
		zap.Int("considered", len(incoming)),
		zap.Int("items", len(next)),
	)

	p.scheduleCategorizeLocked()

	return GenerateResult{
		Items:      append([]string{}, next...),
		Considered: len(incoming),
		Version:    p.seq,
	}, nil
}

// ClearShoppingList 清空購物清單與分類快照，進行中的分類結果將被丟棄
func (p *Planner) ClearShoppingList(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.save(ctx, store.KeyShoppingList, []string{}); err != nil {
		return err
	}
	if err := p.store.Delete(ctx, store.KeyCategorizedList); err != nil {
		common.LogWarn("Failed to delete categorized snapshot", zap.Error(err))
	}

	p.shoppingList = []string{}
	p.categorized = nil
	p.status = shopping.StatusIdle
	p.notice = ""
	p.seq++
	p.applied = p.seq

	common.LogInfo("Shopping list cleared")
	return nil
}

// Categorize 同步分類任意清單，不改變狀態
func (p *Planner) Categorize(ctx context.Context, items []string) shopping.Outcome {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.CategorizeTimeout)
	defer cancel()
	return shopping.Categorize(ctx, p.ai, items)
}

// scheduleCategorizeLocked 以新序號排程背景分類，呼叫者須持有寫鎖
func (p *Planner) scheduleCategorizeLocked() {
	p.seq++
	seq := p.seq
	items := append([]string{}, p.shoppingList...)

	if len(items) == 0 {
		p.applyLocked(context.Background(), seq, shopping.Categorize(context.Background(), p.ai, items))
		return
	}

	p.status = shopping.StatusCategorizing
	p.notice = ""

	err := p.scheduler.Enqueue("categorize", func(ctx context.Context) {
		outcome := p.Categorize(ctx, items)
		if ctx.Err() != nil {
			common.LogWarn("Categorization interrupted", zap.Uint64("version", seq))
			return
		}
		p.applyCategorization(ctx, seq, outcome)
	})
	if err != nil {
		common.LogWarn("Failed to schedule categorization", zap.Uint64("version", seq), zap.Error(err))
		outcome := shopping.Outcome{
			List:   shopping.FallbackList(items),
			Status: shopping.StatusFallback,
			Notice: "AI Categorization Failed: " + common.ErrServiceUnavailable.Message,
			Err:    err,
		}
		p.applyLocked(context.Background(), seq, outcome)
	}
}

// applyCategorization 套用分類結果，過期的結果會被丟棄
func (p *Planner) applyCategorization(ctx context.Context, seq uint64, outcome shopping.Outcome) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.applyLocked(ctx, seq, outcome)
}

func (p *Planner) applyLocked(ctx context.Context, seq uint64, outcome shopping.Outcome) bool {
	if seq != p.seq || seq <= p.applied {
		common.LogDebug("Discarding stale categorization",
			zap.Uint64("version", seq),
			zap.Uint64("current", p.seq),
		)
		return false
	}
	p.applied = seq

	list := outcome.List.Clone()
	p.status = outcome.Status
	p.notice = outcome.Notice
	if len(p.shoppingList) == 0 {
		p.categorized = nil
		p.status = shopping.StatusIdle
	} else {
		p.categorized = &list
	}

	if p.categorized != nil {
		if err := p.save(ctx, store.KeyCategorizedList, list); err != nil {
			// 舊快照若留在儲存中，重啟後會被誤用；刪除後 Load 會重新分類
			if delErr := p.store.Delete(ctx, store.KeyCategorizedList); delErr != nil {
				common.LogWarn("Failed to delete stale categorized snapshot", zap.Error(delErr))
			}
			if p.notice == "" {
				p.notice = MsgSnapshotNotSaved
			}
		}
	}
	return true
}
