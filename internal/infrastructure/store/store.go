package store

import (
	"context"
	"errors"
	"fmt"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// 各自獨立儲存的狀態鍵
const (
	KeyRecipes         = "recipes"
	KeyShoppingList    = "shoppingList"
	KeyCategorizedList = "categorizedShoppingList"
)

// ErrNotFound 鍵不存在
var ErrNotFound = errors.New("store: key not found")

// Store 狀態儲存介面，值以 JSON 整筆寫入與讀取
type Store interface {
	// Load 讀取並解析鍵值到 v，鍵不存在時回傳 ErrNotFound
	Load(ctx context.Context, key string, v interface{}) error
	// Save 以整筆取代的方式寫入
	Save(ctx context.Context, key string, v interface{}) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// New 依設定建立狀態儲存
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "memory":
		common.LogInfo("Using in-memory state store")
		return NewMemoryStore(), nil
	case "redis":
		s := NewRedisStore(cfg)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		common.LogInfo("Using Redis state store",
			zap.String("addr", cfg.Addr),
			zap.Int("db", cfg.DB),
			zap.String("key_prefix", cfg.KeyPrefix),
		)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
