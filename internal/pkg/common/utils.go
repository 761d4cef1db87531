package common

import (
	"github.com/google/uuid"
)

// GenerateRecipeID 生成食譜 ID
func GenerateRecipeID() string {
	return "recipe-" + uuid.New().String()
}
