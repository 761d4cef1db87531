package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示驗證錯誤（在呼叫任何外部服務前拒絕）
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// CollaboratorError 外部 AI 服務失敗，Message 為可直接顯示給使用者的說明
type CollaboratorError struct {
	Collaborator string
	Message      string
	Err          error
}

func (e *CollaboratorError) Error() string {
	if e.Err != nil {
		return e.Collaborator + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Collaborator + ": " + e.Message
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// NewCollaboratorError 創建外部服務錯誤
func NewCollaboratorError(collaborator, message string, err error) error {
	return &CollaboratorError{
		Collaborator: collaborator,
		Message:      message,
		Err:          err,
	}
}

// IsCollaboratorError 檢查是否為外部服務錯誤
func IsCollaboratorError(err error) bool {
	var ce *CollaboratorError
	return errors.As(err, &ce)
}

// UserMessage 取得可顯示給使用者的錯誤訊息
func UserMessage(err error) string {
	var ce *CollaboratorError
	if errors.As(err, &ce) {
		return ce.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.message
	}
	var cu *CustomError
	if errors.As(err, &cu) {
		return cu.Message
	}
	return ErrInternalError.Message
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"   // 408
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE" // 413
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeBadGateway         = "BAD_GATEWAY"         // 502
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "Invalid request", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "Resource not found", http.StatusNotFound, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "Request timeout", http.StatusRequestTimeout, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "Too many requests", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "Internal server error", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "Service temporarily unavailable", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "Gateway timeout", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrRecipeNotFound   = NewError("RECIPE_NOT_FOUND", "Recipe not found", http.StatusNotFound, nil)
	ErrCacheFull        = NewError("CACHE_FULL", "Cache is full", http.StatusServiceUnavailable, nil)
	ErrCacheDisabled    = NewError("CACHE_DISABLED", "Cache is disabled", http.StatusServiceUnavailable, nil)
	ErrCacheMiss        = NewError("CACHE_MISS", "Cache miss", http.StatusNotFound, nil)
	ErrAIServiceError   = NewError("AI_SERVICE_ERROR", "AI service error", http.StatusBadGateway, nil)
	ErrRateLimited      = NewError("AI_RATE_LIMITED", "AI request rate limit exceeded", http.StatusTooManyRequests, nil)
	ErrStoreUnavailable = NewError("STORE_UNAVAILABLE", "State store unavailable", http.StatusServiceUnavailable, nil)
)
