package handlers

import (
	"context"
	"errors"
	"net/http"

	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondError 依錯誤類型回傳對應的狀態碼與訊息
func RespondError(c *gin.Context, err error) {
	status, body := classify(err)

	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestid.Get(c)),
	}
	if status >= http.StatusInternalServerError {
		common.LogError("Request failed", fields...)
	} else {
		common.LogDebug("Request rejected", fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

func classify(err error) (int, common.ErrorResponse) {
	var (
		ve *common.ValidationError
		ce *common.CollaboratorError
		cu *common.CustomError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, common.ErrorResponse{Code: common.ErrCodeInvalidRequest, Message: ve.Error()}
	case errors.As(err, &ce):
		return http.StatusBadGateway, common.ErrorResponse{Code: common.ErrAIServiceError.Code, Message: ce.Message}
	case errors.As(err, &cu):
		return cu.Status, common.ErrorResponse{Code: cu.Code, Message: cu.Message}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, common.ErrorResponse{Code: common.ErrCodeGatewayTimeout, Message: common.ErrGatewayTimeout.Message}
	default:
		return http.StatusInternalServerError, common.ErrorResponse{Code: common.ErrCodeInternalError, Message: common.ErrInternalError.Message}
	}
}

// BindJSON 解析請求體，失敗時回傳 400 並中止
func BindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		common.LogDebug("Invalid request format",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Get(c)),
		)
		c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "Invalid request format",
			Details: err.Error(),
		})
		return false
	}
	return true
}
