package controller

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-api/internal/dto"
	"recipe-api/internal/logger"
	"recipe-api/internal/service"
	"recipe-api/pkg/response"
)

// SuggestApi AI建议API控制器
type SuggestApi struct {
	logger         *zap.SugaredLogger
	suggestService *service.SuggestService
}

// NewSuggestApi 创建AI建议API控制器
func NewSuggestApi(suggestService *service.SuggestService) *SuggestApi {
	return &SuggestApi{
		logger:         logger.GetSugaredLogger(),
		suggestService: suggestService,
	}
}

// Suggest 根据菜名生成做菜步骤建议
func (api *SuggestApi) Suggest(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		response.BadRequest(c, "Title is required", nil)
		return
	}

	text, err := api.suggestService.Suggest(c.Request.Context(), title)
	if err != nil {
		if errors.Is(err, service.ErrSuggestNotConfigured) {
			response.InternalServerError(c, "AI service is not configured", err)
			return
		}
		api.logger.Errorf("生成做菜步骤建议失败: %v", err)
		response.InternalServerError(c, "Failed to generate suggestion", err)
		return
	}

	response.OK(c, dto.SuggestResponse{Description: text})
}
