package controller

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-api/internal/logger"
	"recipe-api/internal/service"
	"recipe-api/pkg/response"
)

// TagApi 标签API控制器
type TagApi struct {
	logger     *zap.SugaredLogger
	tagService *service.TagService
}

// NewTagApi 创建标签API控制器
func NewTagApi(tagService *service.TagService) *TagApi {
	return &TagApi{
		logger:     logger.GetSugaredLogger(),
		tagService: tagService,
	}
}

// List 获取标签列表
func (api *TagApi) List(c *gin.Context) {
	tags, err := api.tagService.List()
	if err != nil {
		api.logger.Errorf("获取标签列表失败: %v", err)
		response.InternalServerError(c, "Failed to fetch tags", err)
		return
	}

	response.OK(c, tags)
}
