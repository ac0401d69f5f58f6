package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-api/internal/logger"
	"recipe-api/internal/service"
	"recipe-api/pkg/response"
)

// UploadApi 文件上传API控制器
type UploadApi struct {
	logger        *zap.SugaredLogger
	uploadService *service.UploadService
}

// NewUploadApi 创建文件上传API控制器
func NewUploadApi(uploadService *service.UploadService) *UploadApi {
	return &UploadApi{
		logger:        logger.GetSugaredLogger(),
		uploadService: uploadService,
	}
}

// Upload 上传图片文件
func (api *UploadApi) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file part", err)
		return
	}

	result, err := api.uploadService.Save(file)
	if err != nil {
		if errors.Is(err, service.ErrEmptyFilename) {
			response.BadRequest(c, "No selected file", err)
			return
		}
		if errors.Is(err, service.ErrInvalidFile) {
			response.BadRequest(c, "Invalid file", err)
			return
		}
		api.logger.Errorf("上传文件失败: %v", err)
		response.InternalServerError(c, "Failed to save file", err)
		return
	}

	response.OK(c, result)
}
