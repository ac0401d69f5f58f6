package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-api/internal/config"
	"recipe-api/internal/dto"
	"recipe-api/internal/logger"
	"recipe-api/internal/model"
)

// ErrEmptyFilename 上传文件名为空
var ErrEmptyFilename = errors.New("文件名为空")

// ErrInvalidFile 上传文件校验失败
var ErrInvalidFile = errors.New("无效的上传文件")

// UploadService 文件上传服务
type UploadService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	cfg *config.UploadConfig
}

// NewUploadService 创建文件上传服务实例
func NewUploadService(db *gorm.DB, cfg *config.UploadConfig) *UploadService {
	return &UploadService{
		db:  db,
		log: logger.GetSugaredLogger(),
		cfg: cfg,
	}
}

// Save 保存上传文件。存储键为 UUID 加原扩展名，客户端文件名只作为
// 元数据入库，并发上传同名文件互不覆盖
func (s *UploadService) Save(file *multipart.FileHeader) (*dto.UploadResponse, error) {
	if err := s.validateFile(file); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("读取文件数据失败: %w", err)
	}

	if err := os.MkdirAll(s.cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}

	ext := filepath.Ext(file.Filename)
	storedName := uuid.NewString() + ext
	filePath := filepath.Join(s.cfg.Dir, storedName)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return nil, fmt.Errorf("保存文件失败: %w", err)
	}

	upload := &model.Upload{
		StoredName:   storedName,
		OriginalName: file.Filename,
		Size:         file.Size,
		MimeType:     file.Header.Get("Content-Type"),
	}
	if err := s.db.Create(upload).Error; err != nil {
		// 数据库保存失败时删除已写入的文件
		if removeErr := os.Remove(filePath); removeErr != nil {
			s.log.Errorf("删除文件失败: %v", removeErr)
		}
		return nil, fmt.Errorf("保存上传记录失败: %w", err)
	}

	urlPrefix := strings.TrimRight(s.cfg.URLPrefix, "/")
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}

	return &dto.UploadResponse{
		ImageURL: fmt.Sprintf("%s/%s", urlPrefix, storedName),
	}, nil
}

// validateFile 校验上传文件
func (s *UploadService) validateFile(file *multipart.FileHeader) error {
	if file.Filename == "" {
		return ErrEmptyFilename
	}

	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return fmt.Errorf("%w: 文件大小超过限制，最大允许 %d 字节", ErrInvalidFile, s.cfg.MaxSize)
	}

	if len(s.cfg.AllowExts) > 0 {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
		allowed := false
		for _, allow := range s.cfg.AllowExts {
			if ext == strings.ToLower(allow) {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: 不支持的文件类型 %s", ErrInvalidFile, ext)
		}
	}

	return nil
}
