package service

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-api/internal/dto"
	"recipe-api/internal/logger"
	"recipe-api/internal/model"
)

// TagService 标签服务
type TagService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewTagService 创建标签服务实例
func NewTagService(db *gorm.DB) *TagService {
	return &TagService{
		db:  db,
		log: logger.GetSugaredLogger(),
	}
}

// ParseTagNames 解析逗号分隔的标签串：全角逗号按半角处理，
// 去除首尾空白，丢弃空片段，保留首次出现顺序并去重
func ParseTagNames(raw string) []string {
	if raw == "" {
		return nil
	}

	raw = strings.ReplaceAll(raw, "，", ",")

	var names []string
	seen := make(map[string]struct{})
	for _, piece := range strings.Split(raw, ",") {
		name := strings.TrimSpace(piece)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Resolve 将标签串解析为标签实体列表：按名称精确匹配复用已有标签，
// 不存在则新建。新建发生在调用方的事务内，事务回滚时随之撤销
func (s *TagService) Resolve(tx *gorm.DB, raw string) ([]model.Tag, error) {
	names := ParseTagNames(raw)
	if len(names) == 0 {
		return nil, nil
	}

	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		var tag model.Tag
		err := tx.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = model.Tag{Name: name}
			if err := tx.Create(&tag).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// List 获取全部标签
func (s *TagService) List() ([]dto.TagResponse, error) {
	var tags []model.Tag
	if err := s.db.Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}

	resp := make([]dto.TagResponse, 0, len(tags))
	for i := range tags {
		resp = append(resp, *s.GenerateTagResponse(&tags[i]))
	}
	return resp, nil
}

// DeleteOrphans 删除给定标签中已不被任何菜谱引用的标签。
// 独立于菜谱删除事务提交，两步各自持久（见 Delete 的两阶段语义）
func (s *TagService) DeleteOrphans(tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, tagID := range tagIDs {
			var count int64
			if err := tx.Model(&model.RecipeTag{}).Where("tag_id = ?", tagID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Where("id = ?", tagID).Delete(&model.Tag{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SweepOrphans 全量清理孤儿标签。更新菜谱时被替换掉的标签不会被同步清理，
// 由定时任务调用本方法兜底回收
func (s *TagService) SweepOrphans() (int64, error) {
	result := s.db.Where("id NOT IN (?)",
		s.db.Model(&model.RecipeTag{}).Select("tag_id"),
	).Delete(&model.Tag{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		s.log.Infof("孤儿标签清理完成, 删除 %d 条", result.RowsAffected)
	}
	return result.RowsAffected, nil
}

// GenerateTagResponse 生成标签响应DTO
func (s *TagService) GenerateTagResponse(tag *model.Tag) *dto.TagResponse {
	return &dto.TagResponse{
		ID:   tag.ID,
		Name: tag.Name,
	}
}
