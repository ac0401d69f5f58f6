package service

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-api/internal/dto"
	"recipe-api/internal/logger"
	"recipe-api/internal/model"
)

// RecipeService 菜谱服务
type RecipeService struct {
	db         *gorm.DB
	log        *zap.SugaredLogger
	tagService *TagService
}

// NewRecipeService 创建菜谱服务实例
func NewRecipeService(db *gorm.DB, tagService *TagService) *RecipeService {
	return &RecipeService{
		db:         db,
		log:        logger.GetSugaredLogger(),
		tagService: tagService,
	}
}

// Create 创建菜谱，菜谱、新建标签与关联行在同一事务内写入，
// 任一步失败整体回滚
func (s *RecipeService) Create(req *dto.RecipeCreateRequest) (*dto.RecipeResponse, error) {
	recipe := &model.Recipe{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}

		tags, err := s.tagService.Resolve(tx, req.Tags)
		if err != nil {
			return err
		}
		if err := s.replaceTagLinks(tx, recipe.ID, tags); err != nil {
			return err
		}

		recipe.Tags = tags
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GenerateRecipeResponse(recipe), nil
}

// List 获取全部菜谱，不分页不过滤
func (s *RecipeService) List() ([]dto.RecipeResponse, error) {
	var recipes []model.Recipe
	if err := s.db.Preload("Tags").Order("id").Find(&recipes).Error; err != nil {
		return nil, err
	}

	resp := make([]dto.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp = append(resp, *s.GenerateRecipeResponse(&recipes[i]))
	}
	return resp, nil
}

// GetByID 根据ID获取菜谱，不存在时返回 gorm.ErrRecordNotFound
func (s *RecipeService) GetByID(id uint) (*dto.RecipeResponse, error) {
	var recipe model.Recipe
	if err := s.db.Preload("Tags").First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return s.GenerateRecipeResponse(&recipe), nil
}

// Update 部分更新：仅覆盖请求体中出现的字段；tags 键出现时（含 null）
// 全量替换标签关联。此路径不清理被替换后变孤儿的标签，
// 由定时清理任务兜底
func (s *RecipeService) Update(id uint, req *dto.RecipeUpdateRequest) (*dto.RecipeResponse, error) {
	var recipe model.Recipe
	if err := s.db.First(&recipe, id).Error; err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.ImageURLSet {
			updates["image_url"] = req.ImageURL
		}
		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.TagsSet {
			tags, err := s.tagService.Resolve(tx, req.TagString())
			if err != nil {
				return err
			}
			if err := s.replaceTagLinks(tx, recipe.ID, tags); err != nil {
				return err
			}
		}

		return tx.Preload("Tags").First(&recipe, recipe.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GenerateRecipeResponse(&recipe), nil
}

// Delete 删除菜谱。第一个事务删除菜谱及其关联行并提交，
// 之后单独提交孤儿标签清理，两步各自持久：中途失败只会
// 暂留未引用的标签，由下次清理或定时任务自愈
func (s *RecipeService) Delete(id uint) error {
	var recipe model.Recipe
	if err := s.db.Preload("Tags").First(&recipe, id).Error; err != nil {
		return err
	}

	tagIDs := make([]uint, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
	if err != nil {
		return err
	}

	if err := s.tagService.DeleteOrphans(tagIDs); err != nil {
		s.log.Warnf("删除菜谱 %d 后清理孤儿标签失败: %v", id, err)
	}
	return nil
}

// replaceTagLinks 全量重写菜谱的标签关联行。关联行的增删显式写出，
// 不依赖ORM的级联行为
func (s *RecipeService) replaceTagLinks(tx *gorm.DB, recipeID uint, tags []model.Tag) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.RecipeTag{}).Error; err != nil {
		return err
	}

	if len(tags) == 0 {
		return nil
	}

	links := make([]model.RecipeTag, 0, len(tags))
	for _, tag := range tags {
		links = append(links, model.RecipeTag{RecipeID: recipeID, TagID: tag.ID})
	}
	return tx.Create(&links).Error
}

// GenerateRecipeResponse 生成菜谱响应DTO
func (s *RecipeService) GenerateRecipeResponse(recipe *model.Recipe) *dto.RecipeResponse {
	tags := make([]dto.TagResponse, 0, len(recipe.Tags))
	for i := range recipe.Tags {
		tags = append(tags, *s.tagService.GenerateTagResponse(&recipe.Tags[i]))
	}

	return &dto.RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Description: recipe.Description,
		ImageURL:    recipe.ImageURL,
		Tags:        tags,
	}
}
