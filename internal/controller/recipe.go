package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-api/internal/dto"
	"recipe-api/internal/logger"
	"recipe-api/internal/service"
	"recipe-api/pkg/response"
)

// RecipeApi 菜谱API控制器
type RecipeApi struct {
	logger        *zap.SugaredLogger
	recipeService *service.RecipeService
}

// NewRecipeApi 创建菜谱API控制器
func NewRecipeApi(recipeService *service.RecipeService) *RecipeApi {
	return &RecipeApi{
		logger:        logger.GetSugaredLogger(),
		recipeService: recipeService,
	}
}

// Create 创建菜谱
func (api *RecipeApi) Create(c *gin.Context) {
	var req dto.RecipeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Title and description are required", err)
		return
	}

	recipe, err := api.recipeService.Create(&req)
	if err != nil {
		api.logger.Errorf("创建菜谱失败: %v", err)
		response.InternalServerError(c, "Failed to create recipe", err)
		return
	}

	response.Created(c, recipe)
}

// List 获取菜谱列表
func (api *RecipeApi) List(c *gin.Context) {
	recipes, err := api.recipeService.List()
	if err != nil {
		api.logger.Errorf("获取菜谱列表失败: %v", err)
		response.InternalServerError(c, "Failed to fetch recipes", err)
		return
	}

	response.OK(c, recipes)
}

// GetByID 根据ID获取菜谱
func (api *RecipeApi) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.NotFound(c, "Recipe not found", err)
		return
	}

	recipe, err := api.recipeService.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Recipe not found", err)
			return
		}
		api.logger.Errorf("获取菜谱失败: %v", err)
		response.InternalServerError(c, "Failed to fetch recipe", err)
		return
	}

	response.OK(c, recipe)
}

// Update 更新菜谱
func (api *RecipeApi) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.NotFound(c, "Recipe not found", err)
		return
	}

	var req dto.RecipeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	recipe, err := api.recipeService.Update(id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Recipe not found", err)
			return
		}
		api.logger.Errorf("更新菜谱失败: %v", err)
		response.InternalServerError(c, "Failed to update recipe", err)
		return
	}

	response.OK(c, recipe)
}

// Delete 删除菜谱
func (api *RecipeApi) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.NotFound(c, "Recipe not found", err)
		return
	}

	if err := api.recipeService.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Recipe not found", err)
			return
		}
		api.logger.Errorf("删除菜谱失败: %v", err)
		response.InternalServerError(c, "Failed to delete recipe", err)
		return
	}

	response.Message(c, "Recipe deleted successfully")
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
