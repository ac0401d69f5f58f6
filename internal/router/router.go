package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"recipe-api/internal/config"
	"recipe-api/internal/controller"
	"recipe-api/internal/logger"
)

// Controllers 路由依赖的控制器集合
type Controllers struct {
	Recipe  *controller.RecipeApi
	Tag     *controller.TagApi
	Upload  *controller.UploadApi
	Suggest *controller.SuggestApi
}

// Setup 创建gin引擎并注册全部路由
func Setup(cfg *config.Config, ctrls *Controllers) *gin.Engine {
	gin.SetMode(cfg.App.Mode)

	r := gin.New()
	r.Use(logger.GinLogger(), gin.Recovery())
	r.Use(cors.New(corsConfig(&cfg.App.Cors)))

	// 静态文件服务 - 让前端可以访问本地上传的图片
	uploadDir := cfg.Upload.Dir
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	r.Static("/uploads", uploadDir)

	api := r.Group("/api")
	{
		recipeRoutes := api.Group("/recipes")
		{
			// 获取菜谱列表
			recipeRoutes.GET("", ctrls.Recipe.List)
			// 创建菜谱
			recipeRoutes.POST("", ctrls.Recipe.Create)
			// 获取菜谱详情
			recipeRoutes.GET("/:id", ctrls.Recipe.GetByID)
			// 更新菜谱
			recipeRoutes.PUT("/:id", ctrls.Recipe.Update)
			// 删除菜谱
			recipeRoutes.DELETE("/:id", ctrls.Recipe.Delete)
		}

		// 获取标签列表
		api.GET("/tags", ctrls.Tag.List)
		// 上传图片
		api.POST("/upload", ctrls.Upload.Upload)
		// AI生成做菜步骤建议
		api.GET("/ai-suggest", ctrls.Suggest.Suggest)
	}

	return r
}

// corsConfig 构造跨域配置，未配置时允许所有来源
func corsConfig(cfg *config.CorsConfig) cors.Config {
	c := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	}
	if len(c.AllowMethods) == 0 {
		c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(c.AllowHeaders) == 0 {
		c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	}
	return c
}
