package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-api/internal/config"
	"recipe-api/internal/controller"
	"recipe-api/internal/database"
	"recipe-api/internal/logger"
	"recipe-api/internal/model"
	"recipe-api/internal/platform/gemini"
	"recipe-api/internal/router"
	"recipe-api/internal/service"
)

var configPath string

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "recipe-api",
	Short: "菜谱API服务",
	Long:  `菜谱管理API服务，支持菜谱增删改查、标签管理、图片上传和AI做菜步骤建议`,
}

// serveCmd 启动服务命令
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动HTTP服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		return startServer()
	},
}

// migrateCmd 数据库迁移命令
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "执行数据库迁移",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logger.Init(&cfg.Log)
		defer logger.Sync()

		db, err := database.Init(&cfg.Database)
		if err != nil {
			return fmt.Errorf("数据库连接失败: %w", err)
		}
		if err := model.InitTables(db); err != nil {
			return fmt.Errorf("初始化数据库表失败: %w", err)
		}

		logger.Logger.Info("数据库迁移完成")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config/config.yaml", "配置文件路径")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// startServer 初始化各组件并启动HTTP服务
func startServer() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger.Init(&cfg.Log)
	defer logger.Sync()

	db, err := database.Init(&cfg.Database)
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	if err := model.InitTables(db); err != nil {
		return fmt.Errorf("初始化数据库表失败: %w", err)
	}

	r := router.Setup(cfg, buildControllers(cfg, db))

	// 孤儿标签定时清理
	sweeper := startSweeper(cfg, db)
	if sweeper != nil {
		defer sweeper.Stop()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("HTTP服务启动失败", zap.Error(err))
		}
	}()

	logger.Logger.Info("服务已启动", zap.String("addr", srv.Addr))

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Logger.Info("关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务关闭异常: %w", err)
	}

	logger.Logger.Info("服务已关闭")
	return nil
}

// buildControllers 组装服务与控制器
func buildControllers(cfg *config.Config, db *gorm.DB) *router.Controllers {
	tagService := service.NewTagService(db)
	recipeService := service.NewRecipeService(db, tagService)
	uploadService := service.NewUploadService(db, &cfg.Upload)

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var aiClient service.CompletionClient
	if cfg.AI.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			logger.Logger.Error("初始化AI客户端失败", zap.Error(err))
		} else {
			aiClient = client
		}
	}
	suggestService := service.NewSuggestService(aiClient, rdb, time.Duration(cfg.AI.CacheTTL)*time.Second)

	return &router.Controllers{
		Recipe:  controller.NewRecipeApi(recipeService),
		Tag:     controller.NewTagApi(tagService),
		Upload:  controller.NewUploadApi(uploadService),
		Suggest: controller.NewSuggestApi(suggestService),
	}
}

// startSweeper 按配置的cron表达式定期清理孤儿标签
func startSweeper(cfg *config.Config, db *gorm.DB) *cron.Cron {
	if !cfg.Sweep.Enabled {
		return nil
	}

	spec := cfg.Sweep.Spec
	if spec == "" {
		spec = "0 0 3 * * *" // 每天凌晨3点
	}

	tagService := service.NewTagService(db)
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(spec, func() {
		removed, err := tagService.SweepOrphans()
		if err != nil {
			logger.Logger.Error("清理孤儿标签失败", zap.Error(err))
			return
		}
		if removed > 0 {
			logger.Logger.Info("清理孤儿标签完成", zap.Int64("removed", removed))
		}
	}); err != nil {
		logger.Logger.Error("注册定时清理任务失败", zap.Error(err))
		return nil
	}

	c.Start()
	return c
}
