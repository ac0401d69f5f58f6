package logger

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"recipe-api/internal/config"
)

var (
	// Logger 全局日志实例
	Logger *zap.Logger
	// SugaredLogger 语法糖日志实例
	SugaredLogger *zap.SugaredLogger
)

// Init 初始化日志
func Init(cfg *config.LogConfig) {
	// 设置日志级别
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	// 设置JSON编码器
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	// 设置日志输出
	var writeSyncer zapcore.WriteSyncer

	if cfg.Filename != "" {
		// 使用lumberjack进行日志轮转
		lumberjackLogger := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize, // MB
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge, // days
			Compress:   cfg.Compress,
		}

		// 如果同时需要输出到控制台
		if cfg.Stdout {
			writeSyncer = zapcore.NewMultiWriteSyncer(
				zapcore.AddSync(lumberjackLogger),
				zapcore.AddSync(os.Stdout),
			)
		} else {
			writeSyncer = zapcore.AddSync(lumberjackLogger)
		}
	} else {
		// 如果没有设置文件名，则输出到控制台
		writeSyncer = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		writeSyncer,
		level,
	)

	Logger = zap.New(core, zap.AddCaller())
	SugaredLogger = Logger.Sugar()
}

// GetSugaredLogger 获取语法糖日志实例
func GetSugaredLogger() *zap.SugaredLogger {
	if SugaredLogger == nil {
		// 未初始化时退化为控制台输出，方便测试
		Init(&config.LogConfig{Level: "info"})
	}
	return SugaredLogger
}

// GinLogger 返回Gin中间件日志处理函数
func GinLogger() gin.HandlerFunc {
	log := GetSugaredLogger().Desugar()
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		cost := time.Since(start)

		log.Info("HTTP请求",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.Duration("cost", cost),
			zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
		)
	}
}

// Sync 同步日志
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
