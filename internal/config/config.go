package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Upload   UploadConfig   `mapstructure:"upload"`
	AI       AIConfig       `mapstructure:"ai"`
	Sweep    SweepConfig    `mapstructure:"sweep"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name string     `mapstructure:"name"`
	Mode string     `mapstructure:"mode"`
	Port int        `mapstructure:"port"`
	Cors CorsConfig `mapstructure:"cors"`
}

// DatabaseConfig 数据库配置，driver 支持 mysql 和 sqlite
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	Charset      string `mapstructure:"charset"`
	Path         string `mapstructure:"path"` // sqlite 数据库文件路径
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// DSN 获取MySQL连接字符串
func (c *DatabaseConfig) DSN() string {
	charset := c.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, charset)
}

// RedisConfig Redis配置，仅用于AI建议结果缓存，可不配置
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr 获取Redis地址
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled Redis是否已配置
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
	Stdout     bool   `mapstructure:"stdout"`
}

// UploadConfig 上传配置
type UploadConfig struct {
	Dir       string   `mapstructure:"dir"`        // 本地存储目录
	URLPrefix string   `mapstructure:"url_prefix"` // 访问URL前缀
	MaxSize   int64    `mapstructure:"max_size"`   // 单文件大小上限（字节），0 表示不限制
	AllowExts []string `mapstructure:"allow_exts"` // 扩展名白名单，空表示不限制
}

// AIConfig AI建议服务配置
type AIConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	CacheTTL int    `mapstructure:"cache_ttl"` // 建议缓存时长（秒）
}

// SweepConfig 孤儿标签定时清理配置
type SweepConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"` // cron 表达式（含秒）
}

// CorsConfig 跨域配置
type CorsConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// Load 加载配置文件，环境变量可覆盖同名配置项（如 DATABASE_PATH、AI_API_KEY）
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 监听配置文件变化
	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		log.Println("配置文件发生变化，重新加载...")
		if err := v.Unmarshal(&config); err != nil {
			log.Printf("重新解析配置文件失败: %v", err)
		}
	})

	return &config, nil
}
