package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"recipe-api/internal/logger"
)

// ErrSuggestNotConfigured AI服务未配置
var ErrSuggestNotConfigured = errors.New("AI service is not configured")

// CompletionClient 文本补全客户端接口
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SuggestService AI做菜步骤建议服务
type SuggestService struct {
	client CompletionClient
	rdb    *redis.Client
	ttl    time.Duration
	log    *zap.SugaredLogger
}

// NewSuggestService 创建AI建议服务实例
// client为nil时表示未配置AI密钥，Suggest会返回ErrSuggestNotConfigured
// rdb为nil时不启用缓存
func NewSuggestService(client CompletionClient, rdb *redis.Client, cacheTTL time.Duration) *SuggestService {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &SuggestService{
		client: client,
		rdb:    rdb,
		ttl:    cacheTTL,
		log:    logger.GetSugaredLogger(),
	}
}

// Suggest 根据菜名生成编号的做菜步骤
func (s *SuggestService) Suggest(ctx context.Context, title string) (string, error) {
	if s.client == nil {
		return "", ErrSuggestNotConfigured
	}

	cacheKey := "ai_suggest:" + title
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			return cached, nil
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warnf("读取建议缓存失败: %v", err)
		}
	}

	prompt := fmt.Sprintf(
		"Provide a numbered list of cooking steps for the dish %q. "+
			"List only the steps. Do not include an ingredient list, "+
			"an introduction, or any closing remarks.", title)

	text, err := s.client.Complete(ctx, prompt)
	if err != nil {
		s.log.Errorf("调用AI生成做菜步骤失败: %v", err)
		return "", err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, cacheKey, text, s.ttl).Err(); err != nil {
			s.log.Warnf("写入建议缓存失败: %v", err)
		}
	}

	return text, nil
}
