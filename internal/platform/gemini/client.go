package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

// Client Gemini补全API客户端
type Client struct {
	model *genai.GenerativeModel
}

// NewClient 创建Gemini客户端
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = defaultModel
	}
	return &Client{model: client.GenerativeModel(modelName)}, nil
}

// Complete 发送提示词并返回生成的文本
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response format from Gemini")
	}

	return strings.TrimSpace(string(text)), nil
}
