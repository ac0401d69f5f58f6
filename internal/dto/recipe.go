package dto

import (
	"encoding/json"
)

// RecipeCreateRequest 创建菜谱请求
type RecipeCreateRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	ImageURL    *string `json:"image_url"`
	Tags        string  `json:"tags"` // 逗号分隔的标签串，如 "easy,soup"
}

// RecipeUpdateRequest 更新菜谱请求，部分更新语义：只覆盖请求体中出现的字段
type RecipeUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Tags        *string `json:"tags"`

	// TagsSet 记录 tags 键是否出现在请求体中（显式传 null 也算出现）：
	// 出现则全量替换标签关联，未出现则保持不变
	TagsSet bool `json:"-"`
	// ImageURLSet 记录 image_url 键是否出现，出现且为 null 时清空图片
	ImageURLSet bool `json:"-"`
}

// UnmarshalJSON 解析请求体并记录 tags、image_url 键的出现情况
func (r *RecipeUpdateRequest) UnmarshalJSON(data []byte) error {
	type alias RecipeUpdateRequest
	if err := json.Unmarshal(data, (*alias)(r)); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, r.TagsSet = keys["tags"]
	_, r.ImageURLSet = keys["image_url"]
	return nil
}

// TagString 获取标签串，tags 为 null 时视为空串（清空标签）
func (r *RecipeUpdateRequest) TagString() string {
	if r.Tags == nil {
		return ""
	}
	return *r.Tags
}

// RecipeResponse 菜谱响应投影
type RecipeResponse struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ImageURL    *string       `json:"image_url"`
	Tags        []TagResponse `json:"tags"`
}
