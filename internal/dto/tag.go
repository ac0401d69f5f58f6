package dto

// TagResponse 标签响应投影
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
