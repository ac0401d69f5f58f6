package dto

// UploadResponse 上传响应，image_url 为可直接嵌入菜谱的相对路径
type UploadResponse struct {
	ImageURL string `json:"image_url"`
}

// SuggestResponse AI建议响应
type SuggestResponse struct {
	Description string `json:"description"`
}
