package model

// Upload 上传文件元数据，文件内容以 StoredName 为键存储在本地目录
type Upload struct {
	Base
	StoredName   string `gorm:"type:varchar(100);not null;uniqueIndex" json:"stored_name"`
	OriginalName string `gorm:"type:varchar(255);not null" json:"original_name"`
	Size         int64  `gorm:"not null" json:"size"`
	MimeType     string `gorm:"type:varchar(100)" json:"mime_type"`
}

// TableName 指定表名
func (Upload) TableName() string {
	return "upload"
}
