package model

// Recipe 菜谱模型
type Recipe struct {
	Base
	Title       string  `gorm:"type:varchar(100);not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	ImageURL    *string `gorm:"type:varchar(200)" json:"image_url"`

	// 关联
	Tags []Tag `gorm:"many2many:recipe_tags;" json:"tags,omitempty"`
}

// TableName 指定表名
func (Recipe) TableName() string {
	return "recipe"
}
