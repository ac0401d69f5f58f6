package model

// Tag 标签模型，名称全局唯一（区分大小写）
type Tag struct {
	Base
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`

	// 关联
	Recipes []*Recipe `gorm:"many2many:recipe_tags;" json:"recipes,omitempty"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tag"
}

// RecipeTag 菜谱-标签关联模型，复合主键保证 (recipe, tag) 至多出现一次
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey;not null" json:"recipe_id"`
	TagID    uint `gorm:"primaryKey;not null" json:"tag_id"`
}

// TableName 指定表名
func (RecipeTag) TableName() string {
	return "recipe_tags"
}
