package model

type Category struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_name"`
	Slug string `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_slug"`
}

func (Category) TableName() string {
	return "categories"
}
