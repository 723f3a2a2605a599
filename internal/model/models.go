package model

// All 参与自动迁移的模型，按外键依赖顺序排列
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Post{},
		&Comment{},
		&Like{},
	}
}
