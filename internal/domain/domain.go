// Package domain holds the GORM models of the workout tracker.
// 核心所有链：Set → Exercise → User，见 service 包的聚合记账。
package domain

// All 按外键依赖顺序返回全部模型，供 AutoMigrate 使用
func All() []any {
	return []any{
		&User{},
		&Group{},
		&ExerciseType{},
		&Exercise{},
		&Set{},
		&Comment{},
	}
}
