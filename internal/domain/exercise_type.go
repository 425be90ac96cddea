package domain

import "time"

// ExerciseType 生命周期独立于 Exercise，name 即业务唯一键
type ExerciseType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:128;not null" json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ExerciseType) TableName() string { return "exercise_types" }
