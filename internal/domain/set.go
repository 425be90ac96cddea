package domain

import "time"

type Set struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	NumReps int     `gorm:"not null" json:"numReps"`
	Weight  float64 `gorm:"not null" json:"weight"` // kg

	ExerciseID uint `gorm:"index;not null" json:"exerciseId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Set) TableName() string { return "sets" }

// Volume 是聚合记账的唯一口径，加减都走这里
func (s Set) Volume() float64 { return float64(s.NumReps) * s.Weight }
