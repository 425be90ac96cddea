package domain

import "time"

type Exercise struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Note string `gorm:"size:255" json:"note"`

	UserID         uint `gorm:"index;not null" json:"-"`
	ExerciseTypeID uint `gorm:"index;not null" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Sets         []Set         `json:"sets,omitempty"`
	Comments     []Comment     `json:"-"`
	User         *User         `json:"user,omitempty"`
	ExerciseType *ExerciseType `json:"exerciseType,omitempty"`
}

func (Exercise) TableName() string { return "exercises" }
