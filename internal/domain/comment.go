package domain

import "time"

type Comment struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Text string `gorm:"size:512;not null" json:"text"`

	ExerciseID uint `gorm:"index;not null" json:"-"`
	UserID     uint `gorm:"index;not null" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `json:"user,omitempty"`
}

func (Comment) TableName() string { return "comments" }
