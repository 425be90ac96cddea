package domain

import "time"

type Group struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:128;not null" json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Users []*User `gorm:"many2many:user_groups" json:"-"`
}

func (Group) TableName() string { return "groups" }
