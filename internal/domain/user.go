package domain

import "time"

type User struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;not null" json:"name"`

	// 派生字段：该用户所有 Set 的 numReps*weight 总和，只能经 WorkoutService 记账
	TotalWeightLifted float64 `gorm:"not null;default:0" json:"totalWeightLifted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Exercises []Exercise `json:"-"`
	Groups    []*Group   `gorm:"many2many:user_groups" json:"-"`
}

func (User) TableName() string { return "users" }
