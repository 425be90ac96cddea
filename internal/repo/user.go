package repo

import (
	"context"

	"gorm.io/gorm"

	"workout-tracker/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) h(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *UserRepo) Create(ctx context.Context, tx *gorm.DB, u *domain.User) error {
	return r.h(tx).WithContext(ctx).Create(u).Error
}

func (r *UserRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.User, error) {
	var u domain.User
	if err := r.h(tx).WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepo) UpdateName(ctx context.Context, tx *gorm.DB, id uint, name string) error {
	res := r.h(tx).WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddWeight 原地累加聚合列。单条 UPDATE 自带行级原子性，
// 读提交隔离下两个并发 delta 也不会互相覆盖。
func (r *UserRepo) AddWeight(ctx context.Context, tx *gorm.DB, id uint, delta float64) error {
	res := r.h(tx).WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Update("total_weight_lifted", gorm.Expr("total_weight_lifted + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	res := r.h(tx).WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
