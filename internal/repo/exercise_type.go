package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"workout-tracker/internal/domain"
)

type ExerciseTypeRepo struct{ db *gorm.DB }

func NewExerciseTypeRepo(db *gorm.DB) *ExerciseTypeRepo { return &ExerciseTypeRepo{db: db} }

func (r *ExerciseTypeRepo) h(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// UpsertByName 幂等的按名取或建：唯一索引冲突即不写，随后按名回读。
// 两个并发请求同名创建时由唯一约束裁决，不走先查后建的竞态路径。
func (r *ExerciseTypeRepo) UpsertByName(ctx context.Context, tx *gorm.DB, name string) (*domain.ExerciseType, error) {
	h := r.h(tx).WithContext(ctx)
	et := domain.ExerciseType{Name: name}
	if err := h.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&et).Error; err != nil {
		return nil, err
	}
	// DoNothing 命中冲突时不回填 ID，统一按名回读
	var out domain.ExerciseType
	if err := h.Where("name = ?", name).First(&out).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (r *ExerciseTypeRepo) Create(ctx context.Context, tx *gorm.DB, et *domain.ExerciseType) error {
	return r.h(tx).WithContext(ctx).Create(et).Error
}

func (r *ExerciseTypeRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.ExerciseType, error) {
	var et domain.ExerciseType
	if err := r.h(tx).WithContext(ctx).First(&et, id).Error; err != nil {
		return nil, translate(err)
	}
	return &et, nil
}

func (r *ExerciseTypeRepo) List(ctx context.Context, tx *gorm.DB) ([]domain.ExerciseType, error) {
	var out []domain.ExerciseType
	err := r.h(tx).WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *ExerciseTypeRepo) UpdateName(ctx context.Context, tx *gorm.DB, id uint, name string) error {
	res := r.h(tx).WithContext(ctx).Model(&domain.ExerciseType{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExerciseTypeRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	res := r.h(tx).WithContext(ctx).Delete(&domain.ExerciseType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
