package repo

import (
	"context"

	"gorm.io/gorm"

	"workout-tracker/internal/domain"
)

type ExerciseRepo struct{ db *gorm.DB }

func NewExerciseRepo(db *gorm.DB) *ExerciseRepo { return &ExerciseRepo{db: db} }

func (r *ExerciseRepo) h(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ExerciseRepo) Create(ctx context.Context, tx *gorm.DB, e *domain.Exercise) error {
	return r.h(tx).WithContext(ctx).Create(e).Error
}

func (r *ExerciseRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Exercise, error) {
	var e domain.Exercise
	if err := r.h(tx).WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// FindDetail 带 sets/user/exerciseType 预加载，仅用于读路径
func (r *ExerciseRepo) FindDetail(ctx context.Context, tx *gorm.DB, id uint) (*domain.Exercise, error) {
	var e domain.Exercise
	err := r.h(tx).WithContext(ctx).
		Preload("Sets").Preload("User").Preload("ExerciseType").
		First(&e, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *ExerciseRepo) ListDetail(ctx context.Context, tx *gorm.DB) ([]domain.Exercise, error) {
	var out []domain.Exercise
	err := r.h(tx).WithContext(ctx).
		Preload("Sets").Preload("User").Preload("ExerciseType").
		Order("id").Find(&out).Error
	return out, err
}

func (r *ExerciseRepo) ListByUsers(ctx context.Context, tx *gorm.DB, userIDs []uint) ([]domain.Exercise, error) {
	var out []domain.Exercise
	if len(userIDs) == 0 {
		return out, nil
	}
	err := r.h(tx).WithContext(ctx).
		Preload("Sets").Preload("User").Preload("ExerciseType").
		Where("user_id IN ?", userIDs).
		Order("id").Find(&out).Error
	return out, err
}

func (r *ExerciseRepo) IDsByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	err := r.h(tx).WithContext(ctx).Model(&domain.Exercise{}).
		Where("user_id = ?", userID).Pluck("id", &ids).Error
	return ids, err
}

func (r *ExerciseRepo) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.h(tx).WithContext(ctx).Model(&domain.Exercise{}).
		Where("id = ?", id).Updates(fields).Error
}

func (r *ExerciseRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	res := r.h(tx).WithContext(ctx).Delete(&domain.Exercise{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExerciseRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	return r.h(tx).WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Exercise{}).Error
}
