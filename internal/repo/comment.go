package repo

import (
	"context"

	"gorm.io/gorm"

	"workout-tracker/internal/domain"
)

type CommentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) h(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *CommentRepo) Create(ctx context.Context, tx *gorm.DB, c *domain.Comment) error {
	return r.h(tx).WithContext(ctx).Create(c).Error
}

func (r *CommentRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Comment, error) {
	var c domain.Comment
	if err := r.h(tx).WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CommentRepo) ListByExercise(ctx context.Context, tx *gorm.DB, exerciseID uint) ([]domain.Comment, error) {
	var out []domain.Comment
	err := r.h(tx).WithContext(ctx).Preload("User").
		Where("exercise_id = ?", exerciseID).Order("id").Find(&out).Error
	return out, err
}

func (r *CommentRepo) UpdateText(ctx context.Context, tx *gorm.DB, id uint, text string) error {
	res := r.h(tx).WithContext(ctx).Model(&domain.Comment{}).Where("id = ?", id).Update("text", text)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CommentRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	res := r.h(tx).WithContext(ctx).Delete(&domain.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CommentRepo) DeleteByExercises(ctx context.Context, tx *gorm.DB, exerciseIDs []uint) error {
	if len(exerciseIDs) == 0 {
		return nil
	}
	return r.h(tx).WithContext(ctx).Where("exercise_id IN ?", exerciseIDs).Delete(&domain.Comment{}).Error
}

func (r *CommentRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	return r.h(tx).WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Comment{}).Error
}
