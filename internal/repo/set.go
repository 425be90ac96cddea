package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"workout-tracker/internal/domain"
)

type SetRepo struct{ db *gorm.DB }

func NewSetRepo(db *gorm.DB) *SetRepo { return &SetRepo{db: db} }

func (r *SetRepo) h(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *SetRepo) Create(ctx context.Context, tx *gorm.DB, s *domain.Set) error {
	return r.h(tx).WithContext(ctx).Create(s).Error
}

func (r *SetRepo) CreateBatch(ctx context.Context, tx *gorm.DB, sets []domain.Set) error {
	if len(sets) == 0 {
		return nil
	}
	return r.h(tx).WithContext(ctx).Create(&sets).Error
}

func (r *SetRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Set, error) {
	var s domain.Set
	if err := r.h(tx).WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// FindByIDLocked 变更路径专用：锁住行再读旧值，两个并发改同一组时
// 后到者等前者提交后才取值算差额。sqlite 单写者天然串行，无需也不支持 FOR UPDATE。
func (r *SetRepo) FindByIDLocked(ctx context.Context, tx *gorm.DB, id uint) (*domain.Set, error) {
	h := r.h(tx).WithContext(ctx)
	if h.Dialector.Name() != "sqlite" {
		h = h.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var s domain.Set
	if err := h.First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SetRepo) ListByExercise(ctx context.Context, tx *gorm.DB, exerciseID uint) ([]domain.Set, error) {
	var out []domain.Set
	err := r.h(tx).WithContext(ctx).
		Where("exercise_id = ?", exerciseID).Order("id").Find(&out).Error
	return out, err
}

// ListByExerciseLocked 整批替换/级联删除前锁住旧行读总量，防并发改单组时差额失真
func (r *SetRepo) ListByExerciseLocked(ctx context.Context, tx *gorm.DB, exerciseID uint) ([]domain.Set, error) {
	h := r.h(tx).WithContext(ctx)
	if h.Dialector.Name() != "sqlite" {
		h = h.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out []domain.Set
	err := h.Where("exercise_id = ?", exerciseID).Order("id").Find(&out).Error
	return out, err
}

func (r *SetRepo) Update(ctx context.Context, tx *gorm.DB, id uint, numReps int, weight float64) error {
	res := r.h(tx).WithContext(ctx).Model(&domain.Set{}).Where("id = ?", id).
		Updates(map[string]any{"num_reps": numReps, "weight": weight})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SetRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	res := r.h(tx).WithContext(ctx).Delete(&domain.Set{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SetRepo) DeleteByExercise(ctx context.Context, tx *gorm.DB, exerciseID uint) error {
	return r.h(tx).WithContext(ctx).Where("exercise_id = ?", exerciseID).Delete(&domain.Set{}).Error
}

func (r *SetRepo) DeleteByExercises(ctx context.Context, tx *gorm.DB, exerciseIDs []uint) error {
	if len(exerciseIDs) == 0 {
		return nil
	}
	return r.h(tx).WithContext(ctx).Where("exercise_id IN ?", exerciseIDs).Delete(&domain.Set{}).Error
}

// TotalByUser 从明细行全量重算某用户的举重总量，校验聚合列漂移用
func (r *SetRepo) TotalByUser(ctx context.Context, tx *gorm.DB, userID uint) (float64, error) {
	var total float64
	err := r.h(tx).WithContext(ctx).Model(&domain.Set{}).
		Select("COALESCE(SUM(num_reps * weight), 0)").
		Joins("JOIN exercises ON exercises.id = sets.exercise_id").
		Where("exercises.user_id = ?", userID).
		Scan(&total).Error
	return total, err
}
