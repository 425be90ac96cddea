package repo

import (
	"context"

	"gorm.io/gorm"

	"workout-tracker/internal/domain"
)

type GroupRepo struct{ db *gorm.DB }

func NewGroupRepo(db *gorm.DB) *GroupRepo { return &GroupRepo{db: db} }

func (r *GroupRepo) h(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *GroupRepo) Create(ctx context.Context, tx *gorm.DB, g *domain.Group) error {
	return r.h(tx).WithContext(ctx).Create(g).Error
}

func (r *GroupRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Group, error) {
	var g domain.Group
	if err := r.h(tx).WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (r *GroupRepo) List(ctx context.Context, tx *gorm.DB) ([]domain.Group, error) {
	var out []domain.Group
	err := r.h(tx).WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *GroupRepo) UpdateName(ctx context.Context, tx *gorm.DB, id uint, name string) error {
	res := r.h(tx).WithContext(ctx).Model(&domain.Group{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GroupRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	res := r.h(tx).WithContext(ctx).Select("Users").Delete(&domain.Group{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GroupRepo) AddMember(ctx context.Context, tx *gorm.DB, groupID, userID uint) error {
	g := domain.Group{ID: groupID}
	return r.h(tx).WithContext(ctx).Model(&g).
		Association("Users").Append(&domain.User{ID: userID})
}

func (r *GroupRepo) RemoveMember(ctx context.Context, tx *gorm.DB, groupID, userID uint) error {
	g := domain.Group{ID: groupID}
	return r.h(tx).WithContext(ctx).Model(&g).
		Association("Users").Delete(&domain.User{ID: userID})
}

func (r *GroupRepo) Members(ctx context.Context, tx *gorm.DB, groupID uint) ([]domain.User, error) {
	g := domain.Group{ID: groupID}
	var out []domain.User
	err := r.h(tx).WithContext(ctx).Model(&g).Association("Users").Find(&out)
	return out, err
}

func (r *GroupRepo) GroupsOfUser(ctx context.Context, tx *gorm.DB, userID uint) ([]domain.Group, error) {
	u := domain.User{ID: userID}
	var out []domain.Group
	err := r.h(tx).WithContext(ctx).Model(&u).Association("Groups").Find(&out)
	return out, err
}

// RemoveUserEverywhere 把用户从全部分组的成员关系里摘掉（删用户时清理联结表）
func (r *GroupRepo) RemoveUserEverywhere(ctx context.Context, tx *gorm.DB, userID uint) error {
	u := domain.User{ID: userID}
	return r.h(tx).WithContext(ctx).Model(&u).Association("Groups").Clear()
}
