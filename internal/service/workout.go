// Package service owns the cross-entity units of work. Every Set/Exercise
// mutation and the matching totalWeightLifted delta commit in one GORM
// transaction; repos receive the handle explicitly.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"workout-tracker/internal/core/cache"
	"workout-tracker/internal/domain"
	"workout-tracker/internal/repo"
)

// statsCache 是统计缓存的依赖面：读穿 + 按键失效。
// 生产实现为 core/cache 的 redis 包装，测试注入内存假实现。
type statsCache interface {
	cache.ByteStore
	Del(ctx context.Context, keys ...string) error
}

type Workout struct {
	db    *gorm.DB
	log   *zap.Logger
	cache statsCache // 可为 nil，测试与无 redis 部署直接读库

	users     *repo.UserRepo
	groups    *repo.GroupRepo
	types     *repo.ExerciseTypeRepo
	exercises *repo.ExerciseRepo
	sets      *repo.SetRepo
	comments  *repo.CommentRepo
}

func NewWorkout(db *gorm.DB, l *zap.Logger, c *cache.Cache) *Workout {
	w := &Workout{
		db:        db,
		log:       l,
		users:     repo.NewUserRepo(db),
		groups:    repo.NewGroupRepo(db),
		types:     repo.NewExerciseTypeRepo(db),
		exercises: repo.NewExerciseRepo(db),
		sets:      repo.NewSetRepo(db),
		comments:  repo.NewCommentRepo(db),
	}
	// 显式判 nil 指针再装箱，避免持有 typed-nil 接口
	if c != nil {
		w.cache = c
	}
	return w
}

type SetInput struct {
	NumReps *int     `json:"numReps" binding:"required,min=0"`
	Weight  *float64 `json:"weight" binding:"required,min=0"`
}

func (in SetInput) volume() float64 { return float64(*in.NumReps) * *in.Weight }

type CreateExerciseInput struct {
	UserID           uint       `json:"userId" binding:"required"`
	ExerciseTypeName string     `json:"exerciseTypeName" binding:"required"`
	Note             string     `json:"note" binding:"omitempty,max=255"`
	Sets             []SetInput `json:"sets" binding:"dive"`
}

type UpdateExerciseInput struct {
	ExerciseTypeName *string     `json:"exerciseTypeName" binding:"omitempty,min=1"`
	Note             *string     `json:"note" binding:"omitempty,max=255"`
	Sets             *[]SetInput `json:"sets" binding:"omitempty,dive"`
}

type UpdateSetInput struct {
	NumReps *int     `json:"numReps" binding:"omitempty,min=0"`
	Weight  *float64 `json:"weight" binding:"omitempty,min=0"`
}

type Statistics struct {
	UserID            uint    `json:"userId"`
	TotalWeightLifted float64 `json:"totalWeightLifted"`
}

// CreateExercise 建动作：类型按名 upsert，初始 set 批量入库，
// 按批量总和给归属用户记一笔贷项。
func (s *Workout) CreateExercise(ctx context.Context, in CreateExerciseInput) (*domain.Exercise, error) {
	var created *domain.Exercise
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := s.users.FindByID(ctx, tx, in.UserID)
		if err != nil {
			return fmt.Errorf("resolve owner: %w", err)
		}
		et, err := s.types.UpsertByName(ctx, tx, in.ExerciseTypeName)
		if err != nil {
			return fmt.Errorf("upsert exercise type: %w", err)
		}
		ex := &domain.Exercise{Note: in.Note, UserID: owner.ID, ExerciseTypeID: et.ID}
		if err := s.exercises.Create(ctx, tx, ex); err != nil {
			return err
		}
		sets := make([]domain.Set, 0, len(in.Sets))
		var total float64
		for _, si := range in.Sets {
			sets = append(sets, domain.Set{NumReps: *si.NumReps, Weight: *si.Weight, ExerciseID: ex.ID})
			total += si.volume()
		}
		if err := s.sets.CreateBatch(ctx, tx, sets); err != nil {
			return err
		}
		if total != 0 {
			if err := s.users.AddWeight(ctx, tx, owner.ID, total); err != nil {
				return fmt.Errorf("credit aggregate: %w", err)
			}
		}
		created = ex
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.dropStats(ctx, created.UserID)
	return s.exercises.FindDetail(ctx, nil, created.ID)
}

// UpdateExercise 局部更新。sets 缺省时聚合一律不动；
// 给了 sets 则整批替换，按 newTotal-oldTotal 调差。
func (s *Workout) UpdateExercise(ctx context.Context, id uint, in UpdateExerciseInput) error {
	var owner uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ex, err := s.exercises.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		owner = ex.UserID

		fields := map[string]any{}
		if in.Note != nil {
			fields["note"] = *in.Note
		}
		if in.ExerciseTypeName != nil {
			et, err := s.types.UpsertByName(ctx, tx, *in.ExerciseTypeName)
			if err != nil {
				return err
			}
			fields["exercise_type_id"] = et.ID
		}
		if err := s.exercises.Update(ctx, tx, ex.ID, fields); err != nil {
			return err
		}

		if in.Sets == nil {
			return nil
		}
		old, err := s.sets.ListByExerciseLocked(ctx, tx, ex.ID)
		if err != nil {
			return err
		}
		var oldTotal float64
		for _, set := range old {
			oldTotal += set.Volume()
		}
		if err := s.sets.DeleteByExercise(ctx, tx, ex.ID); err != nil {
			return err
		}
		fresh := make([]domain.Set, 0, len(*in.Sets))
		var newTotal float64
		for _, si := range *in.Sets {
			fresh = append(fresh, domain.Set{NumReps: *si.NumReps, Weight: *si.Weight, ExerciseID: ex.ID})
			newTotal += si.volume()
		}
		if err := s.sets.CreateBatch(ctx, tx, fresh); err != nil {
			return err
		}
		if delta := newTotal - oldTotal; delta != 0 {
			return s.users.AddWeight(ctx, tx, ex.UserID, delta)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.dropStats(ctx, owner)
	return nil
}

// DeleteExercise 先按当前 set 总量记借项，再级联删 set、评论和动作本身
func (s *Workout) DeleteExercise(ctx context.Context, id uint) error {
	var owner uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ex, err := s.exercises.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		owner = ex.UserID
		sets, err := s.sets.ListByExerciseLocked(ctx, tx, ex.ID)
		if err != nil {
			return err
		}
		var total float64
		for _, set := range sets {
			total += set.Volume()
		}
		if total != 0 {
			if err := s.users.AddWeight(ctx, tx, ex.UserID, -total); err != nil {
				return fmt.Errorf("debit aggregate: %w", err)
			}
		}
		if err := s.sets.DeleteByExercise(ctx, tx, ex.ID); err != nil {
			return err
		}
		if err := s.comments.DeleteByExercises(ctx, tx, []uint{ex.ID}); err != nil {
			return err
		}
		return s.exercises.Delete(ctx, tx, ex.ID)
	})
	if err != nil {
		return err
	}
	s.dropStats(ctx, owner)
	return nil
}

// AddSet 给已有动作加一组，贷项 = numReps*weight
func (s *Workout) AddSet(ctx context.Context, exerciseID uint, in SetInput) (*domain.Set, error) {
	var created *domain.Set
	var owner uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ex, err := s.exercises.FindByID(ctx, tx, exerciseID)
		if err != nil {
			return err
		}
		owner = ex.UserID
		set := &domain.Set{NumReps: *in.NumReps, Weight: *in.Weight, ExerciseID: ex.ID}
		if err := s.sets.Create(ctx, tx, set); err != nil {
			return err
		}
		if v := set.Volume(); v != 0 {
			if err := s.users.AddWeight(ctx, tx, ex.UserID, v); err != nil {
				return fmt.Errorf("credit aggregate: %w", err)
			}
		}
		created = set
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.dropStats(ctx, owner)
	return created, nil
}

// UpdateSet 锁行取旧值，改完按 new-old 调差，同一事务内落库
func (s *Workout) UpdateSet(ctx context.Context, setID uint, in UpdateSetInput) error {
	var owner uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		set, err := s.sets.FindByIDLocked(ctx, tx, setID)
		if err != nil {
			return err
		}
		ex, err := s.exercises.FindByID(ctx, tx, set.ExerciseID)
		if err != nil {
			return err
		}
		owner = ex.UserID

		oldVolume := set.Volume()
		if in.NumReps != nil {
			set.NumReps = *in.NumReps
		}
		if in.Weight != nil {
			set.Weight = *in.Weight
		}
		if err := s.sets.Update(ctx, tx, set.ID, set.NumReps, set.Weight); err != nil {
			return err
		}
		if delta := set.Volume() - oldVolume; delta != 0 {
			return s.users.AddWeight(ctx, tx, ex.UserID, delta)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.dropStats(ctx, owner)
	return nil
}

// DeleteSet 锁行取当前口径值作借项，再删行
func (s *Workout) DeleteSet(ctx context.Context, setID uint) error {
	var owner uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		set, err := s.sets.FindByIDLocked(ctx, tx, setID)
		if err != nil {
			return err
		}
		ex, err := s.exercises.FindByID(ctx, tx, set.ExerciseID)
		if err != nil {
			return err
		}
		owner = ex.UserID
		if v := set.Volume(); v != 0 {
			if err := s.users.AddWeight(ctx, tx, ex.UserID, -v); err != nil {
				return fmt.Errorf("debit aggregate: %w", err)
			}
		}
		return s.sets.Delete(ctx, tx, set.ID)
	})
	if err != nil {
		return err
	}
	s.dropStats(ctx, owner)
	return nil
}

// DeleteUser 连同该用户的动作、set、评论和分组成员关系一起清
func (s *Workout) DeleteUser(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.users.FindByID(ctx, tx, userID); err != nil {
			return err
		}
		ids, err := s.exercises.IDsByUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := s.sets.DeleteByExercises(ctx, tx, ids); err != nil {
			return err
		}
		if err := s.comments.DeleteByExercises(ctx, tx, ids); err != nil {
			return err
		}
		if err := s.comments.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.exercises.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.groups.RemoveUserEverywhere(ctx, tx, userID); err != nil {
			return err
		}
		return s.users.Delete(ctx, tx, userID)
	})
	if err != nil {
		return err
	}
	s.dropStats(ctx, userID)
	return nil
}

// Statistics 读聚合列；有 redis 时走读穿缓存，写路径提交后已失效对应键
func (s *Workout) Statistics(ctx context.Context, userID uint) (*Statistics, error) {
	if s.cache == nil {
		return s.loadStatistics(ctx, userID)
	}
	return cache.GetOrLoadJSON(ctx, s.cache, statsKey(userID), cache.StatsTTL,
		func(ctx context.Context) (*Statistics, error) {
			return s.loadStatistics(ctx, userID)
		})
}

func (s *Workout) loadStatistics(ctx context.Context, userID uint) (*Statistics, error) {
	u, err := s.users.FindByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	return &Statistics{UserID: u.ID, TotalWeightLifted: u.TotalWeightLifted}, nil
}

func statsKey(userID uint) string { return fmt.Sprintf("stats:user:%d", userID) }

func (s *Workout) dropStats(ctx context.Context, userID uint) {
	if s.cache == nil || userID == 0 {
		return
	}
	if err := s.cache.Del(ctx, statsKey(userID)); err != nil {
		s.log.Warn("drop stats cache", zap.Uint("user_id", userID), zap.Error(err))
	}
}
