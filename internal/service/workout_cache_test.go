package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workout-tracker/internal/repo"
)

// memStatsCache 内存版读穿缓存，记录回源与失效次数
type memStatsCache struct {
	mu    sync.Mutex
	data  map[string][]byte
	loads int
	dels  []string
}

func newMemStatsCache() *memStatsCache {
	return &memStatsCache{data: make(map[string][]byte)}
}

func (m *memStatsCache) GetOrLoad(ctx context.Context, key string, _ time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	m.mu.Lock()
	b, ok := m.data[key]
	m.mu.Unlock()
	if ok {
		return b, nil
	}
	b, err := load(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.loads++
	m.data[key] = b
	m.mu.Unlock()
	return b, nil
}

func (m *memStatsCache) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dels = append(m.dels, keys...)
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestStatisticsReadThroughCache(t *testing.T) {
	w, db := newTestWorkout(t)
	mc := newMemStatsCache()
	w.cache = mc
	ctx := context.Background()
	u := seedUser(t, db, "cached")

	_, err := w.CreateExercise(ctx, CreateExerciseInput{
		UserID:           u.ID,
		ExerciseTypeName: "squat",
		Sets:             []SetInput{setIn(10, 5)},
	})
	require.NoError(t, err)
	require.Equal(t, []string{statsKey(u.ID)}, mc.dels)

	st, err := w.Statistics(ctx, u.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50, st.TotalWeightLifted, 1e-9)
	assert.Equal(t, 1, mc.loads)

	// 第二次读命中缓存，不再回源
	st, err = w.Statistics(ctx, u.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50, st.TotalWeightLifted, 1e-9)
	assert.Equal(t, 1, mc.loads)
}

func TestMutationsInvalidateStatsKey(t *testing.T) {
	w, db := newTestWorkout(t)
	mc := newMemStatsCache()
	w.cache = mc
	ctx := context.Background()
	u := seedUser(t, db, "busy")

	ex, err := w.CreateExercise(ctx, CreateExerciseInput{
		UserID:           u.ID,
		ExerciseTypeName: "deadlift",
		Sets:             []SetInput{setIn(10, 5)},
	})
	require.NoError(t, err)

	set, err := w.AddSet(ctx, ex.ID, setIn(2, 25))
	require.NoError(t, err)
	require.NoError(t, w.UpdateSet(ctx, set.ID, UpdateSetInput{Weight: floatp(30)}))
	require.NoError(t, w.DeleteSet(ctx, set.ID))
	require.NoError(t, w.DeleteExercise(ctx, ex.ID))

	// 每笔提交过的变更恰好失效一次
	key := statsKey(u.ID)
	assert.Equal(t, []string{key, key, key, key, key}, mc.dels)

	st, err := w.Statistics(ctx, u.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0, st.TotalWeightLifted, 1e-9)
}

func TestFailedMutationLeavesCacheAlone(t *testing.T) {
	w, db := newTestWorkout(t)
	mc := newMemStatsCache()
	w.cache = mc
	ctx := context.Background()
	u := seedUser(t, db, "steady")

	st, err := w.Statistics(ctx, u.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0, st.TotalWeightLifted, 1e-9)
	require.Equal(t, 1, mc.loads)

	// 目标动作不存在，事务不会提交，也就不该失效缓存
	_, err = w.AddSet(ctx, 9999, setIn(1, 1))
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.Empty(t, mc.dels)

	st, err = w.Statistics(ctx, u.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0, st.TotalWeightLifted, 1e-9)
	assert.Equal(t, 1, mc.loads)
}
