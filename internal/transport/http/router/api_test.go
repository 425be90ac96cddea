package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"workout-tracker/internal/domain"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(domain.All()...))
	return &testAPI{t: t, engine: NewAPIEngine(zap.NewNop(), db, nil)}
}

func (a *testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) decode(rec *httptest.ResponseRecorder, out any) {
	a.t.Helper()
	var env envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(a.t, json.Unmarshal(env.Data, out))
}

func (a *testAPI) createUser(name string) uint {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/users", gin.H{"name": name})
	require.Equal(a.t, http.StatusOK, rec.Code)
	var u domain.User
	a.decode(rec, &u)
	return u.ID
}

func (a *testAPI) statistics(userID uint) float64 {
	a.t.Helper()
	rec := a.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/statistics", userID), nil)
	require.Equal(a.t, http.StatusOK, rec.Code)
	var st struct {
		TotalWeightLifted float64 `json:"totalWeightLifted"`
	}
	a.decode(rec, &st)
	return st.TotalWeightLifted
}

func TestUserLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/v1/users", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	id := api.createUser("alice")
	assert.InDelta(t, 0, api.statistics(id), 1e-9)

	rec = api.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var u domain.User
	api.decode(rec, &u)
	assert.Equal(t, "alice", u.Name)

	rec = api.do(http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", id), gin.H{"name": "alicia"})
	require.Equal(t, http.StatusOK, rec.Code)
	api.decode(rec, &u)
	assert.Equal(t, "alicia", u.Name)

	rec = api.do(http.MethodGet, "/api/v1/users/9999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = api.do(http.MethodGet, "/api/v1/users/-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExerciseAggregateFlow(t *testing.T) {
	api := newTestAPI(t)
	userID := api.createUser("bob")

	rec := api.do(http.MethodPost, "/api/v1/exercises", gin.H{
		"userId":           userID,
		"exerciseTypeName": "bench press",
		"note":             "pr attempt",
		"sets":             []gin.H{{"numReps": 10, "weight": 5}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var ex domain.Exercise
	api.decode(rec, &ex)
	require.Len(t, ex.Sets, 1)
	assert.InDelta(t, 50, api.statistics(userID), 1e-9)

	// 不带 sets 的 PATCH 不碰聚合
	rec = api.do(http.MethodPatch, fmt.Sprintf("/api/v1/exercises/%d", ex.ID), gin.H{
		"note": "tweaked note", "exerciseTypeName": "incline bench",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.InDelta(t, 50, api.statistics(userID), 1e-9)

	// 整批替换按差额调整：13 - 50 = -37
	rec = api.do(http.MethodPatch, fmt.Sprintf("/api/v1/exercises/%d", ex.ID), gin.H{
		"sets": []gin.H{{"numReps": 5, "weight": 2}, {"numReps": 3, "weight": 1}},
	})
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.InDelta(t, 13, api.statistics(userID), 1e-9)

	rec = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/exercises/%d", ex.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.InDelta(t, 0, api.statistics(userID), 1e-9)
	rec = api.do(http.MethodGet, fmt.Sprintf("/api/v1/exercises/%d", ex.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetEndpoints(t *testing.T) {
	api := newTestAPI(t)
	userID := api.createUser("carol")

	rec := api.do(http.MethodPost, "/api/v1/exercises", gin.H{
		"userId":           userID,
		"exerciseTypeName": "squat",
		"sets":             []gin.H{},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var ex domain.Exercise
	api.decode(rec, &ex)

	rec = api.do(http.MethodPost, fmt.Sprintf("/api/v1/exercises/%d/sets", ex.ID), gin.H{
		"numReps": 10, "weight": 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var set domain.Set
	api.decode(rec, &set)
	assert.InDelta(t, 50, api.statistics(userID), 1e-9)

	// 缺 numReps/weight 的请求体挡在聚合之前
	rec = api.do(http.MethodPost, fmt.Sprintf("/api/v1/exercises/%d/sets", ex.ID), gin.H{"numReps": 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.InDelta(t, 50, api.statistics(userID), 1e-9)

	rec = api.do(http.MethodPatch, fmt.Sprintf("/api/v1/exercises/%d/sets/%d", ex.ID, set.ID), gin.H{"weight": 6})
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.InDelta(t, 60, api.statistics(userID), 1e-9)

	rec = api.do(http.MethodGet, fmt.Sprintf("/api/v1/exercises/%d/sets", ex.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sets []domain.Set
	api.decode(rec, &sets)
	require.Len(t, sets, 1)

	rec = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/exercises/%d/sets/%d", ex.ID, set.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.InDelta(t, 0, api.statistics(userID), 1e-9)

	rec = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/exercises/%d/sets/%d", ex.ID, set.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExerciseTypeUpsert(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/v1/exercise-types", gin.H{"name": "deadlift"})
	require.Equal(t, http.StatusOK, rec.Code)
	var first domain.ExerciseType
	api.decode(rec, &first)

	rec = api.do(http.MethodPost, "/api/v1/exercise-types", gin.H{"name": "deadlift"})
	require.Equal(t, http.StatusOK, rec.Code)
	var second domain.ExerciseType
	api.decode(rec, &second)
	assert.Equal(t, first.ID, second.ID)

	rec = api.do(http.MethodGet, "/api/v1/exercise-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []domain.ExerciseType
	api.decode(rec, &all)
	assert.Len(t, all, 1)
}

func TestGroupMembership(t *testing.T) {
	api := newTestAPI(t)
	userID := api.createUser("dave")

	rec := api.do(http.MethodPost, "/api/v1/groups", gin.H{"name": "morning crew"})
	require.Equal(t, http.StatusOK, rec.Code)
	var g domain.Group
	api.decode(rec, &g)

	rec = api.do(http.MethodPost, fmt.Sprintf("/api/v1/groups/%d/members", g.ID), gin.H{"userId": userID})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, fmt.Sprintf("/api/v1/groups/%d/members", g.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var members []domain.User
	api.decode(rec, &members)
	require.Len(t, members, 1)
	assert.Equal(t, "dave", members[0].Name)

	rec = api.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/groups", userID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var groups []domain.Group
	api.decode(rec, &groups)
	require.Len(t, groups, 1)

	// 组内动作汇总走成员 → 动作链
	rec = api.do(http.MethodPost, "/api/v1/exercises", gin.H{
		"userId":           userID,
		"exerciseTypeName": "clean",
		"sets":             []gin.H{{"numReps": 3, "weight": 60}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(http.MethodGet, fmt.Sprintf("/api/v1/groups/%d/exercises", g.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var exs []domain.Exercise
	api.decode(rec, &exs)
	require.Len(t, exs, 1)

	rec = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/groups/%d/members/%d", g.ID, userID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.do(http.MethodGet, fmt.Sprintf("/api/v1/groups/%d/members", g.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	members = nil
	api.decode(rec, &members)
	assert.Empty(t, members)

	rec = api.do(http.MethodPost, "/api/v1/groups/9999/members", gin.H{"userId": userID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommentEndpoints(t *testing.T) {
	api := newTestAPI(t)
	userID := api.createUser("erin")

	rec := api.do(http.MethodPost, "/api/v1/exercises", gin.H{
		"userId":           userID,
		"exerciseTypeName": "row",
		"sets":             []gin.H{},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var ex domain.Exercise
	api.decode(rec, &ex)

	rec = api.do(http.MethodPost, fmt.Sprintf("/api/v1/exercises/%d/comments", ex.ID), gin.H{
		"text": "good form", "userId": userID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var cm domain.Comment
	api.decode(rec, &cm)

	rec = api.do(http.MethodGet, fmt.Sprintf("/api/v1/exercises/%d/comments", ex.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var comments []domain.Comment
	api.decode(rec, &comments)
	require.Len(t, comments, 1)
	require.NotNil(t, comments[0].User)
	assert.Equal(t, "erin", comments[0].User.Name)

	rec = api.do(http.MethodPatch, fmt.Sprintf("/api/v1/exercises/%d/comments/%d", ex.ID, cm.ID), gin.H{"text": "edited"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/exercises/%d/comments/%d", ex.ID, cm.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/exercises/%d/comments/%d", ex.ID, cm.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// 评论不进聚合
	assert.InDelta(t, 0, api.statistics(userID), 1e-9)
}
