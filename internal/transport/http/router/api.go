package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workout-tracker/internal/core/cache"
	"workout-tracker/internal/repo"
	"workout-tracker/internal/service"
	"workout-tracker/internal/transport/http/handler"
	mdw "workout-tracker/internal/transport/http/middleware"
)

// NewAPIEngine 组装全部路由；ca 传 nil 则统计接口直接读库
func NewAPIEngine(l *zap.Logger, db *gorm.DB, ca *cache.Cache) *gin.Engine {
	r := gin.New()

	r.Use(
		ginzap.Ginzap(l, time.RFC3339, true),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := repo.NewUserRepo(db)
	groups := repo.NewGroupRepo(db)
	types := repo.NewExerciseTypeRepo(db)
	exercises := repo.NewExerciseRepo(db)
	sets := repo.NewSetRepo(db)
	comments := repo.NewCommentRepo(db)
	workout := service.NewWorkout(db, l, ca)

	api := r.Group("/api/v1")
	handler.NewUsers(users, groups, exercises, workout).Mount(api)
	handler.NewGroups(groups, users, exercises).Mount(api)
	handler.NewExerciseTypes(types).Mount(api)
	handler.NewExercises(workout, exercises, sets, comments, users).Mount(api)

	return r
}
