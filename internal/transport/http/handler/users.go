package handler

import (
	"github.com/gin-gonic/gin"

	"workout-tracker/internal/domain"
	"workout-tracker/internal/repo"
	"workout-tracker/internal/service"
	resp "workout-tracker/internal/transport/http/response"
)

type Users struct {
	users     *repo.UserRepo
	groups    *repo.GroupRepo
	exercises *repo.ExerciseRepo
	workout   *service.Workout
}

func NewUsers(users *repo.UserRepo, groups *repo.GroupRepo, exercises *repo.ExerciseRepo, w *service.Workout) *Users {
	return &Users{users: users, groups: groups, exercises: exercises, workout: w}
}

func (h *Users) Mount(g *gin.RouterGroup) {
	g.POST("/users", h.create)
	g.GET("/users/:id", h.get)
	g.PATCH("/users/:id", h.update)
	g.DELETE("/users/:id", h.remove)
	g.GET("/users/:id/groups", h.listGroups)
	g.GET("/users/:id/exercises", h.listExercises)
	g.GET("/users/:id/statistics", h.statistics)
}

type userIn struct {
	Name string `json:"name" binding:"required,max=64"`
}

func (h *Users) create(c *gin.Context) {
	var in userIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	u := &domain.User{Name: in.Name}
	if err := h.users.Create(c, nil, u); err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, u)
}

func (h *Users) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := h.users.FindByID(c, nil, id)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, u)
}

func (h *Users) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in userIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	if err := h.users.UpdateName(c, nil, id, in.Name); err != nil {
		resp.AbortErr(c, err)
		return
	}
	u, err := h.users.FindByID(c, nil, id)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, u)
}

func (h *Users) remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.workout.DeleteUser(c, id); err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.NoContent(c)
}

func (h *Users) listGroups(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.users.FindByID(c, nil, id); err != nil {
		resp.AbortErr(c, err)
		return
	}
	gs, err := h.groups.GroupsOfUser(c, nil, id)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, gs)
}

func (h *Users) listExercises(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.users.FindByID(c, nil, id); err != nil {
		resp.AbortErr(c, err)
		return
	}
	exs, err := h.exercises.ListByUsers(c, nil, []uint{id})
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, exs)
}

func (h *Users) statistics(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	st, err := h.workout.Statistics(c, id)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, st)
}
