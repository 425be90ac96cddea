package handler

import (
	"github.com/gin-gonic/gin"

	"workout-tracker/internal/repo"
	resp "workout-tracker/internal/transport/http/response"
)

type ExerciseTypes struct {
	types *repo.ExerciseTypeRepo
}

func NewExerciseTypes(types *repo.ExerciseTypeRepo) *ExerciseTypes {
	return &ExerciseTypes{types: types}
}

func (h *ExerciseTypes) Mount(g *gin.RouterGroup) {
	g.GET("/exercise-types", h.list)
	g.POST("/exercise-types", h.create)
	g.GET("/exercise-types/:id", h.get)
	g.PATCH("/exercise-types/:id", h.update)
	g.DELETE("/exercise-types/:id", h.remove)
}

type exerciseTypeIn struct {
	Name string `json:"name" binding:"required,max=128"`
}

func (h *ExerciseTypes) list(c *gin.Context) {
	ets, err := h.types.List(c, nil)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, ets)
}

func (h *ExerciseTypes) create(c *gin.Context) {
	var in exerciseTypeIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	// 与动作创建同一条 upsert 路径，重名创建是幂等的
	et, err := h.types.UpsertByName(c, nil, in.Name)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, et)
}

func (h *ExerciseTypes) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	et, err := h.types.FindByID(c, nil, id)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, et)
}

func (h *ExerciseTypes) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in exerciseTypeIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	if err := h.types.UpdateName(c, nil, id, in.Name); err != nil {
		resp.AbortErr(c, err)
		return
	}
	et, err := h.types.FindByID(c, nil, id)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, et)
}

func (h *ExerciseTypes) remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.types.Delete(c, nil, id); err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.NoContent(c)
}
