package handler

import (
	"github.com/gin-gonic/gin"

	"workout-tracker/internal/domain"
	"workout-tracker/internal/repo"
	resp "workout-tracker/internal/transport/http/response"
)

type Groups struct {
	groups    *repo.GroupRepo
	users     *repo.UserRepo
	exercises *repo.ExerciseRepo
}

func NewGroups(groups *repo.GroupRepo, users *repo.UserRepo, exercises *repo.ExerciseRepo) *Groups {
	return &Groups{groups: groups, users: users, exercises: exercises}
}

func (h *Groups) Mount(g *gin.RouterGroup) {
	g.GET("/groups", h.list)
	g.POST("/groups", h.create)
	g.GET("/groups/:id", h.get)
	g.PATCH("/groups/:id", h.update)
	g.DELETE("/groups/:id", h.remove)
	g.GET("/groups/:id/members", h.listMembers)
	g.POST("/groups/:id/members", h.addMember)
	g.DELETE("/groups/:id/members/:userId", h.removeMember)
	g.GET("/groups/:id/exercises", h.listExercises)
}

type groupIn struct {
	Name string `json:"name" binding:"required,max=128"`
}

func (h *Groups) list(c *gin.Context) {
	gs, err := h.groups.List(c, nil)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, gs)
}

func (h *Groups) create(c *gin.Context) {
	var in groupIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	grp := &domain.Group{Name: in.Name}
	if err := h.groups.Create(c, nil, grp); err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, grp)
}

func (h *Groups) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	grp, err := h.groups.FindByID(c, nil, id)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, grp)
}

func (h *Groups) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in groupIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	if err := h.groups.UpdateName(c, nil, id, in.Name); err != nil {
		resp.AbortErr(c, err)
		return
	}
	grp, err := h.groups.FindByID(c, nil, id)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, grp)
}

func (h *Groups) remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.groups.Delete(c, nil, id); err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.NoContent(c)
}

func (h *Groups) listMembers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.groups.FindByID(c, nil, id); err != nil {
		resp.AbortErr(c, err)
		return
	}
	members, err := h.groups.Members(c, nil, id)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, members)
}

type memberIn struct {
	UserID uint `json:"userId" binding:"required"`
}

func (h *Groups) addMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in memberIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	if _, err := h.groups.FindByID(c, nil, id); err != nil {
		resp.AbortErr(c, err)
		return
	}
	if _, err := h.users.FindByID(c, nil, in.UserID); err != nil {
		resp.AbortErr(c, err)
		return
	}
	if err := h.groups.AddMember(c, nil, id, in.UserID); err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.NoContent(c)
}

func (h *Groups) removeMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	if _, err := h.groups.FindByID(c, nil, id); err != nil {
		resp.AbortErr(c, err)
		return
	}
	if _, err := h.users.FindByID(c, nil, userID); err != nil {
		resp.AbortErr(c, err)
		return
	}
	if err := h.groups.RemoveMember(c, nil, id, userID); err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.NoContent(c)
}

func (h *Groups) listExercises(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.groups.FindByID(c, nil, id); err != nil {
		resp.AbortErr(c, err)
		return
	}
	members, err := h.groups.Members(c, nil, id)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	exs, err := h.exercises.ListByUsers(c, nil, ids)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, exs)
}
