package handler

import (
	"github.com/gin-gonic/gin"

	"workout-tracker/internal/domain"
	"workout-tracker/internal/repo"
	"workout-tracker/internal/service"
	resp "workout-tracker/internal/transport/http/response"
)

type Exercises struct {
	workout   *service.Workout
	exercises *repo.ExerciseRepo
	sets      *repo.SetRepo
	comments  *repo.CommentRepo
	users     *repo.UserRepo
}

func NewExercises(w *service.Workout, exercises *repo.ExerciseRepo, sets *repo.SetRepo, comments *repo.CommentRepo, users *repo.UserRepo) *Exercises {
	return &Exercises{workout: w, exercises: exercises, sets: sets, comments: comments, users: users}
}

func (h *Exercises) Mount(g *gin.RouterGroup) {
	g.GET("/exercises", h.list)
	g.POST("/exercises", h.create)
	g.GET("/exercises/:id", h.get)
	g.PATCH("/exercises/:id", h.update)
	g.DELETE("/exercises/:id", h.remove)

	g.GET("/exercises/:id/sets", h.listSets)
	g.POST("/exercises/:id/sets", h.addSet)
	g.PATCH("/exercises/:id/sets/:setId", h.updateSet)
	g.DELETE("/exercises/:id/sets/:setId", h.removeSet)

	g.GET("/exercises/:id/comments", h.listComments)
	g.POST("/exercises/:id/comments", h.addComment)
	g.PATCH("/exercises/:id/comments/:commentId", h.updateComment)
	g.DELETE("/exercises/:id/comments/:commentId", h.removeComment)
}

func (h *Exercises) list(c *gin.Context) {
	exs, err := h.exercises.ListDetail(c, nil)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, exs)
}

func (h *Exercises) create(c *gin.Context) {
	var in service.CreateExerciseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	ex, err := h.workout.CreateExercise(c, in)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, ex)
}

func (h *Exercises) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ex, err := h.exercises.FindDetail(c, nil, id)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, ex)
}

func (h *Exercises) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in service.UpdateExerciseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	if err := h.workout.UpdateExercise(c, id, in); err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.NoContent(c)
}

func (h *Exercises) remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.workout.DeleteExercise(c, id); err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.NoContent(c)
}

func (h *Exercises) listSets(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.exercises.FindByID(c, nil, id); err != nil {
		resp.AbortErr(c, err)
		return
	}
	sets, err := h.sets.ListByExercise(c, nil, id)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, sets)
}

func (h *Exercises) addSet(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in service.SetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	set, err := h.workout.AddSet(c, id, in)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, set)
}

func (h *Exercises) updateSet(c *gin.Context) {
	setID, ok := pathID(c, "setId")
	if !ok {
		return
	}
	var in service.UpdateSetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	if err := h.workout.UpdateSet(c, setID, in); err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.NoContent(c)
}

func (h *Exercises) removeSet(c *gin.Context) {
	setID, ok := pathID(c, "setId")
	if !ok {
		return
	}
	if err := h.workout.DeleteSet(c, setID); err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.NoContent(c)
}

func (h *Exercises) listComments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.exercises.FindByID(c, nil, id); err != nil {
		resp.AbortErr(c, err)
		return
	}
	comments, err := h.comments.ListByExercise(c, nil, id)
	if err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, comments)
}

type commentIn struct {
	Text   string `json:"text" binding:"required,max=512"`
	UserID uint   `json:"userId" binding:"required"`
}

func (h *Exercises) addComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in commentIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	if _, err := h.exercises.FindByID(c, nil, id); err != nil {
		resp.AbortErr(c, err)
		return
	}
	if _, err := h.users.FindByID(c, nil, in.UserID); err != nil {
		resp.AbortErr(c, err)
		return
	}
	cm := &domain.Comment{Text: in.Text, ExerciseID: id, UserID: in.UserID}
	if err := h.comments.Create(c, nil, cm); err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.OK(c, cm)
}

type commentPatchIn struct {
	Text string `json:"text" binding:"required,max=512"`
}

func (h *Exercises) updateComment(c *gin.Context) {
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	var in commentPatchIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	if err := h.comments.UpdateText(c, nil, commentID, in.Text); err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.NoContent(c)
}

func (h *Exercises) removeComment(c *gin.Context) {
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	if err := h.comments.Delete(c, nil, commentID); err != nil {
		resp.AbortErr(c, err)
		return
	}
	resp.NoContent(c)
}
