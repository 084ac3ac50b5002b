package controller

import (
	"net/http"

	"cbt_backend/internal/model"
	"cbt_backend/internal/service"
	"cbt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	SubjectService *service.SubjectService
}

func NewSubjectController(subjectService *service.SubjectService) *SubjectController {
	return &SubjectController{
		SubjectService: subjectService,
	}
}

// SubjectRequest is the create payload for a subject.
// swagger:model SubjectRequest
type SubjectRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	ExamTypeID  uint   `json:"exam_type_id" binding:"required"`
}

// CreateSubject godoc
// @Summary Create a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param body body SubjectRequest true "Subject"
// @Success 200 {object} model.Subject
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/subjects/ [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.SubjectService.Create(req.Name, req.Description, req.ExamTypeID)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subject)
}

// GetSubjects godoc
// @Summary List subjects
// @Description Optionally filtered to one exam type
// @Tags subjects
// @Produce json
// @Param exam_type_id query int false "Exam type filter"
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} model.Subject
// @Security BearerAuth
// @Router /api/v1/subjects/ [get]
func (c *SubjectController) GetSubjects(ctx *gin.Context) {
	examTypeID := util.MustParseUint(ctx.Query("exam_type_id"))
	skip := util.ParseIntDefault(ctx.Query("skip"), 0)
	limit := util.ParseIntDefault(ctx.Query("limit"), 100)

	subjects, err := c.SubjectService.List(examTypeID, skip, limit)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subjects)
}

// GetSubject godoc
// @Summary Get one subject
// @Tags subjects
// @Produce json
// @Param id path int true "Subject id"
// @Success 200 {object} model.Subject
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/subjects/{id} [get]
func (c *SubjectController) GetSubject(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	subject, err := c.SubjectService.Get(id)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subject)
}

// UpdateSubject godoc
// @Summary Update a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject id"
// @Param body body model.SubjectPatch true "Fields to change"
// @Success 200 {object} model.Subject
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/subjects/{id} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	var patch model.SubjectPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.SubjectService.Update(id, patch)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subject)
}

// DeleteSubject godoc
// @Summary Delete a subject
// @Tags subjects
// @Produce json
// @Param id path int true "Subject id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/subjects/{id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.SubjectService.Delete(id); err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Subject deleted successfully"})
}
