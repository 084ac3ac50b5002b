package controller

import (
	"net/http"

	"cbt_backend/internal/model"
	"cbt_backend/internal/service"
	"cbt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamTypeController struct {
	ExamTypeService *service.ExamTypeService
}

func NewExamTypeController(examTypeService *service.ExamTypeService) *ExamTypeController {
	return &ExamTypeController{
		ExamTypeService: examTypeService,
	}
}

// ExamTypeRequest is the create payload for an exam type.
// swagger:model ExamTypeRequest
type ExamTypeRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// CreateExamType godoc
// @Summary Create an exam type
// @Tags exam-types
// @Accept json
// @Produce json
// @Param body body ExamTypeRequest true "Exam type"
// @Success 200 {object} model.ExamType
// @Failure 400 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/exam-types/ [post]
func (c *ExamTypeController) CreateExamType(ctx *gin.Context) {
	var req ExamTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	examType, err := c.ExamTypeService.Create(req.Name, req.Description)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, examType)
}

// GetExamTypes godoc
// @Summary List exam types
// @Tags exam-types
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} model.ExamType
// @Security BearerAuth
// @Router /api/v1/exam-types/ [get]
func (c *ExamTypeController) GetExamTypes(ctx *gin.Context) {
	skip := util.ParseIntDefault(ctx.Query("skip"), 0)
	limit := util.ParseIntDefault(ctx.Query("limit"), 100)

	examTypes, err := c.ExamTypeService.List(skip, limit)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, examTypes)
}

// GetExamType godoc
// @Summary Get one exam type
// @Tags exam-types
// @Produce json
// @Param id path int true "Exam type id"
// @Success 200 {object} model.ExamType
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/exam-types/{id} [get]
func (c *ExamTypeController) GetExamType(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	examType, err := c.ExamTypeService.Get(id)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, examType)
}

// UpdateExamType godoc
// @Summary Update an exam type
// @Tags exam-types
// @Accept json
// @Produce json
// @Param id path int true "Exam type id"
// @Param body body model.ExamTypePatch true "Fields to change"
// @Success 200 {object} model.ExamType
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/exam-types/{id} [put]
func (c *ExamTypeController) UpdateExamType(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	var patch model.ExamTypePatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	examType, err := c.ExamTypeService.Update(id, patch)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, examType)
}

// DeleteExamType godoc
// @Summary Delete an exam type
// @Tags exam-types
// @Produce json
// @Param id path int true "Exam type id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/exam-types/{id} [delete]
func (c *ExamTypeController) DeleteExamType(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.ExamTypeService.Delete(id); err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Exam type deleted successfully"})
}
