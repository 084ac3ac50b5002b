package controller

import (
	"net/http"

	"cbt_backend/internal/model"
	"cbt_backend/internal/service"
	"cbt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{
		QuestionService: questionService,
	}
}

// BulkQuestionRequest wraps the questions of a bulk insert.
// swagger:model BulkQuestionRequest
type BulkQuestionRequest struct {
	Questions []service.QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags questions
// @Accept json
// @Produce json
// @Param body body service.QuestionInput true "Question"
// @Success 200 {object} model.Question
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/questions/ [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Create(req)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// CreateQuestionsBulk godoc
// @Summary Create questions in bulk
// @Description Inserts all questions in one transaction; one bad row rejects the whole batch
// @Tags questions
// @Accept json
// @Produce json
// @Param body body BulkQuestionRequest true "Questions"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/questions/bulk [post]
func (c *QuestionController) CreateQuestionsBulk(ctx *gin.Context) {
	var req BulkQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.QuestionService.CreateBatch(req.Questions)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Questions created successfully",
		"count":   len(questions),
	})
}

// GetQuestions godoc
// @Summary List questions
// @Tags questions
// @Produce json
// @Param exam_type_id query int false "Exam type filter"
// @Param subject_id query int false "Subject filter"
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} model.Question
// @Security BearerAuth
// @Router /api/v1/questions/ [get]
func (c *QuestionController) GetQuestions(ctx *gin.Context) {
	examTypeID := util.MustParseUint(ctx.Query("exam_type_id"))
	subjectID := util.MustParseUint(ctx.Query("subject_id"))
	skip := util.ParseIntDefault(ctx.Query("skip"), 0)
	limit := util.ParseIntDefault(ctx.Query("limit"), 100)

	questions, err := c.QuestionService.List(examTypeID, subjectID, skip, limit)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// GetQuestion godoc
// @Summary Get one question
// @Tags questions
// @Produce json
// @Param id path int true "Question id"
// @Success 200 {object} model.Question
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	question, err := c.QuestionService.Get(id)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// GetQuestionsByExamType godoc
// @Summary List questions of an exam type
// @Tags questions
// @Produce json
// @Param exam_type_id path int true "Exam type id"
// @Success 200 {array} model.Question
// @Security BearerAuth
// @Router /api/v1/questions/exam-type/{exam_type_id} [get]
func (c *QuestionController) GetQuestionsByExamType(ctx *gin.Context) {
	examTypeID, err := util.ParseUintParam(ctx, "exam_type_id")
	if err != nil {
		return
	}

	questions, err := c.QuestionService.ListByExamType(examTypeID)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// GetQuestionsByExamTypeAndSubject godoc
// @Summary List questions of an exam type and subject
// @Tags questions
// @Produce json
// @Param exam_type_id path int true "Exam type id"
// @Param subject_id path int true "Subject id"
// @Success 200 {array} model.Question
// @Security BearerAuth
// @Router /api/v1/questions/exam-type/{exam_type_id}/subject/{subject_id} [get]
func (c *QuestionController) GetQuestionsByExamTypeAndSubject(ctx *gin.Context) {
	examTypeID, err := util.ParseUintParam(ctx, "exam_type_id")
	if err != nil {
		return
	}
	subjectID, err := util.ParseUintParam(ctx, "subject_id")
	if err != nil {
		return
	}

	questions, err := c.QuestionService.ListByExamTypeAndSubject(examTypeID, subjectID)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// GetQuestionsBySubject godoc
// @Summary List questions of a subject
// @Tags questions
// @Produce json
// @Param subject_id path int true "Subject id"
// @Success 200 {array} model.Question
// @Security BearerAuth
// @Router /api/v1/questions/subject/{subject_id} [get]
func (c *QuestionController) GetQuestionsBySubject(ctx *gin.Context) {
	subjectID, err := util.ParseUintParam(ctx, "subject_id")
	if err != nil {
		return
	}

	questions, err := c.QuestionService.ListBySubject(subjectID)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path int true "Question id"
// @Param body body model.QuestionPatch true "Fields to change"
// @Success 200 {object} model.Question
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	var patch model.QuestionPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Update(id, patch)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path int true "Question id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.QuestionService.Delete(ctx.Request.Context(), id); err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

// UploadQuestionImage godoc
// @Summary Attach an image to a question
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Question id"
// @Param file formData file true "Image file"
// @Success 200 {object} model.Question
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/questions/{id}/upload-image [post]
func (c *QuestionController) UploadQuestionImage(ctx *gin.Context) {
	c.uploadImage(ctx, util.ImageCategoryQuestion)
}

// DeleteQuestionImage godoc
// @Summary Remove a question's image
// @Tags questions
// @Produce json
// @Param id path int true "Question id"
// @Success 200 {object} model.Question
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/questions/{id}/delete-image [delete]
func (c *QuestionController) DeleteQuestionImage(ctx *gin.Context) {
	c.deleteImage(ctx, util.ImageCategoryQuestion)
}

// UploadExplanationImage godoc
// @Summary Attach an explanation image to a question
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Question id"
// @Param file formData file true "Image file"
// @Success 200 {object} model.Question
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/questions/{id}/upload-explanation-image [post]
func (c *QuestionController) UploadExplanationImage(ctx *gin.Context) {
	c.uploadImage(ctx, util.ImageCategoryExplanation)
}

// DeleteExplanationImage godoc
// @Summary Remove a question's explanation image
// @Tags questions
// @Produce json
// @Param id path int true "Question id"
// @Success 200 {object} model.Question
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/questions/{id}/delete-explanation-image [delete]
func (c *QuestionController) DeleteExplanationImage(ctx *gin.Context) {
	c.deleteImage(ctx, util.ImageCategoryExplanation)
}

func (c *QuestionController) uploadImage(ctx *gin.Context, category string) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}
	fh, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	question, err := c.QuestionService.AttachImage(ctx.Request.Context(), id, category, fh)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

func (c *QuestionController) deleteImage(ctx *gin.Context, category string) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	question, err := c.QuestionService.DetachImage(ctx.Request.Context(), id, category)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}
