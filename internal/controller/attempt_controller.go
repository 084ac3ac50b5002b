package controller

import (
	"net/http"

	"cbt_backend/internal/service"
	"cbt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{
		AttemptService: attemptService,
	}
}

// StartAttemptRequest names the test to start.
// swagger:model StartAttemptRequest
type StartAttemptRequest struct {
	TestID uint `json:"test_id" binding:"required"`
}

// SubmitAttemptRequest carries the answers of a submission.
// swagger:model SubmitAttemptRequest
type SubmitAttemptRequest struct {
	AttemptID uint                       `json:"attempt_id" binding:"required"`
	Answers   []service.AnswerSubmission `json:"answers"`
}

// StartAttempt godoc
// @Summary Start a test attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Param body body StartAttemptRequest true "Test to attempt"
// @Success 200 {object} model.AttemptSummary
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/attempts/start [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	var req StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	caller := util.GetUserFromContext(ctx)
	attempt, err := c.AttemptService.Start(caller.ID, req.TestID)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// SubmitAttempt godoc
// @Summary Submit an attempt for grading
// @Description Grades the answers, finalizes the attempt and returns the result; a second submit fails
// @Tags attempts
// @Accept json
// @Produce json
// @Param body body SubmitAttemptRequest true "Answers"
// @Success 200 {object} model.ResultResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 403 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/attempts/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	var req SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	caller := util.GetUserFromContext(ctx)
	result, err := c.AttemptService.Submit(caller.ID, req.AttemptID, req.Answers)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// SavePractice godoc
// @Summary Record a practice session
// @Description Stores a self-graded practice session as an already-completed attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Param body body service.PracticeInput true "Practice session"
// @Success 200 {object} model.AttemptSummary
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/attempts/practice [post]
func (c *AttemptController) SavePractice(ctx *gin.Context) {
	var req service.PracticeInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	caller := util.GetUserFromContext(ctx)
	attempt, err := c.AttemptService.SavePractice(caller.ID, req)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// GetUserAttempts godoc
// @Summary List a user's attempts
// @Description Students may read their own attempts; teachers and admins anyone's
// @Tags attempts
// @Produce json
// @Param user_id path int true "User id"
// @Success 200 {array} model.AttemptSummary
// @Failure 403 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/attempts/user/{user_id} [get]
func (c *AttemptController) GetUserAttempts(ctx *gin.Context) {
	userID, err := util.ParseUintParam(ctx, "user_id")
	if err != nil {
		return
	}

	caller := util.GetUserFromContext(ctx)
	attempts, err := c.AttemptService.ListForUser(userID, caller)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetAttempt godoc
// @Summary Get one attempt
// @Tags attempts
// @Produce json
// @Param id path int true "Attempt id"
// @Success 200 {object} model.AttemptSummary
// @Failure 403 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/attempts/{id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	caller := util.GetUserFromContext(ctx)
	attempt, err := c.AttemptService.Get(id, caller)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// GetLeaderboard godoc
// @Summary Top users by average percentage
// @Description Mean percentage over completed attempts, top ten, cached briefly
// @Tags attempts
// @Produce json
// @Success 200 {array} model.LeaderboardEntry
// @Security BearerAuth
// @Router /api/v1/attempts/leaderboard/top [get]
func (c *AttemptController) GetLeaderboard(ctx *gin.Context) {
	entries, err := c.AttemptService.Leaderboard(ctx.Request.Context())
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, entries)
}
