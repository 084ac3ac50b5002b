package controller

import (
	"net/http"

	"cbt_backend/internal/service"
	"cbt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{
		ResultService: resultService,
	}
}

// GetAttemptResult godoc
// @Summary Graded result of one attempt
// @Description Owner, teacher or admin only; the attempt must be completed
// @Tags results
// @Produce json
// @Param id path int true "Attempt id"
// @Success 200 {object} model.ResultResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 403 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/results/attempt/{id} [get]
func (c *ResultController) GetAttemptResult(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	caller := util.GetUserFromContext(ctx)
	result, err := c.ResultService.GetAttemptResult(id, caller)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetUserResults godoc
// @Summary All completed results of a user
// @Tags results
// @Produce json
// @Param user_id path int true "User id"
// @Success 200 {array} model.ResultResponse
// @Failure 403 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/results/user/{user_id} [get]
func (c *ResultController) GetUserResults(ctx *gin.Context) {
	userID, err := util.ParseUintParam(ctx, "user_id")
	if err != nil {
		return
	}

	caller := util.GetUserFromContext(ctx)
	results, err := c.ResultService.GetUserResults(userID, caller)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// GetTestAnalytics godoc
// @Summary Aggregate statistics of a test
// @Description Returns an explicit no-data message when nobody has completed the test
// @Tags results
// @Produce json
// @Param test_id path int true "Test id"
// @Success 200 {object} model.TestAnalytics
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/results/test/{test_id}/analytics [get]
func (c *ResultController) GetTestAnalytics(ctx *gin.Context) {
	testID, err := util.ParseUintParam(ctx, "test_id")
	if err != nil {
		return
	}

	analytics, err := c.ResultService.GetTestAnalytics(testID)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, analytics)
}
