package controller

import (
	"net/http"

	"cbt_backend/internal/model"
	"cbt_backend/internal/service"
	"cbt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{
		TestService: testService,
	}
}

// CreateTest godoc
// @Summary Create a test
// @Description Assembles a test from exam type and subject; title and marks are derived
// @Tags tests
// @Accept json
// @Produce json
// @Param body body service.TestInput true "Test definition"
// @Success 200 {object} model.Test
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tests/ [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	var req service.TestInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	caller := util.GetUserFromContext(ctx)
	test, err := c.TestService.Create(req, caller.ID)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// GetTests godoc
// @Summary List tests
// @Tags tests
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} model.Test
// @Security BearerAuth
// @Router /api/v1/tests/ [get]
func (c *TestController) GetTests(ctx *gin.Context) {
	skip := util.ParseIntDefault(ctx.Query("skip"), 0)
	limit := util.ParseIntDefault(ctx.Query("limit"), 100)

	tests, err := c.TestService.List(skip, limit)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTest godoc
// @Summary Get one test
// @Tags tests
// @Produce json
// @Param id path int true "Test id"
// @Success 200 {object} model.Test
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	test, err := c.TestService.Get(id)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// GetTestWithQuestions godoc
// @Summary Get a test with freshly sampled questions
// @Description Samples question_count questions from the matching pool; each call may return a different set, and a small pool yields fewer questions
// @Tags tests
// @Produce json
// @Param id path int true "Test id"
// @Success 200 {object} model.TestWithQuestions
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tests/{id}/with-questions [get]
func (c *TestController) GetTestWithQuestions(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	test, err := c.TestService.GetWithQuestions(id)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// UpdateTest godoc
// @Summary Update a test
// @Tags tests
// @Accept json
// @Produce json
// @Param id path int true "Test id"
// @Param body body model.TestPatch true "Fields to change"
// @Success 200 {object} model.Test
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tests/{id} [put]
func (c *TestController) UpdateTest(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	var patch model.TestPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.TestService.Update(id, patch)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// DeleteTest godoc
// @Summary Delete a test
// @Tags tests
// @Produce json
// @Param id path int true "Test id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tests/{id} [delete]
func (c *TestController) DeleteTest(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.TestService.Delete(id); err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Test deleted successfully"})
}
