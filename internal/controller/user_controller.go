package controller

import (
	"net/http"

	"cbt_backend/internal/model"
	"cbt_backend/internal/service"
	"cbt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{
		UserService: userService,
	}
}

// GetUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} model.UserPublic
// @Security BearerAuth
// @Router /api/v1/users/ [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	skip := util.ParseIntDefault(ctx.Query("skip"), 0)
	limit := util.ParseIntDefault(ctx.Query("limit"), 100)

	users, err := c.UserService.GetUsers(skip, limit)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get one user
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} model.UserPublic
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	user, err := c.UserService.GetUserByID(id)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user.Public())
}

// UpdateUser godoc
// @Summary Update a user
// @Description Partial update; absent fields keep their value
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param body body model.UserPatch true "Fields to change"
// @Success 200 {object} model.UserPublic
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	var patch model.UserPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateUser(id, patch)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user.Public())
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.UserService.DeleteUser(id); err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// BulkUpload godoc
// @Summary Bulk-create users from a spreadsheet
// @Description Accepts a CSV or XLSX file with columns username, email, password, full_name; each row commits on its own
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} model.BulkUploadResult
// @Failure 400 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/users/bulk-upload [post]
func (c *UserController) BulkUpload(ctx *gin.Context) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if err := service.ValidateBulkFile(fh); err != nil {
		util.WriteError(ctx, err)
		return
	}

	file, err := fh.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	result, err := c.UserService.BulkUpload(fh.Filename, file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	ctx.JSON(http.StatusOK, result)
}
