package controller

import (
	"net/http"

	"cbt_backend/internal/model"
	"cbt_backend/internal/service"
	"cbt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{
		AuthService: authService,
	}
}

// RegisterRequest is the registration payload.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
	Role     string `json:"role" binding:"omitempty,oneof=student teacher admin"`
}

// LoginRequest carries the credentials for a login.
// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the token to refresh.
// swagger:model RefreshRequest
type RefreshRequest struct {
	Token string `json:"token" binding:"required"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account; the role defaults to student
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} model.UserPublic
// @Failure 400 {object} util.ErrorResponse
// @Router /api/v1/users/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(req.Username, req.Email, req.Password, req.FullName, model.UserRole(req.Role))
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, user.Public())
}

// Login godoc
// @Summary Log in
// @Description Exchanges username and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 401 {object} util.ErrorResponse
// @Router /api/v1/users/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Login(req.Username, req.Password)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RefreshToken godoc
// @Summary Refresh an access token
// @Description Re-issues a token; tokens expired less than the grace window ago are still accepted
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Current token"
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} util.ErrorResponse
// @Router /api/v1/users/refresh-token [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.RefreshToken(req.Token)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
