package middleware

import (
	"errors"
	"strings"

	"cbt_backend/internal/config"
	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware validates the bearer token and loads the user it names.
// The user row is re-fetched on every request, so deactivating or deleting
// an account takes effect immediately even for tokens already issued.
func AuthMiddleware(cfg *config.Config, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			util.Unauthorized(c, util.ErrTokenInvalid.Error())
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		username, err := util.ParseToken(&cfg.JWT, tokenString)
		if err != nil {
			util.Unauthorized(c, util.ErrTokenInvalid.Error())
			c.Abort()
			return
		}

		user, err := userRepo.FindByUsername(username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Unauthorized(c, util.ErrTokenInvalid.Error())
			} else {
				util.LogInternalError(c, err)
			}
			c.Abort()
			return
		}
		if !user.IsActive {
			util.BadRequest(c, util.ErrInactiveUser.Error())
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, user)
		c.Next()
	}
}

// RoleMiddleware allows only the listed roles past. Admins pass every gate.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c, util.ErrTokenInvalid.Error())
			c.Abort()
			return
		}

		hasRole := user.Role == model.Admin
		if !hasRole {
			for _, role := range roles {
				if user.Role == role {
					hasRole = true
					break
				}
			}
		}

		if !hasRole {
			util.Forbidden(c, util.ErrPermissionDenied.Error())
			c.Abort()
			return
		}
		c.Next()
	}
}
