package service

import (
	"errors"
	"time"

	"cbt_backend/internal/config"
	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register creates an account. Username and email must both be free; the
// role defaults to student when the request leaves it out.
func (s *AuthService) Register(username, email, password, fullName string, role model.UserRole) (*model.User, error) {
	exists, err := s.UserRepo.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrUserExists
	}

	hashed, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = model.Student
	}
	user := &model.User{
		Username:       username,
		Email:          email,
		HashedPassword: hashed,
		FullName:       fullName,
		Role:           role,
		IsActive:       true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(user.HashedPassword, password) {
		return nil, util.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, util.ErrInactiveUser
	}

	return s.issueToken(user)
}

// RefreshToken re-issues a token for a valid bearer, or for one that expired
// within the grace window. Anything older is rejected.
func (s *AuthService) RefreshToken(tokenString string) (*model.LoginResponse, error) {
	username, expiresAt, err := util.ParseTokenAllowExpired(&s.Cfg.JWT, tokenString)
	if err != nil {
		return nil, util.ErrTokenInvalid
	}

	if now := time.Now(); now.After(expiresAt) && now.Sub(expiresAt) > s.Cfg.JWT.RefreshGrace() {
		return nil, util.ErrTokenExpired
	}

	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTokenInvalid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, util.ErrInactiveUser
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *model.User) (*model.LoginResponse, error) {
	token, err := util.GenerateToken(&s.Cfg.JWT, user.Username)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user.Public(),
	}, nil
}
