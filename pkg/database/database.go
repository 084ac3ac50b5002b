package database

import (
	"strings"

	"cbt_backend/internal/config"
	"cbt_backend/internal/model"
	"cbt_backend/internal/util"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(normalizeDSN(cfg.Database.URL)), &gorm.Config{
		Logger: gormLogLevel(cfg.Server.Mode),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.ExamType{},
		&model.Subject{},
		&model.Question{},
		&model.Test{},
		&model.Attempt{},
		&model.Answer{},
		&model.News{},
		&model.ForumPost{},
		&model.ForumLike{},
		&model.ForumReply{},
	)
	if err != nil {
		return nil, err
	}

	if err := SeedAdmin(db, &cfg.Admin); err != nil {
		return nil, err
	}

	return db, nil
}

// normalizeDSN accepts the legacy postgresql:// scheme alongside postgres://.
func normalizeDSN(url string) string {
	if strings.HasPrefix(url, "postgresql://") {
		return "postgres://" + strings.TrimPrefix(url, "postgresql://")
	}
	return url
}

func gormLogLevel(mode string) logger.Interface {
	if mode == "release" {
		return logger.Default.LogMode(logger.Warn)
	}
	return logger.Default.LogMode(logger.Info)
}

// SeedAdmin creates the bootstrap administrator account when it does not
// exist yet. Runs at every startup; a present row makes it a no-op.
func SeedAdmin(db *gorm.DB, cfg *config.AdminConfig) error {
	var count int64
	if err := db.Model(&model.User{}).Where("username = ?", cfg.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := util.HashPassword(cfg.Password)
	if err != nil {
		return err
	}
	admin := &model.User{
		Username:       cfg.Username,
		Email:          cfg.Email,
		HashedPassword: hashed,
		FullName:       "System Administrator",
		Role:           model.Admin,
		IsActive:       true,
	}
	return db.Create(admin).Error
}
