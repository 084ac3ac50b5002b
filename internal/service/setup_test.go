package service

import (
	"fmt"
	"testing"

	"cbt_backend/internal/config"
	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database with the full schema. The
// pool is pinned to one connection so every query sees the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
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
	))
	return db
}

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{
		SecretKey:                "unit-test-secret-key-0123456789abcdef",
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 60,
		RefreshGraceMinutes:      10,
	}
	return cfg
}

func seedUser(t *testing.T, db *gorm.DB, username string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "x",
		FullName:       username,
		Role:           role,
		IsActive:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedCatalog creates the JAMB exam type with a Physics subject under it.
func seedCatalog(t *testing.T, db *gorm.DB) (*model.ExamType, *model.Subject) {
	t.Helper()
	examType := &model.ExamType{Name: "JAMB", Description: "Joint admissions board"}
	require.NoError(t, db.Create(examType).Error)
	subject := &model.Subject{Name: "Physics", Description: "Mechanics and waves", ExamTypeID: examType.ID}
	require.NoError(t, db.Create(subject).Error)
	return examType, subject
}

func seedQuestion(t *testing.T, db *gorm.DB, examTypeID, subjectID uint, text, answer string) *model.Question {
	t.Helper()
	question := &model.Question{
		ExamTypeID:    examTypeID,
		SubjectID:     subjectID,
		QuestionText:  text,
		QuestionType:  "multiple_choice",
		Options:       datatypes.JSON([]byte(`{"A":"one","B":"two","C":"three","D":"four"}`)),
		CorrectAnswer: answer,
		Explanation:   "Because " + answer + ".",
		Marks:         1,
	}
	require.NoError(t, db.Create(question).Error)
	return question
}

func seedQuestionPool(t *testing.T, db *gorm.DB, examTypeID, subjectID uint, n int) []model.Question {
	t.Helper()
	pool := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		q := seedQuestion(t, db, examTypeID, subjectID, fmt.Sprintf("Question %d?", i+1), "A")
		pool = append(pool, *q)
	}
	return pool
}

func newTestAttemptService(db *gorm.DB) *AttemptService {
	return NewAttemptService(
		repository.NewAttemptRepository(db),
		repository.NewTestRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewUserRepository(db),
		db,
		nil,
	)
}

func newTestTestService(db *gorm.DB) *TestService {
	return NewTestService(
		repository.NewTestRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewExamTypeRepository(db),
		repository.NewSubjectRepository(db),
	)
}

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func uintPtr(v uint) *uint { return &v }

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }
