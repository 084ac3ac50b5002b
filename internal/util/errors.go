package util

import "errors"

// Sentinel errors returned by services. Messages surface verbatim in error
// response bodies, so changing one is a breaking change for clients that
// match on it.
var (
	ErrUserNotFound     = errors.New("User not found")
	ErrExamTypeNotFound = errors.New("Exam type not found")
	ErrSubjectNotFound  = errors.New("Subject not found")
	ErrQuestionNotFound = errors.New("Question not found")
	ErrTestNotFound     = errors.New("Test not found")
	ErrAttemptNotFound  = errors.New("Attempt not found")
	ErrPostNotFound     = errors.New("Post not found")
	ErrNewsNotFound     = errors.New("News not found")

	ErrAttemptCompleted    = errors.New("Attempt already completed")
	ErrAttemptNotCompleted = errors.New("Attempt not completed")

	ErrInvalidCredentials = errors.New("Incorrect username or password")
	ErrInactiveUser       = errors.New("Inactive user")
	ErrTokenInvalid       = errors.New("Could not validate credentials")
	ErrTokenExpired       = errors.New("Token expired beyond refresh window")
	ErrPermissionDenied   = errors.New("Not enough permissions")

	ErrUserExists      = errors.New("Username or email already registered")
	ErrExamTypeExists  = errors.New("Exam type already exists")
	ErrFileTooLarge    = errors.New("File too large (max 5MB)")
	ErrInvalidFileType = errors.New("Invalid file type")
)
