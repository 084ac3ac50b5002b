package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// ContextUserKey is the gin context key under which the auth middleware
// stores the authenticated *model.User.
const ContextUserKey = "user"

// Image categories understood by the storage service; each maps to a
// configured upload directory.
const (
	ImageCategoryQuestion    = "question"
	ImageCategoryExplanation = "explanation"
	ImageCategoryForum       = "forum"
)
