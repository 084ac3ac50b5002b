package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cbt_backend/internal/config"
	"cbt_backend/internal/util"
	"cbt_backend/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider persists uploaded images. Save returns the public path
// that is stored in the database; Remove accepts that same stored path.
type StorageProvider interface {
	Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, stored string) error
	URL(key string) string
}

// LocalStorageProvider writes files under the configured upload directories
// relative to the working directory.
type LocalStorageProvider struct{}

func (p *LocalStorageProvider) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.FromSlash(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return p.URL(key), nil
}

func (p *LocalStorageProvider) Remove(ctx context.Context, stored string) error {
	return os.Remove(filepath.FromSlash(strings.TrimPrefix(stored, "/")))
}

func (p *LocalStorageProvider) URL(key string) string {
	return "/" + key
}

type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.URL(key), nil
}

func (p *MinioStorageProvider) Remove(ctx context.Context, stored string) error {
	key := strings.TrimPrefix(stored, "/"+p.Config.MinioBucket+"/")
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, key, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) URL(key string) string {
	return "/" + p.Config.MinioBucket + "/" + key
}

type OSSStorageProvider struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Config: cfg, Client: client}, nil
}

func (p *OSSStorageProvider) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}
	if err := bucket.PutObject(key, reader); err != nil {
		return "", err
	}
	return p.URL(key), nil
}

func (p *OSSStorageProvider) Remove(ctx context.Context, stored string) error {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return err
	}
	prefix := fmt.Sprintf("https://%s.%s/", p.Config.OSSBucket, p.Config.OSSEndpoint)
	return bucket.DeleteObject(strings.TrimPrefix(stored, prefix))
}

func (p *OSSStorageProvider) URL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Config.OSSBucket, p.Config.OSSEndpoint, key)
}

// StorageService routes image uploads to the configured provider. An image
// belongs to a category (question, explanation, forum) that decides the
// directory or object prefix it lives under.
type StorageService struct {
	Provider StorageProvider
	Upload   *config.UploadConfig
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("MinIO init failed, falling back to local storage", zap.Error(err))
		} else {
			provider = p
		}
	case util.StorageOSS:
		p, err := NewOSSStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("OSS init failed, falling back to local storage", zap.Error(err))
		} else {
			provider = p
		}
	}
	if provider == nil {
		provider = &LocalStorageProvider{}
	}

	return &StorageService{Provider: provider, Upload: &cfg.Upload}
}

func (s *StorageService) dirFor(category string) string {
	switch category {
	case util.ImageCategoryExplanation:
		return s.Upload.ExplanationImageDir
	case util.ImageCategoryForum:
		return s.Upload.ForumImageDir
	default:
		return s.Upload.QuestionImageDir
	}
}

// SaveImage stores one uploaded image and returns the path to persist.
func (s *StorageService) SaveImage(ctx context.Context, category, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	key := path.Join(filepath.ToSlash(s.dirFor(category)), filename)
	return s.Provider.Save(ctx, key, reader, size, contentType)
}

// RemoveImage deletes a previously stored image. A missing file is not an
// error; the database row is the source of truth.
func (s *StorageService) RemoveImage(ctx context.Context, stored string) {
	if stored == "" {
		return
	}
	if err := s.Provider.Remove(ctx, stored); err != nil && !os.IsNotExist(err) {
		logger.Log.Warn("Failed to remove stored image", zap.String("path", stored), zap.Error(err))
	}
}
