package service

import (
	"errors"
	"time"

	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"gorm.io/gorm"
)

type NewsService struct {
	NewsRepo *repository.NewsRepository
}

func NewNewsService(newsRepo *repository.NewsRepository) *NewsService {
	return &NewsService{
		NewsRepo: newsRepo,
	}
}

func (s *NewsService) Create(title, content string, imageURL *string, createdBy uint) (*model.News, error) {
	news := &model.News{
		Title:     title,
		Content:   content,
		ImageURL:  imageURL,
		Date:      time.Now(),
		CreatedBy: createdBy,
	}
	if err := s.NewsRepo.Create(news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *NewsService) Get(id uint) (*model.News, error) {
	news, err := s.NewsRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNewsNotFound
		}
		return nil, err
	}
	return news, nil
}

func (s *NewsService) List(skip, limit int) ([]model.News, error) {
	return s.NewsRepo.List(skip, limit)
}

func (s *NewsService) Update(id uint, patch model.NewsPatch) (*model.News, error) {
	news, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	patch.Apply(news)
	if err := s.NewsRepo.Update(news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *NewsService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.NewsRepo.Delete(id)
}
