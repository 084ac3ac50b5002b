package repository

import (
	"cbt_backend/internal/model"

	"gorm.io/gorm"
)

type ForumRepository struct {
	DB *gorm.DB
}

func NewForumRepository(db *gorm.DB) *ForumRepository {
	return &ForumRepository{DB: db}
}

func (r *ForumRepository) CreatePost(post *model.ForumPost) error {
	return r.DB.Create(post).Error
}

func (r *ForumRepository) FindPostByID(id string) (*model.ForumPost, error) {
	var post model.ForumPost
	err := r.DB.Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts pages through a subject's posts; sort "popular" orders by like
// count before paging, anything else is newest-first.
func (r *ForumRepository) ListPosts(subjectID uint, page, limit int, sort string) ([]model.ForumPost, error) {
	var posts []model.ForumPost
	offset := (page - 1) * limit

	query := r.DB.Model(&model.ForumPost{}).Where("forum_posts.subject_id = ?", subjectID)
	if sort == "popular" {
		query = query.
			Select("forum_posts.*").
			Joins("LEFT JOIN forum_likes ON forum_likes.post_id = forum_posts.id").
			Group("forum_posts.id").
			Order("COUNT(forum_likes.id) DESC")
	} else {
		query = query.Order("forum_posts.created_at DESC")
	}

	err := query.Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *ForumRepository) CountPosts(subjectID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ForumPost{}).Where("subject_id = ?", subjectID).Count(&count).Error
	return count, err
}

func (r *ForumRepository) CountLikes(postID string) (int, error) {
	var count int64
	err := r.DB.Model(&model.ForumLike{}).Where("post_id = ?", postID).Count(&count).Error
	return int(count), err
}

// LikeCounts returns like totals for a page of posts in one query.
func (r *ForumRepository) LikeCounts(postIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	rows := []struct {
		PostID string
		Total  int
	}{}
	err := r.DB.Model(&model.ForumLike{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

// ReplyCounts returns reply totals for a page of posts in one query.
func (r *ForumRepository) ReplyCounts(postIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	rows := []struct {
		PostID string
		Total  int
	}{}
	err := r.DB.Model(&model.ForumReply{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

// LikedSet reports which of the given posts the user has liked.
func (r *ForumRepository) LikedSet(userID uint, postIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}
	var ids []string
	err := r.DB.Model(&model.ForumLike{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *ForumRepository) HasLiked(postID string, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ForumLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ForumRepository) CreateLike(like *model.ForumLike) error {
	return r.DB.Create(like).Error
}

// DeleteLike removes the row outright; a soft delete would keep the
// (post, user) pair locked by the unique index and block re-liking.
func (r *ForumRepository) DeleteLike(postID string, userID uint) error {
	return r.DB.Unscoped().
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.ForumLike{}).Error
}

func (r *ForumRepository) CreateReply(reply *model.ForumReply) error {
	return r.DB.Create(reply).Error
}

func (r *ForumRepository) ListReplies(postID string) ([]model.ForumReply, error) {
	var replies []model.ForumReply
	err := r.DB.Where("post_id = ?", postID).Order("created_at ASC").Find(&replies).Error
	return replies, err
}
