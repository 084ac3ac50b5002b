package service

import (
	"context"
	"errors"
	"math"
	"mime/multipart"

	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"gorm.io/gorm"
)

type ForumService struct {
	ForumRepo   *repository.ForumRepository
	SubjectRepo *repository.SubjectRepository
	UserRepo    *repository.UserRepository
	Storage     *StorageService
}

func NewForumService(
	forumRepo *repository.ForumRepository,
	subjectRepo *repository.SubjectRepository,
	userRepo *repository.UserRepository,
	storage *StorageService,
) *ForumService {
	return &ForumService{
		ForumRepo:   forumRepo,
		SubjectRepo: subjectRepo,
		UserRepo:    userRepo,
		Storage:     storage,
	}
}

// CreatePost stores a post with an optional image. The image is validated
// and persisted before the row is written so a storage failure never leaves
// a post pointing at nothing.
func (s *ForumService) CreatePost(ctx context.Context, userID uint, title, content string, subjectID uint, image *multipart.FileHeader) (*model.ForumPost, error) {
	if _, err := s.SubjectRepo.FindByID(subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}

	var imagePath *string
	if image != nil {
		if err := util.ValidateImageUpload(image, s.Storage.Upload); err != nil {
			return nil, err
		}
		src, err := image.Open()
		if err != nil {
			return nil, err
		}
		defer src.Close()

		stored, err := s.Storage.SaveImage(ctx, util.ImageCategoryForum, util.RandomFilename(image.Filename), src, image.Size, image.Header.Get("Content-Type"))
		if err != nil {
			return nil, err
		}
		imagePath = &stored
	}

	post := &model.ForumPost{
		UserID:    userID,
		SubjectID: subjectID,
		Title:     title,
		Content:   content,
		ImagePath: imagePath,
	}
	if err := s.ForumRepo.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns one page of a subject's posts with author, like and
// reply data resolved in batch queries. sort "popular" orders by like count,
// anything else newest first. liked reflects the calling user.
func (s *ForumService) ListPosts(subjectID uint, page, limit int, sort string, callerID uint) (*model.ForumPostList, error) {
	if _, err := s.SubjectRepo.FindByID(subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	posts, err := s.ForumRepo.ListPosts(subjectID, page, limit, sort)
	if err != nil {
		return nil, err
	}
	total, err := s.ForumRepo.CountPosts(subjectID)
	if err != nil {
		return nil, err
	}

	postIDs := make([]string, 0, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	seenAuthors := make(map[uint]bool)
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		if !seenAuthors[p.UserID] {
			seenAuthors[p.UserID] = true
			authorIDs = append(authorIDs, p.UserID)
		}
	}

	likeCounts, err := s.ForumRepo.LikeCounts(postIDs)
	if err != nil {
		return nil, err
	}
	replyCounts, err := s.ForumRepo.ReplyCounts(postIDs)
	if err != nil {
		return nil, err
	}
	liked, err := s.ForumRepo.LikedSet(callerID, postIDs)
	if err != nil {
		return nil, err
	}
	authors, err := s.UserRepo.FindByIDs(authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]model.ForumPostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, model.ForumPostView{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Image:     p.ImagePath,
			Author:    forumAuthor(authors, p.UserID),
			Likes:     likeCounts[p.ID],
			Replies:   replyCounts[p.ID],
			Liked:     liked[p.ID],
			CreatedAt: p.CreatedAt,
		})
	}

	return &model.ForumPostList{
		Posts:       views,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
	}, nil
}

// ToggleLike likes an unliked post and unlikes a liked one, returning the
// new count.
func (s *ForumService) ToggleLike(postID string, userID uint) (*model.ForumLikeResult, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}

	hasLiked, err := s.ForumRepo.HasLiked(postID, userID)
	if err != nil {
		return nil, err
	}

	message := "Post liked"
	if hasLiked {
		if err := s.ForumRepo.DeleteLike(postID, userID); err != nil {
			return nil, err
		}
		message = "Post unliked"
	} else {
		if err := s.ForumRepo.CreateLike(&model.ForumLike{PostID: postID, UserID: userID}); err != nil {
			return nil, err
		}
	}

	likes, err := s.ForumRepo.CountLikes(postID)
	if err != nil {
		return nil, err
	}
	return &model.ForumLikeResult{PostID: postID, Likes: likes, Message: message}, nil
}

func (s *ForumService) CreateReply(postID string, userID uint, content string) (*model.ForumReplyView, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}

	reply := &model.ForumReply{PostID: postID, UserID: userID, Content: content}
	if err := s.ForumRepo.CreateReply(reply); err != nil {
		return nil, err
	}

	authors, err := s.UserRepo.FindByIDs([]uint{userID})
	if err != nil {
		return nil, err
	}
	return &model.ForumReplyView{
		ID:        reply.ID,
		Content:   reply.Content,
		Author:    forumAuthor(authors, userID),
		CreatedAt: reply.CreatedAt,
	}, nil
}

func (s *ForumService) ListReplies(postID string) ([]model.ForumReplyView, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}

	replies, err := s.ForumRepo.ListReplies(postID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uint, 0, len(replies))
	seen := make(map[uint]bool)
	for _, r := range replies {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			authorIDs = append(authorIDs, r.UserID)
		}
	}
	authors, err := s.UserRepo.FindByIDs(authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]model.ForumReplyView, 0, len(replies))
	for _, r := range replies {
		views = append(views, model.ForumReplyView{
			ID:        r.ID,
			Content:   r.Content,
			Author:    forumAuthor(authors, r.UserID),
			CreatedAt: r.CreatedAt,
		})
	}
	return views, nil
}

func (s *ForumService) findPost(postID string) (*model.ForumPost, error) {
	post, err := s.ForumRepo.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// forumAuthor builds the author block, preferring the full name and showing
// a deleted user as "Unknown".
func forumAuthor(users map[uint]model.User, userID uint) model.ForumAuthor {
	author := model.ForumAuthor{ID: userID, Name: "Unknown"}
	if user, ok := users[userID]; ok {
		if user.FullName != "" {
			author.Name = user.FullName
		} else {
			author.Name = user.Username
		}
	}
	return author
}
