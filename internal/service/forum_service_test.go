package service

import (
	"context"
	"testing"
	"time"

	"cbt_backend/internal/config"
	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestForumService(db *gorm.DB) *ForumService {
	return NewForumService(
		repository.NewForumRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewUserRepository(db),
		NewStorageService(&config.Config{}),
	)
}

func TestCreatePostStoresRow(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestForumService(db)
	_, subject := seedCatalog(t, db)
	ada := seedUser(t, db, "ada", model.Student)

	post, err := svc.CreatePost(context.Background(), ada.ID, "Projectile motion", "How do I derive the range formula?", subject.ID, nil)
	require.NoError(t, err)
	assert.Len(t, post.ID, 36)
	assert.Equal(t, ada.ID, post.UserID)
	assert.Equal(t, subject.ID, post.SubjectID)
	assert.Nil(t, post.ImagePath)

	var stored model.ForumPost
	require.NoError(t, db.First(&stored, "id = ?", post.ID).Error)
	assert.Equal(t, "Projectile motion", stored.Title)

	_, err = svc.CreatePost(context.Background(), ada.ID, "Lost", "post", 9999, nil)
	assert.ErrorIs(t, err, util.ErrSubjectNotFound)
}

func TestListPostsPaginatesNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestForumService(db)
	_, subject := seedCatalog(t, db)
	ada := seedUser(t, db, "ada", model.Student)
	ben := &model.User{Username: "ben", Email: "ben@example.com", HashedPassword: "x", Role: model.Student, IsActive: true}
	require.NoError(t, db.Create(ben).Error)
	ghost := seedUser(t, db, "ghost", model.Student)

	ctx := context.Background()
	first, err := svc.CreatePost(ctx, ada.ID, "First", "oldest", subject.ID, nil)
	require.NoError(t, err)
	second, err := svc.CreatePost(ctx, ben.ID, "Second", "middle", subject.ID, nil)
	require.NoError(t, err)
	third, err := svc.CreatePost(ctx, ghost.ID, "Third", "newest", subject.ID, nil)
	require.NoError(t, err)

	backdate := func(postID string, age time.Duration) {
		require.NoError(t, db.Model(&model.ForumPost{}).
			Where("id = ?", postID).
			Update("created_at", time.Now().Add(-age)).Error)
	}
	backdate(first.ID, 3*time.Hour)
	backdate(second.ID, 2*time.Hour)
	backdate(third.ID, time.Hour)

	require.NoError(t, db.Delete(ghost).Error)

	page1, err := svc.ListPosts(subject.ID, 1, 2, "recent", ada.ID)
	require.NoError(t, err)
	require.Len(t, page1.Posts, 2)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, 1, page1.CurrentPage)
	assert.Equal(t, "Third", page1.Posts[0].Title)
	assert.Equal(t, "Second", page1.Posts[1].Title)
	assert.Equal(t, "Unknown", page1.Posts[0].Author.Name)
	assert.Equal(t, "ben", page1.Posts[1].Author.Name)

	page2, err := svc.ListPosts(subject.ID, 2, 2, "recent", ada.ID)
	require.NoError(t, err)
	require.Len(t, page2.Posts, 1)
	assert.Equal(t, "First", page2.Posts[0].Title)
	assert.Equal(t, "ada", page2.Posts[0].Author.Name)
	assert.Equal(t, ada.ID, page2.Posts[0].Author.ID)

	// Out-of-range paging inputs fall back to page 1, limit 10.
	all, err := svc.ListPosts(subject.ID, 0, 0, "recent", ada.ID)
	require.NoError(t, err)
	assert.Len(t, all.Posts, 3)
	assert.Equal(t, 1, all.TotalPages)
	assert.Equal(t, 1, all.CurrentPage)

	_, err = svc.ListPosts(9999, 1, 10, "recent", ada.ID)
	assert.ErrorIs(t, err, util.ErrSubjectNotFound)
}

func TestListPostsPopularOrdersByLikes(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestForumService(db)
	_, subject := seedCatalog(t, db)
	ada := seedUser(t, db, "ada", model.Student)
	ben := seedUser(t, db, "ben", model.Student)

	ctx := context.Background()
	quiet, err := svc.CreatePost(ctx, ada.ID, "Quiet", "no likes", subject.ID, nil)
	require.NoError(t, err)
	warm, err := svc.CreatePost(ctx, ada.ID, "Warm", "one like", subject.ID, nil)
	require.NoError(t, err)
	hot, err := svc.CreatePost(ctx, ben.ID, "Hot", "two likes", subject.ID, nil)
	require.NoError(t, err)

	_, err = svc.ToggleLike(hot.ID, ada.ID)
	require.NoError(t, err)
	_, err = svc.ToggleLike(hot.ID, ben.ID)
	require.NoError(t, err)
	_, err = svc.ToggleLike(warm.ID, ben.ID)
	require.NoError(t, err)
	_, err = svc.CreateReply(hot.ID, ada.ID, "Same question here")
	require.NoError(t, err)

	list, err := svc.ListPosts(subject.ID, 1, 10, "popular", ada.ID)
	require.NoError(t, err)
	require.Len(t, list.Posts, 3)

	assert.Equal(t, "Hot", list.Posts[0].Title)
	assert.Equal(t, 2, list.Posts[0].Likes)
	assert.Equal(t, 1, list.Posts[0].Replies)
	assert.True(t, list.Posts[0].Liked)

	assert.Equal(t, "Warm", list.Posts[1].Title)
	assert.Equal(t, 1, list.Posts[1].Likes)
	assert.False(t, list.Posts[1].Liked)

	assert.Equal(t, "Quiet", list.Posts[2].Title)
	assert.Equal(t, 0, list.Posts[2].Likes)
	assert.Equal(t, quiet.ID, list.Posts[2].ID)
}

func TestToggleLikeFlipsState(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestForumService(db)
	_, subject := seedCatalog(t, db)
	ada := seedUser(t, db, "ada", model.Student)

	post, err := svc.CreatePost(context.Background(), ada.ID, "Like me", "body", subject.ID, nil)
	require.NoError(t, err)

	liked, err := svc.ToggleLike(post.ID, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Post liked", liked.Message)
	assert.Equal(t, 1, liked.Likes)
	assert.Equal(t, post.ID, liked.PostID)

	unliked, err := svc.ToggleLike(post.ID, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Post unliked", unliked.Message)
	assert.Equal(t, 0, unliked.Likes)

	// The like row is gone for good, so liking again must not trip the
	// unique (post, user) index.
	again, err := svc.ToggleLike(post.ID, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Post liked", again.Message)
	assert.Equal(t, 1, again.Likes)

	_, err = svc.ToggleLike("00000000-0000-0000-0000-000000000000", ada.ID)
	assert.ErrorIs(t, err, util.ErrPostNotFound)
}

func TestRepliesRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestForumService(db)
	_, subject := seedCatalog(t, db)
	ada := seedUser(t, db, "ada", model.Student)
	ben := seedUser(t, db, "ben", model.Student)

	post, err := svc.CreatePost(context.Background(), ada.ID, "Help", "stuck on q3", subject.ID, nil)
	require.NoError(t, err)

	firstReply, err := svc.CreateReply(post.ID, ben.ID, "Check the options again")
	require.NoError(t, err)
	assert.NotZero(t, firstReply.ID)
	assert.Equal(t, "ben", firstReply.Author.Name)

	require.NoError(t, db.Model(&model.ForumReply{}).
		Where("id = ?", firstReply.ID).
		Update("created_at", time.Now().Add(-time.Minute)).Error)

	_, err = svc.CreateReply(post.ID, ada.ID, "Got it, thanks")
	require.NoError(t, err)

	replies, err := svc.ListReplies(post.ID)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, "Check the options again", replies[0].Content)
	assert.Equal(t, "Got it, thanks", replies[1].Content)
	assert.Equal(t, "ada", replies[1].Author.Name)

	_, err = svc.CreateReply("00000000-0000-0000-0000-000000000000", ada.ID, "lost")
	assert.ErrorIs(t, err, util.ErrPostNotFound)
	_, err = svc.ListReplies("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, util.ErrPostNotFound)
}
