package controller

import (
	"net/http"

	"cbt_backend/internal/service"
	"cbt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ForumController struct {
	ForumService *service.ForumService
}

func NewForumController(forumService *service.ForumService) *ForumController {
	return &ForumController{
		ForumService: forumService,
	}
}

// ReplyRequest is the body of a new reply.
// swagger:model ReplyRequest
type ReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreatePost godoc
// @Summary Create a forum post
// @Description Multipart form with title, content, subject_id and an optional image
// @Tags forum
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Param subject_id formData int true "Subject id"
// @Param image formData file false "Image"
// @Success 201 {object} map[string]string
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/forum/posts [post]
func (c *ForumController) CreatePost(ctx *gin.Context) {
	title := ctx.PostForm("title")
	content := ctx.PostForm("content")
	subjectID := util.MustParseUint(ctx.PostForm("subject_id"))
	if title == "" || content == "" || subjectID == 0 {
		util.BadRequest(ctx, "title, content and subject_id are required")
		return
	}

	// The image is optional; FormFile errors just mean it was not sent.
	image, _ := ctx.FormFile("image")

	caller := util.GetUserFromContext(ctx)
	post, err := c.ForumService.CreatePost(ctx.Request.Context(), caller.ID, title, content, subjectID, image)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"id":      post.ID,
		"message": "Post created successfully",
	})
}

// GetPosts godoc
// @Summary List forum posts of a subject
// @Tags forum
// @Produce json
// @Param subject_id query int true "Subject id"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param sort query string false "Sort order: popular or recent" default(recent)
// @Success 200 {object} model.ForumPostList
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/forum/posts [get]
func (c *ForumController) GetPosts(ctx *gin.Context) {
	subjectID := util.MustParseUint(ctx.Query("subject_id"))
	if subjectID == 0 {
		util.BadRequest(ctx, "subject_id is required")
		return
	}
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 10)
	sort := ctx.DefaultQuery("sort", "recent")

	caller := util.GetUserFromContext(ctx)
	list, err := c.ForumService.ListPosts(subjectID, page, limit, sort, caller.ID)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// ToggleLike godoc
// @Summary Like or unlike a post
// @Tags forum
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} model.ForumLikeResult
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/forum/posts/{id}/like [post]
func (c *ForumController) ToggleLike(ctx *gin.Context) {
	postID := ctx.Param("id")

	caller := util.GetUserFromContext(ctx)
	result, err := c.ForumService.ToggleLike(postID, caller.ID)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// CreateReply godoc
// @Summary Reply to a post
// @Tags forum
// @Accept json
// @Produce json
// @Param id path string true "Post id"
// @Param body body ReplyRequest true "Reply"
// @Success 201 {object} model.ForumReplyView
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/forum/posts/{id}/replies [post]
func (c *ForumController) CreateReply(ctx *gin.Context) {
	postID := ctx.Param("id")

	var req ReplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	caller := util.GetUserFromContext(ctx)
	reply, err := c.ForumService.CreateReply(postID, caller.ID, req.Content)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, reply)
}

// GetReplies godoc
// @Summary List replies of a post
// @Tags forum
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {array} model.ForumReplyView
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/forum/posts/{id}/replies [get]
func (c *ForumController) GetReplies(ctx *gin.Context) {
	postID := ctx.Param("id")

	replies, err := c.ForumService.ListReplies(postID)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, replies)
}
