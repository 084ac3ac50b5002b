package controller

import (
	"net/http"

	"cbt_backend/internal/model"
	"cbt_backend/internal/service"
	"cbt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NewsController struct {
	NewsService *service.NewsService
}

func NewNewsController(newsService *service.NewsService) *NewsController {
	return &NewsController{
		NewsService: newsService,
	}
}

// NewsRequest is the create payload for a news item.
// swagger:model NewsRequest
type NewsRequest struct {
	Title    string  `json:"title" binding:"required,max=500"`
	Content  string  `json:"content" binding:"required"`
	ImageURL *string `json:"image_url"`
}

// CreateNews godoc
// @Summary Publish a news item
// @Tags news
// @Accept json
// @Produce json
// @Param body body NewsRequest true "News item"
// @Success 201 {object} model.News
// @Failure 400 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/news/ [post]
func (c *NewsController) CreateNews(ctx *gin.Context) {
	var req NewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	caller := util.GetUserFromContext(ctx)
	news, err := c.NewsService.Create(req.Title, req.Content, req.ImageURL, caller.ID)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, news)
}

// GetNewsList godoc
// @Summary List news, newest first
// @Tags news
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} model.News
// @Router /api/v1/news/ [get]
func (c *NewsController) GetNewsList(ctx *gin.Context) {
	skip := util.ParseIntDefault(ctx.Query("skip"), 0)
	limit := util.ParseIntDefault(ctx.Query("limit"), 100)

	news, err := c.NewsService.List(skip, limit)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, news)
}

// GetNews godoc
// @Summary Get one news item
// @Tags news
// @Produce json
// @Param id path int true "News id"
// @Success 200 {object} model.News
// @Failure 404 {object} util.ErrorResponse
// @Router /api/v1/news/{id} [get]
func (c *NewsController) GetNews(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	news, err := c.NewsService.Get(id)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, news)
}

// UpdateNews godoc
// @Summary Update a news item
// @Tags news
// @Accept json
// @Produce json
// @Param id path int true "News id"
// @Param body body model.NewsPatch true "Fields to change"
// @Success 200 {object} model.News
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/news/{id} [put]
func (c *NewsController) UpdateNews(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	var patch model.NewsPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	news, err := c.NewsService.Update(id, patch)
	if err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, news)
}

// DeleteNews godoc
// @Summary Delete a news item
// @Tags news
// @Produce json
// @Param id path int true "News id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} util.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/news/{id} [delete]
func (c *NewsController) DeleteNews(ctx *gin.Context) {
	id, err := util.ParseUintParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.NewsService.Delete(id); err != nil {
		util.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "News deleted successfully"})
}
