package http

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"melon-market/pkg/logger"
	"melon-market/services/post/internal/entity"
	"melon-market/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, redisClient *redis.Client, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		redisClient: redisClient,
		logger:      logger,
	}
}

type CreatePostRequest struct {
	Title    string `form:"title" binding:"required"`
	Category string `form:"category" binding:"required"`
	Content  string `form:"content"`
	Price    int    `form:"price" binding:"min=0"`
}

type UpdatePostRequest struct {
	Title      string   `form:"title" binding:"required"`
	Category   string   `form:"category" binding:"required"`
	Content    string   `form:"content"`
	Price      int      `form:"price" binding:"min=0"`
	KeepImages []string `form:"keep_images"`
}

// GetMainFeed godoc
// @Summary      Main feed
// @Description  Paginated listing of visible posts ordered by recency. Offset must be a multiple of limit.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        offset query int false "Offset (multiple of limit)"
// @Param        limit query int false "Page size (max 100)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) GetMainFeed(c *gin.Context) {
	limit := 20
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	items, err := h.postUseCase.GetMainFeed(offset, limit)
	if err != nil {
		h.logger.Error("Failed to fetch main feed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": items, "count": len(items), "offset": offset})
}

// GetPostDetail godoc
// @Summary      Post detail
// @Description  Full post content with images, counts and comments. Counts the view once per member.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  usecase.PostDetail
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPostDetail(c *gin.Context) {
	postID := c.Param("id")
	memberID := c.GetString("user_id")

	h.countView(c.Request.Context(), postID, memberID)

	detail, err := h.postUseCase.GetPostDetail(postID)
	if err != nil {
		h.respondError(c, err, "Failed to fetch post")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Create a marketplace listing with optional images. Failed image uploads are skipped.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Title"
// @Param        category formData string true "Category"
// @Param        content formData string false "Content"
// @Param        price formData int true "Price (won, non-negative)"
// @Param        images formData file false "Image files"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	memberID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, _ := c.MultipartForm()

	post, err := h.postUseCase.CreatePost(memberID, usecase.CreatePostInput{
		Category: req.Category,
		Title:    req.Title,
		Content:  req.Content,
		Price:    req.Price,
	}, formFiles(form))
	if err != nil {
		h.respondError(c, err, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Overwrite the descriptive fields. Previously attached images not listed in keep_images are purged; new uploads are appended.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        title formData string true "Title"
// @Param        category formData string true "Category"
// @Param        content formData string false "Content"
// @Param        price formData int true "Price"
// @Param        keep_images formData []string false "Image paths to retain"
// @Param        images formData file false "New image files"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("id")
	memberID := c.GetString("user_id")

	var req UpdatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, _ := c.MultipartForm()

	post, err := h.postUseCase.UpdatePost(postID, memberID, usecase.UpdatePostInput{
		Category:       req.Category,
		Title:          req.Title,
		Content:        req.Content,
		Price:          req.Price,
		KeepImagePaths: req.KeepImages,
	}, formFiles(form))
	if err != nil {
		h.respondError(c, err, "Failed to update post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Delete a listing. Image cleanup is best-effort; the record is always removed. Only the owner may delete.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("id")
	memberID := c.GetString("user_id")

	if err := h.postUseCase.DeletePost(postID, memberID); err != nil {
		h.respondError(c, err, "Failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// BumpPost godoc
// @Summary      Bump a post
// @Description  Reset the recency timestamp so the listing resurfaces at the top of the feed.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/bump [post]
func (h *PostHandler) BumpPost(c *gin.Context) {
	postID := c.Param("id")

	if err := h.postUseCase.BumpPost(postID); err != nil {
		h.respondError(c, err, "Failed to bump post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post bumped"})
}

// ToggleHeart godoc
// @Summary      Heart a post
// @Description  Toggle the caller's heart on a post. First call hearts, second call un-hearts.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/heart [post]
func (h *PostHandler) ToggleHeart(c *gin.Context) {
	postID := c.Param("id")
	memberID := c.GetString("user_id")

	hearted, err := h.postUseCase.ToggleHeart(postID, memberID)
	if err != nil {
		h.respondError(c, err, "Failed to toggle heart")
		return
	}

	message := "Post hearted"
	if !hearted {
		message = "Heart removed"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "hearted": hearted})
}

// UpdateProductStatus godoc
// @Summary      Update product status
// @Description  Set the sale lifecycle of the listed item. Every status is reachable from every other.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body object true "Status" SchemaExample({"product_status":"reserved"})
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/product-status [patch]
func (h *PostHandler) UpdateProductStatus(c *gin.Context) {
	postID := c.Param("id")

	var req struct {
		ProductStatus string `json:"product_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := entity.ParseProductStatus(req.ProductStatus)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.postUseCase.UpdateProductStatus(postID, status); err != nil {
		h.respondError(c, err, "Failed to update product status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product status updated"})
}

// UpdateVisibility godoc
// @Summary      Update visibility
// @Description  Show or hide a listing, independent of its sale status.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body object true "Visibility" SchemaExample({"visibility":"hidden"})
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/visibility [patch]
func (h *PostHandler) UpdateVisibility(c *gin.Context) {
	postID := c.Param("id")

	var req struct {
		Visibility string `json:"visibility" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visibility, err := entity.ParseVisibility(req.Visibility)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.postUseCase.UpdateVisibility(postID, visibility); err != nil {
		h.respondError(c, err, "Failed to update visibility")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Visibility updated"})
}

// AddComment godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body object true "Comment" SchemaExample({"content":"Is this still available?"})
// @Success      201  {object}  entity.Comment
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/comments [post]
func (h *PostHandler) AddComment(c *gin.Context) {
	postID := c.Param("id")
	memberID := c.GetString("user_id")

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.postUseCase.AddComment(postID, memberID, req.Content)
	if err != nil {
		h.respondError(c, err, "Failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Remove a comment. Only its author may delete it.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *PostHandler) DeleteComment(c *gin.Context) {
	commentID := c.Param("id")
	memberID := c.GetString("user_id")

	if err := h.postUseCase.DeleteComment(commentID, memberID); err != nil {
		h.respondError(c, err, "Failed to delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// countView bumps the view counter once per member and post, deduped in
// redis. Skipped silently when redis is absent (tests).
func (h *PostHandler) countView(ctx context.Context, postID, memberID string) {
	if h.redisClient == nil || memberID == "" {
		return
	}

	viewKey := fmt.Sprintf("post_viewed:%s:%s", postID, memberID)
	set, err := h.redisClient.SetNX(ctx, viewKey, "1", 365*24*time.Hour).Result()
	if err != nil {
		h.logger.Warn("Failed to set view key in redis: %v", err)
		return
	}
	if set {
		if err := h.postUseCase.IncrementView(postID); err != nil {
			h.logger.Warn("Failed to increment views for post %s: %v", postID, err)
		}
	}
}

func formFiles(form *multipart.Form) []*multipart.FileHeader {
	if form == nil {
		return nil
	}
	return form.File["images"]
}

func (h *PostHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, entity.ErrPostNotFound), errors.Is(err, entity.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrInvalidPost):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		h.logger.Error("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
