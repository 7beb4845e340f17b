package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"melon-market/pkg/logger"
	"melon-market/services/post/internal/entity"
	"melon-market/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostUseCase is a mock implementation of PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) GetMainFeed(offset, limit int) ([]*usecase.FeedItem, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usecase.FeedItem), args.Error(1)
}

func (m *MockPostUseCase) GetPostDetail(postID string) (*usecase.PostDetail, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PostDetail), args.Error(1)
}

func (m *MockPostUseCase) BumpPost(postID string) error {
	args := m.Called(postID)
	return args.Error(0)
}

func (m *MockPostUseCase) ToggleHeart(postID, memberID string) (bool, error) {
	args := m.Called(postID, memberID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostUseCase) CreatePost(memberID string, input usecase.CreatePostInput, images []*multipart.FileHeader) (*entity.Post, error) {
	args := m.Called(memberID, input, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(postID, memberID string, input usecase.UpdatePostInput, images []*multipart.FileHeader) (*entity.Post, error) {
	args := m.Called(postID, memberID, input, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdateProductStatus(postID string, status entity.ProductStatus) error {
	args := m.Called(postID, status)
	return args.Error(0)
}

func (m *MockPostUseCase) UpdateVisibility(postID string, visibility entity.Visibility) error {
	args := m.Called(postID, visibility)
	return args.Error(0)
}

func (m *MockPostUseCase) DeletePost(postID, memberID string) error {
	args := m.Called(postID, memberID)
	return args.Error(0)
}

func (m *MockPostUseCase) AddComment(postID, memberID, content string) (*entity.Comment, error) {
	args := m.Called(postID, memberID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockPostUseCase) DeleteComment(commentID, memberID string) error {
	args := m.Called(commentID, memberID)
	return args.Error(0)
}

func (m *MockPostUseCase) IncrementView(postID string) error {
	args := m.Called(postID)
	return args.Error(0)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func asUser(userID string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		handler(c)
	}
}

func TestNewPostHandler(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	assert.NotNil(t, handler)
}

func TestGetMainFeed_Defaults(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.GET("/posts", handler.GetMainFeed)

	items := []*usecase.FeedItem{
		{ID: "post-1", Title: "Bike", Price: 15000, PostedAt: time.Now()},
		{ID: "post-2", Title: "Sofa", Price: 80000, PostedAt: time.Now().Add(-time.Hour)},
	}
	mockUseCase.On("GetMainFeed", 0, 20).Return(items, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["count"])
	posts := response["posts"].([]interface{})
	assert.Equal(t, 2, len(posts))

	mockUseCase.AssertExpectations(t)
}

func TestGetMainFeed_Pagination(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.GET("/posts", handler.GetMainFeed)

	mockUseCase.On("GetMainFeed", 40, 10).Return([]*usecase.FeedItem{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?offset=40&limit=10", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetMainFeed_InvalidParamsFallBack(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.GET("/posts", handler.GetMainFeed)

	// limit above the cap and a negative offset fall back to defaults
	mockUseCase.On("GetMainFeed", 0, 20).Return([]*usecase.FeedItem{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?offset=-5&limit=500", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetPostDetail_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.GET("/posts/:id", asUser("member-1", handler.GetPostDetail))

	detail := &usecase.PostDetail{
		ID:           "post-123",
		Title:        "Bike",
		Images:       []string{"a.jpg", "b.jpg"},
		Price:        15000,
		HeartCount:   3,
		CommentCount: 1,
	}
	mockUseCase.On("GetPostDetail", "post-123").Return(detail, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-123", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Bike", response["title"])
	assert.Equal(t, float64(3), response["heart_count"])

	mockUseCase.AssertExpectations(t)
}

func TestGetPostDetail_NotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.GET("/posts/:id", handler.GetPostDetail)

	mockUseCase.On("GetPostDetail", "post-missing").Return(nil, entity.ErrPostNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestToggleHeart_Heart(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.POST("/posts/:id/heart", asUser("member-1", handler.ToggleHeart))

	mockUseCase.On("ToggleHeart", "post-123", "member-1").Return(true, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/heart", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Post hearted", response["message"])
	assert.Equal(t, true, response["hearted"])

	mockUseCase.AssertExpectations(t)
}

func TestToggleHeart_Unheart(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.POST("/posts/:id/heart", asUser("member-1", handler.ToggleHeart))

	mockUseCase.On("ToggleHeart", "post-123", "member-1").Return(false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/heart", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Heart removed", response["message"])
	assert.Equal(t, false, response["hearted"])

	mockUseCase.AssertExpectations(t)
}

func TestToggleHeart_PostNotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.POST("/posts/:id/heart", asUser("member-1", handler.ToggleHeart))

	mockUseCase.On("ToggleHeart", "post-missing", "member-1").Return(false, entity.ErrPostNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-missing/heart", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreatePost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.POST("/posts", asUser("member-1", handler.CreatePost))

	mockPost := &entity.Post{
		ID:            "post-123",
		MemberID:      "member-1",
		Category:      "Sports",
		Title:         "Bike",
		Price:         15000,
		ProductStatus: entity.ProductForSale,
		Visibility:    entity.VisibilityVisible,
	}
	input := usecase.CreatePostInput{Category: "Sports", Title: "Bike", Price: 15000}
	mockUseCase.On("CreatePost", "member-1", input, mock.Anything).Return(mockPost, nil)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("title", "Bike")
	writer.WriteField("category", "Sports")
	writer.WriteField("price", "15000")
	writer.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreatePost_MissingTitle(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.POST("/posts", asUser("member-1", handler.CreatePost))

	form := url.Values{}
	form.Set("category", "Sports")
	form.Set("price", "15000")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePost_Forbidden(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.PUT("/posts/:id", asUser("member-2", handler.UpdatePost))

	mockUseCase.On("UpdatePost", "post-123", "member-2", mock.Anything, mock.Anything).
		Return(nil, entity.ErrNotOwner)

	form := url.Values{}
	form.Set("title", "Bike")
	form.Set("category", "Sports")
	form.Set("price", "15000")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/posts/post-123", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUpdatePost_KeepImages(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.PUT("/posts/:id", asUser("member-1", handler.UpdatePost))

	mockPost := &entity.Post{ID: "post-123", MemberID: "member-1", Title: "Bike"}
	mockUseCase.On("UpdatePost", "post-123", "member-1",
		mock.MatchedBy(func(input usecase.UpdatePostInput) bool {
			return len(input.KeepImagePaths) == 1 && input.KeepImagePaths[0] == "b.jpg"
		}), mock.Anything).Return(mockPost, nil)

	form := url.Values{}
	form.Set("title", "Bike")
	form.Set("category", "Sports")
	form.Set("price", "14000")
	form.Add("keep_images", "b.jpg")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/posts/post-123", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeletePost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.DELETE("/posts/:id", asUser("member-1", handler.DeletePost))

	mockUseCase.On("DeletePost", "post-123", "member-1").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/post-123", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeletePost_Forbidden(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.DELETE("/posts/:id", asUser("member-2", handler.DeletePost))

	mockUseCase.On("DeletePost", "post-123", "member-2").Return(entity.ErrNotOwner)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/post-123", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestBumpPost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.POST("/posts/:id/bump", asUser("member-1", handler.BumpPost))

	mockUseCase.On("BumpPost", "post-123").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/bump", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUpdateProductStatus_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.PATCH("/posts/:id/product-status", asUser("member-1", handler.UpdateProductStatus))

	mockUseCase.On("UpdateProductStatus", "post-123", entity.ProductReserved).Return(nil)

	body := `{"product_status":"reserved"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/posts/post-123/product-status", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUpdateProductStatus_InvalidStatus(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.PATCH("/posts/:id/product-status", asUser("member-1", handler.UpdateProductStatus))

	body := `{"product_status":"sold_out"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/posts/post-123/product-status", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "UpdateProductStatus", mock.Anything, mock.Anything)
}

func TestUpdateVisibility_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.PATCH("/posts/:id/visibility", asUser("member-1", handler.UpdateVisibility))

	mockUseCase.On("UpdateVisibility", "post-123", entity.VisibilityHidden).Return(nil)

	body := `{"visibility":"hidden"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/posts/post-123/visibility", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUpdateVisibility_Invalid(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.PATCH("/posts/:id/visibility", asUser("member-1", handler.UpdateVisibility))

	body := `{"visibility":"private"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/posts/post-123/visibility", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "UpdateVisibility", mock.Anything, mock.Anything)
}

func TestAddComment_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.POST("/posts/:id/comments", asUser("member-2", handler.AddComment))

	mockComment := &entity.Comment{
		ID:       "comment-1",
		MemberID: "member-2",
		PostID:   "post-123",
		Content:  "Is this still available?",
	}
	mockUseCase.On("AddComment", "post-123", "member-2", "Is this still available?").Return(mockComment, nil)

	body := `{"content":"Is this still available?"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/comments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestAddComment_MissingContent(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.POST("/posts/:id/comments", asUser("member-2", handler.AddComment))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/comments", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteComment_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.DELETE("/comments/:id", asUser("member-2", handler.DeleteComment))

	mockUseCase.On("DeleteComment", "comment-1", "member-2").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/comments/comment-1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeleteComment_NotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	logger := logger.New()
	handler := NewPostHandler(mockUseCase, nil, logger)

	router := setupTestRouter()
	router.DELETE("/comments/:id", asUser("member-2", handler.DeleteComment))

	mockUseCase.On("DeleteComment", "comment-missing", "member-2").Return(entity.ErrCommentNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/comments/comment-missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}
