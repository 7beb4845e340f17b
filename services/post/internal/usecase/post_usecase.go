package usecase

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"melon-market/pkg/logger"
	"melon-market/services/post/internal/entity"
	"melon-market/services/post/internal/repo/persistent"

	"github.com/google/uuid"
)

// ImageStore is the external blob store posts keep their images in.
// Satisfied by *s3.Client.
type ImageStore interface {
	UploadFile(key string, file multipart.File, contentType string) (string, error)
	DeleteFile(path string) error
}

// NotificationPublisher pushes activity tasks to the notification queue.
// Satisfied by *queue.Client; may be nil when no broker is configured.
type NotificationPublisher interface {
	PublishNotificationTask(task map[string]interface{}) error
}

type PostUseCase interface {
	GetMainFeed(offset, limit int) ([]*FeedItem, error)
	GetPostDetail(postID string) (*PostDetail, error)
	BumpPost(postID string) error
	ToggleHeart(postID, memberID string) (bool, error)
	CreatePost(memberID string, input CreatePostInput, images []*multipart.FileHeader) (*entity.Post, error)
	UpdatePost(postID, memberID string, input UpdatePostInput, images []*multipart.FileHeader) (*entity.Post, error)
	UpdateProductStatus(postID string, status entity.ProductStatus) error
	UpdateVisibility(postID string, visibility entity.Visibility) error
	DeletePost(postID, memberID string) error
	AddComment(postID, memberID, content string) (*entity.Comment, error)
	DeleteComment(commentID, memberID string) error
	IncrementView(postID string) error
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	imageStore  ImageStore
	queueClient NotificationPublisher
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	imageStore ImageStore,
	queueClient NotificationPublisher,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		imageStore:  imageStore,
		queueClient: queueClient,
		logger:      logger,
	}
}

// GetMainFeed returns one summary per visible post, newest first. The
// caller passes offset as a multiple of limit; remainders are not
// validated here.
func (uc *postUseCase) GetMainFeed(offset, limit int) ([]*FeedItem, error) {
	posts, err := uc.postRepo.GetFeedPage(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed page: %w", err)
	}

	items := make([]*FeedItem, len(posts))
	for i, post := range posts {
		heartCount, err := uc.postRepo.GetHeartCount(post.ID)
		if err != nil {
			uc.logger.Warn("Failed to count hearts for post %s: %v", post.ID, err)
		}
		commentCount, err := uc.postRepo.GetCommentCount(post.ID)
		if err != nil {
			uc.logger.Warn("Failed to count comments for post %s: %v", post.ID, err)
		}

		item := &FeedItem{
			ID:           post.ID,
			Title:        post.Title,
			FirstImage:   post.FirstImage(),
			Price:        post.Price,
			PostedAt:     post.PostedAt,
			HeartCount:   heartCount,
			CommentCount: commentCount,
		}
		if post.Member != nil {
			item.MemberName = post.Member.Name
			item.ProfileImage = post.Member.ProfileImage
			item.Address = post.Member.Address
		}
		items[i] = item
	}
	return items, nil
}

func (uc *postUseCase) GetPostDetail(postID string) (*PostDetail, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	heartCount, err := uc.postRepo.GetHeartCount(postID)
	if err != nil {
		uc.logger.Warn("Failed to count hearts for post %s: %v", postID, err)
	}
	commentCount, err := uc.postRepo.GetCommentCount(postID)
	if err != nil {
		uc.logger.Warn("Failed to count comments for post %s: %v", postID, err)
	}

	comments, err := uc.postRepo.GetComments(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}

	detail := &PostDetail{
		ID:            post.ID,
		Title:         post.Title,
		Content:       post.Content,
		Category:      post.Category,
		Images:        post.ImagePaths(),
		Price:         post.Price,
		Views:         post.Views,
		ProductStatus: string(post.ProductStatus),
		Visibility:    string(post.Visibility),
		PostedAt:      post.PostedAt,
		HeartCount:    heartCount,
		CommentCount:  commentCount,
		Comments:      make([]CommentItem, len(comments)),
	}
	if post.Member != nil {
		detail.MemberName = post.Member.Name
		detail.ProfileImage = post.Member.ProfileImage
		detail.Address = post.Member.Address
	}
	for i, comment := range comments {
		item := CommentItem{
			ID:        comment.ID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		}
		if comment.Member != nil {
			item.MemberName = comment.Member.Name
			item.ProfileImage = comment.Member.ProfileImage
		}
		detail.Comments[i] = item
	}
	return detail, nil
}

func (uc *postUseCase) BumpPost(postID string) error {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return err
	}

	post.Bump()
	return uc.postRepo.Bump(post.ID, post.PostedAt)
}

// ToggleHeart likes the post when the member has no heart on it and
// unlikes otherwise. The repository performs the toggle as one atomic
// conditional write.
func (uc *postUseCase) ToggleHeart(postID, memberID string) (bool, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return false, err
	}

	hearted, err := uc.postRepo.ToggleHeart(memberID, postID)
	if err != nil {
		return false, err
	}

	if hearted && post.MemberID != memberID {
		uc.publishActivity(map[string]interface{}{
			"type":      "heart",
			"member_id": post.MemberID,
			"actor_id":  memberID,
			"post_id":   postID,
			"priority":  3,
		})
	}
	return hearted, nil
}

func (uc *postUseCase) CreatePost(memberID string, input CreatePostInput, images []*multipart.FileHeader) (*entity.Post, error) {
	imagePaths := uc.uploadImages(memberID, images)

	post, err := entity.NewPost(memberID, input.Category, input.Title, input.Content, input.Price, imagePaths)
	if err != nil {
		return nil, err
	}

	if err := uc.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.publishActivity(map[string]interface{}{
		"type":      "new_post",
		"member_id": memberID,
		"post_id":   post.ID,
		"category":  post.Category,
		"priority":  5,
	})
	return post, nil
}

// UpdatePost overwrites the descriptive fields, uploads any new images
// and reconciles the image set: previously attached paths that are
// neither kept nor re-uploaded are purged from the image store.
func (uc *postUseCase) UpdatePost(postID, memberID string, input UpdatePostInput, images []*multipart.FileHeader) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.MemberID != memberID {
		return nil, entity.ErrNotOwner
	}

	oldPaths := post.ImagePaths()

	kept := make([]string, 0, len(input.KeepImagePaths))
	for _, path := range input.KeepImagePaths {
		if containsPath(oldPaths, path) {
			kept = append(kept, path)
		}
	}
	newPaths := append(kept, uc.uploadImages(memberID, images)...)

	if err := post.UpdateInfo(input.Category, input.Title, input.Content, input.Price, newPaths); err != nil {
		return nil, err
	}

	if err := uc.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if err := uc.postRepo.ReplaceImages(post.ID, post.Images); err != nil {
		return nil, fmt.Errorf("failed to replace post images: %w", err)
	}

	for _, oldPath := range oldPaths {
		if containsPath(newPaths, oldPath) {
			continue
		}
		if err := uc.imageStore.DeleteFile(oldPath); err != nil {
			uc.logger.Error("Failed to delete image %s from store: %v", oldPath, err)
		}
	}

	return post, nil
}

func (uc *postUseCase) UpdateProductStatus(postID string, status entity.ProductStatus) error {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return err
	}

	post.UpdateProductStatus(status)
	return uc.postRepo.Update(post)
}

func (uc *postUseCase) UpdateVisibility(postID string, visibility entity.Visibility) error {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return err
	}

	post.UpdateVisibility(visibility)
	return uc.postRepo.Update(post)
}

// DeletePost purges the post's images best-effort and always removes
// the record; store failures are logged, never abort the deletion.
// Hearts, comments and image rows cascade with the post row.
func (uc *postUseCase) DeletePost(postID, memberID string) error {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if post.MemberID != memberID {
		return entity.ErrNotOwner
	}

	for _, image := range post.Images {
		if err := uc.imageStore.DeleteFile(image.ImagePath); err != nil {
			uc.logger.Error("Failed to delete image %s from store: %v", image.ImagePath, err)
		}
	}

	return uc.postRepo.Delete(postID)
}

func (uc *postUseCase) AddComment(postID, memberID, content string) (*entity.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", entity.ErrInvalidPost)
	}

	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		MemberID: memberID,
		PostID:   postID,
		Content:  content,
	}
	if err := uc.postRepo.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if post.MemberID != memberID {
		uc.publishActivity(map[string]interface{}{
			"type":      "comment",
			"member_id": post.MemberID,
			"actor_id":  memberID,
			"post_id":   postID,
			"priority":  3,
		})
	}
	return comment, nil
}

func (uc *postUseCase) DeleteComment(commentID, memberID string) error {
	comment, err := uc.postRepo.GetCommentByID(commentID)
	if err != nil {
		return err
	}
	if comment.MemberID != memberID {
		return entity.ErrNotOwner
	}
	return uc.postRepo.DeleteComment(commentID)
}

func (uc *postUseCase) IncrementView(postID string) error {
	return uc.postRepo.IncrementViews(postID)
}

// uploadImages pushes each file to the image store and returns the
// paths that made it. A failed upload is logged and skipped; the post
// keeps whatever succeeded.
func (uc *postUseCase) uploadImages(memberID string, images []*multipart.FileHeader) []string {
	var paths []string
	for _, file := range images {
		src, err := file.Open()
		if err != nil {
			uc.logger.Error("Failed to open uploaded file %s: %v", file.Filename, err)
			continue
		}

		key := fmt.Sprintf("posts/%s/%s%s", memberID, uuid.New().String(), filepath.Ext(file.Filename))
		contentType := file.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}

		path, err := uc.imageStore.UploadFile(key, src, contentType)
		src.Close()
		if err != nil {
			uc.logger.Error("Failed to upload image %s: %v", file.Filename, err)
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

func (uc *postUseCase) publishActivity(task map[string]interface{}) {
	if uc.queueClient == nil {
		return
	}
	go func() {
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Error("Failed to publish %v notification task: %v", task["type"], err)
		}
	}()
}

func containsPath(paths []string, path string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}
