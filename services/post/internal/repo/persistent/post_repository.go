package persistent

import (
	"errors"
	"fmt"
	"time"

	"melon-market/services/post/internal/entity"
	"melon-market/services/post/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	GetFeedPage(limit, offset int) ([]*entity.Post, error)
	Update(post *entity.Post) error
	ReplaceImages(postID string, images []entity.PostImage) error
	Delete(id string) error
	Bump(id string, postedAt time.Time) error
	IncrementViews(id string) error
	ToggleHeart(memberID, postID string) (bool, error)
	GetHeartCount(postID string) (int64, error)
	IsHearted(memberID, postID string) (bool, error)
	GetComments(postID string) ([]*entity.Comment, error)
	GetCommentCount(postID string) (int64, error)
	CreateComment(comment *entity.Comment) error
	GetCommentByID(id string) (*entity.Comment, error)
	DeleteComment(id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		images := postModel.Images
		postModel.Images = nil

		if err := tx.Create(postModel).Error; err != nil {
			return err
		}

		for i := range images {
			images[i].PostID = postModel.ID
			if images[i].ID == "" {
				images[i].ID = uuid.New().String()
			}
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		postModel.Images = images

		*post = *ToPostEntity(postModel)
		return nil
	})
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order(`post_images."order" ASC`)
	}).Preload("Member").Where("id = ?", id).First(&postModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrPostNotFound
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

// GetFeedPage returns visible posts ordered by descending recency
// timestamp. Offset is taken as given; the offset/limit contract is the
// caller's.
func (r *postRepository) GetFeedPage(limit, offset int) ([]*entity.Post, error) {
	var postModels []model.PostModel
	query := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order(`post_images."order" ASC`)
	}).Preload("Member").
		Where("visibility = ?", string(entity.VisibilityVisible)).
		Order("posted_at DESC")

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

// Update persists the post's own columns. Image rows are managed by
// ReplaceImages so a plain save never touches them.
func (r *postRepository) Update(post *entity.Post) error {
	postModel := ToPostModel(post)
	postModel.Images = nil
	return r.db.Save(postModel).Error
}

func (r *postRepository) ReplaceImages(postID string, images []entity.PostImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.PostImageModel{}).Error; err != nil {
			return err
		}
		for i := range images {
			imageModel := ToPostImageModel(&images[i])
			imageModel.ID = uuid.New().String()
			imageModel.PostID = postID
			imageModel.Order = i
			if err := tx.Create(imageModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the post row; hearts, comments and image rows go with
// it through the schema's ON DELETE CASCADE.
func (r *postRepository) Delete(id string) error {
	result := r.db.Delete(&model.PostModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) Bump(id string, postedAt time.Time) error {
	result := r.db.Model(&model.PostModel{}).Where("id = ?", id).UpdateColumn("posted_at", postedAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) IncrementViews(id string) error {
	return r.db.Model(&model.PostModel{}).Where("id = ?", id).
		UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{1}}).Error
}

// ToggleHeart is a single conditional write per direction: delete the
// heart if one exists, otherwise insert guarded by the unique index on
// (member_id, post_id). Returns whether the post is hearted afterwards.
func (r *postRepository) ToggleHeart(memberID, postID string) (bool, error) {
	hearted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("member_id = ? AND post_id = ?", memberID, postID).Delete(&model.HeartModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		heartModel := &model.HeartModel{
			ID:       uuid.New().String(),
			MemberID: memberID,
			PostID:   postID,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(heartModel).Error; err != nil {
			return err
		}
		hearted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle heart: %w", err)
	}
	return hearted, nil
}

func (r *postRepository) GetHeartCount(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.HeartModel{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *postRepository) IsHearted(memberID, postID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.HeartModel{}).Where("member_id = ? AND post_id = ?", memberID, postID).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) GetComments(postID string) ([]*entity.Comment, error) {
	var commentModels []model.CommentModel
	err := r.db.Preload("Member").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&commentModels).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = ToCommentEntity(&commentModels[i])
	}
	return comments, nil
}

func (r *postRepository) GetCommentCount(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.CommentModel{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *postRepository) CreateComment(comment *entity.Comment) error {
	commentModel := &model.CommentModel{
		ID:       uuid.New().String(),
		MemberID: comment.MemberID,
		PostID:   comment.PostID,
		Content:  comment.Content,
	}
	if err := r.db.Create(commentModel).Error; err != nil {
		return err
	}
	*comment = *ToCommentEntity(commentModel)
	return nil
}

func (r *postRepository) GetCommentByID(id string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	err := r.db.Where("id = ?", id).First(&commentModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrCommentNotFound
		}
		return nil, err
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *postRepository) DeleteComment(id string) error {
	result := r.db.Delete(&model.CommentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrCommentNotFound
	}
	return nil
}
