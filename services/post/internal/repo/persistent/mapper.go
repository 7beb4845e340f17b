package persistent

import (
	"melon-market/services/post/internal/entity"
	"melon-market/services/post/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:            m.ID,
		MemberID:      m.MemberID,
		Category:      m.Category,
		Title:         m.Title,
		Content:       m.Content,
		Price:         m.Price,
		Views:         m.Views,
		ProductStatus: entity.ProductStatus(m.ProductStatus),
		Visibility:    entity.Visibility(m.Visibility),
		PostedAt:      m.PostedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		Member:        ToMemberEntity(m.Member),
	}

	if len(m.Images) > 0 {
		post.Images = make([]entity.PostImage, len(m.Images))
		for i, img := range m.Images {
			post.Images[i] = ToPostImageEntity(&img)
		}
	}

	return post
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	post := &model.PostModel{
		ID:            e.ID,
		MemberID:      e.MemberID,
		Category:      e.Category,
		Title:         e.Title,
		Content:       e.Content,
		Price:         e.Price,
		Views:         e.Views,
		ProductStatus: string(e.ProductStatus),
		Visibility:    string(e.Visibility),
		PostedAt:      e.PostedAt,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}

	if len(e.Images) > 0 {
		post.Images = make([]model.PostImageModel, len(e.Images))
		for i, img := range e.Images {
			post.Images[i] = *ToPostImageModel(&img)
		}
	}

	return post
}

func ToPostImageEntity(m *model.PostImageModel) entity.PostImage {
	if m == nil {
		return entity.PostImage{}
	}

	return entity.PostImage{
		ID:        m.ID,
		PostID:    m.PostID,
		ImagePath: m.ImagePath,
		Order:     m.Order,
		CreatedAt: m.CreatedAt,
	}
}

func ToPostImageModel(e *entity.PostImage) *model.PostImageModel {
	if e == nil {
		return nil
	}

	return &model.PostImageModel{
		ID:        e.ID,
		PostID:    e.PostID,
		ImagePath: e.ImagePath,
		Order:     e.Order,
		CreatedAt: e.CreatedAt,
	}
}

func ToMemberEntity(m *model.MemberModel) *entity.Member {
	if m == nil {
		return nil
	}

	return &entity.Member{
		ID:           m.ID,
		Name:         m.Name,
		ProfileImage: m.ProfileImage,
		Address:      m.Address,
		CreatedAt:    m.CreatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		MemberID:  m.MemberID,
		PostID:    m.PostID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		Member:    ToMemberEntity(m.Member),
	}
}

func ToHeartEntity(m *model.HeartModel) *entity.Heart {
	if m == nil {
		return nil
	}

	return &entity.Heart{
		ID:        m.ID,
		MemberID:  m.MemberID,
		PostID:    m.PostID,
		CreatedAt: m.CreatedAt,
	}
}
