package entity

import (
	"fmt"
	"strings"
	"time"
)

type ProductStatus string

const (
	ProductForSale   ProductStatus = "for_sale"
	ProductReserved  ProductStatus = "reserved"
	ProductCompleted ProductStatus = "completed"
)

func ParseProductStatus(s string) (ProductStatus, error) {
	switch ProductStatus(s) {
	case ProductForSale, ProductReserved, ProductCompleted:
		return ProductStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown product status %q", ErrInvalidPost, s)
}

type Visibility string

const (
	VisibilityVisible Visibility = "visible"
	VisibilityHidden  Visibility = "hidden"
)

func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case VisibilityVisible, VisibilityHidden:
		return Visibility(s), nil
	}
	return "", fmt.Errorf("%w: unknown visibility %q", ErrInvalidPost, s)
}

type Post struct {
	ID            string        `json:"id"`
	MemberID      string        `json:"member_id"`
	Category      string        `json:"category"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Price         int           `json:"price"`
	Views         int           `json:"views"`
	ProductStatus ProductStatus `json:"product_status"`
	Visibility    Visibility    `json:"visibility"`
	PostedAt      time.Time     `json:"posted_at"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Images        []PostImage   `json:"images,omitempty"`
	Member        *Member       `json:"-"`
}

type PostImage struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	ImagePath string    `json:"image_path"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPost builds a listing with its defaults: for sale, visible, zero
// views, recency timestamp set to now.
func NewPost(memberID, category, title, content string, price int, imagePaths []string) (*Post, error) {
	if err := validatePostFields(memberID, category, title, price); err != nil {
		return nil, err
	}

	post := &Post{
		MemberID:      memberID,
		Category:      category,
		Title:         title,
		Content:       content,
		Price:         price,
		ProductStatus: ProductForSale,
		Visibility:    VisibilityVisible,
		PostedAt:      time.Now(),
	}
	post.Images = buildImages(imagePaths)
	return post, nil
}

// UpdateInfo overwrites the descriptive fields and replaces the image
// list. Statuses, views and the recency timestamp are untouched.
func (p *Post) UpdateInfo(category, title, content string, price int, imagePaths []string) error {
	if err := validatePostFields(p.MemberID, category, title, price); err != nil {
		return err
	}

	p.Category = category
	p.Title = title
	p.Content = content
	p.Price = price
	p.Images = buildImages(imagePaths)
	return nil
}

func (p *Post) UpdateProductStatus(status ProductStatus) {
	p.ProductStatus = status
}

func (p *Post) UpdateVisibility(v Visibility) {
	p.Visibility = v
}

// Bump resets the recency timestamp so the post resurfaces in the feed.
func (p *Post) Bump() {
	p.PostedAt = time.Now()
}

func (p *Post) ImagePaths() []string {
	paths := make([]string, len(p.Images))
	for i, img := range p.Images {
		paths[i] = img.ImagePath
	}
	return paths
}

func (p *Post) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].ImagePath
}

func validatePostFields(memberID, category, title string, price int) error {
	if strings.TrimSpace(memberID) == "" {
		return fmt.Errorf("%w: member is required", ErrInvalidPost)
	}
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidPost)
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidPost)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidPost)
	}
	return nil
}

func buildImages(paths []string) []PostImage {
	if len(paths) == 0 {
		return nil
	}
	images := make([]PostImage, len(paths))
	for i, path := range paths {
		images[i] = PostImage{ImagePath: path, Order: i}
	}
	return images
}
