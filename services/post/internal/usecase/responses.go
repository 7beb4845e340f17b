package usecase

import "time"

// FeedItem is the summary projection shown on the main page, one per
// post in the recency-ordered feed.
type FeedItem struct {
	ID           string    `json:"id"`
	MemberName   string    `json:"member_name"`
	ProfileImage string    `json:"profile_image"`
	Title        string    `json:"title"`
	FirstImage   string    `json:"first_image"`
	Price        int       `json:"price"`
	PostedAt     time.Time `json:"posted_at"`
	Address      string    `json:"address"`
	HeartCount   int64     `json:"heart_count"`
	CommentCount int64     `json:"comment_count"`
}

type PostDetail struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Category      string        `json:"category"`
	MemberName    string        `json:"member_name"`
	ProfileImage  string        `json:"profile_image"`
	Images        []string      `json:"images"`
	Price         int           `json:"price"`
	Views         int           `json:"views"`
	ProductStatus string        `json:"product_status"`
	Visibility    string        `json:"visibility"`
	PostedAt      time.Time     `json:"posted_at"`
	Address       string        `json:"address"`
	HeartCount    int64         `json:"heart_count"`
	CommentCount  int64         `json:"comment_count"`
	Comments      []CommentItem `json:"comments"`
}

type CommentItem struct {
	ID           string    `json:"id"`
	MemberName   string    `json:"member_name"`
	ProfileImage string    `json:"profile_image"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreatePostInput struct {
	Category string
	Title    string
	Content  string
	Price    int
}

type UpdatePostInput struct {
	Category string
	Title    string
	Content  string
	Price    int
	// KeepImagePaths lists previously attached paths the member wants to
	// retain; everything else is purged from the image store.
	KeepImagePaths []string
}
