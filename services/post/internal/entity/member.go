package entity

import "time"

// Member is the read model of a post author. Account management lives
// outside this service; only the display fields travel with a post.
type Member struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ProfileImage string    `json:"profile_image"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

type Heart struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id"`
	PostID    string    `json:"post_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Member    *Member   `json:"-"`
}
