package entities

import "time"

// PostAuthor is the public author info attached to a post.
type PostAuthor struct {
	Name    string `json:"name"`
	State   string `json:"state,omitempty"`
	Village string `json:"village,omitempty"`
}

// CommunityPost is a farmer forum post. Posts that trip moderation stay
// hidden until reviewed.
type CommunityPost struct {
	ID        string     `json:"id" db:"id"`
	UserID    string     `json:"user_id" db:"user_id"`
	Title     string     `json:"title" db:"title"`
	Body      string     `json:"body" db:"body"`
	Tags      []string   `json:"tags" db:"tags"`
	Moderated bool       `json:"moderated" db:"moderated"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	Author    PostAuthor `json:"author"`
}

// TagCount is a tag with its usage count.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
