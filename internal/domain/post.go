package domain

import "time"

// Comment is owned by exactly one Post.
type Comment struct {
	ID        CommentID `json:"id"`
	AuthorID  UserID    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}

// Post is an entry in the content store. Comments are kept in insertion order.
type Post struct {
	ID        PostID    `json:"id"`
	AuthorID  UserID    `json:"user_id"`
	Content   string    `json:"content"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"timestamp"`
	Likes     UserSet   `json:"likes"`
	Comments  []Comment `json:"comments"`
	Tags      []string  `json:"tags"`
}

// Clone returns a deep copy of the post.
func (p *Post) Clone() Post {
	c := *p
	c.Likes = p.Likes.Clone()
	c.Comments = append([]Comment(nil), p.Comments...)
	c.Tags = append([]string(nil), p.Tags...)
	if p.Image != nil {
		img := *p.Image
		c.Image = &img
	}
	return c
}

// CreatePostRequest is the compose payload.
type CreatePostRequest struct {
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Image   *string  `json:"image"`
}

// AddCommentRequest is the comment payload.
type AddCommentRequest struct {
	Content string `json:"content"`
}

// CommentResponse is a comment as rendered to a viewer.
type CommentResponse struct {
	Comment
	Age string `json:"age"`
}

// PostResponse is a post as rendered to a viewer.
type PostResponse struct {
	ID            PostID            `json:"id"`
	AuthorID      UserID            `json:"user_id"`
	Content       string            `json:"content"`
	Image         *string           `json:"image,omitempty"`
	CreatedAt     time.Time         `json:"timestamp"`
	Age           string            `json:"age"`
	Likes         []UserID          `json:"likes"`
	LikesCount    int               `json:"likes_count"`
	Liked         bool              `json:"liked"`
	Comments      []CommentResponse `json:"comments"`
	CommentsCount int               `json:"comments_count"`
	Tags          []string          `json:"tags"`
}
