package forum

import (
	"context"
	"errors"
)

var ErrEmptyPost = errors.New("post content must not be empty")

// PostStore is the forum's storage.
type PostStore interface {
	// AddPost stores a new post and returns it.
	AddPost(ctx context.Context, content string) (*Post, error)
	// GetAllPosts returns every post, newest first.
	GetAllPosts(ctx context.Context) ([]Post, error)
	DeletePosts(ctx context.Context) error
}
