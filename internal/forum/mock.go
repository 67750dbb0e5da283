package forum

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ PostStore = (*Mock)(nil)

// Mock is a mock implementation of the PostStore interface for testing.
// Without AddPostFunc it keeps posts in memory.
type Mock struct {
	mu    sync.Mutex
	posts []Post

	AddPostFunc func(content string) (*Post, error)

	// Call records
	AddPostCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) AddPost(ctx context.Context, content string) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPostCalls = append(m.AddPostCalls, content)
	if m.AddPostFunc != nil {
		return m.AddPostFunc(content)
	}
	post := Post{ID: uuid.NewString(), Content: content, Time: time.Now().UTC()}
	m.posts = append([]Post{post}, m.posts...)
	return &post, nil
}

func (m *Mock) GetAllPosts(ctx context.Context) ([]Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Post, len(m.posts))
	copy(out, m.posts)
	return out, nil
}

func (m *Mock) DeletePosts(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = nil
	return nil
}
