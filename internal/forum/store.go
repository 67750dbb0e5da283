package forum

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/swiss-forum/internal/database"
)

// NewStore creates a new forum store
func NewStore(db *database.DB) PostStore {
	return &store{
		db:  db,
		now: time.Now,
	}
}

// AddPost stores content verbatim; it is always passed as a bound parameter.
func (s *store) AddPost(ctx context.Context, content string) (*Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyPost
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := &Post{
		ID:      uuid.New().String(),
		Content: content,
		Time:    s.now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`INSERT INTO posts (id, content, time) VALUES (?, ?, ?)`),
		post.ID,
		post.Content,
		post.Time.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add post: %w", err)
	}

	log.Info("Added post", "id", post.ID, "length", len(content))
	return post, nil
}

func (s *store) GetAllPosts(ctx context.Context) ([]Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, content, time FROM posts ORDER BY time DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var post Post
		var ts int64
		if err := rows.Scan(&post.ID, &post.Content, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		post.Time = time.Unix(0, ts).UTC()
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// DeletePosts removes every post.
func (s *store) DeletePosts(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return fmt.Errorf("failed to delete posts: %w", err)
	}
	log.Info("Deleted all posts")
	return nil
}
