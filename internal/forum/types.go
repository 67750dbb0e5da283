package forum

import (
	"sync"
	"time"

	"github.com/mauv0809/swiss-forum/internal/database"
)

// store handles database operations for the forum.
type store struct {
	db  *database.DB
	mu  sync.RWMutex
	now func() time.Time
}

// Post is a single forum message.
type Post struct {
	ID      string    `json:"id"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}
