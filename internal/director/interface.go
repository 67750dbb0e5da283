package director

import (
	"github.com/mauv0809/swiss-forum/internal/forum"
	"github.com/mauv0809/swiss-forum/internal/notifier"
	"github.com/mauv0809/swiss-forum/internal/tournament"
)

// Store defines the tournament operations required by the director.
type Store interface {
	tournament.TournamentStore
}

// Posts defines the forum operations required by the director.
type Posts interface {
	forum.PostStore
}

// Notifier defines the notification operations required by the director.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
