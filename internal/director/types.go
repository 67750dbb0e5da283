package director

import (
	"time"

	"github.com/mauv0809/swiss-forum/internal/metrics"
	"github.com/mauv0809/swiss-forum/internal/pubsub"
)

// Director runs tournament and forum operations and fans the results out to
// metrics, events and chat.
type Director struct {
	store    Store
	posts    Posts
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
}

// PlayerRegistered is the payload of pubsub.EventPlayerRegistered.
type PlayerRegistered struct {
	ID   int64  `msgpack:"id"`
	Name string `msgpack:"name"`
}

// MatchReported is the payload of pubsub.EventMatchReported.
type MatchReported struct {
	MatchID  int64  `msgpack:"match_id"`
	WinnerID int64  `msgpack:"winner_id"`
	LoserID  int64  `msgpack:"loser_id"`
	Kind     string `msgpack:"kind"`
}

// TournamentCompleted is the payload of pubsub.EventTournamentCompleted.
type TournamentCompleted struct {
	Tag         string    `msgpack:"tag"`
	CompletedAt time.Time `msgpack:"completed_at"`
	PlayerCount int       `msgpack:"player_count"`
	MatchCount  int       `msgpack:"match_count"`
	WinnerID    int64     `msgpack:"winner_id,omitempty"`
	WinnerName  string    `msgpack:"winner_name,omitempty"`
}

// PostAdded is the payload of pubsub.EventPostAdded.
type PostAdded struct {
	ID   string    `msgpack:"id"`
	Time time.Time `msgpack:"time"`
}
