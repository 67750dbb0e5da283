package tournament

import (
	"sync"
	"time"

	"github.com/mauv0809/swiss-forum/internal/database"
)

// Points awarded per result.
const (
	PointsWin  = 2
	PointsDraw = 1
	PointsBye  = 2
)

// store handles all database operations for the tournament.
type store struct {
	db  *database.DB
	mu  sync.RWMutex
	now func() time.Time
}

// Player is a registered participant. An empty Tournament means the player
// belongs to the current, still open tournament.
type Player struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Points     int    `json:"points"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	Draws      int    `json:"draws"`
	HadBye     bool   `json:"had_bye"`
	Tournament string `json:"tournament,omitempty"`
}

// MatchesPlayed counts every recorded result, byes included.
func (p Player) MatchesPlayed() int {
	return p.Wins + p.Losses + p.Draws
}

// Match is a recorded result. For a draw Winner and Loser carry no order;
// for a bye they are the same player.
type Match struct {
	ID         int64  `json:"id"`
	Winner     int64  `json:"winner_id"`
	Loser      int64  `json:"loser_id"`
	Draw       bool   `json:"draw"`
	Bye        bool   `json:"bye"`
	Tournament string `json:"tournament,omitempty"`
}

// Decisive reports whether the match had a real winner and loser.
func (m Match) Decisive() bool {
	return !m.Draw && !m.Bye && m.Winner != m.Loser
}

// MatchReport is the input for recording a match.
type MatchReport struct {
	WinnerID int64 `json:"winner_id"`
	LoserID  int64 `json:"loser_id"`
	Draw     bool  `json:"draw"`
	Bye      bool  `json:"bye"`
}

// Standing is one ranked row. It is derived on every query and never stored.
type Standing struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Points        int    `json:"points"`
	MatchesPlayed int    `json:"matches_played"`
	HadBye        bool   `json:"had_bye"`
	TieBreak      int    `json:"tie_break"`
}

// Pairing is a proposed match for the next round. A bye pairs a player with
// themselves.
type Pairing struct {
	ID1   int64  `json:"id1"`
	Name1 string `json:"name1"`
	ID2   int64  `json:"id2"`
	Name2 string `json:"name2"`
}

func (p Pairing) IsBye() bool {
	return p.ID1 == p.ID2
}

// Archive describes a completed tournament together with its final standings.
type Archive struct {
	Tag         string     `json:"tag"`
	CompletedAt time.Time  `json:"completed_at"`
	PlayerCount int        `json:"player_count"`
	MatchCount  int        `json:"match_count"`
	Standings   []Standing `json:"standings"`
}
