package tournament

import "context"

// TournamentStore defines the interface for interacting with tournament data.
// Operations that take a tag read the current tournament when the tag is empty,
// except the Delete operations, which clear every row when the tag is empty.
type TournamentStore interface {
	RegisterPlayer(ctx context.Context, name string) (*Player, error)
	GetPlayer(ctx context.Context, id int64) (*Player, error)
	CountPlayers(ctx context.Context, tag string) (int, error)
	ReportMatch(ctx context.Context, report MatchReport) (*Match, error)
	PlayerStandings(ctx context.Context, tag string) ([]Standing, error)
	SwissPairings(ctx context.Context, tag string) ([]Pairing, error)
	DeleteMatches(ctx context.Context, tag string) error
	DeletePlayers(ctx context.Context, tag string) error
	CompleteTournament(ctx context.Context, tag string) (*Archive, error)
	GetArchive(ctx context.Context, tag string) (*Archive, error)
	ListArchives(ctx context.Context) ([]Archive, error)
}
