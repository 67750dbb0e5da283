package tournament

import (
	"context"
	"sync"
)

var _ TournamentStore = (*Mock)(nil)

// Mock is a mock implementation of the TournamentStore interface for testing.
// It is safe for concurrent use. Unset funcs return zero values.
type Mock struct {
	mu sync.Mutex

	RegisterPlayerFunc     func(name string) (*Player, error)
	GetPlayerFunc          func(id int64) (*Player, error)
	CountPlayersFunc       func(tag string) (int, error)
	ReportMatchFunc        func(report MatchReport) (*Match, error)
	PlayerStandingsFunc    func(tag string) ([]Standing, error)
	SwissPairingsFunc      func(tag string) ([]Pairing, error)
	DeleteMatchesFunc      func(tag string) error
	DeletePlayersFunc      func(tag string) error
	CompleteTournamentFunc func(tag string) (*Archive, error)
	GetArchiveFunc         func(tag string) (*Archive, error)
	ListArchivesFunc       func() ([]Archive, error)

	// Call records
	RegisterPlayerCalls     []string
	ReportMatchCalls        []MatchReport
	SwissPairingsCalls      []string
	DeleteMatchesCalls      []string
	DeletePlayersCalls      []string
	CompleteTournamentCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) RegisterPlayer(ctx context.Context, name string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterPlayerCalls = append(m.RegisterPlayerCalls, name)
	if m.RegisterPlayerFunc != nil {
		return m.RegisterPlayerFunc(name)
	}
	return &Player{ID: int64(len(m.RegisterPlayerCalls)), Name: name}, nil
}

func (m *Mock) GetPlayer(ctx context.Context, id int64) (*Player, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(id)
	}
	return nil, ErrPlayerNotFound
}

func (m *Mock) CountPlayers(ctx context.Context, tag string) (int, error) {
	if m.CountPlayersFunc != nil {
		return m.CountPlayersFunc(tag)
	}
	return 0, nil
}

func (m *Mock) ReportMatch(ctx context.Context, report MatchReport) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportMatchCalls = append(m.ReportMatchCalls, report)
	if m.ReportMatchFunc != nil {
		return m.ReportMatchFunc(report)
	}
	return &Match{
		ID:     int64(len(m.ReportMatchCalls)),
		Winner: report.WinnerID,
		Loser:  report.LoserID,
		Draw:   report.Draw,
		Bye:    report.Bye,
	}, nil
}

func (m *Mock) PlayerStandings(ctx context.Context, tag string) ([]Standing, error) {
	if m.PlayerStandingsFunc != nil {
		return m.PlayerStandingsFunc(tag)
	}
	return []Standing{}, nil
}

func (m *Mock) SwissPairings(ctx context.Context, tag string) ([]Pairing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SwissPairingsCalls = append(m.SwissPairingsCalls, tag)
	if m.SwissPairingsFunc != nil {
		return m.SwissPairingsFunc(tag)
	}
	return []Pairing{}, nil
}

func (m *Mock) DeleteMatches(ctx context.Context, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteMatchesCalls = append(m.DeleteMatchesCalls, tag)
	if m.DeleteMatchesFunc != nil {
		return m.DeleteMatchesFunc(tag)
	}
	return nil
}

func (m *Mock) DeletePlayers(ctx context.Context, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePlayersCalls = append(m.DeletePlayersCalls, tag)
	if m.DeletePlayersFunc != nil {
		return m.DeletePlayersFunc(tag)
	}
	return nil
}

func (m *Mock) CompleteTournament(ctx context.Context, tag string) (*Archive, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteTournamentCalls = append(m.CompleteTournamentCalls, tag)
	if m.CompleteTournamentFunc != nil {
		return m.CompleteTournamentFunc(tag)
	}
	return &Archive{Tag: tag, Standings: []Standing{}}, nil
}

func (m *Mock) GetArchive(ctx context.Context, tag string) (*Archive, error) {
	if m.GetArchiveFunc != nil {
		return m.GetArchiveFunc(tag)
	}
	return nil, ErrTournamentNotFound
}

func (m *Mock) ListArchives(ctx context.Context) ([]Archive, error) {
	if m.ListArchivesFunc != nil {
		return m.ListArchivesFunc()
	}
	return []Archive{}, nil
}
