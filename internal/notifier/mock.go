package notifier

import (
	"sync"

	"github.com/mauv0809/swiss-forum/internal/tournament"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendPairingsFunc            func(tag string, pairings []tournament.Pairing, dryRun bool) error
	SendTournamentCompletedFunc func(archive *tournament.Archive, dryRun bool) error

	// Call records
	SendPairingsCalls []struct {
		Tag      string
		Pairings []tournament.Pairing
		DryRun   bool
	}
	SendTournamentCompletedCalls []struct {
		Archive *tournament.Archive
		DryRun  bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendPairings(tag string, pairings []tournament.Pairing, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPairingsCalls = append(m.SendPairingsCalls, struct {
		Tag      string
		Pairings []tournament.Pairing
		DryRun   bool
	}{tag, pairings, dryRun})
	if m.SendPairingsFunc != nil {
		return m.SendPairingsFunc(tag, pairings, dryRun)
	}
	return nil
}

func (m *Mock) SendTournamentCompleted(archive *tournament.Archive, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTournamentCompletedCalls = append(m.SendTournamentCompletedCalls, struct {
		Archive *tournament.Archive
		DryRun  bool
	}{archive, dryRun})
	if m.SendTournamentCompletedFunc != nil {
		return m.SendTournamentCompletedFunc(archive, dryRun)
	}
	return nil
}
