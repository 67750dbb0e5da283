package notifier

import (
	"github.com/mauv0809/swiss-forum/internal/tournament"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For the next round
	SendPairings(tag string, pairings []tournament.Pairing, dryRun bool) error
	// For archived tournaments
	SendTournamentCompleted(archive *tournament.Archive, dryRun bool) error
}

// Nop is a Notifier that does nothing. It is used when no chat integration is configured.
type Nop struct{}

func (Nop) SendPairings(string, []tournament.Pairing, bool) error { return nil }

func (Nop) SendTournamentCompleted(*tournament.Archive, bool) error { return nil }
