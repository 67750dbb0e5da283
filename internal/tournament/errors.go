package tournament

import "errors"

var (
	ErrInvalidName        = errors.New("player name must not be empty")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrSelfMatch          = errors.New("a match needs two different players")
	ErrInvalidBye         = errors.New("a bye is reported with the same player as winner and loser and cannot be a draw")
	ErrAlreadyHadBye      = errors.New("player already received a bye in this tournament")
	ErrNoByeCandidate     = errors.New("odd number of players and every player already received a bye")
	ErrInvalidTag         = errors.New("tournament tag must not be empty")
	ErrTournamentExists   = errors.New("tournament tag already archived")
	ErrTournamentNotFound = errors.New("tournament not found")
)
