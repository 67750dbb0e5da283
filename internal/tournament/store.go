package tournament

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-forum/internal/database"
	"github.com/vmihailenco/msgpack/v5"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new TournamentStore.
func New(db *database.DB) TournamentStore {
	return &store{
		db:  db,
		now: time.Now,
	}
}

// RegisterPlayer adds a player to the current tournament. Names need not be unique.
func (s *store) RegisterPlayer(ctx context.Context, name string) (*Player, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`INSERT INTO players (name) VALUES (?) RETURNING id`), name).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}

	log.Info("Registered player", "id", id, "name", name)
	return &Player{ID: id, Name: name}, nil
}

// GetPlayer returns a player from any tournament.
func (s *store) GetPlayer(ctx context.Context, id int64) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, s.db.Rebind(`
		SELECT id, name, points, wins, losses, draws, bye, registration
		FROM players
		WHERE id = ?
	`), id)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("player %d: %w", id, ErrPlayerNotFound)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

// CountPlayers returns the number of players registered under tag.
func (s *store) CountPlayers(ctx context.Context, tag string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`SELECT COUNT(id) FROM players WHERE registration = ?`), tag).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func validateReport(r MatchReport) error {
	if r.Bye {
		if r.WinnerID != r.LoserID || r.Draw {
			return ErrInvalidBye
		}
		return nil
	}
	if r.WinnerID == r.LoserID {
		return ErrSelfMatch
	}
	return nil
}

// ReportMatch records the outcome of a single match in the current tournament
// and updates the players' tallies in the same transaction.
func (s *store) ReportMatch(ctx context.Context, report MatchReport) (*Match, error) {
	if err := validateReport(report); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	winner, err := s.currentPlayerTx(ctx, tx, report.WinnerID)
	if err != nil {
		return nil, err
	}
	if !report.Bye {
		if _, err := s.currentPlayerTx(ctx, tx, report.LoserID); err != nil {
			return nil, err
		}
	} else if winner.HadBye {
		return nil, fmt.Errorf("player %d: %w", winner.ID, ErrAlreadyHadBye)
	}

	match := &Match{
		Winner: report.WinnerID,
		Loser:  report.LoserID,
		Draw:   report.Draw,
		Bye:    report.Bye,
	}
	err = tx.QueryRowContext(ctx, s.db.Rebind(`
		INSERT INTO matches (winner, loser, draw, bye) VALUES (?, ?, ?, ?) RETURNING id
	`), match.Winner, match.Loser, match.Draw, match.Bye).Scan(&match.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}

	switch {
	case report.Bye:
		_, err = tx.ExecContext(ctx, s.db.Rebind(`
			UPDATE players SET points = points + ?, wins = wins + 1, bye = ? WHERE id = ?
		`), PointsBye, true, report.WinnerID)
	case report.Draw:
		_, err = tx.ExecContext(ctx, s.db.Rebind(`
			UPDATE players SET points = points + ?, draws = draws + 1 WHERE id IN (?, ?)
		`), PointsDraw, report.WinnerID, report.LoserID)
	default:
		_, err = tx.ExecContext(ctx, s.db.Rebind(`
			UPDATE players SET points = points + ?, wins = wins + 1 WHERE id = ?
		`), PointsWin, report.WinnerID)
		if err == nil {
			_, err = tx.ExecContext(ctx, s.db.Rebind(`
				UPDATE players SET losses = losses + 1 WHERE id = ?
			`), report.LoserID)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update player tallies: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match: %w", err)
	}

	log.Info("Reported match", "matchID", match.ID, "winner", match.Winner, "loser", match.Loser, "draw", match.Draw, "bye", match.Bye)
	return match, nil
}

// currentPlayerTx loads a player that belongs to the current tournament.
func (s *store) currentPlayerTx(ctx context.Context, q queryer, id int64) (*Player, error) {
	row := q.QueryRowContext(ctx, s.db.Rebind(`
		SELECT id, name, points, wins, losses, draws, bye, registration
		FROM players
		WHERE id = ? AND registration = ''
	`), id)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("player %d: %w", id, ErrPlayerNotFound)
		}
		return nil, fmt.Errorf("failed to load player %d: %w", id, err)
	}
	return p, nil
}

// PlayerStandings returns the ranked standings of the tournament tagged tag.
func (s *store) PlayerStandings(ctx context.Context, tag string) ([]Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.standings(ctx, s.db, tag)
}

// standings fetches the players and decisive matches in two queries and ranks
// them in memory.
func (s *store) standings(ctx context.Context, q queryer, tag string) ([]Standing, error) {
	players, err := s.listPlayers(ctx, q, tag)
	if err != nil {
		return nil, err
	}
	matches, err := s.listDecisiveMatches(ctx, q, tag)
	if err != nil {
		return nil, err
	}
	standings := Rank(players, matches)
	log.Debug("Computed standings", "tournament", tag, "players", len(players), "decisive_matches", len(matches))
	return standings, nil
}

// SwissPairings pairs the players of the tournament tagged tag for the next round.
func (s *store) SwissPairings(ctx context.Context, tag string) ([]Pairing, error) {
	standings, err := s.PlayerStandings(ctx, tag)
	if err != nil {
		return nil, err
	}
	pairings, err := Pair(standings)
	if err != nil {
		return nil, fmt.Errorf("failed to pair %d players: %w", len(standings), err)
	}
	return pairings, nil
}

func (s *store) listPlayers(ctx context.Context, q queryer, tag string) ([]Player, error) {
	rows, err := q.QueryContext(ctx, s.db.Rebind(`
		SELECT id, name, points, wins, losses, draws, bye, registration
		FROM players
		WHERE registration = ?
		ORDER BY points DESC, id ASC
	`), tag)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (s *store) listDecisiveMatches(ctx context.Context, q queryer, tag string) ([]Match, error) {
	rows, err := q.QueryContext(ctx, s.db.Rebind(`
		SELECT id, winner, loser, draw, bye, registration
		FROM matches
		WHERE registration = ? AND draw = ? AND bye = ?
	`), tag, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ID, &m.Winner, &m.Loser, &m.Draw, &m.Bye, &m.Tournament); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// scanPlayer is a helper function to scan a single player row.
func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	err := scanner.Scan(&p.ID, &p.Name, &p.Points, &p.Wins, &p.Losses, &p.Draws, &p.HadBye, &p.Tournament)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteMatches removes match records. An empty tag removes all of them.
func (s *store) DeleteMatches(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if tag == "" {
		_, err = s.db.ExecContext(ctx, `DELETE FROM matches`)
	} else {
		_, err = s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM matches WHERE registration = ?`), tag)
	}
	if err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	log.Info("Deleted matches", "tournament", tag)
	return nil
}

// DeletePlayers removes players, the matches they played and the archive
// record. An empty tag removes everything.
func (s *store) DeletePlayers(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	type statement struct {
		query string
		args  []any
	}
	stmts := []statement{
		{query: `DELETE FROM matches`},
		{query: `DELETE FROM players`},
		{query: `DELETE FROM tournaments`},
	}
	if tag != "" {
		stmts = []statement{
			{
				query: `DELETE FROM matches WHERE winner IN (SELECT id FROM players WHERE registration = ?)
					OR loser IN (SELECT id FROM players WHERE registration = ?)`,
				args: []any{tag, tag},
			},
			{query: `DELETE FROM players WHERE registration = ?`, args: []any{tag}},
			{query: `DELETE FROM tournaments WHERE tag = ?`, args: []any{tag}},
		}
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, s.db.Rebind(stmt.query), stmt.args...); err != nil {
			return fmt.Errorf("failed to delete players: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player deletion: %w", err)
	}
	log.Info("Deleted players", "tournament", tag)
	return nil
}

// CompleteTournament archives the current tournament under tag. The final
// standings are stored alongside, and the players and matches are re-tagged
// so that a new tournament can start.
func (s *store) CompleteTournament(ctx context.Context, tag string) (*Archive, error) {
	if strings.TrimSpace(tag) == "" {
		return nil, ErrInvalidTag
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, s.db.Rebind(`SELECT COUNT(tag) FROM tournaments WHERE tag = ?`), tag).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check tournament tag: %w", err)
	}
	if exists > 0 {
		return nil, fmt.Errorf("tournament %q: %w", tag, ErrTournamentExists)
	}

	standings, err := s.standings(ctx, tx, "")
	if err != nil {
		return nil, err
	}

	var matchCount int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(id) FROM matches WHERE registration = ''`).Scan(&matchCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}

	if _, err := tx.ExecContext(ctx, s.db.Rebind(`UPDATE players SET registration = ? WHERE registration = ''`), tag); err != nil {
		return nil, fmt.Errorf("failed to archive players: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.db.Rebind(`UPDATE matches SET registration = ? WHERE registration = ''`), tag); err != nil {
		return nil, fmt.Errorf("failed to archive matches: %w", err)
	}

	archive := &Archive{
		Tag:         tag,
		CompletedAt: s.now().UTC().Truncate(time.Second),
		PlayerCount: len(standings),
		MatchCount:  matchCount,
		Standings:   standings,
	}
	blob, err := msgpack.Marshal(archive.Standings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode standings: %w", err)
	}

	_, err = tx.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO tournaments (tag, completed_at, player_count, match_count, standings_blob)
		VALUES (?, ?, ?, ?, ?)
	`), archive.Tag, archive.CompletedAt.Unix(), archive.PlayerCount, archive.MatchCount, blob)
	if err != nil {
		return nil, fmt.Errorf("failed to insert archive: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit archive: %w", err)
	}

	log.Info("Completed tournament", "tournament", tag, "players", archive.PlayerCount, "matches", archive.MatchCount)
	return archive, nil
}

// GetArchive returns the archive record of a completed tournament.
func (s *store) GetArchive(ctx context.Context, tag string) (*Archive, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, s.db.Rebind(`
		SELECT tag, completed_at, player_count, match_count, standings_blob
		FROM tournaments
		WHERE tag = ?
	`), tag)
	archive, err := scanArchive(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tournament %q: %w", tag, ErrTournamentNotFound)
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return archive, nil
}

// ListArchives returns every completed tournament, most recent first.
func (s *store) ListArchives(ctx context.Context) ([]Archive, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT tag, completed_at, player_count, match_count, standings_blob
		FROM tournaments
		ORDER BY completed_at DESC, tag ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments: %w", err)
	}
	defer rows.Close()

	archives := []Archive{}
	for rows.Next() {
		archive, err := scanArchive(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		archives = append(archives, *archive)
	}
	return archives, rows.Err()
}

func scanArchive(scanner interface{ Scan(...any) error }) (*Archive, error) {
	var archive Archive
	var completedAt int64
	var blob []byte
	if err := scanner.Scan(&archive.Tag, &completedAt, &archive.PlayerCount, &archive.MatchCount, &blob); err != nil {
		return nil, err
	}
	archive.CompletedAt = time.Unix(completedAt, 0).UTC()
	archive.Standings = []Standing{}
	if len(blob) > 0 {
		if err := msgpack.Unmarshal(blob, &archive.Standings); err != nil {
			log.Error("Failed to unmarshal standings_blob", "error", err, "tournament", archive.Tag)
		}
	}
	return &archive, nil
}
