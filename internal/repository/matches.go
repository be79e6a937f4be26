package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// MatchRecord summarizes one finished game.
type MatchRecord struct {
	PlayerA string
	PlayerB string
	Winner  string
	Turns   int
}

// MatchRepository stores finished matches and their narration logs so games
// can be audited and replayed.
type MatchRepository struct {
	db *DB
}

// NewMatchRepository creates a repository over the database.
func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// SaveMatch inserts a finished match with its full replay log and returns
// the match ID.
func (r *MatchRepository) SaveMatch(ctx context.Context, rec MatchRecord, replay []string) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin save match: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO matches (player_a, player_b, winner, turns) VALUES ($1, $2, $3, $4) RETURNING id`,
		rec.PlayerA, rec.PlayerB, rec.Winner, rec.Turns,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert match: %w", err)
	}

	for i, line := range replay {
		if _, err := tx.Exec(ctx,
			`INSERT INTO match_replays (match_id, seq, line) VALUES ($1, $2, $3)`,
			id, i, line,
		); err != nil {
			return 0, fmt.Errorf("insert replay line %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit save match: %w", err)
	}
	r.db.logger.Info("match saved",
		zap.Int64("match_id", id),
		zap.String("winner", rec.Winner),
		zap.Int("turns", rec.Turns),
	)
	return id, nil
}

// Replay loads the narration log of a stored match in order.
func (r *MatchRepository) Replay(ctx context.Context, matchID int64) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT line FROM match_replays WHERE match_id = $1 ORDER BY seq`, matchID)
	if err != nil {
		return nil, fmt.Errorf("query replay: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scan replay line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
