package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"celeste-saves/internal/save"
	"celeste-saves/internal/textutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS save_snapshots (
	id                  BIGSERIAL PRIMARY KEY,
	fingerprint         TEXT NOT NULL UNIQUE,
	save_path           TEXT NOT NULL,
	version             TEXT NOT NULL,
	player_name         TEXT NOT NULL,
	cheat_mode          BOOLEAN NOT NULL,
	assist_mode         BOOLEAN NOT NULL,
	variant_mode        BOOLEAN NOT NULL,
	strawberries        INTEGER NOT NULL,
	golden_strawberries INTEGER NOT NULL,
	deaths              INTEGER NOT NULL,
	jumps               INTEGER NOT NULL,
	dashes              INTEGER NOT NULL,
	wall_jumps          INTEGER NOT NULL,
	recorded_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS save_sides (
	snapshot_id  BIGINT NOT NULL REFERENCES save_snapshots(id) ON DELETE CASCADE,
	area         TEXT NOT NULL,
	side         TEXT NOT NULL,
	strawberries INTEGER NOT NULL,
	deaths       INTEGER NOT NULL,
	heart_gem    BOOLEAN NOT NULL,
	completed    BOOLEAN NOT NULL,
	PRIMARY KEY (snapshot_id, area, side)
);
`

const insertSnapshot = `
INSERT INTO save_snapshots (
	fingerprint, save_path, version, player_name,
	cheat_mode, assist_mode, variant_mode,
	strawberries, golden_strawberries, deaths, jumps, dashes, wall_jumps
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (fingerprint) DO NOTHING
RETURNING id`

const insertSide = `
INSERT INTO save_sides (snapshot_id, area, side, strawberries, deaths, heart_gem, completed)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const listSnapshots = `
SELECT id, save_path, player_name, version, strawberries, golden_strawberries, deaths, recorded_at
FROM save_snapshots
ORDER BY recorded_at DESC, id DESC
LIMIT $1`

// Snapshot is a recorded summary header.
type Snapshot struct {
	ID                 int64
	SavePath           string
	PlayerName         string
	Version            string
	Strawberries       int
	GoldenStrawberries int
	Deaths             int
	RecordedAt         time.Time
}

// SideRow is one side of one area, flattened for storage.
type SideRow struct {
	Area         string
	Side         string
	Strawberries int
	Deaths       int
	HeartGem     bool
	Completed    bool
}

// Store keeps a history of save summaries in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new history store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the history tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create history schema: %w", err)
	}
	log.Debug().Msg("History schema ensured")
	return nil
}

// Record stores a summary unless an identical one was already recorded.
// It reports whether a new snapshot was written.
func (s *Store) Record(ctx context.Context, savePath string, summary *save.Summary) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin history tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, insertSnapshot,
		Fingerprint(savePath, summary), savePath, summary.Version, summary.PlayerName,
		summary.CheatMode, summary.AssistMode, summary.VariantMode,
		summary.Strawberries, summary.GoldenStrawberries, summary.Deaths,
		summary.Jumps, summary.Dashes, summary.WallJumps,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debug().Str("path", savePath).Msg("Snapshot already recorded")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert snapshot: %w", err)
	}

	batch := &pgx.Batch{}
	for _, row := range SideRows(summary) {
		batch.Queue(insertSide, id, row.Area, row.Side, row.Strawberries, row.Deaths, row.HeartGem, row.Completed)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return false, fmt.Errorf("insert sides: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit snapshot: %w", err)
	}

	log.Info().Int64("id", id).Str("path", savePath).Str("player", summary.PlayerName).Msg("Recorded snapshot")
	return true, nil
}

// List returns the most recent snapshots, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit < 1 {
		limit = 1
	}

	rows, err := s.pool.Query(ctx, listSnapshots, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(
			&snap.ID, &snap.SavePath, &snap.PlayerName, &snap.Version,
			&snap.Strawberries, &snap.GoldenStrawberries, &snap.Deaths, &snap.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}

	return snapshots, nil
}

// SideRows flattens every area and side of a summary, in chapter then side
// order.
func SideRows(summary *save.Summary) []SideRow {
	rows := make([]SideRow, 0, save.AreaCount*save.SideCount)
	for _, entry := range summary.Progress.Areas() {
		for _, side := range save.AllSides() {
			p := entry.Progress.Side(side)
			rows = append(rows, SideRow{
				Area:         entry.Area.String(),
				Side:         side.String(),
				Strawberries: p.Strawberries,
				Deaths:       p.Deaths,
				HeartGem:     p.HeartGem,
				Completed:    p.Completed,
			})
		}
	}
	return rows
}

// Fingerprint identifies a summary by the save it came from and its content.
func Fingerprint(savePath string, summary *save.Summary) string {
	return textutil.Hash(savePath + "\x00" + fmt.Sprintf("%+v", *summary))
}
