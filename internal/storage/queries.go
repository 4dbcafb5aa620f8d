package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pable/injury-metrics/internal/model"
)

const dateLayout = "2006-01-02"

// DatasetExists returns true if a dataset with the given hash is already stored.
func (db *DB) DatasetExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM datasets WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertDataset inserts a dataset record. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertDataset(s model.DatasetSummary) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO datasets(hash, source, loaded_at, rows, players, clubs, date_min, date_max, skipped, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Hash, s.Source, s.LoadedAt, s.Rows, s.Players, s.Clubs,
		s.DateMin, s.DateMax, s.Skipped, s.Warnings,
	)
	return err
}

// InsertEvents bulk-inserts enriched events for a dataset in a transaction,
// preserving row order via row_idx.
func (db *DB) InsertEvents(hash string, events []model.EnrichedEvent) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO events(
			dataset_hash, row_idx, player, club, rating, goals,
			team_goals_before, team_goals_during, age,
			injury_start, injury_end, status,
			rating_filled, goals_filled, avg_rating_before, avg_rating_after,
			team_performance_drop, performance_change, month
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range events {
		_, err = stmt.Exec(
			hash, i, e.Player, e.Club, nullFloat(e.Rating), nullInt(e.Goals),
			e.TeamGoalsBefore, e.TeamGoalsDuring, e.Age,
			nullDate(e.InjuryStart), nullDate(e.InjuryEnd), e.Status,
			e.RatingFilled, e.GoalsFilled, e.AvgRatingBefore, e.AvgRatingAfter,
			e.TeamPerformanceDrop, e.PerformanceChange, e.Month,
		)
		if err != nil {
			return fmt.Errorf("insert event %d for %s: %w", i, e.Player, err)
		}
	}
	return tx.Commit()
}

// ListDatasets returns all stored dataset summaries ordered by load time desc.
func (db *DB) ListDatasets() ([]model.DatasetSummary, error) {
	rows, err := db.conn.Query(`
		SELECT hash, source, loaded_at, rows, players, clubs, date_min, date_max, skipped, warnings
		FROM datasets ORDER BY loaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.DatasetSummary
	for rows.Next() {
		var s model.DatasetSummary
		if err := rows.Scan(&s.Hash, &s.Source, &s.LoadedAt, &s.Rows, &s.Players,
			&s.Clubs, &s.DateMin, &s.DateMax, &s.Skipped, &s.Warnings); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetDatasetByPrefix finds the first dataset whose hash starts with the given prefix.
func (db *DB) GetDatasetByPrefix(prefix string) (*model.DatasetSummary, error) {
	var s model.DatasetSummary
	err := db.conn.QueryRow(`
		SELECT hash, source, loaded_at, rows, players, clubs, date_min, date_max, skipped, warnings
		FROM datasets WHERE hash LIKE ? LIMIT 1`, prefix+"%").
		Scan(&s.Hash, &s.Source, &s.LoadedAt, &s.Rows, &s.Players,
			&s.Clubs, &s.DateMin, &s.DateMax, &s.Skipped, &s.Warnings)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetEvents returns a dataset's enriched events in original row order.
func (db *DB) GetEvents(hash string) ([]model.EnrichedEvent, error) {
	rows, err := db.conn.Query(`
		SELECT player, club, rating, goals,
		       team_goals_before, team_goals_during, age,
		       injury_start, injury_end, status,
		       rating_filled, goals_filled, avg_rating_before, avg_rating_after,
		       team_performance_drop, performance_change, month
		FROM events WHERE dataset_hash = ?
		ORDER BY row_idx`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.EnrichedEvent
	for rows.Next() {
		var e model.EnrichedEvent
		var rating sql.NullFloat64
		var goals sql.NullInt64
		var start, end sql.NullString
		if err := rows.Scan(
			&e.Player, &e.Club, &rating, &goals,
			&e.TeamGoalsBefore, &e.TeamGoalsDuring, &e.Age,
			&start, &end, &e.Status,
			&e.RatingFilled, &e.GoalsFilled, &e.AvgRatingBefore, &e.AvgRatingAfter,
			&e.TeamPerformanceDrop, &e.PerformanceChange, &e.Month,
		); err != nil {
			return nil, err
		}
		if rating.Valid {
			v := rating.Float64
			e.Rating = &v
		}
		if goals.Valid {
			v := int(goals.Int64)
			e.Goals = &v
		}
		e.InjuryStart = parseStoredDate(start)
		e.InjuryEnd = parseStoredDate(end)
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteDataset removes a dataset and its events. Events are deleted
// explicitly rather than via cascade so the result does not depend on the
// foreign_keys pragma being set on the pooled connection.
func (db *DB) DeleteDataset(hash string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM events WHERE dataset_hash = ?", hash); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM datasets WHERE hash = ?", hash); err != nil {
		return err
	}
	return tx.Commit()
}

// Overview holds database-level aggregate counts for the summary command.
type Overview struct {
	Datasets     int
	TotalEvents  int
	UniqueClubs  int
	UniquePlayer int
	EarliestLoad string
	LatestLoad   string
}

// GetOverview returns aggregate statistics across all stored datasets.
func (db *DB) GetOverview() (Overview, error) {
	var ov Overview
	err := db.conn.QueryRow(`
		SELECT COUNT(1),
		       COALESCE(MIN(loaded_at), ''),
		       COALESCE(MAX(loaded_at), '')
		FROM datasets`).Scan(&ov.Datasets, &ov.EarliestLoad, &ov.LatestLoad)
	if err != nil {
		return ov, err
	}
	err = db.conn.QueryRow(`
		SELECT COUNT(1),
		       COUNT(DISTINCT club),
		       COUNT(DISTINCT player)
		FROM events`).Scan(&ov.TotalEvents, &ov.UniqueClubs, &ov.UniquePlayer)
	return ov, err
}

// QueryRaw runs an arbitrary SQL query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		rec := make([]string, len(cols))
		for i, v := range vals {
			switch t := v.(type) {
			case nil:
				rec[i] = "NULL"
			case []byte:
				rec[i] = string(t)
			default:
				rec[i] = fmt.Sprintf("%v", t)
			}
		}
		out = append(out, rec)
	}
	return cols, out, rows.Err()
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func parseStoredDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}
