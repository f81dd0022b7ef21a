package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/lib/pq"

	domain "betterfeedback/internal/domain/feedback"
)

// Connect opens a Postgres pool and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
    id          TEXT PRIMARY KEY,
    input_text  TEXT        NOT NULL,
    result_json TEXT        NOT NULL,
    item_count  INTEGER     NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_runs_created_at
    ON analysis_runs (created_at DESC, id DESC);
`

type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Save inserts an analysis run
func (r *RunRepository) Save(ctx context.Context, run *domain.AnalysisRun) error {
	const q = `
INSERT INTO analysis_runs (id, input_text, result_json, item_count, created_at)
VALUES ($1,$2,$3,$4,$5);
`
	resultJSON, err := json.Marshal(run.Items)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q,
		string(run.ID), run.InputText, string(resultJSON), run.ItemCount, run.CreatedAt.UTC())
	return err
}

// Latest returns a page of runs ordered by created_at desc
func (r *RunRepository) Latest(ctx context.Context, limit int) ([]*domain.AnalysisRun, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, input_text, result_json, item_count, created_at
FROM analysis_runs
ORDER BY created_at DESC, id DESC
LIMIT $1;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.AnalysisRun
	for rows.Next() {
		var (
			id, inputText, resultJSON string
			count                     int
			created                   time.Time
		)
		if err := rows.Scan(&id, &inputText, &resultJSON, &count, &created); err != nil {
			return nil, err
		}
		var items []domain.FeedbackItem
		if err := json.Unmarshal([]byte(resultJSON), &items); err != nil {
			return nil, err
		}
		if items == nil {
			items = []domain.FeedbackItem{}
		}
		out = append(out, &domain.AnalysisRun{
			ID:           domain.RunID(id),
			CreatedAt:    created.UTC(),
			InputPreview: domain.Preview(inputText),
			ItemCount:    count,
			Items:        items,
			InputText:    inputText,
		})
	}
	return out, rows.Err()
}
