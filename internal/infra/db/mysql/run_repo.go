package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	domain "betterfeedback/internal/domain/feedback"
)

type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Save inserts an analysis run record
func (r *RunRepository) Save(ctx context.Context, run *domain.AnalysisRun) error {
	const q = `
INSERT INTO analysis_runs (id, input_text, result_json, item_count, created_at)
VALUES (?,?,?,?,?);
`
	resultJSON, err := json.Marshal(run.Items)
	if err != nil {
		return err
	}
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err = r.db.ExecContext(ctx, q,
		string(run.ID), run.InputText, string(resultJSON), run.ItemCount, createdAt.UTC())
	return err
}

// Latest returns up to limit runs ordered by created_at desc
func (r *RunRepository) Latest(ctx context.Context, limit int) ([]*domain.AnalysisRun, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, input_text, result_json, item_count, created_at
FROM analysis_runs
ORDER BY created_at DESC, id DESC
LIMIT ?;
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
