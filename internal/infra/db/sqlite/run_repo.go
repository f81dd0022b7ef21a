package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	domain "betterfeedback/internal/domain/feedback"
)

// timeLayout is fixed-width so that lexicographic ordering of the stored
// text equals chronological ordering. RFC3339Nano drops trailing fractional
// zeros, which breaks ORDER BY within a second.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Save inserts an analysis run. Runs are immutable, so this never updates.
func (r *RunRepository) Save(ctx context.Context, run *domain.AnalysisRun) error {
	const q = `
INSERT INTO analysis_runs (id, input_text, result_json, item_count, created_at)
VALUES (?,?,?,?,?);
`
	resultJSON, err := json.Marshal(run.Items)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q,
		string(run.ID),
		run.InputText,
		string(resultJSON),
		run.ItemCount,
		run.CreatedAt.UTC().Format(timeLayout),
	)
	return err
}

// Latest returns up to limit runs ordered most-recent-first.
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
			id, inputText, resultJSON, created string
			count                              int
		)
		if err := rows.Scan(&id, &inputText, &resultJSON, &count, &created); err != nil {
			return nil, err
		}
		run, err := buildRun(id, inputText, resultJSON, count, created)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func buildRun(id, inputText, resultJSON string, count int, created string) (*domain.AnalysisRun, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, err
	}
	var items []domain.FeedbackItem
	if err := json.Unmarshal([]byte(resultJSON), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.FeedbackItem{}
	}
	return &domain.AnalysisRun{
		ID:           domain.RunID(id),
		CreatedAt:    createdAt.UTC(),
		InputPreview: domain.Preview(inputText),
		ItemCount:    count,
		Items:        items,
		InputText:    inputText,
	}, nil
}
