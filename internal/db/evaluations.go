package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-recommender/internal/types"
)

// StoredEvaluation is one persisted evaluation row. Failed evaluations are
// stored too, with the failure text set and the record columns empty.
type StoredEvaluation struct {
	ID             uuid.UUID      `json:"id"`
	Source         string         `json:"source"`
	JobTitle       string         `json:"job_title"`
	Department     string         `json:"department"`
	CandidateName  string         `json:"candidate_name,omitempty"`
	Recommendation string         `json:"recommendation,omitempty"`
	OverallScore   *float64       `json:"overall_score,omitempty"`
	Record         map[string]any `json:"record,omitempty"`
	Failure        string         `json:"failure,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewStoredEvaluation flattens an evaluation envelope into its row form.
func NewStoredEvaluation(jobTitle, department string, ev *types.Evaluation) StoredEvaluation {
	stored := StoredEvaluation{
		ID:         ev.ID,
		Source:     ev.Source,
		JobTitle:   jobTitle,
		Department: department,
	}
	if ev.Err != nil {
		stored.Failure = ev.Err.Error()
		return stored
	}
	score := ev.Record.OverallScore()
	stored.CandidateName = ev.Record.CandidateName()
	stored.Recommendation = ev.Record.Recommendation()
	stored.OverallScore = &score
	stored.Record = ev.Record.Map()
	return stored
}

// SaveEvaluation persists one evaluation result.
func (db *DB) SaveEvaluation(ctx context.Context, jobTitle, department string, ev *types.Evaluation) error {
	stored := NewStoredEvaluation(jobTitle, department, ev)

	var recordJSON []byte
	if stored.Record != nil {
		var err error
		recordJSON, err = json.Marshal(stored.Record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO evaluations (id, source, job_title, department, candidate_name, recommendation, overall_score, record, failure)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, NULLIF($9, ''))`,
		stored.ID, stored.Source, stored.JobTitle, stored.Department,
		stored.CandidateName, stored.Recommendation, stored.OverallScore, recordJSON, stored.Failure,
	)
	if err != nil {
		return fmt.Errorf("failed to save evaluation %s: %w", stored.ID, err)
	}
	return nil
}

// GetEvaluation retrieves one evaluation by ID. Returns nil when not found.
func (db *DB) GetEvaluation(ctx context.Context, id uuid.UUID) (*StoredEvaluation, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, source, job_title, department,
		        COALESCE(candidate_name, ''), COALESCE(recommendation, ''),
		        overall_score, record, COALESCE(failure, ''), created_at
		 FROM evaluations WHERE id = $1`,
		id,
	)

	stored, err := scanEvaluation(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return stored, nil
}

// EvaluationFilters holds optional filters for listing evaluations
type EvaluationFilters struct {
	JobTitle       string
	Recommendation string
	Limit          int
}

// ListEvaluations retrieves recent evaluations with optional filters, newest
// first.
func (db *DB) ListEvaluations(ctx context.Context, filters EvaluationFilters) ([]StoredEvaluation, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, source, job_title, department,
	                 COALESCE(candidate_name, ''), COALESCE(recommendation, ''),
	                 overall_score, record, COALESCE(failure, ''), created_at
	          FROM evaluations WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.JobTitle != "" {
		query += fmt.Sprintf(" AND job_title ILIKE $%d", argNum)
		args = append(args, "%"+filters.JobTitle+"%")
		argNum++
	}
	if filters.Recommendation != "" {
		query += fmt.Sprintf(" AND recommendation = $%d", argNum)
		args = append(args, filters.Recommendation)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	var evaluations []StoredEvaluation
	for rows.Next() {
		stored, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		evaluations = append(evaluations, *stored)
	}
	return evaluations, nil
}

func scanEvaluation(row pgx.Row) (*StoredEvaluation, error) {
	var stored StoredEvaluation
	var recordJSON []byte
	err := row.Scan(&stored.ID, &stored.Source, &stored.JobTitle, &stored.Department,
		&stored.CandidateName, &stored.Recommendation,
		&stored.OverallScore, &recordJSON, &stored.Failure, &stored.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(recordJSON) > 0 {
		if err := json.Unmarshal(recordJSON, &stored.Record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
	}
	return &stored, nil
}
