package risk

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// PostgresStore persists verdicts in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed verdict store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Record(ctx context.Context, v *Verdict) error {
	flagsJSON, err := json.Marshal(v.Flags)
	if err != nil {
		return fmt.Errorf("failed to marshal flags: %w", err)
	}
	degradedJSON, err := json.Marshal(v.Degraded)
	if err != nil {
		return fmt.Errorf("failed to marshal degraded rules: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO risk_evaluations (id, user_id, safe, risk_score, flags, degraded, evaluated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		v.ID,
		v.UserID,
		v.Safe,
		v.RiskScore,
		flagsJSON,
		degradedJSON,
		v.EvaluatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record verdict: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string, limit int) ([]*Verdict, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, safe, risk_score, flags, degraded, evaluated_at
		FROM risk_evaluations
		WHERE user_id = $1
		ORDER BY evaluated_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list verdicts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*Verdict
	for rows.Next() {
		var v Verdict
		var flagsJSON, degradedJSON []byte
		var evaluatedAt time.Time

		if err := rows.Scan(&v.ID, &v.UserID, &v.Safe, &v.RiskScore, &flagsJSON, &degradedJSON, &evaluatedAt); err != nil {
			continue
		}
		v.EvaluatedAt = evaluatedAt
		_ = json.Unmarshal(flagsJSON, &v.Flags)
		_ = json.Unmarshal(degradedJSON, &v.Degraded)
		result = append(result, &v)
	}
	return result, rows.Err()
}
