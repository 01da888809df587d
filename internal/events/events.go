// Package events defines the domain events emitted after risk evaluation.
package events

import (
	"context"
	"time"
)

// RiskEvaluated is emitted once per completed evaluation so downstream
// consumers (audit pipelines, alerting) see every verdict, including those
// computed under degraded signal coverage.
type RiskEvaluated struct {
	EvaluationID string    `json:"evaluation_id"`
	UserID       string    `json:"user_id"`
	Amount       float64   `json:"amount"`
	Safe         bool      `json:"safe"`
	RiskScore    float64   `json:"risk_score"`
	Flags        []string  `json:"flags"`
	Degraded     []string  `json:"degraded,omitempty"`
	EvaluatedAt  time.Time `json:"evaluated_at"`
}

// Publisher delivers verdict events to an external bus.
type Publisher interface {
	PublishRiskEvaluated(ctx context.Context, ev RiskEvaluated) error
}
