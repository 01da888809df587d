// Package risk implements transaction risk scoring for payment requests.
//
// Every proposed transaction is evaluated against three independent rules:
// transaction velocity, amount anomaly against the user's historical average,
// and transfers to recently created beneficiaries. Each rule that fires
// contributes a named, weighted signal; the score is the sum of fired
// weights and a transaction is safe while the score stays below the
// configured threshold.
package risk

import (
	"context"
	"errors"
	"time"
)

// Flag identifiers for the signals each rule can produce.
const (
	FlagHighVelocity   = "high_velocity"
	FlagAmountAnomaly  = "amount_anomaly"
	FlagNewBeneficiary = "new_beneficiary"
)

// Validation errors returned by Evaluate before any rule runs.
var (
	ErrMissingUserID = errors.New("userId is required")
	ErrInvalidAmount = errors.New("amount must be a finite, non-negative number")
)

// Request is one proposed transaction to evaluate.
type Request struct {
	UserID        string
	Amount        float64
	BeneficiaryID string // optional; empty skips the beneficiary rule
}

// Verdict is the result of evaluating a single request.
//
// Degraded lists the rules whose history fetch failed and therefore could
// not fire. A verdict with a non-empty Degraded list was computed from
// partial signal coverage and must not be read as a clean pass.
type Verdict struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Safe        bool      `json:"safe"`
	RiskScore   float64   `json:"riskScore"`
	Flags       []string  `json:"flags"`
	Degraded    []string  `json:"degraded,omitempty"`
	EvaluatedAt time.Time `json:"evaluatedAt"`
}

// Config holds the rule thresholds and signal weights. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// SafeThreshold is the score at which a transaction stops being safe.
	// The comparison is strict: a score equal to the threshold is unsafe.
	SafeThreshold float64

	// VelocityWindow is the trailing window the velocity rule counts over.
	VelocityWindow time.Duration
	// VelocityMaxCount is the transaction count at which velocity fires.
	VelocityMaxCount int
	VelocityWeight   float64

	// AnomalyMultiplier fires the anomaly rule when the requested amount
	// exceeds multiplier times the historical average.
	AnomalyMultiplier float64
	AnomalyWeight     float64

	// BeneficiaryMaxAge is how recently a beneficiary must have been
	// created to count as new.
	BeneficiaryMaxAge time.Duration
	// BeneficiaryMinAmount is the amount (exclusive) above which a
	// transfer to a new beneficiary fires the rule.
	BeneficiaryMinAmount float64
	BeneficiaryWeight    float64
}

// DefaultConfig returns the production rule parameters.
func DefaultConfig() Config {
	return Config{
		SafeThreshold:        0.70,
		VelocityWindow:       60 * time.Minute,
		VelocityMaxCount:     5,
		VelocityWeight:       0.3,
		AnomalyMultiplier:    5,
		AnomalyWeight:        0.3,
		BeneficiaryMaxAge:    24 * time.Hour,
		BeneficiaryMinAmount: 1000,
		BeneficiaryWeight:    0.4,
	}
}

// Store persists verdicts for audit trail.
type Store interface {
	Record(ctx context.Context, v *Verdict) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*Verdict, error)
}
