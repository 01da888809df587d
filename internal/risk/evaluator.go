package risk

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/arth-1/adapt-risk/internal/history"
	"github.com/arth-1/adapt-risk/internal/idgen"
	"github.com/arth-1/adapt-risk/internal/traces"
)

// Evaluator scores transactions against a user's history. It holds no
// per-user state: every call fetches fresh data, so concurrent evaluations
// need no synchronization.
type Evaluator struct {
	history history.Store
	store   Store // optional audit trail
	cfg     Config
	logger  *slog.Logger
	now     func() time.Time
}

// NewEvaluator creates a risk evaluator reading from the given history store.
func NewEvaluator(h history.Store, cfg Config) *Evaluator {
	return &Evaluator{
		history: h,
		cfg:     cfg,
		logger:  slog.Default(),
		now:     time.Now,
	}
}

// WithAudit sets an audit store; verdicts are recorded best-effort.
func (e *Evaluator) WithAudit(s Store) *Evaluator {
	e.store = s
	return e
}

// WithLogger sets a custom logger.
func (e *Evaluator) WithLogger(logger *slog.Logger) *Evaluator {
	e.logger = logger
	return e
}

// fetchResult carries the outcome of the three collaborator queries. Each
// rule's data arrives independently; a nil error on one says nothing about
// the others.
type fetchResult struct {
	recent    []history.Transaction
	recentErr error

	amounts    []float64
	amountsErr error

	beneficiary    *history.Beneficiary
	beneficiaryErr error
}

// Evaluate validates the request, fetches the three history views
// concurrently, runs the rules in order, and returns the aggregated verdict.
//
// A collaborator failure degrades the corresponding rule to non-firing
// rather than failing the evaluation; the affected rules are listed in
// Verdict.Degraded. Validation failures return an error and no verdict.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (*Verdict, error) {
	if req.UserID == "" {
		return nil, ErrMissingUserID
	}
	if req.Amount < 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return nil, ErrInvalidAmount
	}

	ctx, span := traces.StartSpan(ctx, "risk.evaluate", traces.UserID(req.UserID))
	defer span.End()

	now := e.now()
	res := e.fetch(ctx, req, now)

	// The request itself may have been abandoned; don't dress a cancelled
	// fetch up as a fully degraded verdict.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// flags starts non-nil so an all-clear verdict serializes as [].
	flags := []string{}
	var (
		degraded []string
		score    float64
	)

	// Rule 1: velocity. Fires on too many transactions inside the window.
	if res.recentErr != nil {
		degraded = append(degraded, FlagHighVelocity)
		e.logger.Warn("velocity rule degraded", "user_id", req.UserID, "error", res.recentErr)
	} else if len(res.recent) >= e.cfg.VelocityMaxCount {
		flags = append(flags, FlagHighVelocity)
		score += e.cfg.VelocityWeight
	}

	// Rule 2: amount anomaly against the all-time average. A user with no
	// history has avg 0 and the rule never fires; absence of history is
	// not itself suspicious.
	if res.amountsErr != nil {
		degraded = append(degraded, FlagAmountAnomaly)
		e.logger.Warn("amount anomaly rule degraded", "user_id", req.UserID, "error", res.amountsErr)
	} else if avg := mean(res.amounts); avg > 0 && req.Amount > e.cfg.AnomalyMultiplier*avg {
		flags = append(flags, FlagAmountAnomaly)
		score += e.cfg.AnomalyWeight
	}

	// Rule 3: large transfer to a recently created beneficiary. Only runs
	// when a beneficiary was named; a lookup miss is not a signal.
	if req.BeneficiaryID != "" {
		switch {
		case res.beneficiaryErr != nil:
			degraded = append(degraded, FlagNewBeneficiary)
			e.logger.Warn("new beneficiary rule degraded", "user_id", req.UserID, "error", res.beneficiaryErr)
		case res.beneficiary != nil:
			age := now.Sub(res.beneficiary.CreatedAt)
			if age < e.cfg.BeneficiaryMaxAge && req.Amount > e.cfg.BeneficiaryMinAmount {
				flags = append(flags, FlagNewBeneficiary)
				score += e.cfg.BeneficiaryWeight
			}
		}
	}

	// Round before the threshold comparison so the reported score and the
	// safe bit can never disagree.
	score = math.Round(score*100) / 100

	verdict := &Verdict{
		ID:          idgen.WithPrefix("rv_"),
		UserID:      req.UserID,
		Safe:        score < e.cfg.SafeThreshold,
		RiskScore:   score,
		Flags:       flags,
		Degraded:    degraded,
		EvaluatedAt: now,
	}

	span.SetAttributes(traces.RiskScore(score))

	// Persist asynchronously (best-effort audit trail).
	if e.store != nil {
		v := *verdict
		go func() {
			if err := e.store.Record(context.Background(), &v); err != nil {
				e.logger.Warn("failed to record verdict", "user_id", v.UserID, "error", err)
			}
		}()
	}

	return verdict, nil
}

// fetch issues the three collaborator queries concurrently. The queries have
// no data dependency on each other; each result or error lands in its own
// slot of fetchResult.
func (e *Evaluator) fetch(ctx context.Context, req Request, now time.Time) *fetchResult {
	res := &fetchResult{}
	done := make(chan struct{}, 3)
	queries := 2

	go func() {
		fctx, fspan := traces.StartSpan(ctx, "history.recent_transactions")
		defer fspan.End()
		since := now.Add(-e.cfg.VelocityWindow)
		res.recent, res.recentErr = e.history.RecentTransactions(fctx, req.UserID, since)
		done <- struct{}{}
	}()

	go func() {
		fctx, fspan := traces.StartSpan(ctx, "history.all_amounts")
		defer fspan.End()
		res.amounts, res.amountsErr = e.history.AllAmounts(fctx, req.UserID)
		done <- struct{}{}
	}()

	if req.BeneficiaryID != "" {
		queries++
		go func() {
			fctx, fspan := traces.StartSpan(ctx, "history.beneficiary")
			defer fspan.End()
			res.beneficiary, res.beneficiaryErr = e.history.Beneficiary(fctx, req.BeneficiaryID)
			done <- struct{}{}
		}()
	}

	for i := 0; i < queries; i++ {
		<-done
	}
	return res
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
