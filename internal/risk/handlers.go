package risk

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arth-1/adapt-risk/internal/events"
	"github.com/arth-1/adapt-risk/internal/metrics"
	"github.com/arth-1/adapt-risk/internal/validation"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Handler provides the HTTP endpoints for risk evaluation.
type Handler struct {
	evaluator *Evaluator
	store     Store            // nil disables the audit listing endpoint
	publisher events.Publisher // nil disables event publishing
}

// NewHandler creates a risk handler around the evaluator.
func NewHandler(e *Evaluator) *Handler {
	return &Handler{evaluator: e}
}

// WithStore enables the evaluation audit listing endpoint.
func (h *Handler) WithStore(s Store) *Handler {
	h.store = s
	return h
}

// WithPublisher enables fire-and-forget verdict events.
func (h *Handler) WithPublisher(p events.Publisher) *Handler {
	h.publisher = p
	return h
}

// RegisterRoutes sets up the risk routes on the given group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/fraud/check", h.CheckTransaction)
	r.GET("/users/:userId/evaluations", h.ListEvaluations)
}

// CheckTransaction handles POST /v1/fraud/check.
func (h *Handler) CheckTransaction(c *gin.Context) {
	var req struct {
		UserID        string   `json:"userId"`
		Amount        *float64 `json:"amount"`
		BeneficiaryID string   `json:"beneficiaryId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "request body must be valid JSON"})
		return
	}
	req.UserID = validation.SanitizeID(req.UserID)
	req.BeneficiaryID = validation.SanitizeID(req.BeneficiaryID)
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_field", "field": "userId", "message": "userId is required"})
		return
	}
	if req.Amount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_field", "field": "amount", "message": "amount is required"})
		return
	}

	start := time.Now()
	verdict, err := h.evaluator.Evaluate(c.Request.Context(), Request{
		UserID:        req.UserID,
		Amount:        *req.Amount,
		BeneficiaryID: req.BeneficiaryID,
	})
	switch {
	case errors.Is(err, ErrMissingUserID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_field", "field": "userId", "message": err.Error()})
		return
	case errors.Is(err, ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_field", "field": "amount", "message": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "failed to evaluate transaction"})
		return
	}

	metrics.ObserveEvaluation(verdict.Safe, time.Since(start))
	for _, flag := range verdict.Flags {
		metrics.SignalsFiredTotal.WithLabelValues(flag).Inc()
	}
	for _, rule := range verdict.Degraded {
		metrics.DegradedRulesTotal.WithLabelValues(rule).Inc()
	}

	if h.publisher != nil {
		ev := events.RiskEvaluated{
			EvaluationID: verdict.ID,
			UserID:       verdict.UserID,
			Amount:       *req.Amount,
			Safe:         verdict.Safe,
			RiskScore:    verdict.RiskScore,
			Flags:        verdict.Flags,
			Degraded:     verdict.Degraded,
			EvaluatedAt:  verdict.EvaluatedAt,
		}
		go func() {
			// Best-effort: a broker outage must never block a verdict.
			_ = h.publisher.PublishRiskEvaluated(context.Background(), ev)
		}()
	}

	c.JSON(http.StatusOK, verdict)
}

// ListEvaluations handles GET /v1/users/:userId/evaluations.
func (h *Handler) ListEvaluations(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "not_available", "message": "evaluation audit trail is not enabled"})
		return
	}

	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_field", "field": "userId", "message": "userId is required"})
		return
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_field", "field": "limit", "message": "limit must be a positive integer"})
			return
		}
		if n > maxListLimit {
			n = maxListLimit
		}
		limit = n
	}

	verdicts, err := h.store.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "failed to list evaluations"})
		return
	}
	if verdicts == nil {
		verdicts = []*Verdict{}
	}

	c.JSON(http.StatusOK, gin.H{"userId": userID, "evaluations": verdicts})
}
