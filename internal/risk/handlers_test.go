package risk

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arth-1/adapt-risk/internal/history"
)

func newTestRouter(t *testing.T, store *history.MemoryStore, audit Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := NewEvaluator(store, DefaultConfig())
	if audit != nil {
		e = e.WithAudit(audit)
	}
	h := NewHandler(e)
	if audit != nil {
		h = h.WithStore(audit)
	}

	r := gin.New()
	h.RegisterRoutes(r.Group("/v1"))
	return r
}

func postCheck(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/fraud/check", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCheckTransaction_Safe(t *testing.T) {
	r := newTestRouter(t, history.NewMemoryStore(), nil)

	w := postCheck(t, r, `{"userId":"u1","amount":100}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Safe      bool     `json:"safe"`
		RiskScore float64  `json:"riskScore"`
		Flags     []string `json:"flags"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Safe)
	assert.Equal(t, 0.0, resp.RiskScore)
	assert.NotNil(t, resp.Flags)
	assert.Empty(t, resp.Flags)
}

func TestCheckTransaction_Unsafe(t *testing.T) {
	store := history.NewMemoryStore()
	now := time.Now()
	for i := 0; i < 5; i++ {
		store.AddTransaction(history.Transaction{
			ID:        "tx" + string(rune('a'+i)),
			UserID:    "u1",
			Amount:    100,
			CreatedAt: now.Add(-time.Minute),
		})
	}
	store.AddBeneficiary(history.Beneficiary{ID: "b1", CreatedAt: now.Add(-time.Hour)})
	r := newTestRouter(t, store, nil)

	w := postCheck(t, r, `{"userId":"u1","amount":2000,"beneficiaryId":"b1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Safe      bool     `json:"safe"`
		RiskScore float64  `json:"riskScore"`
		Flags     []string `json:"flags"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Safe)
	assert.Equal(t, 1.0, resp.RiskScore)
	assert.Equal(t, []string{FlagHighVelocity, FlagAmountAnomaly, FlagNewBeneficiary}, resp.Flags)
}

func TestCheckTransaction_MissingUserID(t *testing.T) {
	r := newTestRouter(t, history.NewMemoryStore(), nil)

	w := postCheck(t, r, `{"amount":100}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "missing_field", resp["error"])
	assert.Equal(t, "userId", resp["field"])
}

func TestCheckTransaction_MissingAmount(t *testing.T) {
	r := newTestRouter(t, history.NewMemoryStore(), nil)

	w := postCheck(t, r, `{"userId":"u1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "missing_field", resp["error"])
	assert.Equal(t, "amount", resp["field"])
}

func TestCheckTransaction_ZeroAmountIsValid(t *testing.T) {
	r := newTestRouter(t, history.NewMemoryStore(), nil)

	w := postCheck(t, r, `{"userId":"u1","amount":0}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckTransaction_NegativeAmount(t *testing.T) {
	r := newTestRouter(t, history.NewMemoryStore(), nil)

	w := postCheck(t, r, `{"userId":"u1","amount":-5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_field", resp["error"])
	assert.Equal(t, "amount", resp["field"])
}

func TestCheckTransaction_MalformedJSON(t *testing.T) {
	r := newTestRouter(t, history.NewMemoryStore(), nil)

	w := postCheck(t, r, `{"userId":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEvaluations(t *testing.T) {
	audit := NewMemoryStore()
	r := newTestRouter(t, history.NewMemoryStore(), audit)

	// Two checks create two audit entries (recorded asynchronously).
	require.Equal(t, http.StatusOK, postCheck(t, r, `{"userId":"u1","amount":10}`).Code)
	require.Equal(t, http.StatusOK, postCheck(t, r, `{"userId":"u1","amount":20}`).Code)

	require.Eventually(t, func() bool {
		got, _ := audit.ListByUser(t.Context(), "u1", 10)
		return len(got) == 2
	}, 2*time.Second, 10*time.Millisecond)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/u1/evaluations", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		UserID      string     `json:"userId"`
		Evaluations []*Verdict `json:"evaluations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.UserID)
	assert.Len(t, resp.Evaluations, 2)
}

func TestListEvaluations_InvalidLimit(t *testing.T) {
	r := newTestRouter(t, history.NewMemoryStore(), NewMemoryStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/u1/evaluations?limit=zero", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
