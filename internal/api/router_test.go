package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Regen/internal/catalog"
	"github.com/MikeSquared-Agency/Regen/internal/metrics"
	"github.com/MikeSquared-Agency/Regen/internal/scoring"
	"github.com/MikeSquared-Agency/Regen/internal/simulator"
	"github.com/MikeSquared-Agency/Regen/internal/store"
)

type fixedSource struct{}

func (fixedSource) Float64() float64 { return 0.5 }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat, err := catalog.Load("../../configs/catalog.yaml")
	require.NoError(t, err)
	svc := simulator.New(
		cat,
		scoring.NewOptimizer(fixedSource{}, 1, logger),
		store.NewMemoryStore(8),
		nil,
		metrics.New(prometheus.NewRegistry()),
		100,
		logger,
	)
	return NewRouter(svc, 0, logger)
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func createRun(t *testing.T, h http.Handler, damage string, techs ...string) store.Run {
	t.Helper()
	w := do(t, h, http.MethodPost, "/api/v1/simulations", simulator.Request{
		DamageTypeID:  damage,
		TechnologyIDs: techs,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var run store.Run
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	return run
}

func TestCatalogEndpoints(t *testing.T) {
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/v1/technologies", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var techs []catalog.Technology
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &techs))
	assert.Len(t, techs, 8)

	w = do(t, h, http.MethodGet, "/api/v1/technologies?category=quantum", nil)
	require.Equal(t, http.StatusOK, w.Code)
	techs = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &techs))
	require.NotEmpty(t, techs)
	for _, tech := range techs {
		assert.Equal(t, catalog.CategoryQuantum, tech.Category)
	}

	w = do(t, h, http.MethodGet, "/api/v1/technologies?category=magic", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/api/v1/damage-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var damages []catalog.DamageType
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &damages))
	assert.Len(t, damages, 6)

	w = do(t, h, http.MethodGet, "/api/v1/constants", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var consts []catalog.Constant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &consts))
	assert.Len(t, consts, 5)
}

func TestCreateAndGetSimulation(t *testing.T) {
	h := newTestRouter(t)

	run := createRun(t, h, "cancer", "telomerase", "stem-cells")
	assert.Len(t, run.Result.AllCombinations, 3)
	assert.Equal(t, "cancer", run.DamageType.ID)

	w := do(t, h, http.MethodGet, "/api/v1/simulations/"+run.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got store.Run
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, run.ID, got.ID)
	assert.InDelta(t, run.Result.TotalProbability, got.Result.TotalProbability, 1e-12)
}

func TestCreateSimulationErrors(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name string
		body interface{}
		want int
	}{
		{"unknown damage type", simulator.Request{DamageTypeID: "hangover", TechnologyIDs: []string{"nanobots"}}, http.StatusNotFound},
		{"unknown technology", simulator.Request{DamageTypeID: "cancer", TechnologyIDs: []string{"duct-tape"}}, http.StatusNotFound},
		{"no technologies", simulator.Request{DamageTypeID: "cancer"}, http.StatusBadRequest},
		{"missing damage type", simulator.Request{TechnologyIDs: []string{"nanobots"}}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/v1/simulations", tt.body)
			assert.Equal(t, tt.want, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulations", strings.NewReader("{broken"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSimulations(t *testing.T) {
	h := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/api/v1/simulations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	createRun(t, h, "cancer", "nanobots")
	createRun(t, h, "burns", "nanobots")
	last := createRun(t, h, "cancer", "stem-cells")

	var runs []store.Run
	w = do(t, h, http.MethodGet, "/api/v1/simulations?damage_type=cancer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, last.ID, runs[0].ID)

	runs = nil
	w = do(t, h, http.MethodGet, "/api/v1/simulations?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs))
	assert.Len(t, runs, 1)

	w = do(t, h, http.MethodGet, "/api/v1/simulations?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportSimulation(t *testing.T) {
	h := newTestRouter(t)
	run := createRun(t, h, "aging", "telomerase", "entropy-reversal")

	w := do(t, h, http.MethodGet, "/api/v1/simulations/"+run.ID.String()+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="regeneration-simulation-`)

	var exp simulator.Export
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exp))
	assert.Equal(t, run.ID, exp.RunID)
	assert.Equal(t, "Aging Process", exp.Parameters.DamageType)
	assert.Equal(t, run.Result.Recommendations, exp.Results.Recommendations)
}

func TestExplainSimulation(t *testing.T) {
	h := newTestRouter(t)
	run := createRun(t, h, "cancer", "telomerase", "nanobots")

	w := do(t, h, http.MethodGet, "/api/v1/simulations/"+run.ID.String()+"/explain", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var b scoring.Breakdown
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.InDelta(t, run.Result.TotalProbability, b.Probability, 1e-12)
	assert.NotEmpty(t, b.Factors)
}

func TestDeleteSimulation(t *testing.T) {
	h := newTestRouter(t)
	run := createRun(t, h, "burns", "nanobots")

	w := do(t, h, http.MethodDelete, "/api/v1/simulations/"+run.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/api/v1/simulations/"+run.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodDelete, "/api/v1/simulations/"+run.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidRunID(t *testing.T) {
	h := newTestRouter(t)
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w := do(t, h, method, "/api/v1/simulations/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, method)
	}
}

func TestMetricsRouter(t *testing.T) {
	h := NewMetricsRouter()

	w := do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
