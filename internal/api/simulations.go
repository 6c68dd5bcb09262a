package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Regen/internal/simulator"
	"github.com/MikeSquared-Agency/Regen/internal/store"
)

type SimulationsHandler struct {
	svc    *simulator.Service
	logger *slog.Logger
}

func NewSimulationsHandler(svc *simulator.Service, logger *slog.Logger) *SimulationsHandler {
	return &SimulationsHandler{svc: svc, logger: logger}
}

// Create runs a simulation.
// POST /api/v1/simulations
func (h *SimulationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req simulator.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	run, err := h.svc.Run(r.Context(), req, store.SourceAPI)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, run)
}

// GET /api/v1/simulations?damage_type=cancer&limit=10
func (h *SimulationsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.RunFilter{
		DamageTypeID: r.URL.Query().Get("damage_type"),
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		filter.Limit = n
	}

	runs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GET /api/v1/simulations/{id}
func (h *SimulationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRunID(w, r)
	if !ok {
		return
	}
	run, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// Export returns the run summary as a downloadable document.
// GET /api/v1/simulations/{id}/export
func (h *SimulationsHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRunID(w, r)
	if !ok {
		return
	}
	exp, err := h.svc.Export(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	filename := fmt.Sprintf("regeneration-simulation-%d.json", exp.Timestamp.UnixMilli())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(exp)
}

// GET /api/v1/simulations/{id}/explain
func (h *SimulationsHandler) Explain(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRunID(w, r)
	if !ok {
		return
	}
	b, err := h.svc.Explain(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Delete discards a run.
// DELETE /api/v1/simulations/{id}
func (h *SimulationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRunID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseRunID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid simulation id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *SimulationsHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, simulator.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, simulator.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		h.logger.Error("simulation request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
