package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mystira/mystira-server/internal/domain/game"
	apperrors "github.com/mystira/mystira-server/internal/errors"
)

func (h *Handler) createScenario(w http.ResponseWriter, r *http.Request) {
	var scenario game.Scenario
	if err := decodeJSON(r, &scenario); err != nil {
		h.writeError(w, err)
		return
	}

	created, err := h.scenarios.CreateScenario(r.Context(), &scenario)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) listScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.scenarios.ListScenarios(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, scenarios)
}

func (h *Handler) getScenario(w http.ResponseWriter, r *http.Request) {
	scenario, err := h.scenarios.GetScenario(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, scenario)
}

func (h *Handler) updateScenario(w http.ResponseWriter, r *http.Request) {
	var scenario game.Scenario
	if err := decodeJSON(r, &scenario); err != nil {
		h.writeError(w, err)
		return
	}

	id := mux.Vars(r)["id"]
	if scenario.ID != "" && scenario.ID != id {
		h.writeError(w, apperrors.InvalidArgument("scenario ID in body does not match URL"))
		return
	}
	scenario.ID = id

	updated, err := h.scenarios.UpdateScenario(r.Context(), &scenario)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteScenario(w http.ResponseWriter, r *http.Request) {
	if err := h.scenarios.DeleteScenario(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusNoContent, nil)
}
