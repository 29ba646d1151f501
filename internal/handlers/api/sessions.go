package api

import (
	"net/http"

	"github.com/gorilla/mux"

	apperrors "github.com/mystira/mystira-server/internal/errors"
	"github.com/mystira/mystira-server/internal/services/gamesession"
)

type startSessionRequest struct {
	ScenarioID     string   `json:"scenario_id"`
	AccountID      string   `json:"account_id"`
	ProfileID      string   `json:"profile_id"`
	PlayerNames    []string `json:"player_names"`
	TargetAgeGroup string   `json:"target_age_group"`
}

type makeChoiceRequest struct {
	SceneID     string `json:"scene_id"`
	ChoiceText  string `json:"choice_text"`
	NextSceneID string `json:"next_scene_id"`
}

type progressSceneRequest struct {
	SceneID string `json:"scene_id"`
}

type selectCharacterRequest struct {
	CharacterID string `json:"character_id"`
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	session, err := h.sessions.StartSession(r.Context(), &gamesession.StartSessionInput{
		ScenarioID:     req.ScenarioID,
		AccountID:      req.AccountID,
		ProfileID:      req.ProfileID,
		PlayerNames:    req.PlayerNames,
		TargetAgeGroup: req.TargetAgeGroup,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, session)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, session)
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	profileID := r.URL.Query().Get("profile_id")

	switch {
	case accountID != "":
		sessions, err := h.sessions.ListSessionsByAccount(r.Context(), accountID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, sessions)
	case profileID != "":
		sessions, err := h.sessions.ListSessionsByProfile(r.Context(), profileID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, sessions)
	default:
		h.writeError(w, apperrors.InvalidArgument("account_id or profile_id query parameter is required"))
	}
}

func (h *Handler) makeChoice(w http.ResponseWriter, r *http.Request) {
	var req makeChoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	session, err := h.sessions.MakeChoice(r.Context(), &gamesession.MakeChoiceInput{
		SessionID:   mux.Vars(r)["id"],
		SceneID:     req.SceneID,
		ChoiceText:  req.ChoiceText,
		NextSceneID: req.NextSceneID,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, session)
}

func (h *Handler) pauseSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.PauseSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, session)
}

func (h *Handler) resumeSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.ResumeSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, session)
}

func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.EndSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, session)
}

func (h *Handler) progressScene(w http.ResponseWriter, r *http.Request) {
	var req progressSceneRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	session, err := h.sessions.ProgressSessionScene(r.Context(), mux.Vars(r)["id"], req.SceneID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, session)
}

func (h *Handler) selectCharacter(w http.ResponseWriter, r *http.Request) {
	var req selectCharacterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	session, err := h.sessions.SelectCharacter(r.Context(), mux.Vars(r)["id"], req.CharacterID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, session)
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.sessions.DeleteSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !deleted {
		h.writeError(w, apperrors.NotFoundf("session not found: %s", mux.Vars(r)["id"]))
		return
	}

	h.writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) sessionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.sessions.GetSessionStats(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) checkAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.sessions.CheckAchievements(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, achievements)
}

func (h *Handler) activeSessionsCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.sessions.GetActiveSessionsCount(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]int{"count": count})
}
