package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/edibulb/glucocoach/internal/apperrors"
	"github.com/edibulb/glucocoach/internal/domain"
	"github.com/edibulb/glucocoach/internal/logger"
)

// userHeader carries the tenant key. Authentication policy lives outside
// this service; absent a header every request belongs to the default user.
const (
	userHeader  = "X-User"
	defaultUser = "default"

	historyLimit = 20
)

func userID(r *http.Request) string {
	if u := r.Header.Get(userHeader); u != "" {
		return u
	}
	return defaultUser
}

func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	var input domain.ReadingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, apperrors.InvalidPayload("invalid JSON body"))
		return
	}
	if _, err := s.logs.AddReading(r.Context(), userID(r), input); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	rangeName := r.URL.Query().Get("range")
	if rangeName == "" {
		rangeName = "week"
	}
	items, err := s.logs.ListReadings(r.Context(), userID(r), rangeName)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.Reading{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleDeleteLogs(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperrors.InvalidPayload("invalid JSON body"))
		return
	}
	deleted, err := s.logs.DeleteReadings(r.Context(), userID(r), body.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.logs.GetProfile(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var p domain.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, apperrors.InvalidPayload("invalid JSON body"))
		return
	}
	if err := s.logs.PutProfile(r.Context(), userID(r), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleWeeklyRaw(w http.ResponseWriter, r *http.Request) {
	payload, err := s.summaries.WeeklyRaw(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	items := payload.Items
	if items == nil {
		items = []domain.Reading{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"avg":   payload.Average,
		"items": items,
		"spike": payload.Spike,
	})
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summaries.Weekly(r.Context(), userID(r))
	if err != nil {
		// The aggregate is already computed when only generation failed;
		// hand the numbers back alongside the error.
		if apperrors.TypeOf(err) == apperrors.TypeSummaryUnavailable {
			writeJSON(w, apperrors.HTTPStatus(err), map[string]any{
				"error": "AI summary error",
				"avg":   summary.Average,
				"spike": summary.Spike,
			})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"avg":     summary.Average,
		"spike":   summary.Spike,
		"message": summary.Message,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	recs, err := s.summaries.ListHistory(r.Context(), userID(r), historyLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	if recs == nil {
		recs = []domain.SummaryRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": recs})
}

func (s *Server) handleCoach(w http.ResponseWriter, r *http.Request) {
	var req domain.CoachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidPayload("invalid JSON body"))
		return
	}
	message, err := s.summaries.CoachTip(r.Context(), userID(r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	msg := "internal error"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	} else {
		logger.Warn("request rejected", "error", err)
	}
	writeJSON(w, status, map[string]any{"error": msg})
}
