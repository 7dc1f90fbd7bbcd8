package rest

import (
	"context"
	"log/slog"
	"net/http"
)

// recommender asks a language model for suggestions.
type recommender interface {
	Recommend(ctx context.Context, premises, conclusions []string) ([]string, error)
}

// RecommendHandler serves POST /recommend.
type RecommendHandler struct {
	svc     recommender
	log     *slog.Logger
	maxBody int64
}

// NewRecommendHandler creates a RecommendHandler.
func NewRecommendHandler(svc recommender, logger *slog.Logger, maxBody int64) *RecommendHandler {
	return &RecommendHandler{svc: svc, log: logger.With("handler", "recommend"), maxBody: maxBody}
}

type recommendRequest struct {
	Premises    []string `json:"premises"`
	Conclusions []string `json:"conclusions"`
}

type recommendResponse struct {
	Recommendations []string `json:"recommendations"`
}

// Recommend handles POST /recommend.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recs, err := h.svc.Recommend(r.Context(), req.Premises, req.Conclusions)
	if err != nil {
		h.log.ErrorContext(r.Context(), "recommend failed", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "Error al invocar al modelo: "+err.Error())
		return
	}
	if recs == nil {
		recs = []string{}
	}

	writeJSON(w, http.StatusOK, recommendResponse{Recommendations: recs})
}
