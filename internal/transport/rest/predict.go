package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/argmine/argmine"
)

// predictor labels every token of a text.
type predictor interface {
	Predict(ctx context.Context, text string) ([]argmine.Token, error)
}

// PredictHandler serves POST /predict.
type PredictHandler struct {
	svc     predictor
	log     *slog.Logger
	maxBody int64
}

// NewPredictHandler creates a PredictHandler.
func NewPredictHandler(svc predictor, logger *slog.Logger, maxBody int64) *PredictHandler {
	return &PredictHandler{svc: svc, log: logger.With("handler", "predict"), maxBody: maxBody}
}

type predictRequest struct {
	Text string `json:"text"`
}

type tokenPrediction struct {
	Token string `json:"token"`
	POS   string `json:"pos"`
	Label string `json:"label"`
}

type predictResponse struct {
	Prediction []tokenPrediction `json:"prediction"`
}

const msgEmptyText = "El campo 'text' no puede estar vacío."

// Predict handles POST /predict.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, http.StatusBadRequest, msgEmptyText)
		return
	}

	tokens, err := h.svc.Predict(r.Context(), text)
	switch {
	case errors.Is(err, argmine.ErrEmptyText):
		writeError(w, http.StatusBadRequest, msgEmptyText)
		return
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "request timed out")
		return
	case err != nil:
		h.log.ErrorContext(r.Context(), "predict failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := predictResponse{Prediction: make([]tokenPrediction, len(tokens))}
	for i, tok := range tokens {
		resp.Prediction[i] = tokenPrediction{Token: tok.Text, POS: tok.Tag, Label: tok.Label}
	}
	writeJSON(w, http.StatusOK, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, maxBody int64, v any) error {
	if maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	}
	return json.NewDecoder(r.Body).Decode(v)
}
