package rest

import "net/http"

// NewRouter registers every endpoint on a new ServeMux.
func NewRouter(health *HealthHandler, predict *PredictHandler, recommend *RecommendHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("POST /predict", predict.Predict)
	mux.HandleFunc("POST /recommend", recommend.Recommend)
	return mux
}
