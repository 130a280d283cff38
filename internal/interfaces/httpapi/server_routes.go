package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/predictions", handler.ListPredictions)
	mux.HandleFunc("GET /v1/predictions/{predictionID}", handler.GetPrediction)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/fetch-matches", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunFetchMatchesJob)))
	mux.Handle("POST /v1/internal/predictions", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.CreatePrediction)))
	mux.Handle("PUT /v1/internal/predictions/{predictionID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.UpdatePrediction)))
	mux.Handle("DELETE /v1/internal/predictions/{predictionID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ArchivePrediction)))
}
