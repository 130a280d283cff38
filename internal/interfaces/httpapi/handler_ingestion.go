package httpapi

import (
	"net/http"
)

// RunFetchMatchesJob triggers one synchronous ingestion sweep and returns its
// summary. Cached match listings are dropped afterwards so the fresh rows are
// visible immediately.
func (h *Handler) RunFetchMatchesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFetchMatchesJob")
	defer span.End()

	result := h.ingestService.Run(ctx)
	if h.matchService != nil {
		h.matchService.InvalidateListings(ctx)
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(ctx, w, status, result)
}
