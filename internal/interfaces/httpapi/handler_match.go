package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/matchpulse/matchpulse-api/internal/domain/match"
	"github.com/matchpulse/matchpulse-api/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := r.URL.Query()
	filter := match.Filter{
		Sport:  strings.TrimSpace(query.Get("sport")),
		Status: strings.TrimSpace(query.Get("status")),
		League: strings.TrimSpace(query.Get("league")),
	}
	if rawLimit := strings.TrimSpace(query.Get("limit")); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput))
			return
		}
		filter.Limit = limit
	}

	records, err := h.matchService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, matchToDTO(rec))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
