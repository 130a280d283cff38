package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/matchpulse/matchpulse-api/internal/domain/prediction"
	"github.com/matchpulse/matchpulse-api/internal/usecase"
)

func (h *Handler) ListPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPredictions")
	defer span.End()

	query := r.URL.Query()
	filter := prediction.Filter{
		League:          strings.TrimSpace(query.Get("league")),
		IncludeArchived: query.Get("include_archived") == "true",
		PremiumOnly:     query.Get("premium") == "true",
	}
	if rawLimit := strings.TrimSpace(query.Get("limit")); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput))
			return
		}
		filter.Limit = limit
	}

	items, err := h.predictionService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list predictions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]predictionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, predictionToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPrediction")
	defer span.End()

	item, err := h.predictionService.Get(ctx, r.PathValue("predictionID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(item))
}

func (h *Handler) CreatePrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePrediction")
	defer span.End()

	var req upsertPredictionRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.predictionService.Create(ctx, req.toDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "create prediction failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, predictionToDTO(created))
}

func (h *Handler) UpdatePrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePrediction")
	defer span.End()

	var req upsertPredictionRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := req.toDomain()
	input.ID = r.PathValue("predictionID")

	updated, err := h.predictionService.Update(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update prediction failed", "prediction_id", input.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(updated))
}

func (h *Handler) ArchivePrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ArchivePrediction")
	defer span.End()

	predictionID := r.PathValue("predictionID")
	if err := h.predictionService.Archive(ctx, predictionID); err != nil {
		h.logger.WarnContext(ctx, "archive prediction failed", "prediction_id", predictionID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "archived"})
}
