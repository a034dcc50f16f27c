package httpapi

import (
	"net/http"
)

const csvContentType = "text/csv; charset=utf-8"

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	rows, err := h.standingsService.Standings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingRowToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ExportStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportStandings")
	defer span.End()

	body, err := h.exportService.StandingsCSV(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "export standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeCSV(ctx, w, "standings.csv", body)
}

func (h *Handler) ExportMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportMatches")
	defer span.End()

	body, err := h.exportService.ResultsCSV(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "export matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeCSV(ctx, w, "matches.csv", body)
}

func (h *Handler) ExportBundle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportBundle")
	defer span.End()

	bundle, err := h.exportService.Bundle(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "export bundle failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, exportBundleDTO{
		StandingsCSV: string(bundle.Standings),
		MatchesCSV:   string(bundle.Results),
	})
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSettings")
	defer span.End()

	current, err := h.settingsService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsDTO{MatchPoint: current.MatchPoint})
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSettings")
	defer span.End()

	var req updateSettingsRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.settingsService.UpdateMatchPoint(ctx, req.MatchPoint)
	if err != nil {
		h.logger.WarnContext(ctx, "update settings failed", "match_point", req.MatchPoint, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsDTO{MatchPoint: updated.MatchPoint})
}
