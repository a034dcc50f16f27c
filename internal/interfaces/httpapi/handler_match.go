package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tennis-roundrobin/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	results, err := h.matchService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(results))
	for _, res := range results {
		items = append(items, matchToDTO(res))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SubmitMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitMatch")
	defer span.End()

	teamA, err := pathTeamID(r, "teamA")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamB, err := pathTeamID(r, "teamB")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitMatchRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.matchService.Submit(ctx, usecase.SubmitResultInput{
		TeamA:  teamA,
		TeamB:  teamB,
		ScoreA: *req.ScoreA,
		ScoreB: *req.ScoreB,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit match failed", "team_a", teamA, "team_b", teamB, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(res))
}

func (h *Handler) ClearMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearMatch")
	defer span.End()

	teamA, err := pathTeamID(r, "teamA")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamB, err := pathTeamID(r, "teamB")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchService.Clear(ctx, teamA, teamB); err != nil {
		h.logger.WarnContext(ctx, "clear match failed", "team_a", teamA, "team_b", teamB, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"team_a": teamA, "team_b": teamB})
}

func (h *Handler) ImportMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportMatches")
	defer span.End()

	var req importMatchesRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.SubmitResultInput, 0, len(req.Results))
	for _, item := range req.Results {
		inputs = append(inputs, usecase.SubmitResultInput{
			TeamA:  item.TeamA,
			TeamB:  item.TeamB,
			ScoreA: *item.ScoreA,
			ScoreB: *item.ScoreB,
		})
	}

	report, err := h.matchService.Import(ctx, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "import matches failed", "count", len(inputs), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importReportToDTO(report))
}

func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGrid")
	defer span.End()

	grid, err := h.matchService.Grid(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "build match grid failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gridToDTO(grid))
}
