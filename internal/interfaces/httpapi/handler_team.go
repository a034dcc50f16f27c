package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tennis-roundrobin/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.rosterService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	state, err := h.participationService.State(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get participation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t, state))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := pathTeamID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	state, err := h.participationService.State(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item, state))
}

func (h *Handler) SaveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveTeam")
	defer span.End()

	teamID, err := pathTeamID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveTeamRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.SaveTeam(ctx, usecase.SaveTeamInput{
		ID:      teamID,
		Members: req.Members,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	state, err := h.participationService.State(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item, state))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	teamID, err := pathTeamID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.DeleteTeam(ctx, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"deleted_team_id": teamID})
}

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	teamID, err := pathTeamID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.standingsService.TeamStats(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team stats failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsToDTO(stats))
}

func (h *Handler) GetParticipation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetParticipation")
	defer span.End()

	state, err := h.participationService.State(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get participation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participationToDTO(state))
}

func (h *Handler) SetParticipation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetParticipation")
	defer span.End()

	teamID, err := pathTeamID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setParticipationRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.participationService.SetActive(ctx, teamID, *req.Active); err != nil {
		h.logger.WarnContext(ctx, "set participation failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participationEntryDTO{TeamID: teamID, Active: *req.Active})
}
