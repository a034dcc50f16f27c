package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("PUT /v1/teams/{teamID}", handler.SaveTeam)
	mux.HandleFunc("DELETE /v1/teams/{teamID}", handler.DeleteTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/stats", handler.GetTeamStats)
	mux.HandleFunc("PUT /v1/teams/{teamID}/participation", handler.SetParticipation)
	mux.HandleFunc("GET /v1/participation", handler.GetParticipation)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/grid", handler.GetGrid)
	mux.HandleFunc("GET /v1/matches/export", handler.ExportMatches)
	mux.HandleFunc("POST /v1/matches/import", handler.ImportMatches)
	mux.HandleFunc("PUT /v1/matches/{teamA}/{teamB}", handler.SubmitMatch)
	mux.HandleFunc("DELETE /v1/matches/{teamA}/{teamB}", handler.ClearMatch)
}

func registerStandingsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/standings/export", handler.ExportStandings)
	mux.HandleFunc("GET /v1/export", handler.ExportBundle)
	mux.HandleFunc("GET /v1/settings", handler.GetSettings)
	mux.HandleFunc("PUT /v1/settings", handler.UpdateSettings)
}
