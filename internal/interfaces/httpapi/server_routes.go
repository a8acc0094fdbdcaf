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
	mux.HandleFunc("GET /v1/weeks/current", handler.GetCurrentWeek)
	mux.HandleFunc("GET /v1/weeks/{week}/matchups", handler.ListWeekMatchups)
	mux.HandleFunc("GET /v1/weeks/{week}/featured", handler.GetFeaturedMatchup)
	mux.HandleFunc("GET /v1/weeks/{week}/trend", handler.GetCommunityTrend)
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/dashboard", RequireAuth(verifier, http.HandlerFunc(handler.GetDashboard)))
	mux.Handle("GET /v1/weeks/{week}/picks", RequireAuth(verifier, http.HandlerFunc(handler.GetMyPicks)))
	mux.Handle("PUT /v1/weeks/{week}/picks", RequireAuth(verifier, http.HandlerFunc(handler.SaveMyPicks)))
	mux.Handle("GET /v1/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.GetLeaderboard)))
	mux.Handle("GET /v1/stats/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyStats)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/refresh-week", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshWeekJob)))
	mux.Handle("POST /v1/internal/jobs/refresh-standings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshStandingsJob)))
}
