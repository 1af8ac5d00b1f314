package server

import (
	"log"
	"net/http"

	"base64-converter/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	entry := s.sessions.ensure(w, r)
	opts := entry.session.Options()
	page := web.PageState{
		State:              entry.session.State(),
		MaxImageBytes:      opts.MaxImageBytes,
		RequireImagePrefix: opts.RequireImagePrefix,
		DefaultImageMIME:   opts.DefaultImageMIME,
		UsageEnabled:       s.db != nil,
	}
	templ.Handler(web.Home(page)).ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":   "ok",
		"sessions": s.sessions.count(),
		"database": "disabled",
	}
	if s.db != nil {
		status["database"] = "ok"
		sqlDB, err := s.db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			log.Printf("health check failed error=%v", err)
			status["status"] = "degraded"
			status["database"] = "unreachable"
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
	}
	writeJSON(w, http.StatusOK, status)
}
