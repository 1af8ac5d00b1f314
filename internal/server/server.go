package server

import (
	"net/http"

	"base64-converter/internal/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	db       *gorm.DB
	cfg      config.Config
	ws       *wsHub
	sessions *sessionStore
	api      *gin.Engine
}

// New builds a server. conn may be nil, in which case usage is only logged.
func New(conn *gorm.DB, cfg config.Config) *Server {
	s := &Server{
		db:  conn,
		cfg: cfg,
		ws:  newWSHub(),
	}
	s.sessions = newSessionStore(cfg.SessionIdle(), s.newSessionEntry)
	s.api = s.apiRouter()
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	mux.Handle("/api/", s.api)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}

// Close releases every live session.
func (s *Server) Close() {
	s.sessions.closeAll()
}
