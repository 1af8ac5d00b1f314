package server

import (
	"log"
	"net/http"
	"time"

	"base64-converter/internal/converter"
	"base64-converter/internal/db"

	"github.com/gin-gonic/gin"
)

// usageTracker logs every feature use and, with a database configured,
// stores it as a usage event. Converted content is never recorded.
func (s *Server) usageTracker(sessionID string, mode func() converter.Mode) converter.Tracker {
	return converter.TrackerFunc(func(feature string) {
		active := mode()
		log.Printf("feature used session_id=%s feature=%s mode=%s", sessionID, feature, active)
		if s.db == nil {
			return
		}
		if err := db.RecordUsage(s.db, sessionID, feature, usagePayload(active)); err != nil {
			log.Printf("usage record failed session_id=%s feature=%s error=%v", sessionID, feature, err)
		}
	})
}

func usagePayload(mode converter.Mode) map[string]any {
	return map[string]any{"source": "web", "mode": mode.String()}
}

func (s *Server) touchSession(sessionID string, mode converter.Mode) {
	if s.db == nil {
		return
	}
	if err := db.TouchSession(s.db, sessionID, mode.String(), time.Now().UTC()); err != nil {
		log.Printf("session touch failed session_id=%s error=%v", sessionID, err)
	}
}

func (s *Server) handleUsage(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "usage tracking is not configured"})
		return
	}
	counts, err := db.FeatureCounts(s.db)
	if err != nil {
		log.Printf("usage query failed error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load usage"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"features": counts})
}
