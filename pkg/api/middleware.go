package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/messages"
)

const (
	sessionCookie = "session_id"
	sessionKey    = "session_id"

	// One week, matching the client-side session lifetime.
	sessionMaxAge = 7 * 24 * 60 * 60
)

// sessionMiddleware assigns a session id cookie on first contact and makes
// sure the corresponding session row exists before any handler runs.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.New().String()
			c.SetCookie(sessionCookie, sid, sessionMaxAge, "/", "", false, true)
			s.Logger.Debug(messages.MsgSessionCreated, "session_id", sid)
		}

		if err := s.Store.EnsureSession(sid); err != nil {
			s.Logger.Error("failed to ensure session", "session_id", sid, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": messages.ErrInternal})
			return
		}

		c.Set(sessionKey, sid)
		c.Next()
	}
}

// maxBodySize caps request bodies at the configured upload limit so oversized
// uploads fail fast instead of filling the disk.
func (s *Server) maxBodySize() gin.HandlerFunc {
	limit := s.Env.MaxUploadBytes()
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
