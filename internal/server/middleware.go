package server

import (
	"net/http"
	"strings"

	"github.com/chris/jot/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "jot_session"
	sessionKey    = "session"
)

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", auth.ErrNoSession)
			c.Abort()
			return
		}
		sess, err := s.auth.Session(token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "unauthorized", err)
			c.Abort()
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie
	}
	return ""
}

// sessionFrom returns the session set by requireAuth.
func sessionFrom(c *gin.Context) auth.Session {
	v, _ := c.Get(sessionKey)
	sess, _ := v.(auth.Session)
	return sess
}
