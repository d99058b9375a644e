package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/chris/jot/internal/agent"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, errorEnvelope{Error: apiError{Message: msg, Code: code}})
}

// respondAgentError maps agent errors onto HTTP statuses.
func (s *Server) respondAgentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, agent.ErrValidation):
		respondError(c, http.StatusBadRequest, "validation", err)
	case errors.Is(err, agent.ErrEntryExists):
		respondError(c, http.StatusConflict, "entry_exists", err)
	case errors.Is(err, agent.ErrNotFound):
		respondError(c, http.StatusNotFound, "not_found", err)
	default:
		s.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal", errors.New("internal error"))
	}
}

func (s *Server) health(c *gin.Context) {
	status := "fallback"
	if s.llm != nil && s.llm.Configured() {
		status = "connected"
	}
	body := gin.H{"status": "ok", "api_status": status}
	if s.llm != nil {
		body["provider"] = s.llm.Provider()
		body["model"] = s.llm.Model()
	}
	c.JSON(http.StatusOK, body)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", errors.New("username and password are required"))
		return
	}
	sess, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", err)
		return
	}
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.Token, maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

func (s *Server) logout(c *gin.Context) {
	sess := sessionFrom(c)
	s.auth.Logout(sess.Token)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (s *Server) me(c *gin.Context) {
	sess := sessionFrom(c)
	c.JSON(http.StatusOK, gin.H{"username": sess.Username, "name": sess.Name})
}

type entryDate struct {
	Date    string `json:"date"`
	Display string `json:"display"`
}

func (s *Server) listEntries(c *gin.Context) {
	dates, err := s.agent.Dates()
	if err != nil {
		s.respondAgentError(c, err)
		return
	}
	out := make([]entryDate, 0, len(dates))
	for _, d := range dates {
		out = append(out, entryDate{Date: d, Display: agent.FormatDate(d, "display")})
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}

func (s *Server) getEntry(c *gin.Context) {
	date := c.Param("date")
	var (
		view *agent.View
		err  error
	)
	if date == "today" {
		view, err = s.agent.Today()
	} else {
		view, err = s.agent.Entry(date)
	}
	if err != nil {
		s.respondAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type createEntryRequest struct {
	agent.Form
	Overwrite bool `json:"overwrite"`
}

func (s *Server) createEntry(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if c.Query("overwrite") == "true" {
		req.Overwrite = true
	}
	sub, err := s.agent.Submit(c.Request.Context(), req.Form, req.Overwrite)
	if err != nil {
		s.respondAgentError(c, err)
		return
	}
	s.log.Info("entry submitted", zap.String("username", sessionFrom(c).Username), zap.String("date", sub.Entry.Date))
	c.JSON(http.StatusCreated, sub)
}

func (s *Server) stats(c *gin.Context) {
	st, err := s.agent.Stats()
	if err != nil {
		s.respondAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

