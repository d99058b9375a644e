package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/chris/jot/internal/agent"
	"github.com/chris/jot/internal/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LLMStatus reports whether completions can reach a provider.
type LLMStatus interface {
	Configured() bool
	Provider() string
	Model() string
}

type Server struct {
	engine *gin.Engine
	agent  *agent.Agent
	auth   *auth.Authenticator
	llm    LLMStatus
	log    *zap.Logger
}

func New(ag *agent.Agent, au *auth.Authenticator, status LLMStatus, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		agent: ag,
		auth:  au,
		llm:   status,
		log:   log.With(zap.String("component", "server")),
	}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	api.POST("/login", s.login)

	protected := api.Group("/")
	protected.Use(s.requireAuth())
	{
		protected.POST("/logout", s.logout)
		protected.GET("/me", s.me)
		protected.GET("/entries", s.listEntries)
		protected.GET("/entries/:date", s.getEntry)
		protected.POST("/entries", s.createEntry)
		protected.GET("/stats", s.stats)
	}
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
