// Package server exposes the interview service over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rsoni/hireview/internal/interview"
)

// Server wires the interview service into a gin router.
type Server struct {
	service *interview.Service
	log     *zap.Logger
}

// New creates a Server.
func New(service *interview.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{service: service, log: log}
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log), cors())

	r.GET("/api/health", s.health)

	api := r.Group("/api/interviews")
	{
		api.POST("", s.createInterview)
		api.GET("", s.listInterviews)
		api.GET("/:id", s.getInterview)
		api.GET("/:id/next-question", s.nextQuestion)
		api.POST("/:id/answers", s.submitAnswer)
		api.POST("/:id/complete", s.completeInterview)
		api.GET("/:id/report", s.getReport)
	}

	return r
}

// Run starts the HTTP server and shuts it down when ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// httpError maps domain errors onto status codes.
func httpError(c *gin.Context, err error) {
	var verr *interview.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"detail": verr.Error()})
	case errors.Is(err, interview.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Interview not found"})
	case errors.Is(err, interview.ErrUnknownQuestion):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Question not found"})
	case errors.Is(err, interview.ErrAlreadyAnswered):
		c.JSON(http.StatusConflict, gin.H{"detail": "Question already answered"})
	case errors.Is(err, interview.ErrCompleted):
		c.JSON(http.StatusConflict, gin.H{"detail": "Interview already completed"})
	case errors.Is(err, interview.ErrReportNotReady):
		c.JSON(http.StatusNotFound, gin.H{"detail": "EVALUATION_NOT_FOUND: Interview not completed yet"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}
