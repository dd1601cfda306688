package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thomas-vilte/ghdash/internal/logger"
	"github.com/thomas-vilte/ghdash/internal/models"
)

const shutdownTimeout = 10 * time.Second

type ChatService interface {
	Chat(ctx context.Context, req models.ChatRequest) (models.ChatResult, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, req models.SummarizeRequest) *models.SummaryResponse
}

type Prioritizer interface {
	Prioritize(ctx context.Context, issues []models.IssueRef) []models.ItemID
}

type ActivityLister interface {
	MyActivity(ctx context.Context, token string) []models.ActivityItem
}

type IssueManager interface {
	CreateIssue(ctx context.Context, req models.CreateIssueRequest) models.CreateIssueResult
	CreateIssueWithProject(ctx context.Context, req models.CreateIssueWithProjectRequest) models.CreateIssueResult
	ListProjects(ctx context.Context, repo string) ([]models.Project, error)
	ListProjectFields(ctx context.Context, projectID string) ([]models.ProjectField, error)
}

// Services bundles the collaborators the HTTP handlers delegate to.
type Services struct {
	Chat       ChatService
	Summary    Summarizer
	Prioritize Prioritizer
	Activity   ActivityLister
	Issues     IssueManager
}

// Server is the dashboard HTTP API plus the static frontend.
type Server struct {
	router      *gin.Engine
	services    Services
	githubToken string
	webDir      string
}

type Option func(*Server)

// WithWebDir sets the directory static files are served from.
func WithWebDir(dir string) Option {
	return func(s *Server) {
		s.webDir = dir
	}
}

func NewServer(services Services, githubToken string, opts ...Option) *Server {
	s := &Server{
		router:      gin.New(),
		services:    services,
		githubToken: githubToken,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(
		RequestIDMiddleware(),
		LoggingMiddleware(),
		RecoveryMiddleware(),
		CORSMiddleware(),
	)
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/config", s.handleConfig)
		api.POST("/config", s.handleConfig)
		api.POST("/summarize", s.handleSummarize)
		api.POST("/prioritize", s.handlePrioritize)
		api.GET("/my-activity", s.handleMyActivity)
		api.POST("/my-activity", s.handleMyActivity)
		api.POST("/chat-issue", s.handleChatIssue)
		api.POST("/create-issue", s.handleCreateIssue)
		api.POST("/get-projects", s.handleGetProjects)
		api.POST("/get-project-fields", s.handleGetProjectFields)
		api.POST("/create-issue-with-project", s.handleCreateIssueWithProject)
	}

	s.router.NoRoute(s.handleNoRoute)
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info(ctx, "shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
