package server

import (
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thomas-vilte/ghdash/internal/errors"
	"github.com/thomas-vilte/ghdash/internal/logger"
	"github.com/thomas-vilte/ghdash/internal/models"
	"github.com/thomas-vilte/ghdash/internal/vcs"
)

func errorBody(message string) gin.H {
	return gin.H{"success": false, "error": message}
}

// bindJSON decodes the request body into dst. An empty body leaves dst at
// its zero value.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !stderrors.Is(err, io.EOF) {
		logger.Warn(c.Request.Context(), "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, errorBody(errors.ErrInvalidRequest.WithError(err).Error()))
		return false
	}
	return true
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"github_token": s.githubToken})
}

func (s *Server) handleSummarize(c *gin.Context) {
	var req models.SummarizeRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, s.services.Summary.Summarize(c.Request.Context(), req))
}

func (s *Server) handlePrioritize(c *gin.Context) {
	var req models.PrioritizeRequest
	if !bindJSON(c, &req) {
		return
	}
	priorities := s.services.Prioritize.Prioritize(c.Request.Context(), req.Issues)
	c.JSON(http.StatusOK, models.PrioritizeResponse{Priorities: priorities})
}

func (s *Server) handleMyActivity(c *gin.Context) {
	var req models.ActivityRequest
	if c.Request.Method == http.MethodGet {
		req.Token = c.Query("token")
	} else if !bindJSON(c, &req) {
		return
	}
	items := s.services.Activity.MyActivity(c.Request.Context(), req.Token)
	c.JSON(http.StatusOK, models.ActivityResponse{Items: items})
}

func (s *Server) handleChatIssue(c *gin.Context) {
	var req models.ChatRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := s.services.Chat.Chat(c.Request.Context(), req)
	if err != nil {
		logger.Error(c.Request.Context(), "chat turn failed", err)
		c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCreateIssue(c *gin.Context) {
	var req models.CreateIssueRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, s.services.Issues.CreateIssue(c.Request.Context(), req))
}

func (s *Server) handleCreateIssueWithProject(c *gin.Context) {
	var req models.CreateIssueWithProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, s.services.Issues.CreateIssueWithProject(c.Request.Context(), req))
}

func (s *Server) handleGetProjects(c *gin.Context) {
	var req models.ProjectsRequest
	if !bindJSON(c, &req) {
		return
	}
	projects, err := s.services.Issues.ListProjects(c.Request.Context(), req.Repo)
	if err != nil {
		c.JSON(http.StatusOK, upstreamFailure(c, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "projects": projects})
}

func (s *Server) handleGetProjectFields(c *gin.Context) {
	var req models.ProjectFieldsRequest
	if !bindJSON(c, &req) {
		return
	}
	fields, err := s.services.Issues.ListProjectFields(c.Request.Context(), req.ProjectID)
	if err != nil {
		c.JSON(http.StatusOK, upstreamFailure(c, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "fields": fields})
}

// upstreamFailure passes GraphQL errors through as they came and reports
// anything else as a message.
func upstreamFailure(c *gin.Context, err error) gin.H {
	logger.Error(c.Request.Context(), "project query failed", err)
	var gqlErr *vcs.GraphQLError
	if stderrors.As(err, &gqlErr) {
		return gin.H{"success": false, "errors": gqlErr.Errors}
	}
	return errorBody(err.Error())
}

func (s *Server) handleNoRoute(c *gin.Context) {
	path := c.Request.URL.Path
	isRead := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead
	if strings.HasPrefix(path, "/api/") || path == "/api" || !isRead || s.webDir == "" {
		c.JSON(http.StatusNotFound, errorBody("Route not found: "+path))
		return
	}
	http.FileServer(http.Dir(s.webDir)).ServeHTTP(c.Writer, c.Request)
}
