package services

import (
	"context"
	"strings"

	"github.com/thomas-vilte/ghdash/internal/logger"
	"github.com/thomas-vilte/ghdash/internal/models"
	"github.com/thomas-vilte/ghdash/internal/vcs"
)

type ActivityService struct {
	newClient    vcs.ClientFactory
	defaultToken string
}

func NewActivityService(newClient vcs.ClientFactory, defaultToken string) *ActivityService {
	return &ActivityService{newClient: newClient, defaultToken: defaultToken}
}

// MyActivity lists the open issues and pull requests authored by the owner
// of token, falling back to the configured token. Upstream failures yield an
// empty list.
func (s *ActivityService) MyActivity(ctx context.Context, token string) []models.ActivityItem {
	if strings.TrimSpace(token) == "" {
		token = s.defaultToken
	}
	client := s.newClient(token)

	login, err := client.GetAuthenticatedUser(ctx)
	if err != nil {
		logger.Error(ctx, "failed to resolve authenticated user", err)
		return []models.ActivityItem{}
	}
	if login == "" {
		logger.Warn(ctx, "authenticated user has no login")
		return []models.ActivityItem{}
	}
	ctx = logger.With(ctx, "login", login)

	items, err := client.SearchOpenItemsByAuthor(ctx, login)
	if err != nil {
		logger.Error(ctx, "failed to search activity", err)
		return []models.ActivityItem{}
	}

	if len(items) == 0 {
		logger.Warn(ctx, "no open issues or pull requests found",
			"hint", "check that the token is valid and has the 'repo' scope at https://github.com/settings/tokens")
		return []models.ActivityItem{}
	}

	for i := range items {
		items[i].Repository = repositoryFromURL(items[i].RepositoryURL)
	}
	logger.Info(ctx, "activity fetched", "items", len(items))
	return items
}

// repositoryFromURL derives owner and name from an API repository_url such as
// https://api.github.com/repos/octo/demo.
func repositoryFromURL(repoURL string) *models.ActivityRepository {
	parts := strings.Split(strings.TrimRight(repoURL, "/"), "/")
	if repoURL == "" || len(parts) < 2 {
		return nil
	}
	owner, name := parts[len(parts)-2], parts[len(parts)-1]
	return &models.ActivityRepository{
		Name:     name,
		FullName: owner + "/" + name,
		Owner:    models.RepositoryOwner{Login: owner},
	}
}
