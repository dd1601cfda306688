package github

import (
	"context"
	"encoding/json"
	"fmt"

	domainErrors "github.com/thomas-vilte/ghdash/internal/errors"
	"github.com/thomas-vilte/ghdash/internal/logger"
	"github.com/thomas-vilte/ghdash/internal/models"
	"github.com/thomas-vilte/ghdash/internal/vcs"
)

const listRepositoryProjectsQuery = `
query ListRepositoryProjects($owner: String!, $repo: String!) {
  repository(owner: $owner, name: $repo) {
    projectsV2(first: 20, orderBy: {field: UPDATED_AT, direction: DESC}) {
      nodes {
        id
        title
        number
        shortDescription
      }
    }
  }
}`

const getProjectFieldsQuery = `
query GetProjectFields($projectId: ID!) {
  node(id: $projectId) {
    ... on ProjectV2 {
      fields(first: 20) {
        nodes {
          ... on ProjectV2Field {
            id
            name
            dataType
          }
          ... on ProjectV2SingleSelectField {
            id
            name
            dataType
            options {
              id
              name
            }
          }
          ... on ProjectV2IterationField {
            id
            name
            dataType
            configuration {
              iterations {
                id
                title
                startDate
                duration
              }
            }
          }
        }
      }
    }
  }
}`

const addProjectItemMutation = `
mutation AddIssueToProject($projectId: ID!, $contentId: ID!) {
  addProjectV2ItemById(input: {projectId: $projectId, contentId: $contentId}) {
    item {
      id
    }
  }
}`

const updateProjectFieldMutation = `
mutation UpdateProjectField($projectId: ID!, $itemId: ID!, $fieldId: ID!, $value: ProjectV2FieldValue!) {
  updateProjectV2ItemFieldValue(input: {projectId: $projectId, itemId: $itemId, fieldId: $fieldId, value: $value}) {
    projectV2Item {
      id
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage   `json:"data"`
	Errors []json.RawMessage `json:"errors"`
}

// execGraphQL posts one document and decodes its data into out. A response
// carrying an errors array is reported as *vcs.GraphQLError.
func (ghc *GitHubClient) execGraphQL(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	ctx, cancel := ghc.withTimeout(ctx)
	defer cancel()

	req, err := ghc.graphql.NewRequest("POST", ghc.graphqlURL, graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return domainErrors.ErrGraphQL.WithError(err).WithContext("operation", operation)
	}

	var gqlResp graphQLResponse
	resp, err := ghc.graphql.Do(ctx, req, &gqlResp)
	if err != nil {
		return handleGitHubError(resp, err, operation)
	}

	if len(gqlResp.Errors) > 0 {
		logger.Warn(ctx, "github graphql returned errors",
			"operation", operation,
			"errors", len(gqlResp.Errors))
		return domainErrors.ErrGraphQL.WithError(&vcs.GraphQLError{Errors: gqlResp.Errors}).
			WithContext("operation", operation)
	}

	if out == nil || len(gqlResp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return domainErrors.ErrGraphQL.WithError(fmt.Errorf("decode %s response: %w", operation, err))
	}
	return nil
}

func (ghc *GitHubClient) ListRepositoryProjects(ctx context.Context, repo string) ([]models.Project, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	var data struct {
		Repository *struct {
			ProjectsV2 struct {
				Nodes []models.Project `json:"nodes"`
			} `json:"projectsV2"`
		} `json:"repository"`
	}
	err = ghc.execGraphQL(ctx, "list repository projects", listRepositoryProjectsQuery,
		map[string]any{"owner": owner, "repo": name}, &data)
	if err != nil {
		return nil, err
	}

	if data.Repository == nil || data.Repository.ProjectsV2.Nodes == nil {
		return []models.Project{}, nil
	}
	return data.Repository.ProjectsV2.Nodes, nil
}

func (ghc *GitHubClient) ListProjectFields(ctx context.Context, projectID string) ([]models.ProjectField, error) {
	var data struct {
		Node *struct {
			Fields struct {
				Nodes []models.ProjectField `json:"nodes"`
			} `json:"fields"`
		} `json:"node"`
	}
	err := ghc.execGraphQL(ctx, "get project fields", getProjectFieldsQuery,
		map[string]any{"projectId": projectID}, &data)
	if err != nil {
		return nil, err
	}

	if data.Node == nil || data.Node.Fields.Nodes == nil {
		return []models.ProjectField{}, nil
	}
	return data.Node.Fields.Nodes, nil
}

func (ghc *GitHubClient) AddProjectItem(ctx context.Context, projectID, contentID string) (string, error) {
	var data struct {
		AddProjectV2ItemByID struct {
			Item struct {
				ID string `json:"id"`
			} `json:"item"`
		} `json:"addProjectV2ItemById"`
	}
	err := ghc.execGraphQL(ctx, "add project item", addProjectItemMutation,
		map[string]any{"projectId": projectID, "contentId": contentID}, &data)
	if err != nil {
		return "", err
	}
	return data.AddProjectV2ItemByID.Item.ID, nil
}

func (ghc *GitHubClient) UpdateProjectItemField(ctx context.Context, projectID, itemID, fieldID string, value models.ProjectFieldValue) error {
	return ghc.execGraphQL(ctx, "update project field", updateProjectFieldMutation,
		map[string]any{
			"projectId": projectID,
			"itemId":    itemID,
			"fieldId":   fieldID,
			"value":     value,
		}, nil)
}
