package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Workflow is one entry of a repository's Actions workflow collection.
type Workflow struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Path  string `json:"path"`
	State string `json:"state"`
}

// ListWorkflows returns the workflows defined in org/repo.
func (c *Client) ListWorkflows(ctx context.Context, token, org, repo string) ([]Workflow, error) {
	path := fmt.Sprintf("/repos/%s/%s/actions/workflows", org, repo)

	status, body, err := c.do(ctx, http.MethodGet, path, tokenAuth(token), nil)
	if err != nil {
		return nil, err
	}
	if status >= 300 {
		return nil, &APIError{Op: "list workflows", StatusCode: status, Body: string(body)}
	}

	var list struct {
		TotalCount int        `json:"total_count"`
		Workflows  []Workflow `json:"workflows"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode workflow list: %w", err)
	}
	return list.Workflows, nil
}

// Dispatch triggers one run of workflowFile on ref with the given inputs.
// GitHub answers 204 on success; anything below 300 counts.
func (c *Client) Dispatch(ctx context.Context, token, org, repo, workflowFile, ref string, inputs map[string]string) error {
	path := fmt.Sprintf("/repos/%s/%s/actions/workflows/%s/dispatches", org, repo, workflowFile)
	payload := map[string]any{"ref": ref, "inputs": inputs}

	status, body, err := c.do(ctx, http.MethodPost, path, tokenAuth(token), payload)
	if err != nil {
		return err
	}
	if status >= 300 {
		return &APIError{Op: "dispatch " + workflowFile, StatusCode: status, Body: string(body)}
	}
	return nil
}
