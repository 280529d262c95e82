package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// InstallationToken is the short-lived credential minted for one run. The
// expiry is logged for debugging but never tracked: the token is used for at
// most two immediate calls and discarded at process exit.
type InstallationToken struct {
	Token               string            `json:"token"`
	ExpiresAt           time.Time         `json:"expires_at"`
	Permissions         map[string]string `json:"permissions"`
	RepositorySelection string            `json:"repository_selection"`
}

// tokenPermissions is the minimal grant needed to list and dispatch Actions
// workflows.
var tokenPermissions = map[string]any{
	"permissions": map[string]string{
		"actions":  "write",
		"contents": "read",
	},
}

// ResolveInstallation looks up the app's installation on org using the app
// assertion. A 404 is the distinguished "not installed" condition.
func (c *Client) ResolveInstallation(ctx context.Context, appJWT, org string) (int64, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/orgs/"+org+"/installation", bearerAuth(appJWT), nil)
	if err != nil {
		return 0, err
	}
	if status == http.StatusNotFound {
		return 0, &NotInstalledError{Org: org}
	}
	if status >= 300 {
		return 0, &APIError{Op: "resolve installation", StatusCode: status, Body: string(body)}
	}

	var inst struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &inst); err != nil {
		return 0, fmt.Errorf("decode installation: %w", err)
	}
	return inst.ID, nil
}

// CreateInstallationToken exchanges the app assertion for an installation
// token scoped to actions:write and contents:read. A 422 means the
// installation does not permit the requested scopes; retry once with no
// scope request and take whatever is already granted.
func (c *Client) CreateInstallationToken(ctx context.Context, appJWT string, installationID int64) (*InstallationToken, error) {
	path := fmt.Sprintf("/app/installations/%d/access_tokens", installationID)

	status, body, err := c.do(ctx, http.MethodPost, path, bearerAuth(appJWT), tokenPermissions)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnprocessableEntity {
		status, body, err = c.do(ctx, http.MethodPost, path, bearerAuth(appJWT), nil)
		if err != nil {
			return nil, err
		}
	}
	if status >= 300 {
		return nil, &APIError{Op: "create installation token", StatusCode: status, Body: string(body)}
	}

	var tok InstallationToken
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("decode installation token: %w", err)
	}

	c.logger.Debug("installation token minted",
		"expires_at", tok.ExpiresAt,
		"repository_selection", tok.RepositorySelection)
	return &tok, nil
}
