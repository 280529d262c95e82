package main

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatchCall struct {
	Path   string
	Ref    string
	Inputs map[string]string
}

// fakeAPI records the calls of one run against an in-process GitHub API.
type fakeAPI struct {
	t *testing.T

	installationStatus int // 0 means found
	rejectScopedToken  bool

	tokenBodies []string
	dispatches  []dispatchCall
	listCalls   int
}

func (f *fakeAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/orgs/jai-nexus/installation":
			assert.True(f.t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))
			if f.installationStatus != 0 {
				w.WriteHeader(f.installationStatus)
				return
			}
			_, _ = w.Write([]byte(`{"id": 1}`))

		case r.Method == http.MethodPost && r.URL.Path == "/app/installations/1/access_tokens":
			body, _ := io.ReadAll(r.Body)
			f.tokenBodies = append(f.tokenBodies, string(body))
			if f.rejectScopedToken && len(f.tokenBodies) == 1 {
				w.WriteHeader(http.StatusUnprocessableEntity)
				return
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"token": "ghs_test", "expires_at": "2030-01-01T00:00:00Z"}`))

		case r.Method == http.MethodGet && r.URL.Path == "/repos/jai-nexus/.github/actions/workflows":
			f.listCalls++
			assert.Equal(f.t, "token ghs_test", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{
				"total_count": 3,
				"workflows": [
					{"id": 1, "name": "Org Tasks", "path": ".github/workflows/org_tasks.yml", "state": "active"},
					{"id": 2, "name": "Org Inventory", "path": ".github/workflows/org_inventory.yml", "state": "active"},
					{"id": 3, "name": "", "path": ".github/workflows/org_hardener.yml", "state": "active"}
				]
			}`))

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/dispatches"):
			assert.Equal(f.t, "token ghs_test", r.Header.Get("Authorization"))
			var body struct {
				Ref    string            `json:"ref"`
				Inputs map[string]string `json:"inputs"`
			}
			assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
			f.dispatches = append(f.dispatches, dispatchCall{Path: r.URL.Path, Ref: body.Ref, Inputs: body.Inputs})
			w.WriteHeader(http.StatusNoContent)

		default:
			f.t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	})
}

func testPrivateKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}))
}

func runCommand(t *testing.T, apiURL, keyPEM string, args ...string) (string, error) {
	t.Helper()

	root := newRootCommand()
	var out bytes.Buffer
	root.Writer = &out

	full := append([]string{
		"orgdispatch",
		"--api", apiURL,
		"--app-id", "4242",
		"--private-key", keyPEM,
		"--org", "jai-nexus",
		"--repo", ".github",
		"--branch", "main",
	}, args...)

	err := root.Run(t.Context(), full)
	return out.String(), err
}

func TestTasksDispatchesOnce(t *testing.T) {
	api := &fakeAPI{t: t}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	out, err := runCommand(t, srv.URL, testPrivateKeyPEM(t), "tasks", "--publish", "true", "--subset", "a,b")
	require.NoError(t, err)

	require.Len(t, api.dispatches, 1)
	call := api.dispatches[0]
	assert.Equal(t, "/repos/jai-nexus/.github/actions/workflows/org_tasks.yml/dispatches", call.Path)
	assert.Equal(t, "main", call.Ref)
	assert.Equal(t, map[string]string{"publish": "true", "subset": "a,b"}, call.Inputs)

	assert.Contains(t, out, "✓ Dispatched org_tasks.yml to jai-nexus/.github@main")
	assert.Contains(t, out, `"publish":"true"`)
	assert.Contains(t, out, `"subset":"a,b"`)
}

func TestInventoryInputs(t *testing.T) {
	api := &fakeAPI{t: t}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	_, err := runCommand(t, srv.URL, testPrivateKeyPEM(t), "inventory", "--issue", "26")
	require.NoError(t, err)

	require.Len(t, api.dispatches, 1)
	assert.Equal(t, "/repos/jai-nexus/.github/actions/workflows/org_inventory.yml/dispatches", api.dispatches[0].Path)
	assert.Equal(t, map[string]string{"subset": "", "issue_number": "26"}, api.dispatches[0].Inputs)
}

func TestHardenDefaultsToDryRun(t *testing.T) {
	api := &fakeAPI{t: t}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	_, err := runCommand(t, srv.URL, testPrivateKeyPEM(t), "harden")
	require.NoError(t, err)

	require.Len(t, api.dispatches, 1)
	assert.Equal(t, "/repos/jai-nexus/.github/actions/workflows/org_hardener.yml/dispatches", api.dispatches[0].Path)
	assert.Equal(t, map[string]string{"dry_run": "true", "subset": ""}, api.dispatches[0].Inputs)
}

func TestCheckListsWorkflowsWithoutDispatching(t *testing.T) {
	api := &fakeAPI{t: t}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	out, err := runCommand(t, srv.URL, testPrivateKeyPEM(t), "check")
	require.NoError(t, err)

	assert.Equal(t, 1, api.listCalls)
	assert.Empty(t, api.dispatches)
	assert.Contains(t, out, "Workflows (3):")
	assert.Contains(t, out, "Org Tasks")
	// Falls back to the path when the workflow has no name.
	assert.Contains(t, out, ".github/workflows/org_hardener.yml")
}

func TestNotInstalledStopsBeforeTokenExchange(t *testing.T) {
	api := &fakeAPI{t: t, installationStatus: http.StatusNotFound}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	_, err := runCommand(t, srv.URL, testPrivateKeyPEM(t), "tasks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jai-nexus")
	assert.Contains(t, err.Error(), "install it")

	assert.Empty(t, api.tokenBodies, "no token exchange after a not-installed failure")
	assert.Empty(t, api.dispatches)
}

func TestScopeFallbackAtCommandLevel(t *testing.T) {
	api := &fakeAPI{t: t, rejectScopedToken: true}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	_, err := runCommand(t, srv.URL, testPrivateKeyPEM(t), "tasks")
	require.NoError(t, err)

	require.Len(t, api.tokenBodies, 2)
	assert.Contains(t, api.tokenBodies[0], `"actions":"write"`)
	assert.Empty(t, api.tokenBodies[1])
	require.Len(t, api.dispatches, 1)
}

func TestInvalidPublishFailsBeforeNetwork(t *testing.T) {
	api := &fakeAPI{t: t}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	_, err := runCommand(t, srv.URL, testPrivateKeyPEM(t), "tasks", "--publish", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--publish")

	assert.Empty(t, api.tokenBodies)
	assert.Empty(t, api.dispatches)
}

func TestBadPrivateKeyFailsBeforeNetwork(t *testing.T) {
	api := &fakeAPI{t: t}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	_, err := runCommand(t, srv.URL, "not a pem", "tasks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private key")
	assert.Empty(t, api.tokenBodies)
}

func TestDispatchFailureSurfacesStatusAndBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orgs/jai-nexus/installation", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 1}`))
	})
	mux.HandleFunc("POST /app/installations/1/access_tokens", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token": "ghs_test", "expires_at": "2030-01-01T00:00:00Z"}`))
	})
	mux.HandleFunc("POST /repos/jai-nexus/.github/actions/workflows/org_tasks.yml/dispatches", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "Resource not accessible by integration"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := runCommand(t, srv.URL, testPrivateKeyPEM(t), "tasks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "Resource not accessible by integration")
}
