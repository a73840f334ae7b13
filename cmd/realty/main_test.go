// ABOUTME: Tests for CLI commands and server wiring.
// ABOUTME: Verifies health check, API auth, admin round trips, list output and path validation.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/2389/realty/internal/config"
	"github.com/2389/realty/internal/resource"
	"github.com/2389/realty/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "9000"},
		API:    config.APIConfig{Timeout: 5 * time.Second},
		Admin:  config.AdminConfig{PageSize: 10},
	}
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "realty.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// startServer serves newServer over HTTP with the admin client pointed back at it.
func startServer(t *testing.T, c *config.Config, s *store.Store) *httptest.Server {
	t.Helper()
	var handler http.Handler
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	c.API.BaseURL = ts.URL
	h, err := newServer(c, s)
	require.NoError(t, err)
	handler = h
	return ts
}

func TestServer_Healthz(t *testing.T) {
	srv, err := newServer(testConfig(), openTestStore(t))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["ok"])
}

func TestServer_APIRequiresToken(t *testing.T) {
	c := testConfig()
	c.API.Token = "s3cret"
	srv, err := newServer(c, openTestStore(t))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/api/partners", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest("GET", "/api/partners", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code, "health check stays open")
}

func TestServer_APIRequestsAreLogged(t *testing.T) {
	s := openTestStore(t)
	srv, err := newServer(testConfig(), s)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/partners", strings.NewReader(`{"name":"Ayala Land","category":"Developer"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer user:maria")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	require.Eventually(t, func() bool {
		logs, err := s.GetRequestLogs(&store.RequestLogQuery{Resource: "partners"})
		return err == nil && len(logs) == 1 && logs[0].UserID == "maria"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServer_AdminRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for _, name := range []string{"Ayala Land", "BDO Home Loans"} {
		category := "Developer"
		if strings.HasPrefix(name, "BDO") {
			category = "Bank"
		}
		_, err := s.CreateRecord(ctx, "partners", map[string]any{"name": name, "category": category})
		require.NoError(t, err)
	}
	ts := startServer(t, testConfig(), s)

	resp, err := http.Get(ts.URL + "/admin/partners?filter=Bank")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "BDO Home Loans")
	assert.NotContains(t, body, ">Ayala Land<")

	recs, err := s.ListRecords(ctx, "partners")
	require.NoError(t, err)
	var bdo string
	for _, r := range recs {
		if r.Data["name"] == "BDO Home Loans" {
			bdo = r.ID
		}
	}
	require.NotEmpty(t, bdo)

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err = client.PostForm(ts.URL+"/admin/partners/"+bdo+"/delete?filter=Bank", url.Values{})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/partners?filter=Bank", resp.Header.Get("Location"))

	_, err = s.GetRecord(ctx, "partners", bdo)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListCommand_Local(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "realty.db")
	s, err := store.New(path)
	require.NoError(t, err)
	ctx := context.Background()
	for _, p := range []map[string]any{
		{"name": "Ayala Land", "category": "Developer"},
		{"name": "BDO Home Loans", "category": "Bank"},
		{"name": "BPI Family Savings", "category": "Bank"},
	} {
		_, err := s.CreateRecord(ctx, "partners", p)
		require.NoError(t, err)
	}
	require.NoError(t, s.Close())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"list", "partners", "--local", "--db", path, "--filter", "bank", "--sort", "name", "--desc", "--columns", "name,category"})
	require.NoError(t, cmd.Execute())

	got := out.String()
	assert.Contains(t, got, "BPI Family Savings")
	assert.Contains(t, got, "BDO Home Loans")
	assert.NotContains(t, got, "Ayala")
	assert.NotContains(t, got, "Website")
	assert.Less(t, strings.Index(got, "BPI"), strings.Index(got, "BDO"))
	assert.Contains(t, got, "page 1 of 1 (2 rows)")
}

func TestListCommand_UnknownResource(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"list", "spaceships", "--local", "--db", filepath.Join(t.TempDir(), "x.db")})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown resource")
}

func TestNewListEngine_PageSizePrecedence(t *testing.T) {
	e, err := newListEngine(mustResource(t, "partners"), 0, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, e.PageSize())

	e, err = newListEngine(mustResource(t, "partners"), 3, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, e.PageSize())

	_, err = newListEngine(mustResource(t, "partners"), -1, 7)
	assert.Error(t, err)
}

func mustResource(t *testing.T, slug string) resource.Schema {
	t.Helper()
	s, ok := resource.Get(slug)
	require.True(t, ok)
	return s
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return buf.String()
}

func TestValidateAndCleanDBPath_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "simple relative path", input: "realty.db"},
		{name: "path with directory", input: "./data/realty.db"},
		{name: "path with multiple directories", input: "./path/to/data/realty.db"},
		{name: "absolute path on Unix", input: "/tmp/realty.db"},
		{name: "path with whitespace trimmed", input: "  realty.db  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := validateAndCleanDBPath(tt.input)
			if err != nil {
				t.Errorf("validateAndCleanDBPath(%q) error = %v, want nil", tt.input, err)
			}
			if result == "" {
				t.Errorf("validateAndCleanDBPath(%q) returned empty string", tt.input)
			}
		})
	}
}

func TestValidateAndCleanDBPath_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		shouldContain string
	}{
		{name: "empty string", input: "", shouldContain: "cannot be empty"},
		{name: "current directory dot", input: ".", shouldContain: "cannot be empty, '.', or '/'"},
		{name: "root directory", input: "/", shouldContain: "cannot be empty, '.', or '/'"},
		{name: "path traversal with dotdot", input: "../../etc/passwd", shouldContain: "cannot contain '..'"},
		{name: "dotdot in middle", input: "./data/../../../etc/passwd", shouldContain: "cannot contain '..'"},
		{name: "git directory blocked", input: ".git/realty.db", shouldContain: ".git"},
		{name: "svn directory blocked", input: ".svn/realty.db", shouldContain: ".svn"},
		{name: "node_modules directory blocked", input: "node_modules/realty.db", shouldContain: "node_modules"},
		{name: "credentials in path blocked", input: "credentials/realty.db", shouldContain: "credentials"},
		{name: "secret in path blocked", input: "secret/realty.db", shouldContain: "secret"},
		{name: ".env in path blocked", input: ".env/realty.db", shouldContain: ".env"},
		{name: "case insensitive bad pattern", input: "CREDENTIALS/realty.db", shouldContain: "credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateAndCleanDBPath(tt.input)
			if err == nil {
				t.Fatalf("validateAndCleanDBPath(%q) error = nil, want error", tt.input)
			}
			if !strings.Contains(err.Error(), tt.shouldContain) {
				t.Errorf("validateAndCleanDBPath(%q) error = %v, should contain %q", tt.input, err, tt.shouldContain)
			}
		})
	}
}

func TestValidateAndCleanDBPath_Windows(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("Windows-specific test")
	}

	tests := []struct {
		name       string
		input      string
		shouldFail bool
	}{
		{name: "Windows absolute path", input: "C:\\data\\realty.db"},
		{name: "Windows absolute path with UNC", input: "\\\\server\\share\\realty.db"},
		{name: "bare drive letter rejected", input: "C:", shouldFail: true},
		{name: "bare D drive rejected", input: "D:", shouldFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateAndCleanDBPath(tt.input)
			if tt.shouldFail != (err != nil) {
				t.Errorf("validateAndCleanDBPath(%q) error = %v, shouldFail %v", tt.input, err, tt.shouldFail)
			}
		})
	}
}
