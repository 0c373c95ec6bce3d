package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moltbook/internal/cli/config"
	"moltbook/pkg/moltbook/moltbooktest"
)

const testKey = "moltbook_sk_cli"

func TestMeUsesStoredProfile(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	srv.Handle(http.MethodGet, "agents/me", http.StatusOK, `{"success":true,"agent":{"name":"GoBot","karma":7}}`)
	writeCLIConfig(t, srv.BaseURL(), testKey)

	out, err := runCLI(t, "me", "--format", "quiet")
	require.NoError(t, err)
	assert.Equal(t, "GoBot\n", out)

	req := srv.Last(t)
	assert.Equal(t, "agents/me", req.Path)
	assert.Equal(t, testKey, req.Token())
}

func TestCommandsRequireConnection(t *testing.T) {
	setCLIEnv(t)

	_, err := runCLI(t, "feed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")
}

func TestEnvironmentCredentialsWithoutConfigFile(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	setCLIEnv(t)
	t.Setenv("MOLTBOOK_API_KEY", "moltbook_sk_env")
	t.Setenv("MOLTBOOK_BASE_URL", srv.BaseURL())

	_, err := runCLI(t, "status", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "moltbook_sk_env", srv.Last(t).Token())
	assert.Equal(t, "agents/status", srv.Last(t).Path)
}

func TestFeedSendsDefaults(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	writeCLIConfig(t, srv.BaseURL(), testKey)

	_, err := runCLI(t, "feed", "--format", "json")
	require.NoError(t, err)
	req := srv.Last(t)
	assert.Equal(t, "feed", req.Path)
	assert.Equal(t, "sort=hot&limit=25", req.RawQuery)
}

func TestPostsFilters(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	srv.Handle(http.MethodGet, "posts", http.StatusOK, `{"success":true,"posts":[{"id":"p1","title":"Hi"},{"id":"p2","title":"Yo"}]}`)
	writeCLIConfig(t, srv.BaseURL(), testKey)

	out, err := runCLI(t, "posts", "--sort", "new", "--limit", "5", "--submolt", "general", "-q")
	require.NoError(t, err)
	assert.Equal(t, "p1\np2\n", out)
	assert.Equal(t, "sort=new&limit=5&submolt=general", srv.Last(t).RawQuery)
}

func TestPostCreateSendsOnlyGivenFields(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	writeCLIConfig(t, srv.BaseURL(), testKey)

	_, err := runCLI(t, "post", "create", "--submolt", "general", "--title", "Hello", "--format", "json")
	require.NoError(t, err)
	req := srv.Last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "posts", req.Path)
	assert.JSONEq(t, `{"submolt":"general","title":"Hello"}`, string(req.Body))
}

func TestPostCreateRequiresTitle(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	writeCLIConfig(t, srv.BaseURL(), testKey)

	_, err := runCLI(t, "post", "create", "--submolt", "general")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
	assert.Empty(t, srv.Requests())
}

func TestPostVotesAndDelete(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	writeCLIConfig(t, srv.BaseURL(), testKey)

	for _, tc := range []struct {
		args   []string
		method string
		path   string
	}{
		{[]string{"post", "get", "p1"}, http.MethodGet, "posts/p1"},
		{[]string{"post", "upvote", "p1"}, http.MethodPost, "posts/p1/upvote"},
		{[]string{"post", "downvote", "p1"}, http.MethodPost, "posts/p1/downvote"},
		{[]string{"post", "delete", "p1"}, http.MethodDelete, "posts/p1"},
		{[]string{"comment", "upvote", "c9"}, http.MethodPost, "comments/c9/upvote"},
		{[]string{"follow", "Other"}, http.MethodPost, "agents/Other/follow"},
		{[]string{"unfollow", "Other"}, http.MethodDelete, "agents/Other/follow"},
		{[]string{"submolts", "subscribe", "golang"}, http.MethodPost, "submolts/golang/subscribe"},
		{[]string{"submolts", "unsubscribe", "golang"}, http.MethodDelete, "submolts/golang/subscribe"},
		{[]string{"submolts"}, http.MethodGet, "submolts"},
		{[]string{"submolts", "get", "golang"}, http.MethodGet, "submolts/golang"},
	} {
		_, err := runCLI(t, append(tc.args, "--format", "json")...)
		require.NoError(t, err, tc.args)
		req := srv.Last(t)
		assert.Equal(t, tc.method, req.Method, tc.args)
		assert.Equal(t, tc.path, req.Path, tc.args)
	}
}

func TestCommentCreateReply(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	writeCLIConfig(t, srv.BaseURL(), testKey)

	_, err := runCLI(t, "comment", "create", "p1", "Nice", "point", "--parent", "c1", "--format", "json")
	require.NoError(t, err)
	req := srv.Last(t)
	assert.Equal(t, "posts/p1/comments", req.Path)
	assert.JSONEq(t, `{"content":"Nice point","parent_id":"c1"}`, string(req.Body))

	_, err = runCLI(t, "comments", "p1", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "sort=top", srv.Last(t).RawQuery)
}

func TestSubmoltCreate(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	writeCLIConfig(t, srv.BaseURL(), testKey)

	_, err := runCLI(t, "submolts", "create", "golang", "--display-name", "Go", "--description", "Gophers", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"golang","display_name":"Go","description":"Gophers"}`, string(srv.Last(t).Body))
}

func TestProfileUpdateMetadata(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	writeCLIConfig(t, srv.BaseURL(), testKey)

	_, err := runCLI(t, "profile", "update", "--metadata", "model=small", "--metadata", "tier=pro", "--format", "json")
	require.NoError(t, err)
	req := srv.Last(t)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.JSONEq(t, `{"metadata":{"model":"small","tier":"pro"}}`, string(req.Body))
}

func TestSearchJoinsArguments(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	writeCLIConfig(t, srv.BaseURL(), testKey)

	_, err := runCLI(t, "search", "golang", "tips", "--limit", "3", "--format", "json")
	require.NoError(t, err)
	req := srv.Last(t)
	assert.Equal(t, "search", req.Path)
	assert.Equal(t, "q=golang+tips&limit=3", req.RawQuery)
}

func TestServiceErrorPrintsBodyUnlessStrict(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	srv.Handle(http.MethodGet, "posts/nope", http.StatusNotFound, `{"success":false,"error":"Post not found"}`)
	writeCLIConfig(t, srv.BaseURL(), testKey)

	out, err := runCLI(t, "post", "get", "nope", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Post not found")

	_, err = runCLI(t, "post", "get", "nope", "--format", "json", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Post not found")
}

func TestConnectValidatesAndSaves(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	srv.Handle(http.MethodGet, "agents/me", http.StatusOK, `{"success":true,"agent":{"name":"GoBot"}}`)
	home := setCLIEnv(t)

	out, err := runCLI(t, "connect", "--api-key", testKey, "--base-url", srv.BaseURL())
	require.NoError(t, err)
	assert.Contains(t, out, "connected as GoBot")

	cfg, err := config.LoadFromPath(filepath.Join(home, ".moltbook", "config.yaml"))
	require.NoError(t, err)
	creds, err := cfg.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, testKey, creds.APIKey)
	assert.Equal(t, srv.BaseURL(), creds.BaseURL)
	assert.Equal(t, "GoBot", creds.Agent)

	_, err = runCLI(t, "me", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, testKey, srv.Last(t).Token())
}

func TestConnectInDir(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	srv.Handle(http.MethodGet, "agents/me", http.StatusOK, `{"success":true,"agent":{"name":"GoBot"}}`)
	setCLIEnv(t)

	_, err := runCLI(t, "connect", "--api-key", testKey, "--base-url", srv.BaseURL(), "--in-dir")
	require.NoError(t, err)

	local, err := config.LocalPath()
	require.NoError(t, err)
	assert.FileExists(t, local)
}

func TestConnectRejectsBadKey(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	srv.Handle(http.MethodGet, "agents/me", http.StatusUnauthorized, `{"success":false,"error":"Invalid API key"}`)
	home := setCLIEnv(t)

	_, err := runCLI(t, "connect", "--api-key", "moltbook_sk_bad", "--base-url", srv.BaseURL())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
	assert.NoFileExists(t, filepath.Join(home, ".moltbook", "config.yaml"))
}

func TestDisconnect(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	writeCLIConfig(t, srv.BaseURL(), testKey)

	out, err := runCLI(t, "disconnect")
	require.NoError(t, err)
	assert.Equal(t, "disconnected main\n", out)

	_, err = runCLI(t, "me")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")
}

func TestRegisterSave(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	srv.Handle(http.MethodPost, "agents/register", http.StatusCreated,
		`{"success":true,"agent":{"api_key":"moltbook_sk_new","claim_url":"https://www.moltbook.com/claim/x","verification_code":"reef-X4B2"}}`)
	home := setCLIEnv(t)

	out, err := runCLI(t, "register", "NewBot", "Reads", "papers", "--save", "--base-url", srv.BaseURL(), "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "reef-X4B2")

	req := srv.Last(t)
	assert.Empty(t, req.Token())
	assert.JSONEq(t, `{"name":"NewBot","description":"Reads papers"}`, string(req.Body))

	cfg, err := config.LoadFromPath(filepath.Join(home, ".moltbook", "config.yaml"))
	require.NoError(t, err)
	creds, err := cfg.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "moltbook_sk_new", creds.APIKey)
	assert.Equal(t, "NewBot", creds.Agent)
}

func TestUnknownFormat(t *testing.T) {
	srv := moltbooktest.NewServer(t)
	writeCLIConfig(t, srv.BaseURL(), testKey)

	_, err := runCLI(t, "me", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --format")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func setCLIEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"MOLTBOOK_API_KEY", "MOLTBOOK_BASE_URL", "MOLTBOOK_PROFILE", "MOLTBOOK_FORMAT"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}

	cwd := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(cwd); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})
	return home
}

func writeCLIConfig(t *testing.T, baseURL, apiKey string) {
	t.Helper()
	home := setCLIEnv(t)
	cfgPath := filepath.Join(home, ".moltbook", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}

	content := "version: 1\n" +
		"default_profile: main\n" +
		"profiles:\n" +
		"  main:\n" +
		"    base_url: " + baseURL + "\n" +
		"    api_key: " + apiKey + "\n" +
		"    connected_at: \"2026-02-16T00:00:00Z\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}
