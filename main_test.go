package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/roversim/rover/engine"
	"github.com/wricardo/mcp-training/roversim/rover/service"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedAppName := "Rover Navigator Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestInitializeServices(t *testing.T) {
	originalDir := *scenarioDir
	*scenarioDir = "scenarios"
	defer func() { *scenarioDir = originalDir }()

	navService, runManager, err := initializeServices()
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	if navService == nil || runManager == nil {
		t.Fatal("Expected services to be initialized")
	}

	info, err := navService.RunScenario(t.Context(), "default")
	require.NoError(t, err)
	assert.Equal(t, engine.Success, info.Outcome.Status)
	assert.Equal(t, 1, runManager.Count())
}

func TestInitializeServices_InvalidScenarioDir(t *testing.T) {
	originalDir := *scenarioDir
	*scenarioDir = "/non/existent/path"
	defer func() { *scenarioDir = originalDir }()

	_, _, err := initializeServices()
	if err == nil {
		t.Error("Expected error for non-existent scenario directory")
	}
}

func TestFlagDefaults(t *testing.T) {
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}

	if *host == "" {
		t.Error("Host should have a default value")
	}

	if *scenarioDir == "" {
		t.Error("Scenario directory should have a default value")
	}

	if *runRetention <= 0 {
		t.Errorf("Invalid default run retention: %v", *runRetention)
	}
}

func TestGetScenarioDirDefault(t *testing.T) {
	t.Setenv("SCENARIO_DIR", "")
	assert.Equal(t, "scenarios", getScenarioDirDefault())

	t.Setenv("SCENARIO_DIR", "/tmp/rover-scenarios")
	assert.Equal(t, "/tmp/rover-scenarios", getScenarioDirDefault())
}

func TestNgrokSettings(t *testing.T) {
	originalEnabled, originalAuth := *ngrokEnabled, *ngrokAuth
	defer func() { *ngrokEnabled, *ngrokAuth = originalEnabled, originalAuth }()

	*ngrokEnabled = false
	*ngrokAuth = ""
	t.Setenv("NGROK_ENABLED", "")
	t.Setenv("NGROK_AUTHTOKEN", "")
	t.Setenv("NGROK_AUTH_TOKEN", "")

	assert.False(t, ngrokShouldRun())
	assert.Empty(t, ngrokAuthToken())

	t.Setenv("NGROK_ENABLED", "1")
	assert.True(t, ngrokShouldRun())

	t.Setenv("NGROK_AUTH_TOKEN", "underscore")
	assert.Equal(t, "underscore", ngrokAuthToken())

	t.Setenv("NGROK_AUTHTOKEN", "plain")
	assert.Equal(t, "plain", ngrokAuthToken())

	*ngrokAuth = "flag"
	assert.Equal(t, "flag", ngrokAuthToken())
}

func TestAPIAvailable(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer unhealthy.Close()

	assert.True(t, apiAvailable(healthy.URL))
	assert.False(t, apiAvailable(unhealthy.URL))
	assert.False(t, apiAvailable("http://127.0.0.1:1"))
}

// newTestServer serves newRouter on an httptest server whose own URL is the
// MCP proxy target, the same way runHTTPServer wires it.
func newTestServer(t *testing.T) (*httptest.Server, service.NavigationService) {
	t.Helper()

	originalDir := *scenarioDir
	*scenarioDir = "scenarios"
	t.Cleanup(func() { *scenarioDir = originalDir })

	navService, _, err := initializeServices()
	require.NoError(t, err)

	var handler http.Handler
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	handler = newRouter(navService, nil, ts.URL)
	return ts, navService
}

func postMCP(t *testing.T, url, body string) string {
	t.Helper()
	resp, err := http.Post(url+"/mcp", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestRouter_API(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/mcp")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRouter_MCP(t *testing.T) {
	ts, navService := newTestServer(t)

	t.Run("initialize", func(t *testing.T) {
		body := postMCP(t, ts.URL, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`)
		assert.Contains(t, body, "Rover Navigator")
	})

	t.Run("tools list", func(t *testing.T) {
		body := postMCP(t, ts.URL, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
		for _, tool := range []string{"navigate_rover", "run_scenario", "list_scenarios", "get_run", "list_runs", "rover_instructions"} {
			assert.Contains(t, body, tool)
		}
	})

	t.Run("navigate through proxy", func(t *testing.T) {
		body := postMCP(t, ts.URL, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"navigate_rover","arguments":{"grid_size":5,"obstacles":[[1,2],[3,3]],"commands":"MMRM"}}}`)
		assert.Contains(t, body, "Obstacle encountered")
		assert.Contains(t, body, "(0,2) facing E")

		list, err := navService.ListRuns(t.Context())
		require.NoError(t, err)
		assert.NotEmpty(t, list)
	})
}

func TestRunCleanupRoutine(t *testing.T) {
	originalDir := *scenarioDir
	*scenarioDir = "scenarios"
	defer func() { *scenarioDir = originalDir }()

	_, runManager, err := initializeServices()
	require.NoError(t, err)

	old := time.Now().Add(-2 * time.Hour)
	_, err = runManager.Add(&service.Run{
		Request:        &service.NavigateRequest{GridSize: 5},
		CreatedAt:      old,
		LastAccessedAt: old,
	})
	require.NoError(t, err)
	_, err = runManager.Add(&service.Run{Request: &service.NavigateRequest{GridSize: 5}})
	require.NoError(t, err)

	go runCleanupRoutine(runManager, 10*time.Millisecond, time.Hour)

	assert.Eventually(t, func() bool {
		return runManager.Count() == 1
	}, time.Second, 10*time.Millisecond)
}
