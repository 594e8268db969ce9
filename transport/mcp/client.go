package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/roversim/rover/engine"
	"github.com/wricardo/mcp-training/roversim/rover/scenario"
	"github.com/wricardo/mcp-training/roversim/rover/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Rover Navigator",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Rover Navigator - MCP Interface

This is a thin client that proxies all requests to the REST API server.

A rover sits on a square grid (0..size-1 on both axes, (0,0) bottom-left, y grows North).
It executes L (turn left), R (turn right) and M (move one cell forward) commands in order
and stops at the first move that would hit an obstacle or leave the grid.

AVAILABLE TOOLS:
- navigate_rover: Run a command string on a grid with obstacles
- run_scenario: Run a stored scenario by name
- list_scenarios: List stored scenarios
- get_run: Get a past run with its per-command trace
- list_runs: List past runs
- rover_instructions: Full rules and examples`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "navigate_rover",
		Description: "Navigate a rover on a square grid, starting at (0,0) facing North unless overridden",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"grid_size": map[string]interface{}{
					"type":        "integer",
					"minimum":     1,
					"description": "Side length of the square grid",
				},
				"obstacles": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type":     "array",
						"items":    map[string]interface{}{"type": "integer"},
						"minItems": 2,
						"maxItems": 2,
					},
					"description": "Obstacle cells as [x, y] pairs",
				},
				"commands": map[string]interface{}{
					"type":        "string",
					"description": "Command string made of L, R and M",
				},
				"start": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "integer"},
					"description": "Optional start cell [x, y]",
				},
				"heading": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"N", "E", "S", "W"},
					"description": "Optional start heading",
				},
				"trace": map[string]interface{}{
					"type":        "boolean",
					"description": "Include the per-command trace in the result",
				},
			},
			Required: []string{"grid_size", "commands"},
		},
	}, c.handleNavigate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_scenario",
		Description: "Run a stored scenario and report whether it met its recorded expectation",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scenario_name": map[string]interface{}{
					"type":        "string",
					"description": "Scenario id as returned by list_scenarios",
				},
				"trace": map[string]interface{}{
					"type":        "boolean",
					"description": "Include the per-command trace in the result",
				},
			},
			Required: []string{"scenario_name"},
		},
	}, c.handleRunScenario)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_scenarios",
		Description: "List available scenarios",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListScenarios)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_run",
		Description: "Get a past run including its per-command trace",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID to retrieve",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleGetRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_runs",
		Description: "List past runs, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of runs to return",
				},
				"scenario": map[string]interface{}{
					"type":        "string",
					"description": "Only runs of this scenario",
				},
			},
		},
	}, c.handleListRuns)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "rover_instructions",
		Description: "Get the rover rules, coordinate system and worked examples",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	endpoint := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, endpoint, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// Tool handlers

func (c *Client) handleNavigate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	size, ok := args["grid_size"].(float64)
	if !ok {
		return mcp.NewToolResultError("grid_size is required"), nil
	}
	commands, _ := args["commands"].(string)
	trace, _ := args["trace"].(bool)

	body := map[string]interface{}{
		"grid_size": int(size),
		"commands":  commands,
	}
	// Coordinates are forwarded untouched; the API accepts [x,y] and {"x","y"}
	if obstacles, ok := args["obstacles"]; ok && obstacles != nil {
		body["obstacles"] = obstacles
	}
	if start, ok := args["start"]; ok && start != nil {
		body["start"] = start
	}
	if heading, ok := args["heading"].(string); ok && heading != "" {
		body["heading"] = heading
	}

	var info service.RunInfo
	if err := c.apiCall("POST", "/api/navigate", body, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRunInfo(&info, trace)), nil
}

func (c *Client) handleRunScenario(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	name, _ := args["scenario_name"].(string)
	trace, _ := args["trace"].(bool)

	if name == "" {
		return mcp.NewToolResultError("scenario_name is required"), nil
	}

	var info service.RunInfo
	if err := c.apiCall("POST", fmt.Sprintf("/api/scenarios/%s/run", url.PathEscape(name)), nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRunInfo(&info, trace)), nil
}

func (c *Client) handleListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var infos []scenario.Info
	if err := c.apiCall("GET", "/api/scenarios", nil, &infos); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Scenarios:\n\n"
	for _, info := range infos {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Grid: %dx%d, Obstacles: %d, Commands: %d\n\n",
			info.ScenarioID, info.Name, info.Description, info.GridSize, info.GridSize, info.Obstacles, info.Commands)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	runID, _ := args["run_id"].(string)

	var info service.RunInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/runs/%s", url.PathEscape(runID)), nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRunInfo(&info, true)), nil
}

func (c *Client) handleListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	query := url.Values{}
	if limit, ok := args["limit"].(float64); ok && limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", int(limit)))
	}
	if name, ok := args["scenario"].(string); ok && name != "" {
		query.Set("scenario", name)
	}

	path := "/api/runs"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var response struct {
		Count int               `json:"count"`
		Total int               `json:"total"`
		Runs  []service.RunInfo `json:"runs"`
	}
	if err := c.apiCall("GET", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Runs (%d of %d):\n\n", response.Count, response.Total)
	for _, r := range response.Runs {
		result += fmt.Sprintf("- %s %s %s -> %s facing %s: %s\n",
			r.ID, scenarioTag(&r), r.Commands, r.Outcome.Position, r.Outcome.Heading, r.Outcome.Status)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Rover Navigator - Instructions

GRID:
• The grid is size x size cells; valid cells satisfy 0 <= x < size and 0 <= y < size
• (0,0) is the bottom-left corner; North increases y, East increases x
• Obstacles are single cells; obstacles outside the grid are allowed and harmless
  unless the rover tries to step onto them

COMMANDS:
• L - turn 90° left in place (N→W→S→E→N)
• R - turn 90° right in place (N→E→S→W→N)
• M - move one cell forward along the current heading
• Commands are case-insensitive; any other character rejects the whole request

RULES:
• The rover starts at (0,0) facing North unless start/heading are given
• Turns always succeed
• A move onto an obstacle reports "Obstacle encountered"; the obstacle check
  happens before the boundary check
• A move off the grid reports "Out of bounds"
• The first failed move stops the run; the rover keeps its last valid position
  and heading, and the remaining commands are ignored
• An empty command string succeeds without moving

EXAMPLES (grid 5, obstacles [1,2] and [3,3]):
• MMMRML   → (1,3) facing N: Success
• MMRM     → (0,2) facing E: Obstacle encountered (tried (1,2))
• MMMMMMMM → (0,4) facing N: Out of bounds (tried (0,5))

TIPS:
• Use trace=true on navigate_rover or get_run to see every command's effect
• Scenarios with a recorded expectation report whether the outcome still matches`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func scenarioTag(info *service.RunInfo) string {
	if info.ScenarioName == "" {
		return "[ad-hoc]"
	}
	return "[" + info.ScenarioName + "]"
}

func formatRunInfo(info *service.RunInfo, withTrace bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s %s\n", info.ID, scenarioTag(info))
	fmt.Fprintf(&b, "Grid: %dx%d, Obstacles: %d\n", info.GridSize, info.GridSize, len(info.Obstacles))
	fmt.Fprintf(&b, "Start: %s facing %s\n", info.Start, info.StartHeading)
	fmt.Fprintf(&b, "Commands: %s (executed %d/%d)\n", info.Commands, info.ExecutedCommands, info.RequestedCommands)

	if info.Outcome.Status == engine.Success {
		b.WriteString("✓ Success\n")
	} else {
		fmt.Fprintf(&b, "✗ %s\n", info.Outcome.Status)
	}
	fmt.Fprintf(&b, "Final position: %s facing %s\n", info.Outcome.Position, info.Outcome.Heading)

	if info.AttemptedTo != nil {
		fmt.Fprintf(&b, "Stopped on command %d: attempted (%d,%d)", info.StoppedOnCommand, info.AttemptedTo.X, info.AttemptedTo.Y)
		if info.AttemptedTo.Obstacle {
			b.WriteString(" - obstacle")
		}
		if !info.AttemptedTo.InBounds {
			b.WriteString(" - outside grid")
		}
		b.WriteString("\n")
	}

	if info.ExpectationMet != nil {
		if *info.ExpectationMet {
			b.WriteString("Expectation: met ✓\n")
		} else {
			b.WriteString("Expectation: NOT met ✗\n")
		}
	}

	if withTrace && len(info.Steps) > 0 {
		b.WriteString("\nTrace:\n")
		for _, step := range info.Steps {
			b.WriteString(formatStepLine(step))
		}
	}

	return b.String()
}

func formatStepLine(step engine.Step) string {
	mark := "✓"
	if step.Status != engine.Success {
		mark = "✗ " + step.Status.String()
	}
	return fmt.Sprintf("  %d. %s %s %s -> %s %s %s\n",
		step.Index, step.Command, step.From, step.HeadingBefore, step.To, step.HeadingAfter, mark)
}
