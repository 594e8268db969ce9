// Package mcp provides a Model Context Protocol server for the rover navigator.
//
// The server is a thin proxy: every tool call is translated into a REST API
// request and the JSON response is rendered as text for the agent.
//
// MCP Tools:
//   - navigate_rover: run a command string on a grid with obstacles
//   - run_scenario: run a stored scenario and check its expectation
//   - list_scenarios: list stored scenarios
//   - get_run: fetch a past run with its per-command trace
//   - list_runs: list past runs
//   - rover_instructions: rules, coordinate system and worked examples
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: the main server forwards POST /mcp bodies to HandleMessage
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
