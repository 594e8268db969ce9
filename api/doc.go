// Package api provides HTTP REST API handlers for the rover navigator.
//
// Endpoints:
//
// Navigation:
//   - POST /api/navigate - Run an ad-hoc navigation
//
// Run History:
//   - GET /api/runs - List runs (?sort=created|accessed&order=asc|desc&limit=N&scenario=name)
//   - GET /api/runs/{id} - Get a run with its step trace
//   - DELETE /api/runs/{id} - Delete a run
//
// Scenarios:
//   - GET /api/scenarios - List available scenarios
//   - GET /api/scenarios/{name} - Get a scenario definition
//   - POST /api/scenarios - Save a scenario
//   - POST /api/scenarios/{name}/run - Run a stored scenario
//
// Other:
//   - GET /api/health - Health check
//   - GET /ws?topic=<scenario|all> - WebSocket run notifications
//
// Navigate request:
//
//	{
//	  "grid_size": 5,
//	  "obstacles": [[1, 2], [3, 3]],  // or [{"x": 1, "y": 2}, ...]
//	  "start": [0, 0],                // optional, default (0,0)
//	  "heading": "N",                 // optional, default N
//	  "commands": "MMMRML"
//	}
//
// Run response (abridged):
//
//	{
//	  "id": "3f6c...",
//	  "outcome": {"final_position": {"x": 1, "y": 3}, "final_direction": "N", "status": "Success"},
//	  "requested_commands": 6,
//	  "executed_commands": 6,
//	  "stop_reason_code": "obstacle|out_of_bounds",  // only when halted
//	  "stopped_on_command": 4,                      // 1-based
//	  "attempted_to": {"x": 1, "y": 2, "obstacle": true, "in_bounds": true, "reason": "Obstacle encountered"},
//	  "steps": [{"idx": 1, "cmd": "M", "from": {...}, "to": {...}, "status": "Success"}, ...]
//	}
//
// Obstacles and boundaries are reported in the outcome with status 200.
//
// Error Handling:
//
// Errors are returned as JSON: {"error": "message"}. Invalid input (bad
// grid size, heading or command characters, malformed scenarios) maps to 400,
// unknown runs and scenarios to 404, anything else to 500.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	http.Handle("/", api.NewServer(navService, hub))
//
// Every completed run is broadcast to the hub and logged as a single
// "[RUN] id=... exec=n/m end=(x,y) dir=N status=..." line. Saved scenarios
// and deleted runs are pushed as "scenario_saved" and "run_deleted" events.
package api
