// Package service provides the business logic layer for the rover navigator.
//
// The service package implements:
//   - Request validation ahead of the engine
//   - Scenario-driven and ad-hoc navigation
//   - Run history with per-command traces
//
// Core Interfaces:
//
// NavigationService is the main service interface used by every transport.
// RunStore keeps completed runs. ScenarioManager loads and saves scenario files.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP/CLI)
// and the engine. Every navigation builds a fresh grid and rover, so runs never
// share mutable state; only the run store is shared.
//
// Usage:
//
//	runMgr := runs.NewManager()
//	scenarioMgr, _ := scenario.NewManager("scenarios")
//	svc := service.NewNavigationService(runMgr, scenarioMgr)
//
//	info, err := svc.Navigate(ctx, &service.NavigateRequest{
//		GridSize:  5,
//		Obstacles: []engine.Coordinate{{X: 1, Y: 2}, {X: 3, Y: 3}},
//		Commands:  "MMMRML",
//	})
//
// Invalid input (bad grid size, heading or command characters) is reported as
// an error wrapping ErrInvalidRequest. Obstacles and boundaries are not errors;
// they are part of the run's outcome.
package service
