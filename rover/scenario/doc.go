// Package scenario provides scenario management for the rover navigator.
//
// A scenario is a JSON file describing one navigation run:
//
//	{
//	  "name": "obstacle",
//	  "description": "Stops when the rover turns into an obstacle",
//	  "grid_size": 5,
//	  "obstacles": [[1, 2], [3, 3]],
//	  "start": {"x": 0, "y": 0},
//	  "heading": "N",
//	  "commands": "MMRM",
//	  "expected": {"final_position": [0, 2], "final_direction": "E", "status": "Obstacle encountered"}
//	}
//
// Obstacles and positions accept either [x, y] pairs or {"x", "y"} objects.
// The optional expected block lets tooling check that the engine still
// produces the recorded outcome.
//
// Usage:
//
//	manager, err := scenario.NewManager("scenarios")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	s, err := manager.LoadScenario("obstacle")
//	rover, commands, err := s.Build()
//
// Loaded scenarios are cached; RefreshCache drops the cache.
package scenario
