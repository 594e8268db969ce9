// Package engine provides the core simulation for the rover navigator.
//
// The engine package implements:
//   - A square grid with bounds and obstacle membership queries
//   - A rover holding position and heading, with turn and move operations
//   - A navigator that executes a command sequence and halts on the first
//     failed move
//   - Parsing of L/R/M command strings
//
// Core Types:
//
// Grid answers InBounds and HasObstacle for any Coordinate and never changes
// after NewGrid. Rover owns the only mutable state in the package. Navigator
// is stateless; Execute returns an Outcome carrying the final position,
// heading and Status.
//
// Usage:
//
//	grid, err := engine.NewGrid(5, []engine.Coordinate{{X: 1, Y: 2}, {X: 3, Y: 3}})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	commands, err := engine.ParseCommands("MMRM")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	outcome := engine.Navigator{}.Execute(engine.NewRover(grid), commands)
//	// outcome: (0,2) facing E: Obstacle encountered
//
// Movement Rules:
//
// North increases y and East increases x. A move first checks the target for
// an obstacle, then checks it against the bounds [0,size) on both axes. A
// rejected move leaves the rover exactly where it was. ObstacleEncountered and
// OutOfBounds are ordinary statuses, not errors.
package engine
