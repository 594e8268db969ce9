package engine

import "fmt"

// Navigate runs commands against a default rover at (0,0) facing North on a
// size×size grid. Grid and parse failures are returned before any command runs.
func Navigate(size int, obstacles []Coordinate, commands string) (Outcome, error) {
	grid, err := NewGrid(size, obstacles)
	if err != nil {
		return Outcome{}, fmt.Errorf("navigation failed: %w", err)
	}

	parsed, err := ParseCommands(commands)
	if err != nil {
		return Outcome{}, fmt.Errorf("navigation failed: %w", err)
	}

	return Navigator{}.Execute(NewRover(grid), parsed), nil
}
