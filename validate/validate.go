// Command validate provides a small CLI that validates scenario JSON files in
// a directory (default ../scenarios). It checks:
//   - JSON structure and required fields
//   - Grid size range, start heading and command characters
//   - Obstacles on the start cell, with a warning for duplicated obstacles
//   - Recorded expectations, by running the scenario through the engine
//   - Reachability: how many free cells a rover could ever visit from the start
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/roversim/rover/engine"
	"github.com/wricardo/mcp-training/roversim/rover/scenario"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// warn records a problem that does not make the scenario invalid
func (r *ValidationResult) warn(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "⚠ "+fmt.Sprintf(format, args...))
}

// validateScenario loads and validates a single scenario JSON file.
// Unlike scenario.Validate it keeps going after the first problem so every
// issue in the file is reported at once.
func validateScenario(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var s scenario.Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if s.Name == "" {
		result.fail("name is required")
	}

	if s.GridSize < 1 || s.GridSize > scenario.MaxGridSize {
		result.fail("grid_size must be between 1 and %d, got %d", scenario.MaxGridSize, s.GridSize)
	}

	if _, err := s.StartHeading(); err != nil {
		result.fail("Invalid heading %q", s.Heading)
	}

	if len(s.Commands) > scenario.MaxCommands {
		result.fail("commands must be at most %d characters, got %d", scenario.MaxCommands, len(s.Commands))
	}
	for i, ch := range s.Commands {
		if !engine.ValidCommands(string(ch)) {
			result.fail("Invalid command '%c' at position %d", ch, i+1)
		}
	}

	seen := make(map[engine.Coordinate]bool, len(s.Obstacles))
	for _, o := range s.Obstacles {
		if seen[o] {
			result.warn("Duplicate obstacle at %s (collapsed into one cell)", o)
		}
		seen[o] = true
	}
	if seen[s.Start] {
		result.fail("Start cell %s is occupied by an obstacle", s.Start)
	}

	if s.Expected != nil {
		if _, err := engine.ParseHeading(s.Expected.Heading); err != nil {
			result.fail("Invalid expected.final_direction %q", s.Expected.Heading)
		}
	}

	if !result.Valid {
		return result
	}

	// Everything parses; run it
	rover, commands, err := s.Build()
	if err != nil {
		result.fail("Failed to build scenario: %v", err)
		return result
	}
	grid := rover.Grid()

	if !grid.InBounds(s.Start) {
		result.fail("Start cell %s is outside the %dx%d grid", s.Start, s.GridSize, s.GridSize)
		return result
	}

	outcome := engine.Navigator{}.Execute(rover, commands)
	if s.Expected != nil {
		if !s.Expected.Matches(outcome) {
			result.fail("Expectation mismatch: expected %s facing %s: %s, got %s",
				s.Expected.Position, s.Expected.Heading, s.Expected.Status, outcome)
		}
	}

	if !result.Valid {
		return result
	}

	free := s.GridSize*s.GridSize - engine.CountInBounds(grid)
	reachable := reachableCells(grid, s.Start)

	result.info("Name: %s", s.Name)
	result.info("Grid: %dx%d", s.GridSize, s.GridSize)
	result.info("Obstacles: %d", len(grid.Obstacles()))
	result.info("Commands: %d", len(commands))
	result.info("Outcome: %s", outcome)
	if s.Expected != nil {
		result.info("Expectation: met")
	}
	result.info("Reachable: %d/%d free cells", reachable, free)

	return result
}

// reachableCells flood-fills from start using 4-directional moves over free
// in-bounds cells and returns the number of cells visited.
func reachableCells(grid *engine.Grid, start engine.Coordinate) int {
	visited := map[engine.Coordinate]bool{start: true}
	queue := []engine.Coordinate{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, h := range engine.OpenMoves(grid, current) {
			next := current.Add(h.Unit())
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	return len(visited)
}

// main scans the scenario directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are invalid.
func main() {
	scenarioDir := "../scenarios"
	if len(os.Args) > 1 {
		scenarioDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(scenarioDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding scenario files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateScenario(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				switch {
				case strings.HasPrefix(err, "✓"):
				case strings.HasPrefix(err, "⚠"):
					fmt.Println("  " + err)
				default:
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All scenarios are valid!")
	} else {
		fmt.Println("❌ Some scenarios have errors")
		os.Exit(1)
	}
}
