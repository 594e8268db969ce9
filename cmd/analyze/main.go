// Command analyze prints quick, human-readable heuristics about the scenario
// files in a directory (default "scenarios"). For each scenario it summarizes
// the grid, counts obstacles inside and outside the grid, reports obstacle
// density and how boxed-in the start cell is, and simulates the run to show
// how far the rover ends up from where it started.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/wricardo/mcp-training/roversim/rover/engine"
	"github.com/wricardo/mcp-training/roversim/rover/scenario"
)

// Analysis holds the heuristics computed for one scenario.
type Analysis struct {
	Name               string
	GridSize           int
	Obstacles          int
	OutOfBounds        []engine.Coordinate
	StartOnObstacle    bool
	StartOutsideGrid   bool
	Density            float64
	OpenMovesFromStart int
	Outcome            engine.Outcome
	Executed           int
	Requested          int
	Distance           int
	ExpectationMet     *bool
}

func main() {
	dir := "scenarios"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		fmt.Printf("Error listing scenarios: %v\n", err)
		os.Exit(1)
	}
	sort.Strings(files)

	for _, path := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(path))
		analyzeFile(os.Stdout, path)
	}
}

func analyzeFile(out io.Writer, path string) {
	s, err := scenario.Load(path)
	if err != nil {
		fmt.Fprintf(out, "Error loading scenario: %v\n", err)
		return
	}

	a, err := analyze(s)
	if err != nil {
		fmt.Fprintf(out, "Error analyzing scenario: %v\n", err)
		return
	}

	printAnalysis(out, a)
}

func analyze(s *scenario.Scenario) (*Analysis, error) {
	rover, commands, err := s.Build()
	if err != nil {
		return nil, err
	}
	grid := rover.Grid()
	start := rover.Position()

	a := &Analysis{
		Name:               s.Name,
		GridSize:           grid.Size(),
		Obstacles:          len(grid.Obstacles()),
		StartOnObstacle:    grid.HasObstacle(start),
		StartOutsideGrid:   !grid.InBounds(start),
		Density:            engine.Density(grid),
		OpenMovesFromStart: len(engine.OpenMoves(grid, start)),
		Requested:          len(commands),
	}

	for _, o := range grid.Obstacles() {
		if !grid.InBounds(o) {
			a.OutOfBounds = append(a.OutOfBounds, o)
		}
	}

	outcome, steps := engine.Navigator{}.Trace(rover, commands)
	a.Outcome = outcome
	a.Executed = len(steps)
	if outcome.Status != engine.Success {
		a.Executed--
	}
	a.Distance = engine.ManhattanDistance(start, outcome.Position)

	if s.Expected != nil {
		met := s.Expected.Matches(outcome)
		a.ExpectationMet = &met
	}

	return a, nil
}

func printAnalysis(out io.Writer, a *Analysis) {
	fmt.Fprintf(out, "Name: %s\n", a.Name)
	fmt.Fprintf(out, "Grid Size: %d x %d\n", a.GridSize, a.GridSize)
	fmt.Fprintf(out, "Obstacles: %d (density %.1f%%)\n", a.Obstacles, a.Density*100)

	if len(a.OutOfBounds) > 0 {
		fmt.Fprintf(out, "ℹ️  %d obstacles lie outside the grid and can never be reached\n", len(a.OutOfBounds))
		for i, p := range a.OutOfBounds {
			if i < 5 { // Show first 5
				fmt.Fprintf(out, "   Outside: %s\n", p)
			}
		}
		if len(a.OutOfBounds) > 5 {
			fmt.Fprintf(out, "   ... and %d more\n", len(a.OutOfBounds)-5)
		}
	}

	if a.StartOutsideGrid {
		fmt.Fprintf(out, "⚠️  WARNING: start cell is outside the grid\n")
	}
	if a.StartOnObstacle {
		fmt.Fprintf(out, "⚠️  WARNING: start cell is occupied by an obstacle\n")
	}
	if a.OpenMovesFromStart == 0 {
		fmt.Fprintf(out, "⚠️  WARNING: rover is boxed in, no move from the start can succeed\n")
	} else {
		fmt.Fprintf(out, "Open moves from start: %d/4\n", a.OpenMovesFromStart)
	}

	fmt.Fprintf(out, "Outcome: %s\n", a.Outcome)
	fmt.Fprintf(out, "Executed: %d/%d commands\n", a.Executed, a.Requested)
	fmt.Fprintf(out, "Manhattan distance from start: %d\n", a.Distance)

	switch {
	case a.ExpectationMet == nil:
		fmt.Fprintf(out, "No expectation recorded\n")
	case *a.ExpectationMet:
		fmt.Fprintf(out, "✅ Outcome matches the recorded expectation\n")
	default:
		fmt.Fprintf(out, "❌ Outcome does NOT match the recorded expectation\n")
	}
}
