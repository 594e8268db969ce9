package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wricardo/mcp-training/roversim/rover/engine"
)

// Validation limits
const (
	MaxGridSize = 10000
	MaxCommands = 10000
)

// Scenario describes one navigation run loaded from JSON
type Scenario struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	GridSize    int                 `json:"grid_size"`
	Obstacles   []engine.Coordinate `json:"obstacles"`
	Start       engine.Coordinate   `json:"start"`
	Heading     string              `json:"heading,omitempty"`
	Commands    string              `json:"commands"`
	Expected    *Expectation        `json:"expected,omitempty"`
}

// Expectation is an optional self-check recorded alongside a scenario
type Expectation struct {
	Position engine.Coordinate `json:"final_position"`
	Heading  string            `json:"final_direction"`
	Status   engine.Status     `json:"status"`
}

// Matches reports whether outcome satisfies the expectation
func (e *Expectation) Matches(outcome engine.Outcome) bool {
	h, err := engine.ParseHeading(e.Heading)
	if err != nil {
		return false
	}
	return e.Position == outcome.Position && h == outcome.Heading && e.Status == outcome.Status
}

// StartHeading returns the parsed heading, defaulting to North when unset
func (s *Scenario) StartHeading() (engine.Heading, error) {
	if s.Heading == "" {
		return engine.North, nil
	}
	return engine.ParseHeading(s.Heading)
}

// Build constructs the grid, rover and parsed commands for the scenario
func (s *Scenario) Build() (*engine.Rover, []engine.Command, error) {
	grid, err := engine.NewGrid(s.GridSize, s.Obstacles)
	if err != nil {
		return nil, nil, err
	}

	heading, err := s.StartHeading()
	if err != nil {
		return nil, nil, err
	}

	commands, err := engine.ParseCommands(s.Commands)
	if err != nil {
		return nil, nil, err
	}

	rover := engine.NewRover(grid, engine.WithPosition(s.Start), engine.WithHeading(heading))
	return rover, commands, nil
}

// Validate checks a scenario for correctness
func Validate(s *Scenario) error {
	if s == nil {
		return fmt.Errorf("scenario validation: scenario is nil")
	}
	if s.Name == "" {
		return fmt.Errorf("scenario validation: name is required")
	}

	if s.GridSize < 1 || s.GridSize > MaxGridSize {
		return fmt.Errorf("scenario validation: grid_size must be between 1 and %d, got %d", MaxGridSize, s.GridSize)
	}

	if _, err := s.StartHeading(); err != nil {
		return fmt.Errorf("scenario validation: %w", err)
	}

	if len(s.Commands) > MaxCommands {
		return fmt.Errorf("scenario validation: commands must be at most %d characters, got %d", MaxCommands, len(s.Commands))
	}
	if _, err := engine.ParseCommands(s.Commands); err != nil {
		return fmt.Errorf("scenario validation: %w", err)
	}

	if s.Expected != nil {
		if _, err := engine.ParseHeading(s.Expected.Heading); err != nil {
			return fmt.Errorf("scenario validation: expected.final_direction: %w", err)
		}
	}

	return nil
}

// Load reads and validates a scenario from a JSON file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	if err := Validate(&s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Default returns the built-in scenario used when no scenario files exist
func Default() *Scenario {
	return &Scenario{
		Name:        "default",
		Description: "Successful movement around two obstacles",
		GridSize:    5,
		Obstacles:   []engine.Coordinate{{X: 1, Y: 2}, {X: 3, Y: 3}},
		Heading:     "N",
		Commands:    "MMMRML",
		Expected: &Expectation{
			Position: engine.Coordinate{X: 1, Y: 3},
			Heading:  "N",
			Status:   engine.Success,
		},
	}
}
