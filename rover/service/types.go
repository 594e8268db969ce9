package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/wricardo/mcp-training/roversim/rover/engine"
	"github.com/wricardo/mcp-training/roversim/rover/scenario"
)

// ErrInvalidRequest marks navigation input rejected before the engine runs
var ErrInvalidRequest = errors.New("invalid request")

// NavigateRequest is the input of an ad-hoc navigation
type NavigateRequest struct {
	GridSize  int                 `json:"grid_size"`
	Obstacles []engine.Coordinate `json:"obstacles"`
	Start     *engine.Coordinate  `json:"start,omitempty"`
	Heading   string              `json:"heading,omitempty"`
	Commands  string              `json:"commands"`
}

// Validate checks the request and returns the parsed commands and start heading
func (r *NavigateRequest) Validate() ([]engine.Command, engine.Heading, error) {
	if r == nil {
		return nil, engine.North, fmt.Errorf("%w: request body is required", ErrInvalidRequest)
	}
	if r.GridSize < 1 {
		return nil, engine.North, fmt.Errorf("%w: %w, got %d", ErrInvalidRequest, engine.ErrInvalidGridSize, r.GridSize)
	}
	if r.GridSize > scenario.MaxGridSize {
		return nil, engine.North, fmt.Errorf("%w: grid_size must be at most %d", ErrInvalidRequest, scenario.MaxGridSize)
	}
	if len(r.Commands) > scenario.MaxCommands {
		return nil, engine.North, fmt.Errorf("%w: commands must be at most %d characters", ErrInvalidRequest, scenario.MaxCommands)
	}

	commands, err := engine.ParseCommands(r.Commands)
	if err != nil {
		return nil, engine.North, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	heading := engine.North
	if r.Heading != "" {
		if heading, err = engine.ParseHeading(r.Heading); err != nil {
			return nil, engine.North, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}

	return commands, heading, nil
}

// RunInfo provides information about a completed run
type RunInfo struct {
	ID             string              `json:"id"`
	ScenarioName   string              `json:"scenario_name,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	GridSize       int                 `json:"grid_size"`
	Obstacles      []engine.Coordinate `json:"obstacles"`
	Start          engine.Coordinate   `json:"start"`
	StartHeading   engine.Heading      `json:"start_direction"`
	Commands       string              `json:"commands"`
	Outcome        engine.Outcome      `json:"outcome"`

	// Summary
	RequestedCommands int    `json:"requested_commands"`
	ExecutedCommands  int    `json:"executed_commands"`
	StopReasonCode    string `json:"stop_reason_code,omitempty"` // obstacle|out_of_bounds
	StoppedOnCommand  int    `json:"stopped_on_command,omitempty"`

	// Per-command trace
	Steps []engine.Step `json:"steps,omitempty"`

	// Failure diagnostics
	AttemptedTo *AttemptInfo `json:"attempted_to,omitempty"`

	// Only set for scenario runs with a recorded expectation
	ExpectationMet *bool `json:"expectation_met,omitempty"`
}

// AttemptInfo details the cell a rejected move tried to enter
type AttemptInfo struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Obstacle bool   `json:"obstacle"`
	InBounds bool   `json:"in_bounds"`
	Reason   string `json:"reason"`
}
