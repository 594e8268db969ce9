package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/roversim/rover/engine"
	"github.com/wricardo/mcp-training/roversim/rover/scenario"
)

// NavigationService defines all rover-related operations
type NavigationService interface {
	// Navigation
	Navigate(ctx context.Context, req *NavigateRequest) (*RunInfo, error)
	RunScenario(ctx context.Context, scenarioName string) (*RunInfo, error)

	// Run history
	GetRun(ctx context.Context, runID string) (*RunInfo, error)
	ListRuns(ctx context.Context) ([]*RunInfo, error)
	DeleteRun(ctx context.Context, runID string) error

	// Scenarios
	ListScenarios(ctx context.Context) ([]*scenario.Info, error)
	LoadScenario(ctx context.Context, scenarioName string) (*scenario.Scenario, error)
	SaveScenario(ctx context.Context, scenarioName string, s *scenario.Scenario) error
}

// RunStore defines run storage operations
type RunStore interface {
	Add(run *Run) (*Run, error)
	Get(id string) (*Run, error)
	List() []*Run
	Delete(id string) error
	Touch(id string) error
}

// ScenarioManager handles scenario loading
type ScenarioManager interface {
	LoadScenario(name string) (*scenario.Scenario, error)
	ListScenarios() ([]*scenario.Info, error)
	GetDefault() *scenario.Scenario
	SaveScenario(name string, s *scenario.Scenario) error
}

// Run is one completed navigation kept in the run store
type Run struct {
	ID             string
	ScenarioName   string
	Request        *NavigateRequest
	Grid           *engine.Grid
	Start          engine.Coordinate
	StartHeading   engine.Heading
	Outcome        engine.Outcome
	Steps          []engine.Step
	Expected       *scenario.Expectation
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
