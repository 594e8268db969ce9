package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wricardo/mcp-training/roversim/rover/engine"
	"github.com/wricardo/mcp-training/roversim/rover/scenario"
)

// navigationServiceImpl implements the NavigationService interface
type navigationServiceImpl struct {
	runs      RunStore
	scenarios ScenarioManager
	navigator engine.Navigator
}

// NewNavigationService creates a new navigation service instance
func NewNavigationService(runs RunStore, scenarios ScenarioManager) NavigationService {
	return &navigationServiceImpl{
		runs:      runs,
		scenarios: scenarios,
	}
}

// Navigate validates the request, runs a fresh rover and records the run
func (s *navigationServiceImpl) Navigate(ctx context.Context, req *NavigateRequest) (*RunInfo, error) {
	commands, heading, err := req.Validate()
	if err != nil {
		return nil, err
	}

	grid, err := engine.NewGrid(req.GridSize, req.Obstacles)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	opts := []engine.RoverOption{engine.WithHeading(heading)}
	if req.Start != nil {
		opts = append(opts, engine.WithPosition(*req.Start))
	}

	return s.execute("", req, engine.NewRover(grid, opts...), commands, nil)
}

// RunScenario loads a scenario by name and runs it
func (s *navigationServiceImpl) RunScenario(ctx context.Context, scenarioName string) (*RunInfo, error) {
	var sc *scenario.Scenario
	var err error
	if scenarioName != "" {
		sc, err = s.scenarios.LoadScenario(scenarioName)
		if err != nil {
			return nil, s.scenarioError(scenarioName, err)
		}
	} else {
		sc = s.scenarios.GetDefault()
		scenarioName = "default"
	}

	rover, commands, err := sc.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	start := rover.Position()
	req := &NavigateRequest{
		GridSize:  sc.GridSize,
		Obstacles: sc.Obstacles,
		Start:     &start,
		Heading:   rover.Heading().String(),
		Commands:  sc.Commands,
	}

	return s.execute(strings.TrimSuffix(scenarioName, ".json"), req, rover, commands, sc.Expected)
}

// GetRun retrieves run information
func (s *navigationServiceImpl) GetRun(ctx context.Context, runID string) (*RunInfo, error) {
	if err := s.runs.Touch(runID); err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	return buildRunInfo(run), nil
}

// ListRuns returns all recorded runs
func (s *navigationServiceImpl) ListRuns(ctx context.Context) ([]*RunInfo, error) {
	runs := s.runs.List()
	result := make([]*RunInfo, 0, len(runs))

	for _, run := range runs {
		info := buildRunInfo(run)
		// Listings stay compact
		info.Steps = nil
		result = append(result, info)
	}

	return result, nil
}

// DeleteRun removes a run
func (s *navigationServiceImpl) DeleteRun(ctx context.Context, runID string) error {
	return s.runs.Delete(runID)
}

// ListScenarios returns all available scenarios
func (s *navigationServiceImpl) ListScenarios(ctx context.Context) ([]*scenario.Info, error) {
	return s.scenarios.ListScenarios()
}

// LoadScenario loads a specific scenario
func (s *navigationServiceImpl) LoadScenario(ctx context.Context, scenarioName string) (*scenario.Scenario, error) {
	sc, err := s.scenarios.LoadScenario(scenarioName)
	if err != nil {
		return nil, s.scenarioError(scenarioName, err)
	}
	return sc, nil
}

// SaveScenario saves a scenario
func (s *navigationServiceImpl) SaveScenario(ctx context.Context, scenarioName string, sc *scenario.Scenario) error {
	if err := s.scenarios.SaveScenario(scenarioName, sc); err != nil {
		if errors.Is(err, scenario.ErrInvalidScenario) {
			return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		return err
	}
	return nil
}

func (s *navigationServiceImpl) execute(scenarioName string, req *NavigateRequest, rover *engine.Rover, commands []engine.Command, expected *scenario.Expectation) (*RunInfo, error) {
	start, heading := rover.Position(), rover.Heading()
	outcome, steps := s.navigator.Trace(rover, commands)

	now := time.Now()
	run, err := s.runs.Add(&Run{
		ScenarioName:   scenarioName,
		Request:        req,
		Grid:           rover.Grid(),
		Start:          start,
		StartHeading:   heading,
		Outcome:        outcome,
		Steps:          steps,
		Expected:       expected,
		CreatedAt:      now,
		LastAccessedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	return buildRunInfo(run), nil
}

// scenarioError adds the available scenario ids to a not-found error
func (s *navigationServiceImpl) scenarioError(name string, err error) error {
	if !errors.Is(err, scenario.ErrScenarioNotFound) {
		return fmt.Errorf("failed to load scenario %s: %w", name, err)
	}

	infos, listErr := s.scenarios.ListScenarios()
	if listErr == nil && len(infos) > 0 {
		var ids []string
		for _, info := range infos {
			ids = append(ids, info.ScenarioID)
		}
		return fmt.Errorf("scenario '%s': %w. Available scenarios: %v", name, err, ids)
	}
	return fmt.Errorf("scenario '%s': %w. Use /api/scenarios to list available scenarios", name, err)
}

func buildRunInfo(run *Run) *RunInfo {
	req := run.Request
	info := &RunInfo{
		ID:                run.ID,
		ScenarioName:      run.ScenarioName,
		CreatedAt:         run.CreatedAt,
		LastAccessedAt:    run.LastAccessedAt,
		GridSize:          req.GridSize,
		Obstacles:         req.Obstacles,
		Commands:          strings.ToUpper(req.Commands),
		Start:             run.Start,
		StartHeading:      run.StartHeading,
		Outcome:           run.Outcome,
		RequestedCommands: len(req.Commands),
		ExecutedCommands:  len(run.Steps),
		Steps:             run.Steps,
	}
	if info.Obstacles == nil {
		info.Obstacles = []engine.Coordinate{}
	}

	if run.Outcome.Status != engine.Success && len(run.Steps) > 0 {
		last := run.Steps[len(run.Steps)-1]
		target := last.From.Add(last.HeadingBefore.Unit())

		info.ExecutedCommands--
		info.StopReasonCode = run.Outcome.Status.Code()
		info.StoppedOnCommand = last.Index
		info.AttemptedTo = &AttemptInfo{
			X:        target.X,
			Y:        target.Y,
			Obstacle: run.Outcome.Status == engine.ObstacleEncountered,
			InBounds: run.Grid != nil && run.Grid.InBounds(target),
			Reason:   run.Outcome.Status.String(),
		}
	}

	if run.Expected != nil {
		met := run.Expected.Matches(run.Outcome)
		info.ExpectationMet = &met
	}

	return info
}
