// Command rover drives the rover navigator from the terminal.
//
// Usage:
//
//	rover navigate --size 5 --obstacle 1,2 --obstacle 3,3 MMRM
//	rover navigate --size 5 --start 2,2 --heading E --trace LMLM
//	rover scenario list --dir ./scenarios
//	rover scenario run --dir ./scenarios obstacle
//	rover demo
//
// SCENARIO_DIR (optionally from a .env file) overrides the default scenario directory.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/roversim/rover/engine"
	"github.com/wricardo/mcp-training/roversim/rover/runs"
	"github.com/wricardo/mcp-training/roversim/rover/scenario"
	"github.com/wricardo/mcp-training/roversim/rover/service"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "rover"
)

// ErrExpectationNotMet is returned by "scenario run" when a scenario's recorded
// expectation does not match its outcome.
var ErrExpectationNotMet = errors.New("scenario expectation not met")

func main() {
	_ = godotenv.Load()

	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:                      AppName,
		Usage:                     "simulate a rover on a grid with obstacles",
		Version:                   Version,
		Writer:                    out,
		ErrWriter:                 errOut,
		DisableSliceFlagSeparator: true,
		Commands: []*cli.Command{
			navigateCommand(),
			scenarioCommand(),
			demoCommand(),
		},
	}
}

func dirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Value:   "scenarios",
		Usage:   "scenario directory",
		Sources: cli.EnvVars("SCENARIO_DIR"),
	}
}

func navigateCommand() *cli.Command {
	return &cli.Command{
		Name:      "navigate",
		Aliases:   []string{"nav"},
		Usage:     "run a command string (L, R, M) on a square grid",
		ArgsUsage: "<commands>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "size", Aliases: []string{"s"}, Value: 5, Usage: "grid side length"},
			&cli.StringSliceFlag{Name: "obstacle", Aliases: []string{"o"}, Usage: "obstacle cell as x,y (repeatable)"},
			&cli.StringFlag{Name: "start", Value: "0,0", Usage: "start cell as x,y"},
			&cli.StringFlag{Name: "heading", Value: "N", Usage: "start heading (N, E, S, W)"},
			&cli.BoolFlag{Name: "trace", Aliases: []string{"t"}, Usage: "print every executed command"},
			&cli.BoolFlag{Name: "json", Usage: "print the run as JSON"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			obstacles := make([]engine.Coordinate, 0, len(cmd.StringSlice("obstacle")))
			for _, raw := range cmd.StringSlice("obstacle") {
				c, err := parseCoordinate(raw)
				if err != nil {
					return fmt.Errorf("invalid --obstacle: %w", err)
				}
				obstacles = append(obstacles, c)
			}

			start, err := parseCoordinate(cmd.String("start"))
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}

			req := &service.NavigateRequest{
				GridSize:  cmd.Int("size"),
				Obstacles: obstacles,
				Start:     &start,
				Heading:   cmd.String("heading"),
				Commands:  strings.Join(cmd.Args().Slice(), ""),
			}

			info, err := newService(nil).Navigate(ctx, req)
			if err != nil {
				return err
			}

			return printRun(cmd.Root().Writer, info, cmd.Bool("trace"), cmd.Bool("json"))
		},
	}
}

func scenarioCommand() *cli.Command {
	return &cli.Command{
		Name:  "scenario",
		Usage: "list and run stored scenarios",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list scenarios in the scenario directory",
				Flags: []cli.Flag{dirFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					manager, err := scenario.NewManager(cmd.String("dir"))
					if err != nil {
						return err
					}

					infos, err := manager.ListScenarios()
					if err != nil {
						return err
					}

					out := cmd.Root().Writer
					if len(infos) == 0 {
						fmt.Fprintf(out, "No scenarios found in %s\n", manager.Dir())
						return nil
					}
					for _, info := range infos {
						fmt.Fprintf(out, "%-16s %-24s grid=%d obstacles=%d commands=%d\n",
							info.ScenarioID, info.Name, info.GridSize, info.Obstacles, info.Commands)
					}
					return nil
				},
			},
			{
				Name:      "run",
				Usage:     "run a stored scenario and check its expectation",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					dirFlag(),
					&cli.BoolFlag{Name: "trace", Aliases: []string{"t"}, Usage: "print every executed command"},
					&cli.BoolFlag{Name: "json", Usage: "print the run as JSON"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() != 1 {
						return fmt.Errorf("expected exactly one scenario name, got %d", cmd.NArg())
					}

					manager, err := scenario.NewManager(cmd.String("dir"))
					if err != nil {
						return err
					}

					info, err := newService(manager).RunScenario(ctx, cmd.Args().First())
					if err != nil {
						return err
					}

					if err := printRun(cmd.Root().Writer, info, cmd.Bool("trace"), cmd.Bool("json")); err != nil {
						return err
					}
					if info.ExpectationMet != nil && !*info.ExpectationMet {
						return fmt.Errorf("%w: %s", ErrExpectationNotMet, info.ScenarioName)
					}
					return nil
				},
			},
		},
	}
}

// demoRuns are the reference runs on a 5x5 grid with obstacles at (1,2) and (3,3)
var demoRuns = []struct {
	title    string
	commands string
}{
	{"Successful navigation", "MMMRML"},
	{"Obstacle encountered", "MMRM"},
	{"Boundary reached", "MMMMMMMM"},
}

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "run the reference examples on a 5x5 grid",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer
			obstacles := []engine.Coordinate{{X: 1, Y: 2}, {X: 3, Y: 3}}

			fmt.Fprintf(out, "Grid: 5x5, Obstacles: %s %s\n", obstacles[0], obstacles[1])
			for i, demo := range demoRuns {
				outcome, err := engine.Navigate(5, obstacles, demo.commands)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\n%d. %s\n   Commands: %s\n   Result:   %s\n", i+1, demo.title, demo.commands, outcome)
			}
			return nil
		},
	}
}

func newService(scenarios service.ScenarioManager) service.NavigationService {
	return service.NewNavigationService(runs.NewManager(), scenarios)
}

// parseCoordinate parses "x,y"
func parseCoordinate(s string) (engine.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return engine.Coordinate{}, fmt.Errorf("expected x,y, got %q", s)
	}

	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return engine.Coordinate{}, fmt.Errorf("invalid x in %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return engine.Coordinate{}, fmt.Errorf("invalid y in %q: %w", s, err)
	}

	return engine.Coordinate{X: x, Y: y}, nil
}

func printRun(out io.Writer, info *service.RunInfo, trace, asJSON bool) error {
	if asJSON {
		if !trace {
			info.Steps = nil
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	if info.ScenarioName != "" {
		fmt.Fprintf(out, "Scenario: %s\n", info.ScenarioName)
	}
	fmt.Fprintf(out, "Result: %s\n", info.Outcome)
	fmt.Fprintf(out, "Executed: %d/%d\n", info.ExecutedCommands, info.RequestedCommands)

	if info.AttemptedTo != nil {
		fmt.Fprintf(out, "Stopped on command %d: attempted (%d,%d) [%s]\n",
			info.StoppedOnCommand, info.AttemptedTo.X, info.AttemptedTo.Y, info.StopReasonCode)
	}

	if info.ExpectationMet != nil {
		if *info.ExpectationMet {
			fmt.Fprintln(out, "Expectation: met")
		} else {
			fmt.Fprintln(out, "Expectation: NOT met")
		}
	}

	if trace {
		for _, step := range info.Steps {
			fmt.Fprintf(out, "  %2d. %s %s %s -> %s %s  %s\n",
				step.Index, step.Command, step.From, step.HeadingBefore, step.To, step.HeadingAfter, step.Status)
		}
	}
	return nil
}
