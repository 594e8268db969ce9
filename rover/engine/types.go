package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Coordinate represents x,y grid coordinates
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the coordinate offset by d
func (c Coordinate) Add(d Coordinate) Coordinate {
	return Coordinate{X: c.X + d.X, Y: c.Y + d.Y}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// UnmarshalJSON accepts both the [x,y] pair form and the {"x":..,"y":..} object form.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("coordinate must have exactly 2 elements, got %d", len(pair))
		}
		c.X, c.Y = pair[0], pair[1]
		return nil
	}

	var obj struct {
		X *int `json:"x"`
		Y *int `json:"y"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("coordinate must be [x,y] or {\"x\":..,\"y\":..}: %w", err)
	}
	if obj.X == nil || obj.Y == nil {
		return fmt.Errorf("coordinate object requires both \"x\" and \"y\", got %s", data)
	}
	c.X, c.Y = *obj.X, *obj.Y
	return nil
}

// Heading is the cardinal direction the rover faces, ordered clockwise.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

var headingSymbols = [...]string{North: "N", East: "E", South: "S", West: "W"}

var headingUnits = [...]Coordinate{
	North: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: -1},
	West:  {X: -1, Y: 0},
}

// Valid reports whether h is one of the four cardinal headings
func (h Heading) Valid() bool {
	return h >= North && h <= West
}

// Left returns the heading after a 90° counter-clockwise turn: N→W, W→S, S→E, E→N.
// It panics if h is not a cardinal heading.
func (h Heading) Left() Heading {
	h.mustBeValid()
	return (h + 3) % 4
}

// Right returns the heading after a 90° clockwise turn: N→E, E→S, S→W, W→N.
// It panics if h is not a cardinal heading.
func (h Heading) Right() Heading {
	h.mustBeValid()
	return (h + 1) % 4
}

// Unit returns the one-cell displacement for moving forward along h.
// It panics if h is not a cardinal heading.
func (h Heading) Unit() Coordinate {
	h.mustBeValid()
	return headingUnits[h]
}

func (h Heading) mustBeValid() {
	if !h.Valid() {
		panic(fmt.Sprintf("engine: invalid heading %d", int(h)))
	}
}

func (h Heading) String() string {
	if !h.Valid() {
		return fmt.Sprintf("Heading(%d)", int(h))
	}
	return headingSymbols[h]
}

// MarshalJSON encodes the heading as its one-letter symbol
func (h Heading) MarshalJSON() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid heading %d", int(h))
	}
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a heading symbol or name
func (h *Heading) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseHeading(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHeading parses N/E/S/W or the full direction name, case-insensitive.
func ParseHeading(s string) (Heading, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "N", "NORTH":
		return North, nil
	case "E", "EAST":
		return East, nil
	case "S", "SOUTH":
		return South, nil
	case "W", "WEST":
		return West, nil
	}
	return North, fmt.Errorf("%w: %q", ErrInvalidHeading, s)
}

// Command is a single discrete rover instruction
type Command int

const (
	TurnLeft Command = iota
	TurnRight
	Move
)

// Valid reports whether c is a known command
func (c Command) Valid() bool {
	return c >= TurnLeft && c <= Move
}

func (c Command) String() string {
	switch c {
	case TurnLeft:
		return "L"
	case TurnRight:
		return "R"
	case Move:
		return "M"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// MarshalJSON encodes the command as its L/R/M symbol
func (c Command) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a single L/R/M symbol
func (c *Command) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCommands(s)
	if err != nil {
		return err
	}
	if len(parsed) != 1 {
		return fmt.Errorf("%w: expected one command, got %q", ErrInvalidCommand, s)
	}
	*c = parsed[0]
	return nil
}

// Status is the result of a move and the terminal status of a navigation run.
// ObstacleEncountered and OutOfBounds are normal outcomes, not errors.
type Status int

const (
	Success Status = iota
	ObstacleEncountered
	OutOfBounds
)

func (s Status) String() string {
	switch s {
	case Success:
		return "Success"
	case ObstacleEncountered:
		return "Obstacle encountered"
	case OutOfBounds:
		return "Out of bounds"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Code returns a machine-friendly status code
func (s Status) Code() string {
	switch s {
	case Success:
		return "success"
	case ObstacleEncountered:
		return "obstacle"
	case OutOfBounds:
		return "out_of_bounds"
	}
	return "unknown"
}

// MarshalJSON encodes the status using its display string
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either the display string or the code
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	for _, candidate := range []Status{Success, ObstacleEncountered, OutOfBounds} {
		if strings.EqualFold(str, candidate.String()) || strings.EqualFold(str, candidate.Code()) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", str)
}

// Outcome is the final state of one navigation run
type Outcome struct {
	Position Coordinate `json:"final_position"`
	Heading  Heading    `json:"final_direction"`
	Status   Status     `json:"status"`
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s facing %s: %s", o.Position, o.Heading, o.Status)
}

// Step records a single executed command within a traced run
type Step struct {
	Index         int        `json:"idx"`
	Command       Command    `json:"cmd"`
	From          Coordinate `json:"from"`
	To            Coordinate `json:"to"`
	HeadingBefore Heading    `json:"heading_before"`
	HeadingAfter  Heading    `json:"heading_after"`
	Status        Status     `json:"status"`
}
