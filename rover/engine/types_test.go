package engine

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestHeading_UnitVectors(t *testing.T) {
	tests := []struct {
		heading Heading
		dx, dy  int
	}{
		{North, 0, 1},
		{East, 1, 0},
		{South, 0, -1},
		{West, -1, 0},
	}

	for _, test := range tests {
		t.Run(test.heading.String(), func(t *testing.T) {
			u := test.heading.Unit()
			if u.X != test.dx || u.Y != test.dy {
				t.Errorf("Unit(%s): expected (%d,%d), got %s", test.heading, test.dx, test.dy, u)
			}
		})
	}
}

func TestHeading_InvalidPanics(t *testing.T) {
	for _, h := range []Heading{Heading(-1), Heading(4), Heading(7)} {
		t.Run(h.String(), func(t *testing.T) {
			for name, fn := range map[string]func(){
				"Unit":  func() { h.Unit() },
				"Left":  func() { h.Left() },
				"Right": func() { h.Right() },
			} {
				func() {
					defer func() {
						r := recover()
						msg, ok := r.(string)
						if !ok || !strings.Contains(msg, "invalid heading") {
							t.Errorf("%s: expected invalid heading panic, got %v", name, r)
						}
					}()
					fn()
				}()
			}
		})
	}
}

func TestParseHeading(t *testing.T) {
	tests := []struct {
		input    string
		expected Heading
		wantErr  bool
	}{
		{"N", North, false},
		{"e", East, false},
		{"South", South, false},
		{" west ", West, false},
		{"NE", North, true},
		{"", North, true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			h, err := ParseHeading(test.input)
			if test.wantErr {
				if !errors.Is(err, ErrInvalidHeading) {
					t.Errorf("Expected ErrInvalidHeading for %q, got %v", test.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if h != test.expected {
				t.Errorf("Expected %s, got %s", test.expected, h)
			}
		})
	}
}

func TestStatus_Strings(t *testing.T) {
	tests := []struct {
		status  Status
		display string
		code    string
	}{
		{Success, "Success", "success"},
		{ObstacleEncountered, "Obstacle encountered", "obstacle"},
		{OutOfBounds, "Out of bounds", "out_of_bounds"},
	}

	for _, test := range tests {
		if test.status.String() != test.display {
			t.Errorf("String(): expected %q, got %q", test.display, test.status.String())
		}
		if test.status.Code() != test.code {
			t.Errorf("Code(): expected %q, got %q", test.code, test.status.Code())
		}
	}
}

func TestOutcome_JSON(t *testing.T) {
	outcome := Outcome{Position: Coordinate{1, 3}, Heading: North, Status: Success}

	data, err := json.Marshal(outcome)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"final_position":{"x":1,"y":3},"final_direction":"N","status":"Success"}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}

	var decoded Outcome
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded != outcome {
		t.Errorf("Round trip mismatch: %v != %v", decoded, outcome)
	}
}

func TestCoordinate_UnmarshalForms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Coordinate
		wantErr  bool
	}{
		{"pair", `[1,2]`, Coordinate{1, 2}, false},
		{"negative pair", `[-4,7]`, Coordinate{-4, 7}, false},
		{"object", `{"x":3,"y":4}`, Coordinate{3, 4}, false},
		{"short pair", `[1]`, Coordinate{}, true},
		{"long pair", `[1,2,3]`, Coordinate{}, true},
		{"string", `"1,2"`, Coordinate{}, true},
		{"empty object", `{}`, Coordinate{}, true},
		{"object missing y", `{"x":1}`, Coordinate{}, true},
		{"object missing x", `{"y":1}`, Coordinate{}, true},
		{"object with zero axes", `{"x":0,"y":0}`, Coordinate{0, 0}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var c Coordinate
			err := json.Unmarshal([]byte(test.input), &c)
			if test.wantErr {
				if err == nil {
					t.Errorf("Expected error for %s", test.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if c != test.expected {
				t.Errorf("Expected %s, got %s", test.expected, c)
			}
		})
	}
}

func TestParseCommands(t *testing.T) {
	commands, err := ParseCommands("lRmM")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []Command{TurnLeft, TurnRight, Move, Move}
	if len(commands) != len(want) {
		t.Fatalf("Expected %d commands, got %d", len(want), len(commands))
	}
	for i := range want {
		if commands[i] != want[i] {
			t.Errorf("Command %d: expected %s, got %s", i, want[i], commands[i])
		}
	}

	if got := FormatCommands(commands); got != "LRMM" {
		t.Errorf("FormatCommands: expected LRMM, got %s", got)
	}

	if !ValidCommands("") || !ValidCommands("mmrl") {
		t.Error("Expected empty and lower-case strings to be valid")
	}
	if ValidCommands("MMX") {
		t.Error("Expected MMX to be invalid")
	}
}

func TestStep_JSON(t *testing.T) {
	step := Step{
		Index:         4,
		Command:       Move,
		From:          Coordinate{X: 0, Y: 2},
		To:            Coordinate{X: 0, Y: 2},
		HeadingBefore: East,
		HeadingAfter:  East,
		Status:        ObstacleEncountered,
	}

	data, err := json.Marshal(step)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Step
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded != step {
		t.Errorf("Expected %+v, got %+v", step, decoded)
	}

	var c Command
	if err := json.Unmarshal([]byte(`"LR"`), &c); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Expected ErrInvalidCommand for two symbols, got %v", err)
	}
	if err := json.Unmarshal([]byte(`"x"`), &c); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Expected ErrInvalidCommand for unknown symbol, got %v", err)
	}
}
