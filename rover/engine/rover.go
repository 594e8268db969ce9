package engine

import "fmt"

// Rover holds a position and heading on a shared, read-only Grid
type Rover struct {
	grid     *Grid
	position Coordinate
	heading  Heading
}

// RoverOption customizes the rover's initial state
type RoverOption func(*Rover)

// WithPosition sets the starting position. It is not checked against the grid.
func WithPosition(c Coordinate) RoverOption {
	return func(r *Rover) {
		r.position = c
	}
}

// WithHeading sets the starting heading. It panics if h is not a cardinal
// heading; use ParseHeading to validate user input first.
func WithHeading(h Heading) RoverOption {
	if !h.Valid() {
		panic(fmt.Sprintf("engine: WithHeading called with invalid heading %d", int(h)))
	}
	return func(r *Rover) {
		r.heading = h
	}
}

// NewRover creates a rover on grid, starting at (0,0) facing North unless overridden
func NewRover(grid *Grid, opts ...RoverOption) *Rover {
	r := &Rover{
		grid:     grid,
		position: Coordinate{X: 0, Y: 0},
		heading:  North,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Position returns the current position
func (r *Rover) Position() Coordinate {
	return r.position
}

// Heading returns the current heading
func (r *Rover) Heading() Heading {
	return r.heading
}

// Grid returns the grid the rover moves on
func (r *Rover) Grid() *Grid {
	return r.grid
}

// TurnLeft rotates the rover 90° counter-clockwise in place
func (r *Rover) TurnLeft() {
	r.heading = r.heading.Left()
}

// TurnRight rotates the rover 90° clockwise in place
func (r *Rover) TurnRight() {
	r.heading = r.heading.Right()
}

// Target returns the cell the rover would enter on its next Move
func (r *Rover) Target() Coordinate {
	return r.position.Add(r.heading.Unit())
}

// Move advances one cell along the current heading.
//
// The obstacle check runs before the bounds check, so an out-of-bounds cell
// that is also listed as an obstacle reports ObstacleEncountered. On any
// non-Success status the position is left unchanged.
func (r *Rover) Move() Status {
	next := r.Target()

	if r.grid.HasObstacle(next) {
		return ObstacleEncountered
	}
	if !r.grid.InBounds(next) {
		return OutOfBounds
	}

	r.position = next
	return Success
}
