package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allHeadings = []Heading{North, East, South, West}

func newTestGrid(t *testing.T, size int, obstacles ...Coordinate) *Grid {
	t.Helper()
	grid, err := NewGrid(size, obstacles)
	require.NoError(t, err)
	return grid
}

func TestNewRover_Defaults(t *testing.T) {
	r := NewRover(newTestGrid(t, 5))

	assert.Equal(t, Coordinate{0, 0}, r.Position())
	assert.Equal(t, North, r.Heading())
}

func TestNewRover_Options(t *testing.T) {
	grid := newTestGrid(t, 5, Coordinate{1, 2})
	r := NewRover(grid, WithPosition(Coordinate{2, 3}), WithHeading(East))

	assert.Equal(t, Coordinate{2, 3}, r.Position())
	assert.Equal(t, East, r.Heading())
	assert.Same(t, grid, r.Grid())
}

func TestWithHeading_RejectsInvalidHeading(t *testing.T) {
	assert.PanicsWithValue(t, "engine: WithHeading called with invalid heading 4", func() {
		WithHeading(Heading(4))
	})
	assert.Panics(t, func() { WithHeading(Heading(-1)) })
	assert.NotPanics(t, func() {
		for _, h := range allHeadings {
			WithHeading(h)
		}
	})
}

func TestNewRover_AcceptsInvalidStart(t *testing.T) {
	grid := newTestGrid(t, 5, Coordinate{1, 1})

	onObstacle := NewRover(grid, WithPosition(Coordinate{1, 1}))
	assert.Equal(t, Coordinate{1, 1}, onObstacle.Position())

	outside := NewRover(grid, WithPosition(Coordinate{-3, 9}))
	assert.Equal(t, Coordinate{-3, 9}, outside.Position())
}

func TestRover_TurnTables(t *testing.T) {
	left := map[Heading]Heading{North: West, West: South, South: East, East: North}
	right := map[Heading]Heading{North: East, East: South, South: West, West: North}

	for _, h := range allHeadings {
		t.Run(h.String(), func(t *testing.T) {
			r := NewRover(newTestGrid(t, 5), WithPosition(Coordinate{2, 2}), WithHeading(h))
			r.TurnLeft()
			assert.Equal(t, left[h], r.Heading(), "left of %s", h)
			assert.Equal(t, Coordinate{2, 2}, r.Position())

			r = NewRover(newTestGrid(t, 5), WithPosition(Coordinate{2, 2}), WithHeading(h))
			r.TurnRight()
			assert.Equal(t, right[h], r.Heading(), "right of %s", h)
			assert.Equal(t, Coordinate{2, 2}, r.Position())
		})
	}
}

func TestRover_TurnInverses(t *testing.T) {
	for _, h := range allHeadings {
		r := NewRover(newTestGrid(t, 3), WithHeading(h))
		r.TurnLeft()
		r.TurnRight()
		assert.Equal(t, h, r.Heading(), "left then right from %s", h)

		r.TurnRight()
		r.TurnLeft()
		assert.Equal(t, h, r.Heading(), "right then left from %s", h)
	}
}

func TestRover_FullRotation(t *testing.T) {
	for _, h := range allHeadings {
		r := NewRover(newTestGrid(t, 3), WithHeading(h))
		for i := 0; i < 4; i++ {
			r.TurnLeft()
		}
		assert.Equal(t, h, r.Heading(), "four lefts from %s", h)

		for i := 0; i < 4; i++ {
			r.TurnRight()
		}
		assert.Equal(t, h, r.Heading(), "four rights from %s", h)
	}
}

func TestRover_MoveSucceedsOnFreeCells(t *testing.T) {
	grid := newTestGrid(t, 5, Coordinate{1, 2}, Coordinate{3, 3})

	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			start := Coordinate{x, y}
			for _, h := range allHeadings {
				target := start.Add(h.Unit())
				if !grid.InBounds(target) || grid.HasObstacle(target) {
					continue
				}
				r := NewRover(grid, WithPosition(start), WithHeading(h))
				require.Equal(t, Success, r.Move(), "move %s from %s", h, start)
				assert.Equal(t, target, r.Position())
				assert.Equal(t, h, r.Heading())
			}
		}
	}
}

func TestRover_MoveIntoObstacle(t *testing.T) {
	grid := newTestGrid(t, 5, Coordinate{1, 2}, Coordinate{3, 3})

	tests := []struct {
		name    string
		start   Coordinate
		heading Heading
	}{
		{"north into (1,2)", Coordinate{1, 1}, North},
		{"east into (1,2)", Coordinate{0, 2}, East},
		{"west into (3,3)", Coordinate{4, 3}, West},
		{"south into (3,3)", Coordinate{3, 4}, South},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := NewRover(grid, WithPosition(test.start), WithHeading(test.heading))
			assert.Equal(t, ObstacleEncountered, r.Move())
			assert.Equal(t, test.start, r.Position())
			assert.Equal(t, test.heading, r.Heading())
		})
	}
}

func TestRover_ObstacleCheckedBeforeBounds(t *testing.T) {
	grid := newTestGrid(t, 5, Coordinate{0, -1}, Coordinate{5, 4})

	r := NewRover(grid, WithHeading(South))
	assert.Equal(t, ObstacleEncountered, r.Move())
	assert.Equal(t, Coordinate{0, 0}, r.Position())

	r = NewRover(grid, WithPosition(Coordinate{4, 4}), WithHeading(East))
	assert.Equal(t, ObstacleEncountered, r.Move())
	assert.Equal(t, Coordinate{4, 4}, r.Position())
}

func TestRover_MoveOutOfBounds(t *testing.T) {
	grid := newTestGrid(t, 5)

	tests := []struct {
		start   Coordinate
		heading Heading
	}{
		{Coordinate{0, 4}, North},
		{Coordinate{4, 0}, East},
		{Coordinate{0, 0}, South},
		{Coordinate{0, 0}, West},
		{Coordinate{4, 4}, North},
		{Coordinate{4, 4}, East},
	}

	for _, test := range tests {
		r := NewRover(grid, WithPosition(test.start), WithHeading(test.heading))
		assert.Equal(t, OutOfBounds, r.Move(), "move %s from %s", test.heading, test.start)
		assert.Equal(t, test.start, r.Position())
		assert.Equal(t, test.heading, r.Heading())
	}
}

func TestRover_MinimalGridRejectsEveryMove(t *testing.T) {
	grid := newTestGrid(t, 1)

	for _, h := range allHeadings {
		r := NewRover(grid, WithHeading(h))
		assert.Equal(t, OutOfBounds, r.Move(), "heading %s", h)
		assert.Equal(t, Coordinate{0, 0}, r.Position())
	}
}

func TestRover_RejectedMoveIsRepeatable(t *testing.T) {
	grid := newTestGrid(t, 5, Coordinate{0, 1})
	r := NewRover(grid)

	for i := 0; i < 3; i++ {
		assert.Equal(t, ObstacleEncountered, r.Move())
	}
	assert.Equal(t, Coordinate{0, 0}, r.Position())

	r.TurnRight()
	assert.Equal(t, Success, r.Move())
	assert.Equal(t, Coordinate{1, 0}, r.Position())
}
