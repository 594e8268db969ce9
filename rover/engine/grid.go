package engine

import (
	"fmt"
	"sort"
)

// Grid is a square region [0,size)×[0,size) with a set of impassable cells.
// A Grid is immutable after construction and may be shared by many rovers.
type Grid struct {
	size      int
	obstacles map[Coordinate]struct{}
}

// NewGrid creates a grid with the given edge length and obstacle cells.
// Obstacles outside the grid are accepted; they are simply unreachable.
func NewGrid(size int, obstacles []Coordinate) (*Grid, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidGridSize, size)
	}

	set := make(map[Coordinate]struct{}, len(obstacles))
	for _, c := range obstacles {
		set[c] = struct{}{}
	}

	return &Grid{size: size, obstacles: set}, nil
}

// Size returns the grid edge length
func (g *Grid) Size() int {
	return g.size
}

// InBounds reports whether c lies inside [0,size) on both axes
func (g *Grid) InBounds(c Coordinate) bool {
	return c.X >= 0 && c.X < g.size && c.Y >= 0 && c.Y < g.size
}

// HasObstacle reports whether c is a listed obstacle, in or out of bounds
func (g *Grid) HasObstacle(c Coordinate) bool {
	_, ok := g.obstacles[c]
	return ok
}

// Obstacles returns the distinct obstacle cells sorted by y, then x
func (g *Grid) Obstacles() []Coordinate {
	out := make([]Coordinate, 0, len(g.obstacles))
	for c := range g.obstacles {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
