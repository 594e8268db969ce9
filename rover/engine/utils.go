package engine

// ManhattanDistance calculates the Manhattan distance between two coordinates
func ManhattanDistance(from, to Coordinate) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// CountInBounds counts the obstacles that lie inside the grid
func CountInBounds(g *Grid) int {
	count := 0
	for c := range g.obstacles {
		if g.InBounds(c) {
			count++
		}
	}
	return count
}

// Density returns the fraction of grid cells occupied by in-bounds obstacles
func Density(g *Grid) float64 {
	cells := float64(g.size) * float64(g.size)
	return float64(CountInBounds(g)) / cells
}

// Neighbors returns the four cells adjacent to c in heading order N, E, S, W
func Neighbors(c Coordinate) [4]Coordinate {
	return [4]Coordinate{
		c.Add(North.Unit()),
		c.Add(East.Unit()),
		c.Add(South.Unit()),
		c.Add(West.Unit()),
	}
}

// OpenMoves returns the headings in which a rover at c could take one
// successful step
func OpenMoves(g *Grid, c Coordinate) []Heading {
	var open []Heading
	for i, n := range Neighbors(c) {
		if !g.HasObstacle(n) && g.InBounds(n) {
			open = append(open, Heading(i))
		}
	}
	return open
}
