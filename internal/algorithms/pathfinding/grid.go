// Package pathfinding produces step-by-step snapshots of grid searches.
package pathfinding

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// CellState is the highlight applied to one grid cell.
type CellState string

const (
	Default CellState = "default"
	Open    CellState = "open"
	Closed  CellState = "closed"
	Path    CellState = "path"
	Start   CellState = "start"
	End     CellState = "end"
	Wall    CellState = "wall"
)

// Grid size bounds accepted by ValidSize.
const (
	MinSize = 5
	MaxSize = 50
)

var (
	ErrInvalidGrid = errors.New("grid must have at least one row and column")
	ErrOutOfBounds = errors.New("position outside grid")
	ErrBlocked     = errors.New("position is a wall")

	// ErrUnknownAlgorithm is returned by Lookup for an unregistered id.
	ErrUnknownAlgorithm = errors.New("unknown pathfinding algorithm")
)

// Position is a zero-based cell coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string { return fmt.Sprintf("(%d, %d)", p.Row, p.Col) }

// up, down, left, right
//
//nolint:gochecknoglobals // fixed neighbour order.
var directions = [...]Position{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Grid is a rectangular board; cells in Walls are impassable.
type Grid struct {
	Rows  int                   `json:"rows"`
	Cols  int                   `json:"cols"`
	Walls map[Position]struct{} `json:"-"`
}

// NewGrid returns an empty rows×cols grid.
func NewGrid(rows, cols int) Grid {
	return Grid{Rows: rows, Cols: cols, Walls: make(map[Position]struct{})}
}

// Contains reports whether p lies on the grid.
func (g Grid) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < g.Rows && p.Col >= 0 && p.Col < g.Cols
}

// IsWall reports whether p is blocked.
func (g Grid) IsWall(p Position) bool {
	_, ok := g.Walls[p]
	return ok
}

// SetWall blocks p.
func (g *Grid) SetWall(p Position) {
	if g.Walls == nil {
		g.Walls = make(map[Position]struct{})
	}
	g.Walls[p] = struct{}{}
}

func (g Grid) validate(start, end Position) error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, g.Rows, g.Cols)
	}
	for _, p := range []Position{start, end} {
		if !g.Contains(p) {
			return fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, p, g.Rows, g.Cols)
		}
		if g.IsWall(p) {
			return fmt.Errorf("%w: %v", ErrBlocked, p)
		}
	}
	return nil
}

// neighbours returns the passable in-bounds neighbours of p in up, down, left,
// right order.
func (g Grid) neighbours(p Position) []Position {
	out := make([]Position, 0, len(directions))
	for _, d := range directions {
		n := Position{p.Row + d.Row, p.Col + d.Col}
		if g.Contains(n) && !g.IsWall(n) {
			out = append(out, n)
		}
	}
	return out
}

// ValidSize reports whether n is an accepted grid dimension.
func ValidSize(n int) bool {
	return n >= MinSize && n <= MaxSize
}

func intn(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n) //nolint:gosec // visualization data
	}
	return rng.IntN(n)
}

// RandomStartEnd picks two distinct cells. The grid must have at least two cells.
func RandomStartEnd(rng *rand.Rand, rows, cols int) (Position, Position) {
	start := Position{intn(rng, rows), intn(rng, cols)}
	for {
		end := Position{intn(rng, rows), intn(rng, cols)}
		if end != start {
			return start, end
		}
	}
}

// RandomWalls blocks roughly density of the cells, never start or end.
func RandomWalls(rng *rand.Rand, g *Grid, density float64, start, end Position) {
	if density <= 0 {
		return
	}
	for r := range g.Rows {
		for c := range g.Cols {
			p := Position{r, c}
			if p == start || p == end {
				continue
			}
			var x float64
			if rng == nil {
				x = rand.Float64() //nolint:gosec // visualization data
			} else {
				x = rng.Float64()
			}
			if x < density {
				g.SetWall(p)
			}
		}
	}
}
