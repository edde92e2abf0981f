package pathfinding

import (
	"container/heap"
	"fmt"

	"github.com/bayanflow/bayan-flow/internal/i18n"
)

// Step is one frame of a pathfinding visualization.
type Step struct {
	States      [][]CellState `json:"states"`
	Description i18n.Message  `json:"description"`
}

// Func runs a search on g from start to end.
type Func func(g Grid, start, end Position) ([]Step, error)

//nolint:gochecknoglobals // static registry.
var registry = map[string]Func{
	"bfs":      BFS,
	"dijkstra": Dijkstra,
	"aStar":    AStar,
}

// Lookup returns the search registered under id.
func Lookup(id string) (Func, error) {
	f, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, id)
	}
	return f, nil
}

// IDs returns every registered algorithm id in display order.
func IDs() []string { return []string{"bfs", "dijkstra", "aStar"} }

const keyPrefix = "algorithmSteps."

// board tracks cell states and emitted steps for one search.
type board struct {
	g          Grid
	start, end Position
	states     [][]CellState
	parent     map[Position]Position
	steps      []Step
}

func newBoard(g Grid, start, end Position, name string) *board {
	b := &board{g: g, start: start, end: end, parent: make(map[Position]Position)}
	b.states = make([][]CellState, g.Rows)
	for r := range b.states {
		b.states[r] = make([]CellState, g.Cols)
		for c := range b.states[r] {
			if g.IsWall(Position{r, c}) {
				b.states[r][c] = Wall
			} else {
				b.states[r][c] = Default
			}
		}
	}
	b.states[start.Row][start.Col] = Start
	b.states[end.Row][end.Col] = End
	b.push("startingPath", i18n.Args{"algorithm": name})
	return b
}

// mark sets p's state unless p is an endpoint.
func (b *board) mark(p Position, s CellState) {
	if p == b.start || p == b.end {
		return
	}
	b.states[p.Row][p.Col] = s
}

func (b *board) push(key string, args i18n.Args) {
	snap := make([][]CellState, len(b.states))
	for r, row := range b.states {
		snap[r] = append([]CellState(nil), row...)
	}
	b.steps = append(b.steps, Step{States: snap, Description: i18n.Msg(keyPrefix+key, args)})
}

// path walks parents back from end and returns the cells after start, end included.
func (b *board) path() []Position {
	var rev []Position
	for p := b.end; p != b.start; p = b.parent[p] {
		rev = append(rev, p)
	}
	out := make([]Position, len(rev))
	for i, p := range rev {
		out[len(rev)-1-i] = p
	}
	return out
}

// finish emits the final step: the marked path, or "no path".
func (b *board) finish(found bool, cost int) []Step {
	if !found {
		b.push("noPath", nil)
		return b.steps
	}
	p := b.path()
	for _, c := range p {
		b.mark(c, Path)
	}
	if cost < 0 {
		b.push("pathFound", i18n.Args{"length": len(p)})
	} else {
		b.push("pathFoundCost", i18n.Args{"length": len(p), "cost": cost})
	}
	return b.steps
}

// BFS explores level by level and finds a shortest path on the unweighted grid.
func BFS(g Grid, start, end Position) ([]Step, error) {
	if err := g.validate(start, end); err != nil {
		return nil, err
	}
	b := newBoard(g, start, end, "BFS")
	visited := map[Position]bool{start: true}
	frontier := []Position{start}

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		b.mark(cur, Closed)
		b.push("exploring", i18n.Args{"row": cur.Row, "col": cur.Col})
		if cur == end {
			return b.finish(true, -1), nil
		}
		for _, n := range g.neighbours(cur) {
			if visited[n] {
				continue
			}
			visited[n] = true
			b.parent[n] = cur
			frontier = append(frontier, n)
			b.mark(n, Open)
		}
		if len(frontier) > 0 {
			b.push("addedToQueue", i18n.Args{"count": len(frontier)})
		}
	}
	return b.finish(false, -1), nil
}

// Dijkstra explores by distance from start with unit edge weights.
func Dijkstra(g Grid, start, end Position) ([]Step, error) {
	if err := g.validate(start, end); err != nil {
		return nil, err
	}
	b := newBoard(g, start, end, "Dijkstra")
	found, cost := b.bestFirst(func(Position) int { return 0 }, func(it *item, _ int) {
		b.push("exploringDistance", i18n.Args{
			"row": it.pos.Row, "col": it.pos.Col, "distance": fmt.Sprintf("%.1f", float64(it.g)),
		})
	})
	return b.finish(found, cost), nil
}

// AStar explores by g+h where h is the Manhattan distance to end.
func AStar(g Grid, start, end Position) ([]Step, error) {
	if err := g.validate(start, end); err != nil {
		return nil, err
	}
	b := newBoard(g, start, end, "A*")
	h := func(p Position) int { return manhattan(p, end) }
	found, cost := b.bestFirst(h, func(it *item, hv int) {
		b.push("exploringScore", i18n.Args{
			"row": it.pos.Row, "col": it.pos.Col,
			"g": fmt.Sprintf("%.1f", float64(it.g)),
			"h": fmt.Sprintf("%.1f", float64(hv)),
			"f": fmt.Sprintf("%.1f", float64(it.f)),
		})
	})
	return b.finish(found, cost), nil
}

// bestFirst is the shared Dijkstra/A* loop. Entries are popped lazily: a cell
// already closed is skipped when it surfaces again.
func (b *board) bestFirst(h func(Position) int, explored func(*item, int)) (bool, int) {
	dist := map[Position]int{b.start: 0}
	closed := make(map[Position]bool)
	pq := &queue{}
	heap.Push(pq, &item{pos: b.start, g: 0, f: h(b.start)})

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*item) //nolint:forcetypeassert // queue only holds *item
		if closed[cur.pos] {
			continue
		}
		closed[cur.pos] = true
		b.mark(cur.pos, Closed)
		explored(cur, h(cur.pos))
		if cur.pos == b.end {
			return true, cur.g
		}
		for _, n := range b.g.neighbours(cur.pos) {
			if closed[n] {
				continue
			}
			ng := cur.g + 1
			if old, seen := dist[n]; seen && ng >= old {
				continue
			}
			dist[n] = ng
			b.parent[n] = cur.pos
			heap.Push(pq, &item{pos: n, g: ng, f: ng + h(n)})
			b.mark(n, Open)
		}
	}
	return false, 0
}

func manhattan(a, b Position) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

type item struct {
	pos  Position
	g, f int
	seq  int
}

// queue is a min-heap on f; equal priorities pop in insertion order.
type queue struct {
	items []*item
	next  int
}

func (q *queue) Len() int { return len(q.items) }

func (q *queue) Less(i, j int) bool {
	if q.items[i].f != q.items[j].f {
		return q.items[i].f < q.items[j].f
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *queue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *queue) Push(x any) {
	it := x.(*item) //nolint:forcetypeassert // only *item is pushed
	it.seq = q.next
	q.next++
	q.items = append(q.items, it)
}

func (q *queue) Pop() any {
	old := q.items
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return it
}
