package gekko2d

import (
	"math"
	"sort"
)

// bodyPair indexes two bodies of the slice handed to a BroadPhase, with a < b.
type bodyPair struct {
	a, b int
}

// BroadPhase produces the candidate body pairs for narrow-phase testing. Pairs must
// come out sorted by (a, b) and never pair two static bodies.
type BroadPhase interface {
	Pairs(bodies []*Body, out []bodyPair) []bodyPair
}

func candidatePair(a, b *Body) bool {
	if a.IsStatic() && b.IsStatic() {
		return false
	}
	return len(a.colliders) > 0 && len(b.colliders) > 0
}

// AllPairs tests every unordered pair.
type AllPairs struct{}

func (AllPairs) Pairs(bodies []*Body, out []bodyPair) []bodyPair {
	out = out[:0]
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if candidatePair(bodies[i], bodies[j]) {
				out = append(out, bodyPair{a: i, b: j})
			}
		}
	}
	return out
}

type cellKey struct {
	x, y int
}

// SpatialHashGrid buckets body bounds into square cells and pairs bodies that share
// at least one cell.
type SpatialHashGrid struct {
	cellSize float64
	cells    map[cellKey][]int
	seen     map[bodyPair]struct{}
}

func NewSpatialHashGrid(cellSize float64) *SpatialHashGrid {
	return &SpatialHashGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
		seen:     make(map[bodyPair]struct{}),
	}
}

func (grid *SpatialHashGrid) CellSize() float64 { return grid.cellSize }

func (grid *SpatialHashGrid) Clear() {
	clear(grid.cells)
	clear(grid.seen)
}

// Insert adds id to every cell the box touches.
func (grid *SpatialHashGrid) Insert(id int, box AABB) {
	minX, maxX := grid.cellIndex(box.Min.X()), grid.cellIndex(box.Max.X())
	minY, maxY := grid.cellIndex(box.Min.Y()), grid.cellIndex(box.Max.Y())

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			key := cellKey{x, y}
			grid.cells[key] = append(grid.cells[key], id)
		}
	}
}

// QueryAABB returns the ids sharing a cell with box, without duplicates, in ascending order.
func (grid *SpatialHashGrid) QueryAABB(box AABB) []int {
	minX, maxX := grid.cellIndex(box.Min.X()), grid.cellIndex(box.Max.X())
	minY, maxY := grid.cellIndex(box.Min.Y()), grid.cellIndex(box.Max.Y())

	unique := make(map[int]struct{})
	var results []int
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for _, id := range grid.cells[cellKey{x, y}] {
				if _, ok := unique[id]; !ok {
					unique[id] = struct{}{}
					results = append(results, id)
				}
			}
		}
	}
	sort.Ints(results)
	return results
}

func (grid *SpatialHashGrid) Pairs(bodies []*Body, out []bodyPair) []bodyPair {
	grid.Clear()
	for i, b := range bodies {
		if len(b.colliders) == 0 {
			continue
		}
		grid.Insert(i, bodyBounds(b))
	}

	out = out[:0]
	for _, ids := range grid.cells {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				pair := bodyPair{a: ids[i], b: ids[j]}
				if pair.a > pair.b {
					pair.a, pair.b = pair.b, pair.a
				}
				if _, dup := grid.seen[pair]; dup {
					continue
				}
				grid.seen[pair] = struct{}{}
				if candidatePair(bodies[pair.a], bodies[pair.b]) {
					out = append(out, pair)
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].a != out[j].a {
			return out[i].a < out[j].a
		}
		return out[i].b < out[j].b
	})
	return out
}

func (grid *SpatialHashGrid) cellIndex(v float64) int {
	return int(math.Floor(v / grid.cellSize))
}

// bodyBounds covers all colliders of the body.
func bodyBounds(b *Body) AABB {
	box := b.colliders[0].AABB()
	for _, c := range b.colliders[1:] {
		box = box.Union(c.AABB())
	}
	return box
}

func newBroadPhase(cfg Config) BroadPhase {
	if cfg.BroadPhase == BroadPhaseGrid {
		return NewSpatialHashGrid(cfg.CellSize)
	}
	return AllPairs{}
}
