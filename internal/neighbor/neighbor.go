// Package neighbor implements the cell-list broad phase and Verlet-skin
// pair list that the MD integrator consumes to scale sub-quadratically.
package neighbor

import (
	"math"

	"github.com/dkastner/minerva/internal/vec3"
)

// Config configures grid construction and the rebuild tolerance.
type Config struct {
	Cutoff         float64
	Skin           float64
	CellSizeFactor float64
	DomainMin      vec3.Vec3
	DomainMax      vec3.Vec3
	EnableStats    bool
}

// DefaultConfig returns the reference defaults from the neighbor-list
// configuration surface (skin 0.3, cell_size_factor 1.0).
func DefaultConfig() Config {
	return Config{
		Cutoff:         2.5,
		Skin:           0.3,
		CellSizeFactor: 1.0,
		DomainMin:      vec3.New(-10, -10, -10),
		DomainMax:      vec3.New(10, 10, 10),
	}
}

// Pair is an unordered particle-index pair, normalized so I < J.
type Pair struct {
	I, J int
}

// Stats tracks build/check activity, exposed for benchmarking and tests.
type Stats struct {
	Builds          int
	Checks          int
	NumPairs        int
	MaxDisplacement float64
}

// List is the cell-list-backed Verlet neighbor list. It owns its cell grid,
// pair list, and reference-position snapshot; all are reallocated in place
// on each Build (cells are cleared, not discarded, to avoid allocator
// pressure on the rebuild hot path).
type List struct {
	cfg Config

	nx, ny, nz int
	cellSize   vec3.Vec3
	cells      [][]int

	pairs        []Pair
	refPositions []vec3.Vec3
	valid        bool

	stats Stats
}

// New builds a List over cfg's domain. CellSizeFactor defaults to 1 when
// left at zero.
func New(cfg Config) *List {
	if cfg.CellSizeFactor <= 0 {
		cfg.CellSizeFactor = 1
	}
	l := &List{cfg: cfg}
	l.setupGrid()
	return l
}

func (l *List) setupGrid() {
	minCell := (l.cfg.Cutoff + l.cfg.Skin) * l.cfg.CellSizeFactor
	size := l.cfg.DomainMax.Sub(l.cfg.DomainMin)

	l.nx = maxInt(1, int(math.Floor(size.X/minCell)))
	l.ny = maxInt(1, int(math.Floor(size.Y/minCell)))
	l.nz = maxInt(1, int(math.Floor(size.Z/minCell)))

	l.cellSize = vec3.New(size.X/float64(l.nx), size.Y/float64(l.ny), size.Z/float64(l.nz))

	total := l.nx * l.ny * l.nz
	if cap(l.cells) < total {
		l.cells = make([][]int, total)
	} else {
		l.cells = l.cells[:total]
		for i := range l.cells {
			l.cells[i] = l.cells[i][:0]
		}
	}
	l.valid = false
}

// SetDomain replaces the grid's domain bounds and rebuilds the (now empty)
// grid, as the MD integrator does when it auto-expands the domain. Callers
// must Build again afterward.
func (l *List) SetDomain(min, max vec3.Vec3) {
	l.cfg.DomainMin = min
	l.cfg.DomainMax = max
	l.setupGrid()
}

func (l *List) cellCoords(p vec3.Vec3) (ix, iy, iz int) {
	rel := p.Sub(l.cfg.DomainMin)
	ix = clamp(int(math.Floor(rel.X/l.cellSize.X)), 0, l.nx-1)
	iy = clamp(int(math.Floor(rel.Y/l.cellSize.Y)), 0, l.ny-1)
	iz = clamp(int(math.Floor(rel.Z/l.cellSize.Z)), 0, l.nz-1)
	return
}

func (l *List) cellIndex(ix, iy, iz int) int {
	return ix + l.nx*(iy+l.ny*iz)
}

// Build clears the grid and pair list, buckets every position into its
// cell, and enumerates every pair within cutoff+skin. Immediately after
// Build, every pair within cutoff+skin at these positions appears exactly
// once in Pairs.
func (l *List) Build(positions []vec3.Vec3) {
	for i := range l.cells {
		l.cells[i] = l.cells[i][:0]
	}
	l.pairs = l.pairs[:0]

	for i, p := range positions {
		ix, iy, iz := l.cellCoords(p)
		idx := l.cellIndex(ix, iy, iz)
		l.cells[idx] = append(l.cells[idx], i)
	}

	rListSq := (l.cfg.Cutoff + l.cfg.Skin) * (l.cfg.Cutoff + l.cfg.Skin)

	for iz := 0; iz < l.nz; iz++ {
		for iy := 0; iy < l.ny; iy++ {
			for ix := 0; ix < l.nx; ix++ {
				cell := l.cells[l.cellIndex(ix, iy, iz)]

				for a := 0; a < len(cell); a++ {
					for b := a + 1; b < len(cell); b++ {
						l.tryAddPair(positions, cell[a], cell[b], rListSq)
					}
				}

				for dz := 0; dz <= 1; dz++ {
					for dy := -1; dy <= 1; dy++ {
						for dx := -1; dx <= 1; dx++ {
							if dz == 0 && dy == 0 && dx == 0 {
								continue
							}
							if dz == 0 && (dy < 0 || (dy == 0 && dx < 0)) {
								continue
							}

							nx, ny, nz := ix+dx, iy+dy, iz+dz
							if nx < 0 || nx >= l.nx || ny < 0 || ny >= l.ny || nz < 0 || nz >= l.nz {
								continue
							}

							neighborCell := l.cells[l.cellIndex(nx, ny, nz)]
							for _, i := range cell {
								for _, j := range neighborCell {
									l.tryAddPair(positions, i, j, rListSq)
								}
							}
						}
					}
				}
			}
		}
	}

	l.refPositions = append(l.refPositions[:0], positions...)
	l.valid = true

	if l.cfg.EnableStats {
		l.stats.Builds++
		l.stats.NumPairs = len(l.pairs)
	}
}

func (l *List) tryAddPair(positions []vec3.Vec3, i, j int, rListSq float64) {
	r2 := positions[j].Sub(positions[i]).Norm2()
	if r2 >= rListSq {
		return
	}
	if i > j {
		i, j = j, i
	}
	l.pairs = append(l.pairs, Pair{I: i, J: j})
}

// NeedsRebuild reports whether positions have drifted far enough from the
// last-build reference positions that the pair list can no longer be
// trusted: no prior build, a changed particle count, or any displacement
// exceeding skin/2.
func (l *List) NeedsRebuild(positions []vec3.Vec3) bool {
	if !l.valid {
		return true
	}
	if len(l.refPositions) != len(positions) {
		return true
	}

	maxDispSq := 0.0
	for i, p := range positions {
		d := p.Sub(l.refPositions[i]).Norm2()
		if d > maxDispSq {
			maxDispSq = d
		}
	}

	threshold := (l.cfg.Skin * 0.5) * (l.cfg.Skin * 0.5)

	if l.cfg.EnableStats {
		l.stats.Checks++
		l.stats.MaxDisplacement = math.Sqrt(maxDispSq)
	}

	return maxDispSq > threshold
}

// Pairs returns the pair list built by the last Build call.
func (l *List) Pairs() []Pair { return l.pairs }

// Stats returns build/check counters, populated only when Config.EnableStats
// is set.
func (l *List) Stats() Stats { return l.stats }

// Invalidate forces the next NeedsRebuild check to report true.
func (l *List) Invalidate() { l.valid = false }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
