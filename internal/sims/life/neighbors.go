package life

// Direction indexes the Moore neighborhood clockwise from the top-left.
type Direction uint8

const (
	NW Direction = iota
	N
	NE
	E
	SE
	S
	SW
	W
)

// Directions lists all eight neighbor directions in index order.
var Directions = [8]Direction{NW, N, NE, E, SE, S, SW, W}

var offsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, 1},
	{1, 1}, {1, 0}, {1, -1},
	{0, -1},
}

// Offset returns the row and column delta of the direction.
func (d Direction) Offset() (dr, dc int) {
	if d > W {
		return 0, 0
	}
	o := offsets[d]
	return o[0], o[1]
}

func (d Direction) String() string {
	switch d {
	case NW:
		return "NW"
	case N:
		return "N"
	case NE:
		return "NE"
	case E:
		return "E"
	case SE:
		return "SE"
	case S:
		return "S"
	case SW:
		return "SW"
	case W:
		return "W"
	default:
		return "?"
	}
}

// Neighbor returns the coordinates of the cell in direction dir. ok is
// false when either the origin or the neighbor lies off the grid; the grid
// does not wrap.
func (w *World) Neighbor(row, col int, dir Direction) (r, c int, ok bool) {
	if !w.inBounds(row, col) || dir > W {
		return 0, 0, false
	}
	dr, dc := dir.Offset()
	r, c = row+dr, col+dc
	if !w.inBounds(r, c) {
		return 0, 0, false
	}
	return r, c, true
}

// LivingNeighbors counts living cells among the up to eight neighbors of
// (row, col). Off-grid positions count as dead.
func (w *World) LivingNeighbors(row, col int) (int, error) {
	const op = "world.livingNeighbors"
	if err := w.check(op, row, col); err != nil {
		return 0, err
	}
	n := 0
	for _, dir := range Directions {
		r, c, ok := w.Neighbor(row, col, dir)
		if !ok {
			continue
		}
		cell, err := w.cellAt(op, r*w.cols+c)
		if err != nil {
			return 0, err
		}
		if cell.Alive() {
			n++
		}
	}
	return n, nil
}

// countLiving counts neighbors in a row-major health buffer.
func (w *World) countLiving(cur []bool, row, col int) int {
	n := 0
	for _, o := range offsets {
		r, c := row+o[0], col+o[1]
		if r < 0 || r >= w.rows || c < 0 || c >= w.cols {
			continue
		}
		if cur[r*w.cols+c] {
			n++
		}
	}
	return n
}
