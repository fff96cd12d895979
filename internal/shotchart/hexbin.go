package shotchart

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HexCell is one occupied hexagon
type HexCell struct {
	X, Y  float64 // center
	Count int
	// Value is the mean of the values binned into the cell
	Value float64
}

// HexGrid is the result of hexagonal binning over two offset lattices
type HexGrid struct {
	Cells []HexCell
	// SX and SY are the lattice spacings in data units
	SX, SY float64
}

// Vertices returns the corners of a cell, counter-clockwise from lower right
func (g *HexGrid) Vertices(c HexCell) [6][2]float64 {
	offsets := [6][2]float64{{.5, -.5}, {.5, .5}, {0, 1}, {-.5, .5}, {-.5, -.5}, {0, -1}}
	var v [6][2]float64
	for i, o := range offsets {
		v[i] = [2]float64{c.X + o[0]*g.SX, c.Y + o[1]*g.SY/3}
	}
	return v
}

type hexKey struct {
	lattice int
	ix, iy  int
}

// HexBin bins points into hexagons, gridsize across x, and reduces the
// values of each cell with the mean. Only occupied cells are returned.
func HexBin(xs, ys, values []float64, gridsize int) (*HexGrid, error) {
	if len(xs) != len(ys) || len(xs) != len(values) {
		return nil, fmt.Errorf("hexbin: mismatched lengths %d, %d, %d", len(xs), len(ys), len(values))
	}
	if gridsize < 1 {
		return nil, fmt.Errorf("hexbin: gridsize must be positive, got %d", gridsize)
	}

	nx := gridsize
	ny := int(float64(nx) / math.Sqrt(3))
	if ny < 1 {
		ny = 1
	}

	xmin, xmax := extent(xs)
	ymin, ymax := extent(ys)
	sx := (xmax - xmin) / float64(nx)
	sy := (ymax - ymin) / float64(ny)

	binned := make(map[hexKey][]float64)
	for i := range xs {
		px := (xs[i] - xmin) / sx
		py := (ys[i] - ymin) / sy

		ix1, iy1 := math.RoundToEven(px), math.RoundToEven(py)
		ix2, iy2 := math.Floor(px), math.Floor(py)

		d1 := (px-ix1)*(px-ix1) + 3*(py-iy1)*(py-iy1)
		d2 := (px-ix2-.5)*(px-ix2-.5) + 3*(py-iy2-.5)*(py-iy2-.5)

		key := hexKey{lattice: 1, ix: int(ix1), iy: int(iy1)}
		if d1 >= d2 {
			key = hexKey{lattice: 2, ix: int(ix2), iy: int(iy2)}
		}
		binned[key] = append(binned[key], values[i])
	}

	keys := make([]hexKey, 0, len(binned))
	for k := range binned {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].lattice != keys[j].lattice {
			return keys[i].lattice < keys[j].lattice
		}
		if keys[i].ix != keys[j].ix {
			return keys[i].ix < keys[j].ix
		}
		return keys[i].iy < keys[j].iy
	})

	grid := &HexGrid{Cells: make([]HexCell, 0, len(keys)), SX: sx, SY: sy}
	for _, k := range keys {
		cx := xmin + float64(k.ix)*sx
		cy := ymin + float64(k.iy)*sy
		if k.lattice == 2 {
			cx += .5 * sx
			cy += .5 * sy
		}
		vals := binned[k]
		grid.Cells = append(grid.Cells, HexCell{
			X:     cx,
			Y:     cy,
			Count: len(vals),
			Value: stat.Mean(vals, nil),
		})
	}
	return grid, nil
}

// extent returns a non-singular, slightly padded range of the data
func extent(v []float64) (lo, hi float64) {
	if len(v) == 0 {
		return 0, 1
	}
	lo, hi = floats.Min(v), floats.Max(v)
	if hi-lo < 1e-12 {
		if lo == 0 {
			lo, hi = -.1, .1
		} else {
			lo, hi = lo-.1*math.Abs(lo), hi+.1*math.Abs(hi)
		}
	}
	pad := 1e-9 * (hi - lo)
	return lo - pad, hi + pad
}

// LogNorm maps positive values onto [0, 1] on a logarithmic scale
type LogNorm struct {
	Min, Max float64
}

// NewLogNorm scales to the smallest and largest positive value
func NewLogNorm(values []float64) (LogNorm, error) {
	n := LogNorm{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range values {
		if v <= 0 {
			continue
		}
		n.Min = math.Min(n.Min, v)
		n.Max = math.Max(n.Max, v)
	}
	if math.IsInf(n.Min, 1) {
		return LogNorm{}, fmt.Errorf("lognorm: no positive values")
	}
	return n, nil
}

// Normalize returns NaN for non-positive input, 0 when the range is empty,
// and clamps to [0, 1] otherwise.
func (n LogNorm) Normalize(v float64) float64 {
	if v <= 0 {
		return math.NaN()
	}
	if n.Max <= n.Min {
		return 0
	}
	t := (math.Log(v) - math.Log(n.Min)) / (math.Log(n.Max) - math.Log(n.Min))
	return math.Max(0, math.Min(1, t))
}
