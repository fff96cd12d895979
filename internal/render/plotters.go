package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/stitts-dev/nba-shotchart/internal/court"
	"github.com/stitts-dev/nba-shotchart/internal/shotchart"
)

// background fills the data area
type background struct {
	color color.Color
}

func (b background) Plot(c draw.Canvas, _ *plot.Plot) {
	c.FillPolygon(b.color, []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Min.X, Y: c.Max.Y},
	})
}

// hexbins draws binned cells colored through a log norm
type hexbins struct {
	grid     *shotchart.HexGrid
	norm     shotchart.LogNorm
	colormap shotchart.Colormap
	edge     draw.LineStyle
}

func (h hexbins) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for _, cell := range h.grid.Cells {
		fill := h.colormap.At(h.norm.Normalize(cell.Value))
		if fill.A == 0 {
			continue
		}

		verts := h.grid.Vertices(cell)
		pts := make([]vg.Point, 0, len(verts)+1)
		for _, v := range verts {
			pts = append(pts, vg.Point{X: trX(v[0]), Y: trY(v[1])})
		}
		pts = append(pts, pts[0])

		clipped := c.ClipPolygonXY(pts)
		if len(clipped) == 0 {
			continue
		}
		c.FillPolygon(fill, clipped)
		c.StrokeLines(h.edge, c.ClipLinesXY(pts)...)
	}
}

// courtLines draws court shapes in data coordinates
type courtLines struct {
	shapes []court.Shape
}

func (cl courtLines) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for _, s := range cl.shapes {
		path := s.Path()
		if len(path) == 0 {
			continue
		}
		pts := make([]vg.Point, len(path))
		for i, pt := range path {
			pts[i] = vg.Point{X: trX(pt.X), Y: trY(pt.Y)}
		}

		sty := draw.LineStyle{Color: s.Style.Color, Width: vg.Points(s.Style.LineWidth)}
		if s.Style.Dashed {
			sty.Dashes = []vg.Length{vg.Points(3.7 * s.Style.LineWidth), vg.Points(1.6 * s.Style.LineWidth)}
		}
		if s.Style.Fill {
			if clipped := c.ClipPolygonXY(pts); len(clipped) > 0 {
				c.FillPolygon(s.Style.Color, clipped)
			}
		}
		c.StrokeLines(sty, c.ClipLinesXY(pts)...)
	}
}
