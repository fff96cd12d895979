// Package render composes the shot chart figure with gonum/plot
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/stitts-dev/nba-shotchart/internal/court"
	"github.com/stitts-dev/nba-shotchart/internal/models"
	"github.com/stitts-dev/nba-shotchart/internal/shotchart"
)

const (
	Width    = 11 * vg.Inch
	Height   = 9 * vg.Inch
	DPI      = 100
	GridSize = 85

	xMin, xMax = -252.0, 252.0
	// hoop at the top of the figure
	yTop, yBottom = -49.5, 424.5
)

var (
	// Navy is the axes background and the hexagon edge color
	Navy = color.NRGBA{R: 0x15, G: 0x24, B: 0x35, A: 0xff}

	// headshot box: 230x185 px photo at 0.6 zoom, offset 600,75 px
	headshotRect = vg.Rectangle{
		Min: vg.Point{X: 6 * vg.Inch, Y: 0.75 * vg.Inch},
		Max: vg.Point{X: 7.38 * vg.Inch, Y: 1.86 * vg.Inch},
	}
)

// ErrUnsupportedFormat is returned for output extensions with no canvas
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Chart is everything drawn on one figure
type Chart struct {
	PlayerName string
	Season     string
	SeasonType string
	// Shots are binned at LOC_X, LOC_Y and colored by tier
	Shots    []models.AnnotatedShot
	Headshot image.Image
	Court    court.Options
	GridSize int
}

// Title is "<player> FGA" over "<season> <season type>"
func (c Chart) Title() string {
	return fmt.Sprintf("%s FGA \n%s %s", c.PlayerName, c.Season, seasonTypeLabel(c.SeasonType))
}

func seasonTypeLabel(seasonType string) string {
	if seasonType == "" || seasonType == "Regular Season" {
		return "Reg. Season"
	}
	return seasonType
}

// NewPlot builds the plot without the headshot, which is drawn on the
// canvas after the plot.
func NewPlot(chart Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = chart.Title()
	p.Title.TextStyle.Font.Size = vg.Points(20)
	p.BackgroundColor = color.White

	p.Add(background{color: Navy})

	classified := make([]models.AnnotatedShot, 0, len(chart.Shots))
	for _, s := range chart.Shots {
		if s.Classified {
			classified = append(classified, s)
		}
	}
	if len(classified) > 0 {
		gridsize := chart.GridSize
		if gridsize == 0 {
			gridsize = GridSize
		}
		xs := make([]float64, len(classified))
		ys := make([]float64, len(classified))
		tiers := make([]float64, len(classified))
		for i, s := range classified {
			xs[i], ys[i], tiers[i] = s.LocX, s.LocY, float64(s.Tier)
		}

		grid, err := shotchart.HexBin(xs, ys, tiers, gridsize)
		if err != nil {
			return nil, fmt.Errorf("failed to bin shots: %w", err)
		}
		values := make([]float64, len(grid.Cells))
		for i, cell := range grid.Cells {
			values[i] = cell.Value
		}
		norm, err := shotchart.NewLogNorm(values)
		if err != nil {
			return nil, fmt.Errorf("failed to scale tiers: %w", err)
		}

		p.Add(hexbins{
			grid:     grid,
			norm:     norm,
			colormap: shotchart.RelativeColormap,
			edge:     draw.LineStyle{Color: Navy, Width: vg.Points(1)},
		})
	}

	p.Add(courtLines{shapes: court.Draw(courtOptions(chart.Court))})

	p.X.Min, p.X.Max = xMin, xMax
	p.Y.Min, p.Y.Max = yTop, yBottom
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.HideAxes()

	return p, nil
}

// courtOptions fills in the default line color and width, keeping the
// caller's choice of outer lines.
func courtOptions(opts court.Options) court.Options {
	defaults := court.DefaultOptions()
	if opts.Color == nil {
		opts.Color = defaults.Color
	}
	if opts.LineWidth == 0 {
		opts.LineWidth = defaults.LineWidth
	}
	return opts
}

// Write renders the chart in the given format: png, jpg, svg or pdf
func Write(w io.Writer, chart Chart, format string) error {
	canvas, err := newCanvas(format)
	if err != nil {
		return err
	}

	p, err := NewPlot(chart)
	if err != nil {
		return err
	}
	p.Draw(draw.New(canvas))

	if chart.Headshot != nil {
		canvas.DrawImage(headshotRect, chart.Headshot)
	}

	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", format, err)
	}
	return nil
}

// SaveFile writes the chart to path, picking the format from the extension
func SaveFile(path string, chart Chart) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if _, err := newCanvas(format); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(f, chart, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newCanvas(format string) (vg.CanvasWriterTo, error) {
	switch format {
	case "png":
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(Width, Height), vgimg.UseDPI(DPI))}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(Width, Height), vgimg.UseDPI(DPI))}, nil
	case "svg":
		return vgsvg.New(Width, Height), nil
	case "pdf":
		return vgpdf.New(Width, Height), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
