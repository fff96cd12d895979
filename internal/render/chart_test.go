package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/nba-shotchart/internal/court"
	"github.com/stitts-dev/nba-shotchart/internal/models"
)

func sampleChart() Chart {
	tiers := []models.Tier{models.TierWellBelow, models.TierAverage, models.TierWellAbove, models.TierAbove}
	var shots []models.AnnotatedShot
	for i := 0; i < 40; i++ {
		shots = append(shots, models.AnnotatedShot{
			Shot:       models.Shot{LocX: float64(i*10 - 200), LocY: float64(i * 7), Made: i%2 == 0},
			Tier:       tiers[i%len(tiers)],
			Classified: true,
		})
	}
	shots = append(shots, models.AnnotatedShot{Shot: models.Shot{LocX: 0, LocY: 600}})

	return Chart{
		PlayerName: "Stephen Curry",
		Season:     "2015-16",
		SeasonType: "Regular Season",
		Shots:      shots,
	}
}

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestChartTitle(t *testing.T) {
	chart := sampleChart()
	assert.Equal(t, "Stephen Curry FGA \n2015-16 Reg. Season", chart.Title())

	chart.SeasonType = "Playoffs"
	assert.Equal(t, "Stephen Curry FGA \n2015-16 Playoffs", chart.Title())
}

func TestWrite_PNG(t *testing.T) {
	chart := sampleChart()
	chart.Headshot = solidImage(230, 185, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, chart, "png"))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1100, img.Bounds().Dx())
	assert.Equal(t, 900, img.Bounds().Dy())
}

func TestWrite_WithoutShots(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Chart{PlayerName: "Nobody", Season: "2014-15"}, "png"))

	_, err := png.Decode(&buf)
	assert.NoError(t, err)
}

func TestWrite_SVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleChart(), "svg"))
	assert.Contains(t, buf.String(), "<svg")
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sampleChart(), "gif")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Zero(t, buf.Len())
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "201939_2015-16.PNG")
	require.NoError(t, SaveFile(path, sampleChart()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	bad := filepath.Join(dir, "chart.txt")
	assert.ErrorIs(t, SaveFile(bad, sampleChart()), ErrUnsupportedFormat)
	assert.NoFileExists(t, bad)
}

func TestNewPlot_Axes(t *testing.T) {
	p, err := NewPlot(sampleChart())
	require.NoError(t, err)

	assert.Equal(t, -252.0, p.X.Min)
	assert.Equal(t, 252.0, p.X.Max)
	assert.Equal(t, -49.5, p.Y.Min)
	assert.Equal(t, 424.5, p.Y.Max)
}

func TestCourtOptions(t *testing.T) {
	defaults := court.DefaultOptions()

	t.Run("zero value keeps outer lines off", func(t *testing.T) {
		opts := courtOptions(court.Options{})
		assert.False(t, opts.OuterLines)
		assert.Equal(t, defaults.LineWidth, opts.LineWidth)
		assert.Equal(t, defaults.Color, opts.Color)
	})

	t.Run("explicit values survive", func(t *testing.T) {
		custom := court.Options{Color: color.Black, LineWidth: 3, OuterLines: true}
		assert.Equal(t, custom, courtOptions(custom))
	})

	t.Run("outer lines omitted from drawing", func(t *testing.T) {
		for _, shape := range court.Draw(courtOptions(court.Options{})) {
			assert.NotEqual(t, "outer lines", shape.Name)
		}
	})
}

func TestWrite_WithoutOuterLines(t *testing.T) {
	chart := sampleChart()
	chart.Court = court.Options{OuterLines: false}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, chart, "svg"))
	assert.NotEmpty(t, buf.Bytes())
}
