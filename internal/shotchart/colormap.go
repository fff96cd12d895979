package shotchart

import (
	"image/color"
	"math"
)

type stop struct {
	x, y float64
}

// Colormap interpolates each channel linearly between stops on [0, 1]
type Colormap struct {
	Red, Green, Blue []stop
}

// RelativeColormap runs blue (well below league) through pale yellow
// (average) to red (well above)
var RelativeColormap = Colormap{
	Red:   []stop{{0, 0}, {.25, 0}, {.5, 1}, {.75, 1}, {1, 1}},
	Green: []stop{{0, 0}, {.25, .75}, {.5, 1}, {.75, .5}, {1, 0}},
	Blue:  []stop{{0, 1}, {.25, 1}, {.5, .75}, {.75, 0}, {1, 0}},
}

// At returns the color for t, clamped to [0, 1]. NaN maps to transparent.
func (c Colormap) At(t float64) color.NRGBA {
	if math.IsNaN(t) {
		return color.NRGBA{}
	}
	t = math.Max(0, math.Min(1, t))
	return color.NRGBA{
		R: channel(c.Red, t),
		G: channel(c.Green, t),
		B: channel(c.Blue, t),
		A: 0xff,
	}
}

func channel(stops []stop, t float64) uint8 {
	if len(stops) == 0 {
		return 0
	}
	if t <= stops[0].x {
		return to8(stops[0].y)
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].x {
			a, b := stops[i-1], stops[i]
			f := (t - a.x) / (b.x - a.x)
			return to8(a.y + f*(b.y-a.y))
		}
	}
	return to8(stops[len(stops)-1].y)
}

func to8(v float64) uint8 {
	return uint8(math.Round(v * 255))
}
