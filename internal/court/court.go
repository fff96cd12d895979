// Package court builds the line drawing of an NBA half court in shot chart
// units: the hoop is the origin and 10 units are one foot.
package court

import (
	"image/color"
	"math"
)

// Kind selects how a shape's geometry fields are read
type Kind int

const (
	KindCircle Kind = iota
	KindRect
	KindArc
)

// Point is a position in court units
type Point struct {
	X, Y float64
}

// Style controls how a shape is stroked
type Style struct {
	Color     color.Color
	LineWidth float64 // points
	Fill      bool
	Dashed    bool
}

// Shape is one court element.
//
//   - circle: Center and Radius
//   - rect: Center is the lower left corner, Width and Height may be negative or zero
//   - arc: Center, Width and Height of the full ellipse, swept counter-clockwise
//     from Theta1 to Theta2 in degrees
type Shape struct {
	Name   string
	Kind   Kind
	Center Point
	Radius float64
	Width  float64
	Height float64
	Theta1 float64
	Theta2 float64
	Style  Style
}

// Options for Draw
type Options struct {
	Color      color.Color
	LineWidth  float64
	OuterLines bool
}

// DefaultOptions draws white lines of width 2 including the boundary
func DefaultOptions() Options {
	return Options{Color: color.White, LineWidth: 2, OuterLines: true}
}

// Draw returns the court elements. The result depends only on opts.
func Draw(opts Options) []Shape {
	if opts.Color == nil {
		opts.Color = color.White
	}
	line := Style{Color: opts.Color, LineWidth: opts.LineWidth}
	filled := line
	filled.Fill = true
	dashed := line
	dashed.Dashed = true

	shapes := []Shape{
		// 18" rim
		{Name: "hoop", Kind: KindCircle, Center: Point{0, 0}, Radius: 7.5, Style: line},
		{Name: "backboard", Kind: KindRect, Center: Point{-30, -7.5}, Width: 60, Height: -1, Style: filled},
		// 16ft x 19ft
		{Name: "outer box", Kind: KindRect, Center: Point{-80, -47.5}, Width: 160, Height: 190, Style: line},
		// 12ft x 19ft
		{Name: "inner box", Kind: KindRect, Center: Point{-60, -47.5}, Width: 120, Height: 190, Style: line},
		{Name: "top free throw", Kind: KindArc, Center: Point{0, 142.5}, Width: 120, Height: 120, Theta1: 0, Theta2: 180, Style: line},
		{Name: "bottom free throw", Kind: KindArc, Center: Point{0, 142.5}, Width: 120, Height: 120, Theta1: 180, Theta2: 0, Style: dashed},
		// 4ft from the center of the hoop
		{Name: "restricted", Kind: KindArc, Center: Point{0, 0}, Width: 80, Height: 80, Theta1: 0, Theta2: 180, Style: line},
		// 14ft straight before the arc starts
		{Name: "corner three a", Kind: KindRect, Center: Point{-220, -47.5}, Width: 0, Height: 137, Style: filled},
		{Name: "corner three b", Kind: KindRect, Center: Point{220, -47.5}, Width: 0, Height: 137, Style: filled},
		// 23'9" from the hoop
		{Name: "three arc", Kind: KindArc, Center: Point{0, 0}, Width: 475, Height: 475, Theta1: 22, Theta2: 158, Style: line},
		{Name: "center outer arc", Kind: KindArc, Center: Point{0, 422.5}, Width: 120, Height: 120, Theta1: 180, Theta2: 0, Style: line},
		{Name: "center inner arc", Kind: KindArc, Center: Point{0, 422.5}, Width: 40, Height: 40, Theta1: 180, Theta2: 0, Style: line},
	}

	if opts.OuterLines {
		// half court line, baseline and sidelines
		shapes = append(shapes, Shape{Name: "outer lines", Kind: KindRect, Center: Point{-250, -47.5}, Width: 500, Height: 470, Style: line})
	}
	return shapes
}

// Path samples the outline of the shape. Circles and rects are closed, the
// last point repeating the first.
func (s Shape) Path() []Point {
	switch s.Kind {
	case KindCircle:
		return ellipse(s.Center, s.Radius, s.Radius, 0, 360)
	case KindRect:
		x0, y0 := s.Center.X, s.Center.Y
		x1, y1 := x0+s.Width, y0+s.Height
		return []Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
	case KindArc:
		t1, t2 := s.Theta1, s.Theta2
		for t2 <= t1 {
			t2 += 360
		}
		return ellipse(s.Center, s.Width/2, s.Height/2, t1, t2)
	default:
		return nil
	}
}

// ellipse samples roughly one point per degree from t1 to t2
func ellipse(c Point, rx, ry, t1, t2 float64) []Point {
	n := int(math.Ceil(t2 - t1))
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		theta := (t1 + (t2-t1)*float64(i)/float64(n)) * math.Pi / 180
		pts = append(pts, Point{X: c.X + rx*math.Cos(theta), Y: c.Y + ry*math.Sin(theta)})
	}
	return pts
}
