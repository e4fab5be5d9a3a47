package report

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"go.jacobcolvin.com/perfmark/component"
)

const (
	plotWidth   = 800
	plotRowH    = 20
	plotMargin  = 10
	plotTextW   = 340
	plotMinBarW = 2
)

var (
	plotBG    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	plotBar   = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	plotLabel = color.RGBA{R: 20, G: 20, B: 20, A: 255}
)

// writePlot renders a horizontal bar chart of all samples, one row per
// sample, bars normalized against the largest value of the same
// component so mixed units stay comparable.
func writePlot(res component.Results, path string) error {
	rows := 0
	maxValue := map[component.Name]float64{}

	for name, ss := range res {
		rows += len(ss)

		for _, s := range ss {
			if s.Value > maxValue[name] {
				maxValue[name] = s.Value
			}
		}
	}

	height := rows*plotRowH + 2*plotMargin
	if rows == 0 {
		height = plotRowH + 2*plotMargin
	}

	img := image.NewRGBA(image.Rect(0, 0, plotWidth, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(plotBG), image.Point{}, draw.Src)

	row := 0

	for _, name := range orderedNames(res) {
		for _, s := range res[name] {
			y := plotMargin + row*plotRowH

			drawText(img, plotMargin, y+plotRowH-6,
				fmt.Sprintf("%s  %s  %.6f %s", s.Component, s.Label, s.Value, s.DisplayUnits))

			barW := plotMinBarW
			if maxValue[name] > 0 {
				span := plotWidth - plotTextW - plotMargin
				barW = max(int(s.Value/maxValue[name]*float64(span)), plotMinBarW)
			}

			bar := image.Rect(plotTextW, y+4, plotTextW+barW, y+plotRowH-4)
			draw.Draw(img, bar, image.NewUniform(plotBar), image.Point{}, draw.Src)

			row++
		}
	}

	f, err := os.Create(path) //nolint:gosec // Report path derives from configured output dir.
	if err != nil {
		return fmt.Errorf("creating plot: %w", err)
	}

	err = png.Encode(f, img)
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("encoding plot: %w", err)
	}

	return f.Close()
}

// drawText renders s at the given baseline using the built-in 7x13 face.
func drawText(img *image.RGBA, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(plotLabel),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}

	d.DrawString(s)
}
