// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package seqchart draws coil timing charts of the sequences a uln2003.Dev
// writes.
//
// Each coil gets a lane; a filled pulse marks the steps during which the coil
// is energized. The short gap after each pulse is the de-energized time
// between two steps.
package seqchart

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/GermanBionicSystems/byj48/uln2003"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Opts sets the geometry and colors of a chart. Zero values use defaults.
type Opts struct {
	StepWidth  int // pixels per step, default 16
	LaneHeight int // pixels per coil lane, default 24
	Gap        int // de-energized pixels at the end of each step, default 2

	Background color.Color
	Pulse      color.Color
	Grid       color.Color
}

// MaxSteps is the largest step count, in either direction, that can be
// charted. It is one revolution in full step mode.
const MaxSteps = 2048

// maxSize bounds both image dimensions, in pixels.
const maxSize = 1 << 16

// ErrTooLarge is returned when a chart would exceed MaxSteps or the maximum
// image size.
var ErrTooLarge = errors.New("seqchart: chart too large")

const (
	labelWidth  = 24
	titleHeight = 20
	margin      = 8
	pad         = 4
)

func (o *Opts) withDefaults() Opts {
	out := Opts{}
	if o != nil {
		out = *o
	}
	if out.StepWidth <= 0 {
		out.StepWidth = 16
	}
	if out.LaneHeight <= 0 {
		out.LaneHeight = 24
	}
	if out.Gap <= 0 || out.Gap >= out.StepWidth {
		out.Gap = min(2, out.StepWidth-1)
	}
	if out.Background == nil {
		out.Background = color.White
	}
	if out.Pulse == nil {
		out.Pulse = color.NRGBA{R: 220, G: 40, B: 40, A: 255}
	}
	if out.Grid == nil {
		out.Grid = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	}
	return out
}

// Rows returns the coil levels written by Step(n) under method m, in order.
func Rows(m uln2003.SteppingMethod, n int) ([][4]bool, error) {
	if n > MaxSteps || n < -MaxSteps {
		return nil, fmt.Errorf("%w: %d steps, at most %d", ErrTooLarge, n, MaxSteps)
	}
	seq := m.Sequence()
	idx := uln2003.StepIndices(n)
	out := make([][4]bool, len(idx))
	for i, r := range idx {
		for c := range 4 {
			out[i][c] = bool(seq[r][c])
		}
	}
	return out, nil
}

// StepRect returns the area of the pulse for coil c (0 for A) at step i.
func StepRect(i, c int, opts *Opts) image.Rectangle {
	o := opts.withDefaults()
	x := labelWidth + i*o.StepWidth
	y := titleHeight + c*o.LaneHeight
	return image.Rect(x, y+pad, x+o.StepWidth-o.Gap, y+o.LaneHeight-pad)
}

// Render draws the chart of Step(n) under method m.
func Render(m uln2003.SteppingMethod, n int, opts *Opts) (image.Image, error) {
	o := opts.withDefaults()
	rows, err := Rows(m, n)
	if err != nil {
		return nil, err
	}
	cols := max(len(rows), 1)
	if o.StepWidth > (maxSize-labelWidth-margin)/cols || o.LaneHeight > (maxSize-titleHeight-margin)/4 {
		return nil, fmt.Errorf("%w: %d steps of %dx%d pixels", ErrTooLarge, cols, o.StepWidth, o.LaneHeight)
	}
	w := labelWidth + cols*o.StepWidth + margin
	h := titleHeight + 4*o.LaneHeight + margin

	dc := gg.NewContext(w, h)
	dc.SetColor(o.Background)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(color.Black)
	dc.DrawStringAnchored(fmt.Sprintf("%s Step(%d)", m, n), float64(labelWidth), titleHeight/2, 0, 0.5)

	for c := range 4 {
		top := float64(titleHeight + c*o.LaneHeight)
		base := top + float64(o.LaneHeight-pad)
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(string(rune('A'+c)), labelWidth/2, top+float64(o.LaneHeight)/2, 0.5, 0.5)

		dc.SetColor(o.Grid)
		dc.SetLineWidth(1)
		dc.DrawLine(labelWidth, base+0.5, float64(w-margin), base+0.5)
		dc.Stroke()

		dc.SetColor(o.Pulse)
		for i, row := range rows {
			if !row[c] {
				continue
			}
			r := StepRect(i, c, &o)
			dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
			dc.Fill()
		}
	}
	return dc.Image(), nil
}

// SavePNG renders the chart of Step(n) under method m to a PNG file.
func SavePNG(path string, m uln2003.SteppingMethod, n int, opts *Opts) error {
	img, err := Render(m, n, opts)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("seqchart: %w", err)
	}
	return nil
}
