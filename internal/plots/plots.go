/*
 * Copyright (c) 2023. Anton Starikov -- All Rights Reserved
 *
 * This file is part of GEOHEAT project.
 *
 * GEOHEAT is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as the Free Software Foundation,
 * either version 3 of the License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

// Package plots renders result series to PNG files.
package plots

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	width  = 10 * vg.Inch
	height = 5 * vg.Inch
)

// Series is one named curve.
type Series struct {
	Name string
	X, Y []float64
}

// Index returns 0..n-1, the x axis of a step or day series.
func Index(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}
	return x
}

// Scale returns v multiplied by f, for unit conversions before plotting.
func Scale(v []float64, f float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * f
	}
	return out
}

func xys(x, y []float64) (plotter.XYs, error) {
	if len(x) != len(y) {
		return nil, errors.Errorf("series length mismatch: %d x values, %d y values", len(x), len(y))
	}
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts, nil
}

// Renderer writes plots into one directory.
type Renderer struct {
	dir string
}

func NewRenderer(dir string) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create plot directory %s", dir)
	}
	return &Renderer{dir: dir}, nil
}

func (r *Renderer) Dir() string {
	return r.dir
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func (r *Renderer) save(p *plot.Plot, name string) (string, error) {
	path := filepath.Join(r.dir, name+".png")
	if err := p.Save(width, height, path); err != nil {
		return "", errors.Wrapf(err, "save %s", path)
	}
	return path, nil
}

// Lines draws named curves with a legend and returns the file written.
func (r *Renderer) Lines(name, title, xLabel, yLabel string, series ...Series) (string, error) {
	p := newPlot(title, xLabel, yLabel)

	vs := make([]interface{}, 0, 2*len(series))
	for _, s := range series {
		pts, err := xys(s.X, s.Y)
		if err != nil {
			return "", errors.WithMessage(err, s.Name)
		}
		vs = append(vs, s.Name, pts)
	}
	if err := plotutil.AddLines(p, vs...); err != nil {
		return "", errors.Wrapf(err, "plot %s", name)
	}
	p.Legend.Top = true
	return r.save(p, name)
}

// Family draws many unnamed curves sharing one x axis, such as a profile
// per time step.
func (r *Renderer) Family(name, title, xLabel, yLabel string, x []float64, ys [][]float64) (string, error) {
	p := newPlot(title, xLabel, yLabel)
	for i, y := range ys {
		pts, err := xys(x, y)
		if err != nil {
			return "", errors.WithMessagef(err, "curve %d", i)
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return "", errors.Wrapf(err, "plot %s", name)
		}
		l.Color = plotutil.Color(i)
		p.Add(l)
	}
	return r.save(p, name)
}
