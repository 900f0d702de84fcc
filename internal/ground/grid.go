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

// Package ground solves transient radial heat conduction in the soil around
// a borehole duct.
//
// The grid is one dimensional: node 0 faces the duct wall and node N-1 is
// the far-field boundary, pinned to the undisturbed ground temperature. The
// implicit scheme gives a constant coefficient matrix that is assembled and
// factorized once per run and then solved against a new forcing vector at
// every time step.
package ground

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidGrid is returned for non-physical or degenerate grids.
	ErrInvalidGrid = errors.New("invalid conduction grid")
	// ErrSingularMatrix is returned when the coefficient matrix cannot be
	// factorized. It is fatal for the run.
	ErrSingularMatrix = errors.New("singular coefficient matrix")
)

// Grid is the static configuration of the conduction problem.
type Grid struct {
	Nodes        int     // N
	Spacing      float64 // dr, m
	TimeStep     float64 // dt, s
	Conductivity float64 // k, W/(m K)
	Diffusivity  float64 // alpha, m2/s
	DuctRadius   float64 // rd, m
	Temperature  float64 // T0, K
}

// RhoCp is the volumetric heat capacity k/alpha.
func (g Grid) RhoCp() float64 {
	return g.Conductivity / g.Diffusivity
}

// Mass is the thermal mass to time step ratio rhoCp/dt that scales the
// previous profile into the forcing vector.
func (g Grid) Mass() float64 {
	return g.RhoCp() / g.TimeStep
}

// Uniform returns a profile with every node at T0.
func (g Grid) Uniform() []float64 {
	t := make([]float64, g.Nodes)
	for i := range t {
		t[i] = g.Temperature
	}
	return t
}

// Radius is the radial coordinate used for node i.
func (g Grid) Radius(i int) float64 {
	return float64(i+1) * g.Spacing
}

func (g Grid) Validate() error {
	switch {
	case g.Nodes < 3:
		return errors.Wrapf(ErrInvalidGrid, "need at least 3 nodes, got %d", g.Nodes)
	case g.Spacing <= 0:
		return errors.Wrapf(ErrInvalidGrid, "spacing must be positive, got %v", g.Spacing)
	case g.TimeStep <= 0:
		return errors.Wrapf(ErrInvalidGrid, "time step must be positive, got %v", g.TimeStep)
	case g.Conductivity <= 0:
		return errors.Wrapf(ErrInvalidGrid, "conductivity must be positive, got %v", g.Conductivity)
	case g.Diffusivity <= 0:
		return errors.Wrapf(ErrInvalidGrid, "diffusivity must be positive, got %v", g.Diffusivity)
	case g.DuctRadius <= 0:
		return errors.Wrapf(ErrInvalidGrid, "duct radius must be positive, got %v", g.DuctRadius)
	case g.Temperature <= 0:
		return errors.Wrapf(ErrInvalidGrid, "ground temperature must be positive kelvin, got %v", g.Temperature)
	}
	return nil
}
