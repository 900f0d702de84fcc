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

package heat_pump

import (
	"math"

	"github.com/antst/geoheat/internal/thermo_model"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Loop is the borehole field: identical wells, each a U-pipe in a grouted
// duct, all fed in parallel by the heat pump.
type Loop struct {
	Wells             int
	Depth             float64 // m
	DepthStep         float64 // m, resolution of the fluid march
	DuctRadius        float64 // m
	GroutConductivity float64 // W/(m K)
	PipeInner         float64 // m
	PipeOuter         float64 // m
	PipeConductivity  float64 // W/(m K)
	Density           float64 // kg/m3
	SpecificHeat      float64 // J/(kg K)
	Velocity          float64 // m/s
	Convection        float64 // W/(m2 K)
}

func (l Loop) Validate() error {
	switch {
	case l.Wells < 1:
		return errors.Errorf("loop needs at least one well, got %d", l.Wells)
	case l.Depth <= 0 || l.DepthStep <= 0 || l.DepthStep > l.Depth:
		return errors.Errorf("bad well depth %v / step %v", l.Depth, l.DepthStep)
	case l.DuctRadius <= 0 || l.GroutConductivity <= 0:
		return errors.Errorf("bad duct radius %v / grout conductivity %v", l.DuctRadius, l.GroutConductivity)
	case l.PipeInner <= 0 || l.PipeOuter <= l.PipeInner || l.PipeConductivity <= 0:
		return errors.Errorf("bad pipe %v/%v m, k=%v", l.PipeInner, l.PipeOuter, l.PipeConductivity)
	case l.Density <= 0 || l.SpecificHeat <= 0 || l.Velocity <= 0 || l.Convection <= 0:
		return errors.New("fluid properties must be positive")
	}
	return nil
}

// ShapeFactor of the pipe pair inside the duct.
func (l Loop) ShapeFactor() float64 {
	return thermo_model.ShapeFactor(l.DuctRadius, l.PipeOuter)
}

// Resistance is the lineic fluid to duct wall resistance, K m/W: half of
// the convection plus pipe wall resistance (two pipes in parallel) plus the
// grout.
func (l Loop) Resistance() float64 {
	convection := 1 / (math.Pi * l.PipeInner * l.Convection)
	wall := math.Log(l.PipeOuter/l.PipeInner) / (2 * math.Pi * l.PipeConductivity)
	grout := 1 / (l.ShapeFactor() * l.GroutConductivity)
	return (convection+wall)/2 + grout
}

// WellMassFlow is the fluid flow through one well, kg/s.
func (l Loop) WellMassFlow() float64 {
	return math.Pi * l.PipeInner * l.PipeInner / 4 * l.Velocity * l.Density
}

// MassFlow is the total flow through the heat pump, kg/s.
func (l Loop) MassFlow() float64 {
	return l.WellMassFlow() * float64(l.Wells)
}

// Capacity is the heat capacity rate of the total flow, W/K.
func (l Loop) Capacity() float64 {
	return l.MassFlow() * l.SpecificHeat
}

// Segments along the down and up legs of a well.
func (l Loop) Segments() int {
	return int(2 * l.Depth / l.DepthStep)
}

// Profile marches the fluid entering a well at inlet along both legs,
// exchanging with a duct wall held at wall. The fluid never overshoots the
// wall temperature.
func (l Loop) Profile(inlet, wall float64) []float64 {
	gain := l.DepthStep / (l.Resistance() * l.WellMassFlow() * l.SpecificHeat)
	profile := make([]float64, l.Segments())
	t := inlet
	for i := range profile {
		v := t + (wall-t)*gain
		if v >= wall {
			v = wall
		}
		profile[i] = v
		t = v
	}
	return profile
}

// MeanFluid is the mean of a fluid profile.
func MeanFluid(profile []float64) float64 {
	if len(profile) == 0 {
		return 0
	}
	return floats.Sum(profile) / float64(len(profile))
}
