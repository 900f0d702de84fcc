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

package config

import (
	"fmt"

	"github.com/antst/geoheat/internal/heat_pump"

	"go.uber.org/multierr"
)

const (
	FloorPolicyRecompute  = "recompute"
	FloorPolicyHoldDemand = "hold_demand"

	defaultStepDays           = 1.0
	defaultDistance           = 100.0
	defaultDistanceStep       = 2.0
	defaultGroundConductivity = 2.5
	defaultGroundDiffusivity  = 2e-6
	defaultGroundTemperature  = 283.0
	defaultFloorTemperature   = 275.0
)

// GeothermyConfig describes the ground grid, the borehole field and the
// heat pump floor.
type GeothermyConfig struct {
	StepDays           float64      `yaml:"step_days"`
	Distance           float64      `yaml:"distance"`
	DistanceStep       float64      `yaml:"distance_step"`
	GroundConductivity float64      `yaml:"ground_conductivity"`
	GroundDiffusivity  float64      `yaml:"ground_diffusivity"`
	GroundTemperature  float64      `yaml:"ground_temperature"`
	FloorTemperature   float64      `yaml:"floor_temperature"`
	FloorPolicy        string       `yaml:"floor_policy"`
	Wells              *WellConfig  `yaml:"wells"`
	Pipe               *PipeConfig  `yaml:"pipe"`
	Fluid              *FluidConfig `yaml:"fluid"`
}

type WellConfig struct {
	Count             int     `yaml:"count"`
	Depth             float64 `yaml:"depth"`
	DepthStep         float64 `yaml:"depth_step"`
	DuctRadius        float64 `yaml:"duct_radius"`
	GroutConductivity float64 `yaml:"grout_conductivity"`
}

type PipeConfig struct {
	Material      string  `yaml:"material"`
	InnerDiameter float64 `yaml:"inner_diameter"`
	OuterDiameter float64 `yaml:"outer_diameter"`
	Conductivity  float64 `yaml:"conductivity"`
}

type FluidConfig struct {
	Name         string  `yaml:"name"`
	Density      float64 `yaml:"density"`
	SpecificHeat float64 `yaml:"specific_heat"`
	Velocity     float64 `yaml:"velocity"`
	Convection   float64 `yaml:"convection"`
}

func NewGeothermyConfig() *GeothermyConfig {
	cfg := &GeothermyConfig{}
	cfg.FillDefaults()
	return cfg
}

func (c *GeothermyConfig) FillDefaults() {
	fillFloat(&c.StepDays, defaultStepDays)
	fillFloat(&c.Distance, defaultDistance)
	fillFloat(&c.DistanceStep, defaultDistanceStep)
	fillFloat(&c.GroundConductivity, defaultGroundConductivity)
	fillFloat(&c.GroundDiffusivity, defaultGroundDiffusivity)
	fillFloat(&c.GroundTemperature, defaultGroundTemperature)
	fillFloat(&c.FloorTemperature, defaultFloorTemperature)
	if c.FloorPolicy == "" {
		c.FloorPolicy = FloorPolicyRecompute
	}

	if c.Wells == nil {
		c.Wells = &WellConfig{}
	}
	if c.Pipe == nil {
		c.Pipe = &PipeConfig{}
	}
	if c.Fluid == nil {
		c.Fluid = &FluidConfig{}
	}
	c.Wells.FillDefaults()
	c.Pipe.FillDefaults()
	c.Fluid.FillDefaults()
}

// Nodes is the number of radial grid nodes.
func (c *GeothermyConfig) Nodes() int {
	return int(c.Distance / c.DistanceStep)
}

// Copy returns a deep copy, so sweeps can vary parameters per tuple.
func (c *GeothermyConfig) Copy() *GeothermyConfig {
	cp := *c
	w, p, f := *c.Wells, *c.Pipe, *c.Fluid
	cp.Wells, cp.Pipe, cp.Fluid = &w, &p, &f
	return &cp
}

func (c *GeothermyConfig) Validate() error {
	var err error
	err = multierr.Append(err, positive("geothermy.step_days", c.StepDays))
	err = multierr.Append(err, positive("geothermy.distance", c.Distance))
	err = multierr.Append(err, positive("geothermy.distance_step", c.DistanceStep))
	err = multierr.Append(err, positive("geothermy.ground_conductivity", c.GroundConductivity))
	err = multierr.Append(err, positive("geothermy.ground_diffusivity", c.GroundDiffusivity))
	err = multierr.Append(err, positive("geothermy.ground_temperature", c.GroundTemperature))
	err = multierr.Append(err, positive("geothermy.floor_temperature", c.FloorTemperature))
	if c.DistanceStep > 0 && c.Nodes() < 3 {
		err = multierr.Append(err, fmt.Errorf("geothermy: grid needs at least 3 nodes, got %d", c.Nodes()))
	}
	if c.FloorTemperature <= heat_pump.MinInlet {
		err = multierr.Append(err, fmt.Errorf(
			"geothermy.floor_temperature %.2f must exceed the COP limit %.2f",
			c.FloorTemperature, heat_pump.MinInlet,
		))
	}
	if c.FloorTemperature >= c.GroundTemperature {
		err = multierr.Append(err, fmt.Errorf(
			"geothermy.floor_temperature %.2f must be below ground_temperature %.2f",
			c.FloorTemperature, c.GroundTemperature,
		))
	}
	if c.FloorPolicy != FloorPolicyRecompute && c.FloorPolicy != FloorPolicyHoldDemand {
		err = multierr.Append(err, fmt.Errorf("geothermy.floor_policy: unknown policy `%s`", c.FloorPolicy))
	}
	err = multierr.Append(err, c.Wells.Validate())
	err = multierr.Append(err, c.Pipe.Validate())
	err = multierr.Append(err, c.Fluid.Validate())
	return err
}

func (w *WellConfig) FillDefaults() {
	if w.Count == 0 {
		w.Count = 20
	}
	fillFloat(&w.Depth, 200)
	fillFloat(&w.DepthStep, 5)
	fillFloat(&w.DuctRadius, 0.15)
	fillFloat(&w.GroutConductivity, 1.2)
}

func (w *WellConfig) Validate() error {
	var err error
	if w.Count < 1 {
		err = multierr.Append(err, fmt.Errorf("wells.count must be >= 1, got %d", w.Count))
	}
	err = multierr.Append(err, positive("wells.depth", w.Depth))
	err = multierr.Append(err, positive("wells.depth_step", w.DepthStep))
	err = multierr.Append(err, positive("wells.duct_radius", w.DuctRadius))
	err = multierr.Append(err, positive("wells.grout_conductivity", w.GroutConductivity))
	if w.DepthStep > w.Depth {
		err = multierr.Append(err, fmt.Errorf("wells.depth_step %.2f exceeds depth %.2f", w.DepthStep, w.Depth))
	}
	return err
}

func (p *PipeConfig) FillDefaults() {
	if p.Material == "" {
		p.Material = "polyethylene"
	}
	fillFloat(&p.InnerDiameter, 0.015)
	fillFloat(&p.OuterDiameter, 0.020)
	fillFloat(&p.Conductivity, 0.4)
}

func (p *PipeConfig) Validate() error {
	var err error
	err = multierr.Append(err, positive("pipe.inner_diameter", p.InnerDiameter))
	err = multierr.Append(err, positive("pipe.conductivity", p.Conductivity))
	if p.OuterDiameter <= p.InnerDiameter {
		err = multierr.Append(err, fmt.Errorf(
			"pipe.outer_diameter %.4f must exceed inner_diameter %.4f", p.OuterDiameter, p.InnerDiameter,
		))
	}
	return err
}

func (f *FluidConfig) FillDefaults() {
	if f.Name == "" {
		f.Name = "water"
	}
	fillFloat(&f.Density, 1040)
	fillFloat(&f.SpecificHeat, 3800)
	fillFloat(&f.Velocity, 3)
	fillFloat(&f.Convection, 8500)
}

func (f *FluidConfig) Validate() error {
	var err error
	err = multierr.Append(err, positive("fluid.density", f.Density))
	err = multierr.Append(err, positive("fluid.specific_heat", f.SpecificHeat))
	err = multierr.Append(err, positive("fluid.velocity", f.Velocity))
	err = multierr.Append(err, positive("fluid.convection", f.Convection))
	return err
}
