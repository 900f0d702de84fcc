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

package internal

import (
	"context"

	"github.com/antst/geoheat/internal/config"
	"github.com/antst/geoheat/internal/ground"
	"github.com/antst/geoheat/internal/heat_pump"
	"github.com/antst/geoheat/internal/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const secondsPerDay = 24 * 3600

// GeoSystem couples the ground solver to the heat pump for one borehole
// field configuration.
type GeoSystem struct {
	cfg    *config.GeothermyConfig
	solver *ground.Solver
	pump   heat_pump.Model
	log    *zap.SugaredLogger
}

// GeoRun is the outcome of a coupled run. Every series is indexed by step.
type GeoRun struct {
	Grid      ground.Grid
	StepDays  float64
	Demand    []float64 // W
	Delivered []float64 // W
	Inlet     []float64 // K
	Outlet    []float64 // K
	MeanFluid []float64 // K
	COP       []float64
	Work      []float64 // W
	Flux      []float64 // W/m
	Clamped   []bool
	// Field holds the ground profile after each step, steps x nodes.
	Field *mat.Dense
}

func groundGrid(cfg *config.GeothermyConfig) ground.Grid {
	return ground.Grid{
		Nodes:        cfg.Nodes(),
		Spacing:      cfg.DistanceStep,
		TimeStep:     cfg.StepDays * secondsPerDay,
		Conductivity: cfg.GroundConductivity,
		Diffusivity:  cfg.GroundDiffusivity,
		DuctRadius:   cfg.Wells.DuctRadius,
		Temperature:  cfg.GroundTemperature,
	}
}

func wellLoop(cfg *config.GeothermyConfig) heat_pump.Loop {
	return heat_pump.Loop{
		Wells:             cfg.Wells.Count,
		Depth:             cfg.Wells.Depth,
		DepthStep:         cfg.Wells.DepthStep,
		DuctRadius:        cfg.Wells.DuctRadius,
		GroutConductivity: cfg.Wells.GroutConductivity,
		PipeInner:         cfg.Pipe.InnerDiameter,
		PipeOuter:         cfg.Pipe.OuterDiameter,
		PipeConductivity:  cfg.Pipe.Conductivity,
		Density:           cfg.Fluid.Density,
		SpecificHeat:      cfg.Fluid.SpecificHeat,
		Velocity:          cfg.Fluid.Velocity,
		Convection:        cfg.Fluid.Convection,
	}
}

func NewGeoSystem(cfg *config.GeothermyConfig) (*GeoSystem, error) {
	policy, err := heat_pump.ParsePolicy(cfg.FloorPolicy)
	if err != nil {
		return nil, err
	}
	solver, err := ground.NewSolver(groundGrid(cfg))
	if err != nil {
		return nil, errors.WithMessage(err, "NewGeoSystem")
	}
	pump, err := heat_pump.NewModel(wellLoop(cfg), cfg.FloorTemperature, policy)
	if err != nil {
		return nil, errors.WithMessage(err, "NewGeoSystem")
	}
	return &GeoSystem{
		cfg:    cfg,
		solver: solver,
		pump:   pump,
		log:    logger.Named("geo"),
	}, nil
}

func (g *GeoSystem) Grid() ground.Grid {
	return g.solver.Grid()
}

func (g *GeoSystem) Loop() heat_pump.Loop {
	return g.pump.Loop
}

// Run advances the coupled system once per entry of demand, the heat
// requested from the heat pump at each step.
func (g *GeoSystem) Run(ctx context.Context, demand []float64) (*GeoRun, error) {
	steps := len(demand)
	if steps == 0 {
		return nil, errors.New("geo run needs at least one step of demand")
	}
	grid := g.solver.Grid()
	run := newGeoRun(steps, grid, g.cfg.StepDays)

	profile := grid.Uniform()
	prevOutlet := grid.Temperature
	clamped := false
	for i, q := range demand {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "geo run stopped at step %d", i)
		}

		out := g.pump.Couple(heat_pump.Input{Wall: profile[0], PrevOutlet: prevOutlet, Demand: q})
		if out.Clamped != clamped {
			clamped = out.Clamped
			if clamped {
				g.log.Infof("step %d: inlet clamped at floor %.2f K, delivering %.1f of %.1f kW",
					i, g.pump.Floor, out.Delivered/1000, out.Demand/1000)
			} else {
				g.log.Infof("step %d: back to unconstrained operation, inlet %.2f K", i, out.Inlet)
			}
		}

		next, err := g.solver.Step(profile, out.Flux)
		if err != nil {
			return nil, errors.WithMessagef(err, "step %d", i)
		}
		run.record(i, out, next)
		g.log.Debugf("step %d: wall %.3f K, inlet %.3f K, outlet %.3f K, cop %.3f",
			i, next[0], out.Inlet, out.Outlet, out.COP)

		profile, prevOutlet = next, out.Outlet
	}
	return run, nil
}

func newGeoRun(steps int, grid ground.Grid, stepDays float64) *GeoRun {
	return &GeoRun{
		Grid:      grid,
		StepDays:  stepDays,
		Demand:    make([]float64, steps),
		Delivered: make([]float64, steps),
		Inlet:     make([]float64, steps),
		Outlet:    make([]float64, steps),
		MeanFluid: make([]float64, steps),
		COP:       make([]float64, steps),
		Work:      make([]float64, steps),
		Flux:      make([]float64, steps),
		Clamped:   make([]bool, steps),
		Field:     mat.NewDense(steps, grid.Nodes, nil),
	}
}

func (r *GeoRun) record(i int, out heat_pump.Output, profile []float64) {
	r.Demand[i] = out.Demand
	r.Delivered[i] = out.Delivered
	r.Inlet[i] = out.Inlet
	r.Outlet[i] = out.Outlet
	r.MeanFluid[i] = out.MeanFluid
	r.COP[i] = out.COP
	r.Work[i] = out.Work
	r.Flux[i] = out.Flux
	r.Clamped[i] = out.Clamped
	r.Field.SetRow(i, profile)
}

func (r *GeoRun) Steps() int {
	return len(r.Demand)
}

// Node is the temperature history of one grid node.
func (r *GeoRun) Node(i int) []float64 {
	return mat.Col(nil, i, r.Field)
}

// Profile is the ground profile after step i.
func (r *GeoRun) Profile(i int) []float64 {
	return mat.Row(nil, i, r.Field)
}

func (r *GeoRun) ClampedSteps() int {
	n := 0
	for _, c := range r.Clamped {
		if c {
			n++
		}
	}
	return n
}

// WorkWh is the compressor energy over the run.
func (r *GeoRun) WorkWh() float64 {
	return floats.Sum(r.Work) * r.StepDays * 24
}

// Extremes of the run, as printed after a simulation.
func (r *GeoRun) MinOutlet() float64 { return floats.Min(r.Outlet) }
func (r *GeoRun) MinInlet() float64  { return floats.Min(r.Inlet) }
func (r *GeoRun) MinWall() float64   { return floats.Min(r.Node(0)) }
