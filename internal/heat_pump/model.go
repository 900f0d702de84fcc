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

// Package heat_pump couples the ground loop fluid to a heat pump whose
// performance depends on the temperature of the fluid it returns to the
// wells.
package heat_pump

import (
	"math"

	"github.com/pkg/errors"
)

type FloorPolicy string

const (
	// Recompute delivers only what the loop can give with the fluid pinned
	// at the floor.
	Recompute FloorPolicy = "recompute"
	// HoldDemand pins the fluid at the floor but keeps the delivered heat
	// equal to the demand.
	HoldDemand FloorPolicy = "hold_demand"
)

const (
	copBase      = 1.0
	copSlope     = 5.0 / 12.0
	copReference = 271.0
)

// MinInlet is the inlet temperature at which the COP model reaches zero.
const MinInlet = copReference - copBase/copSlope

// ErrInvalidFloor is returned for a floor temperature at or below MinInlet.
var ErrInvalidFloor = errors.New("invalid heat pump floor")

func ParsePolicy(s string) (FloorPolicy, error) {
	switch p := FloorPolicy(s); p {
	case Recompute, HoldDemand:
		return p, nil
	}
	return "", errors.Errorf("unknown floor policy `%s`", s)
}

// COP is an affine function of the fluid temperature leaving the heat pump.
func COP(inlet float64) float64 {
	return copBase + copSlope*(inlet-copReference)
}

type Model struct {
	Loop   Loop
	Floor  float64
	Policy FloorPolicy
}

func NewModel(loop Loop, floor float64, policy FloorPolicy) (Model, error) {
	if err := loop.Validate(); err != nil {
		return Model{}, err
	}
	if floor <= MinInlet {
		return Model{}, errors.Wrapf(ErrInvalidFloor, "floor %.2f K leaves the COP non-positive (limit %.2f K)", floor, MinInlet)
	}
	if _, err := ParsePolicy(string(policy)); err != nil {
		return Model{}, err
	}
	return Model{Loop: loop, Floor: floor, Policy: policy}, nil
}

// Input of one step, passed by value.
type Input struct {
	Wall       float64 // duct wall node temperature, K
	PrevOutlet float64 // fluid returned by the wells on the previous step, K
	Demand     float64 // heat requested from the heat pump, W
}

// Output of one step, passed by value.
type Output struct {
	Demand    float64 // effective demand, W
	Inlet     float64 // fluid sent into the wells, K
	Outlet    float64 // fluid returned by the wells, K
	MeanFluid float64 // mean fluid temperature along the wells, K
	Delivered float64 // W
	COP       float64
	Work      float64 // compressor power, W
	Flux      float64 // duct wall line flux, W/m, negative when extracting
	Clamped   bool
}

// Couple computes one step of the heat pump against the ground loop.
func (m Model) Couple(in Input) Output {
	out := Output{Demand: math.Max(in.Demand, 0)}
	capacity := m.Loop.Capacity()

	out.Inlet = in.PrevOutlet - out.Demand/capacity
	out.Delivered = out.Demand
	if out.Inlet < m.Floor {
		out.Clamped = true
		out.Inlet = m.Floor
		if m.Policy != HoldDemand {
			out.Delivered = math.Min(math.Max(capacity*(in.PrevOutlet-m.Floor), 0), out.Demand)
		}
	}

	out.COP = COP(out.Inlet)
	out.Work = out.Delivered / out.COP

	profile := m.Loop.Profile(out.Inlet, in.Wall)
	out.Outlet = profile[len(profile)-1]
	out.MeanFluid = MeanFluid(profile)
	out.Flux = (out.MeanFluid - in.Wall) / m.Loop.Resistance()
	return out
}
