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

// Package pool computes the daily heat-loss balance of an outdoor pool over
// one year.
package pool

import (
	"math"

	"github.com/antst/geoheat/internal/config"
	"github.com/antst/geoheat/internal/thermo_model"

	"gonum.org/v1/gonum/floats"
)

const (
	DaysPerYear = 365

	airMean      = 6.4  // C
	airAmplitude = 29.5 // C

	glassThickness   = 0.015 // m
	glassConductance = 0.8   // W/(m K)
	insulationK      = 0.05  // W/(m K)
	coldWaterCp      = 4.198 // kJ/(kg K) at 7 C
	coldWaterTemp    = 7.0   // C
	coverEfficiency  = 0.5

	insulationPrice = 100.0 // $/m3
	coverPrice      = 50.0  // $
)

// Balance holds the daily series of a pool, indexed by day.
type Balance struct {
	Time        []float64 // day of the horizon
	AirTemp     []float64 // C
	PoolTemp    []float64 // C
	Summer      []bool
	Evaporation []float64 // kg/s
	QEvap       []float64 // W
	QWaterInput []float64 // W
	QTop        []float64 // W
	QWalls      []float64 // W
	QRadiation  []float64 // W, reported only
	HeatLoss    []float64 // W

	SummerOff           bool
	InsulationThickness float64
	InsulationCost      float64
	CoverCost           float64
}

// Component is one line of the annual loss summary.
type Component struct {
	Name  string
	KWh   float64
	Share float64 // percent of the total loss
}

// AirTemperature is the sinusoidal outdoor temperature at day t.
func AirTemperature(t float64) float64 {
	return airMean + airAmplitude*math.Sin(1.5*math.Pi+2*math.Pi*t/DaysPerYear)
}

// CoverReduction is the fraction of the top losses removed by the night
// cover.
func CoverReduction(cfg *config.PoolConfig) float64 {
	return coverEfficiency * cfg.CoverHours / 24
}

// Evaluate computes the one year balance of a pool.
func Evaluate(cfg *config.PoolConfig) *Balance {
	b := newBalance(DaysPerYear)
	b.SummerOff = *cfg.SummerOff
	b.InsulationThickness = *cfg.InsulationThickness

	cover := *cfg.NightCover
	reduction := CoverReduction(cfg)

	resTop := 1 / (cfg.HAirTop * cfg.SurfaceArea)
	if cover {
		resTop *= 1 + reduction
	}
	resWalls := (glassThickness/glassConductance + 1/cfg.HAirWalls + b.InsulationThickness/insulationK) / cfg.SideArea
	resSum := resTop + resWalls
	resSurfaces := 1 / (1/resTop + 1/resWalls)

	for i := range b.Time {
		// linspace(0, 365, 365)
		t := float64(i) * DaysPerYear / (DaysPerYear - 1)
		b.Time[i] = t
		air := AirTemperature(t)
		b.AirTemp[i] = air

		pool := cfg.WinterTemp
		if air > cfg.SummerThreshold {
			b.Summer[i] = true
			pool = cfg.SummerTemp
			if *cfg.SummerAirTemp {
				pool = air
			}
		}
		b.PoolTemp[i] = pool

		evap := cfg.HmAir * cfg.SurfaceArea * (thermo_model.SaturatedVapor(pool) - cfg.RelativeHumidity*thermo_model.SaturatedVapor(air))
		if cover {
			evap *= 1 - reduction
		}
		b.Evaporation[i] = evap
		b.QEvap[i] = evap * cfg.VaporEnthalpy
		b.QWaterInput[i] = evap * coldWaterCp * (pool - coldWaterTemp)

		q := (pool - air) / resSurfaces
		b.QTop[i] = q * (1 - resTop/resSum)
		b.QWalls[i] = q * (1 - resWalls/resSum)
		b.QRadiation[i] = -cfg.RadiationGain

		b.HeatLoss[i] = b.QEvap[i] + b.QWaterInput[i] + q
	}

	b.InsulationCost = cfg.SideArea * b.InsulationThickness * insulationPrice
	if cover {
		b.CoverCost = coverPrice
	}
	return b
}

func newBalance(n int) *Balance {
	return &Balance{
		Time:        make([]float64, n),
		AirTemp:     make([]float64, n),
		PoolTemp:    make([]float64, n),
		Summer:      make([]bool, n),
		Evaporation: make([]float64, n),
		QEvap:       make([]float64, n),
		QWaterInput: make([]float64, n),
		QTop:        make([]float64, n),
		QWalls:      make([]float64, n),
		QRadiation:  make([]float64, n),
		HeatLoss:    make([]float64, n),
	}
}

// Days is the length of the horizon.
func (b *Balance) Days() int {
	return len(b.Time)
}

// SummerDays lists the day indices flagged as summer.
func (b *Balance) SummerDays() []int {
	var days []int
	for i, s := range b.Summer {
		if s {
			days = append(days, i)
		}
	}
	return days
}

// Tile repeats a one year balance over several years. Time keeps running
// across years.
func (b *Balance) Tile(years int) *Balance {
	n := b.Days()
	out := newBalance(n * years)
	out.SummerOff = b.SummerOff
	out.InsulationThickness = b.InsulationThickness
	out.InsulationCost = b.InsulationCost
	out.CoverCost = b.CoverCost
	for y := 0; y < years; y++ {
		off := y * n
		for i := 0; i < n; i++ {
			out.Time[off+i] = float64(off + i)
		}
		copy(out.AirTemp[off:], b.AirTemp)
		copy(out.PoolTemp[off:], b.PoolTemp)
		copy(out.Summer[off:], b.Summer)
		copy(out.Evaporation[off:], b.Evaporation)
		copy(out.QEvap[off:], b.QEvap)
		copy(out.QWaterInput[off:], b.QWaterInput)
		copy(out.QTop[off:], b.QTop)
		copy(out.QWalls[off:], b.QWalls)
		copy(out.QRadiation[off:], b.QRadiation)
		copy(out.HeatLoss[off:], b.HeatLoss)
	}
	return out
}

// Annual sums each loss component over the horizon in kWh.
func (b *Balance) Annual() []Component {
	total := kwh(b.HeatLoss)
	comps := []Component{
		{Name: "Evaporation", KWh: kwh(b.QEvap)},
		{Name: "Water input", KWh: kwh(b.QWaterInput)},
		{Name: "Top surface", KWh: kwh(b.QTop)},
		{Name: "Walls", KWh: kwh(b.QWalls)},
		{Name: "Radiation", KWh: kwh(b.QRadiation)},
		{Name: "Total", KWh: total},
	}
	for i := range comps {
		if total != 0 {
			comps[i].Share = comps[i].KWh / total * 100
		}
	}
	return comps
}

func kwh(series []float64) float64 {
	return floats.Sum(series) * 24 / 1000
}
