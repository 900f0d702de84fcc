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
	"math"

	"github.com/antst/geoheat/internal/config"
	"github.com/antst/geoheat/internal/logger"
	"github.com/antst/geoheat/internal/pool"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

const (
	exchangerPrice     = 50.0 // $ for the 90 m2 reference
	exchangerRefArea   = 90.0 // m2
	exchangerExponent  = 0.68
	vaporPrice         = 4.0 // $/MWh
	electricityPrice   = 5.0 // $/MWh
	heatPumpPrice      = 23.0
	heatPumpExponent   = 0.65
	wellPricePerMeter  = 0.5 // $/m
	vaporAreaPrecision = 100
)

// System is one heating installation: the pool, its exchangers and the
// geothermal field feeding the water exchanger.
type System struct {
	Years     int
	Pool      *config.PoolConfig
	Heater    *config.HeaterConfig
	Geothermy *config.GeothermyConfig
}

func SystemFromConfig(cfg *config.Config) System {
	return System{Years: cfg.Years, Pool: cfg.Pool, Heater: cfg.Heater, Geothermy: cfg.Geothermy}
}

// Costs in dollars.
type Costs struct {
	Insulation     float64 `json:"insulation"`
	Cover          float64 `json:"cover"`
	WaterExchanger float64 `json:"water_exchanger"`
	VaporStock     float64 `json:"vapor_stock"`
	VaporRun       float64 `json:"vapor_run"`
	Electricity    float64 `json:"electricity"`
	HeatPump       float64 `json:"heat_pump"`
	Wells          float64 `json:"wells"`
	Total          float64 `json:"total"`
}

func (c Costs) Vapor() float64 {
	return c.VaporStock + c.VaporRun
}

// HeaterResult holds the daily exchanger series over the whole horizon.
type HeaterResult struct {
	Balance   *pool.Balance // tiled over the horizon
	QWater    []float64     // W
	QVapor    []float64     // W
	QPac      []float64     // heat pump heat, W
	QTotal    []float64     // W
	WaterArea float64       // m2
	VaporArea float64       // m2
	WorkWh    float64
	Geo       *GeoRun // nil when geothermy is skipped
	Costs     Costs
}

func exchangerCost(area float64) float64 {
	return exchangerPrice * math.Pow(area/exchangerRefArea, exchangerExponent)
}

// waterExchanger is the heat delivered by the water exchanger over one
// year of the balance.
func waterExchanger(b *pool.Balance, cfg *config.HeaterConfig) []float64 {
	cmin := cfg.WaterHeatCoef * cfg.WaterExchangerArea / cfg.WaterNTU
	q := make([]float64, b.Days())
	for i := range q {
		v := cfg.Efficiency * cmin * (cfg.WaterInletTemp - b.PoolTemp[i])
		v = math.Max(0, math.Min(v, b.HeatLoss[i]))
		if b.SummerOff && b.Summer[i] {
			v = 0
		}
		q[i] = v
	}
	return q
}

func tile(v []float64, years int) []float64 {
	out := make([]float64, 0, len(v)*years)
	for y := 0; y < years; y++ {
		out = append(out, v...)
	}
	return out
}

// EvaluateHeater sizes the exchangers for an annual pool balance, runs the
// geothermal field against the heat pump demand and prices the result.
func EvaluateHeater(ctx context.Context, balance *pool.Balance, sys System) (*HeaterResult, error) {
	cfg := sys.Heater
	days := balance.Days() * sys.Years
	res := &HeaterResult{Balance: balance.Tile(sys.Years), WaterArea: cfg.WaterExchangerArea}

	water := waterExchanger(balance, cfg)
	pac := make([]float64, len(water))
	for i, q := range water {
		pac[i] = q / cfg.Efficiency
	}

	if *cfg.SkipGeothermy {
		res.QWater = tile(water, sys.Years)
		res.QPac = tile(pac, sys.Years)
	} else {
		geo, err := NewGeoSystem(sys.Geothermy)
		if err != nil {
			return nil, err
		}
		stepDays := sys.Geothermy.StepDays
		demand := stepAverage(tile(pac, sys.Years), stepDays, stepCount(days, stepDays))
		run, err := geo.Run(ctx, demand)
		if err != nil {
			return nil, errors.WithMessage(err, "EvaluateHeater")
		}
		res.Geo = run
		res.QPac = expandDaily(run.Delivered, stepDays, days)
		res.QWater = make([]float64, days)
		for i, q := range res.QPac {
			res.QWater[i] = cfg.Efficiency * q
		}
		res.WorkWh = floats.Sum(expandDaily(run.Work, stepDays, days)) * 24
	}

	if err := res.vaporExchanger(cfg); err != nil {
		return nil, errors.WithMessage(err, "EvaluateHeater")
	}

	res.QTotal = make([]float64, days)
	floats.AddTo(res.QTotal, res.QWater, res.QVapor)

	res.Costs = res.price(sys)
	logger.L().Debugf("heater: water %.1f m2, vapor %.2f m2, total %.2f $",
		res.WaterArea, res.VaporArea, res.Costs.Total)
	return res, nil
}

// vaporExchanger is sized to the largest residual loss the water exchanger
// leaves uncovered, and never pushes the total above the loss.
func (r *HeaterResult) vaporExchanger(cfg *config.HeaterConfig) error {
	b := r.Balance
	hottest := floats.Max(b.PoolTemp)
	if cfg.VaporInletTemp <= hottest {
		return errors.Errorf("vapor inlet %.2f must exceed the hottest pool temperature %.2f", cfg.VaporInletTemp, hottest)
	}
	residual := make([]float64, b.Days())
	floats.SubTo(residual, b.HeatLoss, r.QWater)

	cmin := floats.Max(residual) / (cfg.Efficiency * (cfg.VaporInletTemp - hottest))
	r.VaporArea = math.Round(cmin*cfg.VaporNTU/cfg.VaporHeatCoef*vaporAreaPrecision) / vaporAreaPrecision
	if r.VaporArea < 0 {
		r.VaporArea = 0
		cmin = 0
	}

	r.QVapor = make([]float64, b.Days())
	for i := range r.QVapor {
		v := cfg.Efficiency * cmin * (cfg.VaporInletTemp - b.PoolTemp[i])
		if v > residual[i] {
			v = residual[i]
		}
		if b.SummerOff && b.Summer[i] || v < 0 {
			v = 0
		}
		r.QVapor[i] = v
	}
	return nil
}

func (r *HeaterResult) price(sys System) Costs {
	c := Costs{
		Insulation:     r.Balance.InsulationCost,
		Cover:          r.Balance.CoverCost,
		WaterExchanger: exchangerCost(r.WaterArea),
		VaporStock:     exchangerCost(r.VaporArea),
		VaporRun:       vaporPrice * floats.Sum(r.QVapor) * 24 / 1e6,
		Electricity:    electricityPrice * r.WorkWh / 1e6,
		HeatPump:       heatPumpPrice * math.Pow(floats.Max(r.QPac)/1000, heatPumpExponent),
	}
	if r.Geo != nil {
		w := sys.Geothermy.Wells
		c.Wells = float64(w.Count) * w.Depth * wellPricePerMeter
	}
	c.Total = c.Insulation + c.Cover + c.WaterExchanger + c.Vapor() + c.Electricity + c.HeatPump + c.Wells
	return c
}
