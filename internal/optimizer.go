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
	"runtime"
	"sort"

	"github.com/antst/geoheat/internal/config"
	"github.com/antst/geoheat/internal/logger"
	"github.com/antst/geoheat/internal/pool"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Candidate is one parameter tuple of the sweep.
type Candidate struct {
	Insulation    float64 `json:"insulation"`     // m
	ExchangerArea float64 `json:"exchanger_area"` // m2
	Floor         float64 `json:"floor"`          // K
	Wells         int     `json:"wells"`
	Depth         float64 `json:"depth"` // m
}

// Ranking is the evaluated cost of a candidate.
type Ranking struct {
	Candidate
	VaporArea    float64 `json:"vapor_area"`
	ClampedSteps int     `json:"clamped_steps"`
	Costs        Costs   `json:"costs"`
}

type Optimizer struct {
	cfg  *config.Config
	eval func(ctx context.Context, balance *pool.Balance, sys System) (*HeaterResult, error)
	log  *zap.SugaredLogger
}

func NewOptimizer(cfg *config.Config) *Optimizer {
	return &Optimizer{cfg: cfg, eval: EvaluateHeater, log: logger.Named("optimizer")}
}

// Candidates expands the configured ranges into the cartesian product.
func (o *Optimizer) Candidates() []Candidate {
	oc := o.cfg.Optimizer
	var out []Candidate
	for _, ins := range oc.Insulation.Values() {
		for _, area := range oc.ExchangerArea.Values() {
			for _, floor := range oc.FloorTemperature.Values() {
				for _, wells := range oc.WellCount.Values() {
					for _, depth := range oc.WellDepth.Values() {
						out = append(out, Candidate{
							Insulation:    ins,
							ExchangerArea: area,
							Floor:         floor,
							Wells:         int(math.Round(wells)),
							Depth:         depth,
						})
					}
				}
			}
		}
	}
	return out
}

func (o *Optimizer) system(c Candidate) System {
	geo := o.cfg.Geothermy.Copy()
	geo.StepDays = o.cfg.Optimizer.StepDays
	geo.FloorTemperature = c.Floor
	geo.Wells.Count = c.Wells
	geo.Wells.Depth = c.Depth
	return System{
		Years:     o.cfg.Years,
		Pool:      o.cfg.Pool.WithInsulation(c.Insulation),
		Heater:    o.cfg.Heater.WithArea(c.ExchangerArea),
		Geothermy: geo,
	}
}

// Run evaluates every candidate on a bounded pool of workers and returns
// them ranked by total cost, cheapest first. The first failure cancels the
// remaining evaluations.
func (o *Optimizer) Run(ctx context.Context) ([]Ranking, error) {
	candidates := o.Candidates()
	if len(candidates) == 0 {
		return nil, errors.New("optimizer: empty parameter space")
	}

	balances := make(map[float64]*pool.Balance)
	for _, c := range candidates {
		if _, ok := balances[c.Insulation]; !ok {
			balances[c.Insulation] = pool.Evaluate(o.cfg.Pool.WithInsulation(c.Insulation))
		}
	}

	workers := o.cfg.Optimizer.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	o.log.Infof("Evaluating %d systems on %d workers", len(candidates), workers)

	results := make([]Ranking, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			res, err := o.eval(gctx, balances[c.Insulation], o.system(c))
			if err != nil {
				return errors.WithMessagef(err, "system %d/%d", i+1, len(candidates))
			}
			r := Ranking{Candidate: c, VaporArea: res.VaporArea, Costs: res.Costs}
			if res.Geo != nil {
				r.ClampedSteps = res.Geo.ClampedSteps()
			}
			results[i] = r
			o.log.Debugf("system %d/%d: %+v => %.2f $", i+1, len(candidates), c, r.Costs.Total)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Costs.Total < results[b].Costs.Total
	})
	return results, nil
}
