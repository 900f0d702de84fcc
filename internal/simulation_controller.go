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
	"fmt"
	"io"
	"time"

	"github.com/antst/geoheat/internal/config"
	"github.com/antst/geoheat/internal/db"
	"github.com/antst/geoheat/internal/logger"
	"github.com/antst/geoheat/internal/plots"
	"github.com/antst/geoheat/internal/pool"
	"github.com/antst/geoheat/internal/safe_mqtt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Summary is the document published once a run completes.
type Summary struct {
	RunID        string    `json:"run_id"`
	Mode         string    `json:"mode"`
	CreatedAt    time.Time `json:"created_at"`
	Systems      int       `json:"systems"`
	TotalCost    float64   `json:"total_cost"`
	Costs        Costs     `json:"costs"`
	VaporArea    float64   `json:"vapor_area"`
	ClampedSteps int       `json:"clamped_steps"`
	MinInlet     float64   `json:"min_inlet,omitempty"`
	MinOutlet    float64   `json:"min_outlet,omitempty"`
	MinWall      float64   `json:"min_wall,omitempty"`
	Best         *Ranking  `json:"best,omitempty"`

	rankings []Ranking // published one per topic in optimize mode
}

// SimulationController runs the configured mode and hands the results to
// the report, the plots, the DB and the MQTT publisher. queries and pub
// may be nil.
type SimulationController struct {
	cfg     *config.Config
	queries *db.Queries
	pub     *safe_mqtt.Publisher
	out     io.Writer
	log     *zap.SugaredLogger
}

func NewSimulationController(cfg *config.Config, queries *db.Queries, pub *safe_mqtt.Publisher, out io.Writer) *SimulationController {
	return &SimulationController{
		cfg:     cfg,
		queries: queries,
		pub:     pub,
		out:     out,
		log:     logger.Named("simulation"),
	}
}

// Run executes one invocation and returns its run id.
func (c *SimulationController) Run(ctx context.Context) (string, error) {
	id := uuid.NewString()
	c.log.Infof("Run %s in %s mode over %d years", id, c.cfg.Mode, c.cfg.Years)

	var (
		summary *Summary
		err     error
	)
	switch c.cfg.Mode {
	case config.ModeOptimize:
		summary, err = c.runOptimize(ctx, id)
	default:
		summary, err = c.runSingle(ctx, id)
	}
	if err != nil {
		return id, err
	}

	c.publish(summary)
	c.log.Infof("Run %s completed, total cost %.2f $", id, summary.TotalCost)
	return id, nil
}

func (c *SimulationController) runSingle(ctx context.Context, id string) (*Summary, error) {
	sys := SystemFromConfig(c.cfg)
	balance := pool.Evaluate(sys.Pool)
	printPool(c.out, balance)

	res, err := EvaluateHeater(ctx, balance, sys)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:     id,
		Mode:      config.ModeSingle,
		CreatedAt: time.Now().UTC(),
		Systems:   1,
		TotalCost: res.Costs.Total,
		Costs:     res.Costs,
		VaporArea: res.VaporArea,
	}
	if res.Geo != nil {
		printParameters(c.out, c.cfg, wellLoop(sys.Geothermy))
		printGeoRun(c.out, res.Geo)
		summary.ClampedSteps = res.Geo.ClampedSteps()
		summary.MinInlet = res.Geo.MinInlet()
		summary.MinOutlet = res.Geo.MinOutlet()
		summary.MinWall = res.Geo.MinWall()
	}
	printCosts(c.out, res)

	c.render(res)

	if err := c.storeSingle(ctx, summary, res); err != nil {
		return nil, err
	}
	return summary, nil
}

func (c *SimulationController) runOptimize(ctx context.Context, id string) (*Summary, error) {
	start := time.Now()
	rankings, err := NewOptimizer(c.cfg).Run(ctx)
	if err != nil {
		return nil, err
	}
	c.log.Infof("Evaluated %d systems in %v", len(rankings), time.Since(start).Round(time.Millisecond))
	printRankings(c.out, rankings, c.cfg.Optimizer.Top)

	best := rankings[0]
	summary := &Summary{
		RunID:        id,
		Mode:         config.ModeOptimize,
		CreatedAt:    time.Now().UTC(),
		Systems:      len(rankings),
		TotalCost:    best.Costs.Total,
		Costs:        best.Costs,
		VaporArea:    best.VaporArea,
		ClampedSteps: best.ClampedSteps,
		Best:         &best,
		rankings:     topRankings(rankings, c.cfg.Optimizer.Top),
	}
	if err := c.storeRankings(ctx, summary, rankings); err != nil {
		return nil, err
	}
	return summary, nil
}

func (c *SimulationController) render(res *HeaterResult) {
	r, err := plots.NewRenderer(c.cfg.OutputDir)
	if err != nil {
		c.log.Error(err)
		return
	}
	files, err := renderRun(r, res)
	if err != nil {
		c.log.Errorf("Failed to render plots: %v", err)
	}
	c.log.Infof("Wrote %d plots to `%s`", len(files), r.Dir())
}

func (c *SimulationController) runRecord(s *Summary) (*db.Run, error) {
	cfgYAML, err := yaml.Marshal(c.cfg)
	if err != nil {
		return nil, errors.Wrap(err, "marshal config")
	}
	g := c.cfg.Geothermy
	return &db.Run{
		ID:            s.RunID,
		CreatedAt:     s.CreatedAt,
		Mode:          s.Mode,
		Years:         c.cfg.Years,
		StepDays:      g.StepDays,
		Nodes:         g.Nodes(),
		Wells:         g.Wells.Count,
		Depth:         g.Wells.Depth,
		Floor:         g.FloorTemperature,
		FloorPolicy:   g.FloorPolicy,
		Insulation:    *c.cfg.Pool.InsulationThickness,
		ExchangerArea: c.cfg.Heater.WaterExchangerArea,
		VaporArea:     s.VaporArea,
		ClampedSteps:  s.ClampedSteps,
		MinInlet:      s.MinInlet,
		MinOutlet:     s.MinOutlet,
		MinWall:       s.MinWall,
		TotalCost:     s.TotalCost,
		Config:        string(cfgYAML),
	}, nil
}

func (c *SimulationController) storeSingle(ctx context.Context, s *Summary, res *HeaterResult) error {
	if c.queries == nil {
		return nil
	}
	run, err := c.runRecord(s)
	if err != nil {
		return err
	}
	run.WorkWh = res.WorkWh
	if err := c.queries.InsertRun(ctx, run); err != nil {
		return err
	}
	if res.Geo == nil {
		return nil
	}

	g := res.Geo
	steps := make([]db.Step, g.Steps())
	for i := range steps {
		steps[i] = db.Step{
			RunID:     s.RunID,
			Step:      i,
			Demand:    g.Demand[i],
			Delivered: g.Delivered[i],
			Inlet:     g.Inlet[i],
			Outlet:    g.Outlet[i],
			COP:       g.COP[i],
			Work:      g.Work[i],
			Wall:      g.Field.At(i, 0),
			Clamped:   g.Clamped[i],
		}
	}
	if err := c.queries.InsertSteps(ctx, steps); err != nil {
		return err
	}
	c.log.Infof("Stored run %s with %d steps", s.RunID, len(steps))
	return nil
}

func (c *SimulationController) storeRankings(ctx context.Context, s *Summary, rankings []Ranking) error {
	if c.queries == nil {
		return nil
	}
	run, err := c.runRecord(s)
	if err != nil {
		return err
	}
	best := s.Best
	run.StepDays = c.cfg.Optimizer.StepDays
	run.Wells, run.Depth, run.Floor = best.Wells, best.Depth, best.Floor
	run.Insulation, run.ExchangerArea = best.Insulation, best.ExchangerArea
	if err := c.queries.InsertRun(ctx, run); err != nil {
		return err
	}

	rows := make([]db.Ranking, len(rankings))
	for i, r := range rankings {
		rows[i] = db.Ranking{
			RunID:         s.RunID,
			Rank:          i + 1,
			Insulation:    r.Insulation,
			ExchangerArea: r.ExchangerArea,
			Floor:         r.Floor,
			Wells:         r.Wells,
			Depth:         r.Depth,
			VaporArea:     r.VaporArea,
			ClampedSteps:  r.ClampedSteps,
			TotalCost:     r.Costs.Total,
		}
	}
	if err := c.queries.InsertRankings(ctx, rows); err != nil {
		return err
	}
	c.log.Infof("Stored run %s with %d rankings", s.RunID, len(rows))
	return nil
}

func topRankings(rankings []Ranking, top int) []Ranking {
	if top <= 0 || top > len(rankings) {
		top = len(rankings)
	}
	return rankings[:top]
}

// publish is best effort; a broker failure does not fail the run.
func (c *SimulationController) publish(s *Summary) {
	if c.pub == nil {
		return
	}
	if err := c.pub.PublishJSON("summary", s); err != nil {
		c.log.Warnf("Failed to publish summary: %v", err)
		return
	}
	c.log.Debugf("Published summary to `%s`", c.pub.Topic("summary"))

	for i, r := range s.rankings {
		sub := fmt.Sprintf("ranking/%d", i+1)
		if err := c.pub.PublishJSON(sub, r); err != nil {
			c.log.Warnf("Failed to publish ranking %d: %v", i+1, err)
			return
		}
	}
	if len(s.rankings) > 0 {
		c.log.Debugf("Published %d rankings below `%s`", len(s.rankings), c.pub.Topic("ranking"))
	}
}
