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

package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type Run struct {
	ID            string    `db:"id"`
	CreatedAt     time.Time `db:"created_at"`
	Mode          string    `db:"mode"`
	Years         int       `db:"years"`
	StepDays      float64   `db:"step_days"`
	Nodes         int       `db:"nodes"`
	Wells         int       `db:"wells"`
	Depth         float64   `db:"depth"`
	Floor         float64   `db:"floor"`
	FloorPolicy   string    `db:"floor_policy"`
	Insulation    float64   `db:"insulation"`
	ExchangerArea float64   `db:"exchanger_area"`
	VaporArea     float64   `db:"vapor_area"`
	ClampedSteps  int       `db:"clamped_steps"`
	MinInlet      float64   `db:"min_inlet"`
	MinOutlet     float64   `db:"min_outlet"`
	MinWall       float64   `db:"min_wall"`
	WorkWh        float64   `db:"work_wh"`
	TotalCost     float64   `db:"total_cost"`
	Config        string    `db:"config"`
}

type Step struct {
	RunID     string  `db:"run_id"`
	Step      int     `db:"step"`
	Demand    float64 `db:"demand"`
	Delivered float64 `db:"delivered"`
	Inlet     float64 `db:"inlet"`
	Outlet    float64 `db:"outlet"`
	COP       float64 `db:"cop"`
	Work      float64 `db:"work"`
	Wall      float64 `db:"wall"`
	Clamped   bool    `db:"clamped"`
}

type Ranking struct {
	RunID         string  `db:"run_id"`
	Rank          int     `db:"rank"`
	Insulation    float64 `db:"insulation"`
	ExchangerArea float64 `db:"exchanger_area"`
	Floor         float64 `db:"floor"`
	Wells         int     `db:"wells"`
	Depth         float64 `db:"depth"`
	VaporArea     float64 `db:"vapor_area"`
	ClampedSteps  int     `db:"clamped_steps"`
	TotalCost     float64 `db:"total_cost"`
}

type Queries struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Queries {
	return &Queries{db: db}
}

func (q *Queries) Close() error {
	return q.db.Close()
}

func (q *Queries) InsertRun(ctx context.Context, r *Run) error {
	const QUERY = `
		INSERT INTO run(id, created_at, mode, years, step_days, nodes, wells, depth, floor, floor_policy,
			insulation, exchanger_area, vapor_area, clamped_steps, min_inlet, min_outlet, min_wall,
			work_wh, total_cost, config)
		VALUES(:id, :created_at, :mode, :years, :step_days, :nodes, :wells, :depth, :floor, :floor_policy,
			:insulation, :exchanger_area, :vapor_area, :clamped_steps, :min_inlet, :min_outlet, :min_wall,
			:work_wh, :total_cost, :config);`
	_, err := q.db.NamedExecContext(ctx, QUERY, r)
	return errors.Wrapf(err, "insert run %s", r.ID)
}

func (q *Queries) GetRun(ctx context.Context, id string) (*Run, error) {
	const QUERY = `SELECT * FROM run WHERE id=$1;`
	var r Run
	if err := q.db.GetContext(ctx, &r, QUERY, id); err != nil {
		return nil, errors.Wrapf(err, "get run %s", id)
	}
	return &r, nil
}

func (q *Queries) ListRuns(ctx context.Context) ([]Run, error) {
	const QUERY = `SELECT * FROM run ORDER BY created_at;`
	var runs []Run
	err := q.db.SelectContext(ctx, &runs, QUERY)
	return runs, errors.Wrap(err, "list runs")
}

// InsertSteps stores a run series in a single transaction.
func (q *Queries) InsertSteps(ctx context.Context, steps []Step) error {
	const QUERY = `
		INSERT INTO step(run_id, step, demand, delivered, inlet, outlet, cop, work, wall, clamped)
		VALUES(:run_id, :step, :demand, :delivered, :inlet, :outlet, :cop, :work, :wall, :clamped);`
	return q.insertAll(ctx, QUERY, len(steps), func(i int) interface{} { return &steps[i] })
}

func (q *Queries) ListSteps(ctx context.Context, runID string) ([]Step, error) {
	const QUERY = `SELECT * FROM step WHERE run_id=$1 ORDER BY step;`
	var steps []Step
	err := q.db.SelectContext(ctx, &steps, QUERY, runID)
	return steps, errors.Wrapf(err, "list steps of %s", runID)
}

func (q *Queries) InsertRankings(ctx context.Context, rankings []Ranking) error {
	const QUERY = `
		INSERT INTO ranking(run_id, rank, insulation, exchanger_area, floor, wells, depth, vapor_area,
			clamped_steps, total_cost)
		VALUES(:run_id, :rank, :insulation, :exchanger_area, :floor, :wells, :depth, :vapor_area,
			:clamped_steps, :total_cost);`
	return q.insertAll(ctx, QUERY, len(rankings), func(i int) interface{} { return &rankings[i] })
}

func (q *Queries) ListRankings(ctx context.Context, runID string) ([]Ranking, error) {
	const QUERY = `SELECT * FROM ranking WHERE run_id=$1 ORDER BY rank;`
	var rankings []Ranking
	err := q.db.SelectContext(ctx, &rankings, QUERY, runID)
	return rankings, errors.Wrapf(err, "list rankings of %s", runID)
}

func (q *Queries) insertAll(ctx context.Context, query string, n int, row func(i int) interface{}) error {
	tx, err := q.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return errors.Wrap(err, "prepare")
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)); err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
	}
	return errors.Wrap(tx.Commit(), "commit")
}
