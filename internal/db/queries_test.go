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
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Queries {
	t.Helper()
	q, err := OpenDatabase(filepath.Join(t.TempDir(), "geoheat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = q.Close() })
	return q
}

func testRun() *Run {
	return &Run{
		ID:            uuid.NewString(),
		CreatedAt:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Mode:          "single",
		Years:         5,
		StepDays:      1,
		Nodes:         50,
		Wells:         30,
		Depth:         200,
		Floor:         275,
		FloorPolicy:   "recompute",
		Insulation:    0.04,
		ExchangerArea: 43,
		VaporArea:     1.25,
		ClampedSteps:  12,
		MinInlet:      275,
		MinOutlet:     277.5,
		MinWall:       278.1,
		WorkWh:        1.5e8,
		TotalCost:     1234.5,
		Config:        "years: 5\n",
	}
}

func TestRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	q := openTestDB(t)

	r := testRun()
	require.NoError(t, q.InsertRun(ctx, r))

	got, err := q.GetRun(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, r.CreatedAt.Equal(got.CreatedAt))
	got.CreatedAt = r.CreatedAt
	assert.Equal(t, r, got)

	runs, err := q.ListRuns(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	assert.Error(t, q.InsertRun(ctx, r), "duplicate id")

	_, err = q.GetRun(ctx, "missing")
	assert.Error(t, err)
}

func TestStepsRoundTrip(t *testing.T) {
	ctx := context.Background()
	q := openTestDB(t)
	r := testRun()
	require.NoError(t, q.InsertRun(ctx, r))

	steps := make([]Step, 10)
	for i := range steps {
		steps[i] = Step{
			RunID:     r.ID,
			Step:      i,
			Demand:    300e3,
			Delivered: 300e3 - float64(i)*1e3,
			Inlet:     275,
			Outlet:    280 - float64(i)*0.1,
			COP:       2.66,
			Work:      1e5,
			Wall:      282 - float64(i)*0.1,
			Clamped:   i > 0,
		}
	}
	require.NoError(t, q.InsertSteps(ctx, steps))

	got, err := q.ListSteps(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, steps, got)
}

func TestStepsNeedRun(t *testing.T) {
	q := openTestDB(t)
	err := q.InsertSteps(context.Background(), []Step{{RunID: "nope", Step: 0}})
	assert.Error(t, err)
}

func TestRankingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	q := openTestDB(t)
	r := testRun()
	r.Mode = "optimize"
	require.NoError(t, q.InsertRun(ctx, r))

	rankings := []Ranking{
		{RunID: r.ID, Rank: 1, Insulation: 0.04, ExchangerArea: 40, Floor: 274, Wells: 30, Depth: 200, VaporArea: 2, TotalCost: 900},
		{RunID: r.ID, Rank: 2, Insulation: 0.04, ExchangerArea: 42, Floor: 275, Wells: 30, Depth: 200, VaporArea: 1.8, ClampedSteps: 3, TotalCost: 910},
	}
	require.NoError(t, q.InsertRankings(ctx, rankings))

	got, err := q.ListRankings(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, rankings, got)
}
