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

package pool

import (
	"testing"

	"github.com/antst/geoheat/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAirTemperature(t *testing.T) {
	assert.InDelta(t, 6.4-29.5, AirTemperature(0), 1e-9)
	assert.InDelta(t, 6.4+29.5, AirTemperature(182.5), 1e-9)
}

func TestEvaluateSummer(t *testing.T) {
	cfg := config.NewPoolConfig()
	b := Evaluate(cfg)
	require.Equal(t, DaysPerYear, b.Days())

	assert.False(t, b.Summer[0])
	assert.False(t, b.Summer[100])
	assert.True(t, b.Summer[182])

	days := b.SummerDays()
	assert.Greater(t, len(days), 120)
	assert.Less(t, len(days), 135)
	for i := 1; i < len(days); i++ {
		assert.Equal(t, days[i-1]+1, days[i], "summer is one contiguous block")
	}

	assert.Equal(t, cfg.WinterTemp, b.PoolTemp[0])
	assert.Equal(t, b.AirTemp[182], b.PoolTemp[182])

	cfg.SummerAirTemp = config.GetPTR(false)
	b = Evaluate(cfg)
	assert.Equal(t, cfg.SummerTemp, b.PoolTemp[182])
}

func TestEvaluateComponentsAddUp(t *testing.T) {
	b := Evaluate(config.NewPoolConfig())
	for i := range b.HeatLoss {
		sum := b.QEvap[i] + b.QWaterInput[i] + b.QTop[i] + b.QWalls[i]
		assert.InDelta(t, sum, b.HeatLoss[i], 1e-6, "day %d", i)
		assert.Equal(t, -8500.0, b.QRadiation[i])
	}
	assert.Greater(t, b.HeatLoss[0], 0.0)
}

func TestEvaluateCoverAndInsulation(t *testing.T) {
	base := config.NewPoolConfig()
	base.NightCover = config.GetPTR(false)
	open := Evaluate(base)

	covered := config.NewPoolConfig()
	withCover := Evaluate(covered)
	assert.Less(t, withCover.HeatLoss[0], open.HeatLoss[0])
	assert.Equal(t, 50.0, withCover.CoverCost)
	assert.Equal(t, 0.0, open.CoverCost)

	insulated := Evaluate(covered.WithInsulation(0.04))
	assert.Less(t, insulated.QWalls[0], withCover.QWalls[0])
	assert.Less(t, insulated.HeatLoss[0], withCover.HeatLoss[0])
	assert.InDelta(t, 90*0.04*100, insulated.InsulationCost, 1e-9)
}

func TestTile(t *testing.T) {
	b := Evaluate(config.NewPoolConfig())
	tiled := b.Tile(3)

	require.Equal(t, 3*DaysPerYear, tiled.Days())
	assert.Equal(t, b.HeatLoss[10], tiled.HeatLoss[2*DaysPerYear+10])
	assert.Equal(t, float64(DaysPerYear+1), tiled.Time[DaysPerYear+1])
	assert.Len(t, tiled.SummerDays(), 3*len(b.SummerDays()))
	assert.Equal(t, b.SummerDays()[0]+DaysPerYear, tiled.SummerDays()[len(b.SummerDays())])
	assert.Equal(t, b.InsulationCost, tiled.InsulationCost)
}

func TestAnnual(t *testing.T) {
	comps := Evaluate(config.NewPoolConfig()).Annual()
	require.Len(t, comps, 6)

	total := comps[len(comps)-1]
	assert.Equal(t, "Total", total.Name)
	assert.InDelta(t, 100.0, total.Share, 1e-9)

	var sum float64
	for _, c := range comps[:4] {
		sum += c.KWh
	}
	assert.InDelta(t, total.KWh, sum, 1e-6*total.KWh)
}
