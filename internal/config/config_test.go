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
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5*365, cfg.Days())
	assert.Equal(t, 50, cfg.Geothermy.Nodes())
	assert.Equal(t, FloorPolicyRecompute, cfg.Geothermy.FloorPolicy)
	assert.True(t, cfg.StorageEnabled())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
mode: optimize
years: 2
db_file: "-"
pool:
  insulation_thickness: 0.05
  night_cover: false
geothermy:
  step_days: 5
  floor_policy: hold_demand
  wells:
    count: 30
optimizer:
  exchanger_area: {start: 40, stop: 44, step: 2}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	assert.Equal(t, ModeOptimize, cfg.Mode)
	assert.Equal(t, 2, cfg.Years)
	assert.False(t, cfg.StorageEnabled())
	assert.Equal(t, 0.05, *cfg.Pool.InsulationThickness)
	assert.False(t, *cfg.Pool.NightCover)
	assert.True(t, *cfg.Pool.SummerOff)
	assert.Equal(t, 36.0, cfg.Pool.WinterTemp)
	assert.Equal(t, 5.0, cfg.Geothermy.StepDays)
	assert.Equal(t, FloorPolicyHoldDemand, cfg.Geothermy.FloorPolicy)
	assert.Equal(t, 30, cfg.Geothermy.Wells.Count)
	assert.Equal(t, 200.0, cfg.Geothermy.Wells.Depth)
	assert.Equal(t, []float64{40, 42}, cfg.Optimizer.ExchangerArea.Values())
	assert.Equal(t, 2*12, cfg.Optimizer.Combinations())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "years: [1, 2"))
	assert.Error(t, err)
}

func TestValidateCollectsErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"mode", func(c *Config) { c.Mode = "batch" }, "unknown mode"},
		{"years", func(c *Config) { c.Years = -1 }, "years"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "log format"},
		{"floor above ground", func(c *Config) { c.Geothermy.FloorTemperature = 290 }, "floor_temperature"},
		{"too few nodes", func(c *Config) { c.Geothermy.Distance = 4 }, "at least 3 nodes"},
		{"policy", func(c *Config) { c.Geothermy.FloorPolicy = "maybe" }, "floor_policy"},
		{"pipe", func(c *Config) { c.Geothermy.Pipe.OuterDiameter = 0.01 }, "outer_diameter"},
		{"wells", func(c *Config) { c.Geothermy.Wells.Count = -2 }, "wells.count"},
		{"well step", func(c *Config) { c.Geothermy.Wells.DepthStep = 500 }, "depth_step"},
		{"humidity", func(c *Config) { c.Pool.RelativeHumidity = 2 }, "relative_humidity"},
		{"insulation", func(c *Config) { c.Pool.InsulationThickness = GetPTR(-1.0) }, "insulation_thickness"},
		{"efficiency", func(c *Config) { c.Heater.Efficiency = 1.5 }, "efficiency"},
		{"floor below COP limit", func(c *Config) { c.Geothermy.FloorTemperature = 265 }, "COP limit"},
		{"water inlet", func(c *Config) { c.Heater.WaterInletTemp = c.Pool.WinterTemp }, "water_inlet_temp"},
		{"vapor inlet", func(c *Config) { c.Heater.VaporInletTemp = c.Pool.WinterTemp }, "vapor_inlet_temp"},
		{"vapor inlet summer", func(c *Config) {
			c.Pool.SummerTemp = 40
			c.Heater.VaporInletTemp = 38
		}, "hottest pool temperature"},
		{"optimizer floor below COP limit", func(c *Config) {
			c.Mode = ModeOptimize
			c.Optimizer.FloorTemperature = RangeConfig{Start: 260, Stop: 261, Step: 1}
		}, "COP limit"},
		{"optimizer floor above ground", func(c *Config) {
			c.Mode = ModeOptimize
			c.Optimizer.FloorTemperature = RangeConfig{Start: 280, Stop: 290, Step: 2}
		}, "below ground_temperature"},
		{"optimizer range", func(c *Config) {
			c.Mode = ModeOptimize
			c.Optimizer.WellDepth = RangeConfig{Start: 10, Stop: 5, Step: 1}
		}, "well_depth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Years = 0
	cfg.Mode = "x"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "years")
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestRangeValues(t *testing.T) {
	assert.Equal(t, []float64{0.04}, RangeConfig{0.04, 0.041, 0.01}.Values())
	assert.Len(t, RangeConfig{273, 279, 0.5}.Values(), 12)
	assert.Equal(t, []float64{30}, RangeConfig{30, 30.5, 3}.Values())
	assert.Nil(t, RangeConfig{1, 1, 1}.Values())
	assert.Nil(t, RangeConfig{0, 1, 0}.Values())
}

func TestCopies(t *testing.T) {
	g := NewGeothermyConfig()
	cp := g.Copy()
	cp.Wells.Count = 99
	cp.Pipe.Material = "steel"
	cp.Fluid.Velocity = 1
	assert.Equal(t, 20, g.Wells.Count)
	assert.Equal(t, "polyethylene", g.Pipe.Material)
	assert.Equal(t, 3.0, g.Fluid.Velocity)

	p := NewPoolConfig()
	assert.Equal(t, 0.02, *p.WithInsulation(0.02).InsulationThickness)
	assert.Equal(t, 0.0, *p.InsulationThickness)

	h := NewHeaterConfig()
	assert.Equal(t, 50.0, h.WithArea(50).WaterExchangerArea)
	assert.Equal(t, 43.0, h.WaterExchangerArea)
}
