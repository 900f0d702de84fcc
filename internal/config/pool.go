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
	"fmt"

	"go.uber.org/multierr"
)

// PoolConfig represents the outdoor pool and its surroundings
type PoolConfig struct {
	SummerTemp          float64  `yaml:"summer_temp"`
	WinterTemp          float64  `yaml:"winter_temp"`
	SummerThreshold     float64  `yaml:"summer_threshold"`
	InsulationThickness *float64 `yaml:"insulation_thickness"`
	SurfaceArea         float64  `yaml:"surface_area"`
	SideArea            float64  `yaml:"side_area"`
	WindVelocity        float64  `yaml:"wind_velocity"`
	RelativeHumidity    float64  `yaml:"relative_humidity"`
	SummerOff           *bool    `yaml:"summer_off"`
	SummerAirTemp       *bool    `yaml:"summer_air_temp"`
	NightCover          *bool    `yaml:"night_cover"`
	CoverHours          float64  `yaml:"cover_hours"`
	HAirTop             float64  `yaml:"h_air_top"`
	HAirWalls           float64  `yaml:"h_air_walls"`
	HmAir               float64  `yaml:"hm_air"`
	VaporEnthalpy       float64  `yaml:"vapor_enthalpy"`
	RadiationGain       float64  `yaml:"radiation_gain"`
}

// NewPoolConfig creates a new PoolConfig with default values
func NewPoolConfig() *PoolConfig {
	cfg := &PoolConfig{}
	cfg.FillDefaults()
	return cfg
}

// FillDefaults sets default values for the PoolConfig
func (c *PoolConfig) FillDefaults() {
	fillFloat(&c.SummerTemp, 23)
	fillFloat(&c.WinterTemp, 36)
	fillFloat(&c.SummerThreshold, 20)
	fillFloat(&c.SurfaceArea, 200)
	fillFloat(&c.SideArea, 90)
	fillFloat(&c.WindVelocity, 3)
	fillFloat(&c.RelativeHumidity, 0.5)
	fillFloat(&c.CoverHours, 8)
	fillFloat(&c.HAirTop, 6.61)
	fillFloat(&c.HAirWalls, 6.75)
	fillFloat(&c.HmAir, 6.4133)
	fillFloat(&c.VaporEnthalpy, 2418)
	fillFloat(&c.RadiationGain, 8500)

	if c.InsulationThickness == nil {
		c.InsulationThickness = GetPTR(0.0)
	}
	if c.SummerOff == nil {
		c.SummerOff = GetPTR(true)
	}
	if c.SummerAirTemp == nil {
		c.SummerAirTemp = GetPTR(true)
	}
	if c.NightCover == nil {
		c.NightCover = GetPTR(true)
	}
}

// WithInsulation returns a copy with another insulation thickness.
func (c *PoolConfig) WithInsulation(thickness float64) *PoolConfig {
	cp := *c
	cp.InsulationThickness = GetPTR(thickness)
	return &cp
}

func (c *PoolConfig) Validate() error {
	var err error
	err = multierr.Append(err, positive("pool.surface_area", c.SurfaceArea))
	err = multierr.Append(err, positive("pool.side_area", c.SideArea))
	err = multierr.Append(err, positive("pool.h_air_top", c.HAirTop))
	err = multierr.Append(err, positive("pool.h_air_walls", c.HAirWalls))
	err = multierr.Append(err, positive("pool.hm_air", c.HmAir))
	err = multierr.Append(err, positive("pool.vapor_enthalpy", c.VaporEnthalpy))
	err = multierr.Append(err, within("pool.relative_humidity", c.RelativeHumidity, 0, 1))
	err = multierr.Append(err, within("pool.cover_hours", c.CoverHours, 0, 24))
	if *c.InsulationThickness < 0 {
		err = multierr.Append(err, fmt.Errorf("pool.insulation_thickness must not be negative, got %v", *c.InsulationThickness))
	}
	return err
}
