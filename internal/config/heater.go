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
	"go.uber.org/multierr"
)

// HeaterConfig sizes the water and vapor exchangers feeding the pool
type HeaterConfig struct {
	WaterExchangerArea float64 `yaml:"water_exchanger_area"`
	Efficiency         float64 `yaml:"efficiency"`
	WaterInletTemp     float64 `yaml:"water_inlet_temp"`
	WaterHeatCoef      float64 `yaml:"water_heat_coef"`
	WaterNTU           float64 `yaml:"water_ntu"`
	VaporInletTemp     float64 `yaml:"vapor_inlet_temp"`
	VaporHeatCoef      float64 `yaml:"vapor_heat_coef"`
	VaporNTU           float64 `yaml:"vapor_ntu"`
	SkipGeothermy      *bool   `yaml:"skip_geothermy"`
}

func NewHeaterConfig() *HeaterConfig {
	cfg := &HeaterConfig{}
	cfg.FillDefaults()
	return cfg
}

func (c *HeaterConfig) FillDefaults() {
	fillFloat(&c.WaterExchangerArea, 43)
	fillFloat(&c.Efficiency, 0.75)
	fillFloat(&c.WaterInletTemp, 55)
	fillFloat(&c.WaterHeatCoef, 240)
	fillFloat(&c.WaterNTU, 1.5)
	fillFloat(&c.VaporInletTemp, 115)
	fillFloat(&c.VaporHeatCoef, 340)
	fillFloat(&c.VaporNTU, 1.39)
	if c.SkipGeothermy == nil {
		c.SkipGeothermy = GetPTR(false)
	}
}

// WithArea returns a copy with another water exchanger area.
func (c *HeaterConfig) WithArea(area float64) *HeaterConfig {
	cp := *c
	cp.WaterExchangerArea = area
	return &cp
}

func (c *HeaterConfig) Validate() error {
	var err error
	err = multierr.Append(err, positive("heater.water_exchanger_area", c.WaterExchangerArea))
	err = multierr.Append(err, within("heater.efficiency", c.Efficiency, 1e-3, 1))
	err = multierr.Append(err, positive("heater.water_heat_coef", c.WaterHeatCoef))
	err = multierr.Append(err, positive("heater.water_ntu", c.WaterNTU))
	err = multierr.Append(err, positive("heater.vapor_heat_coef", c.VaporHeatCoef))
	err = multierr.Append(err, positive("heater.vapor_ntu", c.VaporNTU))
	return err
}
