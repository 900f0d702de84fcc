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
	"math"

	"github.com/antst/geoheat/internal/heat_pump"

	"go.uber.org/multierr"
)

// RangeConfig follows arange semantics: Start inclusive, Stop exclusive.
type RangeConfig struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Step  float64 `yaml:"step"`
}

// Values expands the range. Values are computed from the index, not by
// accumulation, so long ranges do not drift.
func (r RangeConfig) Values() []float64 {
	if r.Step <= 0 || r.Stop <= r.Start {
		return nil
	}
	n := int(math.Ceil((r.Stop - r.Start) / r.Step))
	values := make([]float64, n)
	for i := range values {
		values[i] = r.Start + float64(i)*r.Step
	}
	return values
}

func (r RangeConfig) validate(name string) error {
	if r.Step <= 0 {
		return fmt.Errorf("%s.step must be positive, got %v", name, r.Step)
	}
	if r.Stop <= r.Start {
		return fmt.Errorf("%s: stop %v must exceed start %v", name, r.Stop, r.Start)
	}
	return nil
}

type OptimizerConfig struct {
	Workers          int         `yaml:"workers"`
	StepDays         float64     `yaml:"step_days"`
	Top              int         `yaml:"top"`
	Insulation       RangeConfig `yaml:"insulation"`
	ExchangerArea    RangeConfig `yaml:"exchanger_area"`
	FloorTemperature RangeConfig `yaml:"floor_temperature"`
	WellCount        RangeConfig `yaml:"well_count"`
	WellDepth        RangeConfig `yaml:"well_depth"`
}

func NewOptimizerConfig() *OptimizerConfig {
	cfg := &OptimizerConfig{}
	cfg.FillDefaults()
	return cfg
}

func fillRange(r *RangeConfig, def RangeConfig) {
	if *r == (RangeConfig{}) {
		*r = def
	}
}

func (c *OptimizerConfig) FillDefaults() {
	fillFloat(&c.StepDays, 5)
	if c.Top == 0 {
		c.Top = 20
	}
	fillRange(&c.Insulation, RangeConfig{0.04, 0.041, 0.01})
	fillRange(&c.ExchangerArea, RangeConfig{40, 60, 2})
	fillRange(&c.FloorTemperature, RangeConfig{273, 279, 0.5})
	fillRange(&c.WellCount, RangeConfig{30, 30.5, 3})
	fillRange(&c.WellDepth, RangeConfig{200, 201, 10})
}

// Combinations is the size of the cartesian product.
func (c *OptimizerConfig) Combinations() int {
	return len(c.Insulation.Values()) * len(c.ExchangerArea.Values()) * len(c.FloorTemperature.Values()) *
		len(c.WellCount.Values()) * len(c.WellDepth.Values())
}

func (c *OptimizerConfig) Validate() error {
	var err error
	if c.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("optimizer.workers must not be negative, got %d", c.Workers))
	}
	err = multierr.Append(err, positive("optimizer.step_days", c.StepDays))
	err = multierr.Append(err, c.Insulation.validate("optimizer.insulation"))
	err = multierr.Append(err, c.ExchangerArea.validate("optimizer.exchanger_area"))
	err = multierr.Append(err, c.FloorTemperature.validate("optimizer.floor_temperature"))
	err = multierr.Append(err, c.WellCount.validate("optimizer.well_count"))
	err = multierr.Append(err, c.WellDepth.validate("optimizer.well_depth"))
	return err
}

// validateFloor keeps every swept floor between the COP limit and the
// undisturbed ground temperature.
func (c *OptimizerConfig) validateFloor(ground float64) error {
	values := c.FloorTemperature.Values()
	if len(values) == 0 {
		return nil
	}
	var err error
	if lo := values[0]; lo <= heat_pump.MinInlet {
		err = multierr.Append(err, fmt.Errorf(
			"optimizer.floor_temperature start %.2f must exceed the COP limit %.2f", lo, heat_pump.MinInlet,
		))
	}
	if hi := values[len(values)-1]; hi >= ground {
		err = multierr.Append(err, fmt.Errorf(
			"optimizer.floor_temperature %.2f must be below ground_temperature %.2f", hi, ground,
		))
	}
	return err
}
