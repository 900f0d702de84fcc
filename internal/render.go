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
	"github.com/antst/geoheat/internal/plots"
)

const maxProfiles = 60

// renderRun writes the plots of a single run and returns the files written.
func renderRun(r *plots.Renderer, res *HeaterResult) ([]string, error) {
	var files []string
	add := func(path string, err error) error {
		if err == nil {
			files = append(files, path)
		}
		return err
	}

	b := res.Balance
	days := plots.Index(b.Days())
	if err := add(r.Lines("pool_temperatures", "Temperatures over the year", "Days", "T [C]",
		plots.Series{Name: "Air", X: days, Y: b.AirTemp},
		plots.Series{Name: "Pool", X: days, Y: b.PoolTemp},
	)); err != nil {
		return files, err
	}
	if err := add(r.Lines("pool_losses", "Annual heat loss balance", "Days", "q [kW]",
		plots.Series{Name: "Total", X: days, Y: plots.Scale(b.HeatLoss, 1e-3)},
		plots.Series{Name: "Evaporation", X: days, Y: plots.Scale(b.QEvap, 1e-3)},
		plots.Series{Name: "Water input", X: days, Y: plots.Scale(b.QWaterInput, 1e-3)},
		plots.Series{Name: "Top surface", X: days, Y: plots.Scale(b.QTop, 1e-3)},
		plots.Series{Name: "Walls", X: days, Y: plots.Scale(b.QWalls, 1e-3)},
		plots.Series{Name: "Radiation", X: days, Y: plots.Scale(b.QRadiation, 1e-3)},
	)); err != nil {
		return files, err
	}
	if err := add(r.Lines("exchangers", "Exchanger heat", "Days", "q [kW]",
		plots.Series{Name: "Water exchanger", X: days, Y: plots.Scale(res.QWater, 1e-3)},
		plots.Series{Name: "Vapor exchanger", X: days, Y: plots.Scale(res.QVapor, 1e-3)},
		plots.Series{Name: "Total exchanger", X: days, Y: plots.Scale(res.QTotal, 1e-3)},
	)); err != nil {
		return files, err
	}

	run := res.Geo
	if run == nil {
		return files, nil
	}
	steps := plots.Index(run.Steps())
	if err := add(r.Lines("fluid_temperatures", "Fluid temperatures", "Step", "T [K]",
		plots.Series{Name: "Outlet", X: steps, Y: run.Outlet},
		plots.Series{Name: "Inlet", X: steps, Y: run.Inlet},
	)); err != nil {
		return files, err
	}
	if err := add(r.Lines("heat_pump_work", "Heat pump work", "Step", "W [kW]",
		plots.Series{Name: "Work", X: steps, Y: plots.Scale(run.Work, 1e-3)},
		plots.Series{Name: "Delivered", X: steps, Y: plots.Scale(run.Delivered, 1e-3)},
	)); err != nil {
		return files, err
	}
	if err := add(r.Lines("heat_pump_cop", "Heat pump COP", "Step", "COP",
		plots.Series{Name: "COP", X: steps, Y: run.COP},
	)); err != nil {
		return files, err
	}

	_, nodes := run.Field.Dims()
	history := make([][]float64, nodes)
	for i := range history {
		history[i] = run.Node(i)
	}
	if err := add(r.Family("node_temperatures", "Node temperatures", "Step", "T [K]", steps, history)); err != nil {
		return files, err
	}

	every := run.Steps()/maxProfiles + 1
	var profiles [][]float64
	for i := 0; i < run.Steps(); i += every {
		profiles = append(profiles, run.Profile(i))
	}
	radius := make([]float64, nodes)
	for i := range radius {
		radius[i] = run.Grid.Radius(i)
	}
	if err := add(r.Family("profile_evolution", "Profile evolution", "Distance [m]", "T [K]", radius, profiles)); err != nil {
		return files, err
	}
	return files, nil
}
