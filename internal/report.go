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
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/antst/geoheat/internal/config"
	"github.com/antst/geoheat/internal/heat_pump"
	"github.com/antst/geoheat/internal/pool"
)

const banner = "=================================================="

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n %s\n%s\n", banner, title, banner)
}

// printParameters is the parameter block of a geothermal run.
func printParameters(w io.Writer, cfg *config.Config, loop heat_pump.Loop) {
	g := cfg.Geothermy
	printHeader(w, "SIMULATION PARAMETERS")
	t := newTable(w)
	fmt.Fprintf(t, "Simulation time\t%d days\n", cfg.Days())
	fmt.Fprintf(t, "Time step\t%g days/step\n", g.StepDays)
	fmt.Fprintf(t, "Simulation distance\t%g m\n", g.Distance)
	fmt.Fprintf(t, "Distance step\t%g m/step (%d nodes)\n", g.DistanceStep, g.Nodes())
	fmt.Fprintf(t, "Well depth\t%g m\n", g.Wells.Depth)
	fmt.Fprintf(t, "Number of wells\t%d\n", g.Wells.Count)
	fmt.Fprintf(t, "Well resolution\t%g m\n", g.Wells.DepthStep)
	fmt.Fprintf(t, "Pipe\t%s, %g/%g m\n", g.Pipe.Material, g.Pipe.InnerDiameter, g.Pipe.OuterDiameter)
	fmt.Fprintf(t, "Fluid\t%s\n", g.Fluid.Name)
	fmt.Fprintf(t, "Fluid velocity\t%g m/s\n", g.Fluid.Velocity)
	fmt.Fprintf(t, "Fluid density\t%g kg/m3\n", g.Fluid.Density)
	fmt.Fprintf(t, "Fluid specific heat\t%g J/(kg K)\n", g.Fluid.SpecificHeat)
	fmt.Fprintf(t, "Fluid convection\t%g W/(m2 K)\n", g.Fluid.Convection)
	fmt.Fprintf(t, "Mass flow per well\t%.4f kg/s\n", loop.WellMassFlow())
	fmt.Fprintf(t, "Total mass flow\t%.4f kg/s\n", loop.MassFlow())
	fmt.Fprintf(t, "Duct lineic resistance\t%.4f K m/W\n", loop.Resistance())
	fmt.Fprintf(t, "Floor\t%g K (%s)\n", g.FloorTemperature, g.FloorPolicy)
	fmt.Fprintf(t, "Summer off\t%v\n", *cfg.Pool.SummerOff)
	t.Flush()
}

func printGeoRun(w io.Writer, run *GeoRun) {
	printHeader(w, "SIMULATION RESULTS")
	t := newTable(w)
	fmt.Fprintf(t, "Lowest fluid outlet\t%.3f K\n", run.MinOutlet())
	fmt.Fprintf(t, "Lowest fluid inlet\t%.3f K\n", run.MinInlet())
	fmt.Fprintf(t, "Lowest duct wall\t%.3f K\n", run.MinWall())
	fmt.Fprintf(t, "Clamped steps\t%d of %d\n", run.ClampedSteps(), run.Steps())
	fmt.Fprintf(t, "Compressor energy\t%.1f kWh\n", run.WorkWh()/1000)
	t.Flush()
}

func printPool(w io.Writer, b *pool.Balance) {
	printHeader(w, "POOL HEAT LOSS")
	fmt.Fprintf(w, "Summer pool for %d days a year\n", len(b.SummerDays()))
	t := newTable(w)
	for _, c := range b.Annual() {
		fmt.Fprintf(t, "%s\t%.1f kWh\t(%.1f%%)\n", c.Name, c.KWh, c.Share)
	}
	t.Flush()
}

func printCosts(w io.Writer, res *HeaterResult) {
	c := res.Costs
	printHeader(w, "COSTS")
	t := newTable(w)
	fmt.Fprintf(t, "Insulation\t%.2f $\n", c.Insulation)
	fmt.Fprintf(t, "Night cover\t%.2f $\n", c.Cover)
	fmt.Fprintf(t, "Water exchanger\t%.1f m2\t%.2f $\n", res.WaterArea, c.WaterExchanger)
	fmt.Fprintf(t, "Vapor exchanger\t%.2f m2\t%.2f + %.2f = %.2f $\n", res.VaporArea, c.VaporStock, c.VaporRun, c.Vapor())
	fmt.Fprintf(t, "Heat pump\t\t%.2f $\n", c.HeatPump)
	fmt.Fprintf(t, "Geothermal power\t\t%.2f $\n", c.Electricity)
	fmt.Fprintf(t, "Wells\t\t%.2f $\n", c.Wells)
	fmt.Fprintf(t, "TOTAL\t\t%.2f $\n", c.Total)
	t.Flush()
}

func printRankings(w io.Writer, rankings []Ranking, top int) {
	printHeader(w, "OPTIMIZER RANKING")
	t := newTable(w)
	fmt.Fprintln(t, "#\tINS\tWATER A\tVAPOR A\tFLOOR\tINS $\tXWATER $\tXVAPOR $\tWELLS NxL\tWELLS $\tPAC $\tWPAC $\tTOTAL $")
	for i, r := range topRankings(rankings, top) {
		c := r.Costs
		fmt.Fprintf(t, "%d\t%.3f\t%.1f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%dx%g\t%.2f\t%.2f\t%.2f\t%.2f\n",
			i+1, r.Insulation, r.ExchangerArea, r.VaporArea, r.Floor,
			c.Insulation, c.WaterExchanger, c.Vapor(), r.Wells, r.Depth,
			c.Wells, c.HeatPump, c.Electricity, c.Total)
	}
	t.Flush()
}
