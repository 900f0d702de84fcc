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

// Package thermo_model holds the empirical correlations of the pool and
// borehole models.
package thermo_model

import "math"

const (
	maxPower = 2
	nelCoeff = 3

	shapeCoeff    = 21.9
	shapeExponent = -0.38
)

var (
	// saturated vapor density, kg/m3, against temperature in C
	mSatCoeff = [nelCoeff]float64{1.9747e-05, 1.3257e-04, 3.9866e-03}
	mSatTerms = [nelCoeff]int{2, 1, 0}
)

func SaturatedVapor(temp float64) float64 {
	var tPwr [maxPower + 1]float64
	tPwr[0] = 1.0
	for i := 1; i <= maxPower; i++ {
		tPwr[i] = tPwr[i-1] * temp
	}

	rho := 0.0
	for i := 0; i < nelCoeff; i++ {
		rho += mSatCoeff[i] * tPwr[mSatTerms[i]]
	}
	return rho
}

// ShapeFactor of a U-pipe of outer diameter pipeOuter grouted in a duct of
// radius ductRadius.
func ShapeFactor(ductRadius, pipeOuter float64) float64 {
	return shapeCoeff * math.Pow(2*ductRadius/pipeOuter, shapeExponent)
}
