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

package ground

import (
	"gonum.org/v1/gonum/mat"
)

// BuildCoefficients assembles the implicit conduction matrix. It depends on
// the grid only, so the same grid always yields the same matrix.
func BuildCoefficients(g Grid) *mat.Dense {
	n := g.Nodes
	a := mat.NewDense(n, n, nil)

	dr2 := g.Spacing * g.Spacing
	self := g.Mass() + 2*g.Conductivity/dr2
	for i := 1; i < n-1; i++ {
		r := g.Radius(i)
		a.Set(i, i, self)
		a.Set(i, i-1, -g.Conductivity*(r-g.Spacing/2)/(r*dr2))
		a.Set(i, i+1, -g.Conductivity*(r+g.Spacing/2)/(r*dr2))
	}

	// duct wall
	wall := 2 * g.Conductivity * (g.DuctRadius + g.Spacing/2) / (g.DuctRadius * dr2)
	a.Set(0, 0, g.Mass()+wall)
	a.Set(0, 1, -wall)

	// far field, T[N-1] = T0
	a.Set(n-1, n-1, 1)

	return a
}
