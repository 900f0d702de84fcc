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

package thermo_model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaturatedVapor(t *testing.T) {
	assert.InDelta(t, 3.9866e-3, SaturatedVapor(0), 1e-15)
	for _, temp := range []float64{-20, 7, 25, 36} {
		want := 1.9747e-5*temp*temp + 1.3257e-4*temp + 3.9866e-3
		assert.InDelta(t, want, SaturatedVapor(temp), 1e-15, "T=%v", temp)
	}
	assert.Greater(t, SaturatedVapor(36), SaturatedVapor(25))
}

func TestShapeFactor(t *testing.T) {
	assert.InDelta(t, 21.9*math.Pow(15, -0.38), ShapeFactor(0.15, 0.020), 1e-12)
	assert.InDelta(t, 21.9, ShapeFactor(0.01, 0.020), 1e-12)
}
