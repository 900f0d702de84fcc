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
	"math"
)

// stepCount is the number of solver steps covering days.
func stepCount(days int, stepDays float64) int {
	n := int(math.Round(float64(days) / stepDays))
	if n < 1 {
		n = 1
	}
	return n
}

// stepAverage averages a daily signal over consecutive windows of stepDays
// days, weighting partially covered days by their overlap. Windows running
// past the end of the signal wrap around to its start.
func stepAverage(daily []float64, stepDays float64, steps int) []float64 {
	out := make([]float64, steps)
	n := len(daily)
	if n == 0 {
		return out
	}
	for i := range out {
		lo, hi := float64(i)*stepDays, float64(i+1)*stepDays
		var sum float64
		for d := int(math.Floor(lo)); float64(d) < hi; d++ {
			overlap := math.Min(hi, float64(d+1)) - math.Max(lo, float64(d))
			if overlap <= 0 {
				continue
			}
			sum += daily[d%n] * overlap
		}
		out[i] = sum / stepDays
	}
	return out
}

// expandDaily spreads a per step series back onto days. Each day takes the
// value of the step containing its midpoint.
func expandDaily(perStep []float64, stepDays float64, days int) []float64 {
	out := make([]float64, days)
	if len(perStep) == 0 {
		return out
	}
	last := len(perStep) - 1
	for d := range out {
		i := int((float64(d) + 0.5) / stepDays)
		if i > last {
			i = last
		}
		out[d] = perStep[i]
	}
	return out
}
