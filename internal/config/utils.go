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

import "fmt"

func GetPTR[T any](v T) *T {
	return &v
}

func fillFloat(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

func positive(name string, v float64) error {
	if v <= 0 {
		return fmt.Errorf("%s must be positive, got %v", name, v)
	}
	return nil
}

func within(name string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s must be within [%v, %v], got %v", name, lo, hi, v)
	}
	return nil
}
