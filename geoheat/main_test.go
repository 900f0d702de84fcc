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

package main

import (
	"context"
	"testing"

	"github.com/antst/geoheat/internal/config"
	"github.com/antst/geoheat/internal/ground"
	"github.com/antst/geoheat/internal/heat_pump"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, 0},
		{"config", errors.Wrap(config.ErrInvalidConfig, "years must be >= 1"), 2},
		{"grid", errors.WithMessage(errors.Wrap(ground.ErrInvalidGrid, "need at least 3 nodes"), "NewGeoSystem"), 2},
		{"singular", errors.WithMessagef(ground.ErrSingularMatrix, "system %d/%d", 1, 4), 2},
		{"floor", errors.WithMessagef(
			errors.WithMessage(errors.Wrap(heat_pump.ErrInvalidFloor, "floor 260.00 K"), "NewGeoSystem"),
			"system %d/%d", 1, 1,
		), 2},
		{"cancelled", errors.Wrap(context.Canceled, "geo run stopped at step 3"), 1},
		{"other", errors.New("disk full"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
