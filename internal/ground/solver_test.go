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
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const day = 24 * 3600.0

func testGrid(nodes int, dt float64) Grid {
	return Grid{
		Nodes:        nodes,
		Spacing:      2,
		TimeStep:     dt,
		Conductivity: 2.5,
		Diffusivity:  2e-6,
		DuctRadius:   0.15,
		Temperature:  283,
	}
}

func TestBuildCoefficientsIsDeterministic(t *testing.T) {
	g := testGrid(50, day)
	assert.True(t, mat.Equal(BuildCoefficients(g), BuildCoefficients(g)))

	s, err := NewSolver(g)
	require.NoError(t, err)
	assert.True(t, mat.Equal(BuildCoefficients(g), s.Coefficients()))
}

func TestBuildCoefficientsStructure(t *testing.T) {
	g := testGrid(5, day)
	a := BuildCoefficients(g)

	r, c := a.Dims()
	require.Equal(t, 5, r)
	require.Equal(t, 5, c)

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if j < i-1 || j > i+1 {
				assert.Zero(t, a.At(i, j), "a[%d][%d] outside the band", i, j)
			}
		}
	}

	// conduction terms cancel on a uniform profile
	for i := 0; i < r-1; i++ {
		assert.InDelta(t, g.Mass(), mat.Sum(a.RowView(i)), 1e-9, "row %d", i)
	}
	assert.Equal(t, []float64{0, 0, 0, 0, 1}, mat.Row(nil, 4, a))

	// the outer neighbour weighs more than the inner one
	for i := 1; i < r-1; i++ {
		assert.Less(t, a.At(i, i+1), a.At(i, i-1))
	}
	assert.Less(t, a.At(0, 1), 0.0)
}

func TestZeroForcingKeepsSteadyState(t *testing.T) {
	s, err := NewSolver(testGrid(5, day))
	require.NoError(t, err)

	profile := s.Grid().Uniform()
	for step := 0; step < 100; step++ {
		profile, err = s.Step(profile, 0)
		require.NoError(t, err)
		for i, v := range profile {
			require.InDelta(t, 283.0, v, 1e-9, "step %d node %d", step, i)
		}
	}
}

func TestExtractionCoolsWallAndPinsFarField(t *testing.T) {
	s, err := NewSolver(testGrid(50, day))
	require.NoError(t, err)

	profile := s.Grid().Uniform()
	wall := profile[0]
	for step := 0; step < 365; step++ {
		profile, err = s.Step(profile, -20)
		require.NoError(t, err)
		require.Equal(t, 283.0, profile[len(profile)-1])
		require.LessOrEqual(t, profile[0], wall+1e-12)
		wall = profile[0]
	}
	assert.Less(t, profile[0], 283.0-0.5)
	for i := 1; i < len(profile); i++ {
		assert.LessOrEqual(t, profile[i-1], profile[i]+1e-9, "profile must rise towards the far field")
	}
}

func TestStepLeavesPreviousProfile(t *testing.T) {
	s, err := NewSolver(testGrid(10, day))
	require.NoError(t, err)

	prev := s.Grid().Uniform()
	_, err = s.Step(prev, -100)
	require.NoError(t, err)
	assert.Equal(t, s.Grid().Uniform(), prev)

	_, err = s.Step(prev[:3], 0)
	assert.Error(t, err)
}

func TestInvalidGrid(t *testing.T) {
	cases := map[string]func(g *Grid){
		"nodes":        func(g *Grid) { g.Nodes = 2 },
		"spacing":      func(g *Grid) { g.Spacing = 0 },
		"time step":    func(g *Grid) { g.TimeStep = -1 },
		"conductivity": func(g *Grid) { g.Conductivity = 0 },
		"diffusivity":  func(g *Grid) { g.Diffusivity = 0 },
		"duct":         func(g *Grid) { g.DuctRadius = 0 },
		"temperature":  func(g *Grid) { g.Temperature = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			g := testGrid(5, day)
			mutate(&g)
			_, err := NewSolver(g)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidGrid))
		})
	}
}

func TestSingularMatrixIsFatal(t *testing.T) {
	_, err := newSolver(testGrid(3, day), mat.NewDense(3, 3, nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSingularMatrix))
}

func TestTimeStepRefinementConverges(t *testing.T) {
	const horizon = 20 * day
	wallAt := func(dt float64) float64 {
		s, err := NewSolver(testGrid(50, dt))
		require.NoError(t, err)
		profile := s.Grid().Uniform()
		for step := 0; step < int(math.Round(horizon/dt)); step++ {
			profile, err = s.Step(profile, -20)
			require.NoError(t, err)
		}
		return profile[0]
	}

	coarse, medium, fine := wallAt(day), wallAt(day/2), wallAt(day/4)
	drop := 283 - fine
	require.Greater(t, drop, 0.1)

	e1, e2 := math.Abs(coarse-medium), math.Abs(medium-fine)
	assert.Less(t, e2, e1)
	assert.Less(t, e2, 0.05*drop)
}
