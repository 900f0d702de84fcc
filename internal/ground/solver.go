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

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Solver advances the ground profile by one implicit time step. The
// coefficient matrix and its LU factorization are computed once.
type Solver struct {
	grid Grid
	a    *mat.Dense
	lu   mat.LU
}

func NewSolver(g Grid) (*Solver, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return newSolver(g, BuildCoefficients(g))
}

func newSolver(g Grid, a *mat.Dense) (*Solver, error) {
	s := &Solver{grid: g, a: a}
	s.lu.Factorize(a)
	if cond := s.lu.Cond(); math.IsInf(cond, 1) || math.IsNaN(cond) || cond > mat.ConditionTolerance {
		return nil, errors.Wrapf(ErrSingularMatrix, "condition number %g", cond)
	}
	return s, nil
}

func (s *Solver) Grid() Grid {
	return s.grid
}

// Coefficients exposes the matrix the solver factorized. Callers must not
// modify it.
func (s *Solver) Coefficients() mat.Matrix {
	return s.a
}

// WallSource converts a duct line flux (W/m, negative when heat is pulled
// out of the ground) into the volumetric source of the wall node.
func (s *Solver) WallSource(flux float64) float64 {
	return flux / (math.Pi * s.grid.DuctRadius * s.grid.Spacing)
}

// Step returns the next profile. prev is left untouched.
func (s *Solver) Step(prev []float64, flux float64) ([]float64, error) {
	n := s.grid.Nodes
	if len(prev) != n {
		return nil, errors.Errorf("profile has %d nodes, grid has %d", len(prev), n)
	}

	m := s.grid.Mass()
	b := mat.NewVecDense(n, nil)
	for i, t := range prev {
		b.SetVec(i, t*m)
	}
	b.SetVec(0, b.AtVec(0)+s.WallSource(flux))
	b.SetVec(n-1, s.grid.Temperature)

	var x mat.VecDense
	if err := s.lu.SolveVecTo(&x, false, b); err != nil {
		return nil, errors.Wrap(ErrSingularMatrix, err.Error())
	}

	next := make([]float64, n)
	for i := range next {
		next[i] = x.AtVec(i)
	}
	// Dirichlet node, pinned exactly rather than up to solver round-off.
	next[n-1] = s.grid.Temperature
	return next, nil
}
