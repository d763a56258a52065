/*
 * box.go, part of gopore.
 *
 * Copyright 2024 Rodrigo Carvajal <rcarvajal{at}uchileDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package pore

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

//Deg2Rad converts degrees to radians when used as a factor.
const Deg2Rad = math.Pi / 180.0

//appzero is the absolute value below which a float is considered zero.
const appzero float64 = 0.0000000001

//Box is the unit cell of a periodic system: the lattice constants plus the
//transforms between fractional and Cartesian coordinates, the cell volume and
//the reciprocal lattice. A Box is immutable once constructed and may be shared
//by any number of concurrent evaluations.
type Box struct {
	a, b, c            float64 //lattice constants, Angstrom
	alpha, beta, gamma float64 //lattice angles, radians
	ftoc, ctof         *mat.Dense
	reciprocal         *mat.Dense //2pi * inv(ftoc)^T
	volume             float64
}

//NewBox builds a Box from the lattice constants a, b, c (Angstrom) and angles
//alpha, beta, gamma (radians). It fails if any constant is non-positive, any
//angle lies outside (0,pi), or the resulting cell volume is not positive.
func NewBox(a, b, c, alpha, beta, gamma float64) (*Box, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, newError("NewBox", "non-positive lattice constant: %v %v %v", a, b, c)
	}
	for _, ang := range []float64{alpha, beta, gamma} {
		if ang <= 0 || ang >= math.Pi {
			return nil, newError("NewBox", "lattice angle %v outside (0,pi)", ang)
		}
	}
	ca, cb, cg := math.Cos(alpha), math.Cos(beta), math.Cos(gamma)
	sg := math.Sin(gamma)
	v2 := 1 - ca*ca - cb*cb - cg*cg + 2*ca*cb*cg
	if v2 <= appzero {
		return nil, newError("NewBox", "degenerate cell: angles %v %v %v", alpha, beta, gamma)
	}
	v := math.Sqrt(v2)
	ftoc := mat.NewDense(3, 3, []float64{
		a, b * cg, c * cb,
		0, b * sg, c * (ca - cb*cg) / sg,
		0, 0, c * v / sg,
	})
	B, err := NewBoxFromMatrix(ftoc)
	if err != nil {
		return nil, errDecorate(err, "NewBox")
	}
	//keep the caller's values rather than the ones recovered from the matrix
	B.a, B.b, B.c = a, b, c
	B.alpha, B.beta, B.gamma = alpha, beta, gamma
	return B, nil
}

//NewBoxFromMatrix builds a Box from an explicit fractional-to-Cartesian
//matrix, whose columns are the lattice vectors. The lattice constants and
//angles are recovered from the columns. It fails if the matrix is not 3x3,
//is not invertible, or has a non-positive determinant (left-handed or
//degenerate lattice).
func NewBoxFromMatrix(ftoc *mat.Dense) (*Box, error) {
	r, c := ftoc.Dims()
	if r != 3 || c != 3 {
		return nil, newError("NewBoxFromMatrix", "expected a 3x3 matrix, got %dx%d", r, c)
	}
	vol := mat.Det(ftoc)
	if vol <= appzero {
		return nil, newError("NewBoxFromMatrix", "cell volume %v is not positive", vol)
	}
	ctof := mat.NewDense(3, 3, nil)
	if err := ctof.Inverse(ftoc); err != nil {
		return nil, newError("NewBoxFromMatrix", "singular fractional-to-Cartesian matrix: %v", err)
	}
	//reciprocal lattice: 2pi * transpose of the inverse
	rec := mat.NewDense(3, 3, nil)
	rec.Scale(2*math.Pi, ctof.T())
	B := &Box{
		ftoc:       mat.DenseCopyOf(ftoc),
		ctof:       ctof,
		reciprocal: rec,
		volume:     vol,
	}
	av := colVec(B.ftoc, 0)
	bv := colVec(B.ftoc, 1)
	cv := colVec(B.ftoc, 2)
	B.a, B.b, B.c = norm3(av), norm3(bv), norm3(cv)
	B.alpha = math.Acos(dot3(bv, cv) / (B.b * B.c))
	B.beta = math.Acos(dot3(av, cv) / (B.a * B.c))
	B.gamma = math.Acos(dot3(av, bv) / (B.a * B.b))
	return B, nil
}

//Lattice returns the lattice constants (Angstrom) and angles (radians).
func (B *Box) Lattice() (a, b, c, alpha, beta, gamma float64) {
	return B.a, B.b, B.c, B.alpha, B.beta, B.gamma
}

//Volume returns the cell volume in cubic Angstrom.
func (B *Box) Volume() float64 { return B.volume }

//FToC returns the fractional-to-Cartesian transform. The returned matrix is
//shared, not copied; treat it as read-only.
func (B *Box) FToC() *mat.Dense { return B.ftoc }

//CToF returns the Cartesian-to-fractional transform, the exact inverse of
//FToC. Shared, read-only.
func (B *Box) CToF() *mat.Dense { return B.ctof }

//ReciprocalLattice returns the reciprocal-lattice matrix, 2pi times the
//transposed inverse of FToC. Shared, read-only.
func (B *Box) ReciprocalLattice() *mat.Dense { return B.reciprocal }

//Cartesian transforms a fractional coordinate into Cartesian space.
func (B *Box) Cartesian(xf [3]float64) [3]float64 {
	return mul3(B.ftoc, xf)
}

//Fractional transforms a Cartesian coordinate into fractional space. The
//result is not wrapped into the home cell; see Wrap.
func (B *Box) Fractional(x [3]float64) [3]float64 {
	return mul3(B.ctof, x)
}

//Wrap maps each fractional component into [0,1).
func (B *Box) Wrap(xf [3]float64) [3]float64 {
	for i := 0; i < 3; i++ {
		xf[i] = xf[i] - math.Floor(xf[i])
	}
	return xf
}

//Replicate returns the Box of the supercell formed by tiling the cell
//rep.X x rep.Y x rep.Z times. Panics if rep is not positive.
func (B *Box) Replicate(rep Replication) *Box {
	if B == nil {
		panic(ErrNilBox)
	}
	rep.mustBePositive()
	ftoc := mat.NewDense(3, 3, nil)
	ftoc.Copy(B.ftoc)
	f := [3]float64{float64(rep.X), float64(rep.Y), float64(rep.Z)}
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			ftoc.Set(i, j, ftoc.At(i, j)*f[j])
		}
	}
	nb, err := NewBoxFromMatrix(ftoc)
	if err != nil {
		panic(PanicMsg("gopore: replicating a valid Box cannot fail: " + err.Error()))
	}
	return nb
}

//mul3 multiplies the 3x3 matrix m by the column vector v. The energy loops
//call this on every pair, so it avoids going through mat.Vec operations.
func mul3(m *mat.Dense, v [3]float64) [3]float64 {
	return [3]float64{
		m.At(0, 0)*v[0] + m.At(0, 1)*v[1] + m.At(0, 2)*v[2],
		m.At(1, 0)*v[0] + m.At(1, 1)*v[1] + m.At(1, 2)*v[2],
		m.At(2, 0)*v[0] + m.At(2, 1)*v[1] + m.At(2, 2)*v[2],
	}
}

func colVec(m *mat.Dense, j int) [3]float64 {
	return [3]float64{m.At(0, j), m.At(1, j), m.At(2, j)}
}

func dot3(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func norm3(a [3]float64) float64 {
	return math.Sqrt(dot3(a, a))
}
