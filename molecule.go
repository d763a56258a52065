/*
 * molecule.go, part of gopore.
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
	"bufio"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Molecule is a guest species: atoms in Cartesian coordinates with type
//labels, plus a set of point charges with their own positions. The charges
//need not coincide one-to-one with the atoms (charge sites may sit on bonds
//or lone pairs, or be absent for an apolar guest). The owner may move a
//Molecule between energy evaluations; every evaluation treats it as a
//read-only snapshot.
type Molecule struct {
	Name   string
	Labels []string
	X      *mat.Dense //Cartesian coordinates, one row per atom, Angstrom
	Q      []float64  //point-charge magnitudes, electron-charge units
	QX     *mat.Dense //point-charge positions, one row per charge; nil iff Q is empty
}

//NewMolecule builds a Molecule, failing fast on inconsistent dimensions.
//q and qx may both be nil for an apolar guest.
func NewMolecule(name string, labels []string, x *mat.Dense, q []float64, qx *mat.Dense) (*Molecule, error) {
	if labels == nil || x == nil {
		panic(ErrNilAtoms)
	}
	r, c := x.Dims()
	if c != 3 {
		return nil, newError("NewMolecule", "coordinates have %d columns, want 3", c)
	}
	if len(labels) != r {
		return nil, newError("NewMolecule", "%d atoms but %d labels", r, len(labels))
	}
	if (q == nil) != (qx == nil) {
		return nil, newError("NewMolecule", "charge magnitudes and positions must be given together")
	}
	if q != nil {
		qr, qc := qx.Dims()
		if qc != 3 {
			return nil, newError("NewMolecule", "charge positions have %d columns, want 3", qc)
		}
		if qr != len(q) {
			return nil, newError("NewMolecule", "%d charges but %d charge positions", len(q), qr)
		}
	}
	return &Molecule{Name: name, Labels: labels, X: x, Q: q, QX: qx}, nil
}

//Len returns the number of atoms.
func (M *Molecule) Len() int {
	if M == nil {
		panic(ErrNilMolecule)
	}
	r, _ := M.X.Dims()
	return r
}

//AtomX returns the Cartesian coordinates of atom i. Panics if out of range.
func (M *Molecule) AtomX(i int) [3]float64 {
	if i < 0 || i >= M.Len() {
		panic(ErrAtomOutOfRange)
	}
	return [3]float64{M.X.At(i, 0), M.X.At(i, 1), M.X.At(i, 2)}
}

//ChargeX returns the position of point charge i. Panics if out of range.
func (M *Molecule) ChargeX(i int) [3]float64 {
	if M.QX == nil || i < 0 || i >= len(M.Q) {
		panic(ErrAtomOutOfRange)
	}
	return [3]float64{M.QX.At(i, 0), M.QX.At(i, 1), M.QX.At(i, 2)}
}

//Charged returns whether the molecule carries any non-zero point charge.
func (M *Molecule) Charged() bool {
	for _, q := range M.Q {
		if q != 0 {
			return true
		}
	}
	return false
}

//Centroid returns the unweighted mean of the atom positions.
func (M *Molecule) Centroid() [3]float64 {
	var c [3]float64
	n := M.Len()
	for i := 0; i < n; i++ {
		x := M.AtomX(i)
		for j := 0; j < 3; j++ {
			c[j] += x[j]
		}
	}
	for j := 0; j < 3; j++ {
		c[j] /= float64(n)
	}
	return c
}

//Translate displaces every atom and every point charge by v.
func (M *Molecule) Translate(v [3]float64) {
	translateRows(M.X, v)
	if M.QX != nil {
		translateRows(M.QX, v)
	}
}

//TranslateTo rigidly moves the molecule so its centroid lands on x.
func (M *Molecule) TranslateTo(x [3]float64) {
	c := M.Centroid()
	M.Translate([3]float64{x[0] - c[0], x[1] - c[1], x[2] - c[2]})
}

//Copy returns a deep copy, an independent snapshot of the current geometry.
func (M *Molecule) Copy() *Molecule {
	if M == nil {
		panic(ErrNilMolecule)
	}
	labels := make([]string, len(M.Labels))
	copy(labels, M.Labels)
	var q []float64
	var qx *mat.Dense
	if M.Q != nil {
		q = make([]float64, len(M.Q))
		copy(q, M.Q)
		qx = mat.DenseCopyOf(M.QX)
	}
	return &Molecule{
		Name:   M.Name,
		Labels: labels,
		X:      mat.DenseCopyOf(M.X),
		Q:      q,
		QX:     qx,
	}
}

func translateRows(m *mat.Dense, v [3]float64) {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, m.At(i, j)+v[j])
		}
	}
}

//XYZMolRead reads a guest molecule from an XYZ file: the atom count, a
//comment line, then one line per atom with the element label, the Cartesian
//coordinates in Angstrom and, optionally, a partial charge as a fifth field.
//Atoms with a non-zero charge field become point charges at the atom
//position; if no line carries a charge the molecule is apolar.
func XYZMolRead(filename string) (*Molecule, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, newError("XYZMolRead", "failed to open %s: %v", filename, err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, newError("XYZMolRead", "%s is empty", filename)
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || natoms <= 0 {
		return nil, newError("XYZMolRead", "%s: bad atom count %q", filename, scanner.Text())
	}
	if !scanner.Scan() {
		return nil, newError("XYZMolRead", "%s ends before the comment line", filename)
	}
	name := strings.TrimSpace(scanner.Text())
	labels := make([]string, natoms)
	coords := make([]float64, 0, 3*natoms)
	var q []float64
	var qcoords []float64
	for i := 0; i < natoms; i++ {
		if !scanner.Scan() {
			return nil, newError("XYZMolRead", "%s ends at atom %d of %d", filename, i+1, natoms)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return nil, newError("XYZMolRead", "%s: malformed atom line %q", filename, scanner.Text())
		}
		labels[i] = fields[0]
		var x [3]float64
		for j := 0; j < 3; j++ {
			x[j], err = strconv.ParseFloat(fields[1+j], 64)
			if err != nil {
				return nil, newError("XYZMolRead", "%s: bad coordinate in %q", filename, scanner.Text())
			}
		}
		coords = append(coords, x[0], x[1], x[2])
		if len(fields) >= 5 {
			charge, err := strconv.ParseFloat(fields[4], 64)
			if err != nil {
				return nil, newError("XYZMolRead", "%s: bad charge in %q", filename, scanner.Text())
			}
			if charge != 0 {
				q = append(q, charge)
				qcoords = append(qcoords, x[0], x[1], x[2])
			}
		}
	}
	var qx *mat.Dense
	if q != nil {
		qx = mat.NewDense(len(q), 3, qcoords)
	}
	mol, err := NewMolecule(name, labels, mat.NewDense(natoms, 3, coords), q, qx)
	if err != nil {
		return nil, errDecorate(err, "XYZMolRead")
	}
	return mol, nil
}
