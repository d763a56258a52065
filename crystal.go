/*
 * crystal.go, part of gopore.
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

//Framework is a crystalline host: a fixed set of atoms in fractional
//coordinates wrapping one Box, the home unit cell. Atoms carry a type label
//(the key into a force field) and a point charge. A Framework is immutable
//for the duration of any energy evaluation; callers must ensure all
//fractional coordinates lie in [0,1) before evaluating.
type Framework struct {
	Name    string
	Box     *Box
	Labels  []string
	Xf      *mat.Dense //fractional coordinates, one row per atom
	Charges []float64
}

//NewFramework builds a Framework and fails fast on mismatched slice lengths
//or a coordinate matrix without 3 columns, rather than misbehaving later
//inside the energy loops.
func NewFramework(name string, box *Box, labels []string, xf *mat.Dense, charges []float64) (*Framework, error) {
	if box == nil {
		panic(ErrNilBox)
	}
	if labels == nil || xf == nil || charges == nil {
		panic(ErrNilAtoms)
	}
	r, c := xf.Dims()
	if c != 3 {
		return nil, newError("NewFramework", "coordinates have %d columns, want 3", c)
	}
	if len(labels) != r || len(charges) != r {
		return nil, newError("NewFramework",
			"%d atoms but %d labels and %d charges", r, len(labels), len(charges))
	}
	return &Framework{Name: name, Box: box, Labels: labels, Xf: xf, Charges: charges}, nil
}

//Len returns the number of atoms in the home unit cell.
func (F *Framework) Len() int {
	if F == nil {
		panic(ErrNilFramework)
	}
	r, _ := F.Xf.Dims()
	return r
}

//AtomXf returns the fractional coordinates of atom i. Panics if out of range.
func (F *Framework) AtomXf(i int) [3]float64 {
	if i < 0 || i >= F.Len() {
		panic(ErrAtomOutOfRange)
	}
	return [3]float64{F.Xf.At(i, 0), F.Xf.At(i, 1), F.Xf.At(i, 2)}
}

//Charged returns whether any framework atom carries a non-zero charge.
func (F *Framework) Charged() bool {
	for _, q := range F.Charges {
		if q != 0 {
			return true
		}
	}
	return false
}

//NetCharge returns the sum of the framework point charges. An Ewald summation
//over a non-neutral cell needs a background correction this library does not
//apply, so callers should check this is (numerically) zero.
func (F *Framework) NetCharge() float64 {
	var q float64
	for _, v := range F.Charges {
		q += v
	}
	return q
}

//CSSRRead reads a crystal structure in the CSSR format:
//line 1, the lattice constants a, b, c in Angstrom; line 2, the angles alpha,
//beta, gamma in degrees (trailing tokens such as the space group are
//ignored); line 3, the number of atoms; line 4, a title; then one line per
//atom with the atom index, a label, the three fractional coordinates, and
//the partial charge as the last field. The atom-type label is the given
//label with any trailing digits removed, so "Zn3" becomes type "Zn".
//Fractional coordinates are wrapped into [0,1).
func CSSRRead(filename string) (*Framework, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, newError("CSSRRead", "failed to open %s: %v", filename, err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	lat, err := cssrFloats(scanner, 3, filename)
	if err != nil {
		return nil, errDecorate(err, "CSSRRead")
	}
	ang, err := cssrFloats(scanner, 3, filename)
	if err != nil {
		return nil, errDecorate(err, "CSSRRead")
	}
	box, err := NewBox(lat[0], lat[1], lat[2], ang[0]*Deg2Rad, ang[1]*Deg2Rad, ang[2]*Deg2Rad)
	if err != nil {
		return nil, errDecorate(err, "CSSRRead")
	}
	count, err := cssrFloats(scanner, 1, filename)
	if err != nil {
		return nil, errDecorate(err, "CSSRRead")
	}
	natoms := int(count[0])
	if natoms <= 0 {
		return nil, newError("CSSRRead", "%s declares %d atoms", filename, natoms)
	}
	if !scanner.Scan() { //title line
		return nil, newError("CSSRRead", "%s ends before the title line", filename)
	}
	name := strings.TrimSpace(scanner.Text())
	labels := make([]string, natoms)
	charges := make([]float64, natoms)
	coords := make([]float64, 0, 3*natoms)
	for i := 0; i < natoms; i++ {
		if !scanner.Scan() {
			return nil, newError("CSSRRead", "%s ends at atom %d of %d", filename, i+1, natoms)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 6 {
			return nil, newError("CSSRRead", "%s: malformed atom line %q", filename, scanner.Text())
		}
		labels[i] = strings.TrimRight(fields[1], "0123456789")
		var xf [3]float64
		for j := 0; j < 3; j++ {
			xf[j], err = strconv.ParseFloat(fields[2+j], 64)
			if err != nil {
				return nil, newError("CSSRRead", "%s: bad coordinate in %q", filename, scanner.Text())
			}
		}
		xf = box.Wrap(xf)
		coords = append(coords, xf[0], xf[1], xf[2])
		charges[i], err = strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			return nil, newError("CSSRRead", "%s: bad charge in %q", filename, scanner.Text())
		}
	}
	fw, err := NewFramework(name, box, labels, mat.NewDense(natoms, 3, coords), charges)
	if err != nil {
		return nil, errDecorate(err, "CSSRRead")
	}
	return fw, nil
}

//cssrFloats scans the next non-empty line and parses its first n fields
//that look like numbers, skipping leading non-numeric tokens.
func cssrFloats(scanner *bufio.Scanner, n int, filename string) ([]float64, error) {
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		got := make([]float64, 0, n)
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				continue
			}
			got = append(got, v)
			if len(got) == n {
				return got, nil
			}
		}
		return nil, newError("cssrFloats", "%s: wanted %d numbers in %q", filename, n, scanner.Text())
	}
	return nil, newError("cssrFloats", "%s: unexpected end of file", filename)
}
