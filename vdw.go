/*
 * vdw.go, part of gopore.
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

import "math"

//LennardJones returns the 12-6 pair energy, in Kelvin, for a squared
//interatomic distance r2, a squared diameter sigma2 (both Angstrom^2) and a
//well depth epsilon (Kelvin). Working with squared distances avoids a square
//root per pair: the energy is 4*eps*(x^2 - x) with x = (sigma2/r2)^3.
func LennardJones(r2, sigma2, epsilon float64) float64 {
	ratio := sigma2 / r2
	x := ratio * ratio * ratio
	return 4 * epsilon * (x*x - x)
}

//VdWEnergy sums the Lennard-Jones interaction of a guest molecule with every
//framework atom over all rep.X x rep.Y x rep.Z replications of the home unit
//cell, in Kelvin. The molecule is assumed to reside in the home cell; the
//framework images are enumerated outward, and each pair distance is corrected
//to the nearest periodic image of the whole supercell. Pairs beyond the force
//field cutoff contribute nothing.
//
//If any pair comes closer than the overlap threshold, the configuration is
//physically forbidden: the summation aborts immediately and returns +Inf.
//That sentinel is a defined result, not an error; a Monte Carlo caller just
//rejects the move. An error is returned only when the force field lacks
//parameters for some guest/host pair, which is detected before any energy
//work is done.
//
//The caller is responsible for rep satisfying the minimum-image precondition
//for the cutoff (see Replication.Check); a too-small supercell silently
//undercounts interactions.
func VdWEnergy(fw *Framework, mol *Molecule, ff *LJForceField, rep Replication) (float64, error) {
	if fw == nil {
		panic(ErrNilFramework)
	}
	if mol == nil {
		panic(ErrNilMolecule)
	}
	rep.mustBePositive()
	if err := ff.Covers(mol.Labels, fw.Labels); err != nil {
		return 0, errDecorate(err, "VdWEnergy")
	}
	nmol := mol.Len()
	nfw := fw.Len()
	//hoist the pair lookups out of the replication loops
	sig2 := make([]float64, nmol*nfw)
	eps := make([]float64, nmol*nfw)
	for i := 0; i < nmol; i++ {
		for j := 0; j < nfw; j++ {
			s2, e, _ := ff.Pair(mol.Labels[i], fw.Labels[j])
			sig2[i*nfw+j] = s2
			eps[i*nfw+j] = e
		}
	}
	molf := make([][3]float64, nmol)
	for i := 0; i < nmol; i++ {
		molf[i] = fw.Box.Fractional(mol.AtomX(i))
	}
	ftoc := fw.Box.FToC()
	var energy float64
	for ra := 0; ra < rep.X; ra++ {
		for rb := 0; rb < rep.Y; rb++ {
			for rc := 0; rc < rep.Z; rc++ {
				for i := 0; i < nmol; i++ {
					for j := 0; j < nfw; j++ {
						af := fw.AtomXf(j)
						dxf := [3]float64{
							molf[i][0] - (af[0] + float64(ra)),
							molf[i][1] - (af[1] + float64(rb)),
							molf[i][2] - (af[2] + float64(rc)),
						}
						NearestImage(&dxf, rep)
						dx := mul3(ftoc, dxf)
						r2 := dot3(dx, dx)
						if r2 < ff.OverlapTol2 {
							return math.Inf(1), nil
						}
						if r2 < ff.Cutoff2 {
							energy += LennardJones(r2, sig2[i*nfw+j], eps[i*nfw+j])
						}
					}
				}
			}
		}
	}
	return energy, nil
}
