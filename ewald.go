/*
 * ewald.go, part of gopore.
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

//Epsilon0 is the vacuum permittivity in the unit system of this library:
//electron-charge squared per (Angstrom Kelvin). Dividing charge products by
//it (and the geometry factors) yields energies directly in Kelvin.
const Epsilon0 = 4.7622424954949676e-7

//DefaultMinDist2 is the default squared minimum distance (Angstrom^2) allowed
//between a potential evaluation point and a point charge in the short-range
//Ewald term. Below it the potential is +Inf, the same sentinel the
//Lennard-Jones path uses for overlaps, instead of an unguarded division by a
//vanishing distance.
const DefaultMinDist2 = 1.0e-4

//KVector is one precomputed reciprocal-space term of the long-range Ewald
//sum: a Cartesian reciprocal-lattice vector and its scalar weight.
type KVector struct {
	K      [3]float64
	Weight float64
}

//BuildKVectors enumerates the reciprocal-lattice vectors of simBox with
//integer coefficients ka in [0,krep.X], kb in [-krep.Y,krep.Y] and kc in
//[-krep.Z,krep.Z], and returns them with their Ewald weights
//2*exp(-|k|^2/(4 alpha^2))/|k|^2/Epsilon0. The zero vector is excluded, and
//of every symmetric pair {k,-k} only one representative is kept (the cosine
//in the long-range sum is even, and the factor 2 in the weight compensates
//for the missing half): triples with ka==0 and kb<0, and triples with
//ka==0, kb==0 and kc<0, are skipped.
//
//The set depends only on (simBox, krep, alpha); it is immutable and may be
//shared by any number of concurrent evaluations. Rebuild it whenever the box,
//the bounds or alpha change. Ewald does this caching for you.
func BuildKVectors(simBox *Box, krep Replication, alpha float64) []KVector {
	if simBox == nil {
		panic(ErrNilBox)
	}
	if krep.X < 0 || krep.Y < 0 || krep.Z < 0 {
		panic(ErrBadKReplication)
	}
	rec := simBox.ReciprocalLattice()
	kvecs := make([]KVector, 0, (krep.X+1)*(2*krep.Y+1)*(2*krep.Z+1)/2)
	for ka := 0; ka <= krep.X; ka++ {
		for kb := -krep.Y; kb <= krep.Y; kb++ {
			if ka == 0 && kb < 0 {
				continue
			}
			for kc := -krep.Z; kc <= krep.Z; kc++ {
				//excludes the zero triple and the remaining half-line
				if ka == 0 && kb == 0 && kc <= 0 {
					continue
				}
				k := mul3(rec, [3]float64{float64(ka), float64(kb), float64(kc)})
				s := dot3(k, k)
				kvecs = append(kvecs, KVector{
					K:      k,
					Weight: 2 * math.Exp(-s/(4*alpha*alpha)) / s / Epsilon0,
				})
			}
		}
	}
	return kvecs
}

//Ewald evaluates electrostatic potentials and energies by Ewald summation:
//a short-range, erfc-screened real-space sum plus a long-range
//reciprocal-space sum over a precomputed k-vector set. Build one per
//(home box, replication, k-space replication, alpha, cutoff) combination and
//reuse it; construction cost is dominated by the k-vector set, whose reuse
//across evaluations is what makes the method viable. An Ewald is immutable
//after construction and safe for concurrent use.
type Ewald struct {
	Rep      Replication //supercell replication of the home cell
	SRCutoff float64     //short-range cutoff radius, Angstrom
	Alpha    float64     //Ewald convergence parameter, 1/Angstrom
	MinDist2 float64     //squared minimum pair distance, see DefaultMinDist2
	simBox   *Box        //the replicated home cell
	kvecs    []KVector
}

//NewEwald builds the evaluator for a home unit cell box tiled rep times per
//axis. krep bounds the reciprocal-space enumeration (see BuildKVectors),
//srCutoff is the real-space cutoff radius in Angstrom and alpha the
//convergence parameter coupling the two halves of the summation.
func NewEwald(box *Box, rep, krep Replication, srCutoff, alpha float64) (*Ewald, error) {
	if box == nil {
		panic(ErrNilBox)
	}
	rep.mustBePositive()
	if srCutoff <= 0 {
		return nil, newError("NewEwald", "non-positive short-range cutoff %v", srCutoff)
	}
	if alpha <= 0 {
		return nil, newError("NewEwald", "non-positive convergence parameter %v", alpha)
	}
	simBox := box.Replicate(rep)
	return &Ewald{
		Rep:      rep,
		SRCutoff: srCutoff,
		Alpha:    alpha,
		MinDist2: DefaultMinDist2,
		simBox:   simBox,
		kvecs:    BuildKVectors(simBox, krep, alpha),
	}, nil
}

//SimBox returns the supercell box the evaluator sums over.
func (E *Ewald) SimBox() *Box { return E.simBox }

//KVectors returns the cached reciprocal-space set. Shared, read-only.
func (E *Ewald) KVectors() []KVector { return E.kvecs }

//FrameworkPotential returns the electrostatic potential, in Kelvin per
//electron charge, created at the Cartesian point x by the framework charges
//over all supercell replications. x is wrapped into the home cell first.
//
//The long-range term sees the raw displacement to each explicit replica (the
//reciprocal sum is itself periodic; collapsing the displacement to the
//nearest image would double-count the periodicity), while the short-range
//term uses the nearest image over the supercell and drops pairs beyond
//SRCutoff. A pair closer than MinDist2 makes the potential +Inf.
func (E *Ewald) FrameworkPotential(fw *Framework, x [3]float64) float64 {
	if fw == nil {
		panic(ErrNilFramework)
	}
	box := fw.Box
	ftoc := box.FToC()
	xf := box.Wrap(box.Fractional(x))
	var sr, lr float64
	for ra := 0; ra < E.Rep.X; ra++ {
		for rb := 0; rb < E.Rep.Y; rb++ {
			for rc := 0; rc < E.Rep.Z; rc++ {
				for j := 0; j < fw.Len(); j++ {
					q := fw.Charges[j]
					if q == 0 {
						continue
					}
					af := fw.AtomXf(j)
					dxf := [3]float64{
						xf[0] - (af[0] + float64(ra)),
						xf[1] - (af[1] + float64(rb)),
						xf[2] - (af[2] + float64(rc)),
					}
					dx := mul3(ftoc, dxf)
					for _, kv := range E.kvecs {
						lr += q * math.Cos(dot3(kv.K, dx)) * kv.Weight
					}
					NearestImage(&dxf, E.Rep)
					dx = mul3(ftoc, dxf)
					r2 := dot3(dx, dx)
					if r2 < E.MinDist2 {
						return math.Inf(1)
					}
					if r := math.Sqrt(r2); r < E.SRCutoff {
						sr += q / r * math.Erfc(r*E.Alpha)
					}
				}
			}
		}
	}
	return sr/(4*math.Pi*Epsilon0) + lr/E.simBox.Volume()
}

//FrameworkEnergy returns the electrostatic energy, in Kelvin, of the guest
//molecule's point charges in the framework potential: the potential is
//linear in the charges, so the energy is just sum(q_i * phi(x_i)).
func (E *Ewald) FrameworkEnergy(fw *Framework, mol *Molecule) float64 {
	if mol == nil {
		panic(ErrNilMolecule)
	}
	var energy float64
	for i, q := range mol.Q {
		energy += q * E.FrameworkPotential(fw, mol.ChargeX(i))
	}
	return energy
}

//MoleculePotential returns the electrostatic potential at the Cartesian
//point x created by the point charges of every molecule except mols[exclude].
//Molecules are free particles in the simulation supercell, not
//lattice-periodic sets, so there is no replication loop: the short-range term
//applies the ordinary single-cell minimum image in the supercell, and the
//long-range term uses the raw Cartesian displacements. Pass exclude = -1 to
//include all molecules.
func (E *Ewald) MoleculePotential(mols []*Molecule, exclude int, x [3]float64) float64 {
	ftoc := E.simBox.FToC()
	ctof := E.simBox.CToF()
	var sr, lr float64
	for m, mol := range mols {
		if m == exclude {
			continue
		}
		for i, q := range mol.Q {
			if q == 0 {
				continue
			}
			cx := mol.ChargeX(i)
			dx := [3]float64{x[0] - cx[0], x[1] - cx[1], x[2] - cx[2]}
			for _, kv := range E.kvecs {
				lr += q * math.Cos(dot3(kv.K, dx)) * kv.Weight
			}
			dxf := mul3(ctof, dx)
			NearestImage(&dxf, One)
			dx = mul3(ftoc, dxf)
			r2 := dot3(dx, dx)
			if r2 < E.MinDist2 {
				return math.Inf(1)
			}
			if r := math.Sqrt(r2); r < E.SRCutoff {
				sr += q / r * math.Erfc(r*E.Alpha)
			}
		}
	}
	return sr/(4*math.Pi*Epsilon0) + lr/E.simBox.Volume()
}

//MoleculeEnergy returns the electrostatic energy, in Kelvin, of molecule
//mols[i] in the field of all the other molecules.
func (E *Ewald) MoleculeEnergy(mols []*Molecule, i int) float64 {
	if i < 0 || i >= len(mols) {
		panic(ErrAtomOutOfRange)
	}
	var energy float64
	for j, q := range mols[i].Q {
		energy += q * E.MoleculePotential(mols, i, mols[i].ChargeX(j))
	}
	return energy
}
