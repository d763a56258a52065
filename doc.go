/*
 * doc.go, part of gopore.
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

//Package pore computes guest-host and guest-guest interaction energies in
//periodic crystalline materials, as needed for the simulation of gas adsorption
//in porous frameworks (zeolites, MOFs and similar). It provides the unit-cell
//transforms, the nearest-image convention over an arbitrary integer supercell,
//a Lennard-Jones dispersion-repulsion summation and an Ewald summation for the
//electrostatics, plus thin consumers of those kernels (potential-energy grids
//and profiles).
//
//Units follow the conventions of the adsorption literature: distances in
//Angstrom, energies in Kelvin (energy divided by the Boltzmann constant) and
//charges in units of the electron charge. All energy routines are pure
//functions over read-only data; a Molecule is mutated only between calls,
//by its owner.
package pore
