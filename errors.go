/*
 * errors.go, part of gopore.
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

import "fmt"

//Error is the interface for errors returned by this library. The Decorate
//method allows adding and retrieving info from the error without changing its
//type or wrapping it around something else. The decoration slice should
//contain the list of functions in the calling stack, plus, for each function,
//any relevant extra information in the format "FunctionName: Extra info".
type Error interface {
	error
	Decorate(string) []string
	Critical() bool
}

//CError is the concrete error type for the package. It almost always
//reaches the caller behind the Error interface.
type CError struct {
	message  string
	deco     []string
	critical bool
}

func (err *CError) Error() string {
	return err.message
}

//Decorate adds dec to the decoration slice of strings of the error, and
//returns the resulting slice. If dec is empty, the current decoration is
//returned unchanged.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error can be ignored.
func (err *CError) Critical() bool { return err.critical }

//newError builds a critical CError with a formatted message. The package
//prefix is added here so callers don't repeat it.
func newError(caller, format string, a ...interface{}) *CError {
	return &CError{
		message:  fmt.Sprintf("gopore/"+caller+": "+format, a...),
		deco:     []string{caller},
		critical: true,
	}
}

//errDecorate asserts that err implements Error and decorates it with the
//caller's name before returning it. It panics on a foreign error type,
//which would be a bug in this library.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//PanicMsg is the type used for the messages of panics raised by the library
//on programmer errors (nil receivers, out-of-range indexes). For failures
//that depend on input data, use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilAtoms        = PanicMsg("gopore: nil coordinates or atom data")
	ErrAtomOutOfRange  = PanicMsg("gopore: requested atom out of range")
	ErrNot3xN          = PanicMsg("gopore: coordinate matrices must have 3 columns")
	ErrNilFramework    = PanicMsg("gopore: nil Framework")
	ErrNilMolecule     = PanicMsg("gopore: nil Molecule")
	ErrNilBox          = PanicMsg("gopore: nil Box")
	ErrBadReplication  = PanicMsg("gopore: replication factors must be positive")
	ErrBadKReplication = PanicMsg("gopore: k-space replication factors must be non-negative")
)
