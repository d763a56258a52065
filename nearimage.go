package pore

import "math"

//Replication holds the number of times the home unit cell is tiled along each
//lattice axis to form the simulation supercell. All three factors must be
//positive. The zero value is not valid; use One for the single home cell.
type Replication struct {
	X, Y, Z int
}

//One is the trivial replication, a supercell of a single home cell.
var One = Replication{1, 1, 1}

//Total returns the number of unit cells in the supercell.
func (R Replication) Total() int { return R.X * R.Y * R.Z }

func (R Replication) mustBePositive() {
	if R.X < 1 || R.Y < 1 || R.Z < 1 {
		panic(ErrBadReplication)
	}
}

//Check verifies the minimum-image validity precondition: the cutoff radius
//must be smaller than half the perpendicular extent of the supercell along
//every axis. Violating it does not break the summations, it silently
//undercounts interactions, so callers should Check once at setup time.
func (R Replication) Check(box *Box, cutoff float64) error {
	if box == nil {
		panic(ErrNilBox)
	}
	R.mustBePositive()
	w := box.perpendicularWidths()
	f := [3]float64{float64(R.X), float64(R.Y), float64(R.Z)}
	for j := 0; j < 3; j++ {
		if cutoff >= f[j]*w[j]/2 {
			return newError("Replication.Check",
				"cutoff %.3f A does not fit in half the supercell extent %.3f A along axis %d",
				cutoff, f[j]*w[j], j)
		}
	}
	return nil
}

//ReplicationForCutoff returns the smallest replication factors for which the
//cutoff radius fits in half the supercell along every axis.
func ReplicationForCutoff(box *Box, cutoff float64) (Replication, error) {
	if box == nil {
		panic(ErrNilBox)
	}
	if cutoff <= 0 {
		return Replication{}, newError("ReplicationForCutoff", "non-positive cutoff %v", cutoff)
	}
	w := box.perpendicularWidths()
	var rep Replication
	r := [3]*int{&rep.X, &rep.Y, &rep.Z}
	for j := 0; j < 3; j++ {
		*r[j] = int(math.Floor(2*cutoff/w[j])) + 1
	}
	return rep, nil
}

//perpendicularWidths returns, for each lattice axis, the distance between the
//two cell faces not containing that axis: volume over the area of the face
//spanned by the other two lattice vectors.
func (B *Box) perpendicularWidths() [3]float64 {
	av := colVec(B.ftoc, 0)
	bv := colVec(B.ftoc, 1)
	cv := colVec(B.ftoc, 2)
	return [3]float64{
		B.volume / norm3(cross3(bv, cv)),
		B.volume / norm3(cross3(cv, av)),
		B.volume / norm3(cross3(av, bv)),
	}
}

func cross3(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

//NearestImage replaces the fractional displacement dxf by the displacement to
//the closest periodic image under a supercell of rep unit cells per axis.
//Each axis is corrected independently: a component larger in magnitude than
//half the supercell extent is shifted by one full extent towards zero. After
//the call, |dxf[j]| <= rep[j]/2 for every axis. With rep = One this is the
//ordinary minimum-image convention.
func NearestImage(dxf *[3]float64, rep Replication) {
	r := [3]float64{float64(rep.X), float64(rep.Y), float64(rep.Z)}
	for j := 0; j < 3; j++ {
		if math.Abs(dxf[j]) > r[j]/2 {
			if dxf[j] > 0 {
				dxf[j] -= r[j]
			} else {
				dxf[j] += r[j]
			}
		}
	}
}
