package pore

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

//triclinicBox returns a low-symmetry cell for the transform tests.
func triclinicBox(Te *testing.T) *Box {
	box, err := NewBox(10, 12, 14, 80*Deg2Rad, 95*Deg2Rad, 102*Deg2Rad)
	if err != nil {
		Te.Fatal(err)
	}
	return box
}

func TestBoxRoundTrip(Te *testing.T) {
	box := triclinicBox(Te)
	xf := [3]float64{0.2, 0.3, 0.4}
	back := box.Fractional(box.Cartesian(xf))
	for j := 0; j < 3; j++ {
		if math.Abs(back[j]-xf[j]) > 1e-10 {
			Te.Errorf("axis %d: fractional->Cartesian->fractional gave %v, want %v", j, back[j], xf[j])
		}
	}
	//the transforms must be exact inverses
	prod := mat.NewDense(3, 3, nil)
	prod.Mul(box.CToF(), box.FToC())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(prod.At(i, j)-want) > 1e-12 {
				Te.Errorf("CToF*FToC (%d,%d) = %v", i, j, prod.At(i, j))
			}
		}
	}
}

func TestBoxVolume(Te *testing.T) {
	box, err := NewBox(10, 12, 14, 90*Deg2Rad, 90*Deg2Rad, 90*Deg2Rad)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(box.Volume()-10*12*14) > 1e-9 {
		Te.Errorf("orthorhombic volume %v, want %v", box.Volume(), 10*12*14)
	}
	tri := triclinicBox(Te)
	if tri.Volume() <= 0 {
		Te.Errorf("triclinic volume %v not positive", tri.Volume())
	}
}

func TestBoxLatticeRecovery(Te *testing.T) {
	box := triclinicBox(Te)
	nb, err := NewBoxFromMatrix(box.FToC())
	if err != nil {
		Te.Fatal(err)
	}
	a, b, c, al, be, ga := nb.Lattice()
	wa, wb, wc, wal, wbe, wga := box.Lattice()
	for i, pair := range [][2]float64{{a, wa}, {b, wb}, {c, wc}, {al, wal}, {be, wbe}, {ga, wga}} {
		if math.Abs(pair[0]-pair[1]) > 1e-9 {
			Te.Errorf("lattice parameter %d: recovered %v, want %v", i, pair[0], pair[1])
		}
	}
}

func TestBoxReplicate(Te *testing.T) {
	box := triclinicBox(Te)
	sup := box.Replicate(Replication{2, 3, 1})
	if math.Abs(sup.Volume()-6*box.Volume()) > 1e-8 {
		Te.Errorf("supercell volume %v, want %v", sup.Volume(), 6*box.Volume())
	}
	a, b, c, _, _, _ := box.Lattice()
	sa, sb, sc, sal, sbe, sga := sup.Lattice()
	if math.Abs(sa-2*a) > 1e-9 || math.Abs(sb-3*b) > 1e-9 || math.Abs(sc-c) > 1e-9 {
		Te.Errorf("supercell constants %v %v %v", sa, sb, sc)
	}
	_, _, _, al, be, ga := box.Lattice()
	if math.Abs(sal-al) > 1e-9 || math.Abs(sbe-be) > 1e-9 || math.Abs(sga-ga) > 1e-9 {
		Te.Error("replication changed the lattice angles")
	}
}

func TestBoxWrap(Te *testing.T) {
	box := triclinicBox(Te)
	w := box.Wrap([3]float64{1.25, -0.25, 0.5})
	want := [3]float64{0.25, 0.75, 0.5}
	for j := 0; j < 3; j++ {
		if math.Abs(w[j]-want[j]) > 1e-12 {
			Te.Errorf("axis %d: wrapped to %v, want %v", j, w[j], want[j])
		}
	}
}

func TestBoxBadInput(Te *testing.T) {
	if _, err := NewBox(-1, 10, 10, math.Pi/2, math.Pi/2, math.Pi/2); err == nil {
		Te.Error("negative lattice constant accepted")
	}
	if _, err := NewBox(10, 10, 10, 0, math.Pi/2, math.Pi/2); err == nil {
		Te.Error("zero angle accepted")
	}
	singular := mat.NewDense(3, 3, []float64{1, 0, 0, 2, 0, 0, 3, 0, 0})
	if _, err := NewBoxFromMatrix(singular); err == nil {
		Te.Error("singular lattice matrix accepted")
	}
}

func TestReplicationForCutoff(Te *testing.T) {
	box, err := NewBox(10, 10, 10, math.Pi/2, math.Pi/2, math.Pi/2)
	if err != nil {
		Te.Fatal(err)
	}
	if err := One.Check(box, 12); err == nil {
		Te.Error("cutoff larger than half the cell passed Check")
	}
	rep, err := ReplicationForCutoff(box, 12)
	if err != nil {
		Te.Fatal(err)
	}
	if rep != (Replication{3, 3, 3}) {
		Te.Errorf("got replication %v, want {3 3 3}", rep)
	}
	if err := rep.Check(box, 12); err != nil {
		Te.Errorf("derived replication failed its own check: %v", err)
	}
}
