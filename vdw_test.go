package pore

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

//cubicFramework returns a cubic cell of edge a with a single framework atom
//of the given label and charge at fractional position xf.
func cubicFramework(Te *testing.T, a float64, label string, xf [3]float64, q float64) *Framework {
	box, err := NewBox(a, a, a, math.Pi/2, math.Pi/2, math.Pi/2)
	if err != nil {
		Te.Fatal(err)
	}
	fw, err := NewFramework("test", box, []string{label}, mat.NewDense(1, 3, []float64{xf[0], xf[1], xf[2]}), []float64{q})
	if err != nil {
		Te.Fatal(err)
	}
	return fw
}

func testForceField(Te *testing.T, cutoff float64) *LJForceField {
	ff, err := NewLJForceField("test",
		[]string{"Xe", "Si", "O"},
		[]float64{4.10, 2.30, 3.30},
		[]float64{211.0, 22.0, 48.0},
		cutoff)
	if err != nil {
		Te.Fatal(err)
	}
	return ff
}

func xenon(x [3]float64) *Molecule {
	mol, err := NewMolecule("Xe", []string{"Xe"}, mat.NewDense(1, 3, []float64{x[0], x[1], x[2]}), nil, nil)
	if err != nil {
		panic(err)
	}
	return mol
}

func TestLennardJonesZeroAtSigma(Te *testing.T) {
	sig2 := 3.4 * 3.4
	if e := LennardJones(sig2, sig2, 120.0); e != 0 {
		Te.Errorf("energy at r2 = sigma2 is %v, want exactly 0", e)
	}
}

func TestLennardJonesMinimum(Te *testing.T) {
	sig2 := 3.4 * 3.4
	eps := 120.0
	r2 := math.Cbrt(2) * sig2
	if e := LennardJones(r2, sig2, eps); math.Abs(e+eps) > 1e-12 {
		Te.Errorf("energy at the minimum is %v, want %v", e, -eps)
	}
	//repulsive inside sigma
	if e := LennardJones(0.5*sig2, sig2, eps); e <= 0 {
		Te.Errorf("energy inside sigma is %v, want positive", e)
	}
}

func TestVdWBeyondCutoff(Te *testing.T) {
	fw := cubicFramework(Te, 30, "Si", [3]float64{0.5, 0.5, 0.5}, 0)
	ff := testForceField(Te, 12.0)
	//corner of the cell: 25.98 A from the atom, and no image closer than the cutoff
	mol := xenon([3]float64{0, 0, 0})
	e, err := VdWEnergy(fw, mol, ff, One)
	if err != nil {
		Te.Fatal(err)
	}
	if e != 0 {
		Te.Errorf("energy with every pair beyond cutoff is %v, want exactly 0", e)
	}
}

func TestVdWOverlap(Te *testing.T) {
	fw := cubicFramework(Te, 30, "Si", [3]float64{0.5, 0.5, 0.5}, 0)
	ff := testForceField(Te, 12.0)
	mol := xenon([3]float64{15, 15, 15.001}) //1e-6 A^2 from the atom
	e, err := VdWEnergy(fw, mol, ff, One)
	if err != nil {
		Te.Fatal(err)
	}
	if !math.IsInf(e, 1) {
		Te.Errorf("energy of an overlapping pair is %v, want +Inf", e)
	}
}

func TestVdWSinglePair(Te *testing.T) {
	fw := cubicFramework(Te, 30, "Si", [3]float64{0.5, 0.5, 0.5}, 0)
	ff := testForceField(Te, 12.0)
	mol := xenon([3]float64{15, 15, 12}) //3 A below the atom
	e, err := VdWEnergy(fw, mol, ff, One)
	if err != nil {
		Te.Fatal(err)
	}
	sig2, eps, ok := ff.Pair("Xe", "Si")
	if !ok {
		Te.Fatal("missing Xe-Si pair")
	}
	want := LennardJones(9.0, sig2, eps)
	if math.Abs(e-want) > 1e-10 {
		Te.Errorf("single-pair energy %v, want %v", e, want)
	}
	fmt.Println("Xe-Si at 3 A:", e, "K")
}

func TestVdWTranslationInvariance(Te *testing.T) {
	fw := cubicFramework(Te, 30, "Si", [3]float64{0.1, 0.7, 0.3}, 0)
	ff := testForceField(Te, 12.0)
	rep := Replication{2, 2, 2}
	mol := xenon([3]float64{3.7, 19.0, 10.2})
	e1, err := VdWEnergy(fw, mol, ff, rep)
	if err != nil {
		Te.Fatal(err)
	}
	if e1 == 0 {
		Te.Fatal("test geometry should interact with the framework")
	}
	mol.Translate([3]float64{30, 0, 0}) //one full lattice vector
	e2, err := VdWEnergy(fw, mol, ff, rep)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(e1-e2) > 1e-9 {
		Te.Errorf("lattice translation changed the energy: %v vs %v", e1, e2)
	}
}

func TestVdWMissingPair(Te *testing.T) {
	fw := cubicFramework(Te, 30, "Si", [3]float64{0.5, 0.5, 0.5}, 0)
	ff := testForceField(Te, 12.0)
	mol, err := NewMolecule("Ar", []string{"Ar"}, mat.NewDense(1, 3, []float64{1, 1, 1}), nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := VdWEnergy(fw, mol, ff, One); err == nil {
		Te.Error("missing force-field pair went undetected")
	}
}
