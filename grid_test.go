package pore

import (
	"math"
	"os"
	"testing"
)

func TestVdWGrid(Te *testing.T) {
	fw := cubicFramework(Te, 30, "Si", [3]float64{0.5, 0.5, 0.5}, 0)
	ff := testForceField(Te, 12.0)
	probe := xenon([3]float64{0, 0, 0})
	n := [3]int{4, 5, 6}
	grid, err := VdWGrid(fw, probe, ff, One, n)
	if err != nil {
		Te.Fatal(err)
	}
	if len(grid.Data) != 4*5*6 {
		Te.Fatalf("grid holds %d values, want %d", len(grid.Data), 4*5*6)
	}
	//the parallel scan must agree with a direct evaluation
	check := [][3]int{{0, 0, 0}, {2, 2, 3}, {3, 4, 5}, {1, 3, 2}}
	mol := probe.Copy()
	for _, p := range check {
		mol.TranslateTo(grid.Point(p[0], p[1], p[2]))
		want, err := VdWEnergy(fw, mol, ff, One)
		if err != nil {
			Te.Fatal(err)
		}
		got := grid.At(p[0], p[1], p[2])
		if math.Abs(got-want) > 1e-9 && !(math.IsInf(got, 1) && math.IsInf(want, 1)) {
			Te.Errorf("point %v: grid %v, direct %v", p, got, want)
		}
	}
	//the grid point nearest the framework atom must be strongly repulsive or
	//an overlap, the far corner must not
	if grid.At(2, 2, 3) <= grid.At(0, 0, 0) {
		Te.Errorf("center %v not above corner %v", grid.At(2, 2, 3), grid.At(0, 0, 0))
	}
}

func TestWriteCube(Te *testing.T) {
	fw := cubicFramework(Te, 30, "Si", [3]float64{0.5, 0.5, 0.5}, 0)
	ff := testForceField(Te, 12.0)
	probe := xenon([3]float64{0, 0, 0})
	grid, err := VdWGrid(fw, probe, ff, One, [3]int{3, 3, 3})
	if err != nil {
		Te.Fatal(err)
	}
	for _, name := range []string{"test/grid.cube", "test/grid.cube.gz"} {
		if err := grid.WriteCube(name, fw); err != nil {
			Te.Fatal(err)
		}
		info, err := os.Stat(name)
		if err != nil {
			Te.Fatal(err)
		}
		if info.Size() == 0 {
			Te.Errorf("%s is empty", name)
		}
	}
}

func TestGridBadDims(Te *testing.T) {
	fw := cubicFramework(Te, 30, "Si", [3]float64{0.5, 0.5, 0.5}, 0)
	if _, err := NewGrid(fw.Box, [3]int{0, 3, 3}); err == nil {
		Te.Error("zero grid dimension accepted")
	}
}
