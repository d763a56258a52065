package pore

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
)

//Grid is a scalar field sampled on a regular fractional grid of the home
//unit cell: point (i,j,k) sits at fractional coordinates
//(i/N[0], j/N[1], k/N[2]). Data is laid out with k fastest.
type Grid struct {
	Box  *Box
	N    [3]int
	Data []float64
}

//NewGrid allocates a zeroed grid with n points per axis.
func NewGrid(box *Box, n [3]int) (*Grid, error) {
	if box == nil {
		panic(ErrNilBox)
	}
	if n[0] < 1 || n[1] < 1 || n[2] < 1 {
		return nil, newError("NewGrid", "non-positive grid dimensions %v", n)
	}
	return &Grid{Box: box, N: n, Data: make([]float64, n[0]*n[1]*n[2])}, nil
}

//At returns the value at grid point (i,j,k). Panics if out of range.
func (G *Grid) At(i, j, k int) float64 {
	return G.Data[(i*G.N[1]+j)*G.N[2]+k]
}

func (G *Grid) set(i, j, k int, v float64) {
	G.Data[(i*G.N[1]+j)*G.N[2]+k] = v
}

//Point returns the Cartesian position of grid point (i,j,k).
func (G *Grid) Point(i, j, k int) [3]float64 {
	return G.Box.Cartesian([3]float64{
		float64(i) / float64(G.N[0]),
		float64(j) / float64(G.N[1]),
		float64(k) / float64(G.N[2]),
	})
}

//VdWGrid evaluates the guest-framework Lennard-Jones energy on an n-point
//fractional grid of the home unit cell, moving a copy of the probe molecule
//so its centroid visits every grid point. The probe given by the caller is
//never mutated; each worker goroutine owns an independent snapshot, so the
//scan is embarrassingly parallel across grid points. Overlapping points hold
//+Inf in the result.
func VdWGrid(fw *Framework, probe *Molecule, ff *LJForceField, rep Replication, n [3]int) (*Grid, error) {
	if fw == nil {
		panic(ErrNilFramework)
	}
	grid, err := NewGrid(fw.Box, n)
	if err != nil {
		return nil, errDecorate(err, "VdWGrid")
	}
	//missing pairs surface here, not inside the workers
	if err := ff.Covers(probe.Labels, fw.Labels); err != nil {
		return nil, errDecorate(err, "VdWGrid")
	}
	cpus := runtime.NumCPU()
	if cpus > n[0] {
		cpus = n[0]
	}
	planes := make(chan int, n[0])
	for i := 0; i < n[0]; i++ {
		planes <- i
	}
	close(planes)
	var wg sync.WaitGroup
	for w := 0; w < cpus; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mol := probe.Copy()
			for i := range planes {
				for j := 0; j < n[1]; j++ {
					for k := 0; k < n[2]; k++ {
						mol.TranslateTo(grid.Point(i, j, k))
						//Covers already passed, the error cannot recur
						energy, _ := VdWEnergy(fw, mol, ff, rep)
						grid.set(i, j, k, energy)
					}
				}
			}
		}()
	}
	wg.Wait()
	return grid, nil
}

//cubeClamp caps the values written to a cube file: +Inf marks an overlap in
//a Grid but would corrupt the fixed-format output.
const cubeClamp = 1.0e30

//WriteCube writes the grid in the Gaussian cube format, with the framework
//atoms of the home cell listed in the header and distances in Angstrom
//rather than Bohr. If the filename ends in ".gz" the output is
//gzip-compressed. fw may be nil, in which case no atoms are listed.
func (G *Grid) WriteCube(filename string, fw *Framework) error {
	f, err := os.Create(filename)
	if err != nil {
		return newError("Grid.WriteCube", "failed to create %s: %v", filename, err)
	}
	defer f.Close()
	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(filename, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}
	bw := bufio.NewWriter(w)
	natoms := 0
	if fw != nil {
		natoms = fw.Len()
	}
	fmt.Fprintf(bw, "gopore energy grid, Kelvin\ndistances in Angstrom, k fastest\n")
	fmt.Fprintf(bw, "%5d %11.6f %11.6f %11.6f\n", natoms, 0.0, 0.0, 0.0)
	ftoc := G.Box.FToC()
	for ax := 0; ax < 3; ax++ {
		fmt.Fprintf(bw, "%5d %11.6f %11.6f %11.6f\n", G.N[ax],
			ftoc.At(0, ax)/float64(G.N[ax]),
			ftoc.At(1, ax)/float64(G.N[ax]),
			ftoc.At(2, ax)/float64(G.N[ax]))
	}
	for i := 0; i < natoms; i++ {
		x := G.Box.Cartesian(fw.AtomXf(i))
		fmt.Fprintf(bw, "%5d %11.6f %11.6f %11.6f %11.6f\n",
			atomicNumber(fw.Labels[i]), fw.Charges[i], x[0], x[1], x[2])
	}
	col := 0
	for i := 0; i < G.N[0]; i++ {
		for j := 0; j < G.N[1]; j++ {
			for k := 0; k < G.N[2]; k++ {
				v := G.At(i, j, k)
				if math.IsInf(v, 1) || v > cubeClamp {
					v = cubeClamp
				}
				fmt.Fprintf(bw, " %12.5E", v)
				col++
				if col == 6 {
					bw.WriteByte('\n')
					col = 0
				}
			}
		}
	}
	if col != 0 {
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return newError("Grid.WriteCube", "writing %s: %v", filename, err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return newError("Grid.WriteCube", "closing gzip stream for %s: %v", filename, err)
		}
	}
	return nil
}

//atomicNumbers covers the elements common in porous frameworks; anything
//else is written as a dummy atom.
var atomicNumbers = map[string]int{
	"H": 1, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9,
	"Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15, "S": 16, "Cl": 17,
	"K": 19, "Ca": 20, "Ti": 22, "V": 23, "Cr": 24, "Mn": 25, "Fe": 26,
	"Co": 27, "Ni": 28, "Cu": 29, "Zn": 30, "Ga": 31, "Ge": 32, "Br": 35,
	"Zr": 40, "Cd": 48, "In": 49, "Sn": 50, "I": 53,
}

func atomicNumber(label string) int {
	if z, ok := atomicNumbers[label]; ok {
		return z
	}
	return 0
}
