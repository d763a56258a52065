package pore

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//VdWProfile samples the guest-framework Lennard-Jones energy at n evenly
//spaced points on the segment between the fractional coordinates from and to,
//moving a copy of the probe molecule along it. It returns the distance along
//the segment (Angstrom) and the energy (Kelvin) at each point; overlapping
//points hold +Inf. The probe given by the caller is not mutated.
func VdWProfile(fw *Framework, probe *Molecule, ff *LJForceField, rep Replication, from, to [3]float64, n int) (dist, energy []float64, err error) {
	if fw == nil {
		panic(ErrNilFramework)
	}
	if n < 2 {
		return nil, nil, newError("VdWProfile", "need at least 2 points, got %d", n)
	}
	if err := ff.Covers(probe.Labels, fw.Labels); err != nil {
		return nil, nil, errDecorate(err, "VdWProfile")
	}
	a := fw.Box.Cartesian(from)
	b := fw.Box.Cartesian(to)
	seg := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	length := norm3(seg)
	dist = make([]float64, n)
	energy = make([]float64, n)
	mol := probe.Copy()
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		mol.TranslateTo([3]float64{a[0] + t*seg[0], a[1] + t*seg[1], a[2] + t*seg[2]})
		dist[i] = t * length
		energy[i], _ = VdWEnergy(fw, mol, ff, rep) //Covers already passed
	}
	return dist, energy, nil
}

//PlotProfile saves a line plot of an energy profile to filename; the format
//is taken from the extension (png, pdf, svg...). Points with infinite or
//absurdly repulsive energies are left out so the well remains visible.
func PlotProfile(dist, energy []float64, title, filename string) error {
	if len(dist) != len(energy) {
		return newError("PlotProfile", "%d distances but %d energies", len(dist), len(energy))
	}
	pts := make(plotter.XYs, 0, len(dist))
	for i := range dist {
		if math.IsInf(energy[i], 0) || energy[i] > 1e4 {
			continue
		}
		pts = append(pts, plotter.XY{X: dist[i], Y: energy[i]})
	}
	if len(pts) == 0 {
		return newError("PlotProfile", "no finite points to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "distance (A)"
	p.Y.Label.Text = "energy (K)"
	line, err := plotter.NewLine(pts)
	if err != nil {
		return newError("PlotProfile", "building line: %v", err)
	}
	p.Add(line, plotter.NewGrid())
	if err := p.Save(5*vg.Inch, 4*vg.Inch, filename); err != nil {
		return newError("PlotProfile", "saving %s: %v", filename, err)
	}
	return nil
}
