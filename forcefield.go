package pore

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"strings"
)

//DefaultOverlapTol2 is the default squared-distance threshold (Angstrom^2)
//below which two atoms are considered to overlap and the configuration is
//physically forbidden.
const DefaultOverlapTol2 = 1.0e-4

//ljPair holds the precomputed parameters for an unordered pair of atom types.
type ljPair struct {
	sigma2  float64 //squared LJ diameter, Angstrom^2
	epsilon float64 //well depth, Kelvin
}

//LJForceField maps unordered pairs of atom-type labels to Lennard-Jones
//parameters, and carries the single squared cutoff radius shared by all
//pairs. Pairs are stored under a canonicalized (sorted) key, so the lookup is
//symmetric by construction: (A,B) and (B,A) always yield the same parameters.
//Immutable after construction.
type LJForceField struct {
	Name        string
	pairs       map[[2]string]ljPair
	Cutoff2     float64 //squared cutoff radius, Angstrom^2
	OverlapTol2 float64 //squared overlap threshold, Angstrom^2
}

func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

//NewLJForceField builds a force field from per-type diameters sigma
//(Angstrom) and well depths epsilon (Kelvin). Cross-interaction parameters
//for every pair of the given types are derived with the Lorentz-Berthelot
//mixing rules: arithmetic mean for sigma, geometric mean for epsilon.
//cutoff is the cutoff radius in Angstrom.
func NewLJForceField(name string, labels []string, sigma, epsilon []float64, cutoff float64) (*LJForceField, error) {
	if len(labels) != len(sigma) || len(labels) != len(epsilon) {
		return nil, newError("NewLJForceField",
			"%d labels but %d sigmas and %d epsilons", len(labels), len(sigma), len(epsilon))
	}
	if cutoff <= 0 {
		return nil, newError("NewLJForceField", "non-positive cutoff %v", cutoff)
	}
	ff := &LJForceField{
		Name:        name,
		pairs:       make(map[[2]string]ljPair, len(labels)*(len(labels)+1)/2),
		Cutoff2:     cutoff * cutoff,
		OverlapTol2: DefaultOverlapTol2,
	}
	for i, a := range labels {
		if epsilon[i] < 0 || sigma[i] <= 0 {
			return nil, newError("NewLJForceField",
				"bad parameters for type %s: sigma %v epsilon %v", a, sigma[i], epsilon[i])
		}
		for j, b := range labels {
			if j < i {
				continue
			}
			s := (sigma[i] + sigma[j]) / 2
			ff.pairs[pairKey(a, b)] = ljPair{
				sigma2:  s * s,
				epsilon: math.Sqrt(epsilon[i] * epsilon[j]),
			}
		}
	}
	return ff, nil
}

//SetPair overrides (or adds) the parameters for one unordered pair of types,
//for force fields whose cross terms do not follow the mixing rules.
func (ff *LJForceField) SetPair(a, b string, sigma, epsilon float64) {
	ff.pairs[pairKey(a, b)] = ljPair{sigma2: sigma * sigma, epsilon: epsilon}
}

//Pair returns the squared sigma and the epsilon for an unordered pair of
//atom-type labels, and whether the pair is covered by the force field.
func (ff *LJForceField) Pair(a, b string) (sigma2, epsilon float64, ok bool) {
	p, ok := ff.pairs[pairKey(a, b)]
	return p.sigma2, p.epsilon, ok
}

//Covers returns nil if every label of guest interacts with every label of
//host under this force field, and a descriptive error otherwise. Energy
//routines call it once before entering their loops.
func (ff *LJForceField) Covers(guest, host []string) error {
	for _, a := range guest {
		for _, b := range host {
			if _, ok := ff.pairs[pairKey(a, b)]; !ok {
				return newError("LJForceField.Covers",
					"force field %s has no parameters for pair %s-%s", ff.Name, a, b)
			}
		}
	}
	return nil
}

//ReadLJForceField reads per-type Lennard-Jones parameters from a CSV file
//with records "label,sigma,epsilon" (sigma in Angstrom, epsilon in Kelvin).
//Lines starting with '#' and a header record whose sigma field is not a
//number are skipped. Cross terms follow the Lorentz-Berthelot rules, as in
//NewLJForceField.
func ReadLJForceField(filename string, cutoff float64) (*LJForceField, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, newError("ReadLJForceField", "failed to open %s: %v", filename, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comment = '#'
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, newError("ReadLJForceField", "%s: %v", filename, err)
	}
	var labels []string
	var sigma, epsilon []float64
	for _, rec := range records {
		if len(rec) < 3 {
			return nil, newError("ReadLJForceField", "%s: record %v has fewer than 3 fields", filename, rec)
		}
		s, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			continue //header
		}
		e, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, newError("ReadLJForceField", "%s: bad epsilon in record %v", filename, rec)
		}
		labels = append(labels, strings.TrimSpace(rec[0]))
		sigma = append(sigma, s)
		epsilon = append(epsilon, e)
	}
	if len(labels) == 0 {
		return nil, newError("ReadLJForceField", "%s contains no parameter records", filename)
	}
	ff, err := NewLJForceField(strings.TrimSuffix(filename, ".csv"), labels, sigma, epsilon, cutoff)
	if err != nil {
		return nil, errDecorate(err, "ReadLJForceField")
	}
	return ff, nil
}
