package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rcarvajal/gopore"
)

const (
	defaultCutoff = 12.5
	defaultAlpha  = 0.25
	defaultGridN  = 25
	defaultKRep   = 7
	defaultPoints = 200
)

//Config drives the CLI. Replications left empty are derived from the cutoff.
type Config struct {
	Crystal       string  `yaml:"crystal"`
	Molecule      string  `yaml:"molecule"`
	ForceField    string  `yaml:"forcefield"`
	Cutoff        float64 `yaml:"cutoff"`
	Replications  []int   `yaml:"replications"`
	Alpha         float64 `yaml:"alpha"`
	SRCutoff      float64 `yaml:"sr_cutoff"`
	KReplications []int   `yaml:"k_replications"`
	Grid          []int   `yaml:"grid"`
	Output        string  `yaml:"output"`
	Profile       struct {
		From   []float64 `yaml:"from"`
		To     []float64 `yaml:"to"`
		Points int       `yaml:"points"`
		Plot   string    `yaml:"plot"`
	} `yaml:"profile"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Cutoff:        defaultCutoff,
		Alpha:         defaultAlpha,
		KReplications: []int{defaultKRep, defaultKRep, defaultKRep},
		Grid:          []int{defaultGridN, defaultGridN, defaultGridN},
		Output:        "energy.cube.gz",
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.SRCutoff == 0 {
		cfg.SRCutoff = cfg.Cutoff
	}
	if cfg.Profile.Points == 0 {
		cfg.Profile.Points = defaultPoints
	}
	if cfg.Profile.Plot == "" {
		cfg.Profile.Plot = "profile.png"
	}
	return cfg, nil
}

//replication resolves the supercell factors: the configured ones if given,
//otherwise the smallest ones that fit the cutoff.
func (cfg *Config) replication(box *pore.Box) (pore.Replication, error) {
	if len(cfg.Replications) == 3 {
		rep := pore.Replication{X: cfg.Replications[0], Y: cfg.Replications[1], Z: cfg.Replications[2]}
		if err := rep.Check(box, cfg.Cutoff); err != nil {
			return pore.Replication{}, err
		}
		return rep, nil
	}
	return pore.ReplicationForCutoff(box, cfg.Cutoff)
}

func (cfg *Config) kreplication() pore.Replication {
	k := cfg.KReplications
	if len(k) != 3 {
		k = []int{defaultKRep, defaultKRep, defaultKRep}
	}
	return pore.Replication{X: k[0], Y: k[1], Z: k[2]}
}
