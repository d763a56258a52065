//gopore computes guest-host interaction energies in periodic porous
//materials: single-point energies, potential-energy grids in the Gaussian
//cube format, and energy profiles along a segment of the unit cell.
package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcarvajal/gopore"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:           "gopore",
		Short:         "guest-host energies in periodic porous materials",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "gopore.yaml", "configuration file")
	root.AddCommand(energyCmd(), gridCmd(), profileCmd())
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

//setup loads everything the subcommands share.
func setup() (*Config, *pore.Framework, *pore.Molecule, *pore.LJForceField, pore.Replication, error) {
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, nil, nil, pore.Replication{}, err
	}
	fw, err := pore.CSSRRead(cfg.Crystal)
	if err != nil {
		return nil, nil, nil, nil, pore.Replication{}, err
	}
	mol, err := pore.XYZMolRead(cfg.Molecule)
	if err != nil {
		return nil, nil, nil, nil, pore.Replication{}, err
	}
	ff, err := pore.ReadLJForceField(cfg.ForceField, cfg.Cutoff)
	if err != nil {
		return nil, nil, nil, nil, pore.Replication{}, err
	}
	rep, err := cfg.replication(fw.Box)
	if err != nil {
		return nil, nil, nil, nil, pore.Replication{}, err
	}
	return cfg, fw, mol, ff, rep, nil
}

func energyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "energy",
		Short: "energy of the guest at its current position",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, fw, mol, ff, rep, err := setup()
			if err != nil {
				return err
			}
			vdw, err := pore.VdWEnergy(fw, mol, ff, rep)
			if err != nil {
				return err
			}
			fmt.Printf("van der Waals: %.4f K\n", vdw)
			if math.IsInf(vdw, 1) {
				fmt.Println("guest overlaps the framework")
			}
			if mol.Charged() && fw.Charged() {
				if q := fw.NetCharge(); math.Abs(q) > 1e-4 {
					log.Printf("warning: framework net charge %.4f e, Ewald sum is ill-defined", q)
				}
				ew, err := pore.NewEwald(fw.Box, rep, cfg.kreplication(), cfg.SRCutoff, cfg.Alpha)
				if err != nil {
					return err
				}
				fmt.Printf("electrostatic: %.4f K\n", ew.FrameworkEnergy(fw, mol))
			}
			return nil
		},
	}
}

func gridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grid",
		Short: "van der Waals energy grid over the unit cell",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, fw, mol, ff, rep, err := setup()
			if err != nil {
				return err
			}
			if len(cfg.Grid) != 3 {
				return fmt.Errorf("grid needs 3 dimensions, got %v", cfg.Grid)
			}
			n := [3]int{cfg.Grid[0], cfg.Grid[1], cfg.Grid[2]}
			log.Printf("scanning %s with %s: %dx%dx%d points, %v supercell",
				fw.Name, mol.Name, n[0], n[1], n[2], rep)
			grid, err := pore.VdWGrid(fw, mol, ff, rep, n)
			if err != nil {
				return err
			}
			if err := grid.WriteCube(cfg.Output, fw); err != nil {
				return err
			}
			log.Printf("wrote %s", cfg.Output)
			return nil
		},
	}
}

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "energy profile along a segment, as a plot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, fw, mol, ff, rep, err := setup()
			if err != nil {
				return err
			}
			if len(cfg.Profile.From) != 3 || len(cfg.Profile.To) != 3 {
				return fmt.Errorf("profile needs 3-component from/to fractional coordinates")
			}
			from := [3]float64{cfg.Profile.From[0], cfg.Profile.From[1], cfg.Profile.From[2]}
			to := [3]float64{cfg.Profile.To[0], cfg.Profile.To[1], cfg.Profile.To[2]}
			dist, energy, err := pore.VdWProfile(fw, mol, ff, rep, from, to, cfg.Profile.Points)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("%s in %s", mol.Name, fw.Name)
			if err := pore.PlotProfile(dist, energy, title, cfg.Profile.Plot); err != nil {
				return err
			}
			log.Printf("wrote %s", cfg.Profile.Plot)
			return nil
		},
	}
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
}
