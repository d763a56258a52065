package pore

import (
	"math"
	"testing"
)

func TestNearestImageHomeCell(Te *testing.T) {
	dxf := [3]float64{0.6, -0.3, 0.1}
	NearestImage(&dxf, One)
	want := [3]float64{-0.4, -0.3, 0.1}
	for j := 0; j < 3; j++ {
		if math.Abs(dxf[j]-want[j]) > 1e-15 {
			Te.Errorf("axis %d: got %v, want %v", j, dxf[j], want[j])
		}
	}
}

func TestNearestImageNoop(Te *testing.T) {
	dxf := [3]float64{0.5, -0.5, 0.0}
	orig := dxf
	NearestImage(&dxf, One)
	if dxf != orig {
		Te.Errorf("displacement on the boundary was altered: %v", dxf)
	}
}

func TestNearestImageSupercell(Te *testing.T) {
	dxf := [3]float64{1.6, -1.9, 0.7}
	rep := Replication{3, 2, 4}
	NearestImage(&dxf, rep)
	want := [3]float64{-1.4, 0.1, 0.7}
	for j := 0; j < 3; j++ {
		if math.Abs(dxf[j]-want[j]) > 1e-12 {
			Te.Errorf("axis %d: got %v, want %v", j, dxf[j], want[j])
		}
	}
	//post-condition: within half the supercell on every axis
	bounds := [3]float64{1.5, 1.0, 2.0}
	for j := 0; j < 3; j++ {
		if math.Abs(dxf[j]) > bounds[j] {
			Te.Errorf("axis %d: |%v| exceeds %v after correction", j, dxf[j], bounds[j])
		}
	}
}
