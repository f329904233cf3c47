package processor

import (
	"fmt"
)

// Layout of a Sentinel-2 file: B2, B3, B4, B5, B6, B7, B8, B8A, B11, B12 and
// CLP, a cloud-probability layer
const (
	S2Bands        = 11
	CloudBandIndex = 10

	// DefaultScaleFactor converts digital numbers to reflectance
	DefaultScaleFactor = 0.0001
	// DefaultCloudProb is the cloud-probability threshold above which a sample
	// is discarded
	DefaultCloudProb = 50
)

// Composite builds a cloud-filtered median composite from the Sentinel-2 time
// steps of a chip: reflectance scaling, cloudy samples masked, median over the
// time axis. A sample cloudy at every time step is NaN in the composite.
func Composite(images []*Image, cloudProb float64) (*Image, error) {
	cube, err := s2Cube(images)
	if err != nil {
		return nil, fmt.Errorf("Composite.%w", err)
	}
	return s2Filter(cube, cloudProb).MedianOverTime(), nil
}

// CompositeMean is the mean variant of Composite, for exploratory analysis
func CompositeMean(images []*Image, cloudProb float64) (*Image, error) {
	cube, err := s2Cube(images)
	if err != nil {
		return nil, fmt.Errorf("CompositeMean.%w", err)
	}
	return s2Filter(cube, cloudProb).MeanOverTime(), nil
}

func s2Cube(images []*Image) (*Cube, error) {
	cube, err := Concat(images)
	if err != nil {
		return nil, err
	}
	if cube.Steps[0].Bands != S2Bands {
		return nil, fmt.Errorf("s2Cube: expected %d bands, got %d", S2Bands, cube.Steps[0].Bands)
	}
	return cube, nil
}

func s2Filter(cube *Cube, cloudProb float64) *Cube {
	clouds := cube.Band(CloudBandIndex)
	img := cube.Slice(0, CloudBandIndex)
	img.Scale(DefaultScaleFactor)
	img.MaskWhere(clouds, func(clp float64) bool { return clp < cloudProb })
	return img
}
