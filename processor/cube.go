// Package processor builds display-ready composites from chip rasters.
package processor

import (
	"fmt"
	"math"
)

// Image is a single multi-band raster, band-major
type Image struct {
	Bands, Rows, Cols int
	Data              []float64
}

// NewImage allocates an Image of the given shape
func NewImage(bands, rows, cols int) *Image {
	return &Image{Bands: bands, Rows: rows, Cols: cols, Data: make([]float64, bands*rows*cols)}
}

// At returns the sample of band b at (row, col)
func (im *Image) At(b, row, col int) float64 {
	return im.Data[(b*im.Rows+row)*im.Cols+col]
}

// Set the sample of band b at (row, col)
func (im *Image) Set(b, row, col int, v float64) {
	im.Data[(b*im.Rows+row)*im.Cols+col] = v
}

// Band returns a single-band view of band b. The data is shared.
func (im *Image) Band(b int) *Image {
	n := im.Rows * im.Cols
	return &Image{Bands: 1, Rows: im.Rows, Cols: im.Cols, Data: im.Data[b*n : (b+1)*n]}
}

// Slice returns an Image of the bands [lo, hi). The data is copied.
func (im *Image) Slice(lo, hi int) *Image {
	n := im.Rows * im.Cols
	out := NewImage(hi-lo, im.Rows, im.Cols)
	copy(out.Data, im.Data[lo*n:hi*n])
	return out
}

// sameShape returns whether the two images have identical dimensions
func (im *Image) sameShape(other *Image) bool {
	return im.Bands == other.Bands && im.Rows == other.Rows && im.Cols == other.Cols
}

// Cube is a time-indexed stack of images of identical shape
type Cube struct {
	Steps []*Image
}

// Concat stacks per-time-step images into a Cube
func Concat(images []*Image) (*Cube, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("Concat: no images")
	}
	for i, im := range images {
		if !im.sameShape(images[0]) {
			return nil, fmt.Errorf("Concat: image %d has shape %dx%dx%d, expected %dx%dx%d",
				i, im.Bands, im.Rows, im.Cols, images[0].Bands, images[0].Rows, images[0].Cols)
		}
	}
	return &Cube{Steps: images}, nil
}

// Band returns the Cube of a single band of every time step
func (c *Cube) Band(b int) *Cube {
	steps := make([]*Image, len(c.Steps))
	for i, im := range c.Steps {
		steps[i] = im.Band(b)
	}
	return &Cube{Steps: steps}
}

// Slice returns the Cube of the bands [lo, hi) of every time step
func (c *Cube) Slice(lo, hi int) *Cube {
	steps := make([]*Image, len(c.Steps))
	for i, im := range c.Steps {
		steps[i] = im.Slice(lo, hi)
	}
	return &Cube{Steps: steps}
}

// Scale multiplies every sample in place
func (c *Cube) Scale(factor float64) *Cube {
	for _, im := range c.Steps {
		for i := range im.Data {
			im.Data[i] *= factor
		}
	}
	return c
}

// MaskWhere replaces with NaN every sample whose mask value (single-band, same
// time step) fails keep
func (c *Cube) MaskWhere(mask *Cube, keep func(float64) bool) *Cube {
	for t, im := range c.Steps {
		m := mask.Steps[t]
		n := im.Rows * im.Cols
		for b := 0; b < im.Bands; b++ {
			for i := 0; i < n; i++ {
				if !keep(m.Data[i]) {
					im.Data[b*n+i] = math.NaN()
				}
			}
		}
	}
	return c
}

// MedianOverTime reduces the time axis with a NaN-skipping median.
// A sample masked at every time step stays NaN.
func (c *Cube) MedianOverTime() *Image {
	return c.reduce(median)
}

// MeanOverTime reduces the time axis with a NaN-skipping mean
func (c *Cube) MeanOverTime() *Image {
	return c.reduce(mean)
}

func (c *Cube) reduce(f func([]float64) float64) *Image {
	first := c.Steps[0]
	out := NewImage(first.Bands, first.Rows, first.Cols)
	samples := make([]float64, 0, len(c.Steps))
	for i := range out.Data {
		samples = samples[:0]
		for _, im := range c.Steps {
			if v := im.Data[i]; !math.IsNaN(v) {
				samples = append(samples, v)
			}
		}
		out.Data[i] = f(samples)
	}
	return out
}

func median(samples []float64) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	// insertion sort, the time axis is short
	for i := 1; i < len(samples); i++ {
		for j := i; j > 0 && samples[j] < samples[j-1]; j-- {
			samples[j], samples[j-1] = samples[j-1], samples[j]
		}
	}
	if len(samples)%2 == 1 {
		return samples[len(samples)/2]
	}
	return (samples[len(samples)/2-1] + samples[len(samples)/2]) / 2
}

func mean(samples []float64) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

// Clip bounds every sample into [min, max] in place, NaN excepted
func (im *Image) Clip(min, max float64) *Image {
	for i, v := range im.Data {
		if v < min {
			im.Data[i] = min
		} else if v > max {
			im.Data[i] = max
		}
	}
	return im
}

// Normalize rescales every sample into [0, 1] in place, ignoring NaN
func (im *Image) Normalize() *Image {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range im.Data {
		if math.IsNaN(v) {
			continue
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if min >= max {
		return im
	}
	for i, v := range im.Data {
		im.Data[i] = (v - min) / (max - min)
	}
	return im
}
