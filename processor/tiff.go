package processor

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/tiff"
)

// Open decodes a raster file into an Image. Grayscale rasters decode to one
// band, color rasters to three. Band-interleaved products beyond what the tiff
// codec handles are converted upstream.
func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("Open.Decode[%s]: %w", path, err)
	}
	return fromImage(img), nil
}

// OpenAll decodes a list of raster files
func OpenAll(files []string) ([]*Image, error) {
	images := make([]*Image, 0, len(files))
	for _, f := range files {
		im, err := Open(f)
		if err != nil {
			return nil, err
		}
		images = append(images, im)
	}
	return images, nil
}

func fromImage(img image.Image) *Image {
	bounds := img.Bounds()
	rows, cols := bounds.Dy(), bounds.Dx()

	switch im := img.(type) {
	case *image.Gray:
		out := NewImage(1, rows, cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				out.Set(0, r, c, float64(im.GrayAt(bounds.Min.X+c, bounds.Min.Y+r).Y))
			}
		}
		return out
	case *image.Gray16:
		out := NewImage(1, rows, cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				out.Set(0, r, c, float64(im.Gray16At(bounds.Min.X+c, bounds.Min.Y+r).Y))
			}
		}
		return out
	}

	out := NewImage(3, rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cr, cg, cb, _ := img.At(bounds.Min.X+c, bounds.Min.Y+r).RGBA()
			out.Set(0, r, c, float64(cr))
			out.Set(1, r, c, float64(cg))
			out.Set(2, r, c, float64(cb))
		}
	}
	return out
}

// Write encodes the first band of the image as a 16-bit grayscale tiff.
// Samples are expected in [0, 1]; NaN encodes to 0.
func Write(path string, im *Image) error {
	gray := image.NewGray16(image.Rect(0, 0, im.Cols, im.Rows))
	for r := 0; r < im.Rows; r++ {
		for c := 0; c < im.Cols; c++ {
			v := im.At(0, r, c)
			if !(v > 0) { // NaN or negative
				v = 0
			} else if v > 1 {
				v = 1
			}
			gray.SetGray16(c, r, color.Gray16{Y: uint16(v * 65535)})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Write: %w", err)
	}
	defer f.Close()

	if err := tiff.Encode(f, gray, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return fmt.Errorf("Write.Encode[%s]: %w", path, err)
	}
	return nil
}
