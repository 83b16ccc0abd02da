package qimage

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Fidelity summarizes how closely an image matches a reference.
type Fidelity struct {
	// MSE is the mean squared error over all channels.
	MSE float64
	// PSNR is the peak signal to noise ratio in dB, +Inf for identical images.
	PSNR float64
	// MedianError and P95Error are quantiles of the per pixel error
	// magnitude, measured as euclidean distance in RGB space.
	MedianError float64
	P95Error    float64
}

// CompareImages computes fidelity metrics for img against a reference.
// The two images must have the same dimensions.
func CompareImages(reference, img *Image) (Fidelity, error) {
	if reference == nil || img == nil {
		return Fidelity{}, errors.New("cannot compare nil images")
	}
	if reference.width != img.width || reference.height != img.height {
		return Fidelity{}, errors.Errorf(
			"image dimensions don't match: %dx%d vs %dx%d",
			reference.width, reference.height, img.width, img.height)
	}
	if len(reference.data) == 0 {
		return Fidelity{}, errors.New("cannot compare zero-area images")
	}

	pixelErrs := make([]float64, len(reference.data))
	for i, c := range reference.data {
		o := img.data[i]
		dr := float64(c.R) - float64(o.R)
		dg := float64(c.G) - float64(o.G)
		db := float64(c.B) - float64(o.B)
		pixelErrs[i] = dr*dr + dg*dg + db*db
	}

	mse := stat.Mean(pixelErrs, nil) / 3
	psnr := math.Inf(1)
	if mse > 0 {
		psnr = 10 * math.Log10(255*255/mse)
	}

	for i, sq := range pixelErrs {
		pixelErrs[i] = math.Sqrt(sq)
	}
	sort.Float64s(pixelErrs)

	return Fidelity{
		MSE:         mse,
		PSNR:        psnr,
		MedianError: stat.Quantile(0.5, stat.Empirical, pixelErrs, nil),
		P95Error:    stat.Quantile(0.95, stat.Empirical, pixelErrs, nil),
	}, nil
}
