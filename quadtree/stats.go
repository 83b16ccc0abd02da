package quadtree

import (
	"image"
	"math"

	"github.com/quadlabs/quadimage/qimage"
)

// BT.601 luma weights, matching how strongly the eye notices variation
// in each channel.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// AverageColorAndDetail scans a region of the image once and returns its
// mean color together with a detail score. The score is the luma
// weighted sum of the per channel standard deviations: 0 for a perfectly
// uniform region, larger the busier the region is. A single pixel region
// always scores 0.
func AverageColorAndDetail(img *qimage.Image, region image.Rectangle) (qimage.Color, float64) {
	total := region.Dx() * region.Dy()
	if total <= 0 {
		return qimage.Color{}, 0
	}

	var hist [3][256]int
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			c := img.GetXY(x, y)
			hist[0][c.R]++
			hist[1][c.G]++
			hist[2][c.B]++
		}
	}

	rMean, rDev := channelStats(&hist[0], total)
	gMean, gDev := channelStats(&hist[1], total)
	bMean, bDev := channelStats(&hist[2], total)

	avg := qimage.NewColor(roundChannel(rMean), roundChannel(gMean), roundChannel(bMean))
	return avg, lumaR*rDev + lumaG*gDev + lumaB*bDev
}

// channelStats computes the mean and population standard deviation of
// one channel from its value histogram.
func channelStats(hist *[256]int, total int) (mean, stddev float64) {
	var sum int
	for v, count := range hist {
		sum += v * count
	}
	mean = float64(sum) / float64(total)

	var variance float64
	for v, count := range hist {
		if count == 0 {
			continue
		}
		d := float64(v) - mean
		variance += float64(count) * d * d
	}
	variance /= float64(total)
	return mean, math.Sqrt(variance)
}

func roundChannel(v float64) uint8 {
	return uint8(math.Round(v))
}
