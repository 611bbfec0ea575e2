package quantize

import (
	"fmt"
	"sync"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/kovidgoyal/go-parallel"
)

const (
	wuIndexBits  = 5
	wuSideLength = 1<<wuIndexBits + 1 // 33
	wuTotalSize  = wuSideLength * wuSideLength * wuSideLength

	// Below this many distinct colours the histogram is built inline.
	parallelThreshold = 4096
)

type number interface {
	~int64 | ~float64
}

type direction int

const (
	dirRed direction = iota
	dirGreen
	dirBlue
)

func wuIndex(r, g, b int) int {
	return r*wuSideLength*wuSideLength + g*wuSideLength + b
}

// box is a half-open range of histogram cells: (r0, r1] and so on.
type box struct {
	r0, r1 int
	g0, g1 int
	b0, b1 int
	vol    int
}

// histogram holds the Wu moments: the weight, the per-channel sums and the
// sum of squared magnitudes of the pixels falling in each cell. After
// cumulate it holds the running sums instead.
type histogram struct {
	weights []int64
	mR      []int64
	mG      []int64
	mB      []int64
	m2      []float64
}

func newHistogram() *histogram {
	return &histogram{
		weights: make([]int64, wuTotalSize),
		mR:      make([]int64, wuTotalSize),
		mG:      make([]int64, wuTotalSize),
		mB:      make([]int64, wuTotalSize),
		m2:      make([]float64, wuTotalSize),
	}
}

func (h *histogram) add(c cie.RGBA, count int) {
	shift := 8 - wuIndexBits
	i := wuIndex(int(c.R>>shift)+1, int(c.G>>shift)+1, int(c.B>>shift)+1)
	n := int64(count)
	r, g, b := int64(c.R), int64(c.G), int64(c.B)
	h.weights[i] += n
	h.mR[i] += n * r
	h.mG[i] += n * g
	h.mB[i] += n * b
	h.m2[i] += float64(n * (r*r + g*g + b*b))
}

func (h *histogram) merge(o *histogram) {
	for i := range wuTotalSize {
		h.weights[i] += o.weights[i]
		h.mR[i] += o.mR[i]
		h.mG[i] += o.mG[i]
		h.mB[i] += o.mB[i]
		h.m2[i] += o.m2[i]
	}
}

// buildHistogram fills the histogram from distinct colours and their
// counts. Large inputs are split into ranges that each fill a private
// histogram; merging integer sums gives the same result in any order.
func buildHistogram(colors []cie.RGBA, counts []int) (*histogram, error) {
	total := newHistogram()
	if len(colors) < parallelThreshold {
		for i, c := range colors {
			total.add(c, counts[i])
		}
		return total, nil
	}

	var mu sync.Mutex
	f := func(start, limit int) {
		local := newHistogram()
		for i := start; i < limit; i++ {
			local.add(colors[i], counts[i])
		}
		mu.Lock()
		total.merge(local)
		mu.Unlock()
	}
	if err := parallel.Run_in_parallel_over_range(0, f, 0, len(colors)); err != nil {
		return nil, fmt.Errorf("building colour histogram: %w", err)
	}
	return total, nil
}

// cumulate turns the per-cell moments into 3D prefix sums so that the
// moments of any box can be read with eight lookups.
func (h *histogram) cumulate() {
	for r := 1; r < wuSideLength; r++ {
		var (
			area                [wuSideLength]int64
			areaR, areaG, areaB [wuSideLength]int64
			area2               [wuSideLength]float64
		)
		for g := 1; g < wuSideLength; g++ {
			var line, lineR, lineG, lineB int64
			var line2 float64
			for b := 1; b < wuSideLength; b++ {
				i := wuIndex(r, g, b)
				line += h.weights[i]
				lineR += h.mR[i]
				lineG += h.mG[i]
				lineB += h.mB[i]
				line2 += h.m2[i]

				area[b] += line
				areaR[b] += lineR
				areaG[b] += lineG
				areaB[b] += lineB
				area2[b] += line2

				prev := wuIndex(r-1, g, b)
				h.weights[i] = h.weights[prev] + area[b]
				h.mR[i] = h.mR[prev] + areaR[b]
				h.mG[i] = h.mG[prev] + areaG[b]
				h.mB[i] = h.mB[prev] + areaB[b]
				h.m2[i] = h.m2[prev] + area2[b]
			}
		}
	}
}

func volume[T number](c box, m []T) T {
	return m[wuIndex(c.r1, c.g1, c.b1)] -
		m[wuIndex(c.r1, c.g1, c.b0)] -
		m[wuIndex(c.r1, c.g0, c.b1)] +
		m[wuIndex(c.r1, c.g0, c.b0)] -
		m[wuIndex(c.r0, c.g1, c.b1)] +
		m[wuIndex(c.r0, c.g1, c.b0)] +
		m[wuIndex(c.r0, c.g0, c.b1)] -
		m[wuIndex(c.r0, c.g0, c.b0)]
}

// bottom is the part of volume that does not depend on the cut position.
func bottom[T number](c box, d direction, m []T) T {
	switch d {
	case dirRed:
		return -m[wuIndex(c.r0, c.g1, c.b1)] +
			m[wuIndex(c.r0, c.g1, c.b0)] +
			m[wuIndex(c.r0, c.g0, c.b1)] -
			m[wuIndex(c.r0, c.g0, c.b0)]
	case dirGreen:
		return -m[wuIndex(c.r1, c.g0, c.b1)] +
			m[wuIndex(c.r1, c.g0, c.b0)] +
			m[wuIndex(c.r0, c.g0, c.b1)] -
			m[wuIndex(c.r0, c.g0, c.b0)]
	default:
		return -m[wuIndex(c.r1, c.g1, c.b0)] +
			m[wuIndex(c.r1, c.g0, c.b0)] +
			m[wuIndex(c.r0, c.g1, c.b0)] -
			m[wuIndex(c.r0, c.g0, c.b0)]
	}
}

// top is the part of volume that depends on the cut position.
func top[T number](c box, d direction, pos int, m []T) T {
	switch d {
	case dirRed:
		return m[wuIndex(pos, c.g1, c.b1)] -
			m[wuIndex(pos, c.g1, c.b0)] -
			m[wuIndex(pos, c.g0, c.b1)] +
			m[wuIndex(pos, c.g0, c.b0)]
	case dirGreen:
		return m[wuIndex(c.r1, pos, c.b1)] -
			m[wuIndex(c.r1, pos, c.b0)] -
			m[wuIndex(c.r0, pos, c.b1)] +
			m[wuIndex(c.r0, pos, c.b0)]
	default:
		return m[wuIndex(c.r1, c.g1, pos)] -
			m[wuIndex(c.r1, c.g0, pos)] -
			m[wuIndex(c.r0, c.g1, pos)] +
			m[wuIndex(c.r0, c.g0, pos)]
	}
}

func (h *histogram) variance(c box) float64 {
	dr := float64(volume(c, h.mR))
	dg := float64(volume(c, h.mG))
	db := float64(volume(c, h.mB))
	xx := volume(c, h.m2)
	hypotenuse := dr*dr + dg*dg + db*db
	return xx - hypotenuse/float64(volume(c, h.weights))
}

type cutResult struct {
	location int
	maximum  float64
}

func (h *histogram) maximize(c box, d direction, first, last int, wholeR, wholeG, wholeB, wholeW int64) cutResult {
	bottomR := bottom(c, d, h.mR)
	bottomG := bottom(c, d, h.mG)
	bottomB := bottom(c, d, h.mB)
	bottomW := bottom(c, d, h.weights)

	res := cutResult{location: -1}
	for i := first; i < last; i++ {
		halfR := bottomR + top(c, d, i, h.mR)
		halfG := bottomG + top(c, d, i, h.mG)
		halfB := bottomB + top(c, d, i, h.mB)
		halfW := bottomW + top(c, d, i, h.weights)
		if halfW == 0 {
			continue
		}
		temp := sumSquares(halfR, halfG, halfB) / float64(halfW)

		halfR, halfG, halfB, halfW = wholeR-halfR, wholeG-halfG, wholeB-halfB, wholeW-halfW
		if halfW == 0 {
			continue
		}
		temp += sumSquares(halfR, halfG, halfB) / float64(halfW)

		if temp > res.maximum {
			res = cutResult{location: i, maximum: temp}
		}
	}
	return res
}

func sumSquares(r, g, b int64) float64 {
	fr, fg, fb := float64(r), float64(g), float64(b)
	return fr*fr + fg*fg + fb*fb
}

// cut splits one in two along the axis giving the largest variance
// reduction, storing the second half in two. It reports false when one
// cannot be split.
func (h *histogram) cut(one, two *box) bool {
	wholeR := volume(*one, h.mR)
	wholeG := volume(*one, h.mG)
	wholeB := volume(*one, h.mB)
	wholeW := volume(*one, h.weights)

	maxR := h.maximize(*one, dirRed, one.r0+1, one.r1, wholeR, wholeG, wholeB, wholeW)
	maxG := h.maximize(*one, dirGreen, one.g0+1, one.g1, wholeR, wholeG, wholeB, wholeW)
	maxB := h.maximize(*one, dirBlue, one.b0+1, one.b1, wholeR, wholeG, wholeB, wholeW)

	var d direction
	switch {
	case maxR.maximum >= maxG.maximum && maxR.maximum >= maxB.maximum:
		if maxR.location < 0 {
			return false
		}
		d = dirRed
	case maxG.maximum >= maxR.maximum && maxG.maximum >= maxB.maximum:
		d = dirGreen
	default:
		d = dirBlue
	}

	two.r1, two.g1, two.b1 = one.r1, one.g1, one.b1
	switch d {
	case dirRed:
		one.r1 = maxR.location
		two.r0, two.g0, two.b0 = one.r1, one.g0, one.b0
	case dirGreen:
		one.g1 = maxG.location
		two.r0, two.g0, two.b0 = one.r0, one.g1, one.b0
	case dirBlue:
		one.b1 = maxB.location
		two.r0, two.g0, two.b0 = one.r0, one.g0, one.b1
	}
	one.vol = (one.r1 - one.r0) * (one.g1 - one.g0) * (one.b1 - one.b0)
	two.vol = (two.r1 - two.r0) * (two.g1 - two.g0) * (two.b1 - two.b0)
	return true
}

// boxes repeatedly splits the box with the largest variance until maxColors
// boxes exist or no box can be split further.
func (h *histogram) boxes(maxColors int) []box {
	cubes := make([]box, maxColors)
	variances := make([]float64, maxColors)
	cubes[0] = box{r1: wuSideLength - 1, g1: wuSideLength - 1, b1: wuSideLength - 1}

	generated := maxColors
	next := 0
	for i := 1; i < maxColors; i++ {
		if h.cut(&cubes[next], &cubes[i]) {
			variances[next] = 0
			if cubes[next].vol > 1 {
				variances[next] = h.variance(cubes[next])
			}
			variances[i] = 0
			if cubes[i].vol > 1 {
				variances[i] = h.variance(cubes[i])
			}
		} else {
			variances[next] = 0
			i--
		}

		next = 0
		best := variances[0]
		for j := 1; j <= i; j++ {
			if variances[j] > best {
				best = variances[j]
				next = j
			}
		}
		if best <= 0 {
			generated = i + 1
			break
		}
	}
	return cubes[:generated]
}

// Wu quantizes pixels to at most maxColors colours with Wu's greedy
// orthogonal bipartitioning. Alpha is ignored. The result is ordered by box
// creation and is the same for any ordering of equal pixel multisets.
func Wu(pixels []cie.RGBA, maxColors int) ([]cie.RGBA, error) {
	if maxColors < 1 || len(pixels) == 0 {
		return nil, nil
	}
	distinct := NewFrequencyMap[cie.RGBA]()
	for _, p := range pixels {
		distinct.Increment(cie.Opaque(p.R, p.G, p.B))
	}
	colors := distinct.Keys()
	counts := make([]int, len(colors))
	for i, c := range colors {
		counts[i] = distinct.Count(c)
	}

	h, err := buildHistogram(colors, counts)
	if err != nil {
		return nil, err
	}
	h.cumulate()

	var out []cie.RGBA
	for _, c := range h.boxes(maxColors) {
		weight := volume(c, h.weights)
		if weight <= 0 {
			continue
		}
		out = append(out, cie.Opaque(
			uint8(volume(c, h.mR)/weight),
			uint8(volume(c, h.mG)/weight),
			uint8(volume(c, h.mB)/weight),
		))
	}
	return out, nil
}
