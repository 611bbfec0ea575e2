package quantize

import (
	"math"
	"math/rand"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
)

const (
	// DefaultSeed seeds the random cluster initialisation.
	DefaultSeed = 0x42688

	defaultMaxIterations = 10
	// Points only move when the distance improves by more than this, in
	// L*a*b* units.
	minMovementDistance = 3.0
)

// WSMeansOptions tunes the k-means refinement.
type WSMeansOptions struct {
	// MaxIterations caps the number of rounds; zero means 10.
	MaxIterations int
	// Seed drives the initial assignment and any random clusters; zero
	// means DefaultSeed.
	Seed int64
}

func (o WSMeansOptions) withDefaults() WSMeansOptions {
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	return o
}

// WSMeans clusters pixels with weighted k-means in L*a*b*, starting from
// startingClusters when given. Identical pixels are merged into one
// weighted point first. The result maps each non-empty cluster's colour to
// the number of pixels assigned to it.
func WSMeans(pixels []cie.RGBA, startingClusters []cie.RGBA, maxColors int, opts WSMeansOptions) *FrequencyMap[cie.RGBA] {
	opts = opts.withDefaults()
	result := NewFrequencyMap[cie.RGBA]()
	if maxColors < 1 || len(pixels) == 0 {
		return result
	}
	rnd := rand.New(rand.NewSource(opts.Seed))

	counts := NewFrequencyMap[cie.RGBA]()
	for _, p := range pixels {
		counts.Increment(cie.Opaque(p.R, p.G, p.B))
	}
	keys := counts.Keys()
	points := make([]cie.LAB, len(keys))
	weights := make([]int, len(keys))
	for i, k := range keys {
		points[i] = cie.LABFromRGBA(k)
		weights[i] = counts.Count(k)
	}

	clusterCount := min(maxColors, len(points))
	if len(startingClusters) > 0 {
		clusterCount = min(clusterCount, len(startingClusters))
	}

	clusters := make([]cie.LAB, 0, clusterCount)
	for _, c := range startingClusters {
		if len(clusters) == clusterCount {
			break
		}
		clusters = append(clusters, cie.LABFromRGBA(c))
	}
	for len(clusters) < clusterCount {
		clusters = append(clusters, cie.LAB{
			L: rnd.Float64() * 100,
			A: rnd.Float64()*201 - 100,
			B: rnd.Float64()*201 - 100,
		})
	}

	assignment := make([]int, len(points))
	for i := range assignment {
		assignment[i] = rnd.Intn(clusterCount)
	}

	distances := make([][]float64, clusterCount)
	for i := range distances {
		distances[i] = make([]float64, clusterCount)
	}
	populations := make([]int, clusterCount)

	for iteration := range opts.MaxIterations {
		for i := range clusterCount {
			for j := i + 1; j < clusterCount; j++ {
				d := cie.DeltaE(clusters[i], clusters[j])
				distances[i][j] = d
				distances[j][i] = d
			}
		}

		moved := 0
		for i, p := range points {
			prev := assignment[i]
			prevDistance := cie.DeltaE(p, clusters[prev])
			minDistance := prevDistance
			newCluster := -1
			for j := range clusterCount {
				// Triangle inequality: cluster j cannot be closer if it is at
				// least twice as far from our cluster as we are.
				if distances[prev][j] >= 4*prevDistance {
					continue
				}
				if d := cie.DeltaE(p, clusters[j]); d < minDistance {
					minDistance = d
					newCluster = j
				}
			}
			if newCluster != -1 && math.Abs(math.Sqrt(minDistance)-math.Sqrt(prevDistance)) > minMovementDistance {
				moved++
				assignment[i] = newCluster
			}
		}
		if moved == 0 && iteration != 0 {
			break
		}

		sums := make([]cie.LAB, clusterCount)
		clear(populations)
		for i, p := range points {
			c := assignment[i]
			w := float64(weights[i])
			populations[c] += weights[i]
			sums[c].L += p.L * w
			sums[c].A += p.A * w
			sums[c].B += p.B * w
		}
		for i := range clusters {
			if populations[i] == 0 {
				clusters[i] = cie.LAB{}
				continue
			}
			n := float64(populations[i])
			clusters[i] = cie.LAB{L: sums[i].L / n, A: sums[i].A / n, B: sums[i].B / n}
		}
	}

	for i, c := range clusters {
		if populations[i] == 0 {
			continue
		}
		rgb := c.RGBA()
		if result.Count(rgb) > 0 {
			continue
		}
		result.Add(rgb, populations[i])
	}
	return result
}
