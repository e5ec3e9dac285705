// Package classifier provides the decision-forest model used to smooth the
// rule labels over a larger simulated population for heatmap rendering. It
// interpolates the threshold rule's decision boundary; it does not and
// cannot improve on it, since the rule itself is the only ground truth.
package classifier

import (
	"errors"
	"math"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/Deekshith1804/gnss2/internal/models"
)

// Defaults mirror the documented training configuration: 100 trees over a
// 3000-point synthetic population with a fixed seed for reproducibility.
const (
	DefaultTrees = 100
	DefaultSeed  = 42

	maxDepth         = 12
	minLeafSize      = 2
	splitCandidates  = 16 // quantile thresholds evaluated per feature
	featuresPerSplit = 2  // of the 4 features, per node
	numFeatures      = 4
)

// ErrNoTrainingData is returned when the training population is empty.
var ErrNoTrainingData = errors.New("classifier: empty training population")

// Forest is an ensemble of CART trees combined by majority vote.
type Forest struct {
	trees []*node
}

type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node
	leaf      bool
	vote      bool
}

func featureVector(s models.ForecastSample) [numFeatures]float64 {
	return [numFeatures]float64{s.Cloud, s.Rain, s.TEC, float64(s.Kp)}
}

// Train fits trees bootstrap-sampled trees on the labeled population using
// a fixed seed, so repeated training on the same population yields the
// identical model.
func Train(pop []models.LabeledSample, trees int, seed uint64) (*Forest, error) {
	if len(pop) == 0 {
		return nil, ErrNoTrainingData
	}
	if trees <= 0 {
		trees = DefaultTrees
	}

	xs := make([][numFeatures]float64, len(pop))
	ys := make([]bool, len(pop))
	for i, s := range pop {
		xs[i] = featureVector(s.Sample)
		ys[i] = s.Outage
	}

	rng := rand.New(rand.NewSource(seed))
	f := &Forest{trees: make([]*node, trees)}
	for t := 0; t < trees; t++ {
		idx := bootstrap(rng, len(xs))
		f.trees[t] = grow(xs, ys, idx, 0, rng)
	}
	return f, nil
}

// Predict returns the majority vote of the ensemble for one feature vector.
func (f *Forest) Predict(s models.ForecastSample) bool {
	x := featureVector(s)
	votes := 0
	for _, t := range f.trees {
		if t.classify(x) {
			votes++
		}
	}
	return votes*2 > len(f.trees)
}

func (n *node) classify(x [numFeatures]float64) bool {
	for !n.leaf {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.vote
}

func bootstrap(rng *rand.Rand, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.Intn(n)
	}
	return idx
}

func grow(xs [][numFeatures]float64, ys []bool, idx []int, depth int, rng *rand.Rand) *node {
	pos := 0
	for _, i := range idx {
		if ys[i] {
			pos++
		}
	}
	if pos == 0 || pos == len(idx) || depth >= maxDepth || len(idx) < 2*minLeafSize {
		return &node{leaf: true, vote: pos*2 > len(idx)}
	}

	feat, thr, ok := bestSplit(xs, ys, idx, rng)
	if !ok {
		return &node{leaf: true, vote: pos*2 > len(idx)}
	}

	var left, right []int
	for _, i := range idx {
		if xs[i][feat] <= thr {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < minLeafSize || len(right) < minLeafSize {
		return &node{leaf: true, vote: pos*2 > len(idx)}
	}

	return &node{
		feature:   feat,
		threshold: thr,
		left:      grow(xs, ys, left, depth+1, rng),
		right:     grow(xs, ys, right, depth+1, rng),
	}
}

// bestSplit evaluates quantile thresholds for a random feature subset and
// returns the split minimizing the weighted Gini impurity.
func bestSplit(xs [][numFeatures]float64, ys []bool, idx []int, rng *rand.Rand) (int, float64, bool) {
	bestGini := math.Inf(1)
	bestFeat, bestThr := -1, 0.0

	for _, feat := range rng.Perm(numFeatures)[:featuresPerSplit] {
		vals := make([]float64, len(idx))
		for i, j := range idx {
			vals[i] = xs[j][feat]
		}
		sort.Float64s(vals)
		if vals[0] == vals[len(vals)-1] {
			continue
		}

		for c := 1; c <= splitCandidates; c++ {
			thr := vals[len(vals)*c/(splitCandidates+1)]
			if thr >= vals[len(vals)-1] {
				continue
			}
			g := giniOfSplit(xs, ys, idx, feat, thr)
			if g < bestGini {
				bestGini = g
				bestFeat = feat
				bestThr = thr
			}
		}
	}
	return bestFeat, bestThr, bestFeat >= 0
}

func giniOfSplit(xs [][numFeatures]float64, ys []bool, idx []int, feat int, thr float64) float64 {
	var ln, lp, rn, rp float64
	for _, i := range idx {
		if xs[i][feat] <= thr {
			ln++
			if ys[i] {
				lp++
			}
		} else {
			rn++
			if ys[i] {
				rp++
			}
		}
	}
	if ln == 0 || rn == 0 {
		return math.Inf(1)
	}
	return (ln*gini(lp/ln) + rn*gini(rp/rn)) / (ln + rn)
}

func gini(p float64) float64 {
	return 2 * p * (1 - p)
}
