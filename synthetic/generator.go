package synthetic

import (
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/fruitlogit/pkg/errors"
	"github.com/YuminosukeSato/fruitlogit/pkg/log"
)

// Generator draws fruit samples. Every draw uses a freshly seeded PCG source.
// With WithSeed the per-draw seeds come from a seeded master source, so the
// whole sequence of draws is reproducible. Generator is safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	master *rand.Rand
	logger log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the generator deterministic.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.master = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithLogger sets the logger used for debug output. Without it the
// process-wide logger is used.
func WithLogger(logger log.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) log() log.Logger {
	if g.logger != nil {
		return g.logger
	}
	return log.GetLoggerWithName("synthetic")
}

var defaultGenerator = NewGenerator()

func (g *Generator) source() rand.Source {
	if g.master == nil {
		return rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return rand.NewPCG(g.master.Uint64(), g.master.Uint64())
}

// MakeFruit returns [weight, volume, color] with weight and volume drawn
// independently from [mean·(1−variance), mean·(1+variance)].
func (g *Generator) MakeFruit(meanWeight, meanVolume, color, variance float64) ([]float64, error) {
	if err := validateParams(meanWeight, meanVolume, variance); err != nil {
		return nil, err
	}

	src := g.source()
	weight := distuv.Uniform{Min: meanWeight * (1 - variance), Max: meanWeight * (1 + variance), Src: src}
	volume := distuv.Uniform{Min: meanVolume * (1 - variance), Max: meanVolume * (1 + variance), Src: src}

	return []float64{weight.Rand(), volume.Rand(), color}, nil
}

// Sample draws one feature vector for the archetype.
func (g *Generator) Sample(a Archetype) ([]float64, error) {
	return g.MakeFruit(a.MeanWeight, a.MeanVolume, a.Color, a.Variance)
}

// SampleN draws n samples of the archetype as the rows of an n×3 matrix.
func (g *Generator) SampleN(a Archetype, n int) (*mat.Dense, error) {
	if n < 1 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "SampleN: n must be at least 1, got %d", n)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	X := mat.NewDense(n, NumFeatures, nil)
	for i := 0; i < n; i++ {
		row, err := g.Sample(a)
		if err != nil {
			return nil, err
		}
		X.SetRow(i, row)
	}
	return X, nil
}

// PopulateAllFruit builds a training set of count rounds of one cherry, one
// grape and one apple, in that order, labelled 1, 0, 0. The result has 3·count
// rows and exactly count positives.
func (g *Generator) PopulateAllFruit(count int) (*mat.Dense, *mat.VecDense, error) {
	if count < 1 {
		return nil, nil, errors.Wrapf(errors.ErrEmptyData, "PopulateAllFruit: count must be at least 1, got %d", count)
	}

	rounds := []struct {
		archetype Archetype
		label     float64
	}{
		{Cherry, 1},
		{Grape, 0},
		{Apple, 0},
	}

	n := count * len(rounds)
	X := mat.NewDense(n, NumFeatures, nil)
	y := mat.NewVecDense(n, nil)

	i := 0
	for c := 0; c < count; c++ {
		for _, r := range rounds {
			row, err := g.Sample(r.archetype)
			if err != nil {
				return nil, nil, err
			}
			X.SetRow(i, row)
			y.SetVec(i, r.label)
			i++
		}
	}

	g.log().Debug("Generated training set",
		log.OperationKey, log.OperationGenerate,
		log.SamplesKey, n,
		log.FeaturesKey, NumFeatures,
		log.PositivesKey, count,
	)
	return X, y, nil
}

// MakeFruit draws one sample from the package generator.
func MakeFruit(meanWeight, meanVolume, color, variance float64) ([]float64, error) {
	return defaultGenerator.MakeFruit(meanWeight, meanVolume, color, variance)
}

// PopulateAllFruit builds a training set with the package generator.
func PopulateAllFruit(count int) (*mat.Dense, *mat.VecDense, error) {
	return defaultGenerator.PopulateAllFruit(count)
}

// FromRows assembles a dataset from explicit rows and labels. Rows must all
// have the same length and match the number of labels.
func FromRows(rows [][]float64, labels []float64) (*mat.Dense, *mat.VecDense, error) {
	if len(rows) == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "FromRows")
	}
	if len(rows) != len(labels) {
		return nil, nil, errors.NewDimensionError("FromRows", len(rows), len(labels), 0)
	}

	cols := len(rows[0])
	if cols == 0 {
		return nil, nil, errors.NewValueError("FromRows", "rows must have at least one feature")
	}
	data := make([]float64, 0, len(rows)*cols)
	for _, row := range rows {
		if len(row) != cols {
			return nil, nil, errors.NewDimensionError("FromRows", cols, len(row), 1)
		}
		data = append(data, row...)
	}

	y := make([]float64, len(labels))
	copy(y, labels)
	return mat.NewDense(len(rows), cols, data), mat.NewVecDense(len(y), y), nil
}
