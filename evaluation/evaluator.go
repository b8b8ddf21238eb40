// Package evaluation measures how well a trained classifier separates cherries
// from other fruit on freshly generated samples.
package evaluation

import (
	"fmt"
	"io"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/fruitlogit/core/model"
	"github.com/YuminosukeSato/fruitlogit/metrics"
	"github.com/YuminosukeSato/fruitlogit/pkg/errors"
	"github.com/YuminosukeSato/fruitlogit/pkg/log"
	"github.com/YuminosukeSato/fruitlogit/synthetic"
)

// Defaults for an evaluation run.
const (
	DefaultNumTests  = 1000
	DefaultThreshold = 0.5
)

// Report holds the outcome of one evaluation.
type Report struct {
	NumTests  int
	Threshold float64

	// TruePositiveRate is the fraction of cherries scored above the threshold.
	TruePositiveRate float64
	// FalsePositiveRate is the fraction of apples and grapes scored above the
	// threshold, over 2·NumTests samples.
	FalsePositiveRate float64
	// AUC is the area under the ROC curve over all generated samples.
	AUC float64
	// ErrorRate is the fraction of all 3·NumTests samples whose thresholded
	// prediction disagrees with the cherry label.
	ErrorRate float64

	// Probabilities per archetype, in generation order.
	CherryProba *mat.VecDense
	OtherProba  *mat.VecDense
}

// WriteTo prints the two headline percentages.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		"Percentage of correct predictions: %.2f%%\nPercentage false positives: %.2f%%\n",
		r.TruePositiveRate*100, r.FalsePositiveRate*100)
	return int64(n), err
}

// Evaluator scores a model on fresh synthetic draws.
type Evaluator struct {
	numTests  int
	threshold float64
	generator *synthetic.Generator
	logger    log.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithNumTests sets how many samples of each archetype are drawn.
func WithNumTests(n int) Option {
	return func(e *Evaluator) {
		e.numTests = n
	}
}

// WithThreshold sets the probability above which a sample counts as a cherry.
func WithThreshold(threshold float64) Option {
	return func(e *Evaluator) {
		e.threshold = threshold
	}
}

// WithGenerator sets the sample source.
func WithGenerator(g *synthetic.Generator) Option {
	return func(e *Evaluator) {
		e.generator = g
	}
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// NewEvaluator creates an Evaluator with DefaultNumTests and DefaultThreshold.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		numTests:  DefaultNumTests,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.generator == nil {
		e.generator = synthetic.NewGenerator()
	}
	if e.logger == nil {
		e.logger = log.GetLoggerWithName("evaluation")
	}
	return e
}

// Evaluate draws NumTests cherries, then NumTests apples and NumTests grapes,
// and reports the rates of probabilities strictly above the threshold.
func (e *Evaluator) Evaluate(m model.ProbabilityPredictor) (*Report, error) {
	if e.numTests < 1 {
		return nil, errors.NewValidationError("numTests", "must be at least 1", e.numTests)
	}
	if !(e.threshold >= 0 && e.threshold <= 1) {
		return nil, errors.NewValidationError("threshold", "must be in [0, 1]", e.threshold)
	}

	start := time.Now()
	logger := e.logger.With(log.OperationKey, log.OperationEvaluate, log.PhaseKey, log.PhaseTesting)

	cherryProba, err := e.score(m, synthetic.Cherry)
	if err != nil {
		return nil, err
	}
	appleProba, err := e.score(m, synthetic.Apple)
	if err != nil {
		return nil, err
	}
	grapeProba, err := e.score(m, synthetic.Grape)
	if err != nil {
		return nil, err
	}

	otherProba := mat.NewVecDense(2*e.numTests, nil)
	otherProba.SliceVec(0, e.numTests).(*mat.VecDense).CopyVec(appleProba)
	otherProba.SliceVec(e.numTests, 2*e.numTests).(*mat.VecDense).CopyVec(grapeProba)

	tpr, err := metrics.RateAboveThreshold(cherryProba, e.threshold)
	if err != nil {
		return nil, err
	}
	fpr, err := metrics.RateAboveThreshold(otherProba, e.threshold)
	if err != nil {
		return nil, err
	}

	n := 3 * e.numTests
	scores := mat.NewVecDense(n, nil)
	labels := mat.NewVecDense(n, nil)
	for i := 0; i < e.numTests; i++ {
		scores.SetVec(i, cherryProba.AtVec(i))
		labels.SetVec(i, 1)
	}
	for i := 0; i < 2*e.numTests; i++ {
		scores.SetVec(e.numTests+i, otherProba.AtVec(i))
	}
	auc, err := metrics.AUC(labels, scores)
	if err != nil {
		return nil, err
	}

	predicted := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if scores.AtVec(i) > e.threshold {
			predicted.SetVec(i, 1)
		}
	}
	errorRate, err := metrics.ClassificationError(labels, predicted)
	if err != nil {
		return nil, err
	}

	report := &Report{
		NumTests:          e.numTests,
		Threshold:         e.threshold,
		TruePositiveRate:  tpr,
		FalsePositiveRate: fpr,
		AUC:               auc,
		ErrorRate:         errorRate,
		CherryProba:       cherryProba,
		OtherProba:        otherProba,
	}

	logger.Info("Evaluation completed",
		log.SamplesKey, n,
		log.ThresholdKey, e.threshold,
		log.TruePositiveRateKey, tpr,
		log.FalsePositiveRateKey, fpr,
		log.AUCKey, auc,
		log.ErrorRateKey, errorRate,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return report, nil
}

func (e *Evaluator) score(m model.ProbabilityPredictor, a synthetic.Archetype) (*mat.VecDense, error) {
	X, err := e.generator.SampleN(a, e.numTests)
	if err != nil {
		return nil, err
	}
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, errors.Wrapf(err, "scoring %s", a.Name)
	}
	if proba.Len() != e.numTests {
		return nil, errors.NewDimensionError("Evaluate", e.numTests, proba.Len(), 0)
	}
	e.logger.Debug("Scored archetype",
		log.ArchetypeKey, a.Name,
		log.PredsKey, proba.Len(),
	)
	return proba, nil
}

// Evaluate scores m with a fresh default generator.
func Evaluate(m model.ProbabilityPredictor, numTests int, threshold float64) (*Report, error) {
	return NewEvaluator(WithNumTests(numTests), WithThreshold(threshold)).Evaluate(m)
}
