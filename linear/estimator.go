package linear

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/fruitlogit/core/model"
	"github.com/YuminosukeSato/fruitlogit/core/parallel"
	"github.com/YuminosukeSato/fruitlogit/metrics"
	"github.com/YuminosukeSato/fruitlogit/pkg/errors"
	"github.com/YuminosukeSato/fruitlogit/pkg/log"
)

const modelName = "LogisticRegression"

// LogisticRegression is a binary classifier without intercept, trained by
// fixed-epoch full-batch gradient descent on unnormalized features.
type LogisticRegression struct {
	state *model.StateManager
	id    string

	// Hyperparameters
	learningRate  float64
	epochs        int
	initialWeight float64
	threshold     float64

	logger log.Logger

	// Learned state
	weights     *mat.VecDense
	lossHistory []float64
}

var _ model.Classifier = (*LogisticRegression)(nil)

// NewLogisticRegression creates an unfitted estimator with the default
// hyperparameters.
func NewLogisticRegression(opts ...Option) *LogisticRegression {
	m := &LogisticRegression{
		state:         model.NewStateManager(modelName),
		id:            uuid.NewString(),
		learningRate:  DefaultLearningRate,
		epochs:        DefaultEpochs,
		initialWeight: DefaultInitialWeight,
		threshold:     DefaultThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.GetLoggerWithName("linear")
	}
	m.logger = m.logger.With(
		log.ModelNameKey, modelName,
		log.EstimatorIDKey, m.id,
	)
	return m
}

// NewFromWeights returns a fitted estimator using a copy of trained weights.
func NewFromWeights(weights mat.Vector, opts ...Option) *LogisticRegression {
	m := NewLogisticRegression(opts...)
	m.weights = mat.VecDenseCopyOf(weights)
	m.state.SetFitted(weights.Len(), 0)
	return m
}

// ID returns the identifier attached to this estimator's log records.
func (m *LogisticRegression) ID() string {
	return m.id
}

// IsFitted reports whether Fit has completed.
func (m *LogisticRegression) IsFitted() bool {
	return m.state.IsFitted()
}

// Fit trains the model on X (n×d) and 0/1 labels y. Any previous fit is
// discarded.
func (m *LogisticRegression) Fit(X mat.Matrix, y mat.Vector) (err error) {
	start := time.Now()
	logger := m.logger.With(log.OperationKey, log.OperationFit, log.PhaseKey, log.PhaseTraining)

	defer func() {
		if err != nil {
			logger.Error("Training failed", err)
		}
	}()
	// Runs before the logging defer, so recovered panics are logged too.
	defer errors.Recover(&err, "LogisticRegression.Fit")

	if !(m.threshold >= 0 && m.threshold <= 1) {
		return errors.NewValidationError("threshold", "must be in [0, 1]", m.threshold)
	}

	n, d := X.Dims()
	if n == 0 || d == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != n {
		return errors.NewDimensionError("LogisticRegression.Fit", n, y.Len(), 0)
	}
	labels := mat.VecDenseCopyOf(y)
	for i := 0; i < n; i++ {
		if v := labels.AtVec(i); v != 0 && v != 1 {
			return errors.NewValueError("LogisticRegression.Fit", "labels must be 0 or 1")
		}
	}

	m.state.Reset()
	m.weights = nil
	m.lossHistory = make([]float64, 0, max(m.epochs, 0))

	logger.Info("Training started",
		log.SamplesKey, n,
		log.FeaturesKey, d,
		log.LearningRateKey, m.learningRate,
		log.EpochsKey, m.epochs,
		log.InitialWeightKey, m.initialWeight,
	)

	debug := logger.Enabled(context.Background(), log.LevelDebug)
	weights, err := train(X, labels, m.learningRate, m.epochs, m.initialWeight, func(epoch int, w *mat.VecDense) error {
		loss, err := metrics.BinaryLogLoss(labels, probabilities(w, X))
		if err != nil {
			return err
		}
		if err := errors.CheckScalar("LogisticRegression.Fit", loss, epoch); err != nil {
			return err
		}
		m.lossHistory = append(m.lossHistory, loss)
		if debug {
			logger.Debug("Epoch completed",
				log.EpochKey, epoch,
				log.LossKey, loss,
			)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.weights = weights
	m.state.SetFitted(d, n)

	fields := []any{
		log.WeightsKey, weights.RawVector().Data,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	}
	if len(m.lossHistory) > 0 {
		fields = append(fields, log.LossKey, m.lossHistory[len(m.lossHistory)-1])
	}
	logger.Info("Training completed", fields...)
	return nil
}

// probabilities returns Sigmoid(w·row) for every row of X.
func probabilities(w *mat.VecDense, X mat.Matrix) *mat.VecDense {
	n, d := X.Dims()
	out := parallel.MapRows(n, parallel.DefaultRowThreshold, func(i int) float64 {
		row := mat.NewVecDense(d, mat.Row(nil, i, X))
		return Sigmoid(mat.Dot(w, row))
	})
	return mat.NewVecDense(n, out)
}

// PredictProba returns the positive-class probability for every row of X.
// Rows are scored concurrently above parallel.DefaultRowThreshold.
func (m *LogisticRegression) PredictProba(X mat.Matrix) (*mat.VecDense, error) {
	if err := m.state.RequireFitted("PredictProba"); err != nil {
		return nil, err
	}
	n, d := X.Dims()
	if n == 0 || d == 0 {
		return nil, errors.NewModelError("LogisticRegression.PredictProba", "empty data", errors.ErrEmptyData)
	}
	if d != m.weights.Len() {
		return nil, errors.NewDimensionError("LogisticRegression.PredictProba", m.weights.Len(), d, 1)
	}
	return probabilities(m.weights, X), nil
}

// Predict returns 1 for rows whose probability is strictly above the
// threshold and 0 otherwise.
func (m *LogisticRegression) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if err := m.state.RequireFitted("Predict"); err != nil {
		return nil, err
	}
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	labels := mat.NewVecDense(proba.Len(), nil)
	for i := 0; i < proba.Len(); i++ {
		if proba.AtVec(i) > m.threshold {
			labels.SetVec(i, 1)
		}
	}
	return labels, nil
}

// Score returns the accuracy of Predict(X) against y.
func (m *LogisticRegression) Score(X mat.Matrix, y mat.Vector) (float64, error) {
	if err := m.state.RequireFitted("Score"); err != nil {
		return 0, err
	}
	pred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	if y.Len() != pred.Len() {
		return 0, errors.NewDimensionError("LogisticRegression.Score", pred.Len(), y.Len(), 0)
	}
	return metrics.Accuracy(mat.VecDenseCopyOf(y), pred)
}

// Weights returns a copy of the learned weights, or nil before Fit.
func (m *LogisticRegression) Weights() *mat.VecDense {
	if m.weights == nil {
		return nil
	}
	return mat.VecDenseCopyOf(m.weights)
}

// LossHistory returns the binary log loss after each epoch of the last Fit.
func (m *LogisticRegression) LossHistory() []float64 {
	out := make([]float64, len(m.lossHistory))
	copy(out, m.lossHistory)
	return out
}

// Threshold returns the decision threshold used by Predict.
func (m *LogisticRegression) Threshold() float64 {
	return m.threshold
}
