// Package linear implements binary logistic regression trained by full-batch
// gradient descent.
//
// The free functions are pure: they never modify their inputs and always
// return freshly allocated results. LogisticRegression wraps them in an
// estimator that tracks fitted state, loss history and structured logs.
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/fruitlogit/pkg/errors"
)

// Training defaults.
const (
	DefaultCount         = 1000
	DefaultLearningRate  = 0.05
	DefaultEpochs        = 200
	DefaultInitialWeight = 0.1
	DefaultThreshold     = 0.5
)

// Sigmoid returns 1/(1+e^−x). Large negative inputs give 0 rather than NaN.
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Predict returns the probability that sample belongs to the positive class,
// Sigmoid(weights·sample).
func Predict(weights, sample mat.Vector) (float64, error) {
	if weights.Len() != sample.Len() {
		return 0, errors.NewDimensionError("Predict", weights.Len(), sample.Len(), 1)
	}
	return Sigmoid(mat.Dot(weights, sample)), nil
}

// GradientDescentStep performs one full-batch update:
//
//	grad = Xᵀ(y − σ(Xw))
//	w'   = w + learningRate·grad/n
//
// weights is not modified.
func GradientDescentStep(weights mat.Vector, X mat.Matrix, y mat.Vector, learningRate float64) (*mat.VecDense, error) {
	n, d := X.Dims()
	if n == 0 || d == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "GradientDescentStep")
	}
	if weights.Len() != d {
		return nil, errors.NewDimensionError("GradientDescentStep", d, weights.Len(), 1)
	}
	if y.Len() != n {
		return nil, errors.NewDimensionError("GradientDescentStep", n, y.Len(), 0)
	}

	residual := mat.NewVecDense(n, nil)
	residual.MulVec(X, weights)
	for i := 0; i < n; i++ {
		residual.SetVec(i, y.AtVec(i)-Sigmoid(residual.AtVec(i)))
	}

	grad := mat.NewVecDense(d, nil)
	grad.MulVec(X.T(), residual)

	next := mat.VecDenseCopyOf(weights)
	next.AddScaledVec(next, learningRate/float64(n), grad)
	return next, nil
}

// Train runs exactly epochs gradient descent steps over X and y, starting from
// weights of DefaultInitialWeight. There is no shuffling and no early stop.
func Train(X mat.Matrix, y mat.Vector, learningRate float64, epochs int) (*mat.VecDense, error) {
	return train(X, y, learningRate, epochs, DefaultInitialWeight, nil)
}

func validateHyperparams(learningRate float64, epochs int) error {
	if !(learningRate > 0) || math.IsInf(learningRate, 0) {
		return errors.NewValidationError("learningRate", "must be a positive finite number", learningRate)
	}
	if epochs < 0 {
		return errors.NewValidationError("epochs", "must be non-negative", epochs)
	}
	return nil
}

// train is shared by Train and LogisticRegression.Fit. onEpoch, when set, sees
// the weights after every step.
func train(X mat.Matrix, y mat.Vector, learningRate float64, epochs int, initialWeight float64,
	onEpoch func(epoch int, w *mat.VecDense) error) (*mat.VecDense, error) {
	if err := validateHyperparams(learningRate, epochs); err != nil {
		return nil, err
	}
	n, d := X.Dims()
	if n == 0 || d == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Train")
	}
	if y.Len() != n {
		return nil, errors.NewDimensionError("Train", n, y.Len(), 0)
	}

	w := mat.NewVecDense(d, nil)
	for j := 0; j < d; j++ {
		w.SetVec(j, initialWeight)
	}

	for epoch := 0; epoch < epochs; epoch++ {
		next, err := GradientDescentStep(w, X, y, learningRate)
		if err != nil {
			return nil, err
		}
		if err := errors.CheckNumericalStability("Train", next.RawVector().Data, epoch); err != nil {
			return nil, err
		}
		w = next
		if onEpoch != nil {
			if err := onEpoch(epoch, w); err != nil {
				return nil, err
			}
		}
	}
	return w, nil
}
