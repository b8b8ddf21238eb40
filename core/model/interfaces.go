package model

import "gonum.org/v1/gonum/mat"

// Fitter is a model trained on a feature matrix and a label vector.
type Fitter interface {
	Fit(X mat.Matrix, y mat.Vector) error
}

// ProbabilityPredictor returns, for every row of X, the probability that it
// belongs to the positive class.
type ProbabilityPredictor interface {
	PredictProba(X mat.Matrix) (*mat.VecDense, error)
}

// Classifier is a fitted binary classifier.
type Classifier interface {
	Fitter
	ProbabilityPredictor
	// Predict returns 0/1 labels for every row of X.
	Predict(X mat.Matrix) (*mat.VecDense, error)
}
