// Package metrics provides evaluation metrics for binary classifiers.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/fruitlogit/pkg/errors"
)

// logLossEpsilon bounds probabilities away from 0 and 1 before taking logs.
const logLossEpsilon = 1e-15

func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 || yPred.Len() == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

func checkBinary(op string, y *mat.VecDense) error {
	for i := 0; i < y.Len(); i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return errors.NewValueError(op, "labels must be 0 or 1")
		}
	}
	return nil
}

// RateAboveThreshold returns the fraction of probabilities strictly greater
// than threshold.
func RateAboveThreshold(proba *mat.VecDense, threshold float64) (float64, error) {
	if proba == nil || proba.Len() == 0 {
		return 0, errors.NewValueError("RateAboveThreshold", "empty vector")
	}
	n := proba.Len()
	above := 0
	for i := 0; i < n; i++ {
		if proba.AtVec(i) > threshold {
			above++
		}
	}
	return float64(above) / float64(n), nil
}

// Accuracy returns the fraction of predictions equal to the true labels.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ClassificationError returns 1 − Accuracy.
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("ClassificationError", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	wrong := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) != yPred.AtVec(i) {
			wrong++
		}
	}
	return float64(wrong) / float64(n), nil
}

// BinaryLogLoss returns the mean cross-entropy of predicted probabilities
// against 0/1 labels:
//
//	-1/n Σ [y·log(p) + (1−y)·log(1−p)]
//
// Probabilities are clipped to [1e-15, 1−1e-15].
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("BinaryLogLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinary("BinaryLogLoss", yTrue); err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		p := errors.ClipValue(yPred.AtVec(i), logLossEpsilon, 1-logLossEpsilon)
		if yTrue.AtVec(i) == 1 {
			sum += math.Log(p)
		} else {
			sum += math.Log(1 - p)
		}
	}
	return -sum / float64(n), nil
}

// AUC returns the area under the ROC curve of scores yPred against 0/1 labels.
// Tied scores contribute half a pair. When only one class is present the
// result is 0.5 and an UndefinedMetricWarning is raised.
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("AUC", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinary("AUC", yTrue); err != nil {
		return 0, err
	}

	positives := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == 1 {
			positives++
		}
	}
	if positives == 0 || positives == n {
		errors.Warn(errors.NewUndefinedMetricWarning("AUC", "only one class present in yTrue", 0.5))
		return 0.5, nil
	}

	// stat.ROC needs scores in ascending order.
	scores := make([]float64, n)
	for i := 0; i < n; i++ {
		scores[i] = yPred.AtVec(i)
	}
	idx := make([]int, n)
	floats.Argsort(scores, idx)

	classes := make([]bool, n)
	for i, j := range idx {
		classes[i] = yTrue.AtVec(j) == 1
	}

	tpr, fpr, _ := stat.ROC(nil, scores, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}
