// Package synthetic generates labelled fruit measurements for training and
// evaluating a cherry classifier.
//
// Each sample is a feature vector [weight, volume, colorCode]. Weight and
// volume are drawn uniformly from [mean·(1−v), mean·(1+v)] around an
// archetype's means; the color code is copied as is.
package synthetic

import (
	"github.com/YuminosukeSato/fruitlogit/pkg/errors"
)

// Color codes stored in the third feature.
const (
	ColorRed   = 1.0
	ColorBlack = 2.0
)

// NumFeatures is the length of every feature vector.
const NumFeatures = 3

// DefaultVariance is the relative spread used by the predefined archetypes.
const DefaultVariance = 0.02

// Archetype describes the typical measurements of one kind of fruit.
type Archetype struct {
	Name       string
	MeanWeight float64
	MeanVolume float64
	Color      float64
	Variance   float64
}

// Predefined archetypes. Cherry is the positive class.
var (
	Cherry = Archetype{Name: "cherry", MeanWeight: 5, MeanVolume: 15, Color: ColorRed, Variance: DefaultVariance}
	Grape  = Archetype{Name: "grape", MeanWeight: 13, MeanVolume: 24, Color: ColorBlack, Variance: DefaultVariance}
	Apple  = Archetype{Name: "apple", MeanWeight: 150, MeanVolume: 450, Color: ColorRed, Variance: DefaultVariance}
)

// Validate checks that the means are positive and the variance lies in (0, 1).
func (a Archetype) Validate() error {
	return validateParams(a.MeanWeight, a.MeanVolume, a.Variance)
}

func validateParams(meanWeight, meanVolume, variance float64) error {
	if !(meanWeight > 0) {
		return errors.NewValidationError("meanWeight", "must be positive", meanWeight)
	}
	if !(meanVolume > 0) {
		return errors.NewValidationError("meanVolume", "must be positive", meanVolume)
	}
	if !(variance > 0 && variance < 1) {
		return errors.NewValidationError("variance", "must be in (0, 1)", variance)
	}
	return nil
}
