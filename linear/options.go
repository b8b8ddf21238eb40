package linear

import "github.com/YuminosukeSato/fruitlogit/pkg/log"

// Option configures a LogisticRegression.
type Option func(*LogisticRegression)

// WithLearningRate sets the gradient descent step size.
func WithLearningRate(lr float64) Option {
	return func(m *LogisticRegression) {
		m.learningRate = lr
	}
}

// WithEpochs sets the number of full-batch steps.
func WithEpochs(epochs int) Option {
	return func(m *LogisticRegression) {
		m.epochs = epochs
	}
}

// WithInitialWeight sets the value every weight starts from.
func WithInitialWeight(w float64) Option {
	return func(m *LogisticRegression) {
		m.initialWeight = w
	}
}

// WithThreshold sets the probability above which Predict returns 1.
func WithThreshold(threshold float64) Option {
	return func(m *LogisticRegression) {
		m.threshold = threshold
	}
}

// WithLogger sets the logger. The estimator adds its name and ID to every record.
func WithLogger(logger log.Logger) Option {
	return func(m *LogisticRegression) {
		m.logger = logger
	}
}
