// Package config loads experiment settings from YAML.
//
// A file only needs the keys it changes; everything else keeps the value from
// Default.
//
//	training:
//	  count: 500
//	  epochs: 300
//	seed: 42
//	log:
//	  format: json
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/fruitlogit/evaluation"
	"github.com/YuminosukeSato/fruitlogit/linear"
	"github.com/YuminosukeSato/fruitlogit/pkg/errors"
	"github.com/YuminosukeSato/fruitlogit/pkg/log"
)

// Config is a complete train-and-evaluate run.
type Config struct {
	Training   Training   `yaml:"training"`
	Evaluation Evaluation `yaml:"evaluation"`
	// Seed makes data generation reproducible when set.
	Seed   *uint64 `yaml:"seed,omitempty"`
	Log    Log     `yaml:"log"`
	Output Output  `yaml:"output"`
}

// Training controls data generation and gradient descent.
type Training struct {
	Count         int     `yaml:"count"`
	LearningRate  float64 `yaml:"learning_rate"`
	Epochs        int     `yaml:"epochs"`
	InitialWeight float64 `yaml:"initial_weight"`
}

// Evaluation controls the test draws.
type Evaluation struct {
	NumTests  int     `yaml:"num_tests"`
	Threshold float64 `yaml:"threshold"`
}

// Log selects the level ("debug", "info", "warn", "error") and format
// ("console", "json").
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Output names optional chart files. Empty paths are skipped.
type Output struct {
	LossPlot        string `yaml:"loss_plot"`
	ProbabilityPlot string `yaml:"probability_plot"`
}

// Default returns the canonical run.
func Default() Config {
	return Config{
		Training: Training{
			Count:         linear.DefaultCount,
			LearningRate:  linear.DefaultLearningRate,
			Epochs:        linear.DefaultEpochs,
			InitialWeight: linear.DefaultInitialWeight,
		},
		Evaluation: Evaluation{
			NumTests:  evaluation.DefaultNumTests,
			Threshold: evaluation.DefaultThreshold,
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults and validates the result. An empty path
// returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field for a usable value.
func (c Config) Validate() error {
	switch {
	case c.Training.Count < 1:
		return errors.NewValidationError("training.count", "must be at least 1", c.Training.Count)
	case !(c.Training.LearningRate > 0):
		return errors.NewValidationError("training.learning_rate", "must be positive", c.Training.LearningRate)
	case c.Training.Epochs < 0:
		return errors.NewValidationError("training.epochs", "must be non-negative", c.Training.Epochs)
	case c.Evaluation.NumTests < 1:
		return errors.NewValidationError("evaluation.num_tests", "must be at least 1", c.Evaluation.NumTests)
	case !(c.Evaluation.Threshold >= 0 && c.Evaluation.Threshold <= 1):
		return errors.NewValidationError("evaluation.threshold", "must be in [0, 1]", c.Evaluation.Threshold)
	case c.Log.Format != "console" && c.Log.Format != "json":
		return errors.NewValidationError("log.format", "must be console or json", c.Log.Format)
	}
	_, err := log.ParseLevel(c.Log.Level)
	return err
}
