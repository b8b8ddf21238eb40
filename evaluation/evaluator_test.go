package evaluation

import (
	"bytes"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/fruitlogit/core/model"
	"github.com/YuminosukeSato/fruitlogit/linear"
	"github.com/YuminosukeSato/fruitlogit/pkg/errors"
	"github.com/YuminosukeSato/fruitlogit/pkg/log"
	"github.com/YuminosukeSato/fruitlogit/synthetic"
)

// weightRule scores a row by its weight alone.
type weightRule struct {
	below float64
}

func (r weightRule) PredictProba(X mat.Matrix) (*mat.VecDense, error) {
	n, _ := X.Dims()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if X.At(i, 0) < r.below {
			out.SetVec(i, 0.9)
		} else {
			out.SetVec(i, 0.1)
		}
	}
	return out, nil
}

type constant float64

func (c constant) PredictProba(X mat.Matrix) (*mat.VecDense, error) {
	n, _ := X.Dims()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetVec(i, float64(c))
	}
	return out, nil
}

type failing struct{}

func (failing) PredictProba(X mat.Matrix) (*mat.VecDense, error) {
	return nil, errors.NewNotFittedError("failing", "PredictProba")
}

func TestEvaluateRates(t *testing.T) {
	tests := []struct {
		name      string
		predictor model.ProbabilityPredictor
		wantTPR   float64
		wantFPR   float64
		wantAUC   float64
		wantError float64
	}{
		{"perfect cherry rule", weightRule{below: 8}, 1, 0, 1, 0},
		{"grapes pass too", weightRule{below: 20}, 1, 0.5, 0.75, 1.0 / 3.0},
		{"always yes", constant(0.7), 1, 1, 0.5, 2.0 / 3.0},
		{"threshold is strict", constant(0.5), 0, 0, 0.5, 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvaluator(
				WithNumTests(200),
				WithGenerator(synthetic.NewGenerator(synthetic.WithSeed(1))),
			)
			report, err := e.Evaluate(tt.predictor)
			if err != nil {
				t.Fatalf("Evaluate returned error: %v", err)
			}
			if math.Abs(report.TruePositiveRate-tt.wantTPR) > 1e-12 {
				t.Errorf("TPR = %v, want %v", report.TruePositiveRate, tt.wantTPR)
			}
			if math.Abs(report.FalsePositiveRate-tt.wantFPR) > 1e-12 {
				t.Errorf("FPR = %v, want %v", report.FalsePositiveRate, tt.wantFPR)
			}
			if math.Abs(report.AUC-tt.wantAUC) > 1e-9 {
				t.Errorf("AUC = %v, want %v", report.AUC, tt.wantAUC)
			}
			if math.Abs(report.ErrorRate-tt.wantError) > 1e-12 {
				t.Errorf("ErrorRate = %v, want %v", report.ErrorRate, tt.wantError)
			}
			if report.CherryProba.Len() != 200 || report.OtherProba.Len() != 400 {
				t.Errorf("unexpected probability lengths %d, %d", report.CherryProba.Len(), report.OtherProba.Len())
			}
		})
	}
}

func TestEvaluateValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"zero tests", []Option{WithNumTests(0)}},
		{"negative threshold", []Option{WithThreshold(-0.1)}},
		{"threshold above one", []Option{WithThreshold(1.1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEvaluator(tt.opts...).Evaluate(constant(0.5))
			var vErr *errors.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestEvaluatePropagatesModelErrors(t *testing.T) {
	_, err := Evaluate(failing{}, 10, 0.5)
	var nfErr *errors.NotFittedError
	if !errors.As(err, &nfErr) {
		t.Errorf("expected NotFittedError, got %v", err)
	}

	_, err = Evaluate(linear.NewLogisticRegression(), 10, 0.5)
	if !errors.As(err, &nfErr) {
		t.Errorf("unfitted estimator: expected NotFittedError, got %v", err)
	}
}

func TestReportWriteTo(t *testing.T) {
	r := &Report{TruePositiveRate: 0.987, FalsePositiveRate: 0.0125}

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	want := "Percentage of correct predictions: 98.70%\nPercentage false positives: 1.25%\n"
	if buf.String() != want {
		t.Errorf("WriteTo wrote %q, want %q", buf.String(), want)
	}
	if n != int64(len(want)) {
		t.Errorf("WriteTo returned %d, want %d", n, len(want))
	}
}

func TestEvaluateLogs(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelInfo)
	e := NewEvaluator(WithNumTests(10), WithLogger(logger))
	if _, err := e.Evaluate(weightRule{below: 8}); err != nil {
		t.Fatal(err)
	}
	if !logger.ContainsMessage("Evaluation completed") {
		t.Error("expected completion record")
	}
	if !logger.ContainsField(log.TruePositiveRateKey, 1.0) {
		t.Error("expected preds.true_positive_rate = 1")
	}
	if !logger.ContainsField(log.SamplesKey, 30) {
		t.Error("expected data.samples = 30")
	}
	if !logger.ContainsField(log.ErrorRateKey, 0.0) {
		t.Error("expected metrics.error_rate = 0")
	}
}

// Canonical scenario: 1000 rounds of training data, 200 epochs at 0.05, 1000
// tests per class.
func TestTrainedModelSeparatesCherries(t *testing.T) {
	g := synthetic.NewGenerator(synthetic.WithSeed(1))
	X, y, err := g.PopulateAllFruit(linear.DefaultCount)
	if err != nil {
		t.Fatal(err)
	}
	w, err := linear.Train(X, y, linear.DefaultLearningRate, linear.DefaultEpochs)
	if err != nil {
		t.Fatal(err)
	}

	report, err := NewEvaluator(WithGenerator(g)).Evaluate(linear.NewFromWeights(w))
	if err != nil {
		t.Fatal(err)
	}
	if report.TruePositiveRate <= 0.8 || report.FalsePositiveRate >= 0.2 {
		t.Errorf("TPR=%.3f FPR=%.3f, want TPR > 0.8 and FPR < 0.2",
			report.TruePositiveRate, report.FalsePositiveRate)
	}
	if report.ErrorRate >= 0.2 {
		t.Errorf("ErrorRate = %.3f, want < 0.2", report.ErrorRate)
	}
}
