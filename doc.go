// Package fruitlogit trains and evaluates a binary logistic regression that
// tells cherries apart from grapes and apples using synthetic measurements.
//
// Each fruit is a feature vector [weight, volume, colorCode]. The model has no
// intercept and no feature scaling; it is trained by a fixed number of
// full-batch gradient descent steps starting from weights of 0.1.
//
// # Quick Start
//
//	X, y, err := synthetic.PopulateAllFruit(linear.DefaultCount)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	model := linear.NewLogisticRegression()
//	if err := model.Fit(X, y); err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := evaluation.Evaluate(model, 1000, 0.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report.WriteTo(os.Stdout)
//
// # Packages
//
//   - synthetic: fruit archetypes and the sample generator
//   - linear: Sigmoid, Predict, GradientDescentStep, Train and the LogisticRegression estimator
//   - evaluation: true/false positive rates and AUC on fresh samples
//   - metrics: classification metrics (accuracy, log loss, AUC)
//   - visualization: loss curve and probability histogram charts
//   - config: YAML run configuration
//   - core/model: estimator interfaces and fitted-state tracking
//   - core/parallel: row-parallel helpers
//   - pkg/errors, pkg/log: structured errors and zerolog-backed logging
//
// The examples/fruit_classifier command runs the whole pipeline from the
// command line.
package fruitlogit
