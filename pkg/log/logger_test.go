package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/YuminosukeSato/fruitlogit/pkg/errors"
)

func TestTestLoggerLevels(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationFit)
	testLogger.Warn("warning message", ErrorCodeKey, ErrorInvalidInput)
	testLogger.Error("error message", fmt.Errorf("test error"), ErrorCodeKey, ErrorEmptyData)

	if buffer.Len() == 0 {
		t.Fatal("Expected log output, got empty buffer")
	}
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}
	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}
	if !testLogger.ContainsField("number", 42.0) {
		t.Error("Expected field number=42 not found")
	}
	if !testLogger.ContainsField(ErrorKey, "test error") {
		t.Error("Leading error should be recorded under the error key")
	}
	if !testLogger.ContainsField(ErrorCodeKey, ErrorEmptyData) {
		t.Error("Fields after the error should be kept")
	}
}

func TestTestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ModelNameKey, "LogisticRegression",
		EstimatorIDKey, "lr-001",
	)
	contextLogger.Info("contextual message", OperationKey, OperationFit)

	if !testLogger.ContainsField(ModelNameKey, "LogisticRegression") {
		t.Error("Model name context not found")
	}
	if !testLogger.ContainsField(EstimatorIDKey, "lr-001") {
		t.Error("Estimator id context not found")
	}
	if !testLogger.ContainsField(OperationKey, OperationFit) {
		t.Error("Operation field not found")
	}
}

func TestTestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	if !testLogger.Enabled(ctx, LevelInfo) || !testLogger.Enabled(ctx, LevelError) {
		t.Error("Logger should be enabled for Info and Error")
	}
	if testLogger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	testLogger.Debug("hidden")
	testLogger.Info("shown")
	if testLogger.ContainsMessage("hidden") {
		t.Error("Debug message should not appear when level is Info")
	}
	if !testLogger.ContainsMessage("shown") {
		t.Error("Info message should appear when level is Info")
	}

	testLogger.Clear()
	if testLogger.ContainsMessage("shown") {
		t.Error("Clear should drop captured records")
	}
}

func TestTestLoggerConcurrent(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	child := testLogger.With(ComponentKey, "linear")

	const goroutines, messages = 4, 25
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < messages; j++ {
				child.Info("message", "goroutine_id", id, "message_id", j)
			}
		}(i)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}
	if len(entries) != goroutines*messages {
		t.Errorf("Expected %d log entries, got %d", goroutines*messages, len(entries))
	}
}

func TestZerologLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo).With(ModelNameKey, "LogisticRegression")

	logger.Debug("dropped")
	logger.Info("Training completed", EpochsKey, 200, LossKey, 0.25)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 record, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if entry["message"] != "Training completed" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v", entry["level"])
	}
	if entry[ModelNameKey] != "LogisticRegression" {
		t.Errorf("%s = %v", ModelNameKey, entry[ModelNameKey])
	}
	if entry[EpochsKey] != 200.0 {
		t.Errorf("%s = %v", EpochsKey, entry[EpochsKey])
	}
}

func TestZerologLoggerErrorDetail(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug)

	err := errors.NewDimensionError("GradientDescentStep", 3, 2, 1)
	logger.Error("Training failed", err, OperationKey, OperationFit)

	var entry map[string]interface{}
	if jerr := json.Unmarshal(buf.Bytes(), &entry); jerr != nil {
		t.Fatalf("record is not JSON: %v", jerr)
	}
	if !strings.Contains(fmt.Sprint(entry[ErrorKey]), "dimension mismatch") {
		t.Errorf("error = %v", entry[ErrorKey])
	}
	detail, ok := entry[ErrorDetailKey].(map[string]interface{})
	if !ok {
		t.Fatalf("expected %s object, got %v", ErrorDetailKey, entry[ErrorDetailKey])
	}
	if detail["type"] != "DimensionError" {
		t.Errorf("detail type = %v", detail["type"])
	}
	if entry[OperationKey] != OperationFit {
		t.Errorf("%s = %v", OperationKey, entry[OperationKey])
	}
}

func TestZerologLoggerEnabled(t *testing.T) {
	logger := NewZerologLogger(&bytes.Buffer{}, LevelWarn)
	ctx := context.Background()

	if logger.Enabled(ctx, LevelInfo) {
		t.Error("Info should be disabled at Warn level")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("Error should be enabled at Warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetupLogger(t *testing.T) {
	previous := GetLogger()
	defer SetLogger(previous)
	defer errors.SetZerologWarnFunc(nil)

	var buf bytes.Buffer
	if err := SetupLogger("info", "json", &buf); err != nil {
		t.Fatalf("SetupLogger() error = %v", err)
	}

	GetLoggerWithName("synthetic").Info("generated", SamplesKey, 30)
	errors.Warn(errors.NewUndefinedMetricWarning("AUC", "only one class present", 0.5))

	out := buf.String()
	if !strings.Contains(out, `"ml.component":"synthetic"`) {
		t.Errorf("component field missing: %s", out)
	}
	if !strings.Contains(out, "UndefinedMetricWarning") {
		t.Errorf("warnings should be routed to the logger: %s", out)
	}

	if err := SetupLogger("info", "xml", &buf); err == nil {
		t.Error("unknown format should be rejected")
	}
	if err := SetupLogger("loud", "json", &buf); err == nil {
		t.Error("unknown level should be rejected")
	}
}

func TestLevelString(t *testing.T) {
	if LevelWarn.String() != "WARN" || Level(99).String() != "UNKNOWN" {
		t.Error("unexpected level names")
	}
}
