package out_test

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	mealsout "mealsync/internal/modules/meals/adapter/out"
)

func TestConsoleReporterPlainOutput(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := mealsout.NewConsoleReporter(&buf)
	r.Banner("Meals")
	r.Step("Logging in...")
	r.Done("Login successful")
	r.Warn("markers missing")
	r.Line("  %s: %d item(s)", "lunch", 1)
	out := buf.String()
	for _, want := range []string{
		strings.Repeat("=", 60) + "\nMeals\n",
		"Logging in...\n",
		"✓ Login successful\n",
		"WARNING: markers missing\n",
		"  lunch: 1 item(s)\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestLogReporterLevels(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.InfoLevel)
	r := mealsout.NewLogReporter(zap.New(core))
	r.Step("step")
	r.Done("done")
	r.Warn("warn")
	entries := logs.AllUntimed()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[2].Level != zapcore.WarnLevel || entries[2].Message != "warn" {
		t.Fatalf("unexpected warn entry %+v", entries[2])
	}
}
