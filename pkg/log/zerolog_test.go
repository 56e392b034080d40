package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapterWithLogger(zerolog.New(&buf))

	adapter.Info("buffer received",
		String("kind", "power"),
		Int("segments", 3),
		Uint64("cycle", 7),
		Duration("elapsed", 2*time.Second),
		Err(errors.New("boom")))

	out := buf.String()
	for _, want := range []string{
		`"message":"buffer received"`,
		`"kind":"power"`,
		`"segments":3`,
		`"cycle":7`,
		`"error":"boom"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestZerologAdapter_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapterWithLogger(zerolog.New(&buf))

	if err := adapter.SetLevel("warn"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	adapter.Info("quiet")
	adapter.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info message logged at warn level: %s", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("warn message missing: %s", out)
	}

	if err := adapter.SetLevel("extremely"); err == nil {
		t.Error("SetLevel accepted an unknown level")
	}
}
