package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: InfoLevel, JSONOutput: true, Output: &buf})

	Info("dashboard listening")

	out := buf.String()
	if !strings.Contains(out, `"message":"dashboard listening"`) {
		t.Errorf("expected JSON message, got %s", out)
	}
	if !strings.Contains(out, `"time"`) {
		t.Errorf("expected timestamp field, got %s", out)
	}
}

func TestInitLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: WarnLevel, JSONOutput: true, Output: &buf})

	Debug("not shown")
	Info("not shown either")
	Warn("shown")

	out := buf.String()
	if strings.Contains(out, "not shown") {
		t.Errorf("below-level messages leaked: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestChildLoggersChain(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, JSONOutput: true, Output: &buf})

	WithComponent("errorinfo").Info().Str("location", "all_errors.json").Msg("connection opened")
	WithWorkflow("wf1").Debug().Msg("workflow page rendered")
	WithSite("site_a").Warn().Msg("site draining")
	WithAction("id-1").Error().Msg("save failed")

	out := buf.String()
	for _, want := range []string{
		`"component":"errorinfo"`,
		`"location":"all_errors.json"`,
		"connection opened",
		`"workflow":"wf1"`,
		`"site":"site_a"`,
		`"action_id":"id-1"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in output: %s", want, out)
		}
	}
}
