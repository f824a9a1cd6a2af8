package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestLineReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &LineReporter{w: &buf}
	r.Start(2)
	r.Update(1, "Spa and Massage")
	r.Update(2, "Rooftop Bar")
	r.Finish()

	out := buf.String()
	for _, want := range []string{"Seeding 2 knowledge entries", "[1/2] Spa and Massage", "[2/2] Rooftop Bar", "Knowledge seeded"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter(&bytes.Buffer{}).(*LineReporter); !ok {
		t.Error("expected LineReporter when CI is set")
	}
}

func TestNewReporterInteractive(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	var buf bytes.Buffer
	r := NewReporter(&buf)
	if _, ok := r.(*TerminalReporter); !ok {
		t.Fatal("expected TerminalReporter")
	}
	r.Start(3)
	r.Update(3, "done")
	r.Finish()
}
