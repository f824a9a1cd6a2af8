package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitLevel(t *testing.T) {
	t.Cleanup(func() { logrus.SetLevel(logrus.InfoLevel) })

	Init("debug", "text")
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", logrus.GetLevel())
	}

	Init("nonsense", "text")
	if logrus.GetLevel() != logrus.InfoLevel {
		t.Errorf("expected fallback to info, got %s", logrus.GetLevel())
	}
}

func TestFormatter(t *testing.T) {
	if _, ok := formatter("json").(*logrus.JSONFormatter); !ok {
		t.Error("expected JSON formatter for json")
	}
	if _, ok := formatter("text").(*logrus.TextFormatter); !ok {
		t.Error("expected text formatter for text")
	}
	if _, ok := formatter("").(*logrus.TextFormatter); !ok {
		t.Error("expected text formatter by default")
	}
}

func TestFor(t *testing.T) {
	entry := For("retriever")
	if entry.Data["component"] != "retriever" {
		t.Errorf("expected component field, got %v", entry.Data)
	}
}
