package cli

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ltschart/pkg/observability"
)

func TestLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("loaded dataset", "tracks", 3)

	line := buf.String()
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(line) {
		t.Errorf("line should start with an HH:MM:SS.cc timestamp: %q", line)
	}
	if !strings.Contains(line, "tracks=3") {
		t.Errorf("line should carry key/values: %q", line)
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     log.Level
		wantDebug bool
	}{
		{"default", LogInfo, false},
		{"verbose", LogDebug, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, tt.level)
			l.Debug("segment start", "tracks", 3)
			if got := buf.Len() > 0; got != tt.wantDebug {
				t.Errorf("debug output = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, LogInfo)).done("Rendered chart", "segments", 6)

	out := buf.String()
	if !regexp.MustCompile(`Rendered chart \(\d+(\.\d+)?[µnm]?s\)`).MatchString(out) {
		t.Errorf("message should end with the elapsed time: %q", out)
	}
	if !strings.Contains(out, "segments=6") {
		t.Errorf("key/values missing: %q", out)
	}
}

func TestVerboseRenderLogsStages(t *testing.T) {
	defer observability.Reset()
	env := newTestEnv(t)

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	c.out = io.Discard
	root := c.RootCommand()
	root.SetArgs(append([]string{"-v", "render", "-d", env.data, "--no-cache"}, window()...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}

	out := logs.String()
	for _, want := range []string{"segment start", "tracks=3", "segment done", "segments=6", "layout done", "render done", "Rendered chart"} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose log should contain %q:\n%s", want, out)
		}
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("a bare context should yield the default logger")
	}

	l := newLogger(io.Discard, LogInfo)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("the attached logger should be returned")
	}
}
