package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/graphdraw/pkg/cache"
	"github.com/matzehuels/graphdraw/pkg/settings"
)

func TestCLILogLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     log.Level
		wantInfo  bool
		wantDebug bool
	}{
		{"quiet", LogQuiet, false, false},
		{"info", LogInfo, true, false},
		{"verbose", LogDebug, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := New(&buf, tt.level)
			c.Logger.Info("loaded settings")
			c.Logger.Debug("bucket size", "px", 100)

			if got := strings.Contains(buf.String(), "loaded settings"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(buf.String(), "bucket size"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestSetLogLevelEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("no settings file, using defaults")

	if !strings.Contains(buf.String(), "no settings file") {
		t.Errorf("debug line missing after --verbose: %q", buf.String())
	}
}

func TestLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("tick")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("line %q should start with an HH:MM:SS.ms timestamp", buf.String())
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Rendered", "formats", 2)

	for _, want := range []string{"Rendered", "formats=2", "elapsed="} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("progress line %q missing %q", buf.String(), want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("a bare context should yield the default logger")
	}

	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestRequestLoggerCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)
	h := newServer(newRenderer(cache.NewNullCache(), nil, logger), settings.Defaults(), logger).routes()

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", id)
	h.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	if !strings.Contains(line, "request="+id) {
		t.Errorf("request log %q should carry the request id", line)
	}
	if !strings.Contains(line, "status=200") {
		t.Errorf("request log %q should carry the status", line)
	}
}
