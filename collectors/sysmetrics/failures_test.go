package sysmetrics

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newCapturingLog() (*failureLog, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return newFailureLog(logger), &buf
}

func TestFailureLog_SuppressesRepeats(t *testing.T) {
	f, buf := newCapturingLog()
	err := errors.New("statfs /home: permission denied")

	for i := 0; i < 50; i++ {
		f.record(Disk, err)
	}

	if n := strings.Count(buf.String(), "sampling failed"); n != 1 {
		t.Errorf("logged %d failures, want 1\n%s", n, buf.String())
	}
}

func TestFailureLog_SummaryEveryHundred(t *testing.T) {
	f, buf := newCapturingLog()
	err := errors.New("boom")

	for i := 0; i <= repeatSummaryEvery; i++ {
		f.record(CPU, err)
	}

	if !strings.Contains(buf.String(), "sampling still failing") {
		t.Errorf("expected a repeat summary after %d repeats\n%s", repeatSummaryEvery, buf.String())
	}
}

func TestFailureLog_NewMessageLogged(t *testing.T) {
	f, buf := newCapturingLog()

	f.record(RAM, errors.New("first"))
	f.record(RAM, errors.New("first"))
	f.record(RAM, errors.New("second"))

	out := buf.String()
	if n := strings.Count(out, "sampling failed"); n != 2 {
		t.Errorf("logged %d failures, want 2\n%s", n, out)
	}
	if !strings.Contains(out, "previous failure repeated") {
		t.Errorf("expected repeat count for first error\n%s", out)
	}
}

func TestFailureLog_WindowExpiry(t *testing.T) {
	f, buf := newCapturingLog()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	f.record(CPU, errors.New("boom"))
	now = now.Add(2 * repeatWindow)
	f.record(CPU, errors.New("boom"))

	if n := strings.Count(buf.String(), "sampling failed"); n != 2 {
		t.Errorf("logged %d failures, want 2 after window expiry", n)
	}
}

func TestFailureLog_ClearAndNoBatteryLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	f := newFailureLog(logger)

	f.record(Battery, ErrNoPowerSource)
	if buf.Len() != 0 {
		t.Errorf("missing battery should only log at debug, got %q", buf.String())
	}
	if !f.failing(Battery) {
		t.Error("Battery should be failing")
	}

	f.clear(Battery)
	if f.failing(Battery) {
		t.Error("Battery should be cleared")
	}
}
