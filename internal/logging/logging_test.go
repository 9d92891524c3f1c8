package logging

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	restore := UseLogger(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestTraceSkippedWhenDisabled(t *testing.T) {
	logs := observe(t)
	SetTraceEnabled(false)
	Trace("store.dispatch", map[string]interface{}{"action": "x"})
	if logs.Len() != 0 {
		t.Fatalf("expected no entries, got %d", logs.Len())
	}
}

func TestTraceRecordsPayloadWhenEnabled(t *testing.T) {
	logs := observe(t)
	SetTraceEnabled(true)
	t.Cleanup(func() { SetTraceEnabled(false) })

	Trace("popout.open", map[string]interface{}{"surface": "abc"})
	entries := logs.FilterMessage("popout.open").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 popout.open entry, got %d", len(entries))
	}
	if _, ok := entries[0].ContextMap()["payload"]; !ok {
		t.Fatalf("expected payload field, got %#v", entries[0].ContextMap())
	}
}

func TestErrorIgnoresNil(t *testing.T) {
	logs := observe(t)
	Error(nil)
	Error(errors.New("boom"))
	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
	if got := logs.All()[0].Message; got != "boom" {
		t.Fatalf("expected boom, got %q", got)
	}
}
