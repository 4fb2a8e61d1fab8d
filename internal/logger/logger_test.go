package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextRoundTrip(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(core)

	ctx := NewContext(context.Background(), l)
	L(ctx).Info("hello")

	if logs.FilterMessage("hello").Len() != 1 {
		t.Errorf("message not logged through context logger")
	}
}

func TestL_FallsBackToGlobal(t *testing.T) {
	if L(context.Background()) == nil {
		t.Fatal("L returned nil without a context logger")
	}
	if L(context.Background()) != zap.L() {
		t.Error("L should return the global logger when the context has none")
	}
}

func TestVerbose(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"debug", true},
		{" DEBUG ", true},
		{"info", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Verbose(tt.level); got != tt.want {
			t.Errorf("Verbose(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, verbose := range []bool{true, false} {
		l, err := New(verbose)
		if err != nil {
			t.Fatalf("New(%v) failed: %v", verbose, err)
		}
		if got := l.Core().Enabled(zap.DebugLevel); got != verbose {
			t.Errorf("New(%v) debug enabled = %v", verbose, got)
		}
	}
}
