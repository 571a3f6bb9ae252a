package tracing

import (
	"context"
	"testing"
)

func TestNormalizeJaegerCollector(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: "http://localhost:14268/api/traces"},
		{name: "blank", in: "   ", want: "http://localhost:14268/api/traces"},
		{name: "host port", in: "jaeger:14268", want: "http://jaeger:14268/api/traces"},
		{name: "trailing slash", in: "http://jaeger:14268/", want: "http://jaeger:14268/api/traces"},
		{name: "full path", in: "https://tracing.local/api/traces", want: "https://tracing.local/api/traces"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeJaegerCollector(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestInitTracer_Disabled(t *testing.T) {
	tp, err := InitTracer("board-test", "", false)
	if err != nil {
		t.Fatalf("init tracer: %v", err)
	}
	if err := Shutdown(context.Background(), tp); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
