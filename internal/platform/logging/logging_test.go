package logging

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/janisto/little-lemon/internal/platform/timeutil"
)

func resetLoggerForTest() {
	loggerOnce = sync.Once{}
	baseLogger = nil
	loggerErr = nil
	level.SetLevel(zapcore.InfoLevel)
}

// captureStdout redirects stdout while fn runs and returns the first JSON log line.
func captureStdout(t *testing.T, fn func()) map[string]any {
	t.Helper()
	resetLoggerForTest()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	defer func() { _ = r.Close() }()

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	_ = Logger().Sync()

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read log output: %v", err)
	}
	line := strings.TrimSpace(strings.SplitN(string(data), "\n", 2)[0])
	if line == "" {
		t.Fatal("expected log output, got empty string")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("failed to unmarshal log JSON: %v", err)
	}
	return payload
}

func TestLoggerStructuredOutput(t *testing.T) {
	payload := captureStdout(t, func() {
		Logger().Info("menu filtered")
	})

	if payload["severity"] != "INFO" {
		t.Fatalf("expected severity INFO, got %v", payload["severity"])
	}
	if _, ok := payload["level"]; ok {
		t.Fatal("did not expect a level field")
	}
	if payload["message"] != "menu filtered" {
		t.Fatalf("unexpected message: %v", payload["message"])
	}
	ts, ok := payload["timestamp"].(string)
	if !ok {
		t.Fatalf("expected string timestamp, got %T", payload["timestamp"])
	}
	if _, err := time.Parse(timeutil.RFC3339Micros, ts); err != nil {
		t.Fatalf("timestamp is not RFC3339Micros: %v", err)
	}
}

func TestConfigureSetsServiceAndLevel(t *testing.T) {
	var second error
	payload := captureStdout(t, func() {
		if err := Configure(Options{Service: "little-lemon", Version: "1.2.3", Level: zapcore.WarnLevel}); err != nil {
			t.Fatalf("Configure: %v", err)
		}
		second = Configure(DefaultOptions())
		Logger().Info("filtered out")
		Logger().Warn("store slow")
	})
	defer resetLoggerForTest()

	if !errors.Is(second, ErrAlreadyConfigured) {
		t.Fatalf("expected ErrAlreadyConfigured, got %v", second)
	}
	if payload["message"] != "store slow" {
		t.Fatalf("expected info line to be dropped, got %v", payload["message"])
	}
	svc, ok := payload["serviceContext"].(map[string]any)
	if !ok {
		t.Fatalf("expected serviceContext object, got %v", payload["serviceContext"])
	}
	if svc["service"] != "little-lemon" || svc["version"] != "1.2.3" {
		t.Fatalf("unexpected serviceContext: %v", svc)
	}
}

func TestEncodeSeverity(t *testing.T) {
	tests := map[zapcore.Level]string{
		zapcore.DebugLevel:  "DEBUG",
		zapcore.InfoLevel:   "INFO",
		zapcore.WarnLevel:   "WARNING",
		zapcore.ErrorLevel:  "ERROR",
		zapcore.DPanicLevel: "CRITICAL",
		zapcore.PanicLevel:  "ALERT",
		zapcore.FatalLevel:  "EMERGENCY",
	}
	for level, want := range tests {
		enc := &captureArrayEncoder{}
		encodeSeverity(level, enc)
		if len(enc.values) != 1 || enc.values[0] != want {
			t.Errorf("encodeSeverity(%v) = %v, want %s", level, enc.values, want)
		}
	}
}

func TestLoggerSingleton(t *testing.T) {
	resetLoggerForTest()
	if Logger() != Logger() {
		t.Fatal("expected Logger() to return the same instance")
	}
	if loggerErr != nil {
		t.Fatalf("unexpected init error: %v", loggerErr)
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	if LoggerFromContext(context.Background()) != Logger() {
		t.Fatal("expected global logger for bare context")
	}
}

func TestLogErrorAppendsErrorField(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	LogError(ctx, "store write failed", errors.New("disk full"), zap.String("key", "userEmail"))
	LogError(ctx, "no error attached", nil)

	entries := recorded.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["error"] != "disk full" {
		t.Errorf("expected error field, got %v", fields["error"])
	}
	if fields["key"] != "userEmail" {
		t.Errorf("expected key field, got %v", fields["key"])
	}
	if _, ok := entries[1].ContextMap()["error"]; ok {
		t.Error("did not expect error field for nil error")
	}
}

func TestLogAuditEvent(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	LogAuditEvent(ctx, AuditEvent{
		Action:       "logout",
		Installation: "install-1",
		Resource:     "session",
		Result:       "success",
		Details:      map[string]any{"keys_removed": 8},
	})

	entries := recorded.FilterMessage("Audit event").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["audit.action"] != "logout" {
		t.Errorf("unexpected action: %v", fields["audit.action"])
	}
	if fields["audit.resource_type"] != "session" {
		t.Errorf("unexpected resource type: %v", fields["audit.resource_type"])
	}
	if fields["audit.result"] != "success" {
		t.Errorf("unexpected result: %v", fields["audit.result"])
	}
	if fields["audit.installation_id"] != "install-1" {
		t.Errorf("unexpected installation: %v", fields["audit.installation_id"])
	}

	if _, ok := fields["audit.correlation_id"]; ok {
		t.Error("correlation ID should be omitted without a trace")
	}

	LogAuditEvent(contextWithTraceID(ctx, "req-9"), AuditEvent{Action: "update", Resource: "profile", Result: "success"})
	last := recorded.FilterMessage("Audit event").All()[1].ContextMap()
	if _, ok := last["audit.details"]; ok {
		t.Error("details should be omitted when empty")
	}
	if last["audit.correlation_id"] != "req-9" {
		t.Errorf("unexpected correlation ID: %v", last["audit.correlation_id"])
	}
}

func TestRequestLoggerFallsBackToRequestID(t *testing.T) {
	var traceID string
	handler := chimiddleware.RequestID(RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceIDFromContext(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/v1/menu", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "menu-req-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if traceID != "menu-req-1" {
		t.Fatalf("expected trace ID from request ID, got %v", traceID)
	}
}

func TestAccessLoggerWritesSummary(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	access := AccessLogger()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	req := httptest.NewRequest(http.MethodPost, "/v1/onboarding", nil)
	req = req.WithContext(WithLogger(req.Context(), zap.New(core)))
	access.ServeHTTP(httptest.NewRecorder(), req)

	entries := recorded.FilterMessage("request completed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusAccepted) {
		t.Errorf("unexpected status: %v", fields["status"])
	}
	if fields["path"] != "/v1/onboarding" {
		t.Errorf("unexpected path: %v", fields["path"])
	}
}

func TestTraceFieldsFromTraceparent(t *testing.T) {
	header := "00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01"
	fields := traceFields(header, "little-lemon")
	if len(fields) != 3 {
		t.Fatalf("expected 3 trace fields, got %d", len(fields))
	}
	if fields[0].String != "projects/little-lemon/traces/ab42124a3c573678d4d8b21ba52df3bf" {
		t.Errorf("unexpected trace resource: %s", fields[0].String)
	}
	if traceFields("garbage", "little-lemon") != nil {
		t.Error("expected no fields for malformed header")
	}
	if traceResource(header, "") != "" {
		t.Error("expected empty resource without project ID")
	}
	if fields[2].Integer != 1 {
		t.Error("flags 01 should mark the trace as sampled")
	}
}

type captureArrayEncoder struct {
	values []string
}

func (c *captureArrayEncoder) AppendBool(bool)             {}
func (c *captureArrayEncoder) AppendByteString([]byte)     {}
func (c *captureArrayEncoder) AppendComplex128(complex128) {}
func (c *captureArrayEncoder) AppendComplex64(complex64)   {}
func (c *captureArrayEncoder) AppendFloat64(float64)       {}
func (c *captureArrayEncoder) AppendFloat32(float32)       {}
func (c *captureArrayEncoder) AppendInt(int)               {}
func (c *captureArrayEncoder) AppendInt64(int64)           {}
func (c *captureArrayEncoder) AppendInt32(int32)           {}
func (c *captureArrayEncoder) AppendInt16(int16)           {}
func (c *captureArrayEncoder) AppendInt8(int8)             {}
func (c *captureArrayEncoder) AppendString(s string)       { c.values = append(c.values, s) }
func (c *captureArrayEncoder) AppendUint(uint)             {}
func (c *captureArrayEncoder) AppendUint64(uint64)         {}
func (c *captureArrayEncoder) AppendUint32(uint32)         {}
func (c *captureArrayEncoder) AppendUint16(uint16)         {}
func (c *captureArrayEncoder) AppendUint8(uint8)           {}
func (c *captureArrayEncoder) AppendUintptr(uintptr)       {}
