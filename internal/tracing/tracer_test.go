package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/nroehner/libSBOL/internal/domain/sbolerr"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.False(t, cfg.Enabled, "tracing should be disabled by default")
	require.Equal(t, ExporterFile, cfg.Exporter)
	require.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	require.Equal(t, 1.0, cfg.SampleRate)
	require.Equal(t, DefaultServiceName, cfg.ServiceName)
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.False(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), "noop")
	require.False(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_FileExporter(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")

	provider, err := NewProvider(Config{Enabled: true, Exporter: ExporterFile, FilePath: tracePath})
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), SpanWrite)
	require.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 1)
	require.Equal(t, SpanWrite, records[0].Name)
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: ExporterFile})
	require.Error(t, err)
}

func TestNewProvider_StdoutAndNone(t *testing.T) {
	for _, exporter := range []string{ExporterStdout, ExporterNone, ""} {
		provider, err := NewProvider(Config{Enabled: true, Exporter: exporter})
		require.NoError(t, err, exporter)
		require.True(t, provider.Enabled())
		require.NoError(t, provider.Shutdown(context.Background()))
	}
}

func TestNewProvider_UnknownExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "zipkin"})
	require.ErrorContains(t, err, "unsupported exporter type")
}

func TestFileExporter_AppendsAndSurvivesDoubleShutdown(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "nested", "traces.jsonl")
	require.NoError(t, os.MkdirAll(filepath.Dir(tracePath), 0750))
	require.NoError(t, os.WriteFile(tracePath, []byte(`{"name":"existing"}`+"\n"), 0600))

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	stub := tracetest.SpanStub{
		Name:       SpanAssemble,
		StartTime:  time.Now(),
		EndTime:    time.Now().Add(5 * time.Millisecond),
		Attributes: []attribute.KeyValue{attribute.Int(AttrParts, 3)},
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 2)
	require.Equal(t, "existing", records[0].Name)
	require.Equal(t, SpanAssemble, records[1].Name)
	require.EqualValues(t, 3, records[1].Attributes[AttrParts])

	err = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
	require.Error(t, err)
}

func TestRun_RecordsErrorCode(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	wantErr := fmt.Errorf("%w: two parts needed", sbolerr.ErrInvalidArgument)
	err := Run(context.Background(), tracer, SpanAssemble, func(context.Context, trace.Span) error {
		return wantErr
	}, attribute.Int(AttrParts, 1))
	require.ErrorIs(t, err, sbolerr.ErrInvalidArgument)

	require.NoError(t, Run(context.Background(), tracer, SpanSequence, func(_ context.Context, span trace.Span) error {
		span.SetAttributes(attribute.String(AttrDefinition, "gene"))
		return nil
	}))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	require.Equal(t, "invalid-argument", attrs[AttrErrorCode].AsString())
	require.Equal(t, int64(1), attrs[AttrParts].AsInt64())
	require.Equal(t, "Error", spans[0].Status().Code.String())
	require.Equal(t, "Ok", spans[1].Status().Code.String())
}

func TestRun_NilTracer(t *testing.T) {
	called := false
	err := Run(context.Background(), nil, SpanRead, func(context.Context, trace.Span) error {
		called = true
		return errors.New("boom")
	})
	require.True(t, called)
	require.EqualError(t, err, "boom")
}

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []SpanRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		out = append(out, rec)
	}
	require.NoError(t, scanner.Err())
	return out
}
