package tracing

import (
	"context"
	"fmt"
	"testing"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/ulogger"
	"github.com/ordishs/gocore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineLogger struct {
	ulogger.TestLogger
	lastLog string
}

func (l *lineLogger) Infof(format string, args ...interface{}) {
	l.lastLog = fmt.Sprintf(format, args...)
}

func TestTracing(t *testing.T) {
	logger := &lineLogger{}

	_, _, deferFn := StartTracing(
		context.Background(),
		"TestTracing",
		WithLogMessage(logger, "%s %s", "hello", "world"),
	)

	assert.Equal(t, "hello world", logger.lastLog)

	deferFn()

	assert.Contains(t, logger.lastLog, "hello world DONE in")
}

func TestTracingObservesMetrics(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_tracing_counter"})
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "test_tracing_histogram"})

	ctx, stat, deferFn := StartTracing(context.Background(), "observed",
		WithCounter(counter),
		WithHistogram(histogram),
		WithTag("sender", "tester"),
	)
	require.NotNil(t, ctx)
	require.NotNil(t, stat)

	deferFn()

	assert.InDelta(t, 1.0, testutil.ToFloat64(counter), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(histogram))
}

func TestNestedStats(t *testing.T) {
	parent := gocore.NewStat("tracing_test", true)

	ctx, outer, outerDone := StartTracing(context.Background(), "outer", WithParentStat(parent))
	_, inner, innerDone := StartTracing(ctx, "inner")

	require.NotNil(t, outer)
	require.NotNil(t, inner)

	innerDone()
	outerDone()
}

func TestRecordErrorWithoutSpan(t *testing.T) {
	// no tracer provider installed, must not panic
	RecordError(context.Background(), errors.NewProcessingError("boom"))
	RecordError(context.Background(), nil)
}

func TestInitTracerDisabled(t *testing.T) {
	tSettings := settings.NewSettings()
	tSettings.Tracing.Enabled = false

	require.NoError(t, InitTracer(tSettings))
	require.NoError(t, ShutdownTracer(context.Background(), ulogger.TestLogger{}))
}
