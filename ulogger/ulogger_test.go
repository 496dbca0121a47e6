package ulogger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bitcoin-sv/headerchain/ulogger"
	"github.com/ordishs/gocore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level           string
		expectedOutputs map[string]bool
	}{
		{
			level:           "DEBUG",
			expectedOutputs: map[string]bool{"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true},
		},
		{
			level:           "INFO",
			expectedOutputs: map[string]bool{"DEBUG": false, "INFO": true, "WARN": true, "ERROR": true},
		},
		{
			level:           "WARN",
			expectedOutputs: map[string]bool{"DEBUG": false, "INFO": false, "WARN": true, "ERROR": true},
		},
		{
			level:           "ERROR",
			expectedOutputs: map[string]bool{"DEBUG": false, "INFO": false, "WARN": false, "ERROR": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer

			logger := ulogger.New("headerchain", ulogger.WithLevel(tt.level), ulogger.WithWriter(&buf))

			logger.Debugf("DEBUG message")
			logger.Infof("INFO message")
			logger.Warnf("WARN message")
			logger.Errorf("ERROR message")

			output := buf.String()

			for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
				assert.Equal(t, tt.expectedOutputs[level], strings.Contains(output, level+" message"), "level %s", level)
			}
		})
	}
}

func TestPrettyOutputContainsService(t *testing.T) {
	var buf bytes.Buffer

	logger := ulogger.New("relay", ulogger.WithWriter(&buf))
	logger.Infof("submitted %d headers", 3)

	output := buf.String()
	assert.Contains(t, output, "relay")
	assert.Contains(t, output, "submitted 3 headers")
}

func TestJSONLogging(t *testing.T) {
	gocore.Config().Set("jsonLogging", "true")
	defer gocore.Config().Unset("jsonLogging")

	var buf bytes.Buffer

	logger := ulogger.New("headerchain", ulogger.WithLevel("DEBUG"), ulogger.WithWriter(&buf))
	logger.Infof("chain extended to offset %d", 3)

	output := buf.String()
	assert.Contains(t, output, `"service":"headerchain"`)
	assert.Contains(t, output, `"message":"chain extended to offset 3"`)
	assert.Contains(t, output, `"level":"info"`)
}

func TestNewInheritsLevelAndWriter(t *testing.T) {
	var buf bytes.Buffer

	parent := ulogger.New("parent", ulogger.WithLevel("WARN"), ulogger.WithWriter(&buf))
	child := parent.New("child")

	child.Infof("hidden")
	child.Warnf("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
	assert.Equal(t, parent.LogLevel(), child.LogLevel())
}

func TestDuplicateWithLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := ulogger.New("headerchain", ulogger.WithLevel("ERROR"), ulogger.WithWriter(&buf))
	debug := logger.Duplicate(ulogger.WithLevel("DEBUG"))

	logger.Debugf("first")
	debug.Debugf("second")

	assert.NotContains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "second")
}

func TestLogLevelMapping(t *testing.T) {
	logger := ulogger.New("headerchain", ulogger.WithLevel("debug"), ulogger.WithWriter(&bytes.Buffer{}))
	assert.Equal(t, int(gocore.DEBUG), logger.LogLevel())

	logger.SetLogLevel("error")
	assert.Equal(t, int(gocore.ERROR), logger.LogLevel())

	logger.SetLogLevel("bogus")
	assert.Equal(t, int(gocore.INFO), logger.LogLevel())
}

func TestInitLogger(t *testing.T) {
	logger := ulogger.InitLogger("headerchain", "WARN", "zerolog")
	require.NotNil(t, logger)

	_, ok := logger.(*ulogger.ZLoggerWrapper)
	assert.True(t, ok)
	assert.Equal(t, int(gocore.WARN), logger.LogLevel())

	gocoreLogger := ulogger.InitLogger("headerchain", "INFO", "gocore")
	_, ok = gocoreLogger.(*ulogger.GoCoreLogger)
	assert.True(t, ok)
}

func TestTestLogger(t *testing.T) {
	var logger ulogger.Logger = ulogger.TestLogger{}

	logger.Infof("ignored %d", 1)
	assert.Equal(t, ulogger.TestLogger{}, logger.New("x"))
	assert.Equal(t, 0, logger.LogLevel())
}

type recordingT struct {
	logs   []string
	failed bool
}

func (r *recordingT) Errorf(string, ...interface{}) {}

func (r *recordingT) FailNow() {
	r.failed = true
}

func (r *recordingT) Logf(format string, _ ...any) {
	r.logs = append(r.logs, format)
}

func TestErrorTestLogger(t *testing.T) {
	rec := &recordingT{}
	logger := ulogger.NewErrorTestLogger(rec)

	logger.Infof("not recorded")
	logger.Errorf("storage failed: %v", "boom")

	require.Len(t, rec.logs, 1)
	assert.Contains(t, rec.logs[0], "ERR_LEVEL storage failed")
	assert.False(t, rec.failed)

	logger.FailOnError(true)
	logger.Fatalf("fatal")
	assert.True(t, rec.failed)

	logger.Shutdown()
	logger.Errorf("after shutdown")
	assert.Len(t, rec.logs, 2)
}
