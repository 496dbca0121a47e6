package ulogger

import (
	"github.com/ordishs/gocore"
)

// GoCoreLogger adapts the gocore logger, used when logger=gocore is configured.
type GoCoreLogger struct {
	*gocore.Logger
	service   string
	skipFrame int
}

func NewGoCoreLogger(service string, options ...Option) *GoCoreLogger {
	if service == "" {
		service = "headerchain"
	}

	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	return &GoCoreLogger{gocore.Log(service, gocore.NewLogLevelFromString(opts.logLevel)), service, opts.skip}
}

func (g *GoCoreLogger) New(service string, options ...Option) Logger {
	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	return &GoCoreLogger{
		gocore.Log(service, g.Logger.GetLogLevel()),
		service,
		opts.skip,
	}
}

func (g *GoCoreLogger) Duplicate(options ...Option) Logger {
	opts := DefaultOptions()
	opts.skip = g.skipFrame

	for _, o := range options {
		o(opts)
	}

	return &GoCoreLogger{g.Logger, g.service, opts.skip}
}

func (g *GoCoreLogger) LogLevel() int {
	return int(g.Logger.GetLogLevel())
}

// SetLogLevel is a noop, gocore fixes the level when the logger is created.
func (g *GoCoreLogger) SetLogLevel(_ string) {}
