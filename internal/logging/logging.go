// Package logging builds the zap logger used by propctl.
//
// Diagnostics go to the console (stderr), to a rotating log file, or to both,
// selected by Options.Type.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Type selects the log sinks.
type Type int

const (
	TypeConsole Type = 1 // stderr
	TypeFile    Type = 2 // rotating file
	TypeBoth    Type = 3 // stderr and rotating file
)

const (
	DefaultLevel      = "warn"
	DefaultFile       = "propctl.log"
	DefaultMaxSize    = 10 // megabytes
	DefaultMaxBackups = 3
	DefaultMaxAge     = 28 // days
)

// Options is the logger configuration.
type Options struct {
	Type  Type
	Level string

	// File rotation, used by TypeFile and TypeBoth.
	FileLogName string
	MaxSize     int
	MaxBackups  int
	MaxAge      int
	Compress    bool

	// Console receives console output. Defaults to os.Stderr.
	Console io.Writer
}

// DefaultOptions returns a console logger at warn level.
func DefaultOptions() Options {
	return Options{
		Type:        TypeConsole,
		Level:       DefaultLevel,
		FileLogName: DefaultFile,
		MaxSize:     DefaultMaxSize,
		MaxBackups:  DefaultMaxBackups,
		MaxAge:      DefaultMaxAge,
	}
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	var cores []zapcore.Core
	if opts.Type == TypeConsole || opts.Type == TypeBoth {
		cores = append(cores, consoleCore(opts, level))
	}
	if opts.Type == TypeFile || opts.Type == TypeBoth {
		if opts.FileLogName == "" {
			return nil, fmt.Errorf("log type %d needs a log file", opts.Type)
		}
		cores = append(cores, fileCore(opts, level))
	}
	if len(cores) == 0 {
		return nil, fmt.Errorf("unknown log type %d", opts.Type)
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

func consoleCore(opts Options, level zapcore.Level) zapcore.Core {
	w := opts.Console
	if w == nil {
		w = os.Stderr
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	return zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
}

func fileCore(opts Options, level zapcore.Level) zapcore.Core {
	lj := &lumberjack.Logger{
		Filename:   opts.FileLogName,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   opts.Compress,
	}
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(lj), level)
}
