package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logwriter io.Writer = os.Stdout
)

func initLogging(stderr bool) {
	if stderr {
		logwriter = os.Stderr
	} else {
		logwriter = os.Stdout
	}
}

// newLogger returns the structured logger handed to the objectfile package.
// Parser warnings always go to stderr so they never mix with -stdout output.
func newLogger(quiet, debug bool) *zap.Logger {
	if quiet {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		logFatalError(err)
	}
	return logger
}

func logRaw(format string, args ...interface{}) {
	fmt.Fprintf(logwriter, format+"\n", args...)
}

func logTitle(format string, args ...interface{}) {
	logInfo(format, args...)

	title := strings.Repeat("-", len(fmt.Sprintf(format, args...)))
	if len(title) > 0 {
		logInfo(title)
	}
}

func logResultsInt(label string, value int) {
	if value > 0 {
		logResults(label, formatInt(value))
	}
}

func logResultsIntPostfix(label string, value int, postfix string) {
	if value > 0 {
		logInfo("%s", fmt.Sprintf("%-15s %15s    %s", label, formatInt(value), postfix))
	}
}

func logResults(label, value string) {
	logInfo("%s", fmt.Sprintf("%-15s %15s", label, value))
}

func logResultsPostfix(label, value, postfix string) {
	logInfo("%s", fmt.Sprintf("%-15s %15s    %s", label, value, postfix))
}

func logInfo(format string, args ...interface{}) {
	if !StartParams.Quiet {
		logRaw(format, args...)
	}
}

func logWarn(format string, args ...interface{}) {
	format = "[WARN] " + format
	if !StartParams.Quiet {
		logRaw(format, args...)
	}
}

func logFatal(format string, args ...interface{}) {
	format = "\n[FATAL] " + format
	logRaw(format, args...)
	os.Exit(1)
}

func logFatalError(err error) {
	if err != nil {
		logFatal("%s", err.Error())
	}
}
