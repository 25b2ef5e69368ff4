package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogDirName    = "logs"
	defaultLogFilename   = "tokogitar.log"
	defaultLogMaxSizeMB  = 100
	defaultLogMaxBackups = 7
	defaultLogMaxAgeDays = 30
)

// Options controls where and how log files are written.
type Options struct {
	Dir        string
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// L is the global structured logger instance.
var L *zap.Logger

var (
	fallbackOnce sync.Once
	fallbackLog  *zap.Logger
)

// Init builds the global logger and replaces zap's globals.
func Init(mode string, options Options) *zap.Logger {
	L = New(mode, options)
	if L == nil {
		L = fallbackLogger()
	}
	zap.ReplaceGlobals(L)
	return L
}

// New creates a logger instance for the given run mode. Debug mode
// writes console lines to stdout; anything else writes JSON to a
// rotated file, falling back to stdout when the file is unusable.
func New(mode string, options Options) *zap.Logger {
	debug := strings.EqualFold(strings.TrimSpace(mode), "debug")

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	if debug {
		return newCoreLogger(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(os.Stdout), level)
	}

	writeSyncer, err := newFileWriteSyncer(options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed, fallback to stdout: %v\n", err)
		writeSyncer = zapcore.AddSync(os.Stdout)
	}
	return newCoreLogger(zapcore.NewJSONEncoder(encoderConfig()), writeSyncer, level)
}

func newCoreLogger(encoder zapcore.Encoder, syncer zapcore.WriteSyncer, level zap.AtomicLevel) *zap.Logger {
	core := zapcore.NewCore(encoder, syncer, level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

// StdLogger returns a standard-library logger backed by the zap core.
func StdLogger() *log.Logger {
	return zap.NewStdLog(Z())
}

// Z returns a usable structured logger instance.
func Z() *zap.Logger {
	if L != nil {
		return L
	}
	return fallbackLogger()
}

// S returns a usable SugaredLogger.
func S() *zap.SugaredLogger {
	return Z().Sugar()
}

// SW returns a SugaredLogger with bound context fields.
func SW(kv ...interface{}) *zap.SugaredLogger {
	if len(kv) == 0 {
		return S()
	}
	return S().With(kv...)
}

// Debugw logs at debug level.
func Debugw(message string, kv ...interface{}) {
	S().Debugw(message, kv...)
}

// Infow logs at info level.
func Infow(message string, kv ...interface{}) {
	S().Infow(message, kv...)
}

// Warnw logs at warn level.
func Warnw(message string, kv ...interface{}) {
	S().Warnw(message, kv...)
}

// Errorw logs at error level.
func Errorw(message string, kv ...interface{}) {
	S().Errorw(message, kv...)
}

func fallbackLogger() *zap.Logger {
	fallbackOnce.Do(func() {
		fallbackLog = newCoreLogger(
			zapcore.NewConsoleEncoder(encoderConfig()),
			zapcore.AddSync(os.Stdout),
			zap.NewAtomicLevelAt(zap.InfoLevel),
		)
	})
	return fallbackLog
}

func newFileWriteSyncer(options Options) (zapcore.WriteSyncer, error) {
	logFilePath, err := resolveLogFilePath(options)
	if err != nil {
		return nil, err
	}

	writer := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    positiveOr(options.MaxSizeMB, defaultLogMaxSizeMB),
		MaxBackups: positiveOr(options.MaxBackups, defaultLogMaxBackups),
		MaxAge:     positiveOr(options.MaxAgeDays, defaultLogMaxAgeDays),
		Compress:   options.Compress,
	}
	return zapcore.AddSync(writer), nil
}

func resolveLogFilePath(options Options) (string, error) {
	dir := strings.TrimSpace(options.Dir)
	if dir == "" {
		workDir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve workdir failed: %w", err)
		}
		dir = filepath.Join(workDir, defaultLogDirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir failed: %w", err)
	}

	filename := strings.TrimSpace(options.Filename)
	if filename == "" {
		filename = defaultLogFilename
	}

	logFilePath := filepath.Join(dir, filename)

	// Fail at init instead of at the first log line.
	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open log file failed: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close log file failed: %w", err)
	}

	return logFilePath, nil
}

func positiveOr(value int, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
