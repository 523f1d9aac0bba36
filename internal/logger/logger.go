package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

func NewDefaultLogger() Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(2),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

var once sync.Once
var defaultLogger Logger

func getDefaultLogger() Logger {
	once.Do(func() {
		if defaultLogger == nil {
			defaultLogger = NewDefaultLogger()
		}
	})
	return defaultLogger
}

// SetDefault replaces the package logger. Must be called before first use.
func SetDefault(l Logger) {
	once.Do(func() {})
	defaultLogger = l
}

func Debug(msg string, keysAndValues ...interface{}) {
	getDefaultLogger().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...interface{}) {
	getDefaultLogger().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	getDefaultLogger().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...interface{}) {
	getDefaultLogger().Errorw(msg, keysAndValues...)
}

// PrintLogger adapts the package logger to Println/Printf style loggers such
// as the ones exposed by the paho MQTT library.
type PrintLogger struct {
	component string
	log       func(msg string, keysAndValues ...interface{})
}

func NewPrintLogger(component string, level zapcore.Level) PrintLogger {
	log := Info
	switch level {
	case zapcore.DebugLevel:
		log = Debug
	case zapcore.WarnLevel:
		log = Warn
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		log = Error
	}
	return PrintLogger{component: component, log: log}
}

func (l PrintLogger) Println(v ...interface{}) {
	l.log(strings.TrimSpace(fmt.Sprintln(v...)), "component", l.component)
}

func (l PrintLogger) Printf(format string, v ...interface{}) {
	l.log(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", l.component)
}
