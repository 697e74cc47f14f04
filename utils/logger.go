package utils

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

func InitLogger() {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	// InfoLogger writes to stdout, ErrorLogger to stderr
	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	InfoLogger.SetLevel(logrus.InfoLevel)
	ErrorLogger.SetLevel(logrus.WarnLevel)
}

// ConfigureLogger re-initializes both loggers with the given level. When file is not
// empty both loggers also write to a size-rotated log file.
func ConfigureLogger(level, file string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	InitLogger()
	InfoLogger.SetLevel(lvl)

	if file == "" {
		return nil
	}

	rotator := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    32, // megabytes
		MaxBackups: 2,
		MaxAge:     28, // days
		Compress:   true,
	}
	plain := &logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		PadLevelText:    true,
		TimestampFormat: time.DateTime,
	}

	InfoLogger.SetOutput(io.MultiWriter(os.Stdout, rotator))
	InfoLogger.SetFormatter(plain)
	ErrorLogger.SetOutput(io.MultiWriter(os.Stderr, rotator))
	ErrorLogger.SetFormatter(plain)
	return nil
}
