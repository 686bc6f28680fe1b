package internal

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger creates the CLI logger. Logs go to stderr so stdout only carries
// results.
func NewLogger(verbose, quiet bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	switch {
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	case quiet:
		log.SetLevel(logrus.WarnLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// NewMCPLogger creates the logger used while serving MCP over stdio, where
// nothing but protocol messages may reach stdout or stderr. When enabled it
// writes to a rotated mcp.log in logDir, otherwise it discards everything.
func NewMCPLogger(enabled bool, logDir string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000000",
		DisableColors:   true,
	})

	if !enabled {
		log.SetOutput(io.Discard)
		return log, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:   MCPLogPath(logDir),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})
	log.SetLevel(logrus.DebugLevel)
	return log, nil
}

// MCPLogPath returns the MCP log file inside logDir
func MCPLogPath(logDir string) string {
	return filepath.Join(logDir, "mcp.log")
}
