// Package logger 提供进程级日志记录器的初始化和获取功能。
// 使用 zerolog，控制台输出写到 stderr，避免污染 stdout 上的表格与 JSON。
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config 描述日志输出方式。
type Config struct {
	Level string
	JSON  bool
	// File 非空时额外写入滚动日志文件。
	File string
}

var global = zerolog.New(io.Discard)

// Init 根据配置创建日志记录器并设置为全局实例。
func Init(cfg Config) zerolog.Logger {
	return InitWithWriter(cfg, os.Stderr)
}

// InitWithWriter 与 Init 相同，但控制台部分写入指定的 writer。
func InitWithWriter(cfg Config, console io.Writer) zerolog.Logger {
	writers := []io.Writer{consoleWriter(console, cfg.JSON)}
	if cfg.File != "" {
		if fileWriter := createFileWriter(cfg.File); fileWriter != nil {
			writers = append(writers, fileWriter)
		}
	}

	var output io.Writer
	if len(writers) == 1 {
		output = writers[0]
	} else {
		output = zerolog.MultiLevelWriter(writers...)
	}

	global = zerolog.New(output).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
	return global
}

// Get 返回全局日志记录器，未初始化时丢弃全部输出。
func Get() *zerolog.Logger {
	return &global
}

func consoleWriter(out io.Writer, useJSON bool) io.Writer {
	if useJSON {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
	}
}

// createFileWriter 创建滚动日志文件，目录无法创建时返回 nil。
func createFileWriter(path string) io.Writer {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
}

// ParseLevel 解析日志级别，无法识别时返回 warn。
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
