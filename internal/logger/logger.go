// Package logger 提供统一的日志工具
//
// 控制台输出使用 tint 彩色 handler，文件输出使用 slog 文本格式。
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/lmittmann/tint"
)

// Level 日志级别
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// slogLevel 转换为 slog 级别
func (l Level) slogLevel() slog.Level {
	switch l {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel 解析日志级别字符串
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG", "debug":
		return DEBUG
	case "INFO", "info":
		return INFO
	case "WARN", "warn", "WARNING", "warning":
		return WARN
	case "ERROR", "error":
		return ERROR
	default:
		return INFO
	}
}

// Logger 日志记录器
type Logger struct {
	mu       sync.Mutex
	level    Level
	enabled  bool
	console  io.Writer
	noColor  bool
	filePath string
	fileOut  *os.File

	consoleLog *slog.Logger
	fileLog    *slog.Logger
}

// 全局默认 logger
var defaultLogger = New()

// New 创建新的 Logger 实例，默认输出到 stderr
func New() *Logger {
	l := &Logger{
		level:   INFO,
		enabled: true,
		console: os.Stderr,
	}
	l.rebuild()
	return l
}

// Default 获取默认 logger
func Default() *Logger {
	return defaultLogger
}

// SetLevel 设置日志级别
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.rebuild()
}

// GetLevel 获取当前日志级别
func (l *Logger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetEnabled 设置是否启用日志
func (l *Logger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// SetOutput 设置控制台输出（nil 表示关闭控制台输出）
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = w
	l.rebuild()
}

// SetNoColor 关闭彩色输出
func (l *Logger) SetNoColor(noColor bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.noColor = noColor
	l.rebuild()
}

// SetFile 设置是否输出到文件
func (l *Logger) SetFile(enabled bool, path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileOut != nil {
		l.fileOut.Close()
		l.fileOut = nil
	}
	l.filePath = path

	if enabled && path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			l.rebuild()
			return fmt.Errorf("无法打开日志文件: %w", err)
		}
		l.fileOut = f
	}

	l.rebuild()
	return nil
}

// rebuild 按当前配置重建 handler，调用方需持有锁
func (l *Logger) rebuild() {
	lvl := l.level.slogLevel()

	l.consoleLog = nil
	if l.console != nil {
		l.consoleLog = slog.New(tint.NewHandler(l.console, &tint.Options{
			Level:      lvl,
			TimeFormat: "15:04:05",
			NoColor:    l.noColor,
		}))
	}

	l.fileLog = nil
	if l.fileOut != nil {
		l.fileLog = slog.New(slog.NewTextHandler(l.fileOut, &slog.HandlerOptions{Level: lvl}))
	}
}

// log 内部日志方法
func (l *Logger) log(level Level, msg string, attrs ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.level {
		return
	}

	ctx := context.Background()
	if l.consoleLog != nil {
		l.consoleLog.Log(ctx, level.slogLevel(), msg, attrs...)
	}
	if l.fileLog != nil {
		l.fileLog.Log(ctx, level.slogLevel(), msg, attrs...)
	}
}

// Debug 输出 DEBUG 级别日志
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, fmt.Sprintf(format, args...))
}

// Info 输出 INFO 级别日志
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, fmt.Sprintf(format, args...))
}

// Warn 输出 WARN 级别日志
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, fmt.Sprintf(format, args...))
}

// Error 输出 ERROR 级别日志
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, fmt.Sprintf(format, args...))
}

// LogEvent 记录带分类的事件日志
func (l *Logger) LogEvent(category string, ok bool, elapsedMs float64, detail string) {
	status := "OK"
	level := INFO
	if !ok {
		status = "NG"
		level = WARN
	}

	l.log(level, detail,
		slog.String("cat", category),
		slog.String("status", status),
		slog.Float64("ms", elapsedMs),
	)
}

// Close 关闭 logger，释放资源
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileOut != nil {
		err := l.fileOut.Close()
		l.fileOut = nil
		l.rebuild()
		return err
	}
	return nil
}

// 包级别便捷函数
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }
func Info(format string, args ...interface{})  { defaultLogger.Info(format, args...) }
func Warn(format string, args ...interface{})  { defaultLogger.Warn(format, args...) }
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }
func LogEvent(category string, ok bool, elapsedMs float64, detail string) {
	defaultLogger.LogEvent(category, ok, elapsedMs, detail)
}
